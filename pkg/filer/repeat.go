package filer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"cloud.google.com/go/civil"
	"github.com/spf13/afero"

	"github.com/mattsolo1/nothing/pkg/models"
	"github.com/mattsolo1/nothing/pkg/recurrence"
	"github.com/mattsolo1/nothing/pkg/taskname"
)

// maxAdvance bounds how many periods a strict rule is stepped forward
// to reach the future.
const maxAdvance = 1000

// repeat spawns the next instance of recurring tasks into _later.
//
// Default rules fire once the task is in _done; the done copy then
// loses its rule so it never fires again. Strict rules (@) fire from
// root entries that are not marked overdue, stepping forward until the
// instance lies after now. A spawn is skipped when root or _later
// already holds the name, markers aside.
func (s *Service) repeat(p *pass) error {
	present, err := s.present(p)
	if err != nil {
		return err
	}

	done, err := s.scan(p, s.doneDir(p.root), nil)
	if err != nil {
		return err
	}
	for _, e := range done {
		if e.name.Rule == "" || e.name.Strict || !e.name.HasDate() {
			continue
		}
		next, ok, err := s.NextInstance(e.name, p.today)
		if err != nil {
			s.fail(p, e.info.Name(), err)
			continue
		}
		if !ok {
			p.log.WithField("name", e.info.Name()).Debug("rule has no occurrence next period")
			continue
		}
		spawned, err := s.spawn(p, e, next, present)
		if err != nil {
			s.fail(p, e.info.Name(), err)
			continue
		}
		if !spawned {
			continue
		}
		to := filepath.Join(e.dir, e.name.WithoutRule().String())
		if err := s.rename(p, models.ActionRename, e.path(), to); err != nil {
			s.fail(p, e.info.Name(), err)
		}
	}

	root, err := s.scan(p, p.root, nil)
	if err != nil {
		return err
	}
	for _, e := range root {
		if e.name.Rule == "" || !e.name.Strict || !e.name.HasDate() {
			continue
		}
		if e.name.HasDateDecorator(s.Config.OverdueMarker) {
			continue
		}
		next, ok, err := s.upcoming(p, e.name)
		if err != nil {
			s.fail(p, e.info.Name(), err)
			continue
		}
		if !ok {
			p.log.WithField("name", e.info.Name()).Debug("rule has no upcoming occurrence")
			continue
		}
		if _, err := s.spawn(p, e, next, present); err != nil {
			s.fail(p, e.info.Name(), err)
		}
	}
	return nil
}

// present collects the bare names held by root and _later.
func (s *Service) present(p *pass) (map[string]bool, error) {
	names := map[string]bool{}
	for _, dir := range []string{p.root, s.laterDir(p.root)} {
		entries, err := s.scan(p, dir, nil)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			names[s.bareName(e.name)] = true
		}
	}
	return names, nil
}

// upcoming steps n forward by its rule until the instance is due after
// now.
func (s *Service) upcoming(p *pass, n *taskname.Name) (*taskname.Name, bool, error) {
	now := civil.DateTimeOf(p.now)
	for i := 0; i < maxAdvance; i++ {
		next, ok, err := s.NextInstance(n, p.today)
		if err != nil || !ok {
			return nil, ok, err
		}
		due, _, err := next.Due(p.today)
		if err != nil {
			return nil, false, err
		}
		if due.After(now) {
			return next, true, nil
		}
		if next.String() == s.bareName(n) {
			return nil, false, fmt.Errorf("rule %s does not advance", n.Rule)
		}
		n = next
	}
	return nil, false, fmt.Errorf("rule %s: no instance after %s within %d periods", n.Rule, now, maxAdvance)
}

// spawn copies e into _later as next. A name already present, markers
// aside, counts as spawned.
func (s *Service) spawn(p *pass, e entry, next *taskname.Name, present map[string]bool) (spawned bool, err error) {
	key := s.bareName(next)
	if present[key] {
		return true, nil
	}

	to := filepath.Join(s.laterDir(p.root), next.String())
	exists, err := afero.Exists(s.fs, to)
	if err != nil {
		return false, err
	}
	if exists {
		present[key] = true
		return true, nil
	}

	if !s.Config.DryRun {
		if err := s.copy(e.path(), to); err != nil {
			return false, fmt.Errorf("copy to %s: %w", s.rel(p, to), err)
		}
	}
	present[key] = true
	s.done(p, models.Action{
		Kind:      models.ActionSpawn,
		Component: p.component,
		From:      s.rel(p, e.path()),
		To:        s.rel(p, to),
	}, e.name.Rule)
	return true, nil
}

// NextInstance names the occurrence of n that follows its own date, or
// today for an undated name. Hour rules count from the name's time, or
// from midnight when it has none. The instance starts clean: no overdue
// or amnesia markers. ok is false when the rule has no occurrence in the
// target month.
func (s *Service) NextInstance(n *taskname.Name, today civil.Date) (next *taskname.Name, ok bool, err error) {
	rule, err := n.Recurrence()
	if err != nil {
		return nil, false, err
	}

	if h, isHours := rule.(recurrence.HourUnit); isHours {
		next, err = s.engine.Apply(n, fmt.Sprintf("%dh", h.N), today.In(time.UTC))
		if err != nil {
			return nil, false, err
		}
	} else {
		anchor, err := n.Date(today)
		if err != nil {
			return nil, false, err
		}
		date, found := recurrence.Next(anchor, rule)
		if !found {
			return nil, false, nil
		}
		next = n.Clone()
		next.DateExpression = date.String()
	}

	next.RemoveDateDecorators(s.Config.OverdueMarker)
	next.RemoveNameDecorators(s.Config.OverdueMarker, s.Config.AmnesiaMarker)
	return next, true, nil
}

// copy copies a file, or a directory tree, from src to dst.
func (s *Service) copy(src, dst string) error {
	return afero.Walk(s.fs, src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		if info.IsDir() {
			return s.fs.MkdirAll(target, info.Mode().Perm()|0o700)
		}
		return s.copyFile(path, target, info.Mode().Perm())
	})
}

func (s *Service) copyFile(src, dst string, perm os.FileMode) error {
	in, err := s.fs.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := s.fs.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
