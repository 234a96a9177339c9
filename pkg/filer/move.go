package filer

import (
	"path/filepath"

	"cloud.google.com/go/civil"

	"github.com/mattsolo1/nothing/pkg/models"
)

// move brings due entries out of _later and parks future ones there.
// An entry is due once its date and time, or its date at midnight, is
// at or before now.
func (s *Service) move(p *pass) error {
	now := civil.DateTimeOf(p.now)

	later, err := s.scan(p, s.laterDir(p.root), nil)
	if err != nil {
		return err
	}
	for _, e := range later {
		due, ok, err := e.name.Due(p.today)
		if err != nil {
			s.fail(p, e.info.Name(), err)
			continue
		}
		if !ok || due.After(now) {
			continue
		}
		if err := s.rename(p, models.ActionMove, e.path(), filepath.Join(p.root, e.info.Name())); err != nil {
			s.fail(p, e.info.Name(), err)
		}
	}

	root, err := s.scan(p, p.root, nil)
	if err != nil {
		return err
	}
	for _, e := range root {
		due, ok, err := e.name.Due(p.today)
		if err != nil {
			s.fail(p, e.info.Name(), err)
			continue
		}
		if !ok || !due.After(now) {
			continue
		}
		if err := s.rename(p, models.ActionMove, e.path(), filepath.Join(s.laterDir(p.root), e.info.Name())); err != nil {
			s.fail(p, e.info.Name(), err)
		}
	}
	return nil
}
