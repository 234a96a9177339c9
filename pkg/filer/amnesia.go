package filer

import (
	"path/filepath"

	"cloud.google.com/go/civil"

	"github.com/mattsolo1/nothing/pkg/models"
)

// amnesia makes stale entries in the root fade: after AmnesiaGraceDays
// without modification a task gains one marker per day, up to
// AmnesiaMaxMarks, and after AmnesiaArchiveDays it moves to _done.
// Touching a file resets its age and clears the markers.
func (s *Service) amnesia(p *pass) error {
	marker := s.Config.AmnesiaMarker

	entries, err := s.scan(p, p.root, nil)
	if err != nil {
		return err
	}

	for _, e := range entries {
		if e.info.IsDir() && !e.name.HasDate() {
			continue
		}

		age := p.today.DaysSince(civil.DateOf(e.info.ModTime().In(p.now.Location())))
		marks := age - s.Config.AmnesiaGraceDays
		if marks < 0 {
			marks = 0
		}
		if marks > s.Config.AmnesiaMaxMarks {
			marks = s.Config.AmnesiaMaxMarks
		}

		n := e.name.Clone()
		n.RemoveNameDecorators(marker)
		decorators := make([]string, 0, marks+len(n.NameDecorators))
		for i := 0; i < marks; i++ {
			decorators = append(decorators, marker)
		}
		n.SetNameDecorators(append(decorators, n.NameDecorators...))

		target, kind := p.root, models.ActionRename
		if s.Config.AmnesiaArchiveDays > 0 && age >= s.Config.AmnesiaArchiveDays {
			target, kind = s.doneDir(p.root), models.ActionMove
		}

		to := filepath.Join(target, n.String())
		if err := s.rename(p, kind, e.path(), to); err != nil {
			s.fail(p, e.info.Name(), err)
		}
	}
	return nil
}
