package filer

import (
	"path/filepath"

	"github.com/mattsolo1/nothing/pkg/models"
)

// overdue marks entries whose date is before today and pulls them out
// of _later. Entries that are no longer overdue lose the marker, from
// the date or the title.
func (s *Service) overdue(p *pass) error {
	marker := s.Config.OverdueMarker
	later := s.laterDir(p.root)

	for _, dir := range []string{p.root, later} {
		entries, err := s.scan(p, dir, nil)
		if err != nil {
			return err
		}

		for _, e := range entries {
			if !e.name.HasDate() {
				continue
			}
			date, err := e.name.Date(p.today)
			if err != nil {
				s.fail(p, e.info.Name(), err)
				continue
			}

			n := e.name.Clone()
			target := e.dir
			kind := models.ActionRename

			if date.Before(p.today) {
				n.PrependDateDecorator(marker)
				if dir == later {
					target, kind = p.root, models.ActionMove
				}
			} else {
				n.RemoveDateDecorators(marker)
				n.RemoveNameDecorators(marker)
			}

			to := filepath.Join(target, n.String())
			if err := s.rename(p, kind, e.path(), to); err != nil {
				s.fail(p, e.info.Name(), err)
			}
		}
	}
	return nil
}
