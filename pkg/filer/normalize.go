package filer

import (
	"path/filepath"

	"github.com/mattsolo1/nothing/pkg/dateexpr"
	"github.com/mattsolo1/nothing/pkg/models"
)

// normalize rewrites symbolic date expressions (today, tomorrow, a
// weekday, 3d) in the root and _later as ISO dates. It is also where
// names that do not parse at all get reported.
func (s *Service) normalize(p *pass) error {
	for _, dir := range []string{p.root, s.laterDir(p.root)} {
		entries, err := s.scan(p, dir, func(base string, err error) {
			s.fail(p, base, err)
		})
		if err != nil {
			return err
		}

		for _, e := range entries {
			if !e.name.HasDate() {
				continue
			}
			tok, err := dateexpr.Lex(e.name.DateExpression)
			if err != nil {
				s.fail(p, e.info.Name(), err)
				continue
			}
			if tok.Kind == dateexpr.KindAbsolute {
				continue
			}

			canonical, err := e.name.Canonical(p.today)
			if err != nil {
				s.fail(p, e.info.Name(), err)
				continue
			}
			to := filepath.Join(e.dir, canonical.String())
			if err := s.rename(p, models.ActionRename, e.path(), to); err != nil {
				s.fail(p, e.info.Name(), err)
			}
		}
	}
	return nil
}
