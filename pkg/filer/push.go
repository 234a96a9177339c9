package filer

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/mattsolo1/nothing/pkg/models"
	"github.com/mattsolo1/nothing/pkg/reschedule"
)

const pushRandom = "rand"

// push reschedules everything dropped into a _push-<expr> directory and
// moves it to _later. <expr> is any modification expression (1d, 1w,
// 2d+0900, friday) or "rand" for 1 to PushRandMaxDays days.
func (s *Service) push(p *pass) error {
	infos, err := afero.ReadDir(s.fs, p.root)
	if err != nil {
		return fmt.Errorf("read %s: %w", p.root, err)
	}

	for _, info := range infos {
		if !info.IsDir() || !strings.HasPrefix(info.Name(), s.Config.PushPrefix) {
			continue
		}
		expr := strings.TrimPrefix(info.Name(), s.Config.PushPrefix)

		var x reschedule.Expression
		if expr != pushRandom {
			if x, err = reschedule.ParseExpression(expr); err != nil {
				s.fail(p, info.Name(), err)
				continue
			}
		}

		entries, err := s.scan(p, filepath.Join(p.root, info.Name()), func(base string, err error) {
			s.fail(p, base, err)
		})
		if err != nil {
			s.fail(p, info.Name(), err)
			continue
		}

		for _, e := range entries {
			ex := x
			if expr == pushRandom {
				ex, err = reschedule.ParseExpression(fmt.Sprintf("%dd", s.randomDays()))
				if err != nil {
					s.fail(p, e.info.Name(), err)
					continue
				}
			}

			next, err := s.engine.ApplyExpression(e.name, ex, p.now)
			if err != nil {
				s.fail(p, e.info.Name(), err)
				continue
			}
			to := filepath.Join(s.laterDir(p.root), next.String())
			if err := s.rename(p, models.ActionMove, e.path(), to); err != nil {
				s.fail(p, e.info.Name(), err)
			}
		}
	}
	return nil
}

func (s *Service) randomDays() int {
	max := s.Config.PushRandMaxDays
	if max < 1 {
		max = 1
	}
	return 1 + s.randIntn(max)
}
