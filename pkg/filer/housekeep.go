package filer

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// housekeep deletes anything under _done that has not been modified for
// HousekeepMaxAge. Old directories go once their contents are gone.
func (s *Service) housekeep(p *pass) error {
	done := s.doneDir(p.root)
	exists, err := afero.DirExists(s.fs, done)
	if err != nil || !exists {
		return err
	}
	return s.sweep(p, done)
}

// sweep deletes the old entries of dir, depth first.
func (s *Service) sweep(p *pass, dir string) error {
	infos, err := afero.ReadDir(s.fs, dir)
	if err != nil {
		return fmt.Errorf("read %s: %w", dir, err)
	}
	cutoff := p.now.Add(-s.Config.HousekeepMaxAge)

	for _, info := range infos {
		if strings.HasPrefix(info.Name(), ".") {
			continue
		}
		path := filepath.Join(dir, info.Name())
		// Sample the age first: clearing children bumps a directory's mtime.
		old := info.ModTime().Before(cutoff)

		if info.IsDir() {
			if err := s.sweep(p, path); err != nil {
				s.fail(p, s.rel(p, path), err)
				continue
			}
			if !old {
				continue
			}
			empty, err := s.isEmpty(path)
			if err != nil {
				s.fail(p, s.rel(p, path), err)
				continue
			}
			if !empty {
				continue
			}
		} else if !old {
			continue
		}

		if err := s.remove(p, path); err != nil {
			s.fail(p, s.rel(p, path), err)
		}
	}
	return nil
}

// isEmpty ignores dotfiles such as .keep.
func (s *Service) isEmpty(dir string) (bool, error) {
	infos, err := afero.ReadDir(s.fs, dir)
	if err != nil {
		return false, err
	}
	for _, info := range infos {
		if !strings.HasPrefix(info.Name(), ".") {
			return false, nil
		}
	}
	return true, nil
}
