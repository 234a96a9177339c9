package filer

import (
	"github.com/mattsolo1/nothing/pkg/models"
	"github.com/mattsolo1/nothing/pkg/taskname"
)

const notificationTitle = "Task Notification"

// notify sends one notification per root entry whose date segment ends
// in an unpaired +. A name is notified once; a new date or time makes it
// eligible again, but the overdue and amnesia markers do not.
func (s *Service) notify(p *pass) error {
	if s.notifier == nil {
		p.log.Debug("no notifier configured")
		return nil
	}

	entries, err := s.scan(p, p.root, nil)
	if err != nil {
		return err
	}

	for _, e := range entries {
		if !e.name.Notify || !e.name.HasDate() {
			continue
		}
		base := e.info.Name()
		key := s.bareName(e.name)

		seen, err := s.wasNotified(key)
		if err != nil {
			s.fail(p, base, err)
			continue
		}
		if seen {
			continue
		}

		if !s.Config.DryRun {
			if err := s.notifier.Notify(p.ctx, notificationTitle, "Task due: "+base); err != nil {
				s.fail(p, base, err)
				continue
			}
			if err := s.markNotified(p, key); err != nil {
				s.fail(p, base, err)
			}
		}
		s.done(p, models.Action{Kind: models.ActionNotify, Component: p.component, From: s.rel(p, e.path())}, s.notifier.Name())
	}
	return nil
}

// bareName is the name without the markers the automations add.
func (s *Service) bareName(n *taskname.Name) string {
	k := n.Clone()
	k.RemoveDateDecorators(s.Config.OverdueMarker, s.Config.AmnesiaMarker)
	k.RemoveNameDecorators(s.Config.OverdueMarker, s.Config.AmnesiaMarker)
	return k.String()
}

func (s *Service) wasNotified(name string) (bool, error) {
	if s.Ledger == nil {
		return s.notified[name], nil
	}
	return s.Ledger.Notified(name)
}

func (s *Service) markNotified(p *pass, name string) error {
	if s.Ledger == nil {
		s.notified[name] = true
		return nil
	}
	return s.Ledger.MarkNotified(name, p.now)
}
