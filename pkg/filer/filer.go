// Package filer runs the automations that keep a task directory in
// order: it reads task names, asks the core packages what should
// happen to them, and performs the renames, moves, copies and deletes.
//
// A task directory looks like:
//
//	root/
//	  2024-12-20.call mom.txt      due today or earlier
//	  _later/                      not due yet
//	  _done/                       finished
//	  _push-1d/ _push-1w/ ...      drop a task here to reschedule it
package filer

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/mattsolo1/nothing/pkg/ledger"
	"github.com/mattsolo1/nothing/pkg/models"
	"github.com/mattsolo1/nothing/pkg/notify"
	"github.com/mattsolo1/nothing/pkg/reschedule"
	"github.com/mattsolo1/nothing/pkg/taskname"
)

// ErrExists is returned instead of overwriting an existing entry.
var ErrExists = errors.New("destination already exists")

// Config holds filer configuration.
type Config struct {
	LaterDir   string
	DoneDir    string
	PushPrefix string
	PushDirs   []string

	OverdueMarker string
	AmnesiaMarker string

	AmnesiaGraceDays   int
	AmnesiaMaxMarks    int
	AmnesiaArchiveDays int

	HousekeepMaxAge time.Duration
	PushRandMaxDays int

	TimePolicy  reschedule.DefaultTimePolicy
	Automations []models.Automation

	// DryRun reports actions without performing them.
	DryRun bool
}

// DefaultConfig returns the stock layout and thresholds.
func DefaultConfig() *Config {
	return &Config{
		LaterDir:           "_later",
		DoneDir:            "_done",
		PushPrefix:         "_push-",
		PushDirs:           []string{"1d", "1w", "rand"},
		OverdueMarker:      "■",
		AmnesiaMarker:      "»",
		AmnesiaGraceDays:   2,
		AmnesiaMaxMarks:    4,
		AmnesiaArchiveDays: 6,
		HousekeepMaxAge:    180 * 24 * time.Hour,
		PushRandMaxDays:    10,
		TimePolicy:         reschedule.TimeFromNow,
		Automations:        append([]models.Automation{}, models.DefaultAutomations...),
	}
}

// Service runs automations against a filesystem.
type Service struct {
	Config *Config
	Logger *logrus.Entry
	Ledger *ledger.Ledger

	fs       afero.Fs
	engine   *reschedule.Engine
	notifier notify.Notifier
	now      func() time.Time
	randIntn func(int) int

	// notified stands in for the ledger when none is configured.
	notified map[string]bool
}

// Option configures a Service.
type Option func(*Service)

// WithLedger records activity and notified names in l.
func WithLedger(l *ledger.Ledger) Option {
	return func(s *Service) { s.Ledger = l }
}

// WithNotifier sets the notifier used by the notify automation.
func WithNotifier(n notify.Notifier) Option {
	return func(s *Service) { s.notifier = n }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithRand replaces the random source used by _push-rand. intn must
// return a value in [0, n).
func WithRand(intn func(int) int) Option {
	return func(s *Service) { s.randIntn = intn }
}

// WithLogger sets the logger.
func WithLogger(l *logrus.Logger) Option {
	return func(s *Service) { s.Logger = logrus.NewEntry(l) }
}

// New creates a new filer service.
func New(fs afero.Fs, config *Config, options ...Option) *Service {
	if config == nil {
		config = DefaultConfig()
	}

	quiet := logrus.New()
	quiet.SetLevel(logrus.WarnLevel)

	s := &Service{
		Config:   config,
		Logger:   logrus.NewEntry(quiet),
		fs:       fs,
		engine:   reschedule.New(config.TimePolicy),
		now:      time.Now,
		randIntn: rand.Intn,
		notified: map[string]bool{},
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// Close closes the ledger, if any.
func (s *Service) Close() error {
	if s.Ledger == nil {
		return nil
	}
	return s.Ledger.Close()
}

// Init creates the special directories under root, each with a .keep
// file so they survive in version control and sync tools.
func (s *Service) Init(root string) error {
	dirs := []string{s.Config.LaterDir, s.Config.DoneDir}
	for _, p := range s.Config.PushDirs {
		dirs = append(dirs, s.Config.PushPrefix+p)
	}

	for _, d := range dirs {
		path := filepath.Join(root, d)
		if err := s.fs.MkdirAll(path, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", d, err)
		}
		keep := filepath.Join(path, ".keep")
		exists, err := afero.Exists(s.fs, keep)
		if err != nil {
			return err
		}
		if !exists {
			if err := afero.WriteFile(s.fs, keep, nil, 0o644); err != nil {
				return fmt.Errorf("create %s: %w", keep, err)
			}
		}
	}
	return nil
}

// Run executes the configured automations in order. Per-entry failures
// are collected in the report; only a failure to read a directory
// stops an automation, and the remaining automations still run.
//
// Every undated directory in root that does not start with an
// underscore is a task root of its own. It gets its own special
// directories and the same automations, recursively.
func (s *Service) Run(ctx context.Context, root string) (models.Report, error) {
	return s.RunOnly(ctx, root, s.Config.Automations...)
}

// RunOnly executes the given automations in order, over root and its
// nested task roots.
func (s *Service) RunOnly(ctx context.Context, root string, automations ...models.Automation) (models.Report, error) {
	runID := uuid.NewString()
	var report models.Report

	err := s.runTree(ctx, root, root, runID, automations, &report)

	s.Logger.WithFields(logrus.Fields{
		"run_id":  runID,
		"actions": len(report.Actions),
		"errors":  len(report.Errors),
	}).Debug("run complete")

	return report, err
}

func (s *Service) runTree(ctx context.Context, base, root, runID string, automations []models.Automation, report *models.Report) error {
	var errs []error
	for _, a := range automations {
		if err := ctx.Err(); err != nil {
			return errors.Join(append(errs, err)...)
		}
		r, err := s.run(ctx, base, root, runID, a)
		report.Merge(r)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", a, err))
		}
	}

	subs, err := s.subRoots(root)
	if err != nil {
		errs = append(errs, err)
	}
	for _, sub := range subs {
		if !s.Config.DryRun {
			if err := s.Init(sub); err != nil {
				errs = append(errs, fmt.Errorf("init %s: %w", sub, err))
				continue
			}
		}
		if err := s.runTree(ctx, base, sub, runID, automations, report); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// subRoots lists the directories of root that are task roots in their
// own right: no leading underscore or dot, and no date.
func (s *Service) subRoots(root string) ([]string, error) {
	infos, err := afero.ReadDir(s.fs, root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", root, err)
	}

	var subs []string
	for _, info := range infos {
		base := info.Name()
		if !info.IsDir() || strings.HasPrefix(base, ".") || strings.HasPrefix(base, "_") {
			continue
		}
		n, err := taskname.Parse(base, taskname.Dateless())
		if err != nil || n.HasDate() {
			continue
		}
		subs = append(subs, filepath.Join(root, base))
	}
	return subs, nil
}

// pass is the state of one automation over one root.
type pass struct {
	ctx context.Context
	// base is the root the run started from; paths are reported
	// relative to it.
	base      string
	root      string
	runID     string
	component models.Automation
	now       time.Time
	today     civil.Date
	report    *models.Report
	log       *logrus.Entry
}

func (s *Service) run(ctx context.Context, base, root, runID string, a models.Automation) (models.Report, error) {
	fn := s.automation(a)
	if fn == nil {
		return models.Report{}, fmt.Errorf("unknown automation %q", a)
	}

	now := s.now()
	p := &pass{
		ctx:       ctx,
		base:      base,
		root:      root,
		runID:     runID,
		component: a,
		now:       now,
		today:     civil.DateOf(now),
		report:    &models.Report{},
		log:       s.Logger.WithField("component", string(a)),
	}
	if root != base {
		p.log = p.log.WithField("root", s.rel(p, root))
	}

	p.log.Debug("start")
	err := fn(p)
	return *p.report, err
}

func (s *Service) automation(a models.Automation) func(*pass) error {
	switch a {
	case models.AutomationNormalize:
		return s.normalize
	case models.AutomationPush:
		return s.push
	case models.AutomationRepeat:
		return s.repeat
	case models.AutomationMove:
		return s.move
	case models.AutomationOverdue:
		return s.overdue
	case models.AutomationAmnesia:
		return s.amnesia
	case models.AutomationNotify:
		return s.notify
	case models.AutomationHousekeep:
		return s.housekeep
	}
	return nil
}

func (s *Service) laterDir(root string) string { return filepath.Join(root, s.Config.LaterDir) }
func (s *Service) doneDir(root string) string  { return filepath.Join(root, s.Config.DoneDir) }

// entry is one parsed directory entry.
type entry struct {
	dir  string
	info os.FileInfo
	name *taskname.Name
}

func (e entry) path() string { return filepath.Join(e.dir, e.info.Name()) }

// scan lists the task entries of dir. Hidden entries are skipped, and
// so are underscore entries when dir is the root. A missing directory
// yields no entries. Names that do not parse are reported to bad.
func (s *Service) scan(p *pass, dir string, bad func(base string, err error)) ([]entry, error) {
	exists, err := afero.DirExists(s.fs, dir)
	if err != nil || !exists {
		return nil, err
	}

	infos, err := afero.ReadDir(s.fs, dir)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", dir, err)
	}

	isRoot := filepath.Clean(dir) == filepath.Clean(p.root)
	var entries []entry
	for _, info := range infos {
		base := info.Name()
		if strings.HasPrefix(base, ".") || (isRoot && strings.HasPrefix(base, "_")) {
			continue
		}
		n, err := taskname.Parse(base, taskname.Dateless())
		if err != nil {
			if bad != nil {
				bad(base, err)
			}
			p.log.WithField("name", base).WithError(err).Debug("skipping unparseable name")
			continue
		}
		entries = append(entries, entry{dir: dir, info: info, name: n})
	}
	return entries, nil
}

// fail records a per-entry error and keeps going.
func (s *Service) fail(p *pass, name string, err error) {
	p.log.WithFields(logrus.Fields{"name": name, "error": err}).Warn("skipping entry")
	p.report.Fail(p.component, name, err)
}

// rename moves from to to, refusing to overwrite.
func (s *Service) rename(p *pass, kind models.ActionKind, from, to string) error {
	if from == to {
		return nil
	}
	exists, err := afero.Exists(s.fs, to)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%s: %w", s.rel(p, to), ErrExists)
	}

	if !s.Config.DryRun {
		if err := s.fs.MkdirAll(filepath.Dir(to), 0o755); err != nil {
			return err
		}
		if err := s.fs.Rename(from, to); err != nil {
			return err
		}
	}
	s.done(p, models.Action{Kind: kind, Component: p.component, From: s.rel(p, from), To: s.rel(p, to)}, "")
	return nil
}

// remove deletes path, recursively for directories.
func (s *Service) remove(p *pass, path string) error {
	if !s.Config.DryRun {
		if err := s.fs.RemoveAll(path); err != nil {
			return err
		}
	}
	s.done(p, models.Action{Kind: models.ActionDelete, Component: p.component, From: s.rel(p, path)}, "")
	return nil
}

// done adds a to the report and the ledger.
func (s *Service) done(p *pass, a models.Action, detail string) {
	p.report.Add(a)
	p.log.WithFields(logrus.Fields{"from": a.From, "to": a.To, "dry_run": s.Config.DryRun}).Info(string(a.Kind))

	if s.Ledger == nil || s.Config.DryRun {
		return
	}
	err := s.Ledger.Record(models.Activity{
		RunID:     p.runID,
		At:        p.now,
		Component: a.Component,
		Kind:      a.Kind,
		From:      a.From,
		To:        a.To,
		Detail:    detail,
	})
	if err != nil {
		p.log.WithError(err).Warn("failed to record activity")
	}
}

func (s *Service) rel(p *pass, path string) string {
	if r, err := filepath.Rel(p.base, path); err == nil {
		return r
	}
	return path
}
