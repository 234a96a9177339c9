package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mattsolo1/nothing/cmd/config"
	"github.com/mattsolo1/nothing/pkg/filer"
)

func NewWatchCmd() *cobra.Command {
	var (
		interval time.Duration
		debounce time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Run the automations whenever the task directory changes",
		Long: `Watch the task directory and its special directories, running the
automations shortly after something changes and again every --interval
so that time-driven moves happen even when nothing is touched.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if interval <= 0 || debounce <= 0 {
				return fmt.Errorf("--interval and --debounce must be positive")
			}
			root, err := config.Root()
			if err != nil {
				return err
			}
			svc, err := config.InitService()
			if err != nil {
				return err
			}
			defer svc.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			w := &watcher{
				svc:      svc,
				root:     root,
				interval: interval,
				debounce: debounce,
				out:      cmd.OutOrStdout(),
				errOut:   cmd.ErrOrStderr(),
				log:      svc.Logger,
			}
			return w.run(ctx)
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", time.Minute, "Run at least this often")
	cmd.Flags().DurationVar(&debounce, "debounce", 500*time.Millisecond, "Quiet period after a change before running")

	return cmd
}

type watcher struct {
	svc      *filer.Service
	root     string
	interval time.Duration
	debounce time.Duration
	out      io.Writer
	errOut   io.Writer
	log      *logrus.Entry
}

func (w *watcher) run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer fsw.Close()

	runOnce := func() {
		report, err := w.svc.Run(ctx, w.root)
		if len(report.Actions) > 0 || len(report.Errors) > 0 {
			printReport(w.out, w.errOut, report, false)
		}
		if err != nil && ctx.Err() == nil {
			w.log.WithError(err).Warn("run failed")
		}
		w.watch(fsw)
	}

	w.watch(fsw)
	runOnce()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	timer := time.NewTimer(w.debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if strings.HasPrefix(filepath.Base(ev.Name), ".") {
				continue
			}
			w.log.WithField("event", ev.String()).Debug("change")
			timer.Reset(w.debounce)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.log.WithError(err).Warn("watch error")
		case <-timer.C:
			runOnce()
		case <-ticker.C:
			runOnce()
		}
	}
}

// watch adds the root and every special directory that exists. Adding a
// path twice is a no-op, so this is repeated after each run to pick up
// directories the run created.
func (w *watcher) watch(fsw *fsnotify.Watcher) {
	c := w.svc.Config
	dirs := []string{w.root, filepath.Join(w.root, c.LaterDir), filepath.Join(w.root, c.DoneDir)}
	for _, p := range c.PushDirs {
		dirs = append(dirs, filepath.Join(w.root, c.PushPrefix+p))
	}
	for _, d := range dirs {
		if info, err := os.Stat(d); err != nil || !info.IsDir() {
			continue
		}
		if err := fsw.Add(d); err != nil {
			w.log.WithError(err).WithField("dir", d).Warn("cannot watch")
		}
	}
}
