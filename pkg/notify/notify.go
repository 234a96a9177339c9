// Package notify dispatches desktop notifications.
package notify

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"sync"

	"github.com/gen2brain/beeep"
)

// Notifier sends one notification.
type Notifier interface {
	Name() string
	Notify(ctx context.Context, title, message string) error
}

// desktop posts a notification through the platform's notification
// service.
var desktop = func(title, message string) error {
	return beeep.Notify(title, message, "")
}

// System posts desktop notifications with beeep. When Command is set it
// is run instead, with title and message appended as the last two
// arguments.
type System struct {
	Command []string
}

// NewSystem creates a System notifier. An empty command selects the
// desktop notification service.
func NewSystem(command string) *System {
	return &System{Command: strings.Fields(command)}
}

// Name returns the name of the notifier.
func (s *System) Name() string {
	if len(s.Command) > 0 {
		return s.Command[0]
	}
	return "desktop"
}

// Notify posts the notification, or runs the configured command.
func (s *System) Notify(ctx context.Context, title, message string) error {
	if len(s.Command) == 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := desktop(title, message); err != nil {
			return fmt.Errorf("desktop notification failed: %w", err)
		}
		return nil
	}

	argv := s.argv(title, message)
	if _, err := exec.LookPath(argv[0]); err != nil {
		return fmt.Errorf("%s command not found in PATH", argv[0])
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s failed: %w: %s", argv[0], err, strings.TrimSpace(string(output)))
	}
	return nil
}

func (s *System) argv(title, message string) []string {
	return append(append([]string{}, s.Command...), title, message)
}

// Message is one notification captured by Recorder.
type Message struct {
	Title string
	Body  string
}

// Recorder keeps notifications in memory. It is used for dry runs and
// tests.
type Recorder struct {
	mu       sync.Mutex
	Messages []Message
	Err      error
}

// Name returns the name of the notifier.
func (r *Recorder) Name() string { return "recorder" }

// Notify records the message, or returns Err when set.
func (r *Recorder) Notify(_ context.Context, title, message string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.Messages = append(r.Messages, Message{Title: title, Body: message})
	return nil
}
