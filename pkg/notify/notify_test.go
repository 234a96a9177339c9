package notify

import (
	"context"
	"errors"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubDesktop replaces the desktop notification service for one test.
func stubDesktop(t *testing.T, fn func(title, message string) error) {
	t.Helper()
	orig := desktop
	desktop = fn
	t.Cleanup(func() { desktop = orig })
}

func TestSystemDesktop(t *testing.T) {
	var got []Message
	stubDesktop(t, func(title, message string) error {
		got = append(got, Message{Title: title, Body: message})
		return nil
	})

	s := NewSystem("")
	assert.Equal(t, "desktop", s.Name())
	require.NoError(t, s.Notify(context.Background(), "Task Notification", "Task due: a.txt"))
	assert.Equal(t, []Message{{Title: "Task Notification", Body: "Task due: a.txt"}}, got)
}

func TestSystemDesktopError(t *testing.T) {
	stubDesktop(t, func(string, string) error { return errors.New("no dbus session") })

	err := NewSystem("").Notify(context.Background(), "t", "m")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no dbus session")
}

func TestSystemDesktopCancelled(t *testing.T) {
	stubDesktop(t, func(string, string) error {
		t.Fatal("cancelled context must not notify")
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, NewSystem("").Notify(ctx, "t", "m"), context.Canceled)
}

func TestSystemCommandOverride(t *testing.T) {
	stubDesktop(t, func(string, string) error {
		t.Fatal("a configured command replaces the desktop service")
		return nil
	})

	s := NewSystem("my-notifier --urgent")
	assert.Equal(t, "my-notifier", s.Name())
	assert.Equal(t, []string{"my-notifier", "--urgent", "T", "M"}, s.argv("T", "M"))

	err := NewSystem("no-such-notifier-command").Notify(context.Background(), "t", "m")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found in PATH")
}

func TestSystemCommandRuns(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs a POSIX true and false")
	}
	require.NoError(t, NewSystem("true").Notify(context.Background(), "t", "m"))
	assert.Error(t, NewSystem("false").Notify(context.Background(), "t", "m"))
}

func TestRecorder(t *testing.T) {
	r := &Recorder{}
	require.NoError(t, r.Notify(context.Background(), "t", "m"))
	assert.Equal(t, []Message{{Title: "t", Body: "m"}}, r.Messages)

	r.Err = errors.New("offline")
	assert.Error(t, r.Notify(context.Background(), "t", "m"))
	assert.Len(t, r.Messages, 1)
}
