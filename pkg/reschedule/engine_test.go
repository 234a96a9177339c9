package reschedule

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattsolo1/nothing/pkg/taskname"
)

// Friday 2024-12-20, 10:15.
var now = time.Date(2024, time.December, 20, 10, 15, 0, 0, time.UTC)

func apply(t *testing.T, e *Engine, name, expr string) string {
	t.Helper()
	n, err := taskname.Parse(name)
	require.NoError(t, err)
	out, err := e.Apply(n, expr, now)
	require.NoError(t, err)
	return out.String()
}

func TestApply(t *testing.T) {
	const (
		withDate = "■2024-01-01.my-task.txt"
		withTime = "■2024-01-01+1500.my-task.txt"
		noDate   = "my-task.txt"
	)

	tests := []struct {
		name string
		in   string
		expr string
		want string
	}{
		{"days", "2024-01-01.my-task.txt", "3d", "2024-01-04.my-task.txt"},
		{"days keep decorators", withDate, "3d", "■2024-01-04.my-task.txt"},
		{"weeks", withDate, "2w", "■2024-01-15.my-task.txt"},
		{"months", withDate, "1m", "■2024-02-01.my-task.txt"},
		{"years", withDate, "1y", "■2025-01-01.my-task.txt"},
		{"undated starts today", noDate, "7d", "2024-12-27.my-task.txt"},
		{"time kept", withTime, "1w", "■2024-01-08+1500.my-task.txt"},
		{"days and time", withDate, "3d+1400", "■2024-01-04+1400.my-task.txt"},
		{"weeks and time", withDate, "2w+0930", "■2024-01-15+0930.my-task.txt"},
		{"time replaced", withTime, "1d+1830", "■2024-01-02+1830.my-task.txt"},
		{"undated with time", noDate, "7d+1200", "2024-12-27+1200.my-task.txt"},
		{"hours from now", withDate, "3h", "■2024-01-01+1315.my-task.txt"},
		{"hours from existing time", withTime, "5h", "■2024-01-01+2000.my-task.txt"},
		{"hours undated", noDate, "7h", "2024-12-20+1715.my-task.txt"},
		{"days and hours", withDate, "1d+3h", "■2024-01-02+1315.my-task.txt"},
		{"zero hours undated", noDate, "0h", "2024-12-20+1015.my-task.txt"},
		{"hours roll over midnight", "2024-01-01+2200.late.txt", "5h", "2024-01-02+0300.late.txt"},
		{"weekday from existing date", "2024-01-01.call.txt", "friday", "2024-01-05.call.txt"},
		{"tomorrow from existing date", "2024-01-01.call.txt", "tomorrow", "2024-01-02.call.txt"},
		{"today keeps existing date", "2024-01-01.call.txt", "today", "2024-01-01.call.txt"},
		{"absolute", "2024-01-01.call.txt", "2024-06-30", "2024-06-30.call.txt"},
		{"explicit time only", "2024-01-01.call.txt", "+1400", "2024-01-01+1400.call.txt"},
		{"relative date canonicalized", "monday.call.txt", "1d", "2024-12-24.call.txt"},
		{"month end clamps", "2024-01-31.rent.txt", "1m", "2024-02-29.rent.txt"},
	}

	e := New(TimeFromNow)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, apply(t, e, tt.in, tt.expr))
		})
	}
}

func TestApplyZeroIsIdentity(t *testing.T) {
	e := New(TimeFromNow)
	for _, name := range []string{
		"■2024-01-01.my-task.txt",
		"■»monday+.»task.@1w-mo.txt",
		"tomorrow+0930.standup",
		"my-task.txt",
	} {
		assert.Equal(t, name, apply(t, e, name, "0d"), name)
	}
}

func TestApplyPreservesDecorators(t *testing.T) {
	e := New(TimeFromNow)
	got := apply(t, e, "■»2024-01-01+.»task.@1w-mo.txt", "2d")
	assert.Equal(t, "■»2024-01-03+.»task.@1w-mo.txt", got)
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	n, err := taskname.Parse("■2024-01-01.my-task.txt")
	require.NoError(t, err)

	_, err = New(TimeFromNow).Apply(n, "3d+1400", now)
	require.NoError(t, err)
	assert.Equal(t, "■2024-01-01.my-task.txt", n.String())
}

func TestMidnightPolicy(t *testing.T) {
	e := New(TimeFromMidnight)
	assert.Equal(t, "■2024-01-01+0300.my-task.txt", apply(t, e, "■2024-01-01.my-task.txt", "3h"))
	assert.Equal(t, "2024-01-01+2000.my-task.txt", apply(t, e, "2024-01-01+1500.my-task.txt", "5h"))
}

func TestApplyInvalid(t *testing.T) {
	n, err := taskname.Parse("■2024-01-01.my-task.txt")
	require.NoError(t, err)

	for _, expr := range []string{"", "invalid", "3x", "3d+14", "3d+1400+", "+", "2024-02-30", "3d+2500"} {
		t.Run(expr, func(t *testing.T) {
			_, err := New(TimeFromNow).Apply(n, expr, now)
			require.Error(t, err)

			var merr *ModError
			require.True(t, errors.As(err, &merr))
			assert.Equal(t, expr, merr.Expr)
			assert.True(t, errors.Is(err, ErrUnknownExpression))
		})
	}
}

func TestApplyHoursOutOfRange(t *testing.T) {
	n, err := taskname.Parse("2024-01-01+0900.my-task.txt")
	require.NoError(t, err)

	for _, expr := range []string{"9223372036854775807h", "99999999999999999999h", "1d+9000000h", "878401h"} {
		t.Run(expr, func(t *testing.T) {
			_, err := New(TimeFromNow).Apply(n, expr, now)
			var merr *ModError
			require.True(t, errors.As(err, &merr))
			assert.Equal(t, expr, merr.Expr)
			assert.ErrorIs(t, err, ErrHoursOutOfRange)
		})
	}

	got, err := New(TimeFromNow).Apply(n, fmt.Sprintf("%dh", MaxHours), now)
	require.NoError(t, err)
	assert.Equal(t, "2124-03-17+0900.my-task.txt", got.String())
}

func TestParseExpression(t *testing.T) {
	x, err := ParseExpression("1d+3h")
	require.NoError(t, err)
	assert.True(t, x.HasDate)
	assert.True(t, x.HasHours)
	assert.Equal(t, 3, x.Hours)
	assert.False(t, x.IsIdentity())

	x, err = ParseExpression("0d")
	require.NoError(t, err)
	assert.True(t, x.IsIdentity())

	x, err = ParseExpression("0d+0900")
	require.NoError(t, err)
	assert.False(t, x.IsIdentity())
	assert.Equal(t, "0900", x.Clock)
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("midnight")
	require.NoError(t, err)
	assert.Equal(t, TimeFromMidnight, p)
	assert.Equal(t, "midnight", p.String())

	p, err = ParsePolicy("now")
	require.NoError(t, err)
	assert.Equal(t, TimeFromNow, p)

	_, err = ParsePolicy("noon")
	assert.Error(t, err)
}
