// Package reschedule shifts a task name by a modification expression:
// a date delta, an explicit time of day, a relative hour delta, or a
// combination ("3d+1400", "1d+3h").
package reschedule

import (
	"fmt"
	"time"

	"cloud.google.com/go/civil"

	"github.com/mattsolo1/nothing/pkg/taskname"
)

// DefaultTimePolicy picks the clock an hour delta starts from when the
// name has no time of its own.
type DefaultTimePolicy int

const (
	// TimeFromNow adds hours to the current clock time.
	TimeFromNow DefaultTimePolicy = iota
	// TimeFromMidnight adds hours to 00:00.
	TimeFromMidnight
)

func (p DefaultTimePolicy) String() string {
	if p == TimeFromMidnight {
		return "midnight"
	}
	return "now"
}

// ParsePolicy accepts "now" or "midnight".
func ParsePolicy(s string) (DefaultTimePolicy, error) {
	switch s {
	case "now", "":
		return TimeFromNow, nil
	case "midnight":
		return TimeFromMidnight, nil
	}
	return TimeFromNow, fmt.Errorf("unknown time policy %q (want now or midnight)", s)
}

// Engine applies modification expressions.
type Engine struct {
	Policy DefaultTimePolicy
}

func New(policy DefaultTimePolicy) *Engine {
	return &Engine{Policy: policy}
}

// Apply returns a new name with expr applied; n is not modified.
//
// Date arithmetic starts from the name's own date when it has one and
// from now's date otherwise. The result carries an ISO date. Decorators,
// title, rule and extension are kept as they are.
func (e *Engine) Apply(n *taskname.Name, expr string, now time.Time) (*taskname.Name, error) {
	x, err := ParseExpression(expr)
	if err != nil {
		return nil, err
	}
	return e.ApplyExpression(n, x, now)
}

// ApplyExpression is Apply for an already parsed expression.
func (e *Engine) ApplyExpression(n *taskname.Name, x Expression, now time.Time) (*taskname.Name, error) {
	out := n.Clone()
	if x.IsIdentity() {
		return out, nil
	}

	today := civil.DateOf(now)
	start := today
	if n.HasDate() {
		d, err := n.Date(today)
		if err != nil {
			return nil, &ModError{Expr: x.Text, Err: err}
		}
		start = d
	}

	date := start
	if x.HasDate {
		date = x.Date.Resolve(start)
	}
	clock, hasClock := n.Clock()

	if x.Clock != "" {
		clock, _ = civil.ParseTime(x.Clock[:2] + ":" + x.Clock[2:] + ":00")
		hasClock = true
	}

	if x.HasHours {
		base := clock
		if !hasClock {
			base = e.defaultClock(now)
		}
		shifted := civil.DateTime{Date: date, Time: base}.In(time.UTC).Add(time.Duration(x.Hours) * time.Hour)
		date, clock, hasClock = civil.DateOf(shifted), civil.TimeOf(shifted), true
	}

	out.DateExpression = date.String()
	if hasClock {
		out.Time = taskname.FormatClock(clock)
	}
	return out, nil
}

func (e *Engine) defaultClock(now time.Time) civil.Time {
	if e.Policy == TimeFromMidnight {
		return civil.Time{}
	}
	t := civil.TimeOf(now)
	return civil.Time{Hour: t.Hour, Minute: t.Minute}
}
