// Package recurrence decodes the repeat rule carried in a task name and
// computes the date of the next occurrence.
//
// Rule bodies:
//
//	3d, 2w, 1m, 1y      every n days / weeks / months / years
//	1w-mo-fr            every week on Monday and Friday
//	1m-15               every month on the 15th
//	2m-2mo, 1m-th       every n months on the nth weekday (nth defaults to 1)
//	4h                  every n hours (time of day only)
//	monday              every week on Monday
package recurrence

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mattsolo1/nothing/pkg/dateexpr"
)

// ErrUnknownRule is returned by Decode for bodies outside the grammar.
var ErrUnknownRule = errors.New("unknown recurrence rule")

// Rule is one of SimpleUnit, WeeklyMultiDay, MonthlyByDate,
// MonthlyByNthWeekday or HourUnit.
type Rule interface {
	fmt.Stringer
	isRule()
}

// SimpleUnit repeats every N days, weeks, months or years.
type SimpleUnit struct {
	N    int
	Unit dateexpr.Unit
}

// WeeklyMultiDay repeats on the listed weekdays.
type WeeklyMultiDay struct {
	N    int
	Days []time.Weekday
}

// MonthlyByDate repeats every N months on a fixed day of the month.
type MonthlyByDate struct {
	N   int
	Day int
}

// MonthlyByNthWeekday repeats every N months on the Nth given weekday.
type MonthlyByNthWeekday struct {
	N       int
	Nth     int
	Weekday time.Weekday
}

// HourUnit repeats every N hours and never moves the date by itself.
type HourUnit struct {
	N int
}

func (SimpleUnit) isRule()          {}
func (WeeklyMultiDay) isRule()      {}
func (MonthlyByDate) isRule()       {}
func (MonthlyByNthWeekday) isRule() {}
func (HourUnit) isRule()            {}

// Increment returns the calendar step of the rule.
func (r SimpleUnit) Increment() dateexpr.Increment {
	return dateexpr.UnitIncrement(r.N, r.Unit)
}

func (r SimpleUnit) String() string { return fmt.Sprintf("%d%c", r.N, r.Unit) }

func (r WeeklyMultiDay) String() string {
	codes := make([]string, len(r.Days))
	for i, d := range r.Days {
		codes[i] = dateexpr.WeekdayCode(d)
	}
	return fmt.Sprintf("%dw-%s", r.N, strings.Join(codes, "-"))
}

func (r MonthlyByDate) String() string { return fmt.Sprintf("%dm-%d", r.N, r.Day) }

func (r MonthlyByNthWeekday) String() string {
	return fmt.Sprintf("%dm-%d%s", r.N, r.Nth, dateexpr.WeekdayCode(r.Weekday))
}

func (r HourUnit) String() string { return fmt.Sprintf("%dh", r.N) }

// LooksLikeRule reports whether segment has the shape of a rule,
// optionally prefixed with the strict marker '@'. It is deliberately
// looser than Decode: "1w-xx" looks like a rule but does not decode.
func LooksLikeRule(segment string) bool {
	body := strings.TrimPrefix(segment, "@")
	if _, ok := dateexpr.ParseWeekdayName(body); ok {
		return true
	}
	n, unit, rest := splitHead(body)
	if n < 0 || !strings.ContainsRune("hdwmy", rune(unit)) {
		return false
	}
	return rest == "" || strings.HasPrefix(rest, "-")
}

// Decode parses a rule body. The strict marker must already be removed.
func Decode(body string) (Rule, error) {
	if wd, ok := dateexpr.ParseWeekdayName(body); ok {
		return WeeklyMultiDay{N: 1, Days: []time.Weekday{wd}}, nil
	}

	n, unit, rest := splitHead(body)
	if n < 0 {
		return nil, unknown(body)
	}

	if rest == "" {
		switch unit {
		case dateexpr.Hour:
			return HourUnit{N: n}, nil
		case dateexpr.Day, dateexpr.Week, dateexpr.Month, dateexpr.Year:
			return SimpleUnit{N: n, Unit: unit}, nil
		}
		return nil, unknown(body)
	}

	if !strings.HasPrefix(rest, "-") {
		return nil, unknown(body)
	}
	parts := strings.Split(rest[1:], "-")

	switch unit {
	case dateexpr.Week:
		days := make([]time.Weekday, 0, len(parts))
		for _, p := range parts {
			wd, ok := dateexpr.ParseWeekdayCode(p)
			if !ok {
				return nil, unknown(body)
			}
			days = append(days, wd)
		}
		return WeeklyMultiDay{N: n, Days: days}, nil

	case dateexpr.Month:
		if len(parts) != 1 || parts[0] == "" {
			return nil, unknown(body)
		}
		return decodeMonthly(body, n, parts[0])
	}

	return nil, unknown(body)
}

func decodeMonthly(body string, n int, part string) (Rule, error) {
	if day, err := strconv.Atoi(part); err == nil {
		if day < 1 || day > 31 {
			return nil, unknown(body)
		}
		return MonthlyByDate{N: n, Day: day}, nil
	}

	if len(part) < 2 {
		return nil, unknown(body)
	}
	wd, ok := dateexpr.ParseWeekdayCode(part[len(part)-2:])
	if !ok {
		return nil, unknown(body)
	}
	nth := 1
	if digits := part[:len(part)-2]; digits != "" {
		v, err := strconv.Atoi(digits)
		if err != nil || v < 1 || v > 5 {
			return nil, unknown(body)
		}
		nth = v
	}
	return MonthlyByNthWeekday{N: n, Nth: nth, Weekday: wd}, nil
}

// splitHead reads "<digits><unit>" from the front of body. n is -1
// when there is no digit run followed by a unit letter.
func splitHead(body string) (n int, unit dateexpr.Unit, rest string) {
	i := 0
	for i < len(body) && body[i] >= '0' && body[i] <= '9' {
		i++
	}
	if i == 0 || i >= len(body) {
		return -1, 0, ""
	}
	v, err := strconv.Atoi(body[:i])
	if err != nil {
		return -1, 0, ""
	}
	u := body[i]
	if u >= 'A' && u <= 'Z' {
		u += 'a' - 'A'
	}
	return v, dateexpr.Unit(u), body[i+1:]
}

func unknown(body string) error {
	return fmt.Errorf("%w: %q", ErrUnknownRule, body)
}
