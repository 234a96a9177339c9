package reschedule

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/mattsolo1/nothing/pkg/dateexpr"
)

var (
	ErrUnknownExpression = errors.New("unrecognized modification expression")
	ErrHoursOutOfRange   = fmt.Errorf("hour delta exceeds %dh", MaxHours)
)

// MaxHours is the largest hour delta an expression may carry, about a
// century.
const MaxHours = 100 * 366 * 24

// ModError reports an expression Apply could not use.
type ModError struct {
	Expr string
	Err  error
}

func (e *ModError) Error() string {
	return fmt.Sprintf("modify with %q: %v", e.Expr, e.Err)
}

func (e *ModError) Unwrap() error { return e.Err }

// Expression is a parsed modification such as "3d+1400" or "5h".
type Expression struct {
	Text string

	// Date is the date part; HasDate is false for "5h" or "+1400".
	Date    dateexpr.Token
	HasDate bool

	// Clock is an explicit HHMM time.
	Clock string

	// Hours is a relative hour delta; HasHours distinguishes "0h" from none.
	Hours    int
	HasHours bool
}

// HasTime reports whether the expression touches the time of day.
func (x Expression) HasTime() bool { return x.Clock != "" || x.HasHours }

// IsIdentity reports whether applying the expression changes nothing,
// e.g. "0d".
func (x Expression) IsIdentity() bool {
	return x.HasDate && x.Date.IsZeroDelta() && !x.HasTime()
}

// ParseExpression reads expr. Accepted forms:
//
//	3d  2w  1m  1y  today  tomorrow  friday  2024-06-01
//	3d+1400  friday+0930  1d+3h
//	5h  +1400
func ParseExpression(expr string) (Expression, error) {
	x := Expression{Text: expr}
	if expr == "" {
		return x, &ModError{Expr: expr, Err: ErrUnknownExpression}
	}

	if n, ok, err := hours(expr); ok {
		if err != nil {
			return x, &ModError{Expr: expr, Err: err}
		}
		x.Hours, x.HasHours = n, true
		return x, nil
	}

	parts := strings.Split(expr, "+")
	if len(parts) > 2 {
		return x, &ModError{Expr: expr, Err: ErrUnknownExpression}
	}

	if parts[0] != "" {
		tok, err := dateexpr.Lex(parts[0])
		if err != nil {
			return x, &ModError{Expr: expr, Err: errors.Join(ErrUnknownExpression, err)}
		}
		x.Date, x.HasDate = tok, true
	}

	if len(parts) == 2 {
		switch n, ok, err := hours(parts[1]); {
		case ok && err != nil:
			return x, &ModError{Expr: expr, Err: err}
		case ok:
			x.Hours, x.HasHours = n, true
		case isClock(parts[1]):
			x.Clock = parts[1]
		default:
			return x, &ModError{Expr: expr, Err: ErrUnknownExpression}
		}
	}

	if !x.HasDate && !x.HasTime() {
		return x, &ModError{Expr: expr, Err: ErrUnknownExpression}
	}
	return x, nil
}

// hours reads "<digits>h". ok reports the shape; err is set when the
// delta is larger than MaxHours.
func hours(s string) (n int, ok bool, err error) {
	if len(s) < 2 || (s[len(s)-1] != 'h' && s[len(s)-1] != 'H') {
		return 0, false, nil
	}
	digits := s[:len(s)-1]
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return 0, false, nil
		}
	}
	n, err = strconv.Atoi(digits)
	if err != nil || n > MaxHours {
		return 0, true, ErrHoursOutOfRange
	}
	return n, true, nil
}

func isClock(s string) bool {
	if len(s) != 4 {
		return false
	}
	for i := 0; i < 4; i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	h, _ := strconv.Atoi(s[:2])
	m, _ := strconv.Atoi(s[2:])
	return h < 24 && m < 60
}
