// Package dateexpr lexes and resolves the date expressions used in task
// names: absolute dates (2024-01-31), symbolic days (today, tomorrow,
// weekday names) and relative offsets (3d, 2w, 1m, 1y).
//
// Nothing in this package reads the clock. Every resolution takes the
// reference date from the caller.
package dateexpr

import (
	"errors"
	"fmt"

	"cloud.google.com/go/civil"
)

var (
	ErrUnknownExpression = errors.New("unknown date expression")
	ErrInvalidDate       = errors.New("invalid calendar date")
)

// ResolveError reports a date expression that could not be resolved.
type ResolveError struct {
	Expr string
	Err  error
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("resolve %q: %v", e.Expr, e.Err)
}

func (e *ResolveError) Unwrap() error { return e.Err }

// Resolve turns expr into a calendar date relative to today.
func Resolve(expr string, today civil.Date) (civil.Date, error) {
	tok, err := Lex(expr)
	if err != nil {
		return civil.Date{}, err
	}
	return tok.Resolve(today), nil
}
