package taskname

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyTitle   = errors.New("empty title")
	ErrBadDate      = errors.New("malformed date segment")
	ErrBadTime      = errors.New("malformed time")
	ErrBadExtension = errors.New("empty extension")
)

// ParseError reports why a name could not be parsed. Err wraps one of
// the sentinel errors above.
type ParseError struct {
	Name    string
	Segment string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Segment != "" {
		return fmt.Sprintf("parse %q: segment %q: %v", e.Name, e.Segment, e.Err)
	}
	return fmt.Sprintf("parse %q: %v", e.Name, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
