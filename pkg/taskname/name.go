// Package taskname parses and renders task names.
//
// A task name packs scheduling metadata into dot-separated segments:
//
//	■2024-01-01+1800+.■my task.1w-mo-we.txt
//	│└────┬───┘ └┬─┘│ │└──┬──┘ └──┬───┘ └┬┘
//	│   date   time │ │ title    rule   extension
//	│        notify ┘ └ name decorators
//	└ date decorators
//
// Only the title is required. Parse followed by String returns the
// input unchanged.
package taskname

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"

	"cloud.google.com/go/civil"

	"github.com/mattsolo1/nothing/pkg/dateexpr"
	"github.com/mattsolo1/nothing/pkg/recurrence"
)

// Name is the parsed form of a task name.
type Name struct {
	DateDecorators []string `json:"date_decorators" yaml:"date_decorators"`
	DateExpression string   `json:"date,omitempty" yaml:"date,omitempty"`
	Time           string   `json:"time,omitempty" yaml:"time,omitempty"`
	Notify         bool     `json:"notify" yaml:"notify"`
	NameDecorators []string `json:"name_decorators" yaml:"name_decorators"`
	Title          string   `json:"title" yaml:"title"`
	Rule           string   `json:"rule,omitempty" yaml:"rule,omitempty"`
	Strict         bool     `json:"strict" yaml:"strict"`
	Extension      string   `json:"extension,omitempty" yaml:"extension,omitempty"`
}

// ParseOption adjusts Parse.
type ParseOption func(*parseOptions)

type parseOptions struct {
	dateless bool
}

// Dateless makes Parse treat a first segment that looks like a date but
// whose date expression does not parse (for example "today-call") as
// part of the title instead of failing. A bad time still fails.
func Dateless() ParseOption {
	return func(o *parseOptions) { o.dateless = true }
}

// Parse splits name into its segments.
func Parse(name string, options ...ParseOption) (*Name, error) {
	opts := &parseOptions{}
	for _, opt := range options {
		opt(opts)
	}

	parts := strings.Split(name, ".")
	n := &Name{DateDecorators: []string{}, NameDecorators: []string{}}

	// A lone segment is always the title.
	if len(parts) > 1 {
		decorators, body := splitDecorators(parts[0])
		if dateexpr.LooksLikeDate(body) {
			err := n.setDateSegment(body)
			switch {
			case err == nil:
				n.DateDecorators = decorators
				parts = parts[1:]
			case opts.dateless && errors.Is(err, ErrBadDate):
				*n = Name{DateDecorators: []string{}, NameDecorators: []string{}}
			default:
				return nil, &ParseError{Name: name, Segment: parts[0], Err: err}
			}
		}
	}

	n.NameDecorators, n.Title = splitDecorators(parts[0])
	if n.Title == "" {
		return nil, &ParseError{Name: name, Segment: parts[0], Err: ErrEmptyTitle}
	}
	rest := parts[1:]

	if len(rest) > 0 && recurrence.LooksLikeRule(rest[0]) {
		n.Rule = rest[0]
		if strings.HasPrefix(n.Rule, "@") {
			n.Strict = true
			n.Rule = n.Rule[1:]
		}
		rest = rest[1:]
	}

	if len(rest) > 0 {
		n.Extension = strings.Join(rest, ".")
		if rest[len(rest)-1] == "" {
			return nil, &ParseError{Name: name, Err: ErrBadExtension}
		}
	}

	return n, nil
}

// setDateSegment fills the date expression, time and notify flag from a
// date segment with its decorators already removed.
func (n *Name) setDateSegment(segment string) error {
	pieces := strings.Split(segment, "+")
	if _, err := dateexpr.Lex(pieces[0]); err != nil {
		return errors.Join(ErrBadDate, err)
	}
	n.DateExpression = pieces[0]

	switch len(pieces) {
	case 1:
	case 2:
		if pieces[1] == "" {
			n.Notify = true
		} else if isClock(pieces[1]) {
			n.Time = pieces[1]
		} else {
			return ErrBadTime
		}
	case 3:
		if !isClock(pieces[1]) || pieces[2] != "" {
			return ErrBadTime
		}
		n.Time = pieces[1]
		n.Notify = true
	default:
		return ErrBadTime
	}
	return nil
}

// String renders the name. The date segment, including its decorators,
// time and notify flag, is only written when a date expression is set.
func (n *Name) String() string {
	var sb strings.Builder

	if n.HasDate() {
		for _, d := range n.DateDecorators {
			sb.WriteString(d)
		}
		sb.WriteString(n.DateExpression)
		if n.Time != "" {
			sb.WriteString("+")
			sb.WriteString(n.Time)
		}
		if n.Notify {
			sb.WriteString("+")
		}
		sb.WriteString(".")
	}

	for _, d := range n.NameDecorators {
		sb.WriteString(d)
	}
	sb.WriteString(n.Title)

	if n.Rule != "" {
		sb.WriteString(".")
		if n.Strict {
			sb.WriteString("@")
		}
		sb.WriteString(n.Rule)
	}
	if n.Extension != "" {
		sb.WriteString(".")
		sb.WriteString(n.Extension)
	}
	return sb.String()
}

// HasDate reports whether the name carries a date segment.
func (n *Name) HasDate() bool { return n.DateExpression != "" }

// Date resolves the date expression against today.
func (n *Name) Date(today civil.Date) (civil.Date, error) {
	return dateexpr.Resolve(n.DateExpression, today)
}

// Clock returns the time of day, if the name has one.
func (n *Name) Clock() (civil.Time, bool) {
	if n.Time == "" {
		return civil.Time{}, false
	}
	return civil.Time{Hour: atoi2(n.Time[:2]), Minute: atoi2(n.Time[2:])}, true
}

// Due returns the moment the task falls due: its date at its time, or
// at midnight when it has no time. ok is false for undated names.
func (n *Name) Due(today civil.Date) (due civil.DateTime, ok bool, err error) {
	if !n.HasDate() {
		return civil.DateTime{}, false, nil
	}
	d, err := n.Date(today)
	if err != nil {
		return civil.DateTime{}, false, err
	}
	clock, _ := n.Clock()
	return civil.DateTime{Date: d, Time: clock}, true, nil
}

// Recurrence decodes the rule body.
func (n *Name) Recurrence() (recurrence.Rule, error) {
	return recurrence.Decode(n.Rule)
}

// Canonical returns a copy whose date expression is an ISO date.
func (n *Name) Canonical(today civil.Date) (*Name, error) {
	out := n.Clone()
	if !n.HasDate() {
		return out, nil
	}
	d, err := n.Date(today)
	if err != nil {
		return nil, err
	}
	out.DateExpression = d.String()
	return out, nil
}

// Clone returns a deep copy.
func (n *Name) Clone() *Name {
	out := *n
	out.DateDecorators = append([]string{}, n.DateDecorators...)
	out.NameDecorators = append([]string{}, n.NameDecorators...)
	return &out
}

// WithoutRule returns a copy with the recurrence rule removed.
func (n *Name) WithoutRule() *Name {
	out := n.Clone()
	out.Rule = ""
	out.Strict = false
	return out
}

func splitDecorators(segment string) (decorators []string, body string) {
	decorators = []string{}
	for len(segment) > 0 {
		r, size := utf8.DecodeRuneInString(segment)
		if !isDecorator(r) {
			break
		}
		decorators = append(decorators, segment[:size])
		segment = segment[size:]
	}
	return decorators, segment
}

func isDecorator(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-' && r != '+'
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
	return atoi2(s[:2]) < 24 && atoi2(s[2:]) < 60
}

func atoi2(s string) int {
	return int(s[0]-'0')*10 + int(s[1]-'0')
}

// FormatClock renders t as HHMM.
func FormatClock(t civil.Time) string {
	return string([]byte{
		byte('0' + t.Hour/10), byte('0' + t.Hour%10),
		byte('0' + t.Minute/10), byte('0' + t.Minute%10),
	})
}
