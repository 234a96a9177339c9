package dateexpr

import (
	"strconv"
	"time"

	"cloud.google.com/go/civil"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Kind identifies which matcher produced a Token.
type Kind int

const (
	KindInvalid Kind = iota
	KindAbsolute
	KindToday
	KindTomorrow
	KindWeekday
	KindRelative
)

func (k Kind) String() string {
	switch k {
	case KindAbsolute:
		return "absolute"
	case KindToday:
		return "today"
	case KindTomorrow:
		return "tomorrow"
	case KindWeekday:
		return "weekday"
	case KindRelative:
		return "relative"
	default:
		return "invalid"
	}
}

// Unit is the suffix of a relative expression such as "3d".
type Unit byte

const (
	Day   Unit = 'd'
	Week  Unit = 'w'
	Month Unit = 'm'
	Year  Unit = 'y'
	Hour  Unit = 'h'
)

// Token is one lexed date expression.
type Token struct {
	Kind    Kind
	Text    string
	Date    civil.Date   // KindAbsolute
	Weekday time.Weekday // KindWeekday
	N       int          // KindRelative
	Unit    Unit         // KindRelative
}

// IsZeroDelta reports whether the token is a relative expression that
// moves a date by nothing, e.g. "0d".
func (t Token) IsZeroDelta() bool {
	return t.Kind == KindRelative && t.N == 0
}

// Resolve turns the token into a date using base as "today".
func (t Token) Resolve(base civil.Date) civil.Date {
	switch t.Kind {
	case KindAbsolute:
		return t.Date
	case KindToday:
		return base
	case KindTomorrow:
		return base.AddDays(1)
	case KindWeekday:
		return NextWeekday(base, t.Weekday)
	case KindRelative:
		return UnitIncrement(t.N, t.Unit).AddTo(base)
	}
	return base
}

// A matcher recognises one token shape at the start of s. consumed is
// the byte length of the match; ok is false when the shape is absent.
type matcher struct {
	name  string
	match func(s string) (tok Token, consumed int, ok bool)
}

// matchers are tried in order. Absolute dates come before relative
// expressions so "2024-01-01" is never read as "2024" plus garbage.
var matchers = []matcher{
	{"absolute", matchAbsolute},
	{"today", matchKeyword("today", KindToday)},
	{"tomorrow", matchKeyword("tomorrow", KindTomorrow)},
	{"weekday", matchWeekday},
	{"relative", matchRelative(dateUnits)},
}

var dateUnits = []Unit{Day, Week, Month, Year}

func matchAbsolute(s string) (Token, int, bool) {
	if len(s) < 10 {
		return Token{}, 0, false
	}
	for i := 0; i < 10; i++ {
		switch i {
		case 4, 7:
			if s[i] != '-' {
				return Token{}, 0, false
			}
		default:
			if !isDigit(s[i]) {
				return Token{}, 0, false
			}
		}
	}
	return Token{Kind: KindAbsolute, Text: s[:10]}, 10, true
}

func matchKeyword(word string, kind Kind) func(string) (Token, int, bool) {
	return func(s string) (Token, int, bool) {
		if !hasFoldedPrefix(s, word) {
			return Token{}, 0, false
		}
		return Token{Kind: kind, Text: s[:len(word)]}, len(word), true
	}
}

func matchWeekday(s string) (Token, int, bool) {
	for wd, name := range weekdayNames {
		if hasFoldedPrefix(s, name) {
			return Token{Kind: KindWeekday, Text: s[:len(name)], Weekday: time.Weekday(wd)}, len(name), true
		}
	}
	return Token{}, 0, false
}

func matchRelative(units []Unit) func(string) (Token, int, bool) {
	return func(s string) (Token, int, bool) {
		i := 0
		for i < len(s) && isDigit(s[i]) {
			i++
		}
		if i == 0 || i >= len(s) {
			return Token{}, 0, false
		}
		u := Unit(lowerASCII(s[i]))
		for _, want := range units {
			if u == want {
				n, err := strconv.Atoi(s[:i])
				if err != nil {
					return Token{}, 0, false
				}
				return Token{Kind: KindRelative, Text: s[:i+1], N: n, Unit: u}, i + 1, true
			}
		}
		return Token{}, 0, false
	}
}

// Lex reads s as exactly one date expression.
func Lex(s string) (Token, error) {
	for _, m := range matchers {
		tok, consumed, ok := m.match(s)
		if !ok {
			continue
		}
		if consumed != len(s) {
			return Token{}, &ResolveError{Expr: s, Err: ErrUnknownExpression}
		}
		if tok.Kind == KindAbsolute {
			d, err := civil.ParseDate(tok.Text)
			if err != nil || !d.IsValid() {
				return Token{}, &ResolveError{Expr: s, Err: ErrInvalidDate}
			}
			tok.Date = d
		}
		return tok, nil
	}
	return Token{}, &ResolveError{Expr: s, Err: ErrUnknownExpression}
}

// LooksLikeDate reports whether s starts with something shaped like a
// date expression. It does not validate the whole string; "3days"
// looks like a date but does not lex.
func LooksLikeDate(s string) bool {
	for _, m := range matchers {
		if _, _, ok := m.match(s); ok {
			return true
		}
	}
	return false
}

// hasFoldedPrefix compares the leading len(word) bytes of s with word
// ignoring case. word must be lower-case ASCII.
func hasFoldedPrefix(s, word string) bool {
	if len(s) < len(word) {
		return false
	}
	return cases.Lower(language.English).String(s[:len(word)]) == word
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func lowerASCII(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}
