package dateexpr

import (
	"time"

	"cloud.google.com/go/civil"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var weekdayNames = [7]string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}

var weekdayCodes = [7]string{"su", "mo", "tu", "we", "th", "fr", "sa"}

// ParseWeekdayName accepts a full English weekday name in any case.
func ParseWeekdayName(s string) (time.Weekday, bool) {
	folded := cases.Lower(language.English).String(s)
	for wd, name := range weekdayNames {
		if folded == name {
			return time.Weekday(wd), true
		}
	}
	return 0, false
}

// ParseWeekdayCode accepts a two-letter weekday code ("mo", "TH").
func ParseWeekdayCode(s string) (time.Weekday, bool) {
	folded := cases.Lower(language.English).String(s)
	for wd, code := range weekdayCodes {
		if folded == code {
			return time.Weekday(wd), true
		}
	}
	return 0, false
}

// WeekdayCode returns the two-letter code for wd.
func WeekdayCode(wd time.Weekday) string {
	return weekdayCodes[wd%7]
}

// WeekdayOf returns the day of the week for d.
func WeekdayOf(d civil.Date) time.Weekday {
	return d.In(time.UTC).Weekday()
}

// DaysUntil counts days from d to the next wd strictly after d. The
// result is always between 1 and 7.
func DaysUntil(d civil.Date, wd time.Weekday) int {
	ahead := (int(wd) - int(WeekdayOf(d)) + 7) % 7
	if ahead == 0 {
		ahead = 7
	}
	return ahead
}

// NextWeekday returns the first wd strictly after d.
func NextWeekday(d civil.Date, wd time.Weekday) civil.Date {
	return d.AddDays(DaysUntil(d, wd))
}

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ShiftMonth moves (year, month) by n calendar months.
func ShiftMonth(year int, month time.Month, n int) (int, time.Month) {
	total := year*12 + int(month-1) + n
	y := total / 12
	m := total % 12
	if m < 0 {
		m += 12
		y--
	}
	return y, time.Month(m + 1)
}

// AddMonths moves d by n calendar months, keeping the day of month when
// it exists and clamping to the last day of the target month when it
// does not (Jan 31 + 1 month = Feb 28/29).
func AddMonths(d civil.Date, n int) civil.Date {
	y, m := ShiftMonth(d.Year, d.Month, n)
	day := d.Day
	if last := DaysIn(y, m); day > last {
		day = last
	}
	return civil.Date{Year: y, Month: m, Day: day}
}

// IncrementKind tags an Increment.
type IncrementKind int

const (
	Days IncrementKind = iota
	Months
	Years
)

// Increment is a calendar step: a number of days, months or years.
type Increment struct {
	Kind IncrementKind
	N    int
}

// UnitIncrement converts "<n><unit>" into an Increment. Weeks become
// days; hours have no calendar meaning and yield a zero step.
func UnitIncrement(n int, u Unit) Increment {
	switch u {
	case Day:
		return Increment{Kind: Days, N: n}
	case Week:
		return Increment{Kind: Days, N: 7 * n}
	case Month:
		return Increment{Kind: Months, N: n}
	case Year:
		return Increment{Kind: Years, N: n}
	}
	return Increment{Kind: Days}
}

// AddTo applies the increment to d.
func (i Increment) AddTo(d civil.Date) civil.Date {
	switch i.Kind {
	case Months:
		return AddMonths(d, i.N)
	case Years:
		return AddMonths(d, 12*i.N)
	default:
		return d.AddDays(i.N)
	}
}
