package recurrence

import (
	"cloud.google.com/go/civil"

	"github.com/mattsolo1/nothing/pkg/dateexpr"
)

// Next returns the occurrence that follows anchor. ok is false when the
// rule cannot be satisfied for the target month (day 31 in a 30-day
// month, a fifth Monday that does not exist); callers skip the spawn.
//
// HourUnit rules return anchor unchanged: the time of day moves, the
// date does not.
func Next(anchor civil.Date, rule Rule) (next civil.Date, ok bool) {
	switch r := rule.(type) {
	case SimpleUnit:
		return r.Increment().AddTo(anchor), true

	case WeeklyMultiDay:
		// The week cadence N is not applied; the nearest listed weekday wins.
		if len(r.Days) == 0 {
			return civil.Date{}, false
		}
		best := dateexpr.NextWeekday(anchor, r.Days[0])
		for _, wd := range r.Days[1:] {
			if c := dateexpr.NextWeekday(anchor, wd); c.Before(best) {
				best = c
			}
		}
		return best, true

	case MonthlyByDate:
		y, m := dateexpr.ShiftMonth(anchor.Year, anchor.Month, r.N)
		if r.Day > dateexpr.DaysIn(y, m) {
			return civil.Date{}, false
		}
		return civil.Date{Year: y, Month: m, Day: r.Day}, true

	case MonthlyByNthWeekday:
		y, m := dateexpr.ShiftMonth(anchor.Year, anchor.Month, r.N)
		first := civil.Date{Year: y, Month: m, Day: 1}
		offset := (int(r.Weekday) - int(dateexpr.WeekdayOf(first)) + 7) % 7
		d := first.AddDays(offset + (r.Nth-1)*7)
		if d.Month != m {
			return civil.Date{}, false
		}
		return d, true

	case HourUnit:
		return anchor, true
	}
	return civil.Date{}, false
}
