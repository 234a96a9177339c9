package recurrence

import (
	"fmt"
	"strings"

	"github.com/mattsolo1/nothing/pkg/dateexpr"
)

var unitNames = map[dateexpr.Unit]string{
	dateexpr.Day:   "day",
	dateexpr.Week:  "week",
	dateexpr.Month: "month",
	dateexpr.Year:  "year",
	dateexpr.Hour:  "hour",
}

// Describe renders rule in words, e.g. "every 2 weeks on mon, wed".
func Describe(rule Rule) string {
	switch r := rule.(type) {
	case SimpleUnit:
		return every(r.N, unitNames[r.Unit])
	case HourUnit:
		return every(r.N, "hour")
	case WeeklyMultiDay:
		days := make([]string, len(r.Days))
		for i, d := range r.Days {
			days[i] = strings.ToLower(d.String()[:3])
		}
		return every(r.N, "week") + " on " + strings.Join(days, ", ")
	case MonthlyByDate:
		return every(r.N, "month") + " on day " + fmt.Sprint(r.Day)
	case MonthlyByNthWeekday:
		return fmt.Sprintf("%s on the %s %s", every(r.N, "month"), ordinal(r.Nth), r.Weekday)
	}
	return rule.String()
}

func every(n int, unit string) string {
	if n == 1 {
		return "every " + unit
	}
	return fmt.Sprintf("every %d %ss", n, unit)
}

func ordinal(n int) string {
	switch n {
	case 1:
		return "1st"
	case 2:
		return "2nd"
	case 3:
		return "3rd"
	}
	return fmt.Sprintf("%dth", n)
}
