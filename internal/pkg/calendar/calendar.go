// Package calendar holds the day-boundary and working-day rules shared by the
// attendance core. All helpers work on wall-clock fields so results do not
// drift across DST transitions.
package calendar

import "time"

// DateOnly strips the time-of-day portion, keeping the location.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DayBounds returns the inclusive start and end instants of the calendar day
// containing t: 00:00:00.000 through 23:59:59.999 local time. Every "is this
// timestamp on day D" query is bounded by this pair.
func DayBounds(t time.Time) (start, end time.Time) {
	start = DateOnly(t)
	end = time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), t.Location())
	return start, end
}

// SameDay reports whether a and b fall on the same calendar day in a's location.
func SameDay(a, b time.Time) bool {
	b = b.In(a.Location())
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// WeekOfMonth returns the 1-based week number of t within its month. The first
// week is padded with the weekday offset of the 1st, so a month starting on
// Wednesday places day 5 in week 1 and day 6 in week 2.
func WeekOfMonth(t time.Time) int {
	firstDay := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	offset := int(firstDay.Weekday()) // 0 = Sunday
	return (t.Day() + offset + 6) / 7
}

// IsWeekOff reports whether t falls on a company week-off day. The pattern
// alternates by week-of-month parity: odd weeks (1st, 3rd, 5th) have both
// Saturday and Sunday off, even weeks (2nd, 4th, 6th) only Sunday. The rule is
// fixed company policy, not configuration.
func IsWeekOff(t time.Time) bool {
	wd := t.Weekday()
	if wd != time.Saturday && wd != time.Sunday {
		return false
	}
	if WeekOfMonth(t)%2 == 1 {
		return true // odd week: Saturday and Sunday
	}
	return wd == time.Sunday // even week: Sunday only
}

// ExpandRange materializes the inclusive day-by-day sequence from 'from'
// through 'to'. Each day is rebuilt from calendar fields rather than by adding
// 24h, so the sequence never skips or repeats a day around DST changes. An
// inverted range yields nil.
func ExpandRange(from, to time.Time) []time.Time {
	from = DateOnly(from)
	to = DateOnly(to)
	if to.Before(from) {
		return nil
	}

	var days []time.Time
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// DaysInclusive counts the calendar days in the inclusive [from, to] span.
func DaysInclusive(from, to time.Time) int {
	return len(ExpandRange(from, to))
}
