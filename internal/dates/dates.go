package dates

import (
	"fmt"
	"time"

	"github.com/kmahoney/tend/internal/constants"
)

// Today returns the current local calendar day as YYYY-MM-DD. The local wall
// clock is used deliberately: day keys join the entire completion log, and
// mixing UTC-derived keys would corrupt streaks near midnight.
func Today() string {
	return Day(time.Now())
}

// Day formats a time as its local calendar day (YYYY-MM-DD).
func Day(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// ParseDay parses a YYYY-MM-DD day key.
func ParseDay(day string) (time.Time, error) {
	t, err := time.ParseInLocation(constants.DateFormat, day, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD)", day)
	}
	return t, nil
}

// Midnight truncates a time to the start of its local calendar day.
func Midnight(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// AddDays shifts a time by n calendar days.
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// StartOfWeek returns midnight of the most recent configured week-start day
// at or before t.
func StartOfWeek(t time.Time) time.Time {
	t = Midnight(t)
	offset := int(t.Weekday()-constants.WeekStart+7) % 7
	return AddDays(t, -offset)
}

// StartOfMonth returns midnight of the first day of t's month.
func StartOfMonth(t time.Time) time.Time {
	year, month, _ := t.Date()
	return time.Date(year, month, 1, 0, 0, 0, 0, t.Location())
}

// StartOfYear returns midnight of January 1 of t's year.
func StartOfYear(t time.Time) time.Time {
	return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
}

// EachDay returns midnight of every day from start through end inclusive.
func EachDay(start, end time.Time) []time.Time {
	start, end = Midnight(start), Midnight(end)
	var days []time.Time
	for d := start; !d.After(end); d = AddDays(d, 1) {
		days = append(days, d)
	}
	return days
}

// EachWeekStart returns the week-start day of every week touching the
// interval [start, end].
func EachWeekStart(start, end time.Time) []time.Time {
	var weeks []time.Time
	for w := StartOfWeek(start); !w.After(Midnight(end)); w = AddDays(w, 7) {
		weeks = append(weeks, w)
	}
	return weeks
}

// EachMonthStart returns the first day of every month touching the interval
// [start, end].
func EachMonthStart(start, end time.Time) []time.Time {
	var months []time.Time
	for m := StartOfMonth(start); !m.After(Midnight(end)); m = m.AddDate(0, 1, 0) {
		months = append(months, m)
	}
	return months
}

// Within reports whether t falls inside the closed interval [start, end],
// comparing calendar days.
func Within(t, start, end time.Time) bool {
	t, start, end = Midnight(t), Midnight(start), Midnight(end)
	return !t.Before(start) && !t.After(end)
}
