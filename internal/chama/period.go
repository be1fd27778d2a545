package chama

import (
	"fmt"
	"time"
)

const periodLayout = "2006-01"

// MonthStart truncates t to the first instant of its month in t's location.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// MonthsToDate returns the first day of every month from January of now's year
// through now's month, inclusive.
func MonthsToDate(now time.Time) []time.Time {
	months := make([]time.Time, 0, int(now.Month()))
	for m := time.January; m <= now.Month(); m++ {
		months = append(months, time.Date(now.Year(), m, 1, 0, 0, 0, 0, now.Location()))
	}

	return months
}

// SameMonth reports whether a and b fall in the same calendar month.
func SameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// ParsePeriod parses a "YYYY-MM" string into the first day of that month.
func ParsePeriod(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(periodLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing period %q: %w", s, err)
	}

	return t, nil
}

// PeriodKey formats a month as "YYYY-MM".
func PeriodKey(t time.Time) string {
	return t.Format(periodLayout)
}

// ClockIn returns a time source reporting the current time in loc.
func ClockIn(loc *time.Location) func() time.Time {
	return func() time.Time { return time.Now().In(loc) }
}
