package view

import (
	"time"

	"github.com/MrJamesThe3rd/chama/internal/chama"
)

// shiftMonth moves a month-start by n calendar months.
func shiftMonth(month time.Time, n int) time.Time {
	return chama.MonthStart(month).AddDate(0, n, 0)
}

func monthLabel(month time.Time) string {
	return month.Format("January 2006")
}

// monthRange returns [start, end) for month.
func monthRange(month time.Time) (time.Time, time.Time) {
	start := chama.MonthStart(month)
	return start, start.AddDate(0, 1, 0)
}
