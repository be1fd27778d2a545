// Package contribution derives a member's month-by-month contribution status.
//
// Surplus is allocated to months in chronological order. A month that cannot be
// fully covered is marked Pending (current month) or Arrears (past month) and
// exhausts whatever surplus was left; the shortfall is not carried forward as a
// negative into later months.
package contribution

import (
	"time"

	"github.com/MrJamesThe3rd/chama/internal/chama"
)

// Status is the obligation state of a single month.
type Status string

const (
	StatusClear   Status = "clear"
	StatusPending Status = "pending"
	StatusArrears Status = "arrears"
)

// Month is one entry of a member's breakdown.
type Month struct {
	Month     time.Time
	Expected  int64
	Allocated int64
	Shortfall int64
	Remaining int64 // Surplus left after this month
	Status    Status
	IsPast    bool
}

// Financials summarizes a member's position for the year to date.
type Financials struct {
	NetBalance    int64
	TotalPaid     int64
	TotalExpected int64
	Breakdown     []Month
}

// Compute builds the year-to-date financials for a member. Obligations are
// counted from January of now's year regardless of when the member joined.
func Compute(member chama.Member, monthlyContribution int64, now time.Time) Financials {
	months := chama.MonthsToDate(now)

	fin := Financials{
		TotalPaid:     member.CarryForward,
		TotalExpected: int64(len(months)) * monthlyContribution,
		Breakdown:     make([]Month, 0, len(months)),
	}
	fin.NetBalance = fin.TotalPaid - fin.TotalExpected

	running := max(member.CarryForward, 0)

	for _, m := range months {
		current := chama.SameMonth(m, now)
		entry := Month{
			Month:    m,
			Expected: monthlyContribution,
			IsPast:   !current,
		}

		if running >= monthlyContribution {
			entry.Status = StatusClear
			entry.Allocated = monthlyContribution
			running -= monthlyContribution
		} else {
			entry.Status = StatusArrears
			if current {
				entry.Status = StatusPending
			}

			entry.Allocated = running
			entry.Shortfall = monthlyContribution - running
			running = 0
		}

		entry.Remaining = running
		fin.Breakdown = append(fin.Breakdown, entry)
	}

	return fin
}

// CurrentMonth returns the breakdown entry for now's month, if present.
func (f Financials) CurrentMonth(now time.Time) (Month, bool) {
	for _, m := range f.Breakdown {
		if chama.SameMonth(m.Month, now) {
			return m, true
		}
	}

	return Month{}, false
}

// InSafeZone reports whether now falls in the on-time contribution window,
// the 3rd through the 25th of the month.
func InSafeZone(now time.Time) bool {
	return now.Day() >= 3 && now.Day() <= 25
}
