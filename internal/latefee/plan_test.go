package latefee_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/chama/internal/chama"
	"github.com/MrJamesThe3rd/chama/internal/latefee"
	"github.com/MrJamesThe3rd/chama/internal/snapshot"
)

func month(m time.Month) time.Time {
	return time.Date(2025, m, 1, 0, 0, 0, 0, time.UTC)
}

func newSnapshot(members ...*chama.Member) *snapshot.Snapshot {
	return &snapshot.Snapshot{
		Members:  members,
		Settings: chama.Settings{MonthlyContribution: 4000, LateFeeAmount: 500},
	}
}

func TestDue(t *testing.T) {
	tests := []struct {
		name         string
		carryForward int64
		monthIndex   int
		month        time.Time
		now          time.Time
		want         bool
	}{
		{name: "CoveredJanuary", carryForward: 4000, monthIndex: 0, month: month(time.January), now: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), want: false},
		{name: "ShortJanuary", carryForward: 3999, monthIndex: 0, month: month(time.January), now: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), want: true},
		{name: "CumulativeFebruary", carryForward: 7000, monthIndex: 1, month: month(time.February), now: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), want: true},
		{name: "GraceOnFirstDay", carryForward: 0, monthIndex: 1, month: month(time.February), now: time.Date(2025, 3, 1, 23, 59, 0, 0, time.UTC), want: false},
		{name: "DueOnSecondDay", carryForward: 0, monthIndex: 1, month: month(time.February), now: time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC), want: true},
		{name: "NegativeWallet", carryForward: -500, monthIndex: 0, month: month(time.January), now: time.Date(2025, 2, 5, 0, 0, 0, 0, time.UTC), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := latefee.Due(tt.carryForward, 4000, tt.monthIndex, tt.month, tt.now)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPlan(t *testing.T) {
	now := time.Date(2025, time.March, 14, 10, 0, 0, 0, time.UTC)

	behind := &chama.Member{ID: uuid.New(), Name: "KAMAU", CarryForward: 3000}
	partial := &chama.Member{ID: uuid.New(), Name: "NJERI", CarryForward: 4000}
	ahead := &chama.Member{ID: uuid.New(), Name: "ODHIAMBO", CarryForward: 9000}

	plan := latefee.Plan(newSnapshot(behind, partial, ahead), now)

	type got struct {
		name  string
		month time.Month
	}

	var keys []got
	for _, p := range plan {
		assert.Equal(t, int64(500), p.Fee)
		keys = append(keys, got{name: p.Member.Name, month: p.Month.Month()})
	}

	assert.Equal(t, []got{
		{name: "KAMAU", month: time.January},
		{name: "KAMAU", month: time.February},
		{name: "NJERI", month: time.February},
	}, keys)
}

func TestPlan_NeverIncludesCurrentMonth(t *testing.T) {
	m := &chama.Member{ID: uuid.New(), Name: "KAMAU"}

	plan := latefee.Plan(newSnapshot(m), time.Date(2025, time.January, 28, 0, 0, 0, 0, time.UTC))
	assert.Empty(t, plan)
}

func TestPlan_SkipsPenaltiesInSnapshot(t *testing.T) {
	now := time.Date(2025, time.March, 14, 0, 0, 0, 0, time.UTC)
	m := &chama.Member{ID: uuid.New(), Name: "KAMAU"}
	jan := month(time.January)

	snap := newSnapshot(m)
	snap.Transactions = []*chama.Transaction{
		{MemberID: m.ID, Kind: chama.KindLatePenalty, Amount: -500, Period: &jan},
		// A manual fine for February does not count as its late fee.
		{MemberID: m.ID, Kind: chama.KindFine, Amount: -500, Period: new(month(time.February))},
	}

	plan := latefee.Plan(snap, now)
	require.Len(t, plan, 1)
	assert.Equal(t, time.February, plan[0].Month.Month())
}

func TestPlan_NoFeeConfigured(t *testing.T) {
	m := &chama.Member{ID: uuid.New(), Name: "KAMAU"}
	snap := newSnapshot(m)
	snap.Settings.LateFeeAmount = 0

	assert.Empty(t, latefee.Plan(snap, time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC)))
}
