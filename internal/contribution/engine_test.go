package contribution_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/chama/internal/chama"
	"github.com/MrJamesThe3rd/chama/internal/contribution"
)

func TestCompute_ThreeMonthsPartialSurplus(t *testing.T) {
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	member := chama.Member{Name: "WANJIKU", CarryForward: 9000}

	fin := contribution.Compute(member, 4000, now)

	assert.Equal(t, int64(9000), fin.TotalPaid)
	assert.Equal(t, int64(12000), fin.TotalExpected)
	assert.Equal(t, int64(-3000), fin.NetBalance)
	require.Len(t, fin.Breakdown, 3)

	jan, feb, mar := fin.Breakdown[0], fin.Breakdown[1], fin.Breakdown[2]

	assert.Equal(t, contribution.StatusClear, jan.Status)
	assert.Equal(t, int64(5000), jan.Remaining)
	assert.True(t, jan.IsPast)

	assert.Equal(t, contribution.StatusClear, feb.Status)
	assert.Equal(t, int64(1000), feb.Remaining)

	assert.Equal(t, contribution.StatusPending, mar.Status)
	assert.Equal(t, int64(1000), mar.Allocated)
	assert.Equal(t, int64(3000), mar.Shortfall)
	assert.Equal(t, int64(0), mar.Remaining)
	assert.False(t, mar.IsPast)
}

func TestCompute_Statuses(t *testing.T) {
	now := time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		carryForward int64
		want         []contribution.Status
	}{
		{
			name:         "NothingPaid",
			carryForward: 0,
			want: []contribution.Status{
				contribution.StatusArrears, contribution.StatusArrears,
				contribution.StatusArrears, contribution.StatusPending,
			},
		},
		{
			name:         "FullyPaid",
			carryForward: 16000,
			want: []contribution.Status{
				contribution.StatusClear, contribution.StatusClear,
				contribution.StatusClear, contribution.StatusClear,
			},
		},
		{
			name:         "ShortfallDoesNotCarryIntoLaterMonths",
			carryForward: 6000,
			want: []contribution.Status{
				contribution.StatusClear, contribution.StatusArrears,
				contribution.StatusArrears, contribution.StatusPending,
			},
		},
		{
			name:         "NegativeWallet",
			carryForward: -500,
			want: []contribution.Status{
				contribution.StatusArrears, contribution.StatusArrears,
				contribution.StatusArrears, contribution.StatusPending,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fin := contribution.Compute(chama.Member{CarryForward: tt.carryForward}, 4000, now)

			got := make([]contribution.Status, 0, len(fin.Breakdown))
			for _, m := range fin.Breakdown {
				got = append(got, m.Status)
			}

			assert.Equal(t, tt.want, got)
			assert.Equal(t, fin.TotalPaid-fin.TotalExpected, fin.NetBalance)
		})
	}
}

func TestCompute_January(t *testing.T) {
	now := time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC)

	fin := contribution.Compute(chama.Member{CarryForward: 4000}, 4000, now)

	require.Len(t, fin.Breakdown, 1)
	assert.Equal(t, contribution.StatusClear, fin.Breakdown[0].Status)
	assert.Equal(t, int64(0), fin.NetBalance)

	current, ok := fin.CurrentMonth(now)
	require.True(t, ok)
	assert.Equal(t, time.January, current.Month.Month())
}

func TestInSafeZone(t *testing.T) {
	tests := []struct {
		day  int
		want bool
	}{
		{1, false},
		{2, false},
		{3, true},
		{25, true},
		{26, false},
	}

	for _, tt := range tests {
		now := time.Date(2026, 5, tt.day, 12, 0, 0, 0, time.UTC)
		assert.Equal(t, tt.want, contribution.InSafeZone(now), "day %d", tt.day)
	}
}
