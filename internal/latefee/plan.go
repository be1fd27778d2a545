package latefee

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/chama/internal/chama"
	"github.com/MrJamesThe3rd/chama/internal/snapshot"
)

// Penalty is one late fee due for a member and missed month.
type Penalty struct {
	Member *chama.Member
	Month  time.Time // First day of the missed month
	Fee    int64
}

// Due reports whether a member with the given wallet owes a late fee for the
// month at monthIndex (0 = January). Obligations are cumulative from January,
// and a fee only becomes due from the 2nd day of the following month.
func Due(carryForward, monthlyContribution int64, monthIndex int, month, now time.Time) bool {
	obligation := int64(monthIndex+1) * monthlyContribution
	if carryForward >= obligation {
		return false
	}

	deadline := chama.MonthStart(month).AddDate(0, 1, 1)

	return !now.Before(deadline)
}

// Plan lists the penalties a sweep at now should post. Only months strictly
// before now's month are considered, every month is measured against the
// member's wallet as loaded, and penalties already in the snapshot are left
// out. The store still rejects duplicates the snapshot did not see.
func Plan(snap *snapshot.Snapshot, now time.Time) []Penalty {
	fee := snap.Settings.LateFeeAmount
	monthly := snap.Settings.MonthlyContribution

	if fee <= 0 || monthly <= 0 {
		return nil
	}

	months := chama.MonthsToDate(now)
	past := months[:len(months)-1]

	posted := existing(snap.Transactions)

	var plan []Penalty

	for _, m := range snap.Members {
		for i, month := range past {
			if !Due(m.CarryForward, monthly, i, month, now) {
				continue
			}

			if _, ok := posted[key{memberID: m.ID, period: chama.PeriodKey(month)}]; ok {
				continue
			}

			plan = append(plan, Penalty{Member: m, Month: month, Fee: fee})
		}
	}

	return plan
}

type key struct {
	memberID uuid.UUID
	period   string
}

func existing(txs []*chama.Transaction) map[key]struct{} {
	out := make(map[key]struct{})

	for _, tx := range txs {
		if tx.Kind != chama.KindLatePenalty || tx.Period == nil {
			continue
		}

		out[key{memberID: tx.MemberID, period: chama.PeriodKey(*tx.Period)}] = struct{}{}
	}

	return out
}
