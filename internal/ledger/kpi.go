package ledger

import "github.com/MrJamesThe3rd/chama/internal/chama"

// Dashboard holds the group-wide headline figures.
type Dashboard struct {
	TotalLiquidity     int64 // Net of every recorded transaction
	ActiveLoanExposure int64 // Outstanding balance across unpaid loans
	ActiveLoans        int
	Members            int
}

// Summarize computes dashboard figures over a snapshot's collections.
func Summarize(members []*chama.Member, loans []*chama.Loan, txs []*chama.Transaction) Dashboard {
	d := Dashboard{Members: len(members)}

	for _, tx := range txs {
		d.TotalLiquidity += tx.Amount
	}

	for _, l := range loans {
		if l.Status == chama.LoanPaid {
			continue
		}

		d.ActiveLoanExposure += l.Amount
		d.ActiveLoans++
	}

	return d
}
