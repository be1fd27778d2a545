package ledger

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/chama/internal/chama"
)

const (
	LabelCashInHand = "Balance c/d (Cash in Hand)"
	LabelDeficit    = "Balance b/d"
)

// Line is one row on either side of the T-account. Amounts are always shown as
// absolute values.
type Line struct {
	TransactionID uuid.UUID
	Date          time.Time
	Kind          chama.Kind
	Description   string
	Amount        int64
	Balancing     bool // Synthetic balancing figure, not a recorded transaction
}

// TAccount is a balanced two-column view of one month.
type TAccount struct {
	Period     time.Time
	Debits     []Line // Receipts
	Credits    []Line // Payments
	TotalDr    int64
	TotalCr    int64
	Balance    int64
	GrandTotal int64
}

// DebitFooter is the displayed total of the debit column, balancing line included.
func (a TAccount) DebitFooter() int64 {
	return sum(a.Debits)
}

// CreditFooter is the displayed total of the credit column, balancing line included.
func (a TAccount) CreditFooter() int64 {
	return sum(a.Credits)
}

// Balance builds the T-account for the month starting at period from every
// transaction recorded within [period, period+1 month).
func Balance(txs []*chama.Transaction, period time.Time) TAccount {
	start := chama.MonthStart(period)
	end := start.AddDate(0, 1, 0)

	acct := TAccount{Period: start}

	for _, tx := range InPeriod(txs, start, end) {
		line := Line{
			TransactionID: tx.ID,
			Date:          tx.CreatedAt,
			Kind:          tx.Kind,
			Description:   tx.Description,
		}

		switch {
		case tx.Amount > 0:
			line.Amount = tx.Amount
			acct.TotalDr += tx.Amount
			acct.Debits = append(acct.Debits, line)
		case tx.Amount < 0:
			line.Amount = -tx.Amount
			acct.TotalCr += -tx.Amount
			acct.Credits = append(acct.Credits, line)
		}
	}

	acct.Balance = acct.TotalDr - acct.TotalCr
	acct.GrandTotal = max(acct.TotalDr, acct.TotalCr)

	if acct.Balance >= 0 {
		acct.Credits = append(acct.Credits, Line{
			Date:        end.Add(-time.Nanosecond),
			Description: LabelCashInHand,
			Amount:      acct.Balance,
			Balancing:   true,
		})
	} else {
		acct.Debits = append(acct.Debits, Line{
			Date:        end.Add(-time.Nanosecond),
			Description: LabelDeficit,
			Amount:      -acct.Balance,
			Balancing:   true,
		})
	}

	return acct
}

// InPeriod returns the transactions created within [start, end), oldest first.
func InPeriod(txs []*chama.Transaction, start, end time.Time) []*chama.Transaction {
	var out []*chama.Transaction

	for _, tx := range txs {
		if tx.CreatedAt.Before(start) || !tx.CreatedAt.Before(end) {
			continue
		}

		out = append(out, tx)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	return out
}

func sum(lines []Line) int64 {
	var total int64
	for _, l := range lines {
		total += l.Amount
	}

	return total
}
