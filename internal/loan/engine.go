package loan

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/chama/internal/chama"
)

var hundred = decimal.NewFromInt(100)

// Interest is the flat up-front interest on principal at rate percent, rounded
// half away from zero to whole currency units.
func Interest(principal int64, rate decimal.Decimal) int64 {
	return decimal.NewFromInt(principal).Mul(rate).Div(hundred).Round(0).IntPart()
}

type IssueParams struct {
	Member         *chama.Member
	Principal      int64
	DurationMonths int
	Rate           decimal.Decimal
}

func (p IssueParams) validate() error {
	switch {
	case p.Member == nil:
		return chama.ErrUnknownMember
	case p.Principal <= 0:
		return chama.ErrInvalidAmount
	case p.DurationMonths < 1:
		return chama.ErrInvalidDuration
	case p.Rate.IsNegative():
		return chama.ErrInvalidSettings
	}

	return nil
}

// Issue builds a new Active loan and the Loan Issuance transaction that pays it
// out. The duration only moves the due date; it never changes the interest.
func Issue(p IssueParams, now time.Time) (*chama.Loan, *chama.Transaction, error) {
	if err := p.validate(); err != nil {
		return nil, nil, err
	}

	interest := Interest(p.Principal, p.Rate)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	l := &chama.Loan{
		MemberID:        p.Member.ID,
		MemberName:      p.Member.Name,
		Principal:       p.Principal,
		InterestAccrued: interest,
		Amount:          p.Principal + interest,
		Status:          chama.LoanActive,
		DueDate:         today.AddDate(0, p.DurationMonths, 0),
	}

	tx := &chama.Transaction{
		MemberID:    p.Member.ID,
		Amount:      -p.Principal,
		Kind:        chama.KindLoanIssuance,
		Description: "Disbursed to " + p.Member.Name,
	}

	return l, tx, nil
}

// Repayment describes how a repayment was applied.
type Repayment struct {
	Applied   int64 // Amount credited against the loan
	Excess    int64 // Portion above the outstanding balance, not taken
	Remaining int64
	Paid      bool
}

// ApplyRepayment reduces l's outstanding amount. Overpayment is clamped: the
// balance never drops below zero and the excess is reported, not recorded.
func ApplyRepayment(l *chama.Loan, amount int64, now time.Time) (Repayment, error) {
	if amount <= 0 {
		return Repayment{}, chama.ErrInvalidAmount
	}

	if l.Status == chama.LoanPaid {
		return Repayment{}, chama.ErrLoanClosed
	}

	applied := min(amount, max(l.Amount, 0))

	l.Amount -= applied
	if l.Amount <= 0 {
		l.Status = chama.LoanPaid
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	l.LastRepaymentDate = &today

	return Repayment{
		Applied:   applied,
		Excess:    amount - applied,
		Remaining: l.Amount,
		Paid:      l.Status == chama.LoanPaid,
	}, nil
}
