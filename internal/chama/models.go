package chama

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Kind classifies a ledger posting.
type Kind string

const (
	KindDeposit       Kind = "deposit"
	KindFine          Kind = "fine"
	KindLatePenalty   Kind = "late_penalty"
	KindLoanIssuance  Kind = "loan_issuance"
	KindLoanRepayment Kind = "loan_repayment"
)

// Label returns the human-readable name used in reports.
func (k Kind) Label() string {
	switch k {
	case KindDeposit:
		return "Deposit"
	case KindFine:
		return "Fine"
	case KindLatePenalty:
		return "Late Penalty"
	case KindLoanIssuance:
		return "Loan Issuance"
	case KindLoanRepayment:
		return "Loan Repayment"
	}

	return string(k)
}

// LoanStatus is the lifecycle state of a loan. Active -> Paid is one-way.
type LoanStatus string

const (
	LoanActive LoanStatus = "active"
	LoanPaid   LoanStatus = "paid"
	// LoanDefaulted is reserved; nothing in the engine produces it.
	LoanDefaulted LoanStatus = "defaulted"
)

func ParseLoanStatus(s string) (LoanStatus, bool) {
	switch st := LoanStatus(s); st {
	case LoanActive, LoanPaid, LoanDefaulted:
		return st, true
	}

	return "", false
}

// Member is a chama member. CarryForward is the cumulative net wallet in whole
// currency units and only moves through postings.
type Member struct {
	ID           uuid.UUID
	Name         string
	CarryForward int64
	JoinedAt     time.Time
}

// Loan is money disbursed to a member with flat up-front interest.
type Loan struct {
	ID                uuid.UUID
	MemberID          uuid.UUID
	MemberName        string // Loaded via JOIN
	Principal         int64
	InterestAccrued   int64
	Amount            int64 // Remaining balance owed
	Status            LoanStatus
	DueDate           time.Time
	LastRepaymentDate *time.Time
	CreatedAt         time.Time
}

// Transaction is an append-only ledger entry. Positive amounts are inflows
// (debit side), negative amounts are outflows (credit side).
type Transaction struct {
	ID          uuid.UUID
	MemberID    uuid.UUID
	LoanID      *uuid.UUID
	Amount      int64
	Kind        Kind
	Description string
	Period      *time.Time // First day of the month a fine or penalty refers to
	CreatedAt   time.Time
}

// Settings is the process-wide configuration singleton.
type Settings struct {
	MonthlyContribution int64
	LoanInterestRate    decimal.Decimal // Percent
	LateFeeAmount       int64
	UpdatedAt           time.Time
}
