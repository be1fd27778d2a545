// Package posting defines the unit of work every balance-moving operation runs in.
//
// A Tx is scoped to a single member: implementations serialize concurrent units
// for the same member until Commit or Rollback. Callers must defer Rollback;
// it is a no-op after a successful Commit.
package posting

import (
	"context"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/chama/internal/chama"
)

//go:generate mockgen -source=posting.go -destination=posting_mock.go -package=posting
type Repository interface {
	Begin(ctx context.Context, memberID uuid.UUID) (Tx, error)
}

type Tx interface {
	// CreateTransaction appends a transaction. It returns chama.ErrDuplicatePosting
	// when a late penalty for the same member and period already exists.
	CreateTransaction(ctx context.Context, tx *chama.Transaction) error
	// AdjustCarryForward adds delta to the member's wallet and returns the new value.
	AdjustCarryForward(ctx context.Context, memberID uuid.UUID, delta int64) (int64, error)

	CreateLoan(ctx context.Context, loan *chama.Loan) error
	LoanForUpdate(ctx context.Context, id uuid.UUID) (*chama.Loan, error)
	UpdateLoan(ctx context.Context, loan *chama.Loan) error

	Commit() error
	Rollback() error
}
