package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"hash/fnv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/MrJamesThe3rd/chama/internal/chama"
	"github.com/MrJamesThe3rd/chama/internal/posting"
)

const uniqueViolation = "23505"

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func memberLockKey(memberID uuid.UUID) int64 {
	h := fnv.New64a()
	h.Write([]byte("member:"))
	h.Write(memberID[:])

	return int64(h.Sum64())
}

type unit struct {
	tx *sql.Tx
}

// Begin opens a database transaction holding the member's advisory lock until
// it ends, so postings for one member never interleave.
func (s *Store) Begin(ctx context.Context, memberID uuid.UUID) (posting.Tx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning posting tx: %w", err)
	}

	if _, err := dbTx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", memberLockKey(memberID)); err != nil {
		dbTx.Rollback()
		return nil, fmt.Errorf("acquiring member lock: %w", err)
	}

	return &unit{tx: dbTx}, nil
}

func (u *unit) Commit() error {
	if err := u.tx.Commit(); err != nil {
		return fmt.Errorf("committing posting: %w", err)
	}

	return nil
}

func (u *unit) Rollback() error {
	err := u.tx.Rollback()
	if errors.Is(err, sql.ErrTxDone) {
		return nil
	}

	return err
}

func (u *unit) CreateTransaction(ctx context.Context, tx *chama.Transaction) error {
	query := `
		INSERT INTO transactions (member_id, loan_id, amount, kind, description, period, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, COALESCE($7, NOW()))
		ON CONFLICT DO NOTHING
		RETURNING id, created_at
	`

	var createdAt sql.NullTime
	if !tx.CreatedAt.IsZero() {
		createdAt = sql.NullTime{Time: tx.CreatedAt, Valid: true}
	}

	err := u.tx.QueryRowContext(ctx, query,
		tx.MemberID,
		tx.LoanID,
		tx.Amount,
		tx.Kind,
		tx.Description,
		tx.Period,
		createdAt,
	).Scan(&tx.ID, &tx.CreatedAt)
	if err != nil {
		// No row back means ON CONFLICT skipped the insert: the late penalty
		// index already holds this (member, period).
		var pgErr *pgconn.PgError
		if errors.Is(err, sql.ErrNoRows) || (errors.As(err, &pgErr) && pgErr.Code == uniqueViolation) {
			return chama.ErrDuplicatePosting
		}

		return fmt.Errorf("creating transaction: %w", err)
	}

	return nil
}

func (u *unit) AdjustCarryForward(ctx context.Context, memberID uuid.UUID, delta int64) (int64, error) {
	query := `
		UPDATE members
		SET carry_forward = carry_forward + $1
		WHERE id = $2
		RETURNING carry_forward
	`

	var balance int64
	if err := u.tx.QueryRowContext(ctx, query, delta, memberID).Scan(&balance); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, chama.ErrUnknownMember
		}

		return 0, fmt.Errorf("adjusting carry forward: %w", err)
	}

	return balance, nil
}

func (u *unit) CreateLoan(ctx context.Context, loan *chama.Loan) error {
	query := `
		INSERT INTO loans (member_id, principal, interest_accrued, amount, status, due_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, created_at
	`

	err := u.tx.QueryRowContext(ctx, query,
		loan.MemberID,
		loan.Principal,
		loan.InterestAccrued,
		loan.Amount,
		loan.Status,
		loan.DueDate,
	).Scan(&loan.ID, &loan.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating loan: %w", err)
	}

	return nil
}

func (u *unit) LoanForUpdate(ctx context.Context, id uuid.UUID) (*chama.Loan, error) {
	query := `
		SELECT l.id, l.member_id, m.name, l.principal, l.interest_accrued, l.amount, l.status,
			l.due_date, l.last_repayment_date, l.created_at
		FROM loans l
		JOIN members m ON m.id = l.member_id
		WHERE l.id = $1
		FOR UPDATE OF l
	`

	var (
		loan          chama.Loan
		status        string
		lastRepayment sql.NullTime
	)

	err := u.tx.QueryRowContext(ctx, query, id).Scan(
		&loan.ID, &loan.MemberID, &loan.MemberName, &loan.Principal, &loan.InterestAccrued,
		&loan.Amount, &status, &loan.DueDate, &lastRepayment, &loan.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, chama.ErrNotFound
		}

		return nil, fmt.Errorf("locking loan: %w", err)
	}

	loan.Status = chama.LoanStatus(status)
	if lastRepayment.Valid {
		loan.LastRepaymentDate = new(lastRepayment.Time)
	}

	return &loan, nil
}

func (u *unit) UpdateLoan(ctx context.Context, loan *chama.Loan) error {
	query := `
		UPDATE loans
		SET amount = $1, status = $2, last_repayment_date = $3
		WHERE id = $4
	`

	if _, err := u.tx.ExecContext(ctx, query, loan.Amount, loan.Status, loan.LastRepaymentDate, loan.ID); err != nil {
		return fmt.Errorf("updating loan: %w", err)
	}

	return nil
}
