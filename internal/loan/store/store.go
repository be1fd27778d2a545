package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/chama/internal/chama"
	"github.com/MrJamesThe3rd/chama/internal/loan"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectLoanColumns = `
	l.id, l.member_id, m.name, l.principal, l.interest_accrued, l.amount, l.status,
	l.due_date, l.last_repayment_date, l.created_at
`

func scanLoan(s scanner) (*chama.Loan, error) {
	var (
		l             chama.Loan
		status        string
		lastRepayment sql.NullTime
	)

	if err := s.Scan(
		&l.ID, &l.MemberID, &l.MemberName, &l.Principal, &l.InterestAccrued, &l.Amount, &status,
		&l.DueDate, &lastRepayment, &l.CreatedAt,
	); err != nil {
		return nil, err
	}

	l.Status = chama.LoanStatus(status)
	if lastRepayment.Valid {
		l.LastRepaymentDate = new(lastRepayment.Time)
	}

	return &l, nil
}

func (s *Store) GetLoan(ctx context.Context, id uuid.UUID) (*chama.Loan, error) {
	query := `SELECT ` + selectLoanColumns + `
		FROM loans l
		JOIN members m ON m.id = l.member_id
		WHERE l.id = $1`

	l, err := scanLoan(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, chama.ErrNotFound
		}

		return nil, fmt.Errorf("getting loan: %w", err)
	}

	return l, nil
}

func (s *Store) ListLoans(ctx context.Context, filter loan.ListFilter) ([]*chama.Loan, error) {
	query := `SELECT ` + selectLoanColumns + `
		FROM loans l
		JOIN members m ON m.id = l.member_id
		WHERE TRUE`

	var args []any

	argIdx := 1

	if filter.MemberID != nil {
		query += fmt.Sprintf(" AND l.member_id = $%d", argIdx)

		args = append(args, *filter.MemberID)
		argIdx++
	}

	if filter.Status != nil {
		query += fmt.Sprintf(" AND l.status = $%d", argIdx)

		args = append(args, string(*filter.Status))
	}

	query += " ORDER BY l.created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing loans: %w", err)
	}
	defer rows.Close()

	var loans []*chama.Loan

	for rows.Next() {
		l, err := scanLoan(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning loan: %w", err)
		}

		loans = append(loans, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating loan rows: %w", err)
	}

	return loans, nil
}
