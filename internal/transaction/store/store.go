package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/chama/internal/chama"
	"github.com/MrJamesThe3rd/chama/internal/transaction"
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

// scanTransaction expects the column order of selectTransactionColumns.
func scanTransaction(s scanner) (*chama.Transaction, error) {
	var (
		tx     chama.Transaction
		kind   string
		loanID *uuid.UUID
		period sql.NullTime
	)

	if err := s.Scan(
		&tx.ID, &tx.MemberID, &loanID, &tx.Amount, &kind, &tx.Description, &period, &tx.CreatedAt,
	); err != nil {
		return nil, err
	}

	tx.Kind = chama.Kind(kind)
	tx.LoanID = loanID

	if period.Valid {
		tx.Period = new(period.Time)
	}

	return &tx, nil
}

const selectTransactionColumns = `
	t.id, t.member_id, t.loan_id, t.amount, t.kind, t.description, t.period, t.created_at
`

func (s *Store) GetTransaction(ctx context.Context, id uuid.UUID) (*chama.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + `
		FROM transactions t
		WHERE t.id = $1`

	tx, err := scanTransaction(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, chama.ErrNotFound
		}

		return nil, fmt.Errorf("getting transaction: %w", err)
	}

	return tx, nil
}

func (s *Store) ListTransactions(ctx context.Context, filter transaction.ListFilter) ([]*chama.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + `
		FROM transactions t
		WHERE TRUE`

	var args []any

	argIdx := 1

	if filter.MemberID != nil {
		query += fmt.Sprintf(" AND t.member_id = $%d", argIdx)

		args = append(args, *filter.MemberID)
		argIdx++
	}

	if filter.Kind != nil {
		query += fmt.Sprintf(" AND t.kind = $%d", argIdx)

		args = append(args, string(*filter.Kind))
		argIdx++
	}

	if filter.StartDate != nil {
		query += fmt.Sprintf(" AND t.created_at >= $%d", argIdx)

		args = append(args, *filter.StartDate)
		argIdx++
	}

	if filter.EndDate != nil {
		query += fmt.Sprintf(" AND t.created_at < $%d", argIdx)

		args = append(args, *filter.EndDate)
	}

	query += " ORDER BY t.created_at ASC, t.id ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var txs []*chama.Transaction

	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transaction rows: %w", err)
	}

	return txs, nil
}
