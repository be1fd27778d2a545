package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MrJamesThe3rd/chama/internal/chama"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// The settings table holds a single row with id = 1, seeded by the schema.

func (s *Store) GetSettings(ctx context.Context) (*chama.Settings, error) {
	query := `
		SELECT monthly_contribution, loan_interest_rate, late_fee_amount, updated_at
		FROM settings
		WHERE id = 1
	`

	var st chama.Settings
	if err := s.db.QueryRowContext(ctx, query).Scan(
		&st.MonthlyContribution, &st.LoanInterestRate, &st.LateFeeAmount, &st.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, chama.ErrNotFound
		}

		return nil, fmt.Errorf("getting settings: %w", err)
	}

	return &st, nil
}

func (s *Store) UpdateSettings(ctx context.Context, st *chama.Settings) error {
	query := `
		UPDATE settings
		SET monthly_contribution = $1, loan_interest_rate = $2, late_fee_amount = $3, updated_at = NOW()
		WHERE id = 1
		RETURNING updated_at
	`

	if err := s.db.QueryRowContext(ctx, query,
		st.MonthlyContribution,
		st.LoanInterestRate,
		st.LateFeeAmount,
	).Scan(&st.UpdatedAt); err != nil {
		return fmt.Errorf("updating settings: %w", err)
	}

	return nil
}
