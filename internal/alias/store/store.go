package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) FindMember(ctx context.Context, payer string) (uuid.UUID, error) {
	query := `
		SELECT member_id
		FROM payer_aliases
		WHERE $1 ILIKE '%' || pattern || '%'
		ORDER BY LENGTH(pattern) DESC, created_at DESC
		LIMIT 1
	`

	var memberID uuid.UUID

	err := s.db.QueryRowContext(ctx, query, payer).Scan(&memberID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return uuid.Nil, nil
		}

		return uuid.Nil, fmt.Errorf("finding alias: %w", err)
	}

	return memberID, nil
}

func (s *Store) CreateAlias(ctx context.Context, pattern string, memberID uuid.UUID) error {
	query := `
		INSERT INTO payer_aliases (pattern, member_id, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (LOWER(pattern)) DO UPDATE SET member_id = EXCLUDED.member_id, created_at = NOW()
	`

	if _, err := s.db.ExecContext(ctx, query, pattern, memberID); err != nil {
		return fmt.Errorf("creating alias: %w", err)
	}

	return nil
}
