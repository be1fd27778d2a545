package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/chama/internal/chama"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const selectMemberColumns = `id, name, carry_forward, joined_at`

// CreateMember inserts a member with an empty wallet.
func (s *Store) CreateMember(ctx context.Context, m *chama.Member) error {
	query := `
		INSERT INTO members (name, carry_forward, joined_at)
		VALUES ($1, 0, NOW())
		RETURNING ` + selectMemberColumns

	if err := s.db.QueryRowContext(ctx, query, m.Name).Scan(
		&m.ID, &m.Name, &m.CarryForward, &m.JoinedAt,
	); err != nil {
		return fmt.Errorf("creating member: %w", err)
	}

	return nil
}

func (s *Store) GetMember(ctx context.Context, id uuid.UUID) (*chama.Member, error) {
	query := `SELECT ` + selectMemberColumns + ` FROM members WHERE id = $1`

	var m chama.Member
	if err := s.db.QueryRowContext(ctx, query, id).Scan(
		&m.ID, &m.Name, &m.CarryForward, &m.JoinedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, chama.ErrNotFound
		}

		return nil, fmt.Errorf("getting member: %w", err)
	}

	return &m, nil
}

func (s *Store) ListMembers(ctx context.Context) ([]*chama.Member, error) {
	query := `SELECT ` + selectMemberColumns + ` FROM members ORDER BY name ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing members: %w", err)
	}
	defer rows.Close()

	var members []*chama.Member

	for rows.Next() {
		var m chama.Member
		if err := rows.Scan(&m.ID, &m.Name, &m.CarryForward, &m.JoinedAt); err != nil {
			return nil, fmt.Errorf("scanning member: %w", err)
		}

		members = append(members, &m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating member rows: %w", err)
	}

	return members, nil
}
