package alias

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/chama/internal/chama"
)

var ErrEmptyPattern = errors.New("alias pattern is empty")

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=alias
type Repository interface {
	// FindMember returns the member of the longest pattern contained in payer,
	// or uuid.Nil when none matches.
	FindMember(ctx context.Context, payer string) (uuid.UUID, error)
	CreateAlias(ctx context.Context, pattern string, memberID uuid.UUID) error
}

type MemberLookup interface {
	Get(ctx context.Context, id uuid.UUID) (*chama.Member, error)
}

type Service struct {
	repo    Repository
	members MemberLookup
}

func NewService(repo Repository, members MemberLookup) *Service {
	return &Service{repo: repo, members: members}
}

// Suggest resolves free-form payer text from a statement to a member through
// learned aliases.
func (s *Service) Suggest(ctx context.Context, payer string) (uuid.UUID, bool, error) {
	payer = strings.TrimSpace(payer)
	if payer == "" {
		return uuid.Nil, false, nil
	}

	id, err := s.repo.FindMember(ctx, payer)
	if err != nil {
		return uuid.Nil, false, err
	}

	return id, id != uuid.Nil, nil
}

// Learn remembers that statement text containing pattern belongs to memberID.
// Learning an existing pattern again repoints it.
func (s *Service) Learn(ctx context.Context, pattern string, memberID uuid.UUID) error {
	pattern = strings.Join(strings.Fields(pattern), " ")
	if pattern == "" {
		return ErrEmptyPattern
	}

	if memberID == uuid.Nil {
		return chama.ErrUnknownMember
	}

	if _, err := s.members.Get(ctx, memberID); err != nil {
		if errors.Is(err, chama.ErrNotFound) {
			return chama.ErrUnknownMember
		}

		return fmt.Errorf("resolving alias member: %w", err)
	}

	return s.repo.CreateAlias(ctx, pattern, memberID)
}
