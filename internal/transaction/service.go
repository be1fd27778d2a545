package transaction

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/chama/internal/chama"
)

// Transactions are written only by posting units of work; this package is the
// read side.
//
//go:generate mockgen -source=service.go -destination=repository_mock.go -package=transaction
type Repository interface {
	GetTransaction(ctx context.Context, id uuid.UUID) (*chama.Transaction, error)
	ListTransactions(ctx context.Context, filter ListFilter) ([]*chama.Transaction, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ListFilter narrows a listing. StartDate is inclusive, EndDate exclusive.
type ListFilter struct {
	MemberID  *uuid.UUID
	Kind      *chama.Kind
	StartDate *time.Time
	EndDate   *time.Time
}

// MonthFilter selects every transaction created in month's calendar month.
func MonthFilter(month time.Time) ListFilter {
	start := chama.MonthStart(month)
	end := start.AddDate(0, 1, 0)

	return ListFilter{StartDate: &start, EndDate: &end}
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*chama.Transaction, error) {
	if filter.StartDate != nil && filter.EndDate != nil && filter.EndDate.Before(*filter.StartDate) {
		return nil, nil
	}

	return s.repo.ListTransactions(ctx, filter)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*chama.Transaction, error) {
	return s.repo.GetTransaction(ctx, id)
}
