package settings

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/chama/internal/chama"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=settings
type Repository interface {
	GetSettings(ctx context.Context) (*chama.Settings, error)
	UpdateSettings(ctx context.Context, s *chama.Settings) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type UpdateParams struct {
	MonthlyContribution int64
	LoanInterestRate    decimal.Decimal
	LateFeeAmount       int64
}

func (p UpdateParams) validate() error {
	if p.MonthlyContribution <= 0 || p.LoanInterestRate.IsNegative() || p.LateFeeAmount < 0 {
		return chama.ErrInvalidSettings
	}

	return nil
}

func (s *Service) Get(ctx context.Context) (*chama.Settings, error) {
	return s.repo.GetSettings(ctx)
}

// Update replaces the group settings. Past postings keep the values they were
// made with.
func (s *Service) Update(ctx context.Context, params UpdateParams) (*chama.Settings, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	st := &chama.Settings{
		MonthlyContribution: params.MonthlyContribution,
		LoanInterestRate:    params.LoanInterestRate,
		LateFeeAmount:       params.LateFeeAmount,
	}
	if err := s.repo.UpdateSettings(ctx, st); err != nil {
		return nil, err
	}

	return st, nil
}
