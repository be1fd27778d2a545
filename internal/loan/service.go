package loan

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/chama/internal/chama"
	"github.com/MrJamesThe3rd/chama/internal/posting"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=loan
type Repository interface {
	GetLoan(ctx context.Context, id uuid.UUID) (*chama.Loan, error)
	ListLoans(ctx context.Context, filter ListFilter) ([]*chama.Loan, error)
}

type MemberLookup interface {
	Get(ctx context.Context, id uuid.UUID) (*chama.Member, error)
}

type ListFilter struct {
	MemberID *uuid.UUID
	Status   *chama.LoanStatus
}

type Service struct {
	repo     Repository
	members  MemberLookup
	postings posting.Repository
	now      func() time.Time
}

type Option func(*Service)

// WithClock overrides the time source used for due and repayment dates.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(repo Repository, members MemberLookup, postings posting.Repository, opts ...Option) *Service {
	s := &Service{
		repo:     repo,
		members:  members,
		postings: postings,
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

type InitiateParams struct {
	MemberID       uuid.UUID
	Principal      int64
	DurationMonths int
	Rate           decimal.Decimal
}

type Disbursement struct {
	Loan        *chama.Loan
	Transaction *chama.Transaction
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*chama.Loan, error) {
	return s.repo.GetLoan(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*chama.Loan, error) {
	return s.repo.ListLoans(ctx, filter)
}

// Initiate disburses a loan. Nothing is written unless the borrower resolves and
// the terms are valid.
func (s *Service) Initiate(ctx context.Context, params InitiateParams) (*Disbursement, error) {
	switch {
	case params.MemberID == uuid.Nil:
		return nil, chama.ErrUnknownMember
	case params.Principal <= 0:
		return nil, chama.ErrInvalidAmount
	case params.DurationMonths < 1:
		return nil, chama.ErrInvalidDuration
	}

	borrower, err := s.members.Get(ctx, params.MemberID)
	if err != nil {
		if errors.Is(err, chama.ErrNotFound) {
			return nil, chama.ErrUnknownMember
		}

		return nil, fmt.Errorf("resolving borrower: %w", err)
	}

	l, tx, err := Issue(IssueParams{
		Member:         borrower,
		Principal:      params.Principal,
		DurationMonths: params.DurationMonths,
		Rate:           params.Rate,
	}, s.now())
	if err != nil {
		return nil, err
	}

	utx, err := s.postings.Begin(ctx, borrower.ID)
	if err != nil {
		return nil, fmt.Errorf("begin disbursement: %w", err)
	}
	defer utx.Rollback()

	if err := utx.CreateLoan(ctx, l); err != nil {
		return nil, err
	}

	tx.LoanID = &l.ID
	if err := utx.CreateTransaction(ctx, tx); err != nil {
		return nil, err
	}

	if err := utx.Commit(); err != nil {
		return nil, err
	}

	return &Disbursement{Loan: l, Transaction: tx}, nil
}

type RepayResult struct {
	Loan        *chama.Loan
	Transaction *chama.Transaction
	Repayment   Repayment
}

// Repay applies a repayment to a loan under the borrower's posting lock.
func (s *Service) Repay(ctx context.Context, loanID uuid.UUID, amount int64) (*RepayResult, error) {
	if amount <= 0 {
		return nil, chama.ErrInvalidAmount
	}

	current, err := s.repo.GetLoan(ctx, loanID)
	if err != nil {
		return nil, err
	}

	utx, err := s.postings.Begin(ctx, current.MemberID)
	if err != nil {
		return nil, fmt.Errorf("begin repayment: %w", err)
	}
	defer utx.Rollback()

	l, err := utx.LoanForUpdate(ctx, loanID)
	if err != nil {
		return nil, err
	}

	rep, err := ApplyRepayment(l, amount, s.now())
	if err != nil {
		return nil, err
	}

	if err := utx.UpdateLoan(ctx, l); err != nil {
		return nil, err
	}

	tx := &chama.Transaction{
		MemberID:    l.MemberID,
		LoanID:      &l.ID,
		Amount:      rep.Applied,
		Kind:        chama.KindLoanRepayment,
		Description: "Loan Repayment: " + l.MemberName,
	}
	if err := utx.CreateTransaction(ctx, tx); err != nil {
		return nil, err
	}

	if err := utx.Commit(); err != nil {
		return nil, err
	}

	return &RepayResult{Loan: l, Transaction: tx, Repayment: rep}, nil
}
