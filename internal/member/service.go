package member

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/chama/internal/chama"
	"github.com/MrJamesThe3rd/chama/internal/posting"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=member
type Repository interface {
	CreateMember(ctx context.Context, m *chama.Member) error
	GetMember(ctx context.Context, id uuid.UUID) (*chama.Member, error)
	ListMembers(ctx context.Context) ([]*chama.Member, error)
}

type Service struct {
	repo     Repository
	postings posting.Repository
}

func NewService(repo Repository, postings posting.Repository) *Service {
	return &Service{repo: repo, postings: postings}
}

// Receipt is the outcome of a committed posting.
type Receipt struct {
	Transaction  *chama.Transaction
	CarryForward int64
}

type PaymentParams struct {
	MemberID   uuid.UUID
	Amount     int64
	ReceivedAt time.Time // Zero means now
}

type FineParams struct {
	MemberID uuid.UUID
	Month    time.Time
	Amount   int64
}

func (s *Service) Register(ctx context.Context, name string) (*chama.Member, error) {
	name = strings.ToUpper(strings.Join(strings.Fields(name), " "))
	if name == "" {
		return nil, chama.ErrInvalidName
	}

	m := &chama.Member{Name: name}
	if err := s.repo.CreateMember(ctx, m); err != nil {
		return nil, err
	}

	return m, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*chama.Member, error) {
	return s.repo.GetMember(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*chama.Member, error) {
	return s.repo.ListMembers(ctx)
}

// ProcessPayment credits the member's wallet and records one Deposit. It is not
// idempotent: two calls post twice.
func (s *Service) ProcessPayment(ctx context.Context, params PaymentParams) (*Receipt, error) {
	if params.Amount <= 0 {
		return nil, chama.ErrInvalidAmount
	}

	m, err := s.resolve(ctx, params.MemberID)
	if err != nil {
		return nil, err
	}

	return s.post(ctx, m.ID, &chama.Transaction{
		MemberID:    m.ID,
		Amount:      params.Amount,
		Kind:        chama.KindDeposit,
		Description: "Payment: " + m.Name,
		CreatedAt:   params.ReceivedAt,
	})
}

// ApplyFine debits a discretionary fine against the member for the given month.
func (s *Service) ApplyFine(ctx context.Context, params FineParams) (*Receipt, error) {
	if params.Amount <= 0 {
		return nil, chama.ErrInvalidAmount
	}

	m, err := s.resolve(ctx, params.MemberID)
	if err != nil {
		return nil, err
	}

	month := chama.MonthStart(params.Month)

	return s.post(ctx, m.ID, &chama.Transaction{
		MemberID:    m.ID,
		Amount:      -params.Amount,
		Kind:        chama.KindFine,
		Description: fmt.Sprintf("Fine: %s - %s", month.Format("January"), m.Name),
		Period:      &month,
	})
}

// ApplyLatePenalty posts the automatic late fee for a missed month. At most one
// penalty exists per member and month; a repeat returns chama.ErrDuplicatePosting
// and leaves the wallet untouched.
func (s *Service) ApplyLatePenalty(ctx context.Context, m *chama.Member, month time.Time, fee int64) (*Receipt, error) {
	if fee <= 0 {
		return nil, chama.ErrInvalidAmount
	}

	month = chama.MonthStart(month)

	return s.post(ctx, m.ID, &chama.Transaction{
		MemberID:    m.ID,
		Amount:      -fee,
		Kind:        chama.KindLatePenalty,
		Description: LatePenaltyDescription(month, m.Name),
		Period:      &month,
	})
}

// LatePenaltyDescription is the display text of an automatic late fee.
func LatePenaltyDescription(month time.Time, name string) string {
	return fmt.Sprintf("Late Fine: %s - %s", month.Format("January"), name)
}

func (s *Service) resolve(ctx context.Context, id uuid.UUID) (*chama.Member, error) {
	if id == uuid.Nil {
		return nil, chama.ErrUnknownMember
	}

	m, err := s.repo.GetMember(ctx, id)
	if err != nil {
		if errors.Is(err, chama.ErrNotFound) {
			return nil, chama.ErrUnknownMember
		}

		return nil, fmt.Errorf("resolving member: %w", err)
	}

	return m, nil
}

// post records tx and moves the member's wallet by tx.Amount as one unit.
func (s *Service) post(ctx context.Context, memberID uuid.UUID, tx *chama.Transaction) (*Receipt, error) {
	utx, err := s.postings.Begin(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("begin posting: %w", err)
	}
	defer utx.Rollback()

	if err := utx.CreateTransaction(ctx, tx); err != nil {
		return nil, err
	}

	balance, err := utx.AdjustCarryForward(ctx, memberID, tx.Amount)
	if err != nil {
		return nil, err
	}

	if err := utx.Commit(); err != nil {
		return nil, err
	}

	return &Receipt{Transaction: tx, CarryForward: balance}, nil
}
