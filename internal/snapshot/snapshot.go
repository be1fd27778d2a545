package snapshot

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/MrJamesThe3rd/chama/internal/chama"
	"github.com/MrJamesThe3rd/chama/internal/loan"
	"github.com/MrJamesThe3rd/chama/internal/transaction"
)

//go:generate mockgen -source=snapshot.go -destination=reader_mock.go -package=snapshot
type MemberReader interface {
	ListMembers(ctx context.Context) ([]*chama.Member, error)
}

type LoanReader interface {
	ListLoans(ctx context.Context, filter loan.ListFilter) ([]*chama.Loan, error)
}

type TransactionReader interface {
	ListTransactions(ctx context.Context, filter transaction.ListFilter) ([]*chama.Transaction, error)
}

type SettingsReader interface {
	GetSettings(ctx context.Context) (*chama.Settings, error)
}

// Snapshot is a consistent read of every collection the engines work on.
// Treat it as read-only once loaded.
type Snapshot struct {
	Members      []*chama.Member
	Loans        []*chama.Loan
	Transactions []*chama.Transaction
	Settings     chama.Settings
	TakenAt      time.Time
}

// Member returns the member with the given id.
func (s *Snapshot) Member(id uuid.UUID) (*chama.Member, bool) {
	for _, m := range s.Members {
		if m.ID == id {
			return m, true
		}
	}

	return nil, false
}

// MemberTransactions returns the member's transactions in snapshot order.
func (s *Snapshot) MemberTransactions(id uuid.UUID) []*chama.Transaction {
	var out []*chama.Transaction

	for _, tx := range s.Transactions {
		if tx.MemberID == id {
			out = append(out, tx)
		}
	}

	return out
}

// MemberLoans returns every loan ever issued to the member.
func (s *Snapshot) MemberLoans(id uuid.UUID) []*chama.Loan {
	var out []*chama.Loan

	for _, l := range s.Loans {
		if l.MemberID == id {
			out = append(out, l)
		}
	}

	return out
}

type Loader struct {
	members      MemberReader
	loans        LoanReader
	transactions TransactionReader
	settings     SettingsReader
	now          func() time.Time
}

func NewLoader(members MemberReader, loans LoanReader, transactions TransactionReader, settings SettingsReader) *Loader {
	return &Loader{
		members:      members,
		loans:        loans,
		transactions: transactions,
		settings:     settings,
		now:          time.Now,
	}
}

// Load reads the four collections concurrently. If any read fails the whole
// load fails; callers never see a partial snapshot.
func (l *Loader) Load(ctx context.Context) (*Snapshot, error) {
	var (
		snap     = &Snapshot{TakenAt: l.now()}
		settings *chama.Settings
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		members, err := l.members.ListMembers(gctx)
		if err != nil {
			return fmt.Errorf("loading members: %w", err)
		}

		snap.Members = members

		return nil
	})

	g.Go(func() error {
		loans, err := l.loans.ListLoans(gctx, loan.ListFilter{})
		if err != nil {
			return fmt.Errorf("loading loans: %w", err)
		}

		snap.Loans = loans

		return nil
	})

	g.Go(func() error {
		txs, err := l.transactions.ListTransactions(gctx, transaction.ListFilter{})
		if err != nil {
			return fmt.Errorf("loading transactions: %w", err)
		}

		snap.Transactions = txs

		return nil
	})

	g.Go(func() error {
		s, err := l.settings.GetSettings(gctx)
		if err != nil {
			return fmt.Errorf("loading settings: %w", err)
		}

		settings = s

		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	snap.Settings = *settings

	return snap, nil
}
