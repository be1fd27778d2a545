package report

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/chama/internal/chama"
	"github.com/MrJamesThe3rd/chama/internal/ledger"
	"github.com/MrJamesThe3rd/chama/internal/snapshot"
)

const activityLoanTaken = "LOAN TAKEN"

// Row is one line of a member's financial history.
type Row struct {
	Date     time.Time
	Activity string
	Amount   int64
	Details  string
}

type History struct {
	Member      *chama.Member
	GeneratedAt time.Time
	Rows        []Row // Newest first
}

// MemberHistory lists the member's loans and transactions, newest first.
func MemberHistory(snap *snapshot.Snapshot, memberID uuid.UUID) (*History, error) {
	m, ok := snap.Member(memberID)
	if !ok {
		return nil, chama.ErrUnknownMember
	}

	var rows []Row

	for _, l := range snap.MemberLoans(memberID) {
		rows = append(rows, Row{
			Date:     l.CreatedAt,
			Activity: activityLoanTaken,
			Amount:   l.Principal,
			Details:  fmt.Sprintf("Status: %s | Due: %s", l.Status, l.DueDate.Format(time.DateOnly)),
		})
	}

	for _, tx := range snap.MemberTransactions(memberID) {
		rows = append(rows, Row{
			Date:     tx.CreatedAt,
			Activity: strings.ToUpper(tx.Kind.Label()),
			Amount:   tx.Amount,
			Details:  tx.Description,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Date.After(rows[j].Date)
	})

	return &History{Member: m, GeneratedAt: snap.TakenAt, Rows: rows}, nil
}

// StatementLine is one transaction of a monthly statement. Exactly one of
// Debit and Credit is non-zero.
type StatementLine struct {
	Date        time.Time
	Description string
	Debit       int64
	Credit      int64
}

type Statement struct {
	Period            time.Time
	Lines             []StatementLine // Newest first
	TotalDebit        int64
	TotalCredit       int64
	NetClosingBalance int64
	Ledger            ledger.TAccount
}

// MonthlyStatement renders the period's transactions with the totals of the
// ledger balancer.
func MonthlyStatement(snap *snapshot.Snapshot, period time.Time) Statement {
	acct := ledger.Balance(snap.Transactions, period)

	start := acct.Period
	txs := ledger.InPeriod(snap.Transactions, start, start.AddDate(0, 1, 0))

	lines := make([]StatementLine, 0, len(txs))
	for i := len(txs) - 1; i >= 0; i-- {
		tx := txs[i]

		line := StatementLine{Date: tx.CreatedAt, Description: tx.Description}
		if tx.Amount > 0 {
			line.Debit = tx.Amount
		} else {
			line.Credit = -tx.Amount
		}

		lines = append(lines, line)
	}

	return Statement{
		Period:            start,
		Lines:             lines,
		TotalDebit:        acct.TotalDr,
		TotalCredit:       acct.TotalCr,
		NetClosingBalance: acct.Balance,
		Ledger:            acct,
	}
}

type Loader interface {
	Load(ctx context.Context) (*snapshot.Snapshot, error)
}

// Service builds reports from a fresh snapshot per call.
type Service struct {
	loader Loader
}

func NewService(loader Loader) *Service {
	return &Service{loader: loader}
}

func (s *Service) MemberHistory(ctx context.Context, memberID uuid.UUID) (*History, error) {
	snap, err := s.loader.Load(ctx)
	if err != nil {
		return nil, err
	}

	return MemberHistory(snap, memberID)
}

func (s *Service) MonthlyStatement(ctx context.Context, period time.Time) (Statement, error) {
	snap, err := s.loader.Load(ctx)
	if err != nil {
		return Statement{}, err
	}

	return MonthlyStatement(snap, period), nil
}
