package importer

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/chama/internal/chama"
	"github.com/MrJamesThe3rd/chama/internal/member"
	"github.com/MrJamesThe3rd/chama/internal/transaction"
)

type AliasResolver interface {
	Suggest(ctx context.Context, payer string) (uuid.UUID, bool, error)
}

type MemberDirectory interface {
	List(ctx context.Context) ([]*chama.Member, error)
}

type PaymentPoster interface {
	ProcessPayment(ctx context.Context, params member.PaymentParams) (*member.Receipt, error)
}

type TransactionLister interface {
	List(ctx context.Context, filter transaction.ListFilter) ([]*chama.Transaction, error)
}

type Service struct {
	aliases      AliasResolver
	members      MemberDirectory
	payments     PaymentPoster
	transactions TransactionLister
	loc          *time.Location
}

func NewService(aliases AliasResolver, members MemberDirectory, payments PaymentPoster, transactions TransactionLister, loc *time.Location) *Service {
	return &Service{
		aliases:      aliases,
		members:      members,
		payments:     payments,
		transactions: transactions,
		loc:          loc,
	}
}

type Options struct {
	// DryRun resolves and checks rows without posting anything.
	DryRun bool
}

// Match is a statement row resolved to a member.
type Match struct {
	Row     Row
	Member  *chama.Member
	Receipt *member.Receipt // Nil on a dry run
}

type Result struct {
	Profile    string
	Charset    string
	Posted     []Match
	Duplicates []Match // Same member, day and amount as an existing deposit
	Unresolved []Row
}

// Import posts every statement row that resolves to a member as a payment
// dated at the row's time. Rows whose payer cannot be resolved are returned
// for the caller to alias. Deposits already recorded for the same member, day
// and amount are reported as duplicates instead of being posted again.
// Posting stops at the first failure; the rows posted before it stay posted.
func (s *Service) Import(ctx context.Context, r io.Reader, opts Options) (*Result, error) {
	parsed, err := Parse(r, s.loc)
	if err != nil {
		return nil, err
	}

	res := &Result{Profile: parsed.Profile, Charset: parsed.Charset}
	if len(parsed.Rows) == 0 {
		return res, nil
	}

	members, err := s.members.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing members: %w", err)
	}

	var matches []Match

	for _, row := range parsed.Rows {
		m, err := s.resolve(ctx, row, members)
		if err != nil {
			return nil, err
		}

		if m == nil {
			res.Unresolved = append(res.Unresolved, row)
			continue
		}

		matches = append(matches, Match{Row: row, Member: m})
	}

	if len(matches) == 0 {
		return res, nil
	}

	existing, err := s.existingDeposits(ctx, matches)
	if err != nil {
		return nil, err
	}

	for _, match := range matches {
		k := s.depositKey(match.Member.ID, match.Row.Date, match.Row.Amount)
		if existing[k] > 0 {
			existing[k]--
			res.Duplicates = append(res.Duplicates, match)

			continue
		}

		if !opts.DryRun {
			receipt, err := s.payments.ProcessPayment(ctx, member.PaymentParams{
				MemberID:   match.Member.ID,
				Amount:     match.Row.Amount,
				ReceivedAt: match.Row.Date,
			})
			if err != nil {
				return res, fmt.Errorf("line %d: posting payment: %w", match.Row.Line, err)
			}

			match.Receipt = receipt
		}

		res.Posted = append(res.Posted, match)
	}

	return res, nil
}

// resolve tries learned aliases against the raw payer text first, then an
// exact case-insensitive match of the payer name.
func (s *Service) resolve(ctx context.Context, row Row, members []*chama.Member) (*chama.Member, error) {
	id, ok, err := s.aliases.Suggest(ctx, row.Raw)
	if err != nil {
		return nil, fmt.Errorf("line %d: resolving alias: %w", row.Line, err)
	}

	if ok {
		for _, m := range members {
			if m.ID == id {
				return m, nil
			}
		}
	}

	name := strings.Join(strings.Fields(row.Payer), " ")
	for _, m := range members {
		if strings.EqualFold(m.Name, name) {
			return m, nil
		}
	}

	return nil, nil
}

type depositKey struct {
	memberID uuid.UUID
	day      string
	amount   int64
}

func (s *Service) depositKey(memberID uuid.UUID, at time.Time, amount int64) depositKey {
	return depositKey{memberID: memberID, day: at.In(s.loc).Format(time.DateOnly), amount: amount}
}

func (s *Service) existingDeposits(ctx context.Context, matches []Match) (map[depositKey]int, error) {
	minDate, maxDate := matches[0].Row.Date, matches[0].Row.Date
	for _, m := range matches[1:] {
		minDate = minTime(minDate, m.Row.Date)
		maxDate = maxTime(maxDate, m.Row.Date)
	}

	start := time.Date(minDate.Year(), minDate.Month(), minDate.Day(), 0, 0, 0, 0, s.loc)
	end := time.Date(maxDate.Year(), maxDate.Month(), maxDate.Day(), 0, 0, 0, 0, s.loc).AddDate(0, 0, 1)
	kind := chama.KindDeposit

	deposits, err := s.transactions.List(ctx, transaction.ListFilter{
		Kind:      &kind,
		StartDate: &start,
		EndDate:   &end,
	})
	if err != nil {
		return nil, fmt.Errorf("finding duplicates: %w", err)
	}

	out := make(map[depositKey]int, len(deposits))
	for _, d := range deposits {
		out[s.depositKey(d.MemberID, d.CreatedAt, d.Amount)]++
	}

	return out, nil
}

func minTime(a, b time.Time) time.Time {
	if b.Before(a) {
		return b
	}

	return a
}

func maxTime(a, b time.Time) time.Time {
	if b.After(a) {
		return b
	}

	return a
}
