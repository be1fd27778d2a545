package loan_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/chama/internal/chama"
	"github.com/MrJamesThe3rd/chama/internal/loan"
	"github.com/MrJamesThe3rd/chama/internal/posting"
)

var fixedNow = time.Date(2025, time.March, 14, 11, 0, 0, 0, time.UTC)

type fixture struct {
	repo     *loan.MockRepository
	members  *loan.MockMemberLookup
	postings *posting.MockRepository
	tx       *posting.MockTx
	svc      *loan.Service
}

func newFixture(t *testing.T) fixture {
	return newFixtureAt(t, func() time.Time { return fixedNow })
}

func newFixtureAt(t *testing.T, now func() time.Time) fixture {
	ctrl := gomock.NewController(t)

	f := fixture{
		repo:     loan.NewMockRepository(ctrl),
		members:  loan.NewMockMemberLookup(ctrl),
		postings: posting.NewMockRepository(ctrl),
		tx:       posting.NewMockTx(ctrl),
	}
	f.svc = loan.NewService(f.repo, f.members, f.postings, loan.WithClock(now))

	return f
}

func TestService_Initiate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	borrower := &chama.Member{ID: uuid.New(), Name: "OTIENO"}
	loanID := uuid.New()

	f.members.EXPECT().Get(ctx, borrower.ID).Return(borrower, nil)

	gomock.InOrder(
		f.postings.EXPECT().Begin(ctx, borrower.ID).Return(f.tx, nil),
		f.tx.EXPECT().CreateLoan(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, l *chama.Loan) error {
			l.ID = loanID
			return nil
		}),
		f.tx.EXPECT().CreateTransaction(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, tx *chama.Transaction) error {
			require.NotNil(t, tx.LoanID)
			assert.Equal(t, loanID, *tx.LoanID)
			assert.Equal(t, int64(-10000), tx.Amount)
			return nil
		}),
		f.tx.EXPECT().Commit().Return(nil),
		f.tx.EXPECT().Rollback().Return(nil),
	)

	got, err := f.svc.Initiate(ctx, loan.InitiateParams{
		MemberID:       borrower.ID,
		Principal:      10000,
		DurationMonths: 3,
		Rate:           decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(11000), got.Loan.Amount)
	assert.Equal(t, int64(1000), got.Loan.InterestAccrued)
	assert.Equal(t, time.Date(2025, time.June, 14, 0, 0, 0, 0, time.UTC), got.Loan.DueDate)
	assert.Equal(t, chama.KindLoanIssuance, got.Transaction.Kind)
}

func TestService_Initiate_Validation(t *testing.T) {
	tests := []struct {
		name    string
		params  loan.InitiateParams
		wantErr error
	}{
		{name: "NilMember", params: loan.InitiateParams{Principal: 100, DurationMonths: 1}, wantErr: chama.ErrUnknownMember},
		{name: "ZeroPrincipal", params: loan.InitiateParams{MemberID: uuid.New(), DurationMonths: 1}, wantErr: chama.ErrInvalidAmount},
		{name: "ZeroDuration", params: loan.InitiateParams{MemberID: uuid.New(), Principal: 100}, wantErr: chama.ErrInvalidDuration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			got, err := f.svc.Initiate(context.Background(), tt.params)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, got)
		})
	}
}

func TestService_Initiate_UnknownBorrower(t *testing.T) {
	f := newFixture(t)
	id := uuid.New()

	f.members.EXPECT().Get(gomock.Any(), id).Return(nil, chama.ErrNotFound)

	_, err := f.svc.Initiate(context.Background(), loan.InitiateParams{
		MemberID:       id,
		Principal:      1000,
		DurationMonths: 1,
		Rate:           decimal.NewFromInt(10),
	})
	assert.ErrorIs(t, err, chama.ErrUnknownMember)
}

func TestService_Initiate_StoreFailureRollsBack(t *testing.T) {
	f := newFixture(t)
	borrower := &chama.Member{ID: uuid.New(), Name: "OTIENO"}
	storeErr := errors.New("connection reset")

	f.members.EXPECT().Get(gomock.Any(), borrower.ID).Return(borrower, nil)
	f.postings.EXPECT().Begin(gomock.Any(), borrower.ID).Return(f.tx, nil)
	f.tx.EXPECT().CreateLoan(gomock.Any(), gomock.Any()).Return(nil)
	f.tx.EXPECT().CreateTransaction(gomock.Any(), gomock.Any()).Return(storeErr)
	f.tx.EXPECT().Rollback().Return(nil)

	_, err := f.svc.Initiate(context.Background(), loan.InitiateParams{
		MemberID:       borrower.ID,
		Principal:      1000,
		DurationMonths: 1,
		Rate:           decimal.NewFromInt(10),
	})
	assert.ErrorIs(t, err, storeErr)
}

func TestService_Repay(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	memberID := uuid.New()
	loanID := uuid.New()

	current := &chama.Loan{ID: loanID, MemberID: memberID, MemberName: "OTIENO", Amount: 11000, Status: chama.LoanActive}
	locked := *current

	f.repo.EXPECT().GetLoan(ctx, loanID).Return(current, nil)

	gomock.InOrder(
		f.postings.EXPECT().Begin(ctx, memberID).Return(f.tx, nil),
		f.tx.EXPECT().LoanForUpdate(ctx, loanID).Return(&locked, nil),
		f.tx.EXPECT().UpdateLoan(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, l *chama.Loan) error {
			assert.Equal(t, int64(7000), l.Amount)
			return nil
		}),
		f.tx.EXPECT().CreateTransaction(ctx, gomock.Any()).Return(nil),
		f.tx.EXPECT().Commit().Return(nil),
		f.tx.EXPECT().Rollback().Return(nil),
	)

	got, err := f.svc.Repay(ctx, loanID, 4000)
	require.NoError(t, err)

	assert.Equal(t, int64(4000), got.Transaction.Amount)
	assert.Equal(t, chama.KindLoanRepayment, got.Transaction.Kind)
	assert.Equal(t, "Loan Repayment: OTIENO", got.Transaction.Description)
	assert.Equal(t, loanID, *got.Transaction.LoanID)
	assert.Equal(t, int64(7000), got.Repayment.Remaining)
	assert.False(t, got.Repayment.Paid)
}

func TestService_Repay_Overpayment(t *testing.T) {
	f := newFixture(t)
	memberID := uuid.New()
	loanID := uuid.New()

	current := &chama.Loan{ID: loanID, MemberID: memberID, MemberName: "OTIENO", Amount: 3000, Status: chama.LoanActive}
	locked := *current

	f.repo.EXPECT().GetLoan(gomock.Any(), loanID).Return(current, nil)
	f.postings.EXPECT().Begin(gomock.Any(), memberID).Return(f.tx, nil)
	f.tx.EXPECT().LoanForUpdate(gomock.Any(), loanID).Return(&locked, nil)
	f.tx.EXPECT().UpdateLoan(gomock.Any(), gomock.Any()).Return(nil)
	f.tx.EXPECT().CreateTransaction(gomock.Any(), gomock.Any()).Return(nil)
	f.tx.EXPECT().Commit().Return(nil)
	f.tx.EXPECT().Rollback().Return(nil)

	got, err := f.svc.Repay(context.Background(), loanID, 5000)
	require.NoError(t, err)

	assert.Equal(t, int64(3000), got.Transaction.Amount)
	assert.Equal(t, int64(2000), got.Repayment.Excess)
	assert.Equal(t, chama.LoanPaid, got.Loan.Status)
}

func TestService_Repay_ClosedLoan(t *testing.T) {
	f := newFixture(t)
	memberID := uuid.New()
	loanID := uuid.New()

	paid := &chama.Loan{ID: loanID, MemberID: memberID, Status: chama.LoanPaid}

	f.repo.EXPECT().GetLoan(gomock.Any(), loanID).Return(paid, nil)
	f.postings.EXPECT().Begin(gomock.Any(), memberID).Return(f.tx, nil)
	f.tx.EXPECT().LoanForUpdate(gomock.Any(), loanID).Return(paid, nil)
	f.tx.EXPECT().Rollback().Return(nil)

	_, err := f.svc.Repay(context.Background(), loanID, 100)
	assert.ErrorIs(t, err, chama.ErrLoanClosed)
}

func TestService_Repay_UnknownLoan(t *testing.T) {
	f := newFixture(t)
	id := uuid.New()

	f.repo.EXPECT().GetLoan(gomock.Any(), id).Return(nil, chama.ErrNotFound)

	_, err := f.svc.Repay(context.Background(), id, 100)
	assert.ErrorIs(t, err, chama.ErrNotFound)
}

func TestService_Repay_InvalidAmount(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Repay(context.Background(), uuid.New(), -1)
	assert.ErrorIs(t, err, chama.ErrInvalidAmount)
}

func TestService_DatesFollowClockZone(t *testing.T) {
	eat := time.FixedZone("EAT", 3*60*60)
	// 2026-02-28 21:30 UTC is already 1 March in Nairobi.
	instant := time.Date(2026, time.February, 28, 21, 30, 0, 0, time.UTC)

	f := newFixtureAt(t, func() time.Time { return instant.In(eat) })
	borrower := &chama.Member{ID: uuid.New(), Name: "WANJIKU"}

	f.members.EXPECT().Get(gomock.Any(), borrower.ID).Return(borrower, nil)
	f.postings.EXPECT().Begin(gomock.Any(), borrower.ID).Return(f.tx, nil)
	f.tx.EXPECT().CreateLoan(gomock.Any(), gomock.Any()).Return(nil)
	f.tx.EXPECT().CreateTransaction(gomock.Any(), gomock.Any()).Return(nil)
	f.tx.EXPECT().Commit().Return(nil)
	f.tx.EXPECT().Rollback().Return(nil)

	issued, err := f.svc.Initiate(context.Background(), loan.InitiateParams{
		MemberID:       borrower.ID,
		Principal:      10000,
		DurationMonths: 3,
		Rate:           decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	due := issued.Loan.DueDate
	assert.Equal(t, 2026, due.Year())
	assert.Equal(t, time.June, due.Month())
	assert.Equal(t, 1, due.Day())

	loanID := uuid.New()
	current := &chama.Loan{ID: loanID, MemberID: borrower.ID, MemberName: borrower.Name, Amount: 11000, Status: chama.LoanActive}
	locked := *current

	f.repo.EXPECT().GetLoan(gomock.Any(), loanID).Return(current, nil)
	f.postings.EXPECT().Begin(gomock.Any(), borrower.ID).Return(f.tx, nil)
	f.tx.EXPECT().LoanForUpdate(gomock.Any(), loanID).Return(&locked, nil)
	f.tx.EXPECT().UpdateLoan(gomock.Any(), gomock.Any()).Return(nil)
	f.tx.EXPECT().CreateTransaction(gomock.Any(), gomock.Any()).Return(nil)
	f.tx.EXPECT().Commit().Return(nil)
	f.tx.EXPECT().Rollback().Return(nil)

	repaid, err := f.svc.Repay(context.Background(), loanID, 1000)
	require.NoError(t, err)

	require.NotNil(t, repaid.Loan.LastRepaymentDate)
	assert.Equal(t, time.March, repaid.Loan.LastRepaymentDate.Month())
	assert.Equal(t, 1, repaid.Loan.LastRepaymentDate.Day())
}
