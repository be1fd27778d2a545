package importer_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/chama/internal/chama"
	"github.com/MrJamesThe3rd/chama/internal/importer"
	"github.com/MrJamesThe3rd/chama/internal/member"
	"github.com/MrJamesThe3rd/chama/internal/transaction"
)

type fakeAliases map[string]uuid.UUID

func (f fakeAliases) Suggest(_ context.Context, payer string) (uuid.UUID, bool, error) {
	for pattern, id := range f {
		if strings.Contains(strings.ToLower(payer), strings.ToLower(pattern)) {
			return id, true, nil
		}
	}

	return uuid.Nil, false, nil
}

type fakeMembers []*chama.Member

func (f fakeMembers) List(context.Context) ([]*chama.Member, error) {
	return f, nil
}

type fakePayments struct {
	posted []member.PaymentParams
	failAt int // 1-based call that fails; 0 never fails
}

func (f *fakePayments) ProcessPayment(_ context.Context, p member.PaymentParams) (*member.Receipt, error) {
	if f.failAt > 0 && len(f.posted)+1 == f.failAt {
		return nil, errors.New("connection reset")
	}

	f.posted = append(f.posted, p)

	return &member.Receipt{Transaction: &chama.Transaction{MemberID: p.MemberID, Amount: p.Amount, Kind: chama.KindDeposit}}, nil
}

type fakeTransactions struct {
	txs    []*chama.Transaction
	filter transaction.ListFilter
}

func (f *fakeTransactions) List(_ context.Context, filter transaction.ListFilter) ([]*chama.Transaction, error) {
	f.filter = filter
	return f.txs, nil
}

const statement = `Date,Name,Amount
2025-03-04,Akinyi  Otieno,4000
2025-03-04,0712345678 Barasa,2500
2025-03-05,Stranger Danger,1000
`

func TestService_Import(t *testing.T) {
	akinyi := &chama.Member{ID: uuid.New(), Name: "AKINYI OTIENO"}
	barasa := &chama.Member{ID: uuid.New(), Name: "BARASA WEKESA"}

	payments := &fakePayments{}
	txs := &fakeTransactions{}

	svc := importer.NewService(
		fakeAliases{"0712345678": barasa.ID},
		fakeMembers{akinyi, barasa},
		payments,
		txs,
		nairobi,
	)

	res, err := svc.Import(context.Background(), strings.NewReader(statement), importer.Options{})
	require.NoError(t, err)

	assert.Equal(t, "simple", res.Profile)
	require.Len(t, res.Posted, 2)
	assert.Equal(t, akinyi, res.Posted[0].Member)
	assert.Equal(t, barasa, res.Posted[1].Member)
	assert.NotNil(t, res.Posted[0].Receipt)

	require.Len(t, res.Unresolved, 1)
	assert.Equal(t, "Stranger Danger", res.Unresolved[0].Payer)

	require.Len(t, payments.posted, 2)
	assert.Equal(t, member.PaymentParams{
		MemberID:   akinyi.ID,
		Amount:     4000,
		ReceivedAt: time.Date(2025, 3, 4, 0, 0, 0, 0, nairobi),
	}, payments.posted[0])

	require.NotNil(t, txs.filter.Kind)
	assert.Equal(t, chama.KindDeposit, *txs.filter.Kind)
	assert.Equal(t, time.Date(2025, 3, 4, 0, 0, 0, 0, nairobi), *txs.filter.StartDate)
	assert.Equal(t, time.Date(2025, 3, 5, 0, 0, 0, 0, nairobi), *txs.filter.EndDate)
}

func TestService_Import_Duplicates(t *testing.T) {
	akinyi := &chama.Member{ID: uuid.New(), Name: "AKINYI OTIENO"}
	payments := &fakePayments{}

	// Already imported once; recorded at the statement time in UTC.
	txs := &fakeTransactions{txs: []*chama.Transaction{
		{MemberID: akinyi.ID, Amount: 4000, Kind: chama.KindDeposit, CreatedAt: time.Date(2025, 3, 3, 21, 0, 0, 0, time.UTC)},
	}}

	svc := importer.NewService(fakeAliases{}, fakeMembers{akinyi}, payments, txs, nairobi)

	csv := "Date,Name,Amount\n2025-03-04,AKINYI OTIENO,4000\n2025-03-04,AKINYI OTIENO,4000\n"

	res, err := svc.Import(context.Background(), strings.NewReader(csv), importer.Options{})
	require.NoError(t, err)

	assert.Len(t, res.Duplicates, 1)
	assert.Len(t, res.Posted, 1)
	assert.Len(t, payments.posted, 1)
}

func TestService_Import_DryRun(t *testing.T) {
	akinyi := &chama.Member{ID: uuid.New(), Name: "AKINYI OTIENO"}
	payments := &fakePayments{}

	svc := importer.NewService(fakeAliases{}, fakeMembers{akinyi}, payments, &fakeTransactions{}, nairobi)

	res, err := svc.Import(context.Background(), strings.NewReader(statement), importer.Options{DryRun: true})
	require.NoError(t, err)

	assert.Len(t, res.Posted, 1)
	assert.Nil(t, res.Posted[0].Receipt)
	assert.Empty(t, payments.posted)
}

func TestService_Import_StopsOnPostingFailure(t *testing.T) {
	akinyi := &chama.Member{ID: uuid.New(), Name: "AKINYI OTIENO"}
	barasa := &chama.Member{ID: uuid.New(), Name: "BARASA WEKESA"}
	payments := &fakePayments{failAt: 2}

	svc := importer.NewService(fakeAliases{"0712345678": barasa.ID}, fakeMembers{akinyi, barasa}, payments, &fakeTransactions{}, nairobi)

	res, err := svc.Import(context.Background(), strings.NewReader(statement), importer.Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 3")

	require.NotNil(t, res)
	assert.Len(t, res.Posted, 1)
}
