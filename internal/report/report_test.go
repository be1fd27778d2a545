package report_test

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/chama/internal/chama"
	"github.com/MrJamesThe3rd/chama/internal/report"
	"github.com/MrJamesThe3rd/chama/internal/snapshot"
)

func day(m time.Month, d int) time.Time {
	return time.Date(2025, m, d, 12, 0, 0, 0, time.UTC)
}

func fixtureSnapshot() (*snapshot.Snapshot, *chama.Member) {
	akinyi := &chama.Member{ID: uuid.New(), Name: "AKINYI", CarryForward: 4500}
	other := &chama.Member{ID: uuid.New(), Name: "AKINYI WAMBUI"}
	loanID := uuid.New()

	return &snapshot.Snapshot{
		Members: []*chama.Member{akinyi, other},
		Loans: []*chama.Loan{
			{ID: loanID, MemberID: akinyi.ID, Principal: 10000, Status: chama.LoanActive, DueDate: day(time.June, 10), CreatedAt: day(time.March, 10)},
		},
		Transactions: []*chama.Transaction{
			{ID: uuid.New(), MemberID: akinyi.ID, Amount: 5000, Kind: chama.KindDeposit, Description: "Payment: AKINYI", CreatedAt: day(time.March, 4)},
			{ID: uuid.New(), MemberID: akinyi.ID, Amount: -500, Kind: chama.KindFine, Description: "Fine: February - AKINYI", CreatedAt: day(time.March, 6)},
			{ID: uuid.New(), MemberID: akinyi.ID, LoanID: &loanID, Amount: -10000, Kind: chama.KindLoanIssuance, Description: "Disbursed to AKINYI", CreatedAt: day(time.March, 10)},
			{ID: uuid.New(), MemberID: other.ID, Amount: 4000, Kind: chama.KindDeposit, Description: "Payment: AKINYI WAMBUI", CreatedAt: day(time.April, 2)},
		},
		TakenAt: day(time.April, 20),
	}, akinyi
}

func TestMemberHistory(t *testing.T) {
	snap, akinyi := fixtureSnapshot()

	h, err := report.MemberHistory(snap, akinyi.ID)
	require.NoError(t, err)

	require.Len(t, h.Rows, 4)

	// Matching is by member id, so the other member's deposit is absent even
	// though its description contains this member's name.
	for _, r := range h.Rows {
		assert.NotEqual(t, "Payment: AKINYI WAMBUI", r.Details)
	}

	assert.Equal(t, "LOAN TAKEN", h.Rows[0].Activity)
	assert.Equal(t, "Status: active | Due: 2025-06-10", h.Rows[0].Details)
	assert.Equal(t, "LOAN ISSUANCE", h.Rows[1].Activity)
	assert.Equal(t, "FINE", h.Rows[2].Activity)
	assert.Equal(t, "DEPOSIT", h.Rows[3].Activity)

	for i := 1; i < len(h.Rows); i++ {
		assert.False(t, h.Rows[i].Date.After(h.Rows[i-1].Date))
	}
}

func TestMemberHistory_UnknownMember(t *testing.T) {
	snap, _ := fixtureSnapshot()

	_, err := report.MemberHistory(snap, uuid.New())
	assert.ErrorIs(t, err, chama.ErrUnknownMember)
}

func TestMonthlyStatement(t *testing.T) {
	snap, _ := fixtureSnapshot()

	s := report.MonthlyStatement(snap, day(time.March, 1))

	assert.Equal(t, int64(5000), s.TotalDebit)
	assert.Equal(t, int64(10500), s.TotalCredit)
	assert.Equal(t, int64(-5500), s.NetClosingBalance)
	assert.Equal(t, int64(10500), s.Ledger.GrandTotal)

	require.Len(t, s.Lines, 3)
	assert.Equal(t, "Disbursed to AKINYI", s.Lines[0].Description)
	assert.Equal(t, int64(10000), s.Lines[0].Credit)
	assert.Equal(t, "Payment: AKINYI", s.Lines[2].Description)
	assert.Equal(t, int64(5000), s.Lines[2].Debit)
}

func TestWriteCSV_Statement(t *testing.T) {
	snap, _ := fixtureSnapshot()
	s := report.MonthlyStatement(snap, day(time.March, 1))

	var buf bytes.Buffer
	require.NoError(t, report.WriteCSV(&buf, s))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)

	require.Len(t, records, 5)
	assert.Equal(t, []string{"Date", "Description", "Debit (In)", "Credit (Out)"}, records[0])
	assert.Equal(t, []string{"2025-03-10", "Disbursed to AKINYI", "-", "10000"}, records[1])
	assert.Equal(t, []string{"", "Totals", "5000", "10500"}, records[4])
}

func TestWriteCSV_History(t *testing.T) {
	snap, akinyi := fixtureSnapshot()

	h, err := report.MemberHistory(snap, akinyi.ID)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, report.WriteCSV(&buf, h))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)

	require.Len(t, records, 5)
	assert.Equal(t, []string{"2025-03-06", "FINE", "-500", "Fine: February - AKINYI"}, records[3])
}

func TestFormatter(t *testing.T) {
	f := report.NewFormatter("KES")

	assert.Equal(t, "KES 10,500", f.Amount(10500))
	assert.Equal(t, "KES -5,500", f.Amount(-5500))
	assert.Equal(t, "KES 0", f.Amount(0))

	snap, _ := fixtureSnapshot()
	summary := f.Summary(report.MonthlyStatement(snap, day(time.March, 1)))

	assert.Contains(t, summary, "Period: March 2025")
	assert.Contains(t, summary, "* 2025-03-04 | Payment: AKINYI | +5,000")
	assert.Contains(t, summary, "* 2025-03-10 | Disbursed to AKINYI | -10,000")
	assert.Contains(t, summary, "Net Closing Balance: KES -5,500")
}

func TestWriteBundle(t *testing.T) {
	snap, _ := fixtureSnapshot()
	s := report.MonthlyStatement(snap, day(time.March, 1))

	var buf bytes.Buffer
	require.NoError(t, report.NewFormatter("KES").WriteBundle(&buf, s))

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)

	names := make([]string, 0, len(zr.File))
	for _, f := range zr.File {
		names = append(names, f.Name)
	}

	assert.ElementsMatch(t, []string{"ledger_2025-03.csv", "summary_2025-03.txt"}, names)

	rc, err := zr.Open("summary_2025-03.txt")
	require.NoError(t, err)

	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Total Out: KES 10,500")

	assert.Equal(t, "Chama_Ledger_2025-03.zip", report.BundleName(s.Period))
}

type stubLoader struct {
	snap *snapshot.Snapshot
	err  error
}

func (s stubLoader) Load(context.Context) (*snapshot.Snapshot, error) {
	return s.snap, s.err
}

func TestService(t *testing.T) {
	snap, akinyi := fixtureSnapshot()
	svc := report.NewService(stubLoader{snap: snap})

	h, err := svc.MemberHistory(context.Background(), akinyi.ID)
	require.NoError(t, err)
	assert.Equal(t, akinyi, h.Member)

	loadErr := errors.New("db down")
	failing := report.NewService(stubLoader{err: loadErr})

	_, err = failing.MonthlyStatement(context.Background(), day(time.March, 1))
	assert.ErrorIs(t, err, loadErr)
}
