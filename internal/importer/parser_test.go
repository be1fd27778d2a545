package importer_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/MrJamesThe3rd/chama/internal/importer"
)

var nairobi = time.FixedZone("EAT", 3*60*60)

func TestParse_MPesa(t *testing.T) {
	csv := `M-PESA STATEMENT
Customer Name:,JANE WANJIKU
Statement Period:,01 Mar 2025 - 31 Mar 2025

Receipt No.,Completion Time,Details,Transaction Status,Paid In,Withdrawn,Balance
SC41X2ABCD,2025-03-04 14:22:10,Funds received from 2547******678 - AKINYI OTIENO,Completed,"4,000.00",,"12,500.00"
SC42Y3EFGH,2025-03-05 09:10:00,Pay Bill to 888880 - KPLC PREPAID,Completed,,"1,000.00","11,500.00"
SC43Z4IJKL,2025-03-06 18:45:30,Funds received from 2547******123 - BARASA WEKESA,Completed,1500.50,,"13,000.50"
`

	parsed, err := importer.Parse(strings.NewReader(csv), nairobi)
	require.NoError(t, err)

	assert.Equal(t, "mpesa", parsed.Profile)
	assert.Equal(t, "UTF-8", parsed.Charset)
	require.Len(t, parsed.Rows, 2)

	first := parsed.Rows[0]
	assert.Equal(t, time.Date(2025, 3, 4, 14, 22, 10, 0, nairobi), first.Date)
	assert.Equal(t, "Funds received from 2547******678 - AKINYI OTIENO", first.Raw)
	assert.Equal(t, "AKINYI OTIENO", first.Payer)
	assert.Equal(t, "SC41X2ABCD", first.Reference)
	assert.Equal(t, int64(4000), first.Amount)
	assert.Equal(t, 6, first.Line)

	// 1500.50 rounds half away from zero.
	assert.Equal(t, int64(1501), parsed.Rows[1].Amount)
	assert.Equal(t, "BARASA WEKESA", parsed.Rows[1].Payer)
}

func TestParse_Simple(t *testing.T) {
	tests := []struct {
		name string
		csv  string
	}{
		{name: "Comma", csv: "Date,Name,Amount\n2025-03-04,akinyi otieno,4000\n05/03/2025,BARASA WEKESA,KES 2500\n"},
		{name: "Semicolon", csv: "Date;Name;Amount\n2025-03-04;akinyi otieno;4000\n05/03/2025;BARASA WEKESA;KES 2500\n"},
		{name: "ReorderedColumns", csv: "Amount,Date,Name,Note\n4000,2025-03-04,akinyi otieno,x\nKES 2500,05/03/2025,BARASA WEKESA,y\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := importer.Parse(strings.NewReader(tt.csv), nairobi)
			require.NoError(t, err)

			assert.Equal(t, "simple", parsed.Profile)
			require.Len(t, parsed.Rows, 2)

			assert.Equal(t, "akinyi otieno", parsed.Rows[0].Payer)
			assert.Equal(t, int64(4000), parsed.Rows[0].Amount)
			assert.Equal(t, time.Date(2025, 3, 5, 0, 0, 0, 0, nairobi), parsed.Rows[1].Date)
			assert.Equal(t, int64(2500), parsed.Rows[1].Amount)
		})
	}
}

func TestParse_SkipsNonPayments(t *testing.T) {
	csv := `Date,Name,Amount
2025-03-04,AKINYI,0
2025-03-04,AKINYI,-300
not a date,AKINYI,100
2025-03-04,AKINYI,abc
2025-03-05,AKINYI,700
`

	parsed, err := importer.Parse(strings.NewReader(csv), nairobi)
	require.NoError(t, err)
	require.Len(t, parsed.Rows, 1)
	assert.Equal(t, int64(700), parsed.Rows[0].Amount)
}

func TestParse_Windows1252(t *testing.T) {
	raw, err := charmap.Windows1252.NewEncoder().Bytes([]byte("Date,Name,Amount\n2025-03-04,JOSÉ MUTUA,4000\n"))
	require.NoError(t, err)

	parsed, err := importer.Parse(bytes.NewReader(raw), nairobi)
	require.NoError(t, err)
	require.Len(t, parsed.Rows, 1)
	assert.Equal(t, "JOSÉ MUTUA", parsed.Rows[0].Payer)
}

func TestParse_UnknownFormat(t *testing.T) {
	_, err := importer.Parse(strings.NewReader("Foo,Bar\n1,2\n"), nairobi)
	assert.ErrorIs(t, err, importer.ErrUnknownFormat)

	_, err = importer.Parse(strings.NewReader(""), nairobi)
	assert.ErrorIs(t, err, importer.ErrUnknownFormat)
}

func TestParse_MissingPayer(t *testing.T) {
	_, err := importer.Parse(strings.NewReader("Date,Name,Amount\n2025-03-04,,4000\n"), nairobi)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}
