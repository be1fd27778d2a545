package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/chama/internal/encoding"
)

var ErrUnknownFormat = errors.New("no matching statement format: expected M-Pesa (Completion Time, Details, Paid In) or simple (Date, Name, Amount) columns")

var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"02/01/2006",
	"02-01-2006",
}

// Row is one incoming payment read from a statement.
type Row struct {
	Line      int // 1-based line in the file
	Date      time.Time
	Raw       string // Payer column as written
	Payer     string
	Reference string
	Amount    int64 // Whole currency units
}

// Parsed is the outcome of reading a statement file.
type Parsed struct {
	Profile string
	Charset string
	Rows    []Row
}

// Parse decodes r, detects its layout, and returns the rows that carry a
// positive incoming amount. Dates without a zone are read in loc.
func Parse(r io.Reader, loc *time.Location) (*Parsed, error) {
	utf8r, charset, err := encoding.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	content, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read statement: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(content))
	reader.Comma = sniffDelimiter(content)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := readRecords(reader)
	if err != nil {
		return nil, err
	}

	profile, cols, headerIdx := detectProfile(records)
	if profile == nil {
		return nil, ErrUnknownFormat
	}

	rows, err := parseRows(profile, cols, records[headerIdx+1:], loc)
	if err != nil {
		return nil, err
	}

	return &Parsed{Profile: profile.Name, Charset: charset, Rows: rows}, nil
}

// sniffDelimiter picks the most frequent of the usual spreadsheet separators.
func sniffDelimiter(content []byte) rune {
	best, bestCount := ',', -1

	for _, c := range []rune{',', ';', '\t'} {
		if n := bytes.Count(content, []byte(string(c))); n > bestCount {
			best, bestCount = c, n
		}
	}

	return best
}

// record is a csv row with its line in the file; blank lines are skipped by
// the reader, so the index alone does not give the line.
type record struct {
	cells []string
	line  int
}

func readRecords(reader *csv.Reader) ([]record, error) {
	var records []record

	for {
		cells, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return records, nil
		}

		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}

		line, _ := reader.FieldPos(0)
		records = append(records, record{cells: cells, line: line})
	}
}

type colIndex map[string]int

func detectProfile(records []record) (*Profile, colIndex, int) {
	for rowIdx, row := range records {
		cols := make(colIndex)

		for i, cell := range row.cells {
			if name := strings.TrimSpace(cell); name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

func parseRows(p *Profile, cols colIndex, records []record, loc *time.Location) ([]Row, error) {
	refIdx := -1
	if i, ok := cols[p.ReferenceCol]; ok && p.ReferenceCol != "" {
		refIdx = i
	}

	var rows []Row

	for _, rec := range records {
		line, cells := rec.line, rec.cells

		date, ok := parseDate(cellValue(cells, cols[p.DateCol]), loc)
		if !ok {
			continue
		}

		amount, ok := parseAmount(cellValue(cells, cols[p.AmountCol]))
		if !ok {
			// Withdrawals and charges leave the incoming column empty.
			continue
		}

		raw := cellValue(cells, cols[p.PayerCol])
		if raw == "" {
			return nil, fmt.Errorf("line %d: missing payer", line)
		}

		payer := raw
		if p.Payer != nil {
			payer = p.Payer(raw)
		}

		rows = append(rows, Row{
			Line:      line,
			Date:      date,
			Raw:       raw,
			Payer:     payer,
			Reference: cellValue(cells, refIdx),
			Amount:    amount,
		})
	}

	return rows, nil
}

func parseDate(s string, loc *time.Location) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// parseAmount reads "1,500.00", "KES 4000" or "Ksh 250.50" into whole units,
// rounding half away from zero. Only positive amounts are accepted.
func parseAmount(s string) (int64, bool) {
	clean := strings.NewReplacer(",", "", " ", "", "KES", "", "Ksh", "", "KSh", "").Replace(s)
	if clean == "" {
		return 0, false
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, false
	}

	units := d.Round(0).IntPart()
	if units <= 0 {
		return 0, false
	}

	return units, true
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
