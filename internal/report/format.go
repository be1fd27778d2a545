package report

import (
	"archive/zip"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/MrJamesThe3rd/chama/internal/chama"
)

// Table is anything that renders as CSV.
type Table interface {
	Header() []string
	Records() [][]string
}

func (h *History) Header() []string {
	return []string{"Date", "Activity Type", "Amount", "Details"}
}

func (h *History) Records() [][]string {
	out := make([][]string, 0, len(h.Rows))
	for _, r := range h.Rows {
		out = append(out, []string{
			r.Date.Format(time.DateOnly),
			r.Activity,
			strconv.FormatInt(r.Amount, 10),
			r.Details,
		})
	}

	return out
}

func (s Statement) Header() []string {
	return []string{"Date", "Description", "Debit (In)", "Credit (Out)"}
}

// Records ends with a totals row.
func (s Statement) Records() [][]string {
	out := make([][]string, 0, len(s.Lines)+1)
	for _, l := range s.Lines {
		out = append(out, []string{
			l.Date.Format(time.DateOnly),
			l.Description,
			cell(l.Debit),
			cell(l.Credit),
		})
	}

	return append(out, []string{"", "Totals", strconv.FormatInt(s.TotalDebit, 10), strconv.FormatInt(s.TotalCredit, 10)})
}

func cell(v int64) string {
	if v == 0 {
		return "-"
	}

	return strconv.FormatInt(v, 10)
}

func WriteCSV(w io.Writer, t Table) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(t.Header()); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}

	if err := cw.WriteAll(t.Records()); err != nil {
		return fmt.Errorf("writing csv records: %w", err)
	}

	return nil
}

// Formatter renders amounts with thousands separators, e.g. "KES 10,500".
type Formatter struct {
	printer  *message.Printer
	currency string
}

func NewFormatter(currency string) Formatter {
	return Formatter{printer: message.NewPrinter(language.English), currency: currency}
}

func (f Formatter) Amount(v int64) string {
	return f.currency + " " + f.printer.Sprintf("%d", v)
}

// Summary is the plain-text rendering of a statement, suitable for pasting
// into a message to members.
func (f Formatter) Summary(s Statement) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Monthly Ledger Report\nPeriod: %s\n\n", s.Period.Format("January 2006"))

	for _, l := range s.Lines {
		amount := "+" + f.printer.Sprintf("%d", l.Debit)
		if l.Credit != 0 {
			amount = "-" + f.printer.Sprintf("%d", l.Credit)
		}

		fmt.Fprintf(&sb, "* %s | %s | %s\n", l.Date.Format(time.DateOnly), l.Description, amount)
	}

	fmt.Fprintf(&sb, "\nTotal In: %s\nTotal Out: %s\nNet Closing Balance: %s\n",
		f.Amount(s.TotalDebit), f.Amount(s.TotalCredit), f.Amount(s.NetClosingBalance))

	return sb.String()
}

// BundleName is the download name of a statement bundle.
func BundleName(period time.Time) string {
	return "Chama_Ledger_" + chama.PeriodKey(period) + ".zip"
}

// WriteBundle writes a zip holding the statement CSV and its text summary.
func (f Formatter) WriteBundle(w io.Writer, s Statement) error {
	zw := zip.NewWriter(w)

	key := chama.PeriodKey(s.Period)

	csvFile, err := zw.Create("ledger_" + key + ".csv")
	if err != nil {
		return fmt.Errorf("creating csv entry: %w", err)
	}

	if err := WriteCSV(csvFile, s); err != nil {
		return err
	}

	summaryFile, err := zw.Create("summary_" + key + ".txt")
	if err != nil {
		return fmt.Errorf("creating summary entry: %w", err)
	}

	if _, err := io.WriteString(summaryFile, f.Summary(s)); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("closing zip: %w", err)
	}

	return nil
}
