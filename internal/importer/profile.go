package importer

import "strings"

// Profile describes the column layout of a statement export. Adding a format
// is adding an entry to profiles.
type Profile struct {
	Name         string
	DateCol      string
	PayerCol     string
	AmountCol    string
	ReferenceCol string // Optional
	// Payer extracts the payer's name from the payer column. Nil keeps the
	// cell as is.
	Payer func(cell string) string
}

func (p Profile) requiredCols() []string {
	return []string{p.DateCol, p.PayerCol, p.AmountCol}
}

// profiles is tried in order; more specific layouts come first.
var profiles = []Profile{
	{
		Name:         "mpesa",
		DateCol:      "Completion Time",
		PayerCol:     "Details",
		AmountCol:    "Paid In",
		ReferenceCol: "Receipt No.",
		Payer:        afterLastDash,
	},
	{
		Name:      "simple",
		DateCol:   "Date",
		PayerCol:  "Name",
		AmountCol: "Amount",
	},
}

// afterLastDash turns "Funds received from 2547XXXXX678 - JANE WANJIKU" into
// "JANE WANJIKU".
func afterLastDash(cell string) string {
	if i := strings.LastIndex(cell, " - "); i >= 0 {
		return strings.TrimSpace(cell[i+3:])
	}

	return cell
}
