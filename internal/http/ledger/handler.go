package ledger

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/chama/internal/auth"
	"github.com/MrJamesThe3rd/chama/internal/chama"
	"github.com/MrJamesThe3rd/chama/internal/http/respond"
	"github.com/MrJamesThe3rd/chama/internal/latefee"
	"github.com/MrJamesThe3rd/chama/internal/ledger"
	"github.com/MrJamesThe3rd/chama/internal/snapshot"
)

type Loader interface {
	Load(ctx context.Context) (*snapshot.Snapshot, error)
}

type Sweeper interface {
	Run(ctx context.Context) (latefee.Result, error)
}

type Handler struct {
	loader  Loader
	sweeper Sweeper
	loc     *time.Location
	now     func() time.Time
}

func NewHandler(loader Loader, sweeper Sweeper, loc *time.Location) *Handler {
	return &Handler{loader: loader, sweeper: sweeper, loc: loc, now: time.Now}
}

// WithClock returns a copy of the handler reading time from now.
func (h *Handler) WithClock(now func() time.Time) *Handler {
	c := *h
	c.now = now

	return &c
}

func (h *Handler) Routes(r chi.Router) {
	r.With(auth.Require(auth.CapRead)).Get("/ledger", h.ledger)
	r.With(auth.Require(auth.CapRead)).Get("/dashboard", h.dashboard)
	r.With(auth.Require(auth.CapSweep)).Post("/sweep", h.sweep)
}

type lineResponse struct {
	TransactionID *uuid.UUID `json:"transaction_id,omitempty"`
	Date          time.Time  `json:"date"`
	Kind          chama.Kind `json:"kind,omitempty"`
	Description   string     `json:"description"`
	Amount        int64      `json:"amount"`
	Balancing     bool       `json:"balancing"`
}

type ledgerResponse struct {
	Period       string         `json:"period"`
	Debits       []lineResponse `json:"debits"`
	Credits      []lineResponse `json:"credits"`
	TotalDebit   int64          `json:"total_debit"`
	TotalCredit  int64          `json:"total_credit"`
	Balance      int64          `json:"balance"`
	GrandTotal   int64          `json:"grand_total"`
	DebitFooter  int64          `json:"debit_footer"`
	CreditFooter int64          `json:"credit_footer"`
}

func toLines(lines []ledger.Line) []lineResponse {
	out := make([]lineResponse, len(lines))
	for i, l := range lines {
		out[i] = lineResponse{
			Date:        l.Date,
			Kind:        l.Kind,
			Description: l.Description,
			Amount:      l.Amount,
			Balancing:   l.Balancing,
		}
		if !l.Balancing {
			out[i].TransactionID = new(l.TransactionID)
		}
	}

	return out
}

// period reads the "period" query parameter, defaulting to the current month.
func (h *Handler) period(r *http.Request) (time.Time, error) {
	s := r.URL.Query().Get("period")
	if s == "" {
		return chama.MonthStart(h.now().In(h.loc)), nil
	}

	return chama.ParsePeriod(s, h.loc)
}

func (h *Handler) ledger(w http.ResponseWriter, r *http.Request) {
	period, err := h.period(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	snap, err := h.loader.Load(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	acct := ledger.Balance(snap.Transactions, period)

	respond.JSON(w, http.StatusOK, ledgerResponse{
		Period:       chama.PeriodKey(acct.Period),
		Debits:       toLines(acct.Debits),
		Credits:      toLines(acct.Credits),
		TotalDebit:   acct.TotalDr,
		TotalCredit:  acct.TotalCr,
		Balance:      acct.Balance,
		GrandTotal:   acct.GrandTotal,
		DebitFooter:  acct.DebitFooter(),
		CreditFooter: acct.CreditFooter(),
	})
}

type dashboardResponse struct {
	TotalLiquidity      int64     `json:"total_liquidity"`
	ActiveLoanExposure  int64     `json:"active_loan_exposure"`
	ActiveLoans         int       `json:"active_loans"`
	Members             int       `json:"members"`
	MonthlyContribution int64     `json:"monthly_contribution"`
	LateFeeAmount       int64     `json:"late_fee_amount"`
	SyncedAt            time.Time `json:"synced_at"`
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	snap, err := h.loader.Load(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	d := ledger.Summarize(snap.Members, snap.Loans, snap.Transactions)

	respond.JSON(w, http.StatusOK, dashboardResponse{
		TotalLiquidity:      d.TotalLiquidity,
		ActiveLoanExposure:  d.ActiveLoanExposure,
		ActiveLoans:         d.ActiveLoans,
		Members:             d.Members,
		MonthlyContribution: snap.Settings.MonthlyContribution,
		LateFeeAmount:       snap.Settings.LateFeeAmount,
		SyncedAt:            snap.TakenAt,
	})
}

type penaltyResponse struct {
	MemberID uuid.UUID `json:"member_id"`
	Member   string    `json:"member"`
	Month    string    `json:"month"`
	Fee      int64     `json:"fee"`
}

type sweepResponse struct {
	Posted  []penaltyResponse `json:"posted"`
	Skipped int               `json:"skipped"`
}

func (h *Handler) sweep(w http.ResponseWriter, r *http.Request) {
	res, err := h.sweeper.Run(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := sweepResponse{
		Posted:  make([]penaltyResponse, len(res.Posted)),
		Skipped: res.Skipped,
	}

	for i, p := range res.Posted {
		resp.Posted[i] = penaltyResponse{
			MemberID: p.Member.ID,
			Member:   p.Member.Name,
			Month:    chama.PeriodKey(p.Month),
			Fee:      p.Fee,
		}
	}

	respond.JSON(w, http.StatusOK, resp)
}
