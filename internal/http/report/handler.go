package report

import (
	"bytes"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/chama/internal/auth"
	"github.com/MrJamesThe3rd/chama/internal/chama"
	"github.com/MrJamesThe3rd/chama/internal/http/respond"
	"github.com/MrJamesThe3rd/chama/internal/report"
)

type Handler struct {
	svc       *report.Service
	formatter report.Formatter
	loc       *time.Location
	now       func() time.Time
}

func NewHandler(svc *report.Service, formatter report.Formatter, loc *time.Location) *Handler {
	return &Handler{svc: svc, formatter: formatter, loc: loc, now: time.Now}
}

func (h *Handler) Routes(r chi.Router) {
	r.Use(auth.Require(auth.CapRead))
	r.Get("/monthly", h.monthly)
	r.Get("/monthly/download", h.download)
}

type lineResponse struct {
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	Debit       int64     `json:"debit"`
	Credit      int64     `json:"credit"`
}

type statementResponse struct {
	Period            string         `json:"period"`
	Lines             []lineResponse `json:"lines"`
	TotalDebit        int64          `json:"total_debit"`
	TotalCredit       int64          `json:"total_credit"`
	NetClosingBalance int64          `json:"net_closing_balance"`
	Summary           string         `json:"summary"`
}

func (h *Handler) statement(w http.ResponseWriter, r *http.Request) (report.Statement, bool) {
	period := chama.MonthStart(h.now().In(h.loc))

	if s := r.URL.Query().Get("period"); s != "" {
		p, err := chama.ParsePeriod(s, h.loc)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return report.Statement{}, false
		}

		period = p
	}

	st, err := h.svc.MonthlyStatement(r.Context(), period)
	if err != nil {
		respond.Error(w, r, err)
		return report.Statement{}, false
	}

	return st, true
}

func (h *Handler) monthly(w http.ResponseWriter, r *http.Request) {
	st, ok := h.statement(w, r)
	if !ok {
		return
	}

	resp := statementResponse{
		Period:            chama.PeriodKey(st.Period),
		Lines:             make([]lineResponse, len(st.Lines)),
		TotalDebit:        st.TotalDebit,
		TotalCredit:       st.TotalCredit,
		NetClosingBalance: st.NetClosingBalance,
		Summary:           h.formatter.Summary(st),
	}

	for i, l := range st.Lines {
		resp.Lines[i] = lineResponse(l)
	}

	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	st, ok := h.statement(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.formatter.WriteBundle(&buf, st); err != nil {
		respond.Error(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", `attachment; filename="`+report.BundleName(st.Period)+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))

	if _, err := buf.WriteTo(w); err != nil {
		respond.Error(w, r, err)
	}
}
