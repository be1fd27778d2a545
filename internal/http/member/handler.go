package member

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/chama/internal/auth"
	"github.com/MrJamesThe3rd/chama/internal/chama"
	"github.com/MrJamesThe3rd/chama/internal/contribution"
	"github.com/MrJamesThe3rd/chama/internal/http/respond"
	"github.com/MrJamesThe3rd/chama/internal/member"
	"github.com/MrJamesThe3rd/chama/internal/report"
	"github.com/MrJamesThe3rd/chama/internal/settings"
)

type Handler struct {
	members  *member.Service
	settings *settings.Service
	reports  *report.Service
	loc      *time.Location
	now      func() time.Time
}

func NewHandler(members *member.Service, settings *settings.Service, reports *report.Service, loc *time.Location) *Handler {
	return &Handler{
		members:  members,
		settings: settings,
		reports:  reports,
		loc:      loc,
		now:      time.Now,
	}
}

// WithClock returns a copy of the handler reading time from now.
func (h *Handler) WithClock(now func() time.Time) *Handler {
	c := *h
	c.now = now

	return &c
}

func (h *Handler) Routes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(auth.Require(auth.CapRead))
		r.Get("/", h.list)
		r.Get("/{id}", h.get)
		r.Get("/{id}/financials", h.financials)
		r.Get("/{id}/history", h.history)
	})

	r.Group(func(r chi.Router) {
		r.Use(auth.Require(auth.CapPost))
		r.Post("/", h.create)
		r.Post("/{id}/payments", h.pay)
		r.Post("/{id}/fines", h.fine)
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	members, err := h.members.List(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(members))
}

type createMemberRequest struct {
	Name string `json:"name"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	m, err := h.members.Register(r.Context(), req.Name)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(m))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	m, err := h.members.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(m))
}

func (h *Handler) financials(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	m, err := h.members.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	st, err := h.settings.Get(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	now := h.now().In(h.loc)
	fin := contribution.Compute(*m, st.MonthlyContribution, now)

	respond.JSON(w, http.StatusOK, toFinancialsResponse(m, fin, now))
}

func (h *Handler) history(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	hist, err := h.reports.MemberHistory(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	if r.URL.Query().Get("format") != "csv" {
		respond.JSON(w, http.StatusOK, toHistoryResponse(hist))
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+historyFilename(hist.Member.Name)+`"`)

	if err := report.WriteCSV(w, hist); err != nil {
		respond.Error(w, r, err)
	}
}

type paymentRequest struct {
	Amount     int64      `json:"amount"`
	ReceivedAt *time.Time `json:"received_at,omitempty"`
}

func (h *Handler) pay(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req paymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	params := member.PaymentParams{MemberID: id, Amount: req.Amount}
	if req.ReceivedAt != nil {
		params.ReceivedAt = *req.ReceivedAt
	}

	receipt, err := h.members.ProcessPayment(r.Context(), params)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toReceiptResponse(receipt))
}

type fineRequest struct {
	Amount int64  `json:"amount"`
	Month  string `json:"month,omitempty"` // YYYY-MM, defaults to the current month
}

func (h *Handler) fine(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req fineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	month := chama.MonthStart(h.now().In(h.loc))
	if req.Month != "" {
		if month, err = chama.ParsePeriod(req.Month, h.loc); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	receipt, err := h.members.ApplyFine(r.Context(), member.FineParams{
		MemberID: id,
		Month:    month,
		Amount:   req.Amount,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toReceiptResponse(receipt))
}
