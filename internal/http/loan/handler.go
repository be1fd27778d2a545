package loan

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/chama/internal/auth"
	"github.com/MrJamesThe3rd/chama/internal/chama"
	"github.com/MrJamesThe3rd/chama/internal/http/respond"
	"github.com/MrJamesThe3rd/chama/internal/loan"
	"github.com/MrJamesThe3rd/chama/internal/settings"
)

type Handler struct {
	loans    *loan.Service
	settings *settings.Service
}

func NewHandler(loans *loan.Service, settings *settings.Service) *Handler {
	return &Handler{loans: loans, settings: settings}
}

func (h *Handler) Routes(r chi.Router) {
	r.With(auth.Require(auth.CapRead)).Get("/", h.list)
	r.With(auth.Require(auth.CapRead)).Get("/{id}", h.get)
	r.With(auth.Require(auth.CapPost)).Post("/", h.create)
	r.With(auth.Require(auth.CapPost)).Post("/{id}/repayments", h.repay)
}

type loanResponse struct {
	ID                uuid.UUID        `json:"id"`
	MemberID          uuid.UUID        `json:"member_id"`
	MemberName        string           `json:"member_name,omitempty"`
	Principal         int64            `json:"principal"`
	InterestAccrued   int64            `json:"interest_accrued"`
	Amount            int64            `json:"amount"`
	Status            chama.LoanStatus `json:"status"`
	DueDate           time.Time        `json:"due_date"`
	LastRepaymentDate *time.Time       `json:"last_repayment_date,omitempty"`
	CreatedAt         time.Time        `json:"created_at"`
}

func toResponse(l *chama.Loan) loanResponse {
	return loanResponse{
		ID:                l.ID,
		MemberID:          l.MemberID,
		MemberName:        l.MemberName,
		Principal:         l.Principal,
		InterestAccrued:   l.InterestAccrued,
		Amount:            l.Amount,
		Status:            l.Status,
		DueDate:           l.DueDate,
		LastRepaymentDate: l.LastRepaymentDate,
		CreatedAt:         l.CreatedAt,
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	var filter loan.ListFilter

	if s := r.URL.Query().Get("member_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			http.Error(w, "invalid member_id", http.StatusBadRequest)
			return
		}

		filter.MemberID = &id
	}

	if s := r.URL.Query().Get("status"); s != "" {
		st, ok := chama.ParseLoanStatus(s)
		if !ok {
			http.Error(w, "invalid status", http.StatusBadRequest)
			return
		}

		filter.Status = &st
	}

	loans, err := h.loans.List(r.Context(), filter)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := make([]loanResponse, len(loans))
	for i, l := range loans {
		resp[i] = toResponse(l)
	}

	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	l, err := h.loans.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(l))
}

type createLoanRequest struct {
	MemberID       uuid.UUID        `json:"member_id"`
	Principal      int64            `json:"principal"`
	DurationMonths int              `json:"duration_months"`
	Rate           *decimal.Decimal `json:"rate,omitempty"` // Percent, defaults to the group rate; admin only
}

type disbursementResponse struct {
	Loan          loanResponse `json:"loan"`
	TransactionID uuid.UUID    `json:"transaction_id"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createLoanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	params := loan.InitiateParams{
		MemberID:       req.MemberID,
		Principal:      req.Principal,
		DurationMonths: req.DurationMonths,
	}

	if req.Rate != nil {
		// Overriding the group rate is a settings change.
		claims, ok := auth.FromContext(r.Context())
		if !ok || !claims.Role.Can(auth.CapSettings) {
			respond.Error(w, r, auth.ErrForbidden)
			return
		}

		params.Rate = *req.Rate
	} else {
		st, err := h.settings.Get(r.Context())
		if err != nil {
			respond.Error(w, r, err)
			return
		}

		params.Rate = st.LoanInterestRate
	}

	d, err := h.loans.Initiate(r.Context(), params)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, disbursementResponse{
		Loan:          toResponse(d.Loan),
		TransactionID: d.Transaction.ID,
	})
}

type repaymentRequest struct {
	Amount int64 `json:"amount"`
}

type repaymentResponse struct {
	Loan          loanResponse `json:"loan"`
	TransactionID uuid.UUID    `json:"transaction_id"`
	Applied       int64        `json:"applied"`
	Excess        int64        `json:"excess"`
}

func (h *Handler) repay(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req repaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	res, err := h.loans.Repay(r.Context(), id, req.Amount)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, repaymentResponse{
		Loan:          toResponse(res.Loan),
		TransactionID: res.Transaction.ID,
		Applied:       res.Repayment.Applied,
		Excess:        res.Repayment.Excess,
	})
}
