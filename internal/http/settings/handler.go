package settings

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/chama/internal/auth"
	"github.com/MrJamesThe3rd/chama/internal/chama"
	"github.com/MrJamesThe3rd/chama/internal/http/respond"
	"github.com/MrJamesThe3rd/chama/internal/settings"
)

type Handler struct {
	svc *settings.Service
}

func NewHandler(svc *settings.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.With(auth.Require(auth.CapRead)).Get("/", h.get)
	r.With(auth.Require(auth.CapSettings)).Put("/", h.update)
}

type settingsResponse struct {
	MonthlyContribution int64           `json:"monthly_contribution"`
	LoanInterestRate    decimal.Decimal `json:"loan_interest_rate"`
	LateFeeAmount       int64           `json:"late_fee_amount"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

func toResponse(st *chama.Settings) settingsResponse {
	return settingsResponse{
		MonthlyContribution: st.MonthlyContribution,
		LoanInterestRate:    st.LoanInterestRate,
		LateFeeAmount:       st.LateFeeAmount,
		UpdatedAt:           st.UpdatedAt,
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	st, err := h.svc.Get(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(st))
}

type updateSettingsRequest struct {
	MonthlyContribution int64           `json:"monthly_contribution"`
	LoanInterestRate    decimal.Decimal `json:"loan_interest_rate"`
	LateFeeAmount       int64           `json:"late_fee_amount"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req updateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	st, err := h.svc.Update(r.Context(), settings.UpdateParams(req))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(st))
}
