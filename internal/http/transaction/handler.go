package transaction

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/chama/internal/auth"
	"github.com/MrJamesThe3rd/chama/internal/chama"
	"github.com/MrJamesThe3rd/chama/internal/http/respond"
	"github.com/MrJamesThe3rd/chama/internal/transaction"
)

type Handler struct {
	svc *transaction.Service
	loc *time.Location
}

func NewHandler(svc *transaction.Service, loc *time.Location) *Handler {
	return &Handler{svc: svc, loc: loc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Use(auth.Require(auth.CapRead))
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
}

// list accepts member_id, kind, period (YYYY-MM) or a start_date/end_date
// pair of days, both inclusive.
func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := transaction.ListFilter{}

	if s := q.Get("period"); s != "" {
		month, err := chama.ParsePeriod(s, h.loc)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		filter = transaction.MonthFilter(month)
	}

	if s := q.Get("member_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			http.Error(w, "invalid member_id", http.StatusBadRequest)
			return
		}

		filter.MemberID = &id
	}

	if s := q.Get("kind"); s != "" {
		filter.Kind = new(chama.Kind(s))
	}

	if s := q.Get("start_date"); s != "" {
		if t, err := time.ParseInLocation(time.DateOnly, s, h.loc); err == nil {
			filter.StartDate = new(t)
		}
	}

	if s := q.Get("end_date"); s != "" {
		if t, err := time.ParseInLocation(time.DateOnly, s, h.loc); err == nil {
			filter.EndDate = new(t.AddDate(0, 0, 1))
		}
	}

	txs, err := h.svc.List(r.Context(), filter)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(txs))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	tx, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(tx))
}
