package auth

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/chama/internal/auth"
	"github.com/MrJamesThe3rd/chama/internal/http/respond"
)

type Handler struct {
	svc *auth.Service
}

func NewHandler(svc *auth.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/login", h.login)
}

type loginRequest struct {
	Role   string `json:"role"`
	Secret string `json:"secret"`
}

type tokenResponse struct {
	Token     string    `json:"token"`
	Role      auth.Role `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	role, ok := auth.ParseRole(req.Role)
	if !ok {
		http.Error(w, "unknown role", http.StatusBadRequest)
		return
	}

	token, err := h.svc.Authenticate(role, req.Secret)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, tokenResponse{
		Token:     token.Value,
		Role:      token.Role,
		ExpiresAt: token.ExpiresAt,
	})
}
