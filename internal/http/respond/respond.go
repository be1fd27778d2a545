// Package respond writes JSON bodies and maps domain errors to status codes.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/MrJamesThe3rd/chama/internal/auth"
	"github.com/MrJamesThe3rd/chama/internal/chama"
)

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Status returns the HTTP status for err. Unrecognized errors are 500.
func Status(err error) int {
	switch {
	case errors.Is(err, chama.ErrNotFound), errors.Is(err, chama.ErrUnknownMember):
		return http.StatusNotFound
	case errors.Is(err, chama.ErrInvalidAmount),
		errors.Is(err, chama.ErrInvalidDuration),
		errors.Is(err, chama.ErrInvalidName),
		errors.Is(err, chama.ErrInvalidSettings):
		return http.StatusBadRequest
	case errors.Is(err, chama.ErrLoanClosed), errors.Is(err, chama.ErrDuplicatePosting):
		return http.StatusConflict
	case errors.Is(err, auth.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, auth.ErrForbidden):
		return http.StatusForbidden
	}

	return http.StatusInternalServerError
}

// Error writes err with its mapped status. Internal errors are logged and
// hidden from the client.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	status := Status(err)
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		http.Error(w, "internal error", status)

		return
	}

	http.Error(w, err.Error(), status)
}
