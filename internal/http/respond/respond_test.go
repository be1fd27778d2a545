package respond_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/chama/internal/auth"
	"github.com/MrJamesThe3rd/chama/internal/chama"
	"github.com/MrJamesThe3rd/chama/internal/http/respond"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{err: chama.ErrNotFound, want: http.StatusNotFound},
		{err: chama.ErrUnknownMember, want: http.StatusNotFound},
		{err: chama.ErrInvalidAmount, want: http.StatusBadRequest},
		{err: chama.ErrInvalidDuration, want: http.StatusBadRequest},
		{err: chama.ErrInvalidName, want: http.StatusBadRequest},
		{err: chama.ErrInvalidSettings, want: http.StatusBadRequest},
		{err: chama.ErrLoanClosed, want: http.StatusConflict},
		{err: chama.ErrDuplicatePosting, want: http.StatusConflict},
		{err: auth.ErrUnauthorized, want: http.StatusUnauthorized},
		{err: auth.ErrForbidden, want: http.StatusForbidden},
		{err: fmt.Errorf("getting loan: %w", chama.ErrNotFound), want: http.StatusNotFound},
		{err: errors.New("connection reset"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, respond.Status(tt.err))
		})
	}
}

func TestError_HidesInternalErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/members", nil)

	respond.Error(rec, req, errors.New("pq: password authentication failed"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestJSON(t *testing.T) {
	rec := httptest.NewRecorder()

	respond.JSON(rec, http.StatusCreated, map[string]int{"amount": 4000})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"amount":4000}`, rec.Body.String())
}
