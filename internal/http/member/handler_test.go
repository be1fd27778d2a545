package member_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/chama/internal/auth"
	"github.com/MrJamesThe3rd/chama/internal/chama"
	memberHandler "github.com/MrJamesThe3rd/chama/internal/http/member"
	"github.com/MrJamesThe3rd/chama/internal/member"
	"github.com/MrJamesThe3rd/chama/internal/posting"
	"github.com/MrJamesThe3rd/chama/internal/report"
	"github.com/MrJamesThe3rd/chama/internal/settings"
	"github.com/MrJamesThe3rd/chama/internal/snapshot"
)

var fixedNow = time.Date(2025, time.March, 14, 9, 0, 0, 0, time.UTC)

type stubLoader struct {
	snap *snapshot.Snapshot
}

func (s stubLoader) Load(context.Context) (*snapshot.Snapshot, error) {
	return s.snap, nil
}

type fixture struct {
	members  *member.MockRepository
	postings *posting.MockRepository
	tx       *posting.MockTx
	settings *settings.MockRepository
	snap     *snapshot.Snapshot
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)

	return &fixture{
		members:  member.NewMockRepository(ctrl),
		postings: posting.NewMockRepository(ctrl),
		tx:       posting.NewMockTx(ctrl),
		settings: settings.NewMockRepository(ctrl),
		snap:     &snapshot.Snapshot{TakenAt: fixedNow},
	}
}

func (f *fixture) router(role auth.Role) http.Handler {
	h := memberHandler.NewHandler(
		member.NewService(f.members, f.postings),
		settings.NewService(f.settings),
		report.NewService(stubLoader{snap: f.snap}),
		time.UTC,
	).WithClock(func() time.Time { return fixedNow })

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(auth.WithClaims(r.Context(), &auth.Claims{Role: role})))
		})
	})
	h.Routes(r)

	return r
}

func do(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	return rec
}

func TestHandler_Create(t *testing.T) {
	tests := []struct {
		name  string
		role  auth.Role
		body  string
		setup func(f *fixture)
		want  int
	}{
		{
			name: "Registers",
			role: auth.RoleTreasurer,
			body: `{"name":"  grace  achieng "}`,
			setup: func(f *fixture) {
				f.members.EXPECT().
					CreateMember(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, m *chama.Member) error {
						assert.Equal(t, "GRACE ACHIENG", m.Name)
						m.ID = uuid.New()

						return nil
					})
			},
			want: http.StatusCreated,
		},
		{name: "EmptyName", role: auth.RoleTreasurer, body: `{"name":" "}`, want: http.StatusBadRequest},
		{name: "MalformedBody", role: auth.RoleTreasurer, body: `{`, want: http.StatusBadRequest},
		{name: "ViewerForbidden", role: auth.RoleViewer, body: `{"name":"GRACE"}`, want: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			if tt.setup != nil {
				tt.setup(f)
			}

			rec := do(f.router(tt.role), http.MethodPost, "/", tt.body)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestHandler_Get(t *testing.T) {
	f := newFixture(t)

	id := uuid.New()
	f.members.EXPECT().GetMember(gomock.Any(), id).Return(nil, chama.ErrNotFound)

	rec := do(f.router(auth.RoleViewer), http.MethodGet, "/"+id.String(), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(f.router(auth.RoleViewer), http.MethodGet, "/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_Pay(t *testing.T) {
	f := newFixture(t)
	m := &chama.Member{ID: uuid.New(), Name: "BARASA", CarryForward: 1000}

	f.members.EXPECT().GetMember(gomock.Any(), m.ID).Return(m, nil)
	f.postings.EXPECT().Begin(gomock.Any(), m.ID).Return(f.tx, nil)
	f.tx.EXPECT().
		CreateTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tx *chama.Transaction) error {
			assert.Equal(t, int64(4000), tx.Amount)
			assert.Equal(t, chama.KindDeposit, tx.Kind)
			tx.ID = uuid.New()
			tx.CreatedAt = fixedNow

			return nil
		})
	f.tx.EXPECT().AdjustCarryForward(gomock.Any(), m.ID, int64(4000)).Return(int64(5000), nil)
	f.tx.EXPECT().Commit().Return(nil)
	f.tx.EXPECT().Rollback().Return(nil)

	rec := do(f.router(auth.RoleTreasurer), http.MethodPost, "/"+m.ID.String()+"/payments", `{"amount":4000}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var body struct {
		CarryForward int64 `json:"carry_forward"`
		Transaction  struct {
			Kind   chama.Kind `json:"kind"`
			Amount int64      `json:"amount"`
		} `json:"transaction"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))

	assert.Equal(t, int64(5000), body.CarryForward)
	assert.Equal(t, chama.KindDeposit, body.Transaction.Kind)
	assert.Equal(t, int64(4000), body.Transaction.Amount)
}

func TestHandler_Pay_InvalidAmount(t *testing.T) {
	f := newFixture(t)

	rec := do(f.router(auth.RoleTreasurer), http.MethodPost, "/"+uuid.NewString()+"/payments", `{"amount":0}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_Fine_BadMonth(t *testing.T) {
	f := newFixture(t)

	rec := do(f.router(auth.RoleTreasurer), http.MethodPost, "/"+uuid.NewString()+"/fines", `{"amount":200,"month":"03/2025"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_Financials(t *testing.T) {
	f := newFixture(t)
	m := &chama.Member{ID: uuid.New(), Name: "NJERI", CarryForward: 9000}

	f.members.EXPECT().GetMember(gomock.Any(), m.ID).Return(m, nil)
	f.settings.EXPECT().GetSettings(gomock.Any()).Return(&chama.Settings{MonthlyContribution: 4000}, nil)

	rec := do(f.router(auth.RoleViewer), http.MethodGet, "/"+m.ID.String()+"/financials", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		NetBalance    int64 `json:"net_balance"`
		TotalPaid     int64 `json:"total_paid"`
		TotalExpected int64 `json:"total_expected"`
		InSafeZone    bool  `json:"in_safe_zone"`
		Breakdown     []struct {
			Month     string `json:"month"`
			Status    string `json:"status"`
			Shortfall int64  `json:"shortfall"`
		} `json:"breakdown"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))

	assert.Equal(t, int64(9000), body.TotalPaid)
	assert.Equal(t, int64(12000), body.TotalExpected)
	assert.Equal(t, int64(-3000), body.NetBalance)
	assert.True(t, body.InSafeZone)

	require.Len(t, body.Breakdown, 3)
	assert.Equal(t, "2025-01", body.Breakdown[0].Month)
	assert.Equal(t, "clear", body.Breakdown[0].Status)
	assert.Equal(t, "clear", body.Breakdown[1].Status)
	assert.Equal(t, "pending", body.Breakdown[2].Status)
	assert.Equal(t, int64(3000), body.Breakdown[2].Shortfall)
}

func TestHandler_History_CSV(t *testing.T) {
	f := newFixture(t)
	m := &chama.Member{ID: uuid.New(), Name: "MARY WAMBUI"}

	f.snap.Members = []*chama.Member{m}
	f.snap.Transactions = []*chama.Transaction{
		{ID: uuid.New(), MemberID: m.ID, Amount: 4000, Kind: chama.KindDeposit, Description: "Payment: MARY WAMBUI", CreatedAt: fixedNow},
	}

	rec := do(f.router(auth.RoleViewer), http.MethodGet, "/"+m.ID.String()+"/history?format=csv", "")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "MARY_WAMBUI_History.csv")

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Date,Activity Type,Amount,Details", lines[0])
	assert.Equal(t, "2025-03-14,DEPOSIT,4000,Payment: MARY WAMBUI", lines[1])
}

func TestHandler_History_UnknownMember(t *testing.T) {
	f := newFixture(t)

	rec := do(f.router(auth.RoleViewer), http.MethodGet, "/"+uuid.NewString()+"/history", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
