package handler

import (
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"condogov/internal/auth"
	"condogov/internal/condo/adapter"
	"condogov/internal/condo/engine"
	"condogov/internal/condo/models"
	"condogov/internal/condo/store"
	"condogov/internal/platform/middleware"
	"condogov/pkg/requestcontext"
	"condogov/pkg/testutil"
)

var (
	managerWallet  = models.Address("0xAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA1")
	residentWallet = models.Address("0xBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBB1")
)

type fixture struct {
	router  chi.Router
	tokens  *auth.JWTService
	adapter *adapter.Adapter
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	tokens := auth.NewJWTService("test-signing-key", "test-issuer")

	a := adapter.New(managerWallet)
	impl := engine.New(store.NewMemory(10_000), managerWallet)
	bootCtx := requestcontext.WithWallet(t.Context(), managerWallet)
	require.NoError(t, a.Upgrade(bootCtx, impl))

	router := chi.NewRouter()
	New(a, tokens, nil, slog.Default()).Register(router)
	return &fixture{router: router, tokens: tokens, adapter: a}
}

// authed stamps a request with a fresh session token for the wallet.
func (f *fixture) authed(t *testing.T, req *http.Request, wallet models.Address, profile string) *http.Request {
	t.Helper()
	token, err := f.tokens.GenerateToken(wallet, profile, time.Now(), time.Hour)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func Test_Residents_Lifecycle(t *testing.T) {
	f := newFixture(t)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/api/condo/residents", map[string]any{
		"wallet":    residentWallet,
		"residence": 2102,
	})
	rr := testutil.DoRequest(f.router, f.authed(t, req, managerWallet, middleware.ProfileManager))
	testutil.AssertStatus(t, rr, http.StatusCreated)

	req = testutil.NewRequest(t, http.MethodGet, "/api/condo/residents/"+residentWallet.String())
	rr = testutil.DoRequest(f.router, f.authed(t, req, managerWallet, middleware.ProfileManager))
	testutil.AssertStatus(t, rr, http.StatusOK)
	resident := testutil.UnmarshalResponse[models.Resident](t, rr)
	assert.Equal(t, 2102, resident.Residence)

	req = testutil.NewRequest(t, http.MethodDelete, "/api/condo/residents/"+residentWallet.String())
	rr = testutil.DoRequest(f.router, f.authed(t, req, managerWallet, middleware.ProfileManager))
	testutil.AssertStatus(t, rr, http.StatusNoContent)
}

func Test_Residents_RequiresSession(t *testing.T) {
	f := newFixture(t)

	req := testutil.NewRequest(t, http.MethodGet, "/api/condo/residents")
	rr := testutil.DoRequest(f.router, req)
	testutil.AssertStatusAndError(t, rr, http.StatusUnauthorized, "unauthorized")
}

func Test_Residents_ForbiddenForOutsiders(t *testing.T) {
	f := newFixture(t)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/api/condo/residents", map[string]any{
		"wallet":    residentWallet,
		"residence": 2102,
	})
	rr := testutil.DoRequest(f.router, f.authed(t, req, residentWallet, middleware.ProfileResident))
	testutil.AssertStatusAndError(t, rr, http.StatusForbidden, "forbidden")
}

func Test_Residents_Pagination(t *testing.T) {
	f := newFixture(t)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/api/condo/residents", map[string]any{
		"wallet":    residentWallet,
		"residence": 2102,
	})
	rr := testutil.DoRequest(f.router, f.authed(t, req, managerWallet, middleware.ProfileManager))
	testutil.AssertStatus(t, rr, http.StatusCreated)

	req = testutil.NewRequest(t, http.MethodGet, "/api/condo/residents?page=1&size=5")
	rr = testutil.DoRequest(f.router, f.authed(t, req, managerWallet, middleware.ProfileManager))
	testutil.AssertStatus(t, rr, http.StatusOK)
	page := testutil.UnmarshalResponse[models.ResidentPage](t, rr)
	assert.Equal(t, 1, page.Total)
	assert.Len(t, page.Residents, 5)
}

func Test_Topics_Lifecycle(t *testing.T) {
	f := newFixture(t)
	asManager := func(req *http.Request) *http.Request {
		return f.authed(t, req, managerWallet, middleware.ProfileManager)
	}

	req := testutil.NewJSONRequest(t, http.MethodPost, "/api/condo/topics", map[string]any{
		"title":       "paint the hall",
		"description": "repaint the entrance hall",
		"category":    "DECISION",
	})
	rr := testutil.DoRequest(f.router, asManager(req))
	testutil.AssertStatus(t, rr, http.StatusCreated)

	req = testutil.NewRequest(t, http.MethodPost, "/api/condo/topics/paint%20the%20hall/open")
	rr = testutil.DoRequest(f.router, asManager(req))
	testutil.AssertStatus(t, rr, http.StatusOK)

	req = testutil.NewJSONRequest(t, http.MethodPost, "/api/condo/topics/paint%20the%20hall/votes", map[string]any{
		"option": "YES",
	})
	rr = testutil.DoRequest(f.router, asManager(req))
	testutil.AssertStatus(t, rr, http.StatusNoContent)

	req = testutil.NewRequest(t, http.MethodGet, "/api/condo/topics/paint%20the%20hall/votes")
	rr = testutil.DoRequest(f.router, asManager(req))
	testutil.AssertStatus(t, rr, http.StatusOK)

	req = testutil.NewRequest(t, http.MethodGet, "/api/condo/topics/paint%20the%20hall")
	rr = testutil.DoRequest(f.router, asManager(req))
	testutil.AssertStatus(t, rr, http.StatusOK)
	topic := testutil.UnmarshalResponse[models.Topic](t, rr)
	assert.Equal(t, models.StatusVoting, topic.Status)
}

func Test_Topics_UnknownCategory(t *testing.T) {
	f := newFixture(t)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/api/condo/topics", map[string]any{
		"title":    "mystery",
		"category": "MYSTERY",
	})
	rr := testutil.DoRequest(f.router, f.authed(t, req, managerWallet, middleware.ProfileManager))
	testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, "bad_request")
}

func Test_Topics_UnknownTopic(t *testing.T) {
	f := newFixture(t)

	req := testutil.NewRequest(t, http.MethodGet, "/api/condo/topics/missing")
	rr := testutil.DoRequest(f.router, f.authed(t, req, managerWallet, middleware.ProfileManager))
	testutil.AssertStatusAndError(t, rr, http.StatusNotFound, "unknown_topic")
}

func Test_Quota_PayAndRead(t *testing.T) {
	f := newFixture(t)
	asManager := func(req *http.Request) *http.Request {
		return f.authed(t, req, managerWallet, middleware.ProfileManager)
	}

	req := testutil.NewJSONRequest(t, http.MethodPost, "/api/condo/quota/payments", map[string]any{
		"residence": 2102,
		"amount":    10_000,
	})
	rr := testutil.DoRequest(f.router, asManager(req))
	testutil.AssertStatus(t, rr, http.StatusNoContent)

	req = testutil.NewRequest(t, http.MethodGet, "/api/condo/treasury")
	rr = testutil.DoRequest(f.router, asManager(req))
	testutil.AssertStatus(t, rr, http.StatusOK)
	balance := testutil.UnmarshalResponse[map[string]int64](t, rr)
	assert.Equal(t, int64(10_000), (*balance)["treasury_balance"])

	req = testutil.NewRequest(t, http.MethodGet, "/api/condo/quota")
	rr = testutil.DoRequest(f.router, asManager(req))
	testutil.AssertStatus(t, rr, http.StatusOK)
	quota := testutil.UnmarshalResponse[map[string]int64](t, rr)
	assert.Equal(t, int64(10_000), (*quota)["monthly_quota"])
}

func Test_Quota_WrongValue(t *testing.T) {
	f := newFixture(t)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/api/condo/quota/payments", map[string]any{
		"residence": 2102,
		"amount":    1,
	})
	rr := testutil.DoRequest(f.router, f.authed(t, req, managerWallet, middleware.ProfileManager))
	testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, "wrong_value")
}

func Test_Manager_Read(t *testing.T) {
	f := newFixture(t)

	req := testutil.NewRequest(t, http.MethodGet, "/api/condo/manager")
	rr := testutil.DoRequest(f.router, f.authed(t, req, residentWallet, middleware.ProfileResident))
	testutil.AssertStatus(t, rr, http.StatusOK)
	body := testutil.UnmarshalResponse[map[string]string](t, rr)
	assert.Equal(t, managerWallet.Normalized().String(), (*body)["manager"])
}
