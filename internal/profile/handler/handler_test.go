package handler

import (
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"condogov/internal/auth"
	condomodels "condogov/internal/condo/models"
	"condogov/internal/platform/middleware"
	"condogov/internal/profile/models"
	"condogov/internal/profile/service"
	"condogov/internal/profile/store"
	"condogov/pkg/testutil"
)

var (
	managerWallet  = condomodels.Address("0xAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA1")
	residentWallet = condomodels.Address("0xBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBB1")
)

type fixture struct {
	router chi.Router
	tokens *auth.JWTService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	tokens := auth.NewJWTService("test-signing-key", "test-issuer")
	profiles := service.New(store.NewMemoryStore())

	router := chi.NewRouter()
	New(profiles, tokens, nil, slog.Default()).Register(router)
	return &fixture{router: router, tokens: tokens}
}

func (f *fixture) authed(t *testing.T, req *http.Request, wallet condomodels.Address, profile string) *http.Request {
	t.Helper()
	token, err := f.tokens.GenerateToken(wallet, profile, time.Now(), time.Hour)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func (f *fixture) create(t *testing.T, record models.Record) {
	t.Helper()
	req := testutil.NewJSONRequest(t, http.MethodPost, "/api/residents/", record)
	rr := testutil.DoRequest(f.router, f.authed(t, req, managerWallet, middleware.ProfileManager))
	testutil.AssertStatus(t, rr, http.StatusCreated)
}

func Test_Profile_CreateAndGet(t *testing.T) {
	f := newFixture(t)
	f.create(t, models.Record{Wallet: residentWallet, Name: "Alice Santos", Email: "alice@example.com"})

	req := testutil.NewRequest(t, http.MethodGet, "/api/residents/"+residentWallet.String())
	rr := testutil.DoRequest(f.router, f.authed(t, req, residentWallet, middleware.ProfileResident))
	testutil.AssertStatus(t, rr, http.StatusOK)
	record := testutil.UnmarshalResponse[models.Record](t, rr)
	assert.Equal(t, "Alice Santos", record.Name)
}

func Test_Profile_CreateRequiresManager(t *testing.T) {
	f := newFixture(t)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/api/residents/", models.Record{
		Wallet: residentWallet,
		Name:   "Alice Santos",
	})
	rr := testutil.DoRequest(f.router, f.authed(t, req, residentWallet, middleware.ProfileResident))
	testutil.AssertStatusAndError(t, rr, http.StatusForbidden, "forbidden")
}

func Test_Profile_UpdateByCounselor(t *testing.T) {
	f := newFixture(t)
	f.create(t, models.Record{Wallet: residentWallet, Name: "Alice Santos"})

	req := testutil.NewJSONRequest(t, http.MethodPatch, "/api/residents/"+residentWallet.String(), models.Record{
		Phone: "+55 11 91234-5678",
	})
	counselor := condomodels.Address("0xCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCC1")
	rr := testutil.DoRequest(f.router, f.authed(t, req, counselor, middleware.ProfileCounselor))
	testutil.AssertStatus(t, rr, http.StatusOK)
	record := testutil.UnmarshalResponse[models.Record](t, rr)
	assert.Equal(t, "Alice Santos", record.Name)
	assert.Equal(t, "+55 11 91234-5678", record.Phone)
}

func Test_Profile_UpdateForbiddenForResidents(t *testing.T) {
	f := newFixture(t)
	f.create(t, models.Record{Wallet: residentWallet, Name: "Alice Santos"})

	req := testutil.NewJSONRequest(t, http.MethodPatch, "/api/residents/"+residentWallet.String(), models.Record{
		Phone: "+55 11 91234-5678",
	})
	rr := testutil.DoRequest(f.router, f.authed(t, req, residentWallet, middleware.ProfileResident))
	testutil.AssertStatusAndError(t, rr, http.StatusForbidden, "forbidden")
}

func Test_Profile_Delete(t *testing.T) {
	f := newFixture(t)
	f.create(t, models.Record{Wallet: residentWallet, Name: "Alice Santos"})

	req := testutil.NewRequest(t, http.MethodDelete, "/api/residents/"+residentWallet.String())
	rr := testutil.DoRequest(f.router, f.authed(t, req, managerWallet, middleware.ProfileManager))
	testutil.AssertStatus(t, rr, http.StatusNoContent)

	req = testutil.NewRequest(t, http.MethodGet, "/api/residents/"+residentWallet.String())
	rr = testutil.DoRequest(f.router, f.authed(t, req, managerWallet, middleware.ProfileManager))
	testutil.AssertStatusAndError(t, rr, http.StatusNotFound, "not_found")
}

func Test_Profile_MissingRecord(t *testing.T) {
	f := newFixture(t)

	req := testutil.NewRequest(t, http.MethodGet, "/api/residents/"+residentWallet.String())
	rr := testutil.DoRequest(f.router, f.authed(t, req, managerWallet, middleware.ProfileManager))
	testutil.AssertStatusAndError(t, rr, http.StatusNotFound, "not_found")
}
