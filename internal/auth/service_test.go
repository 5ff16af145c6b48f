package auth

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authstore "condogov/internal/auth/store"
	"condogov/internal/condo/models"
	"condogov/internal/platform/middleware"
	dErrors "condogov/pkg/domain-errors"
	"condogov/pkg/requestcontext"
)

// fakeGovernance serves fixed role answers to the login flow.
type fakeGovernance struct {
	manager   models.Address
	residents map[models.Address]models.Resident
}

func (f *fakeGovernance) Manager(context.Context) (models.Address, error) {
	return f.manager, nil
}

func (f *fakeGovernance) GetResident(_ context.Context, wallet models.Address) (models.Resident, error) {
	if r, ok := f.residents[wallet.Normalized()]; ok {
		return r, nil
	}
	return models.Resident{}, dErrors.New(dErrors.CodeNotFound, "this wallet is not a resident")
}

type loginFixture struct {
	service *Service
	key     *secp256k1.PrivateKey
	wallet  models.Address
	gov     *fakeGovernance
	now     time.Time
}

func newLoginFixture(t *testing.T) *loginFixture {
	t.Helper()
	key, err := secp256k1.GeneratePrivateKey()
	require.NoError(t, err)
	wallet := addressFromPubKey(key.PubKey())

	gov := &fakeGovernance{
		manager:   "0xAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA1",
		residents: map[models.Address]models.Resident{},
	}
	service := NewService(gov,
		NewJWTService("test-signing-key", "test-issuer"),
		authstore.NewMemoryRevocations(),
		time.Hour,
		slog.Default(),
	)
	return &loginFixture{
		service: service,
		key:     key,
		wallet:  wallet,
		gov:     gov,
		now:     time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (f *loginFixture) ctx() context.Context {
	return requestcontext.WithTime(context.Background(), f.now)
}

func (f *loginFixture) login(t *testing.T, issuedAt time.Time) (Session, error) {
	t.Helper()
	ts := issuedAt.Unix()
	return f.service.Login(f.ctx(), f.wallet, ts, signChallenge(t, f.key, ChallengeMessage(ts)))
}

func Test_Login_Resident(t *testing.T) {
	f := newLoginFixture(t)
	f.gov.residents[f.wallet.Normalized()] = models.Resident{Wallet: f.wallet, Residence: 2102}

	session, err := f.login(t, f.now)
	require.NoError(t, err)
	assert.Equal(t, middleware.ProfileResident, session.Profile)
	assert.True(t, session.Wallet.Equal(f.wallet))

	claims, err := f.service.TokenValidator().ValidateToken(session.Token)
	require.NoError(t, err)
	assert.True(t, claims.Wallet.Equal(f.wallet))
	assert.False(t, f.service.IsRevoked(claims.TokenID))
}

func Test_Login_Counselor(t *testing.T) {
	f := newLoginFixture(t)
	f.gov.residents[f.wallet.Normalized()] = models.Resident{Wallet: f.wallet, Residence: 2102, IsCounselor: true}

	session, err := f.login(t, f.now)
	require.NoError(t, err)
	assert.Equal(t, middleware.ProfileCounselor, session.Profile)
}

func Test_Login_Manager(t *testing.T) {
	f := newLoginFixture(t)
	f.gov.manager = f.wallet

	session, err := f.login(t, f.now)
	require.NoError(t, err)
	assert.Equal(t, middleware.ProfileManager, session.Profile)
}

func Test_Login_Stranger(t *testing.T) {
	f := newLoginFixture(t)

	_, err := f.login(t, f.now)
	require.True(t, dErrors.HasCode(err, dErrors.CodeForbidden))
}

func Test_Login_StaleChallenge(t *testing.T) {
	f := newLoginFixture(t)
	f.gov.manager = f.wallet

	_, err := f.login(t, f.now.Add(-31*time.Second))
	require.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))

	// A fresh challenge within the window still passes.
	_, err = f.login(t, f.now.Add(-29*time.Second))
	require.NoError(t, err)
}

func Test_Login_WrongSigner(t *testing.T) {
	f := newLoginFixture(t)
	f.gov.manager = f.wallet

	otherKey, err := secp256k1.GeneratePrivateKey()
	require.NoError(t, err)

	ts := f.now.Unix()
	_, err = f.service.Login(f.ctx(), f.wallet, ts, signChallenge(t, otherKey, ChallengeMessage(ts)))
	require.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func Test_Login_LockoutAfterRepeatedFailures(t *testing.T) {
	f := newLoginFixture(t)
	f.gov.manager = f.wallet

	otherKey, err := secp256k1.GeneratePrivateKey()
	require.NoError(t, err)

	ts := f.now.Unix()
	badSignature := signChallenge(t, otherKey, ChallengeMessage(ts))
	for i := 0; i < 5; i++ {
		_, err = f.service.Login(f.ctx(), f.wallet, ts, badSignature)
		require.Error(t, err)
	}

	// Even a correct signature is refused while the wallet is locked.
	_, err = f.login(t, f.now)
	require.ErrorIs(t, err, dErrors.New(dErrors.CodeUnauthorized, "too many failed logins, try again later"))

	// After the cooldown the wallet can log in again.
	f.now = f.now.Add(16 * time.Minute)
	_, err = f.login(t, f.now)
	require.NoError(t, err)
}

func Test_Login_SuccessClearsFailures(t *testing.T) {
	f := newLoginFixture(t)
	f.gov.manager = f.wallet

	otherKey, err := secp256k1.GeneratePrivateKey()
	require.NoError(t, err)

	ts := f.now.Unix()
	badSignature := signChallenge(t, otherKey, ChallengeMessage(ts))
	for i := 0; i < 4; i++ {
		_, err = f.service.Login(f.ctx(), f.wallet, ts, badSignature)
		require.Error(t, err)
	}

	_, err = f.login(t, f.now)
	require.NoError(t, err)

	// The counter restarted, so four more failures do not lock.
	for i := 0; i < 4; i++ {
		_, err = f.service.Login(f.ctx(), f.wallet, ts, badSignature)
		require.Error(t, err)
	}
	_, err = f.login(t, f.now)
	require.NoError(t, err)
}

func Test_Logout_RevokesSession(t *testing.T) {
	f := newLoginFixture(t)
	f.gov.manager = f.wallet

	session, err := f.login(t, f.now)
	require.NoError(t, err)
	claims, err := f.service.TokenValidator().ValidateToken(session.Token)
	require.NoError(t, err)

	require.NoError(t, f.service.Logout(f.ctx(), claims))
	assert.True(t, f.service.IsRevoked(claims.TokenID))
}
