package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"condogov/internal/condo/models"
	"condogov/internal/platform/middleware"
	dErrors "condogov/pkg/domain-errors"
)

var jwtService = NewJWTService("test-signing-key", "test-issuer")

var tokenWallet = models.Address("0xAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA1")

func Test_GenerateToken(t *testing.T) {
	token, err := jwtService.GenerateToken(tokenWallet, middleware.ProfileCounselor, time.Now(), time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := jwtService.ValidateToken(token)
	require.NoError(t, err)
	assert.True(t, claims.Wallet.Equal(tokenWallet))
	assert.Equal(t, middleware.ProfileCounselor, claims.Profile)
	assert.NotEmpty(t, claims.TokenID)
}

func Test_ValidateToken_InvalidToken(t *testing.T) {
	_, err := jwtService.ValidateToken("invalid-token-string")
	require.ErrorIs(t, err, dErrors.New(dErrors.CodeUnauthorized, "invalid token"))
}

func Test_ValidateToken_ExpiredToken(t *testing.T) {
	token, err := jwtService.GenerateToken(tokenWallet, middleware.ProfileResident, time.Now().Add(-2*time.Hour), time.Hour)
	require.NoError(t, err)

	_, err = jwtService.ValidateToken(token)
	require.ErrorIs(t, err, dErrors.New(dErrors.CodeUnauthorized, "token has expired"))
}

func Test_ValidateToken_WrongKey(t *testing.T) {
	other := NewJWTService("another-signing-key", "test-issuer")
	token, err := other.GenerateToken(tokenWallet, middleware.ProfileResident, time.Now(), time.Hour)
	require.NoError(t, err)

	_, err = jwtService.ValidateToken(token)
	require.ErrorIs(t, err, dErrors.New(dErrors.CodeUnauthorized, "invalid token"))
}
