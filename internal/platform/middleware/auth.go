package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"condogov/internal/condo/models"
	dErrors "condogov/pkg/domain-errors"
	"condogov/pkg/requestcontext"
)

// SessionClaims are the claims the auth middleware expects from a
// validated session token.
type SessionClaims struct {
	Wallet  models.Address
	Profile string
	TokenID string
}

// Session profile roles carried in tokens and the request context.
const (
	ProfileResident  = "resident"
	ProfileCounselor = "counselor"
	ProfileManager   = "manager"
)

// TokenValidator validates a session token string.
type TokenValidator interface {
	ValidateToken(tokenString string) (*SessionClaims, error)
}

type claimsContextKey struct{}

// ClaimsFromContext returns the session claims placed by RequireAuth.
func ClaimsFromContext(ctx context.Context) (*SessionClaims, bool) {
	claims, ok := ctx.Value(claimsContextKey{}).(*SessionClaims)
	return claims, ok
}

// RequireAuth validates the bearer token, rejects revoked sessions and
// places the caller wallet and profile into the request context.
func RequireAuth(validator TokenValidator, revoked func(tokenID string) bool, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok || token == "" {
				writeAuthError(w, dErrors.New(dErrors.CodeUnauthorized, "missing bearer token"))
				return
			}
			claims, err := validator.ValidateToken(token)
			if err != nil {
				logger.WarnContext(r.Context(), "rejected session token",
					"request_id", requestcontext.RequestID(r.Context()),
					"error", err.Error(),
				)
				writeAuthError(w, dErrors.New(dErrors.CodeUnauthorized, "invalid session token"))
				return
			}
			if revoked != nil && revoked(claims.TokenID) {
				writeAuthError(w, dErrors.New(dErrors.CodeUnauthorized, "session has been revoked"))
				return
			}
			ctx := requestcontext.WithWallet(r.Context(), claims.Wallet)
			ctx = requestcontext.WithProfile(ctx, claims.Profile)
			ctx = context.WithValue(ctx, claimsContextKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireManager rejects callers whose session profile is not manager.
// The engine re-checks against live state; this only spares it work.
func RequireManager(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requestcontext.Profile(r.Context()) != ProfileManager {
			writeAuthError(w, dErrors.New(dErrors.CodeForbidden, "only the manager can do this"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireManagerOrCounselor rejects plain-resident sessions.
func RequireManagerOrCounselor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		profile := requestcontext.Profile(r.Context())
		if profile != ProfileManager && profile != ProfileCounselor {
			writeAuthError(w, dErrors.New(dErrors.CodeForbidden, "only the manager or the counselors can do this"))
			return
		}
		next.ServeHTTP(w, r)
	})
}
