// Package requestcontext provides HTTP-independent context accessors for
// request-scoped values.
//
// Middleware sets the values; services consume them. Keeping this package
// free of net/http lets the governance engine read its caller and clock
// without pulling in transport code.
//
// Usage in services (read values):
//
//	wallet := requestcontext.Wallet(ctx)
//	now := requestcontext.Now(ctx)
//
// Usage in tests (inject values):
//
//	ctx = requestcontext.WithWallet(ctx, manager)
//	ctx = requestcontext.WithTime(ctx, fixedTime)
package requestcontext

import (
	"context"
	"time"

	"condogov/internal/condo/models"
)

// Context key types (unexported for encapsulation).
type (
	walletKey      struct{}
	profileKey     struct{}
	requestIDKey   struct{}
	requestTimeKey struct{}
)

// Exported context keys for tests that need context.WithValue directly.
var (
	ContextKeyWallet      = walletKey{}
	ContextKeyProfile     = profileKey{}
	ContextKeyRequestID   = requestIDKey{}
	ContextKeyRequestTime = requestTimeKey{}
)

// Wallet retrieves the authenticated caller wallet from the context.
// Returns the zero address if not set.
func Wallet(ctx context.Context) models.Address {
	if wallet, ok := ctx.Value(ContextKeyWallet).(models.Address); ok {
		return wallet
	}
	return ""
}

// WithWallet injects a caller wallet into the context.
func WithWallet(ctx context.Context, wallet models.Address) context.Context {
	return context.WithValue(ctx, ContextKeyWallet, wallet.Normalized())
}

// Profile retrieves the caller's session profile role ("manager",
// "counselor" or "resident") set by the auth middleware.
func Profile(ctx context.Context) string {
	if profile, ok := ctx.Value(ContextKeyProfile).(string); ok {
		return profile
	}
	return ""
}

// WithProfile injects a session profile role into the context.
func WithProfile(ctx context.Context, profile string) context.Context {
	return context.WithValue(ctx, ContextKeyProfile, profile)
}

// RequestID retrieves the request ID from the context.
func RequestID(ctx context.Context) string {
	if reqID, ok := ctx.Value(ContextKeyRequestID).(string); ok {
		return reqID
	}
	return ""
}

// WithRequestID injects a request ID into the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ContextKeyRequestID, requestID)
}

// Now retrieves the request-scoped time from the context. Falls back to
// time.Now() for non-HTTP contexts (workers, CLI). Time-based rules in the
// engine (payment accrual, defaulter checks) read the clock exclusively
// through this accessor so tests can drive them deterministically.
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(ContextKeyRequestTime).(time.Time); ok {
		return t
	}
	return time.Now()
}

// WithTime injects a specific time into a context.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, ContextKeyRequestTime, t)
}
