package testutil

import (
	"net/http"
	"time"

	"condogov/internal/condo/models"
	"condogov/pkg/requestcontext"
)

// WithWallet adds a caller wallet to the request context.
// This simulates what the auth middleware would do for authenticated requests.
func WithWallet(req *http.Request, wallet models.Address) *http.Request {
	return req.WithContext(requestcontext.WithWallet(req.Context(), wallet))
}

// WithSession adds a caller wallet and session profile to the request
// context. This is the typical state for an authenticated request.
func WithSession(req *http.Request, wallet models.Address, profile string) *http.Request {
	ctx := requestcontext.WithWallet(req.Context(), wallet)
	ctx = requestcontext.WithProfile(ctx, profile)
	return req.WithContext(ctx)
}

// WithTime pins the request's current time so time-dependent handlers
// become deterministic.
func WithTime(req *http.Request, t time.Time) *http.Request {
	return req.WithContext(requestcontext.WithTime(req.Context(), t))
}
