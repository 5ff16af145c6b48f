// Package handler exposes the login and logout endpoints.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"condogov/internal/auth"
	"condogov/internal/condo/models"
	"condogov/internal/platform/metrics"
	"condogov/internal/platform/middleware"
	"condogov/internal/transport/http/shared"
	dErrors "condogov/pkg/domain-errors"
)

// Handler handles session endpoints.
type Handler struct {
	sessions *auth.Service
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

// New creates a session Handler.
func New(sessions *auth.Service, m *metrics.Metrics, logger *slog.Logger) *Handler {
	return &Handler{sessions: sessions, metrics: m, logger: logger}
}

// Register mounts the session routes on the parent router. Login is
// public; logout requires a valid session.
func (h *Handler) Register(r chi.Router) {
	r.Post("/api/login", h.handleLogin)
	r.With(middleware.RequireAuth(h.sessions.TokenValidator(), h.sessions.IsRevoked, h.logger)).
		Post("/api/logout", h.handleLogout)
}

type loginRequest struct {
	Wallet    models.Address `json:"wallet"`
	Timestamp int64          `json:"timestamp"`
	Signature string         `json:"signature"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	session, err := h.sessions.Login(r.Context(), req.Wallet, req.Timestamp, req.Signature)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	h.metrics.IncrementLoginsIssued()
	shared.WriteJSON(w, http.StatusOK, session)
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		shared.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "missing session"))
		return
	}
	if err := h.sessions.Logout(r.Context(), claims); err != nil {
		shared.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
