// Package handler exposes the resident profile CRUD endpoints. Writes are
// restricted by session profile: create/delete need the manager,
// updates the manager or a counselor.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	condomodels "condogov/internal/condo/models"
	"condogov/internal/platform/middleware"
	"condogov/internal/profile/models"
	"condogov/internal/profile/service"
	"condogov/internal/transport/http/shared"
	dErrors "condogov/pkg/domain-errors"
)

// Handler handles profile endpoints.
type Handler struct {
	profiles  *service.Service
	logger    *slog.Logger
	validator middleware.TokenValidator
	revoked   func(tokenID string) bool
}

// New creates a profile Handler.
func New(profiles *service.Service, validator middleware.TokenValidator, revoked func(string) bool, logger *slog.Logger) *Handler {
	return &Handler{profiles: profiles, logger: logger, validator: validator, revoked: revoked}
}

// Register mounts the profile routes on the parent router.
func (h *Handler) Register(r chi.Router) {
	pr := chi.NewRouter()
	pr.Use(middleware.RequireAuth(h.validator, h.revoked, h.logger))

	pr.Get("/{wallet}", h.handleGet)
	pr.With(middleware.RequireManager).Post("/", h.handleCreate)
	pr.With(middleware.RequireManagerOrCounselor).Patch("/{wallet}", h.handleUpdate)
	pr.With(middleware.RequireManager).Delete("/{wallet}", h.handleDelete)

	r.Mount("/api/residents", pr)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	record, err := h.profiles.Get(r.Context(), condomodels.Address(chi.URLParam(r, "wallet")))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, record)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var record models.Record
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	created, err := h.profiles.Create(r.Context(), record)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var patch models.Record
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	updated, err := h.profiles.Update(r.Context(), condomodels.Address(chi.URLParam(r, "wallet")), patch)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, updated)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.profiles.Delete(r.Context(), condomodels.Address(chi.URLParam(r, "wallet"))); err != nil {
		shared.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
