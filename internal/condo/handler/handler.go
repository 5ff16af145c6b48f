// Package handler exposes the governance adapter over HTTP. It is a thin
// translation layer: decode, call the adapter, encode. Authorization
// decisions stay in the engine; the session middleware only authenticates
// the caller wallet.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"condogov/internal/condo/adapter"
	"condogov/internal/condo/models"
	"condogov/internal/platform/middleware"
	"condogov/internal/transport/http/shared"
	dErrors "condogov/pkg/domain-errors"
)

// Handler serves the governance endpoints through the adapter façade.
type Handler struct {
	adapter   *adapter.Adapter
	logger    *slog.Logger
	validator middleware.TokenValidator
	revoked   func(tokenID string) bool
}

// New creates a governance Handler.
func New(a *adapter.Adapter, validator middleware.TokenValidator, revoked func(string) bool, logger *slog.Logger) *Handler {
	return &Handler{adapter: a, logger: logger, validator: validator, revoked: revoked}
}

// Register mounts the governance routes on the parent router.
func (h *Handler) Register(r chi.Router) {
	gov := chi.NewRouter()
	gov.Use(middleware.RequireAuth(h.validator, h.revoked, h.logger))

	gov.Post("/residents", h.handleAddResident)
	gov.Get("/residents", h.handleGetResidents)
	gov.Get("/residents/{wallet}", h.handleGetResident)
	gov.Delete("/residents/{wallet}", h.handleRemoveResident)
	gov.Patch("/residents/{wallet}/counselor", h.handleSetCounselor)

	gov.Get("/manager", h.handleGetManager)
	gov.Patch("/manager", h.handleSetManager)

	gov.Post("/topics", h.handleAddTopic)
	gov.Get("/topics", h.handleGetTopics)
	gov.Get("/topics/{title}", h.handleGetTopic)
	gov.Patch("/topics/{title}", h.handleEditTopic)
	gov.Delete("/topics/{title}", h.handleRemoveTopic)
	gov.Post("/topics/{title}/open", h.handleOpenVoting)
	gov.Post("/topics/{title}/close", h.handleCloseVoting)
	gov.Post("/topics/{title}/votes", h.handleVote)
	gov.Get("/topics/{title}/votes", h.handleGetVotes)

	gov.Post("/quota/payments", h.handlePayQuota)
	gov.Get("/quota", h.handleGetQuota)
	gov.Get("/treasury", h.handleGetTreasury)

	r.Mount("/api/condo", gov)
}

// titleParam decodes the topic title path segment; titles are free-form
// strings and arrive URL-escaped.
func titleParam(r *http.Request) string {
	raw := chi.URLParam(r, "title")
	if title, err := url.PathUnescape(raw); err == nil {
		return title
	}
	return raw
}

func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return dErrors.New(dErrors.CodeBadRequest, "invalid request body")
	}
	return nil
}

func pagination(r *http.Request) (page, pageSize int) {
	page, pageSize = 1, 20
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil {
		page = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("size")); err == nil {
		pageSize = v
	}
	return page, pageSize
}

func (h *Handler) handleAddResident(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Wallet    models.Address `json:"wallet"`
		Residence int            `json:"residence"`
	}
	if err := decode(r, &req); err != nil {
		shared.WriteError(w, err)
		return
	}
	if err := h.adapter.AddResident(r.Context(), req.Wallet, req.Residence); err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, map[string]string{"wallet": req.Wallet.Normalized().String()})
}

func (h *Handler) handleGetResidents(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	result, err := h.adapter.GetResidents(r.Context(), page, pageSize)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) handleGetResident(w http.ResponseWriter, r *http.Request) {
	resident, err := h.adapter.GetResident(r.Context(), models.Address(chi.URLParam(r, "wallet")))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, resident)
}

func (h *Handler) handleRemoveResident(w http.ResponseWriter, r *http.Request) {
	if err := h.adapter.RemoveResident(r.Context(), models.Address(chi.URLParam(r, "wallet"))); err != nil {
		shared.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleSetCounselor(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Enable bool `json:"enable"`
	}
	if err := decode(r, &req); err != nil {
		shared.WriteError(w, err)
		return
	}
	wallet := models.Address(chi.URLParam(r, "wallet"))
	if err := h.adapter.SetCounselor(r.Context(), wallet, req.Enable); err != nil {
		shared.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleGetManager(w http.ResponseWriter, r *http.Request) {
	manager, err := h.adapter.Manager(r.Context())
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]string{"manager": manager.String()})
}

func (h *Handler) handleSetManager(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Manager models.Address `json:"manager"`
	}
	if err := decode(r, &req); err != nil {
		shared.WriteError(w, err)
		return
	}
	receipt, err := h.adapter.SetManager(r.Context(), req.Manager)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, receipt)
}

type topicRequest struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Category    string         `json:"category"`
	Amount      int64          `json:"amount"`
	Responsible models.Address `json:"responsible"`
}

func (h *Handler) handleAddTopic(w http.ResponseWriter, r *http.Request) {
	var req topicRequest
	if err := decode(r, &req); err != nil {
		shared.WriteError(w, err)
		return
	}
	category, ok := models.ParseCategory(req.Category)
	if !ok {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "unknown topic category"))
		return
	}
	receipt, err := h.adapter.AddTopic(r.Context(), req.Title, req.Description, category, req.Amount, req.Responsible)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, receipt)
}

func (h *Handler) handleGetTopics(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	result, err := h.adapter.GetTopics(r.Context(), page, pageSize)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) handleGetTopic(w http.ResponseWriter, r *http.Request) {
	topic, err := h.adapter.GetTopic(r.Context(), titleParam(r))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, topic)
}

func (h *Handler) handleEditTopic(w http.ResponseWriter, r *http.Request) {
	var req topicRequest
	if err := decode(r, &req); err != nil {
		shared.WriteError(w, err)
		return
	}
	err := h.adapter.EditTopic(r.Context(), titleParam(r), req.Description, req.Amount, req.Responsible)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleRemoveTopic(w http.ResponseWriter, r *http.Request) {
	receipt, err := h.adapter.RemoveTopic(r.Context(), titleParam(r))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, receipt)
}

func (h *Handler) handleOpenVoting(w http.ResponseWriter, r *http.Request) {
	receipt, err := h.adapter.OpenVoting(r.Context(), titleParam(r))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, receipt)
}

func (h *Handler) handleCloseVoting(w http.ResponseWriter, r *http.Request) {
	receipt, err := h.adapter.CloseVoting(r.Context(), titleParam(r))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, receipt)
}

func (h *Handler) handleVote(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Option string `json:"option"`
	}
	if err := decode(r, &req); err != nil {
		shared.WriteError(w, err)
		return
	}
	option, ok := models.ParseOption(req.Option)
	if !ok {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "unknown vote option"))
		return
	}
	if err := h.adapter.Vote(r.Context(), titleParam(r), option); err != nil {
		shared.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleGetVotes(w http.ResponseWriter, r *http.Request) {
	votes, err := h.adapter.GetVotes(r.Context(), titleParam(r))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]any{
		"votes": votes,
		"total": len(votes),
	})
}

func (h *Handler) handlePayQuota(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Residence int   `json:"residence"`
		Amount    int64 `json:"amount"`
	}
	if err := decode(r, &req); err != nil {
		shared.WriteError(w, err)
		return
	}
	if err := h.adapter.PayQuota(r.Context(), req.Residence, req.Amount); err != nil {
		shared.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleGetQuota(w http.ResponseWriter, r *http.Request) {
	quota, err := h.adapter.MonthlyQuota(r.Context())
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]int64{"monthly_quota": quota})
}

func (h *Handler) handleGetTreasury(w http.ResponseWriter, r *http.Request) {
	balance, err := h.adapter.TreasuryBalance(r.Context())
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]int64{"treasury_balance": balance})
}
