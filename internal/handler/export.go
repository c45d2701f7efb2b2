package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/yourorg/shipkeeper/internal/domain"
	"github.com/yourorg/shipkeeper/internal/repository"
	"github.com/yourorg/shipkeeper/internal/security/middleware"
	"github.com/yourorg/shipkeeper/internal/service"
)

// StateHandler serves whole-document export and restore for admins.
// Restore replaces the entire document in one write, matching the
// read-whole/write-whole persistence model.
type StateHandler struct {
	states *repository.StateRepository
	auth   *service.AuthService
	logger *slog.Logger
}

// NewStateHandler creates a new state export/import handler
func NewStateHandler(states *repository.StateRepository, auth *service.AuthService, logger *slog.Logger) *StateHandler {
	return &StateHandler{
		states: states,
		auth:   auth,
		logger: logger,
	}
}

func (h *StateHandler) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	claims := middleware.GetClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "missing auth")
		return false
	}
	user, err := h.auth.GetUser(r.Context(), claims.UserID)
	if err != nil || user.Role != domain.RoleAdmin {
		writeError(w, http.StatusForbidden, "admin role required")
		return false
	}
	return true
}

// Export handles GET /api/state/export
func (h *StateHandler) Export(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	state, err := h.states.Load(r.Context())
	if err != nil {
		h.logger.Error("failed to export state", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "failed to load state")
		return
	}
	writeJSON(w, h.logger, http.StatusOK, state)
}

// Import handles POST /api/state/import
func (h *StateHandler) Import(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	var state domain.State
	if err := json.NewDecoder(r.Body).Decode(&state); err != nil {
		writeError(w, http.StatusBadRequest, "invalid state document")
		return
	}

	if err := h.states.Save(r.Context(), &state); err != nil {
		h.logger.Error("failed to import state", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "failed to save state")
		return
	}

	h.logger.Info("state document restored",
		slog.Int("ships", len(state.Ships)),
		slog.Int("components", len(state.Components)),
		slog.Int("jobs", len(state.Jobs)),
	)
	w.WriteHeader(http.StatusNoContent)
}
