package handler

import (
	"log/slog"
	"net/http"

	"github.com/yourorg/shipkeeper/internal/security"
	"github.com/yourorg/shipkeeper/internal/security/middleware"
	"github.com/yourorg/shipkeeper/internal/service"
)

// PermissionsHandler exposes the caller's role permissions so the dashboard
// can decide which controls to render. The table is advisory, not an
// enforcement layer.
type PermissionsHandler struct {
	auth   *service.AuthService
	logger *slog.Logger
}

// NewPermissionsHandler creates a new permissions handler
func NewPermissionsHandler(auth *service.AuthService, logger *slog.Logger) *PermissionsHandler {
	return &PermissionsHandler{
		auth:   auth,
		logger: logger,
	}
}

// ServeHTTP handles GET /api/permissions requests
func (h *PermissionsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	claims := middleware.GetClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "missing auth")
		return
	}

	user, err := h.auth.GetUser(r.Context(), claims.UserID)
	if err != nil {
		// stale token for a user no longer in the document
		writeJSON(w, h.logger, http.StatusOK, map[string]bool{})
		return
	}

	writeJSON(w, h.logger, http.StatusOK, security.PermissionsFor(user))
}
