package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/yourorg/shipkeeper/internal/domain"
	"github.com/yourorg/shipkeeper/internal/service"
)

// ComponentsHandler serves the component CRUD routes
type ComponentsHandler struct {
	components *service.ComponentService
	logger     *slog.Logger
}

// NewComponentsHandler creates a new components handler
func NewComponentsHandler(components *service.ComponentService, logger *slog.Logger) *ComponentsHandler {
	return &ComponentsHandler{
		components: components,
		logger:     logger,
	}
}

// List handles GET /api/components, optionally filtered by ?shipId=
func (h *ComponentsHandler) List(w http.ResponseWriter, r *http.Request) {
	var components []domain.Component
	var err error

	if shipID := r.URL.Query().Get("shipId"); shipID != "" {
		components, err = h.components.ListByShip(r.Context(), shipID)
	} else {
		components, err = h.components.List(r.Context())
	}
	if err != nil {
		h.logger.Error("failed to list components", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "failed to load components")
		return
	}
	writeJSON(w, h.logger, http.StatusOK, map[string]interface{}{"components": components})
}

// Get handles GET /api/components/{id}
func (h *ComponentsHandler) Get(w http.ResponseWriter, r *http.Request) {
	component, err := h.components.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "component not found")
			return
		}
		h.logger.Error("failed to get component", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "failed to load component")
		return
	}
	writeJSON(w, h.logger, http.StatusOK, component)
}

// Create handles POST /api/components
func (h *ComponentsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var component domain.Component
	if err := json.NewDecoder(r.Body).Decode(&component); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	created, err := h.components.Add(r.Context(), component)
	if err != nil {
		h.logger.Error("failed to add component", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "failed to add component")
		return
	}
	writeJSON(w, h.logger, http.StatusCreated, created)
}

// Update handles PUT /api/components/{id}
func (h *ComponentsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var component domain.Component
	if err := json.NewDecoder(r.Body).Decode(&component); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	component.ID = r.PathValue("id")

	updated, err := h.components.Update(r.Context(), component)
	if err != nil {
		h.logger.Error("failed to update component", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "failed to update component")
		return
	}
	writeJSON(w, h.logger, http.StatusOK, updated)
}

// Delete handles DELETE /api/components/{id}
func (h *ComponentsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.components.Delete(r.Context(), r.PathValue("id")); err != nil {
		h.logger.Error("failed to delete component", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "failed to delete component")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
