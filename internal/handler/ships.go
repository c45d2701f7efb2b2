package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/yourorg/shipkeeper/internal/domain"
	"github.com/yourorg/shipkeeper/internal/service"
)

// ShipsHandler serves the ship CRUD routes
type ShipsHandler struct {
	ships  *service.ShipService
	logger *slog.Logger
}

// NewShipsHandler creates a new ships handler
func NewShipsHandler(ships *service.ShipService, logger *slog.Logger) *ShipsHandler {
	return &ShipsHandler{
		ships:  ships,
		logger: logger,
	}
}

// List handles GET /api/ships
func (h *ShipsHandler) List(w http.ResponseWriter, r *http.Request) {
	ships, err := h.ships.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list ships", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "failed to load ships")
		return
	}
	writeJSON(w, h.logger, http.StatusOK, map[string]interface{}{"ships": ships})
}

// Get handles GET /api/ships/{id}
func (h *ShipsHandler) Get(w http.ResponseWriter, r *http.Request) {
	ship, err := h.ships.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "ship not found")
			return
		}
		h.logger.Error("failed to get ship", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "failed to load ship")
		return
	}
	writeJSON(w, h.logger, http.StatusOK, ship)
}

// Create handles POST /api/ships
func (h *ShipsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var ship domain.Ship
	if err := json.NewDecoder(r.Body).Decode(&ship); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	created, err := h.ships.Add(r.Context(), ship)
	if err != nil {
		h.logger.Error("failed to add ship", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "failed to add ship")
		return
	}
	writeJSON(w, h.logger, http.StatusCreated, created)
}

// Update handles PUT /api/ships/{id}
func (h *ShipsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var ship domain.Ship
	if err := json.NewDecoder(r.Body).Decode(&ship); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	ship.ID = r.PathValue("id")

	updated, err := h.ships.Update(r.Context(), ship)
	if err != nil {
		h.logger.Error("failed to update ship", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "failed to update ship")
		return
	}
	writeJSON(w, h.logger, http.StatusOK, updated)
}

// Delete handles DELETE /api/ships/{id}
func (h *ShipsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.ships.Delete(r.Context(), r.PathValue("id")); err != nil {
		h.logger.Error("failed to delete ship", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "failed to delete ship")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
