package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/yourorg/shipkeeper/internal/repository"
)

// HealthHandler serves liveness and readiness probes
type HealthHandler struct {
	states *repository.StateRepository
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(states *repository.StateRepository) *HealthHandler {
	return &HealthHandler{states: states}
}

// Live handles GET /healthz
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// Ready handles GET /readyz; ready means the snapshot store is reachable
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.states.Ping(ctx); err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("storage not ready"))
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ready"))
}
