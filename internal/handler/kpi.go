package handler

import (
	"log/slog"
	"net/http"

	"github.com/yourorg/shipkeeper/internal/service"
)

// KPIHandler serves the dashboard headline numbers
type KPIHandler struct {
	analytics *service.AnalyticsService
	logger    *slog.Logger
}

// NewKPIHandler creates a new KPI handler
func NewKPIHandler(analytics *service.AnalyticsService, logger *slog.Logger) *KPIHandler {
	return &KPIHandler{
		analytics: analytics,
		logger:    logger,
	}
}

// ServeHTTP handles GET /api/kpis requests
func (h *KPIHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	snap, err := h.analytics.KPIs(r.Context())
	if err != nil {
		h.logger.Error("failed to compute kpis", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "failed to load kpis")
		return
	}
	writeJSON(w, h.logger, http.StatusOK, snap)
}
