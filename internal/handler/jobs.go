package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/yourorg/shipkeeper/internal/domain"
	"github.com/yourorg/shipkeeper/internal/service"
)

// JobsHandler serves the job CRUD and calendar routes
type JobsHandler struct {
	jobs   *service.JobService
	logger *slog.Logger
}

// NewJobsHandler creates a new jobs handler
func NewJobsHandler(jobs *service.JobService, logger *slog.Logger) *JobsHandler {
	return &JobsHandler{
		jobs:   jobs,
		logger: logger,
	}
}

// List handles GET /api/jobs with optional ?shipId=, ?componentId= or
// ?date= filters. Filters are mutually exclusive; the first present wins.
func (h *JobsHandler) List(w http.ResponseWriter, r *http.Request) {
	var jobs []domain.Job
	var err error

	q := r.URL.Query()
	switch {
	case q.Get("shipId") != "":
		jobs, err = h.jobs.ListByShip(r.Context(), q.Get("shipId"))
	case q.Get("componentId") != "":
		jobs, err = h.jobs.ListByComponent(r.Context(), q.Get("componentId"))
	case q.Get("date") != "":
		jobs, err = h.jobs.ListForDate(r.Context(), q.Get("date"))
	default:
		jobs, err = h.jobs.List(r.Context())
	}
	if err != nil {
		h.logger.Error("failed to list jobs", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "failed to load jobs")
		return
	}
	writeJSON(w, h.logger, http.StatusOK, map[string]interface{}{"jobs": jobs})
}

// Calendar handles GET /api/calendar?date=YYYY-MM-DD
func (h *JobsHandler) Calendar(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		writeError(w, http.StatusBadRequest, "date query parameter required")
		return
	}

	jobs, err := h.jobs.ListForDate(r.Context(), date)
	if err != nil {
		h.logger.Error("failed to load calendar jobs", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "failed to load jobs")
		return
	}
	writeJSON(w, h.logger, http.StatusOK, map[string]interface{}{"date": date, "jobs": jobs})
}

// Get handles GET /api/jobs/{id}
func (h *JobsHandler) Get(w http.ResponseWriter, r *http.Request) {
	job, err := h.jobs.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "job not found")
			return
		}
		h.logger.Error("failed to get job", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "failed to load job")
		return
	}
	writeJSON(w, h.logger, http.StatusOK, job)
}

// Create handles POST /api/jobs
func (h *JobsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var job domain.Job
	if err := json.NewDecoder(r.Body).Decode(&job); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	created, err := h.jobs.Create(r.Context(), job)
	if err != nil {
		h.logger.Error("failed to add job", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "failed to add job")
		return
	}
	writeJSON(w, h.logger, http.StatusCreated, created)
}

// Update handles PUT /api/jobs/{id}
func (h *JobsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var job domain.Job
	if err := json.NewDecoder(r.Body).Decode(&job); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	job.ID = r.PathValue("id")

	updated, err := h.jobs.Update(r.Context(), job)
	if err != nil {
		h.logger.Error("failed to update job", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "failed to update job")
		return
	}
	writeJSON(w, h.logger, http.StatusOK, updated)
}

// Delete handles DELETE /api/jobs/{id}
func (h *JobsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.jobs.Delete(r.Context(), r.PathValue("id")); err != nil {
		h.logger.Error("failed to delete job", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "failed to delete job")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
