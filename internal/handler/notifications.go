package handler

import (
	"log/slog"
	"net/http"

	"github.com/yourorg/shipkeeper/internal/service"
)

// NotificationsHandler serves the notification routes
type NotificationsHandler struct {
	notifications *service.NotificationService
	logger        *slog.Logger
}

// NewNotificationsHandler creates a new notifications handler
func NewNotificationsHandler(notifications *service.NotificationService, logger *slog.Logger) *NotificationsHandler {
	return &NotificationsHandler{
		notifications: notifications,
		logger:        logger,
	}
}

// List handles GET /api/notifications
func (h *NotificationsHandler) List(w http.ResponseWriter, r *http.Request) {
	notifications, err := h.notifications.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list notifications", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "failed to load notifications")
		return
	}
	writeJSON(w, h.logger, http.StatusOK, map[string]interface{}{"notifications": notifications})
}

// UnreadCount handles GET /api/notifications/unread-count
func (h *NotificationsHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.notifications.UnreadCount(r.Context())
	if err != nil {
		h.logger.Error("failed to count unread notifications", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "failed to load notifications")
		return
	}
	writeJSON(w, h.logger, http.StatusOK, map[string]int{"unread": count})
}

// MarkRead handles POST /api/notifications/{id}/read
func (h *NotificationsHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	if err := h.notifications.MarkRead(r.Context(), r.PathValue("id")); err != nil {
		h.logger.Error("failed to mark notification read", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "failed to update notification")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// MarkAllRead handles POST /api/notifications/read-all
func (h *NotificationsHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	if err := h.notifications.MarkAllRead(r.Context()); err != nil {
		h.logger.Error("failed to mark notifications read", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "failed to update notifications")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /api/notifications/{id}
func (h *NotificationsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.notifications.Delete(r.Context(), r.PathValue("id")); err != nil {
		h.logger.Error("failed to delete notification", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "failed to delete notification")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
