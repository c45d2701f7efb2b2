package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/yourorg/shipkeeper/internal/service"
)

// NotificationsFeedHandler pushes new notifications to connected dashboards
// over a WebSocket. The document is polled; notifications are append-only
// apart from deletion, so any id not yet sent is new.
type NotificationsFeedHandler struct {
	notifications  *service.NotificationService
	logger         *slog.Logger
	allowedOrigins []string
	pollInterval   time.Duration
}

// NewNotificationsFeedHandler creates a new notification feed handler
func NewNotificationsFeedHandler(notifications *service.NotificationService, logger *slog.Logger, allowedOrigins []string) *NotificationsFeedHandler {
	return &NotificationsFeedHandler{
		notifications:  notifications,
		logger:         logger,
		allowedOrigins: allowedOrigins,
		pollInterval:   2 * time.Second,
	}
}

// upgrader is initialized per-request to use instance's allowed origins
func (h *NotificationsFeedHandler) getUpgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				// Allow requests with no origin (e.g., non-browser clients)
				return true
			}
			for _, allowed := range h.allowedOrigins {
				if origin == allowed {
					return true
				}
			}
			h.logger.Warn("websocket origin rejected", slog.String("origin", origin))
			return false
		},
	}
}

// ServeHTTP handles GET /ws/notifications
func (h *NotificationsFeedHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	upgrader := h.getUpgrader()
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", slog.String("error", err.Error()))
		return
	}
	defer ws.Close()

	ctx := r.Context()
	h.logger.Debug("notification feed connected", slog.String("remote", r.RemoteAddr))

	// drain client frames so close/ping handling works; a read error ends
	// the session below via the done channel
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
		}
	}()

	sent := make(map[string]bool)

	// send the current backlog first so a reconnecting dashboard catches up
	if err := h.push(ctx, ws, sent); err != nil {
		return
	}

	ticker := time.NewTicker(h.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-done:
			return
		case <-ticker.C:
			if err := h.push(ctx, ws, sent); err != nil {
				h.logger.Debug("notification feed closed", slog.String("error", err.Error()))
				return
			}
		}
	}
}

func (h *NotificationsFeedHandler) push(ctx context.Context, ws *websocket.Conn, sent map[string]bool) error {
	notifications, err := h.notifications.List(ctx)
	if err != nil {
		h.logger.Error("failed to load notifications for feed", slog.String("error", err.Error()))
		return nil // transient storage failure, keep the session open
	}

	for _, n := range notifications {
		if sent[n.ID] {
			continue
		}
		if err := ws.WriteJSON(n); err != nil {
			return err
		}
		sent[n.ID] = true
	}
	return nil
}
