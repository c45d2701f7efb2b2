package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/yourorg/shipkeeper/internal/observability/metrics"
	"github.com/yourorg/shipkeeper/internal/service"
)

// MaintenanceMonitor periodically recomputes the overdue-maintenance and
// unread-notification gauges from the current document.
type MaintenanceMonitor struct {
	analytics     *service.AnalyticsService
	notifications *service.NotificationService
	logger        *slog.Logger
	interval      time.Duration
}

// NewMaintenanceMonitor creates a new maintenance monitor
func NewMaintenanceMonitor(
	analytics *service.AnalyticsService,
	notifications *service.NotificationService,
	logger *slog.Logger,
	interval time.Duration,
) *MaintenanceMonitor {
	return &MaintenanceMonitor{
		analytics:     analytics,
		notifications: notifications,
		logger:        logger,
		interval:      interval,
	}
}

// Start begins the monitor loop. It runs one check immediately and then on
// every tick until the context is cancelled.
func (w *MaintenanceMonitor) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info("maintenance monitor started", slog.Duration("interval", w.interval))
	w.check(ctx)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("maintenance monitor stopped")
			return
		case <-ticker.C:
			w.check(ctx)
		}
	}
}

func (w *MaintenanceMonitor) check(ctx context.Context) {
	overdue, err := w.analytics.OverdueMaintenanceCount(ctx)
	if err != nil {
		w.logger.Error("failed to compute overdue count", slog.String("error", err.Error()))
		return
	}
	metrics.SetOverdueComponents(overdue)
	if overdue > 0 {
		w.logger.Warn("components overdue for maintenance", slog.Int("count", overdue))
	}

	unread, err := w.notifications.UnreadCount(ctx)
	if err != nil {
		w.logger.Error("failed to compute unread count", slog.String("error", err.Error()))
		return
	}
	metrics.SetUnreadNotifications(unread)
}
