package service

import (
	"context"
	"log/slog"

	"github.com/yourorg/shipkeeper/internal/domain"
	"github.com/yourorg/shipkeeper/internal/observability/metrics"
	"github.com/yourorg/shipkeeper/internal/repository"
)

// NotificationService reads and maintains the notification collection.
// Notifications are only ever created by the job lifecycle; this service
// covers the read flag and deletion.
type NotificationService struct {
	states *repository.StateRepository
	logger *slog.Logger
}

// NewNotificationService creates a new notification service
func NewNotificationService(states *repository.StateRepository, logger *slog.Logger) *NotificationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &NotificationService{
		states: states,
		logger: logger,
	}
}

// List returns all notifications
func (s *NotificationService) List(ctx context.Context) ([]domain.Notification, error) {
	state, err := s.states.Load(ctx)
	if err != nil {
		return nil, err
	}
	return state.Notifications, nil
}

// UnreadCount returns the number of notifications with read == false
func (s *NotificationService) UnreadCount(ctx context.Context) (int, error) {
	state, err := s.states.Load(ctx)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, n := range state.Notifications {
		if !n.Read {
			count++
		}
	}
	return count, nil
}

// MarkRead flips the read flag on one notification
func (s *NotificationService) MarkRead(ctx context.Context, id string) error {
	state, err := s.states.Load(ctx)
	if err != nil {
		return err
	}

	for i := range state.Notifications {
		if state.Notifications[i].ID == id {
			state.Notifications[i].Read = true
			break
		}
	}

	if err := s.states.Save(ctx, state); err != nil {
		metrics.ObserveStateOp("notification", "mark_read", "error")
		return err
	}
	metrics.ObserveStateOp("notification", "mark_read", "success")
	return nil
}

// MarkAllRead flips the read flag on every notification
func (s *NotificationService) MarkAllRead(ctx context.Context) error {
	state, err := s.states.Load(ctx)
	if err != nil {
		return err
	}

	for i := range state.Notifications {
		state.Notifications[i].Read = true
	}

	if err := s.states.Save(ctx, state); err != nil {
		metrics.ObserveStateOp("notification", "mark_all_read", "error")
		return err
	}
	metrics.ObserveStateOp("notification", "mark_all_read", "success")
	return nil
}

// Delete removes a notification
func (s *NotificationService) Delete(ctx context.Context, id string) error {
	state, err := s.states.Load(ctx)
	if err != nil {
		return err
	}

	notifications := state.Notifications[:0]
	for _, n := range state.Notifications {
		if n.ID != id {
			notifications = append(notifications, n)
		}
	}
	state.Notifications = notifications

	if err := s.states.Save(ctx, state); err != nil {
		metrics.ObserveStateOp("notification", "delete", "error")
		return err
	}
	metrics.ObserveStateOp("notification", "delete", "success")
	return nil
}
