package service

import (
	"context"
	"testing"

	"github.com/yourorg/shipkeeper/internal/domain"
)

func notificationState() *domain.State {
	state := fleetState()
	state.Notifications = []domain.Notification{
		{ID: "n1", Type: domain.NotifJobCreated, Message: "New inspection job created for Main Engine on Ever Given", Read: false, JobID: "j1"},
		{ID: "n2", Type: domain.NotifJobUpdated, Message: "Inspection job for Main Engine on Ever Given status updated to In Progress", Read: true, JobID: "j1"},
		{ID: "n3", Type: domain.NotifJobCompleted, Message: "Inspection job for Main Engine on Ever Given has been completed", Read: false, JobID: "j1"},
	}
	return state
}

func TestMarkRead(t *testing.T) {
	states := newTestStates(t, notificationState())
	s := NewNotificationService(states, nil)
	ctx := context.Background()

	if err := s.MarkRead(ctx, "n1"); err != nil {
		t.Fatalf("mark read failed: %v", err)
	}

	count, err := s.UnreadCount(ctx)
	if err != nil {
		t.Fatalf("unread count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("unread = %d, want 1", count)
	}

	// unknown id is a persisted no-op, not an error
	if err := s.MarkRead(ctx, "n-missing"); err != nil {
		t.Fatalf("mark read of unknown id should not fail: %v", err)
	}
}

func TestMarkAllRead(t *testing.T) {
	states := newTestStates(t, notificationState())
	s := NewNotificationService(states, nil)
	ctx := context.Background()

	if err := s.MarkAllRead(ctx); err != nil {
		t.Fatalf("mark all read failed: %v", err)
	}
	count, _ := s.UnreadCount(ctx)
	if count != 0 {
		t.Fatalf("unread = %d, want 0", count)
	}
}

func TestDeleteNotification(t *testing.T) {
	states := newTestStates(t, notificationState())
	s := NewNotificationService(states, nil)
	ctx := context.Background()

	if err := s.Delete(ctx, "n2"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	all, err := s.List(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(all))
	}
	for _, n := range all {
		if n.ID == "n2" {
			t.Fatalf("n2 should be gone")
		}
	}
}
