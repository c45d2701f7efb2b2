package service

import (
	"context"
	"testing"
	"time"

	"github.com/yourorg/shipkeeper/internal/domain"
)

func TestOverdueMaintenanceCount(t *testing.T) {
	state := fleetState()
	state.Components = []domain.Component{
		// 7 whole months before the fixed clock: overdue
		{ID: "c1", ShipID: "s1", Name: "Main Engine", LastMaintenanceDate: "2024-06-01"},
		// exactly 6 months: not overdue, the bound is strict
		{ID: "c2", ShipID: "s1", Name: "Radar", LastMaintenanceDate: "2024-07-15"},
		// day-of-month is ignored, 2024-06-30 is still 7 months back
		{ID: "c3", ShipID: "s1", Name: "Propeller", LastMaintenanceDate: "2024-06-30"},
		// unparseable date is skipped, never counted
		{ID: "c4", ShipID: "s1", Name: "Compass", LastMaintenanceDate: "not-a-date"},
	}

	states := newTestStates(t, state)
	analytics := NewAnalyticsService(states, 6, nil)
	analytics.now = func() time.Time { return time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC) }

	count, err := analytics.OverdueMaintenanceCount(context.Background())
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("overdue count = %d, want 2", count)
	}
}

func TestKPIs(t *testing.T) {
	state := fleetState()
	state.Ships = append(state.Ships, domain.Ship{ID: "s2", Name: "Maersk Alabama", Status: domain.ShipUnderMaintenance})
	state.Jobs = []domain.Job{
		{ID: "j1", ComponentID: "c1", ShipID: "s1", Status: domain.JobOpen},
		{ID: "j2", ComponentID: "c1", ShipID: "s1", Status: domain.JobInProgress},
		{ID: "j3", ComponentID: "c1", ShipID: "s1", Status: domain.JobInProgress},
		{ID: "j4", ComponentID: "c1", ShipID: "s1", Status: domain.JobCompleted},
		{ID: "j5", ComponentID: "c1", ShipID: "s1", Status: domain.JobCancelled},
	}
	state.Notifications = []domain.Notification{
		{ID: "n1", Read: false},
		{ID: "n2", Read: true},
		{ID: "n3", Read: false},
	}

	states := newTestStates(t, state)
	analytics := NewAnalyticsService(states, 6, nil)
	analytics.now = func() time.Time { return time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC) }

	snap, err := analytics.KPIs(context.Background())
	if err != nil {
		t.Fatalf("kpis failed: %v", err)
	}
	if snap.ShipCount != 2 {
		t.Errorf("shipCount = %d, want 2", snap.ShipCount)
	}
	if snap.JobsInProgress != 2 {
		t.Errorf("jobsInProgress = %d, want 2", snap.JobsInProgress)
	}
	if snap.JobsCompleted != 1 {
		t.Errorf("jobsCompleted = %d, want 1", snap.JobsCompleted)
	}
	if snap.UnreadNotifications != 2 {
		t.Errorf("unreadNotifications = %d, want 2", snap.UnreadNotifications)
	}
	// c1's 2024-03-12 is 10 months before the fixed clock
	if snap.OverdueComponents != 1 {
		t.Errorf("overdueComponents = %d, want 1", snap.OverdueComponents)
	}
}
