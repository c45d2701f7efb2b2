package service

import (
	"context"
	"testing"
	"time"

	"github.com/yourorg/shipkeeper/internal/domain"
	"github.com/yourorg/shipkeeper/internal/repository"
)

func fleetState() *domain.State {
	return &domain.State{
		Users: []domain.User{
			{ID: "1", Role: domain.RoleAdmin, Email: "admin@entnt.in", Password: "admin123"},
			{ID: "3", Role: domain.RoleEngineer, Email: "engineer@entnt.in", Password: "engine123"},
		},
		Ships: []domain.Ship{
			{ID: "s1", Name: "Ever Given", IMO: "9811000", Flag: "Panama", Status: domain.ShipActive},
		},
		Components: []domain.Component{
			{ID: "c1", ShipID: "s1", Name: "Main Engine", SerialNumber: "ME-1234", InstallDate: "2020-01-10", LastMaintenanceDate: "2024-03-12"},
		},
		Jobs: []domain.Job{
			{ID: "j1", ComponentID: "c1", ShipID: "s1", Type: domain.JobInspection, Priority: domain.PriorityHigh, Status: domain.JobOpen, AssignedEngineerID: "3", ScheduledDate: "2025-05-05"},
		},
		Notifications: []domain.Notification{},
	}
}

func newTestStates(t *testing.T, state *domain.State) *repository.StateRepository {
	t.Helper()
	states := repository.NewStateRepository(repository.NewMemorySnapshotStore(), nil)
	if err := states.Save(context.Background(), state); err != nil {
		t.Fatalf("save initial state: %v", err)
	}
	return states
}

func newTestJobService(t *testing.T, state *domain.State, now time.Time) (*JobService, *repository.StateRepository) {
	t.Helper()
	states := newTestStates(t, state)
	components := NewComponentService(states, nil)
	jobs := NewJobService(states, components, nil)
	jobs.now = func() time.Time { return now }
	return jobs, states
}

func TestCreateJobEmitsNotification(t *testing.T) {
	now := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	jobs, states := newTestJobService(t, fleetState(), now)
	ctx := context.Background()

	created, err := jobs.Create(ctx, domain.Job{
		ComponentID:        "c1",
		ShipID:             "s1",
		Type:               domain.JobInspection,
		Priority:           domain.PriorityMedium,
		Status:             domain.JobOpen,
		AssignedEngineerID: "3",
		ScheduledDate:      "2025-06-01",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.ID == "" || created.ID == "j1" {
		t.Fatalf("expected a fresh job id, got %q", created.ID)
	}

	state, err := states.Load(ctx)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(state.Jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(state.Jobs))
	}
	if len(state.Notifications) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(state.Notifications))
	}

	n := state.Notifications[0]
	if n.Type != domain.NotifJobCreated {
		t.Errorf("expected JobCreated notification, got %s", n.Type)
	}
	if want := "New inspection job created for Main Engine on Ever Given"; n.Message != want {
		t.Errorf("message = %q, want %q", n.Message, want)
	}
	if n.Read {
		t.Errorf("new notification should be unread")
	}
	if n.JobID != created.ID {
		t.Errorf("notification jobId = %q, want %q", n.JobID, created.ID)
	}
	if n.Timestamp != now.Format(time.RFC3339) {
		t.Errorf("timestamp = %q, want %q", n.Timestamp, now.Format(time.RFC3339))
	}
}

func TestCreateJobMissingReferenceSkipsNotification(t *testing.T) {
	jobs, states := newTestJobService(t, fleetState(), time.Now())
	ctx := context.Background()

	created, err := jobs.Create(ctx, domain.Job{
		ComponentID: "c-missing",
		ShipID:      "s1",
		Type:        domain.JobRepair,
		Priority:    domain.PriorityLow,
		Status:      domain.JobOpen,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	state, _ := states.Load(ctx)
	if state.JobByID(created.ID) == nil {
		t.Fatalf("job should still be persisted")
	}
	if len(state.Notifications) != 0 {
		t.Fatalf("expected no notification, got %d", len(state.Notifications))
	}
}

func TestCompleteJobAdvancesMaintenanceDate(t *testing.T) {
	now := time.Date(2025, 5, 10, 9, 30, 0, 0, time.UTC)
	jobs, states := newTestJobService(t, fleetState(), now)
	ctx := context.Background()

	job := fleetState().Jobs[0]
	job.Status = domain.JobCompleted
	job.CompletedDate = "2025-05-10"
	if _, err := jobs.Update(ctx, job); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	state, err := states.Load(ctx)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	stored := state.JobByID("j1")
	if stored == nil || stored.Status != domain.JobCompleted {
		t.Fatalf("job should be stored as completed")
	}

	if len(state.Notifications) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(state.Notifications))
	}
	n := state.Notifications[0]
	if n.Type != domain.NotifJobCompleted {
		t.Errorf("expected JobCompleted notification, got %s", n.Type)
	}
	if want := "Inspection job for Main Engine on Ever Given has been completed"; n.Message != want {
		t.Errorf("message = %q, want %q", n.Message, want)
	}

	c := state.ComponentByID("c1")
	if c == nil {
		t.Fatalf("component missing")
	}
	if want := "2025-05-10"; c.LastMaintenanceDate != want {
		t.Errorf("lastMaintenanceDate = %q, want %q", c.LastMaintenanceDate, want)
	}
}

func TestUpdateJobStatusChangeEmitsUpdatedNotification(t *testing.T) {
	jobs, states := newTestJobService(t, fleetState(), time.Now())
	ctx := context.Background()

	job := fleetState().Jobs[0]
	job.Status = domain.JobInProgress
	if _, err := jobs.Update(ctx, job); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	state, _ := states.Load(ctx)
	if len(state.Notifications) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(state.Notifications))
	}
	n := state.Notifications[0]
	if n.Type != domain.NotifJobUpdated {
		t.Errorf("expected JobUpdated notification, got %s", n.Type)
	}
	if want := "Inspection job for Main Engine on Ever Given status updated to In Progress"; n.Message != want {
		t.Errorf("message = %q, want %q", n.Message, want)
	}

	// no status change means no completion side effect on the component
	c := state.ComponentByID("c1")
	if c.LastMaintenanceDate != "2024-03-12" {
		t.Errorf("lastMaintenanceDate should be untouched, got %q", c.LastMaintenanceDate)
	}
}

func TestUpdateJobWithoutStatusChangeEmitsNothing(t *testing.T) {
	jobs, states := newTestJobService(t, fleetState(), time.Now())
	ctx := context.Background()

	job := fleetState().Jobs[0]
	job.Priority = domain.PriorityCritical
	job.Notes = "reprioritized after survey"
	if _, err := jobs.Update(ctx, job); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	state, _ := states.Load(ctx)
	if len(state.Notifications) != 0 {
		t.Fatalf("expected no notification, got %d", len(state.Notifications))
	}
	if state.JobByID("j1").Priority != domain.PriorityCritical {
		t.Errorf("priority update not persisted")
	}
}

func TestUpdateUnknownJobIsNoOp(t *testing.T) {
	jobs, states := newTestJobService(t, fleetState(), time.Now())
	ctx := context.Background()

	ghost := domain.Job{ID: "j-ghost", ComponentID: "c1", ShipID: "s1", Type: domain.JobOverhaul, Status: domain.JobCompleted}
	returned, err := jobs.Update(ctx, ghost)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if returned.ID != "j-ghost" {
		t.Fatalf("expected the input back, got %q", returned.ID)
	}

	state, _ := states.Load(ctx)
	if len(state.Jobs) != 1 || state.Jobs[0].ID != "j1" {
		t.Fatalf("job collection should be unchanged")
	}
	if len(state.Notifications) != 0 {
		t.Fatalf("no notification should be emitted for an unknown id")
	}
	if state.ComponentByID("c1").LastMaintenanceDate != "2024-03-12" {
		t.Fatalf("component should be untouched")
	}
}

func TestDeleteJobLeavesNotifications(t *testing.T) {
	jobs, states := newTestJobService(t, fleetState(), time.Now())
	ctx := context.Background()

	job := fleetState().Jobs[0]
	job.Status = domain.JobInProgress
	if _, err := jobs.Update(ctx, job); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	if err := jobs.Delete(ctx, "j1"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	state, _ := states.Load(ctx)
	if len(state.Jobs) != 0 {
		t.Fatalf("job should be removed")
	}
	if len(state.Notifications) != 1 {
		t.Fatalf("notification referencing the deleted job should survive")
	}
	if state.Notifications[0].JobID != "j1" {
		t.Errorf("surviving notification should still point at j1")
	}
}

func TestListForDate(t *testing.T) {
	jobs, _ := newTestJobService(t, fleetState(), time.Now())
	ctx := context.Background()

	matched, err := jobs.ListForDate(ctx, "2025-05-05")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(matched) != 1 || matched[0].ID != "j1" {
		t.Fatalf("expected j1 on 2025-05-05, got %v", matched)
	}

	empty, err := jobs.ListForDate(ctx, "2025-05-06")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected no jobs on 2025-05-06, got %d", len(empty))
	}
}
