package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/yourorg/shipkeeper/internal/domain"
	"github.com/yourorg/shipkeeper/internal/observability/metrics"
	"github.com/yourorg/shipkeeper/internal/repository"
)

// JobService is the job lifecycle manager. Creating a job and changing a
// job's status are the only two paths that emit notifications, and a
// transition to Completed additionally advances the component's
// lastMaintenanceDate through a separate component update.
type JobService struct {
	states     *repository.StateRepository
	components *ComponentService
	logger     *slog.Logger
	now        func() time.Time
}

// NewJobService creates a new job service
func NewJobService(states *repository.StateRepository, components *ComponentService, logger *slog.Logger) *JobService {
	if logger == nil {
		logger = slog.Default()
	}
	return &JobService{
		states:     states,
		components: components,
		logger:     logger,
		now:        time.Now,
	}
}

// List returns all jobs
func (s *JobService) List(ctx context.Context) ([]domain.Job, error) {
	state, err := s.states.Load(ctx)
	if err != nil {
		return nil, err
	}
	return state.Jobs, nil
}

// ListByShip returns all jobs for a ship
func (s *JobService) ListByShip(ctx context.Context, shipID string) ([]domain.Job, error) {
	state, err := s.states.Load(ctx)
	if err != nil {
		return nil, err
	}

	out := []domain.Job{}
	for _, job := range state.Jobs {
		if job.ShipID == shipID {
			out = append(out, job)
		}
	}
	return out, nil
}

// ListByComponent returns all jobs for a component
func (s *JobService) ListByComponent(ctx context.Context, componentID string) ([]domain.Job, error) {
	state, err := s.states.Load(ctx)
	if err != nil {
		return nil, err
	}

	out := []domain.Job{}
	for _, job := range state.Jobs {
		if job.ComponentID == componentID {
			out = append(out, job)
		}
	}
	return out, nil
}

// ListForDate returns the jobs scheduled on a calendar day (YYYY-MM-DD)
func (s *JobService) ListForDate(ctx context.Context, date string) ([]domain.Job, error) {
	state, err := s.states.Load(ctx)
	if err != nil {
		return nil, err
	}

	out := []domain.Job{}
	for _, job := range state.Jobs {
		if job.ScheduledDate == date {
			out = append(out, job)
		}
	}
	return out, nil
}

// Get returns a single job by id
func (s *JobService) Get(ctx context.Context, id string) (*domain.Job, error) {
	state, err := s.states.Load(ctx)
	if err != nil {
		return nil, err
	}
	job := state.JobByID(id)
	if job == nil {
		return nil, domain.ErrNotFound
	}
	return job, nil
}

// Create assigns a new id, appends the job and emits a JobCreated
// notification when both the referenced component and ship exist. A missing
// reference silently skips the notification; the create still succeeds.
// The document is persisted once.
func (s *JobService) Create(ctx context.Context, job domain.Job) (*domain.Job, error) {
	state, err := s.states.Load(ctx)
	if err != nil {
		return nil, err
	}

	job.ID = domain.NewID("j")
	state.Jobs = append(state.Jobs, job)

	component := state.ComponentByID(job.ComponentID)
	ship := state.ShipByID(job.ShipID)
	if component != nil && ship != nil {
		message := fmt.Sprintf("New %s job created for %s on %s",
			strings.ToLower(string(job.Type)), component.Name, ship.Name)
		s.appendNotification(state, domain.NotifJobCreated, message, job.ID)
	} else {
		s.logger.Warn("job created with unresolved references, skipping notification",
			slog.String("job_id", job.ID),
			slog.String("component_id", job.ComponentID),
			slog.String("ship_id", job.ShipID),
		)
	}

	if err := s.states.Save(ctx, state); err != nil {
		metrics.ObserveStateOp("job", "add", "error")
		return nil, err
	}

	metrics.ObserveStateOp("job", "add", "success")
	s.logger.Info("job created",
		slog.String("job_id", job.ID),
		slog.String("type", string(job.Type)),
		slog.String("status", string(job.Status)),
	)
	return &job, nil
}

// Update replaces the stored job in full. A status change emits exactly one
// notification (JobCompleted when the new status is Completed, JobUpdated
// otherwise), and completion advances the component's lastMaintenanceDate to
// today via a separate component update with its own read and persist.
// An unknown id leaves the collection unchanged and returns the input as-is.
func (s *JobService) Update(ctx context.Context, job domain.Job) (*domain.Job, error) {
	state, err := s.states.Load(ctx)
	if err != nil {
		return nil, err
	}

	var oldStatus domain.JobStatus
	found := false
	for i := range state.Jobs {
		if state.Jobs[i].ID == job.ID {
			oldStatus = state.Jobs[i].Status
			state.Jobs[i] = job
			found = true
			break
		}
	}

	statusChanged := found && oldStatus != job.Status
	var component *domain.Component
	if statusChanged {
		// re-resolve against the updated job's references
		component = state.ComponentByID(job.ComponentID)
		ship := state.ShipByID(job.ShipID)
		if component != nil && ship != nil {
			notificationType := domain.NotifJobUpdated
			message := fmt.Sprintf("%s job for %s on %s status updated to %s",
				job.Type, component.Name, ship.Name, job.Status)
			if job.Status == domain.JobCompleted {
				notificationType = domain.NotifJobCompleted
				message = fmt.Sprintf("%s job for %s on %s has been completed",
					job.Type, component.Name, ship.Name)
			}
			s.appendNotification(state, notificationType, message, job.ID)
		} else {
			component = nil
			s.logger.Warn("job status changed with unresolved references, skipping notification",
				slog.String("job_id", job.ID),
			)
		}
	}

	if err := s.states.Save(ctx, state); err != nil {
		metrics.ObserveStateOp("job", "update", "error")
		return nil, err
	}
	metrics.ObserveStateOp("job", "update", "success")

	if statusChanged && job.Status == domain.JobCompleted && component != nil {
		updated := *component
		updated.LastMaintenanceDate = s.now().Format("2006-01-02")
		if _, err := s.components.Update(ctx, updated); err != nil {
			return nil, fmt.Errorf("failed to update component maintenance date: %w", err)
		}
		s.logger.Info("component maintenance date advanced",
			slog.String("component_id", updated.ID),
			slog.String("date", updated.LastMaintenanceDate),
		)
	}

	return &job, nil
}

// Delete removes the job. Notifications referencing it are deliberately left
// in place, pointing at an id that no longer resolves.
func (s *JobService) Delete(ctx context.Context, id string) error {
	state, err := s.states.Load(ctx)
	if err != nil {
		return err
	}

	jobs := state.Jobs[:0]
	for _, job := range state.Jobs {
		if job.ID != id {
			jobs = append(jobs, job)
		}
	}
	state.Jobs = jobs

	if err := s.states.Save(ctx, state); err != nil {
		metrics.ObserveStateOp("job", "delete", "error")
		return err
	}

	metrics.ObserveStateOp("job", "delete", "success")
	s.logger.Info("job deleted", slog.String("job_id", id))
	return nil
}

func (s *JobService) appendNotification(state *domain.State, notificationType domain.NotificationType, message, jobID string) {
	state.Notifications = append(state.Notifications, domain.Notification{
		ID:        domain.NewID("n"),
		Type:      notificationType,
		Message:   message,
		Timestamp: s.now().UTC().Format(time.RFC3339),
		Read:      false,
		JobID:     jobID,
	})
	metrics.ObserveNotification(string(notificationType))
}
