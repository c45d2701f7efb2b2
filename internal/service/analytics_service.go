package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/yourorg/shipkeeper/internal/domain"
	"github.com/yourorg/shipkeeper/internal/repository"
)

// KPISnapshot holds the dashboard headline numbers
type KPISnapshot struct {
	ShipCount           int `json:"shipCount"`
	OverdueComponents   int `json:"overdueComponents"`
	JobsInProgress      int `json:"jobsInProgress"`
	JobsCompleted       int `json:"jobsCompleted"`
	UnreadNotifications int `json:"unreadNotifications"`
}

// AnalyticsService derives dashboard counts from the document.
type AnalyticsService struct {
	states        *repository.StateRepository
	overdueMonths int
	logger        *slog.Logger
	now           func() time.Time
}

// NewAnalyticsService creates a new analytics service. overdueMonths is the
// strict month-difference bound beyond which a component counts as overdue.
func NewAnalyticsService(states *repository.StateRepository, overdueMonths int, logger *slog.Logger) *AnalyticsService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AnalyticsService{
		states:        states,
		overdueMonths: overdueMonths,
		logger:        logger,
		now:           time.Now,
	}
}

// OverdueMaintenanceCount counts components whose last maintenance is more
// than the threshold number of months ago. The difference is pure month
// arithmetic, (Δyear*12 + Δmonth); day-of-month is ignored on both sides.
func (s *AnalyticsService) OverdueMaintenanceCount(ctx context.Context) (int, error) {
	state, err := s.states.Load(ctx)
	if err != nil {
		return 0, err
	}
	return s.overdueCount(state), nil
}

func (s *AnalyticsService) overdueCount(state *domain.State) int {
	now := s.now()
	count := 0
	for _, component := range state.Components {
		last, err := time.Parse("2006-01-02", component.LastMaintenanceDate)
		if err != nil {
			s.logger.Warn("component has unparseable maintenance date",
				slog.String("component_id", component.ID),
				slog.String("date", component.LastMaintenanceDate),
			)
			continue
		}
		monthsDiff := (now.Year()-last.Year())*12 + int(now.Month()) - int(last.Month())
		if monthsDiff > s.overdueMonths {
			count++
		}
	}
	return count
}

// KPIs returns all dashboard counts from one document read
func (s *AnalyticsService) KPIs(ctx context.Context) (*KPISnapshot, error) {
	state, err := s.states.Load(ctx)
	if err != nil {
		return nil, err
	}

	snap := &KPISnapshot{
		ShipCount:         len(state.Ships),
		OverdueComponents: s.overdueCount(state),
	}
	for _, job := range state.Jobs {
		switch job.Status {
		case domain.JobInProgress:
			snap.JobsInProgress++
		case domain.JobCompleted:
			snap.JobsCompleted++
		}
	}
	for _, n := range state.Notifications {
		if !n.Read {
			snap.UnreadNotifications++
		}
	}
	return snap, nil
}

// JobsInProgressCount returns the number of jobs currently in progress
func (s *AnalyticsService) JobsInProgressCount(ctx context.Context) (int, error) {
	snap, err := s.KPIs(ctx)
	if err != nil {
		return 0, err
	}
	return snap.JobsInProgress, nil
}

// CompletedJobsCount returns the number of completed jobs
func (s *AnalyticsService) CompletedJobsCount(ctx context.Context) (int, error) {
	snap, err := s.KPIs(ctx)
	if err != nil {
		return 0, err
	}
	return snap.JobsCompleted, nil
}
