package service

import (
	"context"
	"log/slog"

	"github.com/yourorg/shipkeeper/internal/domain"
	"github.com/yourorg/shipkeeper/internal/observability/metrics"
	"github.com/yourorg/shipkeeper/internal/repository"
)

// ComponentService handles component CRUD and the component-level cascade
type ComponentService struct {
	states *repository.StateRepository
	logger *slog.Logger
}

// NewComponentService creates a new component service
func NewComponentService(states *repository.StateRepository, logger *slog.Logger) *ComponentService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ComponentService{
		states: states,
		logger: logger,
	}
}

// List returns all components
func (s *ComponentService) List(ctx context.Context) ([]domain.Component, error) {
	state, err := s.states.Load(ctx)
	if err != nil {
		return nil, err
	}
	return state.Components, nil
}

// ListByShip returns the components installed on the given ship
func (s *ComponentService) ListByShip(ctx context.Context, shipID string) ([]domain.Component, error) {
	state, err := s.states.Load(ctx)
	if err != nil {
		return nil, err
	}

	out := []domain.Component{}
	for _, component := range state.Components {
		if component.ShipID == shipID {
			out = append(out, component)
		}
	}
	return out, nil
}

// Get returns a single component by id
func (s *ComponentService) Get(ctx context.Context, id string) (*domain.Component, error) {
	state, err := s.states.Load(ctx)
	if err != nil {
		return nil, err
	}
	component := state.ComponentByID(id)
	if component == nil {
		return nil, domain.ErrNotFound
	}
	return component, nil
}

// Add assigns a new id to the component and appends it
func (s *ComponentService) Add(ctx context.Context, component domain.Component) (*domain.Component, error) {
	state, err := s.states.Load(ctx)
	if err != nil {
		return nil, err
	}

	component.ID = domain.NewID("c")
	state.Components = append(state.Components, component)

	if err := s.states.Save(ctx, state); err != nil {
		metrics.ObserveStateOp("component", "add", "error")
		return nil, err
	}

	metrics.ObserveStateOp("component", "add", "success")
	s.logger.Info("component added",
		slog.String("component_id", component.ID),
		slog.String("ship_id", component.ShipID),
	)
	return &component, nil
}

// Update replaces the stored component in full. An unknown id leaves the
// collection unchanged and returns the input as-is.
func (s *ComponentService) Update(ctx context.Context, component domain.Component) (*domain.Component, error) {
	state, err := s.states.Load(ctx)
	if err != nil {
		return nil, err
	}

	for i := range state.Components {
		if state.Components[i].ID == component.ID {
			state.Components[i] = component
			break
		}
	}

	if err := s.states.Save(ctx, state); err != nil {
		metrics.ObserveStateOp("component", "update", "error")
		return nil, err
	}

	metrics.ObserveStateOp("component", "update", "success")
	return &component, nil
}

// Delete removes the component and all jobs that reference it in one
// persist. Notifications pointing at those jobs are left in place.
func (s *ComponentService) Delete(ctx context.Context, id string) error {
	state, err := s.states.Load(ctx)
	if err != nil {
		return err
	}

	components := state.Components[:0]
	for _, component := range state.Components {
		if component.ID != id {
			components = append(components, component)
		}
	}
	state.Components = components

	jobs := state.Jobs[:0]
	for _, job := range state.Jobs {
		if job.ComponentID != id {
			jobs = append(jobs, job)
		}
	}
	state.Jobs = jobs

	if err := s.states.Save(ctx, state); err != nil {
		metrics.ObserveStateOp("component", "delete", "error")
		return err
	}

	metrics.ObserveStateOp("component", "delete", "success")
	s.logger.Info("component deleted with cascade", slog.String("component_id", id))
	return nil
}
