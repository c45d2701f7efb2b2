package service

import (
	"context"
	"log/slog"

	"github.com/yourorg/shipkeeper/internal/domain"
	"github.com/yourorg/shipkeeper/internal/observability/metrics"
	"github.com/yourorg/shipkeeper/internal/repository"
)

// ShipService handles ship CRUD and the ship-level cascade delete
type ShipService struct {
	states *repository.StateRepository
	logger *slog.Logger
}

// NewShipService creates a new ship service
func NewShipService(states *repository.StateRepository, logger *slog.Logger) *ShipService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ShipService{
		states: states,
		logger: logger,
	}
}

// List returns all ships
func (s *ShipService) List(ctx context.Context) ([]domain.Ship, error) {
	state, err := s.states.Load(ctx)
	if err != nil {
		return nil, err
	}
	return state.Ships, nil
}

// Get returns a single ship by id
func (s *ShipService) Get(ctx context.Context, id string) (*domain.Ship, error) {
	state, err := s.states.Load(ctx)
	if err != nil {
		return nil, err
	}
	ship := state.ShipByID(id)
	if ship == nil {
		return nil, domain.ErrNotFound
	}
	return ship, nil
}

// Add assigns a new id to the ship and appends it to the fleet
func (s *ShipService) Add(ctx context.Context, ship domain.Ship) (*domain.Ship, error) {
	state, err := s.states.Load(ctx)
	if err != nil {
		return nil, err
	}

	ship.ID = domain.NewID("s")
	state.Ships = append(state.Ships, ship)

	if err := s.states.Save(ctx, state); err != nil {
		metrics.ObserveStateOp("ship", "add", "error")
		return nil, err
	}

	metrics.ObserveStateOp("ship", "add", "success")
	s.logger.Info("ship added", slog.String("ship_id", ship.ID), slog.String("name", ship.Name))
	return &ship, nil
}

// Update replaces the stored ship in full. An unknown id leaves the
// collection unchanged and returns the input as-is.
func (s *ShipService) Update(ctx context.Context, ship domain.Ship) (*domain.Ship, error) {
	state, err := s.states.Load(ctx)
	if err != nil {
		return nil, err
	}

	for i := range state.Ships {
		if state.Ships[i].ID == ship.ID {
			state.Ships[i] = ship
			break
		}
	}

	if err := s.states.Save(ctx, state); err != nil {
		metrics.ObserveStateOp("ship", "update", "error")
		return nil, err
	}

	metrics.ObserveStateOp("ship", "update", "success")
	return &ship, nil
}

// Delete removes the ship and cascades to its components and jobs.
// All three collections are filtered against the same snapshot and the
// document is persisted once, so no partial-cascade state is observable.
func (s *ShipService) Delete(ctx context.Context, id string) error {
	state, err := s.states.Load(ctx)
	if err != nil {
		return err
	}

	ships := state.Ships[:0]
	for _, ship := range state.Ships {
		if ship.ID != id {
			ships = append(ships, ship)
		}
	}
	state.Ships = ships

	components := state.Components[:0]
	for _, component := range state.Components {
		if component.ShipID != id {
			components = append(components, component)
		}
	}
	state.Components = components

	jobs := state.Jobs[:0]
	for _, job := range state.Jobs {
		if job.ShipID != id {
			jobs = append(jobs, job)
		}
	}
	state.Jobs = jobs

	if err := s.states.Save(ctx, state); err != nil {
		metrics.ObserveStateOp("ship", "delete", "error")
		return err
	}

	metrics.ObserveStateOp("ship", "delete", "success")
	s.logger.Info("ship deleted with cascade", slog.String("ship_id", id))
	return nil
}

// Count returns the number of ships in the fleet
func (s *ShipService) Count(ctx context.Context) (int, error) {
	state, err := s.states.Load(ctx)
	if err != nil {
		return 0, err
	}
	return len(state.Ships), nil
}
