package schedule

import (
	"context"

	"github.com/fleetops/driver-service/internal/events"
	"github.com/fleetops/driver-service/pkg/logger"
)

// Service implements schedule maintenance
type Service struct {
	repo      Repository
	publisher events.Publisher
	logger    *logger.Logger
}

// NewService creates a new schedule service
func NewService(repo Repository, publisher events.Publisher, logger *logger.Logger) *Service {
	if publisher == nil {
		publisher = events.Discard
	}
	return &Service{repo: repo, publisher: publisher, logger: logger}
}

// Create stores a new schedule
func (s *Service) Create(ctx context.Context, sch *Schedule) (*Schedule, error) {
	if err := sch.IsValid(); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, sch); err != nil {
		return nil, err
	}

	s.logger.Info("Schedule created",
		logger.Int64("schedule_id", sch.ID),
		logger.Int64("driver_id", sch.DriverID),
		logger.String("route", sch.Route),
	)
	s.publisher.Publish(ctx, events.New(events.ScheduleCreated, sch.ID, sch.DriverID, sch))
	return sch, nil
}

// Get returns one schedule
func (s *Service) Get(ctx context.Context, id int64) (*Schedule, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns all schedules
func (s *Service) List(ctx context.Context) ([]Schedule, error) {
	return s.repo.List(ctx)
}

// ListByDriver returns a driver's schedules
func (s *Service) ListByDriver(ctx context.Context, driverID int64) ([]Schedule, error) {
	return s.repo.FindByDriverID(ctx, driverID)
}

// ListByStatus returns schedules in a status
func (s *Service) ListByStatus(ctx context.Context, status string) ([]Schedule, error) {
	return s.repo.FindByStatus(ctx, status)
}

// Update merges patch into the stored schedule
func (s *Service) Update(ctx context.Context, id int64, patch Patch) (*Schedule, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := patch.Apply(*existing)
	if err := updated.IsValid(); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, &updated); err != nil {
		return nil, err
	}

	s.logger.Info("Schedule updated", logger.Int64("schedule_id", id))
	s.publisher.Publish(ctx, events.New(events.ScheduleUpdated, id, updated.DriverID, updated))
	return &updated, nil
}

// Delete removes a schedule
func (s *Service) Delete(ctx context.Context, id int64) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Schedule deleted", logger.Int64("schedule_id", id))
	s.publisher.Publish(ctx, events.New(events.ScheduleDeleted, id, existing.DriverID, nil))
	return nil
}
