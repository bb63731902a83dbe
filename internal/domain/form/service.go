package form

import (
	"context"

	"github.com/fleetops/driver-service/internal/events"
	"github.com/fleetops/driver-service/pkg/logger"
)

// TrendInvalidator drops cached trend results for drivers whose forms changed
type TrendInvalidator interface {
	Invalidate(ctx context.Context, driverIDs ...int64)
}

type noInvalidation struct{}

func (noInvalidation) Invalidate(context.Context, ...int64) {}

// Service implements performance record maintenance
type Service struct {
	repo      Repository
	trends    TrendInvalidator
	publisher events.Publisher
	logger    *logger.Logger
}

// NewService creates a new form service. trends and publisher may be nil.
func NewService(repo Repository, trends TrendInvalidator, publisher events.Publisher, logger *logger.Logger) *Service {
	if trends == nil {
		trends = noInvalidation{}
	}
	if publisher == nil {
		publisher = events.Discard
	}
	return &Service{repo: repo, trends: trends, publisher: publisher, logger: logger}
}

// Create stores a new form
func (s *Service) Create(ctx context.Context, f *Form) (*Form, error) {
	if err := f.IsValid(); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, f); err != nil {
		return nil, err
	}

	s.trends.Invalidate(ctx, f.DriverID)
	s.logger.Info("Form created",
		logger.Int64("form_id", f.ID),
		logger.Int64("driver_id", f.DriverID),
	)
	s.publisher.Publish(ctx, events.New(events.FormCreated, f.ID, f.DriverID, f))
	return f, nil
}

// Get returns one form
func (s *Service) Get(ctx context.Context, id int64) (*Form, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns all forms
func (s *Service) List(ctx context.Context) ([]Form, error) {
	return s.repo.List(ctx)
}

// ListByDriver returns a driver's forms
func (s *Service) ListByDriver(ctx context.Context, driverID int64) ([]Form, error) {
	return s.repo.FindByDriverID(ctx, driverID)
}

// Update merges patch into the stored form. When the form moves to another
// driver both drivers' trends are invalidated.
func (s *Service) Update(ctx context.Context, id int64, patch Patch) (*Form, error) {
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

	if updated.DriverID != existing.DriverID {
		s.trends.Invalidate(ctx, existing.DriverID, updated.DriverID)
	} else {
		s.trends.Invalidate(ctx, updated.DriverID)
	}
	s.logger.Info("Form updated", logger.Int64("form_id", id))
	s.publisher.Publish(ctx, events.New(events.FormUpdated, id, updated.DriverID, updated))
	return &updated, nil
}

// Delete removes a form
func (s *Service) Delete(ctx context.Context, id int64) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.trends.Invalidate(ctx, existing.DriverID)
	s.logger.Info("Form deleted", logger.Int64("form_id", id))
	s.publisher.Publish(ctx, events.New(events.FormDeleted, id, existing.DriverID, nil))
	return nil
}
