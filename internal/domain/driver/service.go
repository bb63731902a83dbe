package driver

import (
	"context"
	"fmt"

	"github.com/fleetops/driver-service/internal/events"
	"github.com/fleetops/driver-service/pkg/logger"
	"github.com/fleetops/driver-service/pkg/monitoring"
)

// Service implements driver registration and maintenance
type Service struct {
	repo      Repository
	publisher events.Publisher
	monitor   *monitoring.NewRelicApp
	logger    *logger.Logger
}

// NewService creates a new driver service
func NewService(repo Repository, publisher events.Publisher, monitor *monitoring.NewRelicApp, logger *logger.Logger) *Service {
	if publisher == nil {
		publisher = events.Discard
	}
	return &Service{
		repo:      repo,
		publisher: publisher,
		monitor:   monitor,
		logger:    logger,
	}
}

// Create registers a driver. License numbers are unique.
func (s *Service) Create(ctx context.Context, d *Driver) (*Driver, error) {
	if err := d.IsValid(); err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByLicenseNumber(ctx, d.LicenseNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to check license number: %w", err)
	}
	if exists {
		return nil, ErrLicenseExists
	}

	if err := s.repo.Create(ctx, d); err != nil {
		return nil, err
	}

	s.logger.Info("Driver created",
		logger.Int64("driver_id", d.ID),
		logger.String("license_number", d.LicenseNumber),
	)
	s.monitor.RecordDriverCreated(d.ID)
	s.publisher.Publish(ctx, events.New(events.DriverCreated, d.ID, d.ID, d))

	return d, nil
}

// Get returns one driver
func (s *Service) Get(ctx context.Context, id int64) (*Driver, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns all drivers
func (s *Service) List(ctx context.Context) ([]Driver, error) {
	return s.repo.List(ctx)
}

// Update merges patch into the stored driver. The license number is checked
// for uniqueness only when it changes.
func (s *Service) Update(ctx context.Context, id int64, patch Patch) (*Driver, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.ChangesLicense(existing.LicenseNumber) {
		exists, err := s.repo.ExistsByLicenseNumber(ctx, *patch.LicenseNumber)
		if err != nil {
			return nil, fmt.Errorf("failed to check license number: %w", err)
		}
		if exists {
			return nil, ErrLicenseExists
		}
	}

	updated := patch.Apply(*existing)
	if err := updated.IsValid(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, &updated); err != nil {
		return nil, err
	}

	s.logger.Info("Driver updated", logger.Int64("driver_id", id))
	s.publisher.Publish(ctx, events.New(events.DriverUpdated, id, id, updated))

	return &updated, nil
}

// Delete removes a driver
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Driver deleted", logger.Int64("driver_id", id))
	s.publisher.Publish(ctx, events.New(events.DriverDeleted, id, id, nil))
	return nil
}
