// Package seed loads sample drivers and performance forms into an empty or
// partially filled database. Running it twice adds nothing the second time.
package seed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/fleetops/driver-service/internal/api/dto"
	"github.com/fleetops/driver-service/internal/domain/driver"
	"github.com/fleetops/driver-service/internal/domain/form"
	"github.com/fleetops/driver-service/pkg/logger"
)

// Summary counts what a run did
type Summary struct {
	DriversAdded   int
	DriversSkipped int
	DriversFailed  int
	FormsAdded     int
	FormsSkipped   int
	FormsFailed    int
}

// Seeder writes sample records through the domain services
type Seeder struct {
	drivers *driver.Service
	forms   *form.Service
	logger  *logger.Logger
}

// New creates a seeder
func New(drivers *driver.Service, forms *form.Service, logger *logger.Logger) *Seeder {
	return &Seeder{drivers: drivers, forms: forms, logger: logger}
}

// SeedDrivers adds every driver in r whose license number is not registered
func (s *Seeder) SeedDrivers(ctx context.Context, r io.Reader, summary *Summary) error {
	var records []dto.CreateDriverRequest
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return fmt.Errorf("failed to decode driver records: %w", err)
	}

	for _, rec := range records {
		d, err := rec.ToDriver()
		if err != nil {
			summary.DriversFailed++
			s.logger.Warn("Skipping malformed driver record",
				logger.String("license_number", rec.LicenseNumber),
				logger.Err(err),
			)
			continue
		}

		_, err = s.drivers.Create(ctx, d)
		switch {
		case errors.Is(err, driver.ErrLicenseExists):
			summary.DriversSkipped++
			s.logger.Info("Driver already exists",
				logger.String("full_name", rec.FullName),
				logger.String("license_number", rec.LicenseNumber),
			)
		case err != nil:
			summary.DriversFailed++
			s.logger.Warn("Failed to add driver",
				logger.String("full_name", rec.FullName),
				logger.Err(err),
			)
		default:
			summary.DriversAdded++
		}
	}
	return nil
}

type formKey struct {
	driverID  int64
	vehicleID int64
}

func keyOf(driverID int64, vehicleID *int64) formKey {
	k := formKey{driverID: driverID}
	if vehicleID != nil {
		k.vehicleID = *vehicleID
	}
	return k
}

// SeedForms adds every form in r unless a form for the same driver and
// vehicle is already stored
func (s *Seeder) SeedForms(ctx context.Context, r io.Reader, summary *Summary) error {
	var records []dto.CreateFormRequest
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return fmt.Errorf("failed to decode form records: %w", err)
	}

	existing, err := s.forms.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list forms: %w", err)
	}
	seen := make(map[formKey]bool, len(existing))
	for _, f := range existing {
		seen[keyOf(f.DriverID, f.VehicleID)] = true
	}

	for _, rec := range records {
		key := keyOf(rec.DriverID, rec.VehicleID)
		if seen[key] {
			summary.FormsSkipped++
			continue
		}

		if _, err := s.forms.Create(ctx, rec.ToForm()); err != nil {
			summary.FormsFailed++
			s.logger.Warn("Failed to add form",
				logger.Int64("driver_id", rec.DriverID),
				logger.Err(err),
			)
			continue
		}
		seen[key] = true
		summary.FormsAdded++
	}
	return nil
}
