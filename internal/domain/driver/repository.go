package driver

import "context"

// Repository defines the interface for driver data access
type Repository interface {
	// Create inserts a driver and fills in its id and creation time
	Create(ctx context.Context, driver *Driver) error

	// GetByID retrieves a driver by ID
	GetByID(ctx context.Context, id int64) (*Driver, error)

	// GetByLicenseNumber retrieves a driver by license number
	GetByLicenseNumber(ctx context.Context, licenseNumber string) (*Driver, error)

	// ExistsByLicenseNumber reports whether any driver holds the license number
	ExistsByLicenseNumber(ctx context.Context, licenseNumber string) (bool, error)

	// List retrieves all drivers
	List(ctx context.Context) ([]Driver, error)

	// Update saves every column of an existing driver
	Update(ctx context.Context, driver *Driver) error

	// Delete deletes a driver
	Delete(ctx context.Context, id int64) error
}
