package schedule

import "context"

// Repository defines the interface for schedule data access
type Repository interface {
	Create(ctx context.Context, schedule *Schedule) error
	GetByID(ctx context.Context, id int64) (*Schedule, error)
	List(ctx context.Context) ([]Schedule, error)
	Update(ctx context.Context, schedule *Schedule) error
	Delete(ctx context.Context, id int64) error

	// FindByDriverID returns the driver's schedules in storage order
	FindByDriverID(ctx context.Context, driverID int64) ([]Schedule, error)

	// FindByStatus returns schedules with exactly this status
	FindByStatus(ctx context.Context, status string) ([]Schedule, error)
}
