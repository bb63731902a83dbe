package form

import "context"

// Repository defines the interface for form data access
type Repository interface {
	Create(ctx context.Context, form *Form) error
	GetByID(ctx context.Context, id int64) (*Form, error)
	List(ctx context.Context) ([]Form, error)
	Update(ctx context.Context, form *Form) error
	Delete(ctx context.Context, id int64) error

	// FindByDriverID returns the driver's forms in storage order
	FindByDriverID(ctx context.Context, driverID int64) ([]Form, error)
}
