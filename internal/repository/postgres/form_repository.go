package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/fleetops/driver-service/internal/domain/form"
)

// FormRepository stores performance forms in the forms table
type FormRepository struct {
	db *gorm.DB
}

// NewFormRepository creates a new form repository
func NewFormRepository(db *gorm.DB) *FormRepository {
	return &FormRepository{db: db}
}

func (r *FormRepository) Create(ctx context.Context, f *form.Form) error {
	if err := r.db.WithContext(ctx).Create(f).Error; err != nil {
		return fmt.Errorf("failed to create form: %w", err)
	}
	return nil
}

func (r *FormRepository) GetByID(ctx context.Context, id int64) (*form.Form, error) {
	var f form.Form
	if err := r.db.WithContext(ctx).First(&f, id).Error; err != nil {
		return nil, translate(err, form.ErrFormNotFound)
	}
	return &f, nil
}

func (r *FormRepository) List(ctx context.Context) ([]form.Form, error) {
	forms := make([]form.Form, 0)
	if err := r.db.WithContext(ctx).Order("form_id").Find(&forms).Error; err != nil {
		return nil, fmt.Errorf("failed to list forms: %w", err)
	}
	return forms, nil
}

func (r *FormRepository) FindByDriverID(ctx context.Context, driverID int64) ([]form.Form, error) {
	forms := make([]form.Form, 0)
	err := r.db.WithContext(ctx).
		Where("driver_id = ?", driverID).
		Order("form_id").
		Find(&forms).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query forms: %w", err)
	}
	return forms, nil
}

func (r *FormRepository) Update(ctx context.Context, f *form.Form) error {
	res := r.db.WithContext(ctx).Select("*").Updates(f)
	if res.Error != nil {
		return fmt.Errorf("failed to update form: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return form.ErrFormNotFound
	}
	return nil
}

func (r *FormRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&form.Form{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete form: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return form.ErrFormNotFound
	}
	return nil
}
