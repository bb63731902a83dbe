package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/fleetops/driver-service/internal/domain/driver"
)

// DriverRepository stores drivers in the drivers table
type DriverRepository struct {
	db *gorm.DB
}

// NewDriverRepository creates a new driver repository
func NewDriverRepository(db *gorm.DB) *DriverRepository {
	return &DriverRepository{db: db}
}

func (r *DriverRepository) Create(ctx context.Context, d *driver.Driver) error {
	if err := r.db.WithContext(ctx).Create(d).Error; err != nil {
		if isUniqueViolation(err) {
			return driver.ErrLicenseExists
		}
		return fmt.Errorf("failed to create driver: %w", err)
	}
	return nil
}

func (r *DriverRepository) GetByID(ctx context.Context, id int64) (*driver.Driver, error) {
	var d driver.Driver
	if err := r.db.WithContext(ctx).First(&d, id).Error; err != nil {
		return nil, translate(err, driver.ErrDriverNotFound)
	}
	return &d, nil
}

func (r *DriverRepository) GetByLicenseNumber(ctx context.Context, licenseNumber string) (*driver.Driver, error) {
	var d driver.Driver
	err := r.db.WithContext(ctx).Where("license_number = ?", licenseNumber).First(&d).Error
	if err != nil {
		return nil, translate(err, driver.ErrDriverNotFound)
	}
	return &d, nil
}

func (r *DriverRepository) ExistsByLicenseNumber(ctx context.Context, licenseNumber string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&driver.Driver{}).
		Where("license_number = ?", licenseNumber).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check license number: %w", err)
	}
	return count > 0, nil
}

func (r *DriverRepository) List(ctx context.Context) ([]driver.Driver, error) {
	drivers := make([]driver.Driver, 0)
	if err := r.db.WithContext(ctx).Order("driver_id").Find(&drivers).Error; err != nil {
		return nil, fmt.Errorf("failed to list drivers: %w", err)
	}
	return drivers, nil
}

func (r *DriverRepository) Update(ctx context.Context, d *driver.Driver) error {
	res := r.db.WithContext(ctx).Select("*").Omit("created_at").Updates(d)
	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return driver.ErrLicenseExists
		}
		return fmt.Errorf("failed to update driver: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return driver.ErrDriverNotFound
	}
	return nil
}

func (r *DriverRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&driver.Driver{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete driver: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return driver.ErrDriverNotFound
	}
	return nil
}
