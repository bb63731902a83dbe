package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/fleetops/driver-service/internal/domain/schedule"
)

// ScheduleRepository stores schedules in the schedules table
type ScheduleRepository struct {
	db *gorm.DB
}

// NewScheduleRepository creates a new schedule repository
func NewScheduleRepository(db *gorm.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

func (r *ScheduleRepository) Create(ctx context.Context, s *schedule.Schedule) error {
	if err := r.db.WithContext(ctx).Create(s).Error; err != nil {
		return fmt.Errorf("failed to create schedule: %w", err)
	}
	return nil
}

func (r *ScheduleRepository) GetByID(ctx context.Context, id int64) (*schedule.Schedule, error) {
	var s schedule.Schedule
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, translate(err, schedule.ErrScheduleNotFound)
	}
	return &s, nil
}

func (r *ScheduleRepository) List(ctx context.Context) ([]schedule.Schedule, error) {
	return r.find(ctx, "")
}

func (r *ScheduleRepository) FindByDriverID(ctx context.Context, driverID int64) ([]schedule.Schedule, error) {
	return r.find(ctx, "driver_id = ?", driverID)
}

func (r *ScheduleRepository) FindByStatus(ctx context.Context, status string) ([]schedule.Schedule, error) {
	return r.find(ctx, "status = ?", status)
}

func (r *ScheduleRepository) find(ctx context.Context, where string, args ...interface{}) ([]schedule.Schedule, error) {
	q := r.db.WithContext(ctx).Order("schedule_id")
	if where != "" {
		q = q.Where(where, args...)
	}
	schedules := make([]schedule.Schedule, 0)
	if err := q.Find(&schedules).Error; err != nil {
		return nil, fmt.Errorf("failed to query schedules: %w", err)
	}
	return schedules, nil
}

func (r *ScheduleRepository) Update(ctx context.Context, s *schedule.Schedule) error {
	res := r.db.WithContext(ctx).Select("*").Updates(s)
	if res.Error != nil {
		return fmt.Errorf("failed to update schedule: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return schedule.ErrScheduleNotFound
	}
	return nil
}

func (r *ScheduleRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&schedule.Schedule{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete schedule: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return schedule.ErrScheduleNotFound
	}
	return nil
}
