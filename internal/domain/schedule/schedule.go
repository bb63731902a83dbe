package schedule

import (
	"strings"
	"time"
)

// Schedule is a driver's assignment to a route, optionally bounded in time
type Schedule struct {
	ID        int64      `json:"schedule_id" gorm:"column:schedule_id;primaryKey;autoIncrement"`
	DriverID  int64      `json:"driver_id" gorm:"column:driver_id;not null;index"`
	Route     string     `json:"route" gorm:"column:route;not null"`
	VehicleID *string    `json:"vehicle_id" gorm:"column:vehicle_id"`
	Status    string     `json:"status" gorm:"column:status;not null;index"`
	StartTime *time.Time `json:"start_time" gorm:"column:start_time"`
	EndTime   *time.Time `json:"end_time" gorm:"column:end_time"`
}

// TableName maps the entity to the schedules table
func (Schedule) TableName() string {
	return "schedules"
}

// IsValid validates the schedule entity
func (s *Schedule) IsValid() error {
	if s.DriverID <= 0 {
		return ErrInvalidDriverID
	}
	if strings.TrimSpace(s.Route) == "" {
		return ErrInvalidRoute
	}
	if strings.TrimSpace(s.Status) == "" {
		return ErrInvalidStatus
	}
	if s.HasWindow() && s.EndTime.Before(*s.StartTime) {
		return ErrInvalidWindow
	}
	return nil
}

// HasWindow reports whether both start and end are set
func (s *Schedule) HasWindow() bool {
	return s.StartTime != nil && s.EndTime != nil
}

// Patch is a sparse schedule update. Nil fields leave the stored value alone.
type Patch struct {
	DriverID  *int64
	Route     *string
	VehicleID *string
	Status    *string
	StartTime *time.Time
	EndTime   *time.Time
}

// Apply returns s with every supplied field of p written over it
func (p Patch) Apply(s Schedule) Schedule {
	if p.DriverID != nil {
		s.DriverID = *p.DriverID
	}
	if p.Route != nil {
		s.Route = *p.Route
	}
	if p.VehicleID != nil {
		v := *p.VehicleID
		s.VehicleID = &v
	}
	if p.Status != nil {
		s.Status = *p.Status
	}
	if p.StartTime != nil {
		t := *p.StartTime
		s.StartTime = &t
	}
	if p.EndTime != nil {
		t := *p.EndTime
		s.EndTime = &t
	}
	return s
}
