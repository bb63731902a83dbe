package dto

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fleetops/driver-service/internal/domain/driver"
	"github.com/fleetops/driver-service/internal/domain/form"
	"github.com/fleetops/driver-service/internal/domain/schedule"
)

const (
	// DateLayout is the wire format of calendar dates
	DateLayout = "2006-01-02"

	localTimestampLayout = "2006-01-02T15:04:05"
)

// ParseTimestamp accepts RFC 3339 or a zone-less timestamp, read as UTC
func ParseTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}
	t, err := time.ParseInLocation(localTimestampLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q", value)
	}
	return t, nil
}

func parseOptionalTimestamp(value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	t, err := ParseTimestamp(*value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func parseOptionalDate(value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	t, err := time.ParseInLocation(DateLayout, *value, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q", *value)
	}
	return &t, nil
}

// CreateDriverRequest represents a request to register a driver
type CreateDriverRequest struct {
	FullName      string `json:"full_name" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	Phone         string `json:"phone" binding:"required"`
	LicenseNumber string `json:"license_number" binding:"required"`
	ExpiryDate    string `json:"expiry_date" binding:"required,datetime=2006-01-02"`
}

// ToDriver converts the request into a new driver
func (r CreateDriverRequest) ToDriver() (*driver.Driver, error) {
	expiry, err := parseOptionalDate(&r.ExpiryDate)
	if err != nil {
		return nil, err
	}
	return &driver.Driver{
		FullName:      r.FullName,
		Email:         r.Email,
		Phone:         r.Phone,
		LicenseNumber: r.LicenseNumber,
		ExpiryDate:    *expiry,
	}, nil
}

// UpdateDriverRequest represents a sparse driver update
type UpdateDriverRequest struct {
	FullName      *string `json:"full_name"`
	Email         *string `json:"email" binding:"omitempty,email"`
	Phone         *string `json:"phone"`
	LicenseNumber *string `json:"license_number"`
	ExpiryDate    *string `json:"expiry_date" binding:"omitempty,datetime=2006-01-02"`
}

// ToPatch converts the request into a driver patch
func (r UpdateDriverRequest) ToPatch() (driver.Patch, error) {
	expiry, err := parseOptionalDate(r.ExpiryDate)
	if err != nil {
		return driver.Patch{}, err
	}
	return driver.Patch{
		FullName:      r.FullName,
		Email:         r.Email,
		Phone:         r.Phone,
		LicenseNumber: r.LicenseNumber,
		ExpiryDate:    expiry,
	}, nil
}

// CreateScheduleRequest represents a request to assign a driver to a route
type CreateScheduleRequest struct {
	DriverID  int64   `json:"driver_id" binding:"required,gt=0"`
	Route     string  `json:"route" binding:"required"`
	VehicleID *string `json:"vehicle_id"`
	Status    string  `json:"status" binding:"required"`
	StartTime *string `json:"start_time"`
	EndTime   *string `json:"end_time"`
}

// ToSchedule converts the request into a new schedule
func (r CreateScheduleRequest) ToSchedule() (*schedule.Schedule, error) {
	start, err := parseOptionalTimestamp(r.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := parseOptionalTimestamp(r.EndTime)
	if err != nil {
		return nil, err
	}
	if err := checkWindow(start, end); err != nil {
		return nil, err
	}
	return &schedule.Schedule{
		DriverID:  r.DriverID,
		Route:     r.Route,
		VehicleID: r.VehicleID,
		Status:    r.Status,
		StartTime: start,
		EndTime:   end,
	}, nil
}

// UpdateScheduleRequest represents a sparse schedule update
type UpdateScheduleRequest struct {
	DriverID  *int64  `json:"driver_id" binding:"omitempty,gt=0"`
	Route     *string `json:"route"`
	VehicleID *string `json:"vehicle_id"`
	Status    *string `json:"status"`
	StartTime *string `json:"start_time"`
	EndTime   *string `json:"end_time"`
}

// ToPatch converts the request into a schedule patch
func (r UpdateScheduleRequest) ToPatch() (schedule.Patch, error) {
	start, err := parseOptionalTimestamp(r.StartTime)
	if err != nil {
		return schedule.Patch{}, err
	}
	end, err := parseOptionalTimestamp(r.EndTime)
	if err != nil {
		return schedule.Patch{}, err
	}
	if err := checkWindow(start, end); err != nil {
		return schedule.Patch{}, err
	}
	return schedule.Patch{
		DriverID:  r.DriverID,
		Route:     r.Route,
		VehicleID: r.VehicleID,
		Status:    r.Status,
		StartTime: start,
		EndTime:   end,
	}, nil
}

// ErrEndBeforeStart is returned for windows whose end precedes their start
var ErrEndBeforeStart = errors.New("end_time is before start_time")

func checkWindow(start, end *time.Time) error {
	if start != nil && end != nil && end.Before(*start) {
		return ErrEndBeforeStart
	}
	return nil
}

// ConflictQuery holds the raw conflict check query parameters
type ConflictQuery struct {
	DriverID          int64  `form:"driver_id"`
	StartTime         string `form:"start_time"`
	EndTime           string `form:"end_time"`
	ExcludeScheduleID *int64 `form:"exclude_schedule_id"`
}

// Window parses the query's time window. Missing values stay nil.
func (q ConflictQuery) Window() (start, end *time.Time, err error) {
	if q.StartTime != "" {
		if start, err = parseOptionalTimestamp(&q.StartTime); err != nil {
			return nil, nil, err
		}
	}
	if q.EndTime != "" {
		if end, err = parseOptionalTimestamp(&q.EndTime); err != nil {
			return nil, nil, err
		}
	}
	if err := checkWindow(start, end); err != nil {
		return nil, nil, err
	}
	return start, end, nil
}

// CreateFormRequest represents a new performance record
type CreateFormRequest struct {
	DriverID       int64    `json:"driver_id" binding:"required,gt=0"`
	DriverName     string   `json:"driver_name" binding:"required"`
	VehicleNumber  string   `json:"vehicle_number" binding:"required"`
	Score          *float64 `json:"score"`
	FuelEfficiency *float64 `json:"fuel_efficiency"`
	OnTimeRate     *float64 `json:"on_time_rate"`
	VehicleID      *int64   `json:"vehicle_id"`
}

// ToForm converts the request into a new form
func (r CreateFormRequest) ToForm() *form.Form {
	return &form.Form{
		DriverID:       r.DriverID,
		DriverName:     r.DriverName,
		VehicleNumber:  r.VehicleNumber,
		Score:          r.Score,
		FuelEfficiency: r.FuelEfficiency,
		OnTimeRate:     r.OnTimeRate,
		VehicleID:      r.VehicleID,
	}
}

// UpdateFormRequest represents a sparse form update
type UpdateFormRequest struct {
	DriverID       *int64   `json:"driver_id" binding:"omitempty,gt=0"`
	DriverName     *string  `json:"driver_name"`
	VehicleNumber  *string  `json:"vehicle_number"`
	Score          *float64 `json:"score"`
	FuelEfficiency *float64 `json:"fuel_efficiency"`
	OnTimeRate     *float64 `json:"on_time_rate"`
	VehicleID      *int64   `json:"vehicle_id"`
}

// ToPatch converts the request into a form patch
func (r UpdateFormRequest) ToPatch() form.Patch {
	return form.Patch{
		DriverID:       r.DriverID,
		DriverName:     r.DriverName,
		VehicleNumber:  r.VehicleNumber,
		Score:          r.Score,
		FuelEfficiency: r.FuelEfficiency,
		OnTimeRate:     r.OnTimeRate,
		VehicleID:      r.VehicleID,
	}
}

// Error response
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Success response
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}
