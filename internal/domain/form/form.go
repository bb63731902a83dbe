package form

import "strings"

// Form is a periodic performance record for a driver
type Form struct {
	ID             int64    `json:"form_id" gorm:"column:form_id;primaryKey;autoIncrement"`
	DriverID       int64    `json:"driver_id" gorm:"column:driver_id;not null;index"`
	DriverName     string   `json:"driver_name" gorm:"column:driver_name;not null"`
	VehicleNumber  string   `json:"vehicle_number" gorm:"column:vehicle_number;not null"`
	Score          *float64 `json:"score" gorm:"column:score"`
	FuelEfficiency *float64 `json:"fuel_efficiency" gorm:"column:fuel_efficiency"`
	OnTimeRate     *float64 `json:"on_time_rate" gorm:"column:on_time_rate"`
	VehicleID      *int64   `json:"vehicle_id" gorm:"column:vehicle_id"`
}

// TableName maps the entity to the forms table
func (Form) TableName() string {
	return "forms"
}

// IsValid validates the form entity
func (f *Form) IsValid() error {
	if f.DriverID <= 0 {
		return ErrInvalidDriverID
	}
	if strings.TrimSpace(f.DriverName) == "" {
		return ErrInvalidDriverName
	}
	if strings.TrimSpace(f.VehicleNumber) == "" {
		return ErrInvalidVehicleNumber
	}
	return nil
}

// Patch is a sparse form update. Nil fields leave the stored value alone.
type Patch struct {
	DriverID       *int64
	DriverName     *string
	VehicleNumber  *string
	Score          *float64
	FuelEfficiency *float64
	OnTimeRate     *float64
	VehicleID      *int64
}

// Apply returns f with every supplied field of p written over it
func (p Patch) Apply(f Form) Form {
	if p.DriverID != nil {
		f.DriverID = *p.DriverID
	}
	if p.DriverName != nil {
		f.DriverName = *p.DriverName
	}
	if p.VehicleNumber != nil {
		f.VehicleNumber = *p.VehicleNumber
	}
	if p.Score != nil {
		f.Score = copyFloat(p.Score)
	}
	if p.FuelEfficiency != nil {
		f.FuelEfficiency = copyFloat(p.FuelEfficiency)
	}
	if p.OnTimeRate != nil {
		f.OnTimeRate = copyFloat(p.OnTimeRate)
	}
	if p.VehicleID != nil {
		v := *p.VehicleID
		f.VehicleID = &v
	}
	return f
}

func copyFloat(v *float64) *float64 {
	c := *v
	return &c
}
