package driver

import (
	"strings"
	"time"
)

// Driver represents a driver entity
type Driver struct {
	ID            int64     `json:"driver_id" gorm:"column:driver_id;primaryKey;autoIncrement"`
	FullName      string    `json:"full_name" gorm:"column:full_name;not null"`
	Email         string    `json:"email" gorm:"column:email;not null"`
	Phone         string    `json:"phone" gorm:"column:phone;not null"`
	LicenseNumber string    `json:"license_number" gorm:"column:license_number;uniqueIndex;not null"`
	ExpiryDate    time.Time `json:"expiry_date" gorm:"column:expiry_date;type:date;not null"`
	CreatedAt     time.Time `json:"created_at" gorm:"column:created_at;autoCreateTime;<-:create"`
}

// TableName maps the entity to the drivers table
func (Driver) TableName() string {
	return "drivers"
}

// IsValid validates the driver entity
func (d *Driver) IsValid() error {
	if strings.TrimSpace(d.FullName) == "" {
		return ErrInvalidDriverName
	}
	if strings.TrimSpace(d.Email) == "" {
		return ErrInvalidDriverEmail
	}
	if strings.TrimSpace(d.Phone) == "" {
		return ErrInvalidDriverPhone
	}
	if strings.TrimSpace(d.LicenseNumber) == "" {
		return ErrInvalidLicenseNumber
	}
	if d.ExpiryDate.IsZero() {
		return ErrInvalidExpiryDate
	}
	return nil
}

// Patch is a sparse driver update. Nil fields leave the stored value alone.
type Patch struct {
	FullName      *string
	Email         *string
	Phone         *string
	LicenseNumber *string
	ExpiryDate    *time.Time
}

// Apply returns d with every supplied field of p written over it
func (p Patch) Apply(d Driver) Driver {
	if p.FullName != nil {
		d.FullName = *p.FullName
	}
	if p.Email != nil {
		d.Email = *p.Email
	}
	if p.Phone != nil {
		d.Phone = *p.Phone
	}
	if p.LicenseNumber != nil {
		d.LicenseNumber = *p.LicenseNumber
	}
	if p.ExpiryDate != nil {
		d.ExpiryDate = *p.ExpiryDate
	}
	return d
}

// ChangesLicense reports whether p supplies a license number different from current
func (p Patch) ChangesLicense(current string) bool {
	return p.LicenseNumber != nil && *p.LicenseNumber != current
}
