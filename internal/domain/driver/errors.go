package driver

import "errors"

var (
	ErrDriverNotFound       = errors.New("driver not found")
	ErrLicenseExists        = errors.New("license number already registered")
	ErrInvalidDriverName    = errors.New("invalid driver name")
	ErrInvalidDriverEmail   = errors.New("invalid driver email")
	ErrInvalidDriverPhone   = errors.New("invalid driver phone")
	ErrInvalidLicenseNumber = errors.New("invalid license number")
	ErrInvalidExpiryDate    = errors.New("invalid license expiry date")
)
