package form

import "errors"

var (
	ErrFormNotFound         = errors.New("form not found")
	ErrInvalidDriverID      = errors.New("invalid driver id")
	ErrInvalidDriverName    = errors.New("invalid driver name")
	ErrInvalidVehicleNumber = errors.New("invalid vehicle number")
)
