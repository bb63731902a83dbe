package schedule

import "errors"

var (
	ErrScheduleNotFound = errors.New("schedule not found")
	ErrInvalidDriverID  = errors.New("invalid driver id")
	ErrInvalidRoute     = errors.New("invalid route")
	ErrInvalidStatus    = errors.New("invalid status")
	ErrInvalidWindow    = errors.New("end_time is before start_time")
)
