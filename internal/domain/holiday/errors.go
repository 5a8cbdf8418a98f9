package holiday

import "errors"

var (
	ErrHolidayNotFound = errors.New("holiday not found")
	ErrMissingFields   = errors.New("name and date are required")
	ErrInvalidType     = errors.New("holiday type must be Mandatory or Optional")
)
