package attendance

import "errors"

// Attendance domain errors
var (
	// Punch errors
	ErrAlreadyPunchedIn = errors.New("you have already punched in today")
	ErrNoOpenPunch      = errors.New("no open punch to close")
	ErrInvalidWorkMode  = errors.New("invalid work mode")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
)
