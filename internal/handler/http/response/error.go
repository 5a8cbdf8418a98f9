package response

import (
	"errors"
	"net/http"

	"github.com/nimbus-hr/hrms-backend-go/internal/domain/attendance"
	"github.com/nimbus-hr/hrms-backend-go/internal/domain/auth"
	"github.com/nimbus-hr/hrms-backend-go/internal/domain/holiday"
	"github.com/nimbus-hr/hrms-backend-go/internal/domain/leave"
	"github.com/nimbus-hr/hrms-backend-go/internal/domain/user"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid email or password")
	case errors.Is(err, auth.ErrMissingCredentials):
		BadRequest(w, "Email and password are required", nil)
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, user.ErrHRAccessRequired):
		Forbidden(w, "HR access required")
	case errors.Is(err, user.ErrAdminAccessRequired):
		Forbidden(w, "Admin access required")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyPunchedIn):
		Conflict(w, "Already punched in today")
	case errors.Is(err, attendance.ErrNoOpenPunch):
		Conflict(w, "No open punch to close")
	case errors.Is(err, attendance.ErrInvalidWorkMode):
		BadRequest(w, "Work mode must be WFO, WFH or WFF", nil)
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrInvalidDateRange):
		BadRequest(w, "From date must not be after to date", nil)
	case errors.Is(err, leave.ErrMissingFields):
		BadRequest(w, "Type, from date and to date are required", nil)
	case errors.Is(err, leave.ErrAlreadyProcessed):
		Conflict(w, "Leave request already processed")

	// Holiday domain errors
	case errors.Is(err, holiday.ErrHolidayNotFound):
		NotFound(w, "Holiday not found")
	case errors.Is(err, holiday.ErrMissingFields):
		BadRequest(w, "Name and date are required", nil)
	case errors.Is(err, holiday.ErrInvalidType):
		BadRequest(w, "Holiday type must be Mandatory or Optional", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
