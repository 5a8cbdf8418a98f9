package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access for per-day attendance records.
// The (user_id, date) pair is unique at the storage level; InsertDay and
// SetOutTime together form the conditional upsert both writers go through.
type AttendanceRepository interface {
	// InsertDay creates the day's record if none exists yet. Returns false
	// without error when a record for (UserID, Date) is already present.
	InsertDay(ctx context.Context, att Attendance) (created bool, err error)

	// SetOutTime stamps the out-time on an existing record. With overwrite
	// false it only fills an empty out_time (manual punch-out); with
	// overwrite true it always wins (biometric last-out semantics).
	// Returns false when no record matched.
	SetOutTime(ctx context.Context, userID string, date time.Time, out time.Time, overwrite bool) (updated bool, err error)

	// GetByUserAndDate retrieves the record for a specific day, nil when
	// the day is unrecorded.
	GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*Attendance, error)

	// ListByUser returns all records for a user, newest first.
	ListByUser(ctx context.Context, userID string) ([]Attendance, error)

	// ListByUserBetween returns records in the inclusive [from, to] day span,
	// oldest first.
	ListByUserBetween(ctx context.Context, userID string, from, to time.Time) ([]Attendance, error)

	// ListByDate returns every user's record for one day, optionally
	// filtered by status, joined with user name and department.
	ListByDate(ctx context.Context, date time.Time, status *Status) ([]Attendance, error)
}
