package attendance

import (
	"context"
	"time"
)

// AttendanceService is the reconciliation core plus the punch entry points.
type AttendanceService interface {
	// PunchIn opens today's record for the user. Fails with
	// ErrAlreadyPunchedIn when the day already has a record.
	PunchIn(ctx context.Context, userID string, req PunchInRequest) (PunchStatusResponse, error)

	// PunchOut closes today's open record. Fails with ErrNoOpenPunch when
	// there is no record or the out-time is already set.
	PunchOut(ctx context.Context, userID string) (PunchStatusResponse, error)

	// TodayStatus reports the current punch state without mutating anything.
	TodayStatus(ctx context.Context, userID string) (PunchStatusResponse, error)

	// ApplyBiometricEvent folds one hardware punch into the day's record:
	// first event of the day opens it, every later event overwrites the
	// out-time (last out wins).
	ApplyBiometricEvent(ctx context.Context, userID string, ts time.Time) error

	// ClassifyDay reconciles attendance, leave and holiday data into one
	// authoritative status for the given day.
	ClassifyDay(ctx context.Context, userID string, day time.Time) (DayClassification, error)

	// MonthView classifies every day of the month.
	MonthView(ctx context.Context, userID string, year int, month time.Month) ([]DayViewResponse, error)

	// MonthlyTotals sums classifications over the month up to and
	// including today; future days are excluded.
	MonthlyTotals(ctx context.Context, userID string, year int, month time.Month) (MonthlyTotalsResponse, error)

	// StatsSummary computes present days, late marks and average working
	// hours over the user's whole history.
	StatsSummary(ctx context.Context, userID string) (StatsSummaryResponse, error)

	// WeeklyDistribution buckets attendance records by weekday, normalized
	// to the busiest day.
	WeeklyDistribution(ctx context.Context, userID string) ([]WeeklyChartItem, error)

	// ListMyAttendance returns the user's log, optionally restricted to a
	// "YYYY-MM" month.
	ListMyAttendance(ctx context.Context, userID string, yearMonth *string) ([]LogEntryResponse, error)

	// ListByDate is the HR view: every record for one day, optionally
	// filtered by status.
	ListByDate(ctx context.Context, date time.Time, status *Status) ([]DailyRecordResponse, error)
}
