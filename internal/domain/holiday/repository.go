package holiday

import (
	"context"
	"time"
)

// HolidayRepository defines data access for the company holiday calendar.
type HolidayRepository interface {
	Create(ctx context.Context, h Holiday) (Holiday, error)
	Delete(ctx context.Context, id string) error
	ListAll(ctx context.Context) ([]Holiday, error)

	// GetByDate returns the holiday on the given calendar day, nil when
	// the day is a working day.
	GetByDate(ctx context.Context, date time.Time) (*Holiday, error)

	// ListBetween returns holidays in the inclusive [from, to] span,
	// soonest first.
	ListBetween(ctx context.Context, from, to time.Time) ([]Holiday, error)

	// ListUpcoming returns up to limit holidays on or after the given day.
	ListUpcoming(ctx context.Context, from time.Time, limit int) ([]Holiday, error)
}
