package holiday

import "context"

// HolidayService manages the company holiday calendar.
type HolidayService interface {
	Create(ctx context.Context, req CreateRequest) (Response, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]Response, error)
	Upcoming(ctx context.Context, limit int) ([]Response, error)
}
