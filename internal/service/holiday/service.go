// Package holiday manages the company holiday calendar.
package holiday

import (
	"context"
	"fmt"
	"time"

	"github.com/nimbus-hr/hrms-backend-go/internal/domain/holiday"
	"github.com/nimbus-hr/hrms-backend-go/internal/pkg/calendar"
)

type HolidayServiceImpl struct {
	holidayRepo holiday.HolidayRepository
	loc         *time.Location
	now         func() time.Time
}

func NewHolidayService(holidayRepo holiday.HolidayRepository, loc *time.Location) *HolidayServiceImpl {
	if loc == nil {
		loc = time.Local
	}
	return &HolidayServiceImpl{holidayRepo: holidayRepo, loc: loc, now: time.Now}
}

// Create registers a holiday. Weekday is derived from the date; the type
// defaults to Mandatory.
func (s *HolidayServiceImpl) Create(ctx context.Context, req holiday.CreateRequest) (holiday.Response, error) {
	if err := req.Validate(); err != nil {
		return holiday.Response{}, err
	}

	date, err := time.ParseInLocation("2006-01-02", req.Date, s.loc)
	if err != nil {
		return holiday.Response{}, fmt.Errorf("invalid date %q: %w", req.Date, err)
	}

	holidayType := holiday.Type(req.Type)
	if holidayType == "" {
		holidayType = holiday.TypeMandatory
	}

	created, err := s.holidayRepo.Create(ctx, holiday.Holiday{
		Name:              req.Name,
		Date:              date,
		Weekday:           date.Weekday().String(),
		Type:              holidayType,
		LeaveDaysConsumed: req.LeaveDaysConsumed,
	})
	if err != nil {
		return holiday.Response{}, fmt.Errorf("failed to create holiday: %w", err)
	}
	return s.toResponse(created), nil
}

// Delete removes a holiday from the calendar.
func (s *HolidayServiceImpl) Delete(ctx context.Context, id string) error {
	return s.holidayRepo.Delete(ctx, id)
}

// List returns the whole calendar, soonest first.
func (s *HolidayServiceImpl) List(ctx context.Context) ([]holiday.Response, error) {
	holidays, err := s.holidayRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	return s.toResponses(holidays), nil
}

// Upcoming returns up to limit holidays from today onward.
func (s *HolidayServiceImpl) Upcoming(ctx context.Context, limit int) ([]holiday.Response, error) {
	today := calendar.DateOnly(s.now().In(s.loc))
	holidays, err := s.holidayRepo.ListUpcoming(ctx, today, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming holidays: %w", err)
	}
	return s.toResponses(holidays), nil
}

func (s *HolidayServiceImpl) toResponse(h holiday.Holiday) holiday.Response {
	return holiday.Response{
		ID:                h.ID,
		Name:              h.Name,
		Date:              h.Date.In(s.loc).Format("2006-01-02"),
		Weekday:           h.Weekday,
		Type:              h.Type,
		LeaveDaysConsumed: h.LeaveDaysConsumed,
	}
}

func (s *HolidayServiceImpl) toResponses(holidays []holiday.Holiday) []holiday.Response {
	result := make([]holiday.Response, 0, len(holidays))
	for _, h := range holidays {
		result = append(result, s.toResponse(h))
	}
	return result
}
