// Package dashboard aggregates the per-user landing page in one call.
package dashboard

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nimbus-hr/hrms-backend-go/internal/domain/attendance"
	"github.com/nimbus-hr/hrms-backend-go/internal/domain/holiday"
	"github.com/nimbus-hr/hrms-backend-go/internal/domain/leave"
)

const upcomingHolidayLimit = 3

// attendanceReader is the slice of the attendance service the dashboard needs.
type attendanceReader interface {
	TodayStatus(ctx context.Context, userID string) (attendance.PunchStatusResponse, error)
	MonthlyTotals(ctx context.Context, userID string, year int, month time.Month) (attendance.MonthlyTotalsResponse, error)
	StatsSummary(ctx context.Context, userID string) (attendance.StatsSummaryResponse, error)
	WeeklyDistribution(ctx context.Context, userID string) ([]attendance.WeeklyChartItem, error)
}

type leaveReader interface {
	Stats(ctx context.Context, userID string) (leave.StatsResponse, error)
}

type holidayReader interface {
	Upcoming(ctx context.Context, limit int) ([]holiday.Response, error)
}

// Overview is the assembled dashboard payload.
type Overview struct {
	Today            attendance.PunchStatusResponse   `json:"today"`
	MonthlyTotals    attendance.MonthlyTotalsResponse `json:"monthly_totals"`
	Stats            attendance.StatsSummaryResponse  `json:"stats"`
	WeeklyChart      []attendance.WeeklyChartItem     `json:"weekly_chart"`
	LeaveStats       leave.StatsResponse              `json:"leave_stats"`
	UpcomingHolidays []holiday.Response               `json:"upcoming_holidays"`
}

type DashboardServiceImpl struct {
	attendance attendanceReader
	leave      leaveReader
	holiday    holidayReader
	loc        *time.Location
	now        func() time.Time
}

func NewDashboardService(att attendanceReader, lv leaveReader, hol holidayReader, loc *time.Location) *DashboardServiceImpl {
	if loc == nil {
		loc = time.Local
	}
	return &DashboardServiceImpl{
		attendance: att,
		leave:      lv,
		holiday:    hol,
		loc:        loc,
		now:        time.Now,
	}
}

// Overview fans the six widget queries out concurrently and fails as a unit:
// a partial dashboard is worse than an explicit error.
func (s *DashboardServiceImpl) Overview(ctx context.Context, userID string) (Overview, error) {
	now := s.now().In(s.loc)

	var overview Overview
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		today, err := s.attendance.TodayStatus(ctx, userID)
		if err != nil {
			return fmt.Errorf("today status: %w", err)
		}
		overview.Today = today
		return nil
	})
	g.Go(func() error {
		totals, err := s.attendance.MonthlyTotals(ctx, userID, now.Year(), now.Month())
		if err != nil {
			return fmt.Errorf("monthly totals: %w", err)
		}
		overview.MonthlyTotals = totals
		return nil
	})
	g.Go(func() error {
		stats, err := s.attendance.StatsSummary(ctx, userID)
		if err != nil {
			return fmt.Errorf("stats summary: %w", err)
		}
		overview.Stats = stats
		return nil
	})
	g.Go(func() error {
		chart, err := s.attendance.WeeklyDistribution(ctx, userID)
		if err != nil {
			return fmt.Errorf("weekly distribution: %w", err)
		}
		overview.WeeklyChart = chart
		return nil
	})
	g.Go(func() error {
		stats, err := s.leave.Stats(ctx, userID)
		if err != nil {
			return fmt.Errorf("leave stats: %w", err)
		}
		overview.LeaveStats = stats
		return nil
	})
	g.Go(func() error {
		upcoming, err := s.holiday.Upcoming(ctx, upcomingHolidayLimit)
		if err != nil {
			return fmt.Errorf("upcoming holidays: %w", err)
		}
		overview.UpcomingHolidays = upcoming
		return nil
	})

	if err := g.Wait(); err != nil {
		return Overview{}, err
	}
	return overview, nil
}
