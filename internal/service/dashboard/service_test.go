package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nimbus-hr/hrms-backend-go/internal/domain/attendance"
	"github.com/nimbus-hr/hrms-backend-go/internal/domain/holiday"
	"github.com/nimbus-hr/hrms-backend-go/internal/domain/leave"
)

type stubAttendance struct {
	totalsErr error
}

func (s stubAttendance) TodayStatus(context.Context, string) (attendance.PunchStatusResponse, error) {
	in := time.Date(2025, 6, 16, 9, 5, 0, 0, time.UTC)
	mode := "WFO"
	return attendance.PunchStatusResponse{InTime: &in, WorkMode: &mode}, nil
}

func (s stubAttendance) MonthlyTotals(context.Context, string, int, time.Month) (attendance.MonthlyTotalsResponse, error) {
	if s.totalsErr != nil {
		return attendance.MonthlyTotalsResponse{}, s.totalsErr
	}
	return attendance.MonthlyTotalsResponse{Present: 10, Absent: 1, Holiday: 4}, nil
}

func (s stubAttendance) StatsSummary(context.Context, string) (attendance.StatsSummaryResponse, error) {
	return attendance.StatsSummaryResponse{AvgHours: "8h 12m", PresentDays: 10, LateMarks: 2}, nil
}

func (s stubAttendance) WeeklyDistribution(context.Context, string) ([]attendance.WeeklyChartItem, error) {
	return []attendance.WeeklyChartItem{{Day: "Mon", Height: "100%"}}, nil
}

type stubLeave struct{}

func (stubLeave) Stats(context.Context, string) (leave.StatsResponse, error) {
	return leave.StatsResponse{Used: 4, Total: 25}, nil
}

type stubHoliday struct {
	gotLimit int
}

func (s *stubHoliday) Upcoming(_ context.Context, limit int) ([]holiday.Response, error) {
	s.gotLimit = limit
	return []holiday.Response{{Name: "Independence Day", Date: "2025-08-15"}}, nil
}

func TestOverview_AssemblesAllWidgets(t *testing.T) {
	hol := &stubHoliday{}
	svc := NewDashboardService(stubAttendance{}, stubLeave{}, hol, time.UTC)
	svc.now = func() time.Time { return time.Date(2025, 6, 16, 12, 0, 0, 0, time.UTC) }

	overview, err := svc.Overview(context.Background(), "u1")
	require.NoError(t, err)

	assert.NotNil(t, overview.Today.InTime)
	assert.Equal(t, 10, overview.MonthlyTotals.Present)
	assert.Equal(t, "8h 12m", overview.Stats.AvgHours)
	assert.Len(t, overview.WeeklyChart, 1)
	assert.Equal(t, 4, overview.LeaveStats.Used)
	require.Len(t, overview.UpcomingHolidays, 1)
	assert.Equal(t, upcomingHolidayLimit, hol.gotLimit)
}

func TestOverview_FailsAsAUnit(t *testing.T) {
	svc := NewDashboardService(stubAttendance{totalsErr: errors.New("db down")}, stubLeave{}, &stubHoliday{}, time.UTC)

	_, err := svc.Overview(context.Background(), "u1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "monthly totals")
}
