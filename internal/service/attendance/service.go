package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/nimbus-hr/hrms-backend-go/internal/domain/attendance"
	"github.com/nimbus-hr/hrms-backend-go/internal/domain/holiday"
	"github.com/nimbus-hr/hrms-backend-go/internal/domain/leave"
	"github.com/nimbus-hr/hrms-backend-go/internal/pkg/calendar"
)

// AttendanceServiceImpl reconciles attendance records, approved leave and the
// holiday calendar into per-day statuses and rollups. Manual punches and
// biometric events both land here so the two writers share one set of
// invariants.
type AttendanceServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	leaveRepo      leave.LeaveRepository
	holidayRepo    holiday.HolidayRepository

	loc        *time.Location
	lateHour   int
	lateMinute int

	now func() time.Time
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	leaveRepo leave.LeaveRepository,
	holidayRepo holiday.HolidayRepository,
	loc *time.Location,
	lateHour, lateMinute int,
) *AttendanceServiceImpl {
	if loc == nil {
		loc = time.Local
	}
	return &AttendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		leaveRepo:      leaveRepo,
		holidayRepo:    holidayRepo,
		loc:            loc,
		lateHour:       lateHour,
		lateMinute:     lateMinute,
		now:            time.Now,
	}
}

// today returns the current calendar day in the service location. Timestamps
// are always server-assigned; client clocks are never trusted.
func (s *AttendanceServiceImpl) today() (now time.Time, day time.Time) {
	now = s.now().In(s.loc)
	return now, calendar.DateOnly(now)
}

// PunchIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) PunchIn(ctx context.Context, userID string, req attendance.PunchInRequest) (attendance.PunchStatusResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.PunchStatusResponse{}, err
	}

	now, day := s.today()

	created, err := s.attendanceRepo.InsertDay(ctx, attendance.Attendance{
		UserID:   userID,
		Date:     day,
		InTime:   &now,
		Status:   attendance.StatusPresent,
		WorkMode: attendance.WorkMode(req.WorkMode),
	})
	if err != nil {
		return attendance.PunchStatusResponse{}, fmt.Errorf("failed to punch in: %w", err)
	}
	if !created {
		return attendance.PunchStatusResponse{}, attendance.ErrAlreadyPunchedIn
	}

	mode := req.WorkMode
	return attendance.PunchStatusResponse{InTime: &now, WorkMode: &mode}, nil
}

// PunchOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) PunchOut(ctx context.Context, userID string) (attendance.PunchStatusResponse, error) {
	now, day := s.today()

	// Manual punch-out never overwrites: a closed day stays closed.
	updated, err := s.attendanceRepo.SetOutTime(ctx, userID, day, now, false)
	if err != nil {
		return attendance.PunchStatusResponse{}, fmt.Errorf("failed to punch out: %w", err)
	}
	if !updated {
		return attendance.PunchStatusResponse{}, attendance.ErrNoOpenPunch
	}

	att, err := s.attendanceRepo.GetByUserAndDate(ctx, userID, day)
	if err != nil || att == nil {
		return attendance.PunchStatusResponse{OutTime: &now}, nil
	}
	mode := string(att.WorkMode)
	return attendance.PunchStatusResponse{InTime: att.InTime, OutTime: att.OutTime, WorkMode: &mode}, nil
}

// TodayStatus implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) TodayStatus(ctx context.Context, userID string) (attendance.PunchStatusResponse, error) {
	_, day := s.today()

	att, err := s.attendanceRepo.GetByUserAndDate(ctx, userID, day)
	if err != nil {
		return attendance.PunchStatusResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if att == nil {
		return attendance.PunchStatusResponse{}, nil
	}
	mode := string(att.WorkMode)
	return attendance.PunchStatusResponse{InTime: att.InTime, OutTime: att.OutTime, WorkMode: &mode}, nil
}

// ApplyBiometricEvent implements attendance.AttendanceService. The first
// event of a day opens the record with the event time as in-time; every
// subsequent event overwrites the out-time, so the day's final punch becomes
// the permanent out-time. A third or later punch is not an anomaly here:
// last-out wins is the intended device semantics.
func (s *AttendanceServiceImpl) ApplyBiometricEvent(ctx context.Context, userID string, ts time.Time) error {
	ts = ts.In(s.loc)
	day := calendar.DateOnly(ts)

	created, err := s.attendanceRepo.InsertDay(ctx, attendance.Attendance{
		UserID:   userID,
		Date:     day,
		InTime:   &ts,
		Status:   attendance.StatusPresent,
		WorkMode: attendance.WorkModeOffice, // a hardware punch implies on-site
	})
	if err != nil {
		return fmt.Errorf("failed to apply biometric event: %w", err)
	}
	if created {
		return nil
	}

	if _, err := s.attendanceRepo.SetOutTime(ctx, userID, day, ts, true); err != nil {
		return fmt.Errorf("failed to apply biometric out event: %w", err)
	}
	return nil
}

// ClassifyDay implements attendance.AttendanceService. Precedence, highest
// first: holiday or week-off, approved leave, present attendance, then
// absent for past days. Today and future days without data stay unmarked.
// Holiday and approved leave are authoritative business facts; they override
// whatever the attendance table says about the same day.
func (s *AttendanceServiceImpl) ClassifyDay(ctx context.Context, userID string, day time.Time) (attendance.DayClassification, error) {
	day = calendar.DateOnly(day.In(s.loc))
	result := attendance.DayClassification{Date: day}

	if calendar.IsWeekOff(day) {
		result.Status = attendance.DayHoliday
		return result, nil
	}

	h, err := s.holidayRepo.GetByDate(ctx, day)
	if err != nil {
		return result, fmt.Errorf("failed to look up holiday: %w", err)
	}
	if h != nil {
		result.Status = attendance.DayHoliday
		result.HolidayName = h.Name
		return result, nil
	}

	l, err := s.leaveRepo.GetApprovedCovering(ctx, userID, day)
	if err != nil {
		return result, fmt.Errorf("failed to look up leave: %w", err)
	}
	if l != nil {
		result.Status = attendance.DayLeave
		result.LeaveType = l.Type
		return result, nil
	}

	att, err := s.attendanceRepo.GetByUserAndDate(ctx, userID, day)
	if err != nil {
		return result, fmt.Errorf("failed to look up attendance: %w", err)
	}
	if att != nil && att.Status == attendance.StatusPresent {
		result.Status = attendance.DayPresent
		result.LateMark = s.isLate(att.InTime)
		return result, nil
	}
	if att != nil && att.Status == attendance.StatusHalfDay {
		result.Status = attendance.DayHalfDay
		return result, nil
	}

	_, todayStart := s.today()
	if day.Before(todayStart) {
		result.Status = attendance.DayAbsent
		return result, nil
	}

	result.Status = attendance.DayUnmarked
	return result, nil
}

// isLate reports whether an in-time beats the late threshold, compared on
// local wall-clock hour and minute.
func (s *AttendanceServiceImpl) isLate(inTime *time.Time) bool {
	if inTime == nil {
		return false
	}
	t := inTime.In(s.loc)
	if t.Hour() != s.lateHour {
		return t.Hour() > s.lateHour
	}
	return t.Minute() > s.lateMinute
}

// monthSpan returns the first and last days of a month.
func monthSpan(year int, month time.Month, loc *time.Location) (first, last time.Time) {
	first = time.Date(year, month, 1, 0, 0, 0, 0, loc)
	last = first.AddDate(0, 1, -1)
	return first, last
}

// classifyRange classifies a day span in bulk: three range queries instead of
// three lookups per day.
func (s *AttendanceServiceImpl) classifyRange(ctx context.Context, userID string, from, to time.Time) ([]attendance.DayClassification, error) {
	holidays, err := s.holidayRepo.ListBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	holidayByDay := make(map[string]holiday.Holiday, len(holidays))
	for _, h := range holidays {
		holidayByDay[h.Date.In(s.loc).Format("2006-01-02")] = h
	}

	leaves, err := s.leaveRepo.ListApprovedOverlapping(ctx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list leaves: %w", err)
	}

	records, err := s.attendanceRepo.ListByUserBetween(ctx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	recordByDay := make(map[string]attendance.Attendance, len(records))
	for _, r := range records {
		recordByDay[r.Date.In(s.loc).Format("2006-01-02")] = r
	}

	_, todayStart := s.today()

	var result []attendance.DayClassification
	for _, day := range calendar.ExpandRange(from, to) {
		key := day.Format("2006-01-02")
		c := attendance.DayClassification{Date: day}

		switch {
		case calendar.IsWeekOff(day):
			c.Status = attendance.DayHoliday
		case hasHoliday(holidayByDay, key):
			c.Status = attendance.DayHoliday
			c.HolidayName = holidayByDay[key].Name
		case coveringLeave(leaves, day) != nil:
			l := coveringLeave(leaves, day)
			c.Status = attendance.DayLeave
			c.LeaveType = l.Type
		default:
			if att, ok := recordByDay[key]; ok && att.Status == attendance.StatusPresent {
				c.Status = attendance.DayPresent
				c.LateMark = s.isLate(att.InTime)
			} else if ok && att.Status == attendance.StatusHalfDay {
				c.Status = attendance.DayHalfDay
			} else if day.Before(todayStart) {
				c.Status = attendance.DayAbsent
			} else {
				c.Status = attendance.DayUnmarked
			}
		}
		result = append(result, c)
	}
	return result, nil
}

func hasHoliday(m map[string]holiday.Holiday, key string) bool {
	_, ok := m[key]
	return ok
}

func coveringLeave(leaves []leave.LeaveRequest, day time.Time) *leave.LeaveRequest {
	for i := range leaves {
		if leaves[i].Covers(day) {
			return &leaves[i]
		}
	}
	return nil
}

// MonthView implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) MonthView(ctx context.Context, userID string, year int, month time.Month) ([]attendance.DayViewResponse, error) {
	first, last := monthSpan(year, month, s.loc)

	days, err := s.classifyRange(ctx, userID, first, last)
	if err != nil {
		return nil, err
	}

	result := make([]attendance.DayViewResponse, 0, len(days))
	for _, d := range days {
		result = append(result, attendance.DayViewResponse{
			Date:        d.Date.Format("2006-01-02"),
			Status:      d.Status,
			LeaveType:   d.LeaveType,
			HolidayName: d.HolidayName,
			LateMark:    d.LateMark,
		})
	}
	return result, nil
}

// MonthlyTotals implements attendance.AttendanceService. Only elapsed days
// count: the span ends at today for the current month, so unmarked future
// days never inflate the absent column.
func (s *AttendanceServiceImpl) MonthlyTotals(ctx context.Context, userID string, year int, month time.Month) (attendance.MonthlyTotalsResponse, error) {
	first, last := monthSpan(year, month, s.loc)

	_, todayStart := s.today()
	if last.After(todayStart) {
		last = todayStart
	}
	if last.Before(first) {
		return attendance.MonthlyTotalsResponse{}, nil
	}

	days, err := s.classifyRange(ctx, userID, first, last)
	if err != nil {
		return attendance.MonthlyTotalsResponse{}, err
	}

	var totals attendance.MonthlyTotalsResponse
	for _, d := range days {
		switch d.Status {
		case attendance.DayPresent, attendance.DayHalfDay:
			totals.Present++
			if d.LateMark {
				totals.Late++
			}
		case attendance.DayAbsent:
			totals.Absent++
		case attendance.DayLeave:
			totals.Leave++
		case attendance.DayHoliday:
			totals.Holiday++
		}
	}
	return totals, nil
}

// StatsSummary implements attendance.AttendanceService. Average hours are
// computed over Present records that have both punch times, formatted
// "{h}h {m}m".
func (s *AttendanceServiceImpl) StatsSummary(ctx context.Context, userID string) (attendance.StatsSummaryResponse, error) {
	records, err := s.attendanceRepo.ListByUser(ctx, userID)
	if err != nil {
		return attendance.StatsSummaryResponse{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	var present, late int
	var totalMinutes float64
	for _, r := range records {
		if r.Status != attendance.StatusPresent {
			continue
		}
		present++
		if s.isLate(r.InTime) {
			late++
		}
		if r.InTime != nil && r.OutTime != nil {
			totalMinutes += r.OutTime.Sub(*r.InTime).Minutes()
		}
	}

	avg := "0h 0m"
	if present > 0 {
		avgMinutes := int(totalMinutes) / present
		avg = fmt.Sprintf("%dh %dm", avgMinutes/60, avgMinutes%60)
	}

	return attendance.StatsSummaryResponse{
		AvgHours:    avg,
		PresentDays: present,
		LateMarks:   late,
	}, nil
}

// WeeklyDistribution implements attendance.AttendanceService. Buckets run
// Sun..Sat; each height is the bucket's share of the busiest day, and an
// empty history yields all zeros rather than a division by zero.
func (s *AttendanceServiceImpl) WeeklyDistribution(ctx context.Context, userID string) ([]attendance.WeeklyChartItem, error) {
	records, err := s.attendanceRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}

	var buckets [7]int
	for _, r := range records {
		buckets[int(r.Date.In(s.loc).Weekday())]++
	}

	max := 0
	for _, n := range buckets {
		if n > max {
			max = n
		}
	}

	days := [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	result := make([]attendance.WeeklyChartItem, 7)
	for i, n := range buckets {
		pct := 0
		if max > 0 {
			pct = n * 100 / max
		}
		result[i] = attendance.WeeklyChartItem{Day: days[i], Height: fmt.Sprintf("%d%%", pct)}
	}
	return result, nil
}

// ListMyAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListMyAttendance(ctx context.Context, userID string, yearMonth *string) ([]attendance.LogEntryResponse, error) {
	var records []attendance.Attendance
	var err error

	if yearMonth != nil && *yearMonth != "" {
		var first time.Time
		first, err = time.ParseInLocation("2006-01", *yearMonth, s.loc)
		if err != nil {
			return nil, fmt.Errorf("invalid month filter %q: %w", *yearMonth, err)
		}
		last := first.AddDate(0, 1, -1)
		records, err = s.attendanceRepo.ListByUserBetween(ctx, userID, first, last)
	} else {
		records, err = s.attendanceRepo.ListByUser(ctx, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}

	result := make([]attendance.LogEntryResponse, 0, len(records))
	for _, r := range records {
		duration := "--"
		if r.InTime != nil && r.OutTime != nil {
			mins := int(r.OutTime.Sub(*r.InTime).Minutes())
			duration = fmt.Sprintf("%dh %dm", mins/60, mins%60)
		}
		result = append(result, attendance.LogEntryResponse{
			ID:       r.ID,
			Date:     r.Date.In(s.loc).Format("2006-01-02"),
			Day:      r.Date.In(s.loc).Format("Mon"),
			Status:   r.Status,
			WorkMode: r.WorkMode,
			Duration: duration,
			InTime:   r.InTime,
			OutTime:  r.OutTime,
		})
	}
	return result, nil
}

// ListByDate implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListByDate(ctx context.Context, date time.Time, status *attendance.Status) ([]attendance.DailyRecordResponse, error) {
	day := calendar.DateOnly(date.In(s.loc))

	records, err := s.attendanceRepo.ListByDate(ctx, day, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance by date: %w", err)
	}

	result := make([]attendance.DailyRecordResponse, 0, len(records))
	for _, r := range records {
		row := attendance.DailyRecordResponse{
			ID:       r.ID,
			UserID:   r.UserID,
			Date:     r.Date.In(s.loc).Format("2006-01-02"),
			InTime:   r.InTime,
			OutTime:  r.OutTime,
			Status:   r.Status,
			WorkMode: r.WorkMode,
		}
		if r.UserName != nil {
			row.Name = *r.UserName
		}
		if r.UserDepartment != nil {
			row.Department = *r.UserDepartment
		}
		result = append(result, row)
	}
	return result, nil
}
