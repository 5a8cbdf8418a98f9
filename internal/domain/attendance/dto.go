package attendance

import (
	"time"
)

// PunchInRequest is the manual web punch-in payload.
type PunchInRequest struct {
	WorkMode string `json:"work_mode"`
}

func (r PunchInRequest) Validate() error {
	if !WorkMode(r.WorkMode).Valid() {
		return ErrInvalidWorkMode
	}
	return nil
}

// PunchStatusResponse reports today's punch state.
type PunchStatusResponse struct {
	InTime   *time.Time `json:"in_time"`
	OutTime  *time.Time `json:"out_time"`
	WorkMode *string    `json:"work_mode"`
}

// LogEntryResponse is one row of a personal attendance log listing.
type LogEntryResponse struct {
	ID       string     `json:"id"`
	Date     string     `json:"date"`
	Day      string     `json:"day"`
	Status   Status     `json:"status"`
	WorkMode WorkMode   `json:"work_mode"`
	Duration string     `json:"duration"`
	InTime   *time.Time `json:"in_time"`
	OutTime  *time.Time `json:"out_time"`
}

// DailyRecordResponse is one row of the HR per-day listing.
type DailyRecordResponse struct {
	ID         string     `json:"id"`
	UserID     string     `json:"user_id"`
	Name       string     `json:"name"`
	Department string     `json:"department,omitempty"`
	Date       string     `json:"date"`
	InTime     *time.Time `json:"in_time"`
	OutTime    *time.Time `json:"out_time"`
	Status     Status     `json:"status"`
	WorkMode   WorkMode   `json:"work_mode"`
}

// StatsSummaryResponse mirrors the employee stats card.
type StatsSummaryResponse struct {
	AvgHours    string `json:"avg_hours"`
	PresentDays int    `json:"present_days"`
	LateMarks   int    `json:"late_marks"`
}

// WeeklyChartItem is one Sun..Sat bucket, Height normalized to the busiest day.
type WeeklyChartItem struct {
	Day    string `json:"day"`
	Height string `json:"height"`
}

// DayViewResponse is one classified day of a month view.
type DayViewResponse struct {
	Date        string    `json:"date"`
	Status      DayStatus `json:"status"`
	LeaveType   string    `json:"leave_type,omitempty"`
	HolidayName string    `json:"holiday_name,omitempty"`
	LateMark    bool      `json:"late_mark,omitempty"`
}

// MonthlyTotalsResponse sums day classifications for the elapsed month.
type MonthlyTotalsResponse struct {
	Present int `json:"present"`
	Absent  int `json:"absent"`
	Leave   int `json:"leave"`
	Holiday int `json:"holiday"`
	Late    int `json:"late"`
}
