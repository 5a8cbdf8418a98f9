package attendance

import "time"

// WorkMode records where the person worked that day.
type WorkMode string

const (
	WorkModeOffice WorkMode = "WFO"
	WorkModeHome   WorkMode = "WFH"
	WorkModeField  WorkMode = "WFF"
)

func (m WorkMode) Valid() bool {
	switch m {
	case WorkModeOffice, WorkModeHome, WorkModeField:
		return true
	}
	return false
}

// Status is the stored per-record state. The richer per-day classification
// (holiday, leave, unmarked) is derived, never stored.
type Status string

const (
	StatusPresent Status = "Present"
	StatusAbsent  Status = "Absent"
	StatusHalfDay Status = "Half Day"
)

// Attendance is one person's record for one calendar day. At most one row
// exists per (UserID, Date); both the manual punch handler and the biometric
// sync job write through the same conditional upsert.
type Attendance struct {
	ID       string
	UserID   string
	Date     time.Time
	InTime   *time.Time
	OutTime  *time.Time
	Status   Status
	WorkMode WorkMode

	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined for HR listings
	UserName       *string
	UserDepartment *string
}

// DayStatus is the reconciled classification of a (user, day) pair.
type DayStatus string

const (
	DayPresent  DayStatus = "Present"
	DayAbsent   DayStatus = "Absent"
	DayHalfDay  DayStatus = "Half Day"
	DayHoliday  DayStatus = "Holiday"
	DayLeave    DayStatus = "Leave"
	DayUnmarked DayStatus = ""
)

// DayClassification is the engine's verdict for a single calendar day.
type DayClassification struct {
	Date        time.Time
	Status      DayStatus
	LeaveType   string // set when Status is DayLeave
	HolidayName string // set when an explicit holiday matched (empty for week-offs)
	LateMark    bool   // set when Status is DayPresent and in-time beat the threshold
}

// MonthlyTotals aggregates day classifications over the elapsed part of a month.
type MonthlyTotals struct {
	Present int
	Absent  int
	Leave   int
	Holiday int
	Late    int
}
