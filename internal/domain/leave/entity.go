package leave

import "time"

type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
)

// ApprovalLevel tracks where a request sits in the Team Lead -> HR -> Director
// chain. Completed means no further decision is pending.
type ApprovalLevel string

const (
	LevelTeamLead  ApprovalLevel = "Team Lead"
	LevelHR        ApprovalLevel = "HR"
	LevelDirector  ApprovalLevel = "Director"
	LevelCompleted ApprovalLevel = "Completed"
)

// StageDecision is the per-stage marker value.
type StageDecision string

const (
	StagePending  StageDecision = "Pending"
	StageApproved StageDecision = "Approved"
	StageRejected StageDecision = "Rejected"
)

// LeaveRequest is an inclusive [FromDate, ToDate] leave interval at date-only
// precision. Besides the normal request workflow it can be mutated by the
// auto-leave adjuster, which shrinks, splits or deletes it when attendance
// contradicts it.
type LeaveRequest struct {
	ID       string
	UserID   string
	Type     string
	FromDate time.Time
	ToDate   time.Time
	Status   Status
	Reason   string

	LeadApproval     StageDecision
	HRApproval       StageDecision
	DirectorApproval StageDecision
	CurrentLevel     ApprovalLevel

	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined for HR listings
	UserName  *string
	UserEmail *string
}

// Covers reports whether the request's interval contains the given day,
// compared at day granularity.
func (l LeaveRequest) Covers(day time.Time) bool {
	d := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	from := time.Date(l.FromDate.Year(), l.FromDate.Month(), l.FromDate.Day(), 0, 0, 0, 0, day.Location())
	to := time.Date(l.ToDate.Year(), l.ToDate.Month(), l.ToDate.Day(), 0, 0, 0, 0, day.Location())
	return !d.Before(from) && !d.After(to)
}

// Entitlement is the company-wide yearly leave policy singleton.
type Entitlement struct {
	PaidLeave   int
	SickLeave   int
	CasualLeave int
}

// Total returns the combined yearly entitlement.
func (e Entitlement) Total() int {
	return e.PaidLeave + e.SickLeave + e.CasualLeave
}

// Standard leave categories matching the entitlement breakdown.
const (
	TypePaid   = "Paid Leave"
	TypeSick   = "Sick Leave"
	TypeCasual = "Casual Leave"
)
