package leave

import "time"

// ApplyRequest is the employee leave application payload. Dates are
// "YYYY-MM-DD".
type ApplyRequest struct {
	Type     string `json:"type"`
	FromDate string `json:"from_date"`
	ToDate   string `json:"to_date"`
	Reason   string `json:"reason"`
}

func (r ApplyRequest) Validate() error {
	if r.Type == "" || r.FromDate == "" || r.ToDate == "" {
		return ErrMissingFields
	}
	return nil
}

// RequestResponse is the common leave request representation.
type RequestResponse struct {
	ID           string        `json:"id"`
	UserID       string        `json:"user_id"`
	UserName     string        `json:"user_name,omitempty"`
	UserEmail    string        `json:"user_email,omitempty"`
	Type         string        `json:"type"`
	FromDate     string        `json:"from_date"`
	ToDate       string        `json:"to_date"`
	Days         int           `json:"days"`
	Status       Status        `json:"status"`
	Reason       string        `json:"reason,omitempty"`
	CurrentLevel ApprovalLevel `json:"current_level"`
	CreatedAt    time.Time     `json:"created_at"`
}

// BalanceResponse is one leave-type balance line.
type BalanceResponse struct {
	Type  string `json:"type"`
	Total int    `json:"total"`
	Used  int    `json:"used"`
}

// StatsResponse is the dashboard leave usage ring.
type StatsResponse struct {
	Used      int              `json:"used"`
	Total     int              `json:"total"`
	Breakdown EntitlementBreak `json:"breakdown"`
}

type EntitlementBreak struct {
	Paid   int `json:"paid"`
	Sick   int `json:"sick"`
	Casual int `json:"casual"`
}
