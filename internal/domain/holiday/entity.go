package holiday

import "time"

type Type string

const (
	TypeMandatory Type = "Mandatory"
	TypeOptional  Type = "Optional"
)

// Holiday is a company-wide non-working date. Weekday is derived from Date at
// creation; LeaveDaysConsumed is how many leave days observing it costs
// (mandatory holidays usually cost none).
type Holiday struct {
	ID                string
	Name              string
	Date              time.Time
	Weekday           string
	Type              Type
	LeaveDaysConsumed int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
