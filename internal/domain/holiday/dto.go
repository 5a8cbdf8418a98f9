package holiday

// CreateRequest is the admin holiday creation payload. Date is "YYYY-MM-DD".
type CreateRequest struct {
	Name              string `json:"name"`
	Date              string `json:"date"`
	Type              string `json:"type"`
	LeaveDaysConsumed int    `json:"leave_days_consumed"`
}

func (r CreateRequest) Validate() error {
	if r.Name == "" || r.Date == "" {
		return ErrMissingFields
	}
	if r.Type != "" && Type(r.Type) != TypeMandatory && Type(r.Type) != TypeOptional {
		return ErrInvalidType
	}
	return nil
}

// Response is the holiday representation returned to clients.
type Response struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Date              string `json:"date"`
	Weekday           string `json:"weekday"`
	Type              Type   `json:"type"`
	LeaveDaysConsumed int    `json:"leave_days_consumed"`
}
