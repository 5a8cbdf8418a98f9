package leave

import "errors"

var (
	ErrLeaveNotFound        = errors.New("leave request not found")
	ErrInvalidDateRange     = errors.New("from date must not be after to date")
	ErrMissingFields        = errors.New("missing required fields")
	ErrAlreadyProcessed     = errors.New("leave request already processed")
	ErrEntitlementNotFound  = errors.New("leave entitlement not configured")
)
