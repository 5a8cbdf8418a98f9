package leave

import (
	"context"
	"time"
)

// LeaveRepository defines data access for leave requests.
type LeaveRepository interface {
	Create(ctx context.Context, req LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	Update(ctx context.Context, req LeaveRequest) error
	Delete(ctx context.Context, id string) error

	// ListByUser returns the user's requests, newest first.
	ListByUser(ctx context.Context, userID string) ([]LeaveRequest, error)

	// ListAll returns every request joined with requester name and email,
	// newest first. Used by the HR approval board.
	ListAll(ctx context.Context) ([]LeaveRequest, error)

	// GetApprovedCovering finds an approved request whose interval contains
	// the given day, nil when none does. The adjuster's conflict probe.
	GetApprovedCovering(ctx context.Context, userID string, day time.Time) (*LeaveRequest, error)

	// ListApprovedByUser returns approved requests, optionally restricted
	// to one leave type.
	ListApprovedByUser(ctx context.Context, userID string, leaveType *string) ([]LeaveRequest, error)

	// ListApprovedOverlapping returns approved requests whose interval
	// intersects [from, to]. Feeds month classification.
	ListApprovedOverlapping(ctx context.Context, userID string, from, to time.Time) ([]LeaveRequest, error)
}

// EntitlementRepository reads the company-wide leave policy singleton.
type EntitlementRepository interface {
	Get(ctx context.Context) (Entitlement, error)
}
