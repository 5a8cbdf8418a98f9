// Package leave implements the leave request workflow: application, the
// staged approval chain and balance accounting.
package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/nimbus-hr/hrms-backend-go/internal/domain/leave"
	"github.com/nimbus-hr/hrms-backend-go/internal/pkg/calendar"
)

// LeaveServiceImpl manages leave requests and the entitlement ledger.
type LeaveServiceImpl struct {
	leaveRepo       leave.LeaveRepository
	entitlementRepo leave.EntitlementRepository
	loc             *time.Location
}

func NewLeaveService(
	leaveRepo leave.LeaveRepository,
	entitlementRepo leave.EntitlementRepository,
	loc *time.Location,
) *LeaveServiceImpl {
	if loc == nil {
		loc = time.Local
	}
	return &LeaveServiceImpl{
		leaveRepo:       leaveRepo,
		entitlementRepo: entitlementRepo,
		loc:             loc,
	}
}

// Apply files a new leave request. It enters the approval chain at the Team
// Lead stage with every stage pending.
func (s *LeaveServiceImpl) Apply(ctx context.Context, userID string, req leave.ApplyRequest) (leave.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.RequestResponse{}, err
	}

	from, err := time.ParseInLocation("2006-01-02", req.FromDate, s.loc)
	if err != nil {
		return leave.RequestResponse{}, fmt.Errorf("invalid from date %q: %w", req.FromDate, err)
	}
	to, err := time.ParseInLocation("2006-01-02", req.ToDate, s.loc)
	if err != nil {
		return leave.RequestResponse{}, fmt.Errorf("invalid to date %q: %w", req.ToDate, err)
	}
	if from.After(to) {
		return leave.RequestResponse{}, leave.ErrInvalidDateRange
	}

	created, err := s.leaveRepo.Create(ctx, leave.LeaveRequest{
		UserID:           userID,
		Type:             req.Type,
		FromDate:         from,
		ToDate:           to,
		Status:           leave.StatusPending,
		Reason:           req.Reason,
		LeadApproval:     leave.StagePending,
		HRApproval:       leave.StagePending,
		DirectorApproval: leave.StagePending,
		CurrentLevel:     leave.LevelTeamLead,
	})
	if err != nil {
		return leave.RequestResponse{}, fmt.Errorf("failed to create leave request: %w", err)
	}
	return s.toResponse(created), nil
}

// History returns the user's requests, newest first.
func (s *LeaveServiceImpl) History(ctx context.Context, userID string) ([]leave.RequestResponse, error) {
	requests, err := s.leaveRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	return s.toResponses(requests), nil
}

// ListAll returns every request for the approval board, newest first.
func (s *LeaveServiceImpl) ListAll(ctx context.Context) ([]leave.RequestResponse, error) {
	requests, err := s.leaveRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	return s.toResponses(requests), nil
}

// Balances returns per-type usage against the company entitlement. Days are
// counted over approved requests only; pending requests reserve nothing.
func (s *LeaveServiceImpl) Balances(ctx context.Context, userID string) ([]leave.BalanceResponse, error) {
	ent, err := s.entitlementRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load entitlement: %w", err)
	}

	lines := []struct {
		leaveType string
		total     int
	}{
		{leave.TypePaid, ent.PaidLeave},
		{leave.TypeSick, ent.SickLeave},
		{leave.TypeCasual, ent.CasualLeave},
	}

	result := make([]leave.BalanceResponse, 0, len(lines))
	for _, line := range lines {
		used, err := s.usedDays(ctx, userID, &line.leaveType)
		if err != nil {
			return nil, err
		}
		result = append(result, leave.BalanceResponse{Type: line.leaveType, Total: line.total, Used: used})
	}
	return result, nil
}

// Stats feeds the dashboard usage ring.
func (s *LeaveServiceImpl) Stats(ctx context.Context, userID string) (leave.StatsResponse, error) {
	ent, err := s.entitlementRepo.Get(ctx)
	if err != nil {
		return leave.StatsResponse{}, fmt.Errorf("failed to load entitlement: %w", err)
	}

	used, err := s.usedDays(ctx, userID, nil)
	if err != nil {
		return leave.StatsResponse{}, err
	}

	return leave.StatsResponse{
		Used:  used,
		Total: ent.Total(),
		Breakdown: leave.EntitlementBreak{
			Paid:   ent.PaidLeave,
			Sick:   ent.SickLeave,
			Casual: ent.CasualLeave,
		},
	}, nil
}

// Approve records an approval at the request's current stage and advances the
// chain. The final stage flips the request to Approved.
func (s *LeaveServiceImpl) Approve(ctx context.Context, id string) (leave.RequestResponse, error) {
	req, err := s.leaveRepo.GetByID(ctx, id)
	if err != nil {
		return leave.RequestResponse{}, err
	}
	if req.Status != leave.StatusPending {
		return leave.RequestResponse{}, leave.ErrAlreadyProcessed
	}

	switch req.CurrentLevel {
	case leave.LevelTeamLead:
		req.LeadApproval = leave.StageApproved
		req.CurrentLevel = leave.LevelHR
	case leave.LevelHR:
		req.HRApproval = leave.StageApproved
		req.CurrentLevel = leave.LevelDirector
	case leave.LevelDirector:
		req.DirectorApproval = leave.StageApproved
		req.CurrentLevel = leave.LevelCompleted
		req.Status = leave.StatusApproved
	default:
		return leave.RequestResponse{}, leave.ErrAlreadyProcessed
	}

	if err := s.leaveRepo.Update(ctx, req); err != nil {
		return leave.RequestResponse{}, fmt.Errorf("failed to update leave request: %w", err)
	}
	return s.toResponse(req), nil
}

// Reject ends the chain at the current stage.
func (s *LeaveServiceImpl) Reject(ctx context.Context, id string) (leave.RequestResponse, error) {
	req, err := s.leaveRepo.GetByID(ctx, id)
	if err != nil {
		return leave.RequestResponse{}, err
	}
	if req.Status != leave.StatusPending {
		return leave.RequestResponse{}, leave.ErrAlreadyProcessed
	}

	switch req.CurrentLevel {
	case leave.LevelTeamLead:
		req.LeadApproval = leave.StageRejected
	case leave.LevelHR:
		req.HRApproval = leave.StageRejected
	case leave.LevelDirector:
		req.DirectorApproval = leave.StageRejected
	default:
		return leave.RequestResponse{}, leave.ErrAlreadyProcessed
	}
	req.Status = leave.StatusRejected
	req.CurrentLevel = leave.LevelCompleted

	if err := s.leaveRepo.Update(ctx, req); err != nil {
		return leave.RequestResponse{}, fmt.Errorf("failed to update leave request: %w", err)
	}
	return s.toResponse(req), nil
}

func (s *LeaveServiceImpl) usedDays(ctx context.Context, userID string, leaveType *string) (int, error) {
	requests, err := s.leaveRepo.ListApprovedByUser(ctx, userID, leaveType)
	if err != nil {
		return 0, fmt.Errorf("failed to list approved leave: %w", err)
	}
	used := 0
	for _, r := range requests {
		used += calendar.DaysInclusive(r.FromDate, r.ToDate)
	}
	return used, nil
}

func (s *LeaveServiceImpl) toResponse(req leave.LeaveRequest) leave.RequestResponse {
	resp := leave.RequestResponse{
		ID:           req.ID,
		UserID:       req.UserID,
		Type:         req.Type,
		FromDate:     req.FromDate.In(s.loc).Format("2006-01-02"),
		ToDate:       req.ToDate.In(s.loc).Format("2006-01-02"),
		Days:         calendar.DaysInclusive(req.FromDate, req.ToDate),
		Status:       req.Status,
		Reason:       req.Reason,
		CurrentLevel: req.CurrentLevel,
		CreatedAt:    req.CreatedAt,
	}
	if req.UserName != nil {
		resp.UserName = *req.UserName
	}
	if req.UserEmail != nil {
		resp.UserEmail = *req.UserEmail
	}
	return resp
}

func (s *LeaveServiceImpl) toResponses(requests []leave.LeaveRequest) []leave.RequestResponse {
	result := make([]leave.RequestResponse, 0, len(requests))
	for _, r := range requests {
		result = append(result, s.toResponse(r))
	}
	return result
}
