package leave

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nimbus-hr/hrms-backend-go/internal/domain/leave"
)

type memLeaveRepo struct {
	leaves []leave.LeaveRequest
	nextID int
}

func (m *memLeaveRepo) Create(_ context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	m.nextID++
	req.ID = fmt.Sprintf("leave-%d", m.nextID)
	req.CreatedAt = time.Now()
	m.leaves = append(m.leaves, req)
	return req, nil
}

func (m *memLeaveRepo) GetByID(_ context.Context, id string) (leave.LeaveRequest, error) {
	for _, l := range m.leaves {
		if l.ID == id {
			return l, nil
		}
	}
	return leave.LeaveRequest{}, leave.ErrLeaveNotFound
}

func (m *memLeaveRepo) Update(_ context.Context, req leave.LeaveRequest) error {
	for i := range m.leaves {
		if m.leaves[i].ID == req.ID {
			m.leaves[i] = req
			return nil
		}
	}
	return leave.ErrLeaveNotFound
}

func (m *memLeaveRepo) Delete(_ context.Context, id string) error {
	for i := range m.leaves {
		if m.leaves[i].ID == id {
			m.leaves = append(m.leaves[:i], m.leaves[i+1:]...)
			return nil
		}
	}
	return leave.ErrLeaveNotFound
}

func (m *memLeaveRepo) ListByUser(_ context.Context, userID string) ([]leave.LeaveRequest, error) {
	var result []leave.LeaveRequest
	for _, l := range m.leaves {
		if l.UserID == userID {
			result = append(result, l)
		}
	}
	return result, nil
}

func (m *memLeaveRepo) ListAll(context.Context) ([]leave.LeaveRequest, error) {
	return append([]leave.LeaveRequest(nil), m.leaves...), nil
}

func (m *memLeaveRepo) GetApprovedCovering(_ context.Context, userID string, day time.Time) (*leave.LeaveRequest, error) {
	for i := range m.leaves {
		l := m.leaves[i]
		if l.UserID == userID && l.Status == leave.StatusApproved && l.Covers(day) {
			return &l, nil
		}
	}
	return nil, nil
}

func (m *memLeaveRepo) ListApprovedByUser(_ context.Context, userID string, leaveType *string) ([]leave.LeaveRequest, error) {
	var result []leave.LeaveRequest
	for _, l := range m.leaves {
		if l.UserID != userID || l.Status != leave.StatusApproved {
			continue
		}
		if leaveType != nil && l.Type != *leaveType {
			continue
		}
		result = append(result, l)
	}
	return result, nil
}

func (m *memLeaveRepo) ListApprovedOverlapping(_ context.Context, userID string, from, to time.Time) ([]leave.LeaveRequest, error) {
	var result []leave.LeaveRequest
	for _, l := range m.leaves {
		if l.UserID == userID && l.Status == leave.StatusApproved &&
			!l.FromDate.After(to) && !l.ToDate.Before(from) {
			result = append(result, l)
		}
	}
	return result, nil
}

type memEntitlementRepo struct{}

func (memEntitlementRepo) Get(context.Context) (leave.Entitlement, error) {
	return leave.Entitlement{PaidLeave: 12, SickLeave: 8, CasualLeave: 5}, nil
}

func newTestService() (*LeaveServiceImpl, *memLeaveRepo) {
	repo := &memLeaveRepo{}
	return NewLeaveService(repo, memEntitlementRepo{}, time.UTC), repo
}

func TestApply_CreatesPendingRequest(t *testing.T) {
	svc, repo := newTestService()

	resp, err := svc.Apply(context.Background(), "u1", leave.ApplyRequest{
		Type:     leave.TypePaid,
		FromDate: "2025-06-10",
		ToDate:   "2025-06-12",
		Reason:   "travel",
	})
	require.NoError(t, err)

	assert.Equal(t, leave.StatusPending, resp.Status)
	assert.Equal(t, leave.LevelTeamLead, resp.CurrentLevel)
	assert.Equal(t, 3, resp.Days)
	assert.Equal(t, "2025-06-10", resp.FromDate)

	require.Len(t, repo.leaves, 1)
	assert.Equal(t, leave.StagePending, repo.leaves[0].LeadApproval)
}

func TestApply_Validation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Apply(ctx, "u1", leave.ApplyRequest{Type: leave.TypePaid, FromDate: "2025-06-10"})
	assert.ErrorIs(t, err, leave.ErrMissingFields)

	_, err = svc.Apply(ctx, "u1", leave.ApplyRequest{
		Type: leave.TypePaid, FromDate: "2025-06-12", ToDate: "2025-06-10",
	})
	assert.ErrorIs(t, err, leave.ErrInvalidDateRange)

	_, err = svc.Apply(ctx, "u1", leave.ApplyRequest{
		Type: leave.TypePaid, FromDate: "12-06-2025", ToDate: "2025-06-12",
	})
	assert.Error(t, err)
}

func TestApprove_WalksTheChain(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Apply(ctx, "u1", leave.ApplyRequest{
		Type: leave.TypeSick, FromDate: "2025-06-10", ToDate: "2025-06-10",
	})
	require.NoError(t, err)

	resp, err := svc.Approve(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, leave.LevelHR, resp.CurrentLevel)
	assert.Equal(t, leave.StatusPending, resp.Status)

	resp, err = svc.Approve(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, leave.LevelDirector, resp.CurrentLevel)
	assert.Equal(t, leave.StatusPending, resp.Status)

	resp, err = svc.Approve(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, leave.LevelCompleted, resp.CurrentLevel)
	assert.Equal(t, leave.StatusApproved, resp.Status)

	// a completed request cannot be approved again
	_, err = svc.Approve(ctx, created.ID)
	assert.ErrorIs(t, err, leave.ErrAlreadyProcessed)
}

func TestReject_EndsTheChain(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	created, err := svc.Apply(ctx, "u1", leave.ApplyRequest{
		Type: leave.TypeCasual, FromDate: "2025-06-10", ToDate: "2025-06-11",
	})
	require.NoError(t, err)

	_, err = svc.Approve(ctx, created.ID)
	require.NoError(t, err)

	resp, err := svc.Reject(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, leave.StatusRejected, resp.Status)
	assert.Equal(t, leave.LevelCompleted, resp.CurrentLevel)

	stored, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, leave.StageApproved, stored.LeadApproval)
	assert.Equal(t, leave.StageRejected, stored.HRApproval)

	_, err = svc.Reject(ctx, created.ID)
	assert.ErrorIs(t, err, leave.ErrAlreadyProcessed)
}

func TestBalances_CountsApprovedDaysPerType(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	repo.leaves = append(repo.leaves,
		leave.LeaveRequest{
			ID: "l1", UserID: "u1", Type: leave.TypePaid,
			FromDate: time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
			ToDate:   time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC),
			Status:   leave.StatusApproved,
		},
		leave.LeaveRequest{
			ID: "l2", UserID: "u1", Type: leave.TypeSick,
			FromDate: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
			ToDate:   time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
			Status:   leave.StatusApproved,
		},
		leave.LeaveRequest{
			ID: "l3", UserID: "u1", Type: leave.TypePaid,
			FromDate: time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
			ToDate:   time.Date(2025, 8, 5, 0, 0, 0, 0, time.UTC),
			Status:   leave.StatusPending,
		},
	)

	balances, err := svc.Balances(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, balances, 3)

	byType := map[string]leave.BalanceResponse{}
	for _, b := range balances {
		byType[b.Type] = b
	}
	assert.Equal(t, 3, byType[leave.TypePaid].Used)
	assert.Equal(t, 12, byType[leave.TypePaid].Total)
	assert.Equal(t, 1, byType[leave.TypeSick].Used)
	assert.Equal(t, 0, byType[leave.TypeCasual].Used)
}

func TestStats_SumsAllApprovedDays(t *testing.T) {
	svc, repo := newTestService()

	repo.leaves = append(repo.leaves, leave.LeaveRequest{
		ID: "l1", UserID: "u1", Type: leave.TypePaid,
		FromDate: time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		ToDate:   time.Date(2025, 6, 13, 0, 0, 0, 0, time.UTC),
		Status:   leave.StatusApproved,
	})

	stats, err := svc.Stats(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 4, stats.Used)
	assert.Equal(t, 25, stats.Total)
	assert.Equal(t, 12, stats.Breakdown.Paid)
}
