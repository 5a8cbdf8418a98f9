// Package autoleave reconciles approved leave against actual attendance.
// When someone shows up on a day their approved leave covers, the leave
// interval is trimmed so the day counts from attendance, not from leave.
package autoleave

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nimbus-hr/hrms-backend-go/internal/domain/attendance"
	"github.com/nimbus-hr/hrms-backend-go/internal/domain/leave"
	"github.com/nimbus-hr/hrms-backend-go/internal/pkg/calendar"
	"github.com/nimbus-hr/hrms-backend-go/internal/pkg/jobs"
)

// TxRunner executes fn atomically. The production wiring runs fn inside a
// database transaction; tests pass a pass-through.
type TxRunner func(ctx context.Context, fn func(ctx context.Context) error) error

// Trigger is the queue payload: one (user, day) pair to reconcile.
type Trigger struct {
	UserID string
	Day    time.Time
}

// Adjuster shrinks, splits or deletes approved leave requests that conflict
// with a worked day.
type Adjuster struct {
	attendanceRepo attendance.AttendanceRepository
	leaveRepo      leave.LeaveRepository
	runTx          TxRunner
	loc            *time.Location
}

func NewAdjuster(
	attendanceRepo attendance.AttendanceRepository,
	leaveRepo leave.LeaveRepository,
	runTx TxRunner,
	loc *time.Location,
) *Adjuster {
	if runTx == nil {
		runTx = func(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }
	}
	if loc == nil {
		loc = time.Local
	}
	return &Adjuster{
		attendanceRepo: attendanceRepo,
		leaveRepo:      leaveRepo,
		runTx:          runTx,
		loc:            loc,
	}
}

// ReconcileDay checks whether the user has a Present record on a day covered
// by approved leave and, if so, carves that day out of the leave interval.
// Four shapes:
//
//	single-day request        -> deleted
//	day is the first of many  -> interval starts the day after
//	day is the last of many   -> interval ends the day before
//	day falls in the middle   -> interval split in two around it
//
// A split preserves the type, reason, status and approval trail on both
// halves. Re-running after an adjustment is a no-op: the day is no longer
// covered.
func (a *Adjuster) ReconcileDay(ctx context.Context, userID string, day time.Time) error {
	day = calendar.DateOnly(day.In(a.loc))

	att, err := a.attendanceRepo.GetByUserAndDate(ctx, userID, day)
	if err != nil {
		return fmt.Errorf("failed to read attendance: %w", err)
	}
	if att == nil || att.Status != attendance.StatusPresent {
		return nil
	}

	req, err := a.leaveRepo.GetApprovedCovering(ctx, userID, day)
	if err != nil {
		return fmt.Errorf("failed to find covering leave: %w", err)
	}
	if req == nil {
		return nil
	}

	from := calendar.DateOnly(req.FromDate.In(a.loc))
	to := calendar.DateOnly(req.ToDate.In(a.loc))

	return a.runTx(ctx, func(ctx context.Context) error {
		switch {
		case calendar.SameDay(from, day) && calendar.SameDay(to, day):
			if err := a.leaveRepo.Delete(ctx, req.ID); err != nil {
				return fmt.Errorf("failed to delete leave %s: %w", req.ID, err)
			}
			slog.Info("Auto-leave: removed single-day request", "user_id", userID, "leave_id", req.ID, "day", day.Format("2006-01-02"))

		case calendar.SameDay(from, day):
			updated := *req
			updated.FromDate = day.AddDate(0, 0, 1)
			if err := a.leaveRepo.Update(ctx, updated); err != nil {
				return fmt.Errorf("failed to shrink leave %s: %w", req.ID, err)
			}
			slog.Info("Auto-leave: moved start forward", "user_id", userID, "leave_id", req.ID, "from", updated.FromDate.Format("2006-01-02"))

		case calendar.SameDay(to, day):
			updated := *req
			updated.ToDate = day.AddDate(0, 0, -1)
			if err := a.leaveRepo.Update(ctx, updated); err != nil {
				return fmt.Errorf("failed to shrink leave %s: %w", req.ID, err)
			}
			slog.Info("Auto-leave: moved end backward", "user_id", userID, "leave_id", req.ID, "to", updated.ToDate.Format("2006-01-02"))

		default:
			front := *req
			front.ToDate = day.AddDate(0, 0, -1)
			if err := a.leaveRepo.Update(ctx, front); err != nil {
				return fmt.Errorf("failed to split leave %s: %w", req.ID, err)
			}

			back := leave.LeaveRequest{
				UserID:           req.UserID,
				Type:             req.Type,
				FromDate:         day.AddDate(0, 0, 1),
				ToDate:           to,
				Status:           req.Status,
				Reason:           req.Reason,
				LeadApproval:     req.LeadApproval,
				HRApproval:       req.HRApproval,
				DirectorApproval: req.DirectorApproval,
				CurrentLevel:     req.CurrentLevel,
			}
			if _, err := a.leaveRepo.Create(ctx, back); err != nil {
				return fmt.Errorf("failed to create split remainder for leave %s: %w", req.ID, err)
			}
			slog.Info("Auto-leave: split request around worked day", "user_id", userID, "leave_id", req.ID, "day", day.Format("2006-01-02"))
		}
		return nil
	})
}

// HandleJob adapts ReconcileDay to the background queue.
func (a *Adjuster) HandleJob(ctx context.Context, job jobs.Job) error {
	trigger, ok := job.Payload.(Trigger)
	if !ok {
		return fmt.Errorf("unexpected payload type %T for job %s", job.Payload, job.ID)
	}
	return a.ReconcileDay(ctx, trigger.UserID, trigger.Day)
}
