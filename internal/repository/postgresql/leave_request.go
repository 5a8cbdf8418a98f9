package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/nimbus-hr/hrms-backend-go/internal/domain/leave"
	"github.com/nimbus-hr/hrms-backend-go/internal/pkg/database"
)

type leaveRepository struct {
	db *database.DB
}

func NewLeaveRepository(db *database.DB) leave.LeaveRepository {
	return &leaveRepository{db: db}
}

const leaveColumns = `id, user_id, type, from_date, to_date, status, reason,
	lead_approval, hr_approval, director_approval, current_level, created_at, updated_at`

func scanLeave(row pgx.Row) (leave.LeaveRequest, error) {
	var l leave.LeaveRequest
	err := row.Scan(
		&l.ID, &l.UserID, &l.Type, &l.FromDate, &l.ToDate, &l.Status, &l.Reason,
		&l.LeadApproval, &l.HRApproval, &l.DirectorApproval, &l.CurrentLevel,
		&l.CreatedAt, &l.UpdatedAt,
	)
	return l, err
}

// Create implements leave.LeaveRepository.
func (r *leaveRepository) Create(ctx context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (
			user_id, type, from_date, to_date, status, reason,
			lead_approval, hr_approval, director_approval, current_level
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		req.UserID, req.Type, req.FromDate, req.ToDate, req.Status, req.Reason,
		req.LeadApproval, req.HRApproval, req.DirectorApproval, req.CurrentLevel,
	).Scan(&req.ID, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return req, nil
}

// GetByID implements leave.LeaveRepository.
func (r *leaveRepository) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	l, err := scanLeave(q.QueryRow(ctx,
		`SELECT `+leaveColumns+` FROM leave_requests WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave request: %w", err)
	}
	return l, nil
}

// Update implements leave.LeaveRepository.
func (r *leaveRepository) Update(ctx context.Context, req leave.LeaveRequest) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE leave_requests
		SET type = $2, from_date = $3, to_date = $4, status = $5, reason = $6,
			lead_approval = $7, hr_approval = $8, director_approval = $9,
			current_level = $10, updated_at = NOW()
		WHERE id = $1
	`,
		req.ID, req.Type, req.FromDate, req.ToDate, req.Status, req.Reason,
		req.LeadApproval, req.HRApproval, req.DirectorApproval, req.CurrentLevel,
	)
	if err != nil {
		return fmt.Errorf("failed to update leave request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveNotFound
	}
	return nil
}

// Delete implements leave.LeaveRepository.
func (r *leaveRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM leave_requests WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete leave request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveNotFound
	}
	return nil
}

// ListByUser implements leave.LeaveRepository.
func (r *leaveRepository) ListByUser(ctx context.Context, userID string) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT `+leaveColumns+`
		FROM leave_requests
		WHERE user_id = $1
		ORDER BY from_date DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests by user: %w", err)
	}
	defer rows.Close()

	return collectLeaves(rows)
}

// ListAll implements leave.LeaveRepository.
func (r *leaveRepository) ListAll(ctx context.Context) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT l.id, l.user_id, l.type, l.from_date, l.to_date, l.status, l.reason,
			   l.lead_approval, l.hr_approval, l.director_approval, l.current_level,
			   l.created_at, l.updated_at, u.name, u.email
		FROM leave_requests l
		JOIN users u ON u.id = l.user_id
		ORDER BY l.created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	defer rows.Close()

	var result []leave.LeaveRequest
	for rows.Next() {
		var l leave.LeaveRequest
		if err := rows.Scan(
			&l.ID, &l.UserID, &l.Type, &l.FromDate, &l.ToDate, &l.Status, &l.Reason,
			&l.LeadApproval, &l.HRApproval, &l.DirectorApproval, &l.CurrentLevel,
			&l.CreatedAt, &l.UpdatedAt, &l.UserName, &l.UserEmail,
		); err != nil {
			return nil, fmt.Errorf("failed to scan leave row: %w", err)
		}
		result = append(result, l)
	}
	return result, rows.Err()
}

// GetApprovedCovering implements leave.LeaveRepository. Interval containment
// is checked at date precision; from_date and to_date are DATE columns.
func (r *leaveRepository) GetApprovedCovering(ctx context.Context, userID string, day time.Time) (*leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	l, err := scanLeave(q.QueryRow(ctx, `
		SELECT `+leaveColumns+`
		FROM leave_requests
		WHERE user_id = $1
		  AND status = $2
		  AND from_date <= $3
		  AND to_date >= $3
		LIMIT 1
	`, userID, leave.StatusApproved, day))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // no approved leave covers that day
		}
		return nil, fmt.Errorf("failed to get covering leave: %w", err)
	}

	return &l, nil
}

// ListApprovedByUser implements leave.LeaveRepository.
func (r *leaveRepository) ListApprovedByUser(ctx context.Context, userID string, leaveType *string) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveColumns + `
		FROM leave_requests
		WHERE user_id = $1 AND status = $2
	`
	args := []interface{}{userID, leave.StatusApproved}
	if leaveType != nil {
		query += ` AND type = $3`
		args = append(args, *leaveType)
	}
	query += ` ORDER BY from_date DESC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list approved leave requests: %w", err)
	}
	defer rows.Close()

	return collectLeaves(rows)
}

// ListApprovedOverlapping implements leave.LeaveRepository.
func (r *leaveRepository) ListApprovedOverlapping(ctx context.Context, userID string, from, to time.Time) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT `+leaveColumns+`
		FROM leave_requests
		WHERE user_id = $1
		  AND status = $2
		  AND from_date <= $4
		  AND to_date >= $3
		ORDER BY from_date ASC
	`, userID, leave.StatusApproved, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list overlapping leave requests: %w", err)
	}
	defer rows.Close()

	return collectLeaves(rows)
}

func collectLeaves(rows pgx.Rows) ([]leave.LeaveRequest, error) {
	var result []leave.LeaveRequest
	for rows.Next() {
		l, err := scanLeave(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave row: %w", err)
		}
		result = append(result, l)
	}
	return result, rows.Err()
}
