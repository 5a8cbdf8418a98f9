package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/nimbus-hr/hrms-backend-go/internal/domain/attendance"
	"github.com/nimbus-hr/hrms-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

// InsertDay implements attendance.AttendanceRepository. The unique index on
// (user_id, date) makes this the single conditional-create primitive both
// writers share; a conflicting insert is reported, not errored.
func (a *attendanceRepository) InsertDay(ctx context.Context, att attendance.Attendance) (bool, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendances (user_id, date, in_time, out_time, status, work_mode)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, date) DO NOTHING
	`

	tag, err := q.Exec(ctx, query,
		att.UserID,
		att.Date,
		att.InTime,
		att.OutTime,
		att.Status,
		att.WorkMode,
	)
	if err != nil {
		return false, fmt.Errorf("failed to insert attendance day: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}

// SetOutTime implements attendance.AttendanceRepository.
func (a *attendanceRepository) SetOutTime(ctx context.Context, userID string, date time.Time, out time.Time, overwrite bool) (bool, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances
		SET out_time = $3, updated_at = NOW()
		WHERE user_id = $1 AND date = $2
	`
	if !overwrite {
		query += ` AND out_time IS NULL`
	}

	tag, err := q.Exec(ctx, query, userID, date, out)
	if err != nil {
		return false, fmt.Errorf("failed to set out time: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}

const attendanceColumns = `id, user_id, date, in_time, out_time, status, work_mode, created_at, updated_at`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var att attendance.Attendance
	err := row.Scan(
		&att.ID, &att.UserID, &att.Date, &att.InTime, &att.OutTime,
		&att.Status, &att.WorkMode, &att.CreatedAt, &att.UpdatedAt,
	)
	return att, err
}

// GetByUserAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	att, err := scanAttendance(q.QueryRow(ctx, `
		SELECT `+attendanceColumns+`
		FROM attendances
		WHERE user_id = $1 AND date = $2
		LIMIT 1
	`, userID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // no record for that day
		}
		return nil, fmt.Errorf("failed to get attendance by user and date: %w", err)
	}

	return &att, nil
}

// ListByUser implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByUser(ctx context.Context, userID string) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	rows, err := q.Query(ctx, `
		SELECT `+attendanceColumns+`
		FROM attendances
		WHERE user_id = $1
		ORDER BY date DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance by user: %w", err)
	}
	defer rows.Close()

	return collectAttendances(rows)
}

// ListByUserBetween implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByUserBetween(ctx context.Context, userID string, from, to time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	rows, err := q.Query(ctx, `
		SELECT `+attendanceColumns+`
		FROM attendances
		WHERE user_id = $1 AND date >= $2 AND date <= $3
		ORDER BY date ASC
	`, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance between dates: %w", err)
	}
	defer rows.Close()

	return collectAttendances(rows)
}

// ListByDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByDate(ctx context.Context, date time.Time, status *attendance.Status) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT a.id, a.user_id, a.date, a.in_time, a.out_time, a.status, a.work_mode,
			   a.created_at, a.updated_at, u.name, u.department
		FROM attendances a
		JOIN users u ON u.id = a.user_id
		WHERE a.date = $1
	`
	args := []interface{}{date}
	if status != nil {
		query += ` AND a.status = $2`
		args = append(args, *status)
	}
	query += ` ORDER BY a.in_time ASC NULLS LAST`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance by date: %w", err)
	}
	defer rows.Close()

	var result []attendance.Attendance
	for rows.Next() {
		var att attendance.Attendance
		if err := rows.Scan(
			&att.ID, &att.UserID, &att.Date, &att.InTime, &att.OutTime,
			&att.Status, &att.WorkMode, &att.CreatedAt, &att.UpdatedAt,
			&att.UserName, &att.UserDepartment,
		); err != nil {
			return nil, fmt.Errorf("failed to scan attendance row: %w", err)
		}
		result = append(result, att)
	}
	return result, rows.Err()
}

func collectAttendances(rows pgx.Rows) ([]attendance.Attendance, error) {
	var result []attendance.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance row: %w", err)
		}
		result = append(result, att)
	}
	return result, rows.Err()
}
