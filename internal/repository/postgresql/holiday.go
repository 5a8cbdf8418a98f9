package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/nimbus-hr/hrms-backend-go/internal/domain/holiday"
	"github.com/nimbus-hr/hrms-backend-go/internal/pkg/database"
)

type holidayRepository struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) holiday.HolidayRepository {
	return &holidayRepository{db: db}
}

const holidayColumns = `id, name, date, weekday, type, leave_days_consumed, created_at, updated_at`

func scanHoliday(row pgx.Row) (holiday.Holiday, error) {
	var h holiday.Holiday
	err := row.Scan(
		&h.ID, &h.Name, &h.Date, &h.Weekday, &h.Type,
		&h.LeaveDaysConsumed, &h.CreatedAt, &h.UpdatedAt,
	)
	return h, err
}

// Create implements holiday.HolidayRepository.
func (r *holidayRepository) Create(ctx context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	err := q.QueryRow(ctx, `
		INSERT INTO holidays (name, date, weekday, type, leave_days_consumed)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, h.Name, h.Date, h.Weekday, h.Type, h.LeaveDaysConsumed,
	).Scan(&h.ID, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		return holiday.Holiday{}, fmt.Errorf("failed to create holiday: %w", err)
	}
	return h, nil
}

// Delete implements holiday.HolidayRepository.
func (r *holidayRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM holidays WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete holiday: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return holiday.ErrHolidayNotFound
	}
	return nil
}

// ListAll implements holiday.HolidayRepository.
func (r *holidayRepository) ListAll(ctx context.Context) ([]holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT `+holidayColumns+` FROM holidays ORDER BY date ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	defer rows.Close()

	return collectHolidays(rows)
}

// GetByDate implements holiday.HolidayRepository.
func (r *holidayRepository) GetByDate(ctx context.Context, date time.Time) (*holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	h, err := scanHoliday(q.QueryRow(ctx, `
		SELECT `+holidayColumns+` FROM holidays WHERE date = $1 LIMIT 1
	`, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // working day
		}
		return nil, fmt.Errorf("failed to get holiday by date: %w", err)
	}
	return &h, nil
}

// ListBetween implements holiday.HolidayRepository.
func (r *holidayRepository) ListBetween(ctx context.Context, from, to time.Time) ([]holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT `+holidayColumns+`
		FROM holidays
		WHERE date >= $1 AND date <= $2
		ORDER BY date ASC
	`, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays between dates: %w", err)
	}
	defer rows.Close()

	return collectHolidays(rows)
}

// ListUpcoming implements holiday.HolidayRepository.
func (r *holidayRepository) ListUpcoming(ctx context.Context, from time.Time, limit int) ([]holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT `+holidayColumns+`
		FROM holidays
		WHERE date >= $1
		ORDER BY date ASC
		LIMIT $2
	`, from, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming holidays: %w", err)
	}
	defer rows.Close()

	return collectHolidays(rows)
}

func collectHolidays(rows pgx.Rows) ([]holiday.Holiday, error) {
	var result []holiday.Holiday
	for rows.Next() {
		h, err := scanHoliday(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan holiday row: %w", err)
		}
		result = append(result, h)
	}
	return result, rows.Err()
}
