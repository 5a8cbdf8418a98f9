package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/nimbus-hr/hrms-backend-go/internal/domain/biometric"
	"github.com/nimbus-hr/hrms-backend-go/internal/pkg/database"
)

type checkpointRepository struct {
	db *database.DB
}

func NewCheckpointRepository(db *database.DB) biometric.CheckpointRepository {
	return &checkpointRepository{db: db}
}

// Get implements biometric.CheckpointRepository.
func (r *checkpointRepository) Get(ctx context.Context, device string) (time.Time, error) {
	q := GetQuerier(ctx, r.db)

	var mark time.Time
	err := q.QueryRow(ctx, `
		SELECT last_record_time FROM sync_checkpoints WHERE device = $1
	`, device).Scan(&mark)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return time.Time{}, nil // never synced
		}
		return time.Time{}, fmt.Errorf("failed to get sync checkpoint: %w", err)
	}
	return mark, nil
}

// Set implements biometric.CheckpointRepository.
func (r *checkpointRepository) Set(ctx context.Context, device string, mark time.Time) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `
		INSERT INTO sync_checkpoints (device, last_record_time)
		VALUES ($1, $2)
		ON CONFLICT (device) DO UPDATE
		SET last_record_time = EXCLUDED.last_record_time, updated_at = NOW()
	`, device, mark)
	if err != nil {
		return fmt.Errorf("failed to set sync checkpoint: %w", err)
	}
	return nil
}
