// Package sync pulls the attendance log off the biometric terminal and folds
// it into per-day attendance records.
package sync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/nimbus-hr/hrms-backend-go/internal/domain/biometric"
	"github.com/nimbus-hr/hrms-backend-go/internal/domain/user"
)

// EventApplier is the slice of the attendance service the syncer needs.
type EventApplier interface {
	ApplyBiometricEvent(ctx context.Context, userID string, ts time.Time) error
}

// BiometricSyncer polls the device on a schedule. Each cycle reads the full
// log, filters everything at or before the persisted checkpoint, maps device
// identities to users and applies the remaining events in record-time order.
type BiometricSyncer struct {
	device         string
	source         biometric.EventSource
	userRepo       user.UserRepository
	checkpointRepo biometric.CheckpointRepository
	applier        EventApplier

	// inFlight guards against overlapping cycles when a slow device read
	// outlasts the poll interval.
	inFlight sync.Mutex
}

func NewBiometricSyncer(
	device string,
	source biometric.EventSource,
	userRepo user.UserRepository,
	checkpointRepo biometric.CheckpointRepository,
	applier EventApplier,
) *BiometricSyncer {
	return &BiometricSyncer{
		device:         device,
		source:         source,
		userRepo:       userRepo,
		checkpointRepo: checkpointRepo,
		applier:        applier,
	}
}

// Run executes one sync cycle. Device unavailability is not an error: the
// cycle logs it and the next tick retries. Returns only on persistence
// failures that leave the checkpoint in doubt.
func (s *BiometricSyncer) Run(ctx context.Context) error {
	if !s.inFlight.TryLock() {
		slog.Warn("Biometric sync still running, skipping cycle", "device", s.device)
		return nil
	}
	defer s.inFlight.Unlock()

	events, err := s.source.ReadEvents(ctx)
	if err != nil {
		slog.Warn("Biometric device unavailable", "device", s.device, "error", err)
		return nil
	}
	if len(events) == 0 {
		return nil
	}

	mark, err := s.checkpointRepo.Get(ctx, s.device)
	if err != nil {
		return fmt.Errorf("failed to read sync checkpoint: %w", err)
	}

	fresh := filterAfter(events, mark)
	if len(fresh) == 0 {
		return nil
	}
	sort.Slice(fresh, func(i, j int) bool {
		return fresh[i].RecordTime.Before(fresh[j].RecordTime)
	})

	applied, skipped := 0, 0
	newMark := mark
	for _, ev := range fresh {
		u, err := s.userRepo.GetByBiometricID(ctx, ev.DeviceUserID)
		if err != nil {
			if errors.Is(err, user.ErrUserNotFound) {
				slog.Warn("Biometric event for unmapped device user", "device", s.device, "device_user_id", ev.DeviceUserID)
				skipped++
				if ev.RecordTime.After(newMark) {
					newMark = ev.RecordTime
				}
				continue
			}
			return fmt.Errorf("failed to map device user %s: %w", ev.DeviceUserID, err)
		}

		if err := s.applier.ApplyBiometricEvent(ctx, u.ID, ev.RecordTime); err != nil {
			// Stop before advancing past the failed event so the next
			// cycle replays it.
			if setErr := s.checkpointRepo.Set(ctx, s.device, newMark); setErr != nil {
				slog.Error("Failed to persist sync checkpoint", "device", s.device, "error", setErr)
			}
			return fmt.Errorf("failed to apply event for user %s: %w", u.ID, err)
		}
		applied++
		if ev.RecordTime.After(newMark) {
			newMark = ev.RecordTime
		}
	}

	if newMark.After(mark) {
		if err := s.checkpointRepo.Set(ctx, s.device, newMark); err != nil {
			return fmt.Errorf("failed to persist sync checkpoint: %w", err)
		}
	}

	slog.Info("Biometric sync cycle complete", "device", s.device, "applied", applied, "skipped", skipped, "checkpoint", newMark.Format(time.RFC3339))
	return nil
}

func filterAfter(events []biometric.Event, mark time.Time) []biometric.Event {
	var fresh []biometric.Event
	for _, ev := range events {
		if ev.RecordTime.After(mark) {
			fresh = append(fresh, ev)
		}
	}
	return fresh
}
