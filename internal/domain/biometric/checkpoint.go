// Package biometric holds the contracts between the hardware terminal, the
// sync job and persistence. Raw events are transient; only the high-water
// checkpoint survives so a restart neither replays nor drops punches.
package biometric

import (
	"context"
	"time"
)

// Event is one raw punch from the terminal, not yet mapped to a user.
type Event struct {
	DeviceUserID string
	RecordTime   time.Time
}

// EventSource abstracts the device client. Implementations must tolerate
// partial success: a transport timeout after data has arrived is a complete
// read, not a failure.
type EventSource interface {
	// ReadEvents returns the device's attendance log. Order is whatever
	// the device sends; callers dedupe via the checkpoint.
	ReadEvents(ctx context.Context) ([]Event, error)
}

// CheckpointRepository persists the per-device high-water mark: the record
// time of the newest event already applied.
type CheckpointRepository interface {
	// Get returns the checkpoint for a device; the zero time when the
	// device has never been synced.
	Get(ctx context.Context, device string) (time.Time, error)

	// Set advances the checkpoint. Upsert semantics.
	Set(ctx context.Context, device string, mark time.Time) error
}
