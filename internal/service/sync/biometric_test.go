package sync

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nimbus-hr/hrms-backend-go/internal/domain/biometric"
	"github.com/nimbus-hr/hrms-backend-go/internal/domain/user"
)

type stubSource struct {
	events []biometric.Event
	err    error
	reads  int
}

func (s *stubSource) ReadEvents(context.Context) ([]biometric.Event, error) {
	s.reads++
	return s.events, s.err
}

type stubUserRepo struct {
	byBiometricID map[string]user.User
}

func (s *stubUserRepo) GetByID(context.Context, string) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}

func (s *stubUserRepo) GetByEmail(context.Context, string) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}

func (s *stubUserRepo) GetByBiometricID(_ context.Context, id string) (user.User, error) {
	u, ok := s.byBiometricID[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

type stubCheckpointRepo struct {
	marks map[string]time.Time
}

func (s *stubCheckpointRepo) Get(_ context.Context, device string) (time.Time, error) {
	return s.marks[device], nil
}

func (s *stubCheckpointRepo) Set(_ context.Context, device string, mark time.Time) error {
	if s.marks == nil {
		s.marks = make(map[string]time.Time)
	}
	s.marks[device] = mark
	return nil
}

type appliedEvent struct {
	userID string
	ts     time.Time
}

type stubApplier struct {
	applied []appliedEvent
	failOn  string
}

func (s *stubApplier) ApplyBiometricEvent(_ context.Context, userID string, ts time.Time) error {
	if s.failOn != "" && s.failOn == userID {
		return errors.New("storage down")
	}
	s.applied = append(s.applied, appliedEvent{userID, ts})
	return nil
}

func at(hour, min int) time.Time {
	return time.Date(2025, 6, 16, hour, min, 0, 0, time.UTC)
}

func newTestSyncer(src *stubSource, applier *stubApplier) (*BiometricSyncer, *stubCheckpointRepo) {
	users := &stubUserRepo{byBiometricID: map[string]user.User{
		"101": {ID: "u1", Name: "Asha"},
		"102": {ID: "u2", Name: "Ravi"},
	}}
	checkpoints := &stubCheckpointRepo{}
	return NewBiometricSyncer("terminal-1", src, users, checkpoints, applier), checkpoints
}

func TestRun_AppliesEventsInOrderAndAdvancesCheckpoint(t *testing.T) {
	src := &stubSource{events: []biometric.Event{
		{DeviceUserID: "102", RecordTime: at(18, 5)},
		{DeviceUserID: "101", RecordTime: at(9, 1)},
		{DeviceUserID: "101", RecordTime: at(18, 0)},
	}}
	applier := &stubApplier{}
	syncer, checkpoints := newTestSyncer(src, applier)

	require.NoError(t, syncer.Run(context.Background()))

	require.Len(t, applier.applied, 3)
	assert.Equal(t, appliedEvent{"u1", at(9, 1)}, applier.applied[0])
	assert.Equal(t, appliedEvent{"u1", at(18, 0)}, applier.applied[1])
	assert.Equal(t, appliedEvent{"u2", at(18, 5)}, applier.applied[2])
	assert.Equal(t, at(18, 5), checkpoints.marks["terminal-1"])
}

func TestRun_SkipsEventsAtOrBeforeCheckpoint(t *testing.T) {
	src := &stubSource{events: []biometric.Event{
		{DeviceUserID: "101", RecordTime: at(9, 1)},
		{DeviceUserID: "101", RecordTime: at(13, 0)},
		{DeviceUserID: "101", RecordTime: at(18, 0)},
	}}
	applier := &stubApplier{}
	syncer, checkpoints := newTestSyncer(src, applier)
	require.NoError(t, checkpoints.Set(context.Background(), "terminal-1", at(13, 0)))

	require.NoError(t, syncer.Run(context.Background()))

	require.Len(t, applier.applied, 1)
	assert.Equal(t, at(18, 0), applier.applied[0].ts)
	assert.Equal(t, at(18, 0), checkpoints.marks["terminal-1"])
}

func TestRun_DeviceDownIsNotAnError(t *testing.T) {
	src := &stubSource{err: errors.New("connection timed out")}
	applier := &stubApplier{}
	syncer, checkpoints := newTestSyncer(src, applier)

	require.NoError(t, syncer.Run(context.Background()))
	assert.Empty(t, applier.applied)
	assert.True(t, checkpoints.marks["terminal-1"].IsZero())
}

func TestRun_UnmappedDeviceUserSkippedButCheckpointAdvances(t *testing.T) {
	src := &stubSource{events: []biometric.Event{
		{DeviceUserID: "101", RecordTime: at(9, 0)},
		{DeviceUserID: "999", RecordTime: at(9, 30)},
	}}
	applier := &stubApplier{}
	syncer, checkpoints := newTestSyncer(src, applier)

	require.NoError(t, syncer.Run(context.Background()))

	require.Len(t, applier.applied, 1)
	assert.Equal(t, "u1", applier.applied[0].userID)
	// the unmapped punch is consumed, not replayed forever
	assert.Equal(t, at(9, 30), checkpoints.marks["terminal-1"])
}

func TestRun_ApplyFailureStopsBeforeAdvancingPastIt(t *testing.T) {
	src := &stubSource{events: []biometric.Event{
		{DeviceUserID: "101", RecordTime: at(9, 0)},
		{DeviceUserID: "102", RecordTime: at(9, 15)},
		{DeviceUserID: "101", RecordTime: at(18, 0)},
	}}
	applier := &stubApplier{failOn: "u2"}
	syncer, checkpoints := newTestSyncer(src, applier)

	err := syncer.Run(context.Background())
	require.Error(t, err)

	// the first event applied; the checkpoint stops short of the failure so
	// the next cycle replays it
	require.Len(t, applier.applied, 1)
	assert.Equal(t, at(9, 0), checkpoints.marks["terminal-1"])
}

func TestRun_EmptyLogIsQuiet(t *testing.T) {
	src := &stubSource{}
	applier := &stubApplier{}
	syncer, checkpoints := newTestSyncer(src, applier)

	require.NoError(t, syncer.Run(context.Background()))
	assert.Empty(t, applier.applied)
	assert.True(t, checkpoints.marks["terminal-1"].IsZero())
	assert.Equal(t, 1, src.reads)
}
