package sync

import (
	"context"

	"github.com/nimbus-hr/hrms-backend-go/internal/domain/biometric"
	"github.com/nimbus-hr/hrms-backend-go/internal/pkg/zk"
)

// DeviceSource adapts the terminal client to the biometric.EventSource
// contract.
type DeviceSource struct {
	client *zk.Client
}

func NewDeviceSource(client *zk.Client) *DeviceSource {
	return &DeviceSource{client: client}
}

func (d *DeviceSource) ReadEvents(ctx context.Context) ([]biometric.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw, err := d.client.ReadAttendanceLogs()
	if err != nil {
		return nil, err
	}
	events := make([]biometric.Event, 0, len(raw))
	for _, r := range raw {
		events = append(events, biometric.Event{
			DeviceUserID: r.DeviceUserID,
			RecordTime:   r.RecordTime,
		})
	}
	return events, nil
}
