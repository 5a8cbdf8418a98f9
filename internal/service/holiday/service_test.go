package holiday

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nimbus-hr/hrms-backend-go/internal/domain/holiday"
)

type memHolidayRepo struct {
	holidays []holiday.Holiday
	nextID   int
}

func (m *memHolidayRepo) Create(_ context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	m.nextID++
	h.ID = fmt.Sprintf("hol-%d", m.nextID)
	m.holidays = append(m.holidays, h)
	return h, nil
}

func (m *memHolidayRepo) Delete(_ context.Context, id string) error {
	for i := range m.holidays {
		if m.holidays[i].ID == id {
			m.holidays = append(m.holidays[:i], m.holidays[i+1:]...)
			return nil
		}
	}
	return holiday.ErrHolidayNotFound
}

func (m *memHolidayRepo) ListAll(context.Context) ([]holiday.Holiday, error) {
	return append([]holiday.Holiday(nil), m.holidays...), nil
}

func (m *memHolidayRepo) GetByDate(_ context.Context, date time.Time) (*holiday.Holiday, error) {
	for i := range m.holidays {
		if m.holidays[i].Date.Equal(date) {
			h := m.holidays[i]
			return &h, nil
		}
	}
	return nil, nil
}

func (m *memHolidayRepo) ListBetween(_ context.Context, from, to time.Time) ([]holiday.Holiday, error) {
	var result []holiday.Holiday
	for _, h := range m.holidays {
		if !h.Date.Before(from) && !h.Date.After(to) {
			result = append(result, h)
		}
	}
	return result, nil
}

func (m *memHolidayRepo) ListUpcoming(_ context.Context, from time.Time, limit int) ([]holiday.Holiday, error) {
	var result []holiday.Holiday
	for _, h := range m.holidays {
		if !h.Date.Before(from) {
			result = append(result, h)
		}
	}
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func TestCreate_DerivesWeekdayAndDefaultsType(t *testing.T) {
	repo := &memHolidayRepo{}
	svc := NewHolidayService(repo, time.UTC)

	resp, err := svc.Create(context.Background(), holiday.CreateRequest{
		Name: "Independence Day",
		Date: "2025-08-15",
	})
	require.NoError(t, err)

	assert.Equal(t, "Friday", resp.Weekday)
	assert.Equal(t, holiday.TypeMandatory, resp.Type)
	assert.Equal(t, "2025-08-15", resp.Date)
	require.Len(t, repo.holidays, 1)
}

func TestCreate_Validation(t *testing.T) {
	svc := NewHolidayService(&memHolidayRepo{}, time.UTC)
	ctx := context.Background()

	_, err := svc.Create(ctx, holiday.CreateRequest{Name: "Eid"})
	assert.ErrorIs(t, err, holiday.ErrMissingFields)

	_, err = svc.Create(ctx, holiday.CreateRequest{Name: "Eid", Date: "2025-06-06", Type: "Floating"})
	assert.ErrorIs(t, err, holiday.ErrInvalidType)

	_, err = svc.Create(ctx, holiday.CreateRequest{Name: "Eid", Date: "06/06/2025"})
	assert.Error(t, err)
}

func TestUpcoming_FiltersPastAndHonorsLimit(t *testing.T) {
	repo := &memHolidayRepo{}
	svc := NewHolidayService(repo, time.UTC)
	svc.now = func() time.Time { return time.Date(2025, 6, 20, 15, 0, 0, 0, time.UTC) }
	ctx := context.Background()

	for _, tc := range []struct{ name, date string }{
		{"Eid", "2025-06-06"},
		{"Independence Day", "2025-08-15"},
		{"Gandhi Jayanti", "2025-10-02"},
		{"Diwali", "2025-10-20"},
	} {
		_, err := svc.Create(ctx, holiday.CreateRequest{Name: tc.name, Date: tc.date})
		require.NoError(t, err)
	}

	upcoming, err := svc.Upcoming(ctx, 2)
	require.NoError(t, err)
	require.Len(t, upcoming, 2)
	assert.Equal(t, "Independence Day", upcoming[0].Name)
	assert.Equal(t, "Gandhi Jayanti", upcoming[1].Name)
}

func TestDelete_RemovesHoliday(t *testing.T) {
	repo := &memHolidayRepo{}
	svc := NewHolidayService(repo, time.UTC)
	ctx := context.Background()

	created, err := svc.Create(ctx, holiday.CreateRequest{Name: "Eid", Date: "2025-06-06"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))
	assert.Empty(t, repo.holidays)

	assert.ErrorIs(t, svc.Delete(ctx, created.ID), holiday.ErrHolidayNotFound)
}
