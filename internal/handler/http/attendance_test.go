package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nimbus-hr/hrms-backend-go/internal/domain/attendance"
)

type stubAttendanceService struct {
	punchInErr  error
	punchOutErr error
	gotUserID   string
	gotMode     string
}

func (s *stubAttendanceService) PunchIn(_ context.Context, userID string, req attendance.PunchInRequest) (attendance.PunchStatusResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.PunchStatusResponse{}, err
	}
	if s.punchInErr != nil {
		return attendance.PunchStatusResponse{}, s.punchInErr
	}
	s.gotUserID = userID
	s.gotMode = req.WorkMode
	now := time.Date(2025, 6, 16, 9, 0, 0, 0, time.UTC)
	return attendance.PunchStatusResponse{InTime: &now, WorkMode: &req.WorkMode}, nil
}

func (s *stubAttendanceService) PunchOut(_ context.Context, userID string) (attendance.PunchStatusResponse, error) {
	if s.punchOutErr != nil {
		return attendance.PunchStatusResponse{}, s.punchOutErr
	}
	s.gotUserID = userID
	return attendance.PunchStatusResponse{}, nil
}

func (s *stubAttendanceService) TodayStatus(context.Context, string) (attendance.PunchStatusResponse, error) {
	return attendance.PunchStatusResponse{}, nil
}

func (s *stubAttendanceService) ApplyBiometricEvent(context.Context, string, time.Time) error {
	return nil
}

func (s *stubAttendanceService) ClassifyDay(context.Context, string, time.Time) (attendance.DayClassification, error) {
	return attendance.DayClassification{}, nil
}

func (s *stubAttendanceService) MonthView(context.Context, string, int, time.Month) ([]attendance.DayViewResponse, error) {
	return nil, nil
}

func (s *stubAttendanceService) MonthlyTotals(context.Context, string, int, time.Month) (attendance.MonthlyTotalsResponse, error) {
	return attendance.MonthlyTotalsResponse{}, nil
}

func (s *stubAttendanceService) StatsSummary(context.Context, string) (attendance.StatsSummaryResponse, error) {
	return attendance.StatsSummaryResponse{}, nil
}

func (s *stubAttendanceService) WeeklyDistribution(context.Context, string) ([]attendance.WeeklyChartItem, error) {
	return nil, nil
}

func (s *stubAttendanceService) ListMyAttendance(context.Context, string, *string) ([]attendance.LogEntryResponse, error) {
	return nil, nil
}

func (s *stubAttendanceService) ListByDate(context.Context, time.Time, *attendance.Status) ([]attendance.DailyRecordResponse, error) {
	return nil, nil
}

// authedRequest attaches a verified token context so middleware.UserID
// resolves without running the full verifier chain.
func authedRequest(t *testing.T, method, target string, body []byte) *http.Request {
	t.Helper()
	ja := jwtauth.New("HS256", []byte("handler-test-secret"), nil)
	token, _, err := ja.Encode(map[string]interface{}{
		"user_id": "u1",
		"type":    "access",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	ctx := jwtauth.NewContext(req.Context(), token, nil)
	return req.WithContext(ctx)
}

func TestPunchIn_Handler(t *testing.T) {
	svc := &stubAttendanceService{}
	handler := NewAttendanceHandler(svc, time.UTC)

	body, _ := json.Marshal(attendance.PunchInRequest{WorkMode: "WFH"})
	rec := httptest.NewRecorder()
	handler.PunchIn(rec, authedRequest(t, http.MethodPost, "/api/v1/attendance/punch-in", body))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "u1", svc.gotUserID)
	assert.Equal(t, "WFH", svc.gotMode)
}

func TestPunchIn_Handler_InvalidWorkMode(t *testing.T) {
	handler := NewAttendanceHandler(&stubAttendanceService{}, time.UTC)

	body, _ := json.Marshal(attendance.PunchInRequest{WorkMode: "REMOTE"})
	rec := httptest.NewRecorder()
	handler.PunchIn(rec, authedRequest(t, http.MethodPost, "/api/v1/attendance/punch-in", body))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPunchIn_Handler_Conflict(t *testing.T) {
	svc := &stubAttendanceService{punchInErr: attendance.ErrAlreadyPunchedIn}
	handler := NewAttendanceHandler(svc, time.UTC)

	body, _ := json.Marshal(attendance.PunchInRequest{WorkMode: "WFO"})
	rec := httptest.NewRecorder()
	handler.PunchIn(rec, authedRequest(t, http.MethodPost, "/api/v1/attendance/punch-in", body))

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestPunchOut_Handler_NoOpenPunch(t *testing.T) {
	svc := &stubAttendanceService{punchOutErr: attendance.ErrNoOpenPunch}
	handler := NewAttendanceHandler(svc, time.UTC)

	rec := httptest.NewRecorder()
	handler.PunchOut(rec, authedRequest(t, http.MethodPost, "/api/v1/attendance/punch-out", nil))

	assert.Equal(t, http.StatusConflict, rec.Code)

	var resp struct {
		Success bool `json:"success"`
		Error   struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "CONFLICT", resp.Error.Code)
}

func TestMyLog_Handler_BadMonth(t *testing.T) {
	handler := NewAttendanceHandler(&stubAttendanceService{}, time.UTC)

	rec := httptest.NewRecorder()
	handler.MyLog(rec, authedRequest(t, http.MethodGet, "/api/v1/attendance/my?month=June", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
