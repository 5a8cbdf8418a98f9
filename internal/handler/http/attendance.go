package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/nimbus-hr/hrms-backend-go/internal/domain/attendance"
	"github.com/nimbus-hr/hrms-backend-go/internal/handler/http/middleware"
	"github.com/nimbus-hr/hrms-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	PunchIn(w http.ResponseWriter, r *http.Request)
	PunchOut(w http.ResponseWriter, r *http.Request)
	Today(w http.ResponseWriter, r *http.Request)
	MyLog(w http.ResponseWriter, r *http.Request)
	Calendar(w http.ResponseWriter, r *http.Request)
	Summary(w http.ResponseWriter, r *http.Request)
	Stats(w http.ResponseWriter, r *http.Request)
	WeeklyChart(w http.ResponseWriter, r *http.Request)
	Daily(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
	loc               *time.Location
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService, loc *time.Location) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
		loc:               loc,
	}
}

// PunchIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) PunchIn(w http.ResponseWriter, r *http.Request) {
	var req attendance.PunchInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.PunchIn(r.Context(), middleware.UserID(r), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Punched in", result)
}

// PunchOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) PunchOut(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.PunchOut(r.Context(), middleware.UserID(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Punched out", result)
}

// Today implements AttendanceHandler.
func (h *attendanceHandlerImpl) Today(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.TodayStatus(r.Context(), middleware.UserID(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// MyLog implements AttendanceHandler.
func (h *attendanceHandlerImpl) MyLog(w http.ResponseWriter, r *http.Request) {
	var month *string
	if m := r.URL.Query().Get("month"); m != "" {
		if _, err := time.Parse("2006-01", m); err != nil {
			response.BadRequest(w, "Month must be YYYY-MM", nil)
			return
		}
		month = &m
	}

	result, err := h.attendanceService.ListMyAttendance(r.Context(), middleware.UserID(r), month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Calendar implements AttendanceHandler.
func (h *attendanceHandlerImpl) Calendar(w http.ResponseWriter, r *http.Request) {
	year, month, ok := h.yearMonth(w, r)
	if !ok {
		return
	}

	result, err := h.attendanceService.MonthView(r.Context(), middleware.UserID(r), year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Summary implements AttendanceHandler.
func (h *attendanceHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	year, month, ok := h.yearMonth(w, r)
	if !ok {
		return
	}

	result, err := h.attendanceService.MonthlyTotals(r.Context(), middleware.UserID(r), year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Stats implements AttendanceHandler.
func (h *attendanceHandlerImpl) Stats(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.StatsSummary(r.Context(), middleware.UserID(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// WeeklyChart implements AttendanceHandler.
func (h *attendanceHandlerImpl) WeeklyChart(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.WeeklyDistribution(r.Context(), middleware.UserID(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Daily implements AttendanceHandler. HR view of one day across all users.
func (h *attendanceHandlerImpl) Daily(w http.ResponseWriter, r *http.Request) {
	date := time.Now().In(h.loc)
	if d := r.URL.Query().Get("date"); d != "" {
		parsed, err := time.ParseInLocation("2006-01-02", d, h.loc)
		if err != nil {
			response.BadRequest(w, "Date must be YYYY-MM-DD", nil)
			return
		}
		date = parsed
	}

	var status *attendance.Status
	if s := r.URL.Query().Get("status"); s != "" {
		st := attendance.Status(s)
		status = &st
	}

	result, err := h.attendanceService.ListByDate(r.Context(), date, status)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// yearMonth parses the year and month query params, defaulting to the current
// month.
func (h *attendanceHandlerImpl) yearMonth(w http.ResponseWriter, r *http.Request) (int, time.Month, bool) {
	now := time.Now().In(h.loc)
	year, month := now.Year(), now.Month()

	if y := r.URL.Query().Get("year"); y != "" {
		parsed, err := strconv.Atoi(y)
		if err != nil {
			response.BadRequest(w, "Year must be a number", nil)
			return 0, 0, false
		}
		year = parsed
	}
	if m := r.URL.Query().Get("month"); m != "" {
		parsed, err := strconv.Atoi(m)
		if err != nil || parsed < 1 || parsed > 12 {
			response.BadRequest(w, "Month must be 1-12", nil)
			return 0, 0, false
		}
		month = time.Month(parsed)
	}
	return year, month, true
}
