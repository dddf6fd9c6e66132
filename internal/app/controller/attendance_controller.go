package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/proximahr/proximahr-backend/internal/app/service"
	apperrors "github.com/proximahr/proximahr-backend/internal/errors"
	"github.com/proximahr/proximahr-backend/internal/middleware"
)

// AttendanceController exposes the work timer and monthly summary.
type AttendanceController struct {
	attendanceService service.AttendanceService
}

// NewAttendanceController creates an attendance controller.
func NewAttendanceController(attendanceService service.AttendanceService) *AttendanceController {
	return &AttendanceController{attendanceService: attendanceService}
}

// Start handles POST /attendance/timer/start.
func (ctrl *AttendanceController) Start(c *gin.Context) {
	timer, err := ctrl.attendanceService.StartTimer(
		middleware.GetUserID(c), middleware.GetCompanyID(c))
	if err != nil {
		respondAttendanceError(c, err)
		return
	}

	apperrors.RespondWithSuccess(c, http.StatusCreated, timer)
}

// Pause handles POST /attendance/timer/pause.
func (ctrl *AttendanceController) Pause(c *gin.Context) {
	timer, err := ctrl.attendanceService.PauseTimer(middleware.GetUserID(c))
	if err != nil {
		respondAttendanceError(c, err)
		return
	}

	apperrors.RespondWithSuccess(c, http.StatusOK, timer)
}

// Resume handles POST /attendance/timer/resume.
func (ctrl *AttendanceController) Resume(c *gin.Context) {
	timer, err := ctrl.attendanceService.ResumeTimer(middleware.GetUserID(c))
	if err != nil {
		respondAttendanceError(c, err)
		return
	}

	apperrors.RespondWithSuccess(c, http.StatusOK, timer)
}

// Stop handles POST /attendance/timer/stop.
func (ctrl *AttendanceController) Stop(c *gin.Context) {
	record, err := ctrl.attendanceService.StopTimer(middleware.GetUserID(c))
	if err != nil {
		respondAttendanceError(c, err)
		return
	}

	apperrors.RespondWithSuccess(c, http.StatusOK, record)
}

// Active handles GET /attendance/timer.
func (ctrl *AttendanceController) Active(c *gin.Context) {
	timer, err := ctrl.attendanceService.ActiveTimer(middleware.GetUserID(c))
	if err != nil {
		respondAttendanceError(c, err)
		return
	}

	apperrors.RespondWithSuccess(c, http.StatusOK, timer)
}

// Summary handles GET /attendance/summary?year=&month=.
func (ctrl *AttendanceController) Summary(c *gin.Context) {
	now := time.Now()
	year := parseIntQuery(c, "year", now.Year())
	month := parseIntQuery(c, "month", int(now.Month()))
	if month < 1 || month > 12 {
		apperrors.BadRequest(c, apperrors.ValidationInvalidRange, "month must be between 1 and 12")
		return
	}

	summary, err := ctrl.attendanceService.MonthlySummaryFor(
		middleware.GetUserID(c), year, time.Month(month))
	if err != nil {
		middleware.GetLoggerFromContext(c).Error("failed to build attendance summary", err)
		apperrors.InternalError(c, "failed to build attendance summary")
		return
	}

	apperrors.RespondWithSuccess(c, http.StatusOK, summary)
}

func respondAttendanceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNoActiveTimer):
		apperrors.NotFound(c, apperrors.AttendanceNoTimer, "no active timer")
	case errors.Is(err, service.ErrTimerRunning):
		apperrors.Conflict(c, apperrors.AttendanceTimerRunning, "a timer is already running")
	case errors.Is(err, service.ErrTimerNotPaused), errors.Is(err, service.ErrTimerNotRunning):
		apperrors.Conflict(c, apperrors.ResourceConflict, "timer is not in the required state")
	default:
		middleware.GetLoggerFromContext(c).Error("attendance operation failed", err)
		apperrors.InternalError(c, "attendance operation failed")
	}
}
