package controller

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/proximahr/proximahr-backend/internal/app/service"
	apperrors "github.com/proximahr/proximahr-backend/internal/errors"
	"github.com/proximahr/proximahr-backend/internal/middleware"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportController exposes XLSX report downloads for company admins.
type ReportController struct {
	reportService service.ReportService
}

// NewReportController creates a report controller.
func NewReportController(reportService service.ReportService) *ReportController {
	return &ReportController{reportService: reportService}
}

// Attendance handles GET /reports/attendance?year=&month=.
func (ctrl *ReportController) Attendance(c *gin.Context) {
	now := time.Now()
	year := parseIntQuery(c, "year", now.Year())
	month := parseIntQuery(c, "month", int(now.Month()))
	if month < 1 || month > 12 {
		apperrors.BadRequest(c, apperrors.ValidationInvalidRange, "month must be between 1 and 12")
		return
	}

	buf, filename, err := ctrl.reportService.AttendanceReport(
		middleware.GetCompanyID(c), year, time.Month(month))
	if err != nil {
		middleware.GetLoggerFromContext(c).Error("failed to export attendance report", err)
		apperrors.InternalError(c, "failed to export attendance report")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// Payroll handles GET /reports/payroll.
func (ctrl *ReportController) Payroll(c *gin.Context) {
	buf, filename, err := ctrl.reportService.PayrollReport(middleware.GetCompanyID(c))
	if err != nil {
		middleware.GetLoggerFromContext(c).Error("failed to export payroll report", err)
		apperrors.InternalError(c, "failed to export payroll report")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// Leaves handles GET /reports/leaves?year=.
func (ctrl *ReportController) Leaves(c *gin.Context) {
	year := parseIntQuery(c, "year", time.Now().Year())

	buf, filename, err := ctrl.reportService.LeaveReport(middleware.GetCompanyID(c), year)
	if err != nil {
		middleware.GetLoggerFromContext(c).Error("failed to export leave report", err)
		apperrors.InternalError(c, "failed to export leave report")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
