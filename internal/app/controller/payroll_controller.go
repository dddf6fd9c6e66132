package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/proximahr/proximahr-backend/internal/app/service"
	apperrors "github.com/proximahr/proximahr-backend/internal/errors"
	"github.com/proximahr/proximahr-backend/internal/middleware"
)

// PayrollController exposes payroll summaries for company admins.
type PayrollController struct {
	payrollService service.PayrollService
}

// NewPayrollController creates a payroll controller.
func NewPayrollController(payrollService service.PayrollService) *PayrollController {
	return &PayrollController{payrollService: payrollService}
}

// Summary handles GET /payroll/summary.
func (ctrl *PayrollController) Summary(c *gin.Context) {
	summary, err := ctrl.payrollService.Summary(middleware.GetCompanyID(c))
	if err != nil {
		middleware.GetLoggerFromContext(c).Error("failed to build payroll summary", err)
		apperrors.InternalError(c, "failed to build payroll summary")
		return
	}

	apperrors.RespondWithSuccess(c, http.StatusOK, summary)
}

// Trend handles GET /payroll/trend?years=.
func (ctrl *PayrollController) Trend(c *gin.Context) {
	years := parseIntQuery(c, "years", 5)

	trend, err := ctrl.payrollService.Trend(middleware.GetCompanyID(c), years)
	if err != nil {
		middleware.GetLoggerFromContext(c).Error("failed to build payroll trend", err)
		apperrors.InternalError(c, "failed to build payroll trend")
		return
	}

	apperrors.RespondWithSuccess(c, http.StatusOK, trend)
}

// Distribution handles GET /payroll/distribution.
func (ctrl *PayrollController) Distribution(c *gin.Context) {
	distribution, err := ctrl.payrollService.Distribution(middleware.GetCompanyID(c))
	if err != nil {
		middleware.GetLoggerFromContext(c).Error("failed to build salary distribution", err)
		apperrors.InternalError(c, "failed to build salary distribution")
		return
	}

	apperrors.RespondWithSuccess(c, http.StatusOK, distribution)
}
