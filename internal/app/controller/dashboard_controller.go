package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/proximahr/proximahr-backend/internal/app/service"
	apperrors "github.com/proximahr/proximahr-backend/internal/errors"
	"github.com/proximahr/proximahr-backend/internal/middleware"
)

// DashboardController exposes the admin overview.
type DashboardController struct {
	dashboardService service.DashboardService
}

// NewDashboardController creates a dashboard controller.
func NewDashboardController(dashboardService service.DashboardService) *DashboardController {
	return &DashboardController{dashboardService: dashboardService}
}

// Overview handles GET /dashboard/overview.
func (ctrl *DashboardController) Overview(c *gin.Context) {
	overview, err := ctrl.dashboardService.Overview(middleware.GetCompanyID(c))
	if err != nil {
		middleware.GetLoggerFromContext(c).Error("failed to build dashboard overview", err)
		apperrors.InternalError(c, "failed to build dashboard overview")
		return
	}

	apperrors.RespondWithSuccess(c, http.StatusOK, overview)
}
