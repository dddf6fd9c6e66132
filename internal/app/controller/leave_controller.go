package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/proximahr/proximahr-backend/internal/app/repository"
	"github.com/proximahr/proximahr-backend/internal/app/service"
	apperrors "github.com/proximahr/proximahr-backend/internal/errors"
	"github.com/proximahr/proximahr-backend/internal/middleware"
)

// LeaveController exposes leave request and approval endpoints.
type LeaveController struct {
	leaveService service.LeaveService
}

// NewLeaveController creates a leave controller.
func NewLeaveController(leaveService service.LeaveService) *LeaveController {
	return &LeaveController{leaveService: leaveService}
}

type createLeaveRequest struct {
	Type      string    `json:"type" binding:"required,oneof=vacation sick personal"`
	StartDate time.Time `json:"start_date" binding:"required"`
	EndDate   time.Time `json:"end_date" binding:"required"`
	Reason    string    `json:"reason" binding:"max=500"`
}

// Create handles POST /leaves for the authenticated employee.
func (ctrl *LeaveController) Create(c *gin.Context) {
	var req createLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "type, start_date and end_date are required")
		return
	}

	leave, err := ctrl.leaveService.Create(service.CreateLeaveInput{
		UserID:    middleware.GetUserID(c),
		CompanyID: middleware.GetCompanyID(c),
		Type:      req.Type,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Reason:    req.Reason,
	})
	if err != nil {
		respondLeaveError(c, err)
		return
	}

	apperrors.RespondWithSuccess(c, http.StatusCreated, leave)
}

// ListMine handles GET /leaves/me for the authenticated employee.
func (ctrl *LeaveController) ListMine(c *gin.Context) {
	leaves, total, err := ctrl.leaveService.List(repository.LeaveFilter{
		CompanyID: middleware.GetCompanyID(c),
		UserID:    middleware.GetUserID(c),
		Status:    c.Query("status"),
		Page:      parseIntQuery(c, "page", 1),
		Limit:     parseIntQuery(c, "limit", 20),
	})
	if err != nil {
		middleware.GetLoggerFromContext(c).Error("failed to list leaves", err)
		apperrors.InternalError(c, "failed to list leaves")
		return
	}

	apperrors.RespondWithSuccess(c, http.StatusOK, gin.H{
		"leaves": leaves,
		"total":  total,
	})
}

// List handles GET /leaves for admins, across the whole company.
func (ctrl *LeaveController) List(c *gin.Context) {
	leaves, total, err := ctrl.leaveService.List(repository.LeaveFilter{
		CompanyID: middleware.GetCompanyID(c),
		Status:    c.Query("status"),
		Page:      parseIntQuery(c, "page", 1),
		Limit:     parseIntQuery(c, "limit", 20),
	})
	if err != nil {
		middleware.GetLoggerFromContext(c).Error("failed to list leaves", err)
		apperrors.InternalError(c, "failed to list leaves")
		return
	}

	apperrors.RespondWithSuccess(c, http.StatusOK, gin.H{
		"leaves": leaves,
		"total":  total,
	})
}

type resolveLeaveRequest struct {
	Comment string `json:"comment" binding:"max=500"`
}

// Approve handles POST /leaves/:id/approve.
func (ctrl *LeaveController) Approve(c *gin.Context) {
	leaveID, ok := paramID(c, "id")
	if !ok {
		return
	}

	// body is optional
	var req resolveLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		req.Comment = ""
	}

	err := ctrl.leaveService.Approve(
		middleware.GetCompanyID(c), leaveID, middleware.GetUserID(c), req.Comment)
	if err != nil {
		respondLeaveError(c, err)
		return
	}

	apperrors.RespondWithMessage(c, http.StatusOK, "leave approved")
}

// Reject handles POST /leaves/:id/reject.
func (ctrl *LeaveController) Reject(c *gin.Context) {
	leaveID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req resolveLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		req.Comment = ""
	}

	err := ctrl.leaveService.Reject(
		middleware.GetCompanyID(c), leaveID, middleware.GetUserID(c), req.Comment)
	if err != nil {
		respondLeaveError(c, err)
		return
	}

	apperrors.RespondWithMessage(c, http.StatusOK, "leave rejected")
}

func respondLeaveError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrLeaveNotFound):
		apperrors.NotFound(c, apperrors.LeaveNotFound, "leave request not found")
	case errors.Is(err, service.ErrLeaveAlreadyResolved):
		apperrors.Conflict(c, apperrors.LeaveAlreadyResolved, "leave request already resolved")
	case errors.Is(err, service.ErrLeaveInsufficientDays):
		apperrors.BadRequest(c, apperrors.LeaveInsufficientDays, "not enough vacation days remaining")
	case errors.Is(err, service.ErrLeaveOverlapping):
		apperrors.Conflict(c, apperrors.LeaveOverlapping, "overlapping leave request exists")
	case errors.Is(err, service.ErrLeaveInvalidDates):
		apperrors.BadRequest(c, apperrors.ValidationDateOrder, "leave dates are invalid")
	case errors.Is(err, service.ErrEmployeeNotFound):
		apperrors.NotFound(c, apperrors.EmployeeNotFound, "employee not found")
	default:
		middleware.GetLoggerFromContext(c).Error("leave operation failed", err)
		apperrors.InternalError(c, "leave operation failed")
	}
}
