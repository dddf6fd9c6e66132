package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/proximahr/proximahr-backend/internal/app/service"
	apperrors "github.com/proximahr/proximahr-backend/internal/errors"
	"github.com/proximahr/proximahr-backend/internal/middleware"
)

// DepartmentController exposes department CRUD for company admins.
type DepartmentController struct {
	departmentService service.DepartmentService
}

// NewDepartmentController creates a department controller.
func NewDepartmentController(departmentService service.DepartmentService) *DepartmentController {
	return &DepartmentController{departmentService: departmentService}
}

type departmentRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=100"`
	Description string `json:"description" binding:"max=500"`
	ManagerID   *uint  `json:"manager_id"`
}

// Create handles POST /departments.
func (ctrl *DepartmentController) Create(c *gin.Context) {
	var req departmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "department name is required")
		return
	}

	department, err := ctrl.departmentService.Create(
		middleware.GetCompanyID(c), req.Name, req.Description, req.ManagerID)
	if err != nil {
		respondDepartmentError(c, err)
		return
	}

	apperrors.RespondWithSuccess(c, http.StatusCreated, department)
}

// List handles GET /departments.
func (ctrl *DepartmentController) List(c *gin.Context) {
	departments, err := ctrl.departmentService.List(middleware.GetCompanyID(c))
	if err != nil {
		middleware.GetLoggerFromContext(c).Error("failed to list departments", err)
		apperrors.InternalError(c, "failed to list departments")
		return
	}

	apperrors.RespondWithSuccess(c, http.StatusOK, departments)
}

// Get handles GET /departments/:id.
func (ctrl *DepartmentController) Get(c *gin.Context) {
	departmentID, ok := paramID(c, "id")
	if !ok {
		return
	}

	department, err := ctrl.departmentService.Get(middleware.GetCompanyID(c), departmentID)
	if err != nil {
		respondDepartmentError(c, err)
		return
	}

	apperrors.RespondWithSuccess(c, http.StatusOK, department)
}

type updateDepartmentRequest struct {
	Name        string `json:"name" binding:"omitempty,min=2,max=100"`
	Description string `json:"description" binding:"max=500"`
	ManagerID   *uint  `json:"manager_id"`
}

// Update handles PATCH /departments/:id.
func (ctrl *DepartmentController) Update(c *gin.Context) {
	departmentID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req updateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "invalid update payload")
		return
	}

	department, err := ctrl.departmentService.Update(
		middleware.GetCompanyID(c), departmentID, req.Name, req.Description, req.ManagerID)
	if err != nil {
		respondDepartmentError(c, err)
		return
	}

	apperrors.RespondWithSuccess(c, http.StatusOK, department)
}

// Delete handles DELETE /departments/:id.
func (ctrl *DepartmentController) Delete(c *gin.Context) {
	departmentID, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := ctrl.departmentService.Delete(middleware.GetCompanyID(c), departmentID); err != nil {
		respondDepartmentError(c, err)
		return
	}

	apperrors.RespondWithMessage(c, http.StatusOK, "department deleted")
}

func respondDepartmentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrDepartmentNotFound):
		apperrors.NotFound(c, apperrors.DepartmentNotFound, "department not found")
	case errors.Is(err, service.ErrDepartmentNameExists):
		apperrors.Conflict(c, apperrors.DepartmentNameExists, "department name already exists")
	case errors.Is(err, service.ErrDepartmentNotEmpty):
		apperrors.Conflict(c, apperrors.ResourceConflict, "department still has members")
	case errors.Is(err, service.ErrEmployeeNotFound), errors.Is(err, service.ErrWrongCompany):
		apperrors.BadRequest(c, apperrors.EmployeeNotFound, "manager not found in company")
	default:
		middleware.GetLoggerFromContext(c).Error("department operation failed", err)
		parsed := apperrors.ParseDBError(err)
		apperrors.RespondWithError(c, parsed.Status, parsed.Code, parsed.Message)
	}
}
