package controller

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/proximahr/proximahr-backend/internal/app/repository"
	"github.com/proximahr/proximahr-backend/internal/app/service"
	apperrors "github.com/proximahr/proximahr-backend/internal/errors"
	"github.com/proximahr/proximahr-backend/internal/middleware"
)

// EmployeeController exposes employee management endpoints for
// company admins.
type EmployeeController struct {
	employeeService service.EmployeeService
}

// NewEmployeeController creates an employee controller.
func NewEmployeeController(employeeService service.EmployeeService) *EmployeeController {
	return &EmployeeController{employeeService: employeeService}
}

type createEmployeeRequest struct {
	Email          string     `json:"email" binding:"required,email"`
	FirstName      string     `json:"first_name" binding:"required,max=100"`
	LastName       string     `json:"last_name" binding:"required,max=100"`
	DepartmentID   *uint      `json:"department_id"`
	Position       string     `json:"position" binding:"max=100"`
	EmploymentType string     `json:"employment_type" binding:"omitempty,oneof=full_time part_time contract"`
	HireDate       *time.Time `json:"hire_date"`
	BaseSalary     float64    `json:"base_salary" binding:"gte=0"`
	Allowances     float64    `json:"allowances" binding:"gte=0"`
	Deductions     float64    `json:"deductions" binding:"gte=0"`
	WeeklyHours    int        `json:"weekly_hours" binding:"gte=0,lte=80"`
	VacationDays   int        `json:"vacation_days" binding:"gte=0,lte=60"`
}

// Create handles POST /employees.
func (ctrl *EmployeeController) Create(c *gin.Context) {
	var req createEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "email and name are required")
		return
	}

	employee, err := ctrl.employeeService.Create(service.CreateEmployeeInput{
		CompanyID:      middleware.GetCompanyID(c),
		Email:          req.Email,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		DepartmentID:   req.DepartmentID,
		Position:       req.Position,
		EmploymentType: req.EmploymentType,
		HireDate:       req.HireDate,
		BaseSalary:     req.BaseSalary,
		Allowances:     req.Allowances,
		Deductions:     req.Deductions,
		WeeklyHours:    req.WeeklyHours,
		VacationDays:   req.VacationDays,
	})
	if err != nil {
		respondEmployeeError(c, err)
		return
	}

	apperrors.RespondWithSuccess(c, http.StatusCreated, employee)
}

// List handles GET /employees with role, status, department and search
// filters plus pagination.
func (ctrl *EmployeeController) List(c *gin.Context) {
	filter := repository.UserFilter{
		CompanyID: middleware.GetCompanyID(c),
		Role:      c.Query("role"),
		Status:    c.Query("status"),
		Search:    c.Query("search"),
		Page:      parseIntQuery(c, "page", 1),
		Limit:     parseIntQuery(c, "limit", 20),
	}
	if deptID := c.Query("department_id"); deptID != "" {
		if id, err := strconv.ParseUint(deptID, 10, 32); err == nil {
			v := uint(id)
			filter.DepartmentID = &v
		}
	}

	employees, total, err := ctrl.employeeService.List(filter)
	if err != nil {
		middleware.GetLoggerFromContext(c).Error("failed to list employees", err)
		apperrors.InternalError(c, "failed to list employees")
		return
	}

	apperrors.RespondWithSuccess(c, http.StatusOK, gin.H{
		"employees": employees,
		"total":     total,
		"page":      filter.Page,
		"limit":     filter.Limit,
	})
}

// Get handles GET /employees/:id.
func (ctrl *EmployeeController) Get(c *gin.Context) {
	employeeID, ok := paramID(c, "id")
	if !ok {
		return
	}

	employee, err := ctrl.employeeService.Get(middleware.GetCompanyID(c), employeeID)
	if err != nil {
		respondEmployeeError(c, err)
		return
	}

	apperrors.RespondWithSuccess(c, http.StatusOK, employee)
}

type updateEmployeeRequest struct {
	FirstName      *string  `json:"first_name" binding:"omitempty,max=100"`
	LastName       *string  `json:"last_name" binding:"omitempty,max=100"`
	DepartmentID   *uint    `json:"department_id"`
	Position       *string  `json:"position" binding:"omitempty,max=100"`
	EmploymentType *string  `json:"employment_type" binding:"omitempty,oneof=full_time part_time contract"`
	BaseSalary     *float64 `json:"base_salary" binding:"omitempty,gte=0"`
	Allowances     *float64 `json:"allowances" binding:"omitempty,gte=0"`
	Deductions     *float64 `json:"deductions" binding:"omitempty,gte=0"`
	WeeklyHours    *int     `json:"weekly_hours" binding:"omitempty,gte=0,lte=80"`
	VacationDays   *int     `json:"vacation_days" binding:"omitempty,gte=0,lte=60"`
}

// Update handles PATCH /employees/:id.
func (ctrl *EmployeeController) Update(c *gin.Context) {
	employeeID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req updateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "invalid update payload")
		return
	}

	employee, err := ctrl.employeeService.Update(middleware.GetCompanyID(c), employeeID, service.UpdateEmployeeInput{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		DepartmentID:   req.DepartmentID,
		Position:       req.Position,
		EmploymentType: req.EmploymentType,
		BaseSalary:     req.BaseSalary,
		Allowances:     req.Allowances,
		Deductions:     req.Deductions,
		WeeklyHours:    req.WeeklyHours,
		VacationDays:   req.VacationDays,
	})
	if err != nil {
		respondEmployeeError(c, err)
		return
	}

	apperrors.RespondWithSuccess(c, http.StatusOK, employee)
}

type suspendRequest struct {
	Until time.Time `json:"until" binding:"required"`
}

// Suspend handles POST /employees/:id/suspend.
func (ctrl *EmployeeController) Suspend(c *gin.Context) {
	employeeID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req suspendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "until timestamp is required")
		return
	}
	if req.Until.Before(time.Now()) {
		apperrors.BadRequest(c, apperrors.ValidationPastDate, "until must be in the future")
		return
	}

	if err := ctrl.employeeService.Suspend(middleware.GetCompanyID(c), employeeID, req.Until); err != nil {
		respondEmployeeError(c, err)
		return
	}

	apperrors.RespondWithMessage(c, http.StatusOK, "employee suspended")
}

// Reinstate handles POST /employees/:id/reinstate.
func (ctrl *EmployeeController) Reinstate(c *gin.Context) {
	employeeID, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := ctrl.employeeService.Reinstate(middleware.GetCompanyID(c), employeeID); err != nil {
		respondEmployeeError(c, err)
		return
	}

	apperrors.RespondWithMessage(c, http.StatusOK, "employee reinstated")
}

// Disable handles DELETE /employees/:id.
func (ctrl *EmployeeController) Disable(c *gin.Context) {
	employeeID, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := ctrl.employeeService.Disable(middleware.GetCompanyID(c), employeeID); err != nil {
		respondEmployeeError(c, err)
		return
	}

	apperrors.RespondWithMessage(c, http.StatusOK, "employee disabled")
}

func respondEmployeeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEmployeeNotFound), errors.Is(err, service.ErrWrongCompany):
		apperrors.NotFound(c, apperrors.EmployeeNotFound, "employee not found")
	case errors.Is(err, service.ErrEmailExists):
		apperrors.Conflict(c, apperrors.AuthEmailAlreadyExists, "email is already in use")
	case errors.Is(err, service.ErrDepartmentNotFound):
		apperrors.BadRequest(c, apperrors.DepartmentNotFound, "department not found")
	default:
		middleware.GetLoggerFromContext(c).Error("employee operation failed", err)
		parsed := apperrors.ParseDBError(err)
		apperrors.RespondWithError(c, parsed.Status, parsed.Code, parsed.Message)
	}
}

// paramID parses a uint path parameter, responding with a validation
// error when it is malformed.
func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "invalid id")
		return 0, false
	}
	return uint(id), true
}

func parseIntQuery(c *gin.Context, name string, fallback int) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil || v < 1 {
		return fallback
	}
	return v
}
