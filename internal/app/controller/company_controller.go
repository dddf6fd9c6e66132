package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/proximahr/proximahr-backend/internal/app/service"
	apperrors "github.com/proximahr/proximahr-backend/internal/errors"
	"github.com/proximahr/proximahr-backend/internal/middleware"
)

// CompanyController exposes company registration and admin creation.
type CompanyController struct {
	companyService service.CompanyService
}

// NewCompanyController creates a company controller.
func NewCompanyController(companyService service.CompanyService) *CompanyController {
	return &CompanyController{companyService: companyService}
}

type registerCompanyRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=200"`
	Email    string `json:"email" binding:"required,email"`
	Address  string `json:"address" binding:"max=500"`
	Industry string `json:"industry" binding:"max=100"`
}

// Register handles POST /companies/register.
func (ctrl *CompanyController) Register(c *gin.Context) {
	var req registerCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "company name and email are required")
		return
	}

	company, err := ctrl.companyService.Register(service.RegisterCompanyInput{
		Name:     req.Name,
		Email:    req.Email,
		Address:  req.Address,
		Industry: req.Industry,
	})
	if err != nil {
		if errors.Is(err, service.ErrCompanyExists) {
			apperrors.Conflict(c, apperrors.CompanyAlreadyRegistered, "company name is already registered")
			return
		}
		middleware.GetLoggerFromContext(c).Error("company registration failed", err)
		apperrors.InternalError(c, "company registration failed")
		return
	}

	apperrors.RespondWithSuccess(c, http.StatusCreated, company)
}

type createAdminRequest struct {
	Code      string `json:"code" binding:"required,len=6"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"first_name" binding:"required,max=100"`
	LastName  string `json:"last_name" binding:"required,max=100"`
}

// CreateAdmin handles POST /companies/admin.
func (ctrl *CompanyController) CreateAdmin(c *gin.Context) {
	var req createAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "code, email, password and name are required")
		return
	}

	admin, err := ctrl.companyService.CreateAdmin(service.CreateAdminInput{
		Code:      req.Code,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidAdminCode):
			apperrors.BadRequest(c, apperrors.CompanyAdminCodeInvalid, "admin creation code is invalid or already used")
		case errors.Is(err, service.ErrEmailExists):
			apperrors.Conflict(c, apperrors.AuthEmailAlreadyExists, "email is already in use")
		case errors.Is(err, service.ErrPasswordTooWeak):
			apperrors.BadRequest(c, apperrors.ValidationPasswordWeak, "password must be at least 8 characters")
		default:
			middleware.GetLoggerFromContext(c).Error("admin creation failed", err)
			apperrors.InternalError(c, "admin creation failed")
		}
		return
	}

	apperrors.RespondWithSuccess(c, http.StatusCreated, admin)
}

// Get handles GET /companies/me for the authenticated user's company.
func (ctrl *CompanyController) Get(c *gin.Context) {
	companyID := middleware.GetCompanyID(c)

	company, err := ctrl.companyService.GetByID(companyID)
	if err != nil {
		if errors.Is(err, service.ErrCompanyNotFound) {
			apperrors.NotFound(c, apperrors.CompanyNotFound, "company not found")
			return
		}
		middleware.GetLoggerFromContext(c).Error("failed to load company", err)
		apperrors.InternalError(c, "failed to load company")
		return
	}

	apperrors.RespondWithSuccess(c, http.StatusOK, company)
}
