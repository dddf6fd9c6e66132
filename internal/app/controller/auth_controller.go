package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/proximahr/proximahr-backend/internal/app/model"
	"github.com/proximahr/proximahr-backend/internal/app/service"
	apperrors "github.com/proximahr/proximahr-backend/internal/errors"
	"github.com/proximahr/proximahr-backend/internal/middleware"
)

// AuthController exposes login, token refresh, logout and password
// change endpoints.
type AuthController struct {
	authService service.AuthService
}

// NewAuthController creates an auth controller.
func NewAuthController(authService service.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	User         *model.User `json:"user"`
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
}

// Login handles POST /auth/login.
func (ctrl *AuthController) Login(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "email and password are required")
		return
	}

	user, pair, err := ctrl.authService.Login(req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			apperrors.Unauthorized(c, apperrors.AuthInvalidCredentials, "invalid email or password")
		case errors.Is(err, service.ErrAccountDisabled):
			apperrors.Forbidden(c, apperrors.AuthAccountDisabled, "account is disabled")
		case errors.Is(err, service.ErrAccountSuspended):
			apperrors.Forbidden(c, apperrors.EmployeeSuspended, "account is suspended")
		default:
			log.Error("login failed", err)
			apperrors.InternalError(c, "login failed")
		}
		return
	}

	apperrors.RespondWithSuccess(c, http.StatusOK, loginResponse{
		User:         user,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// Refresh handles POST /auth/refresh.
func (ctrl *AuthController) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "refresh_token is required")
		return
	}

	pair, err := ctrl.authService.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTokenRevoked):
			apperrors.Unauthorized(c, apperrors.AuthTokenRevoked, "refresh token has been revoked")
		case errors.Is(err, service.ErrInvalidRefresh):
			apperrors.Unauthorized(c, apperrors.AuthTokenInvalid, "refresh token is invalid")
		case errors.Is(err, service.ErrAccountDisabled):
			apperrors.Forbidden(c, apperrors.AuthAccountDisabled, "account is not active")
		default:
			middleware.GetLoggerFromContext(c).Error("token refresh failed", err)
			apperrors.InternalError(c, "token refresh failed")
		}
		return
	}

	apperrors.RespondWithSuccess(c, http.StatusOK, pair)
}

// Logout handles POST /auth/logout.
func (ctrl *AuthController) Logout(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "refresh_token is required")
		return
	}

	if err := ctrl.authService.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		middleware.GetLoggerFromContext(c).Error("logout failed", err)
		apperrors.InternalError(c, "logout failed")
		return
	}

	apperrors.RespondWithMessage(c, http.StatusOK, "logged out")
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

// ChangePassword handles POST /auth/change-password.
func (ctrl *AuthController) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "current and new password are required")
		return
	}

	userID := middleware.GetUserID(c)
	err := ctrl.authService.ChangePassword(userID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			apperrors.Unauthorized(c, apperrors.AuthInvalidCredentials, "current password is incorrect")
		case errors.Is(err, service.ErrPasswordTooWeak):
			apperrors.BadRequest(c, apperrors.ValidationPasswordWeak, "password must be at least 8 characters")
		default:
			middleware.GetLoggerFromContext(c).Error("password change failed", err)
			apperrors.InternalError(c, "password change failed")
		}
		return
	}

	apperrors.RespondWithMessage(c, http.StatusOK, "password changed")
}
