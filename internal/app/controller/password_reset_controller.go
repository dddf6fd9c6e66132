package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/proximahr/proximahr-backend/internal/app/service"
	apperrors "github.com/proximahr/proximahr-backend/internal/errors"
	"github.com/proximahr/proximahr-backend/internal/middleware"
)

// PasswordResetController exposes the credential reset endpoints.
type PasswordResetController struct {
	resetService service.PasswordResetService
	frontendURL  string
}

// NewPasswordResetController creates a password reset controller.
func NewPasswordResetController(resetService service.PasswordResetService, frontendURL string) *PasswordResetController {
	return &PasswordResetController{
		resetService: resetService,
		frontendURL:  frontendURL,
	}
}

type requestResetRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// Request handles POST /auth/password-reset/request. The response is
// identical whether or not the email matches an account.
func (ctrl *PasswordResetController) Request(c *gin.Context) {
	var req requestResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "a valid email is required")
		return
	}

	if err := ctrl.resetService.RequestReset(req.Email, ctrl.frontendURL); err != nil {
		middleware.GetLoggerFromContext(c).Error("reset request failed", err)
		apperrors.InternalError(c, "failed to process reset request")
		return
	}

	apperrors.RespondWithMessage(c, http.StatusOK,
		"if the email is registered, a reset link has been sent")
}

// Validate handles GET /auth/password-reset/validate?token=...
func (ctrl *PasswordResetController) Validate(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "token is required")
		return
	}

	if err := ctrl.resetService.ValidateToken(token); err != nil {
		respondResetError(c, err)
		return
	}

	apperrors.RespondWithMessage(c, http.StatusOK, "token is valid")
}

type confirmResetRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// Confirm handles POST /auth/password-reset/confirm.
func (ctrl *PasswordResetController) Confirm(c *gin.Context) {
	var req confirmResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "token and new password are required")
		return
	}

	if err := ctrl.resetService.ResetPassword(req.Token, req.NewPassword); err != nil {
		respondResetError(c, err)
		return
	}

	apperrors.RespondWithMessage(c, http.StatusOK, "password has been reset")
}

func respondResetError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTokenInvalid):
		apperrors.BadRequest(c, apperrors.AuthCodeInvalid, "reset token is invalid")
	case errors.Is(err, service.ErrTokenExpired):
		apperrors.BadRequest(c, apperrors.AuthCodeExpired, "reset token has expired")
	case errors.Is(err, service.ErrTokenUsed):
		apperrors.BadRequest(c, apperrors.AuthCodeUsed, "reset token has already been used")
	case errors.Is(err, service.ErrPasswordTooWeak):
		apperrors.BadRequest(c, apperrors.ValidationPasswordWeak, "password must be at least 8 characters")
	default:
		middleware.GetLoggerFromContext(c).Error("password reset failed", err)
		apperrors.InternalError(c, "password reset failed")
	}
}
