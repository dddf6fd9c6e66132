package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/proximahr/proximahr-backend/internal/errors"
	"github.com/proximahr/proximahr-backend/pkg/util"
)

// Context keys set by Authenticate.
const (
	ContextUserID    = "user_id"
	ContextEmail     = "email"
	ContextRole      = "role"
	ContextCompanyID = "company_id"
)

// Authenticate validates the Bearer access token and stores its claims
// on the request context.
func Authenticate(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			apperrors.Unauthorized(c, apperrors.AuthUnauthorized, "authorization header required")
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			apperrors.Unauthorized(c, apperrors.AuthTokenInvalid, "authorization header must be a Bearer token")
			c.Abort()
			return
		}

		claims, err := util.ValidateToken(parts[1], jwtSecret)
		if err != nil {
			if errors.Is(err, util.ErrExpiredToken) {
				apperrors.Unauthorized(c, apperrors.AuthTokenExpired, "access token has expired")
			} else {
				apperrors.Unauthorized(c, apperrors.AuthTokenInvalid, "access token is invalid")
			}
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextEmail, claims.Email)
		c.Set(ContextRole, claims.Role)
		c.Set(ContextCompanyID, claims.CompanyID)
		c.Next()
	}
}

// RequireAdmin allows only users holding the admin role. It must run
// after Authenticate.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextRole)
		if role != "admin" {
			apperrors.Forbidden(c, apperrors.AuthzAdminOnly, "admin access required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetUserID returns the authenticated user's id from the context.
func GetUserID(c *gin.Context) uint {
	if v, ok := c.Get(ContextUserID); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

// GetCompanyID returns the authenticated user's company id.
func GetCompanyID(c *gin.Context) uint {
	if v, ok := c.Get(ContextCompanyID); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}
