package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorDetail describes a single API error.
type ErrorDetail struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// ErrorResponse is the standard error envelope for all endpoints.
type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   ErrorDetail `json:"error"`
}

// SuccessResponse is the standard success envelope for all endpoints.
type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// RespondWithError writes an error response with the given status and code.
func RespondWithError(c *gin.Context, status int, code string, message string) {
	c.JSON(status, ErrorResponse{
		Success: false,
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}

// RespondWithErrorDetails writes an error response including extra details.
func RespondWithErrorDetails(c *gin.Context, status int, code string, message string, details interface{}) {
	c.JSON(status, ErrorResponse{
		Success: false,
		Error: ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// RespondWithSuccess writes a success response with data.
func RespondWithSuccess(c *gin.Context, status int, data interface{}) {
	c.JSON(status, SuccessResponse{
		Success: true,
		Data:    data,
	})
}

// RespondWithMessage writes a success response with only a message.
func RespondWithMessage(c *gin.Context, status int, message string) {
	c.JSON(status, SuccessResponse{
		Success: true,
		Message: message,
	})
}

// Convenience helpers for common statuses.

func BadRequest(c *gin.Context, code string, message string) {
	RespondWithError(c, http.StatusBadRequest, code, message)
}

func Unauthorized(c *gin.Context, code string, message string) {
	RespondWithError(c, http.StatusUnauthorized, code, message)
}

func Forbidden(c *gin.Context, code string, message string) {
	RespondWithError(c, http.StatusForbidden, code, message)
}

func NotFound(c *gin.Context, code string, message string) {
	RespondWithError(c, http.StatusNotFound, code, message)
}

func Conflict(c *gin.Context, code string, message string) {
	RespondWithError(c, http.StatusConflict, code, message)
}

func InternalError(c *gin.Context, message string) {
	RespondWithError(c, http.StatusInternalServerError, InternalServerError, message)
}
