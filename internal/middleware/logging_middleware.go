package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/proximahr/proximahr-backend/pkg/logger"
)

const loggerKey = "logger"

// RequestLogger attaches a request-scoped logger carrying a request id
// and logs request completion with latency.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header("X-Request-ID", requestID)

		reqLogger := logger.WithContext(map[string]interface{}{
			"request_id": requestID,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
		})
		c.Set(loggerKey, reqLogger)

		c.Next()

		fields := map[string]interface{}{
			"status":     c.Writer.Status(),
			"latency_ms": time.Since(start).Milliseconds(),
			"client_ip":  c.ClientIP(),
		}
		if len(c.Errors) > 0 {
			fields["errors"] = c.Errors.String()
		}

		if c.Writer.Status() >= 500 {
			reqLogger.Error("request failed", nil, fields)
		} else {
			reqLogger.Info("request completed", fields)
		}
	}
}

// GetLoggerFromContext returns the request-scoped logger, falling back
// to the global logger outside of a request.
func GetLoggerFromContext(c *gin.Context) *logger.Logger {
	if v, ok := c.Get(loggerKey); ok {
		if l, ok := v.(*logger.Logger); ok {
			return l
		}
	}
	return logger.Get()
}
