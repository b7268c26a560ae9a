package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ncobase/taskd/logging/logger"
)

// Logger logs one line per request after it completes.
func Logger(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		duration := time.Since(start)
		status := c.Writer.Status()

		keyvals := []any{
			"method", method,
			"path", path,
			"status", status,
			"duration", duration.String(),
			"ip", c.ClientIP(),
		}
		switch {
		case status >= 500:
			l.Error(c.Request.Context(), "HTTP request", keyvals...)
		case status >= 400:
			l.Warn(c.Request.Context(), "HTTP request", keyvals...)
		default:
			l.Info(c.Request.Context(), "HTTP request", keyvals...)
		}
	}
}
