// Package middleware provides the gin middleware chain of the task API.
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/ncobase/taskd/ctxutil"
)

// Trace reads the trace id from the X-Trace-ID header, or generates one,
// stores it in the request context and echoes it back.
func Trace() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if traceID := c.GetHeader(ctxutil.TraceIDHeader); traceID != "" {
			ctx = ctxutil.SetTraceID(ctx, traceID)
		}
		ctx, traceID := ctxutil.EnsureTraceID(ctx)

		c.Request = c.Request.WithContext(ctx)
		c.Set(ctxutil.TraceIDKey, traceID)
		c.Header(ctxutil.TraceIDHeader, traceID)

		c.Next()
	}
}
