package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/ncobase/taskd/logging/logger"
	"github.com/ncobase/taskd/logging/observes"
	"github.com/ncobase/taskd/net/resp"
)

// Recovery turns a handler panic into a 500 envelope and reports it.
func Recovery(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			err, ok := rec.(error)
			if !ok {
				err = fmt.Errorf("panic: %v", rec)
			}
			ctx := c.Request.Context()
			l.Error(ctx, "panic recovered", "path", c.Request.URL.Path, "error", err)
			observes.CaptureError(ctx, err, map[string]string{"route": c.FullPath()})
			if !c.Writer.Written() {
				resp.Fail(c.Writer, resp.InternalServer("internal server error"))
			}
			c.Abort()
		}()
		c.Next()
	}
}
