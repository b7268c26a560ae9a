package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/ncobase/taskd/logging/logger"
)

// Default returns the request chain in order. Recovery sits inside Logger
// so a recovered panic is still logged as a 500 request.
func Default(l *logger.Logger) []gin.HandlerFunc {
	return []gin.HandlerFunc{
		Trace(),
		Logger(l),
		Recovery(l),
	}
}
