package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/ncobase/taskd/ecode"
	"github.com/ncobase/taskd/logging/logger"
	"github.com/ncobase/taskd/net/resp"
)

// HealthHandler serves the liveness probe.
type HealthHandler struct {
	store  Pinger
	logger *logger.Logger
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(store Pinger, logger *logger.Logger) *HealthHandler {
	return &HealthHandler{store: store, logger: logger}
}

// Check pings the store and answers {"status":"healthy"}.
func (h *HealthHandler) Check(c *gin.Context) {
	ctx := c.Request.Context()
	if h.store != nil {
		if err := h.store.Ping(ctx); err != nil {
			h.logger.Error(ctx, "health check failed", "error", err)
			resp.Fail(c.Writer, resp.ServiceUnavailable(ecode.Text(ecode.ServiceUnavailable), map[string]string{"status": "unhealthy"}))
			return
		}
	}
	resp.Success(c.Writer, map[string]string{"status": "healthy"})
}
