// Package handler provides the HTTP handlers of the task API.
package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/ncobase/taskd/ecode"
	"github.com/ncobase/taskd/logging/logger"
	"github.com/ncobase/taskd/net/resp"
	"github.com/ncobase/taskd/service"
	"github.com/ncobase/taskd/validation/validator"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler aggregates all HTTP handlers.
type Handler struct {
	Task   *TaskHandler
	Health *HealthHandler
}

// NewHandler creates a new handler instance with all sub-handlers initialized.
func NewHandler(svc *service.Service, store Pinger, logger *logger.Logger) *Handler {
	if err := validator.RegisterBinding(); err != nil {
		logger.Error(context.Background(), "failed to register validation rules", "error", err)
	}
	return &Handler{
		Task:   NewTaskHandler(svc.Task, logger),
		Health: NewHealthHandler(store, logger),
	}
}

// RegisterRoutes registers all HTTP routes.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.HandleMethodNotAllowed = true
	r.NoRoute(func(c *gin.Context) {
		resp.Fail(c.Writer, resp.NotFound(ecode.Text(ecode.NothingFound)))
	})
	r.NoMethod(func(c *gin.Context) {
		resp.Fail(c.Writer, resp.NotAllowed(ecode.Text(ecode.MethodNotAllowed)))
	})

	r.GET("/health", h.Health.Check)

	api := r.Group("/api")
	{
		tasks := api.Group("/tasks")
		{
			tasks.POST("", h.Task.Create)
			tasks.GET("", h.Task.List)
			tasks.GET("/:id", h.Task.Get)
			tasks.PUT("/:id", h.Task.Update)
			tasks.PATCH("/:id/status", h.Task.UpdateStatus)
			tasks.DELETE("/:id", h.Task.Delete)
		}
	}
}
