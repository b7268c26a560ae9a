package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/ncobase/taskd/ecode"
	"github.com/ncobase/taskd/logging/logger"
	"github.com/ncobase/taskd/logging/observes"
	"github.com/ncobase/taskd/net/resp"
	"github.com/ncobase/taskd/service"
	"github.com/ncobase/taskd/structs"
	"github.com/ncobase/taskd/validation/validator"
)

const taskSubject = "Task"

// TaskHandler handles HTTP requests for tasks.
type TaskHandler struct {
	svc    *service.TaskService
	logger *logger.Logger
}

// NewTaskHandler creates a new task handler.
func NewTaskHandler(svc *service.TaskService, logger *logger.Logger) *TaskHandler {
	return &TaskHandler{
		svc:    svc,
		logger: logger,
	}
}

// Create handles task creation.
func (h *TaskHandler) Create(c *gin.Context) {
	var body structs.CreateTaskBody
	if !h.bind(c, &body) {
		return
	}

	task, err := h.svc.Create(c.Request.Context(), &body)
	if err != nil {
		h.fail(c, "failed to create task", err)
		return
	}

	resp.Success(c.Writer, task)
}

// List handles task listing.
func (h *TaskHandler) List(c *gin.Context) {
	tasks, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.fail(c, "failed to list tasks", err)
		return
	}

	resp.Success(c.Writer, tasks)
}

// Get handles task retrieval.
func (h *TaskHandler) Get(c *gin.Context) {
	task, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "failed to get task", err)
		return
	}

	resp.Success(c.Writer, task)
}

// Update handles partial field updates.
func (h *TaskHandler) Update(c *gin.Context) {
	var body structs.UpdateTaskBody
	if !h.bind(c, &body) {
		return
	}

	task, err := h.svc.Update(c.Request.Context(), c.Param("id"), &body)
	if err != nil {
		h.fail(c, "failed to update task", err)
		return
	}

	resp.Success(c.Writer, task)
}

// UpdateStatus handles the status patch.
func (h *TaskHandler) UpdateStatus(c *gin.Context) {
	var body structs.UpdateStatusBody
	if !h.bind(c, &body) {
		return
	}

	task, err := h.svc.UpdateStatus(c.Request.Context(), c.Param("id"), body.Status)
	if err != nil {
		h.fail(c, "failed to update task status", err)
		return
	}

	resp.Success(c.Writer, task)
}

// Delete handles task deletion.
func (h *TaskHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, "failed to delete task", err)
		return
	}

	resp.Success(c.Writer, ecode.Done(taskSubject, "deleted"))
}

// bind decodes and validates the JSON body, answering 422 on failure.
func (h *TaskHandler) bind(c *gin.Context, body any) bool {
	if err := c.ShouldBindJSON(body); err != nil {
		h.logger.Warn(c.Request.Context(), "invalid request", "path", c.FullPath(), "error", err)
		resp.Fail(c.Writer, resp.UnprocessableEntity(ecode.Text(ecode.ParamErr), validator.Translate(err)))
		return false
	}
	return true
}

// fail maps a service error onto the response envelope.
func (h *TaskHandler) fail(c *gin.Context, msg string, err error) {
	ctx := c.Request.Context()
	id := c.Param("id")

	var verr *service.ValidationError
	switch {
	case errors.Is(err, service.ErrTaskNotFound):
		resp.Fail(c.Writer, resp.NotFound(ecode.NotFound(taskSubject)))
	case errors.As(err, &verr):
		h.logger.Warn(ctx, "invalid request", "id", id, "error", err)
		resp.Fail(c.Writer, resp.UnprocessableEntity(ecode.Text(ecode.ParamErr), verr.Fields))
	default:
		h.logger.Error(ctx, msg, "id", id, "error", err)
		observes.CaptureError(ctx, err, map[string]string{"route": c.FullPath()})
		resp.Fail(c.Writer, resp.InternalServer(msg))
	}
}
