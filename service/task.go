package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ncobase/taskd/data/repository"
	"github.com/ncobase/taskd/logging/logger"
	"github.com/ncobase/taskd/structs"
)

// ListLimit caps the number of tasks returned by List.
const ListLimit = 1000

// TaskService handles task-related business logic.
type TaskService struct {
	repo   repository.TaskRepository
	logger *logger.Logger
	now    func() time.Time
	newID  func() string
}

// NewTaskService creates a new task service.
func NewTaskService(repo repository.TaskRepository, logger *logger.Logger) *TaskService {
	return &TaskService{
		repo:   repo,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
		newID:  uuid.NewString,
	}
}

// Create validates the body, applies defaults and stores a new task.
func (s *TaskService) Create(ctx context.Context, body *structs.CreateTaskBody) (*structs.Task, error) {
	if body == nil {
		body = &structs.CreateTaskBody{}
	}
	if err := validate(body); err != nil {
		return nil, err
	}

	status := body.Status
	if status == "" {
		status = structs.StatusPending
	}

	var description string
	if body.Description != nil {
		description = *body.Description
	}

	now := s.now()
	task := &structs.Task{
		ID:          s.newID(),
		Title:       body.Title,
		Description: description,
		Status:      status,
		Deadline:    body.Deadline,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Insert(ctx, task); err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "task created", "id", task.ID)
	return task, nil
}

// List returns up to ListLimit tasks in store order.
func (s *TaskService) List(ctx context.Context) ([]*structs.Task, error) {
	return s.repo.FindAll(ctx, ListLimit)
}

// Get returns the task with the given id.
func (s *TaskService) Get(ctx context.Context, id string) (*structs.Task, error) {
	task, err := s.repo.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, ErrTaskNotFound
	}
	return task, nil
}

// Update merges the non-nil fields of body into the task and refreshes
// updated_at.
func (s *TaskService) Update(ctx context.Context, id string, body *structs.UpdateTaskBody) (*structs.Task, error) {
	if body == nil {
		body = &structs.UpdateTaskBody{}
	}
	if err := validate(body); err != nil {
		return nil, err
	}

	return s.apply(ctx, id, &repository.TaskChanges{
		Title:       body.Title,
		Description: body.Description,
		Status:      body.Status,
		Deadline:    body.Deadline,
	})
}

// UpdateStatus sets only the status and refreshes updated_at.
func (s *TaskService) UpdateStatus(ctx context.Context, id string, status structs.TaskStatus) (*structs.Task, error) {
	if err := validate(&structs.UpdateStatusBody{Status: status}); err != nil {
		return nil, err
	}
	return s.apply(ctx, id, &repository.TaskChanges{Status: &status})
}

// apply checks the task exists, then writes changes and returns the stored
// result. A task deleted between the two steps is reported as not found.
func (s *TaskService) apply(ctx context.Context, id string, changes *repository.TaskChanges) (*structs.Task, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	changes.UpdatedAt = s.nextUpdatedAt(existing)

	updated, err := s.repo.UpdateFields(ctx, id, changes)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		s.logger.Warn(ctx, "task deleted during update", "id", id)
		return nil, ErrTaskNotFound
	}

	s.logger.Info(ctx, "task updated", "id", id)
	return updated, nil
}

// nextUpdatedAt returns the current time, moved forward if needed so that
// updated_at always advances past both timestamps of existing.
func (s *TaskService) nextUpdatedAt(existing *structs.Task) time.Time {
	now := s.now()
	floor := existing.UpdatedAt
	if existing.CreatedAt.After(floor) {
		floor = existing.CreatedAt
	}
	if !now.After(floor) {
		now = floor.Add(time.Microsecond)
	}
	return now
}

// Delete removes the task.
func (s *TaskService) Delete(ctx context.Context, id string) error {
	n, err := s.repo.DeleteOne(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrTaskNotFound
	}
	s.logger.Info(ctx, "task deleted", "id", id)
	return nil
}
