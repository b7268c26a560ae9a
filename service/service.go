// Package service implements the task operations on top of the repository.
package service

import (
	"github.com/ncobase/taskd/data"
	"github.com/ncobase/taskd/logging/logger"
)

// Service aggregates all business logic services.
type Service struct {
	Task *TaskService
}

// NewService creates a new service instance with all sub-services initialized.
func NewService(d *data.Data, logger *logger.Logger) *Service {
	return &Service{
		Task: NewTaskService(d.TaskRepo, logger),
	}
}
