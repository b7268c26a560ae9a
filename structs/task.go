// Package structs holds the task types shared by the HTTP, service and data layers.
package structs

import (
	"time"
)

// TaskStatus is the progress state of a task. Any state may move to any other.
type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in-progress"
	StatusCompleted  TaskStatus = "completed"
)

// TaskStatuses lists every accepted status in display order.
var TaskStatuses = []TaskStatus{StatusPending, StatusInProgress, StatusCompleted}

// Valid reports whether s is one of the known statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

func (s TaskStatus) String() string { return string(s) }

// Task is a single to-do item.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      TaskStatus `json:"status"`
	Deadline    *string    `json:"deadline"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// CreateTaskBody is the payload accepted when creating a task.
type CreateTaskBody struct {
	Title       string     `json:"title" binding:"required"`
	Description *string    `json:"description"`
	Status      TaskStatus `json:"status" binding:"omitempty,task_status"`
	Deadline    *string    `json:"deadline"`
}

// UpdateTaskBody carries a partial update; nil fields are left untouched.
type UpdateTaskBody struct {
	Title       *string     `json:"title" binding:"omitempty,min=1"`
	Description *string     `json:"description"`
	Status      *TaskStatus `json:"status" binding:"omitempty,task_status"`
	Deadline    *string     `json:"deadline"`
}

// UpdateStatusBody is the payload of the status patch.
type UpdateStatusBody struct {
	Status TaskStatus `json:"status" binding:"required,task_status"`
}
