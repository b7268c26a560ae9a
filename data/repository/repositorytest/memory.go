// Package repositorytest provides an in-memory TaskRepository for tests.
package repositorytest

import (
	"context"
	"fmt"
	"sync"

	"github.com/ncobase/taskd/data/repository"
	"github.com/ncobase/taskd/structs"
)

// Memory is a TaskRepository kept in a map. Insertion order is preserved.
// Setting Err makes every call fail with it.
type Memory struct {
	mu    sync.Mutex
	order []string
	tasks map[string]structs.Task

	Err error
	// BeforeUpdate, when set, runs inside UpdateFields before the write.
	BeforeUpdate func(id string)
}

var _ repository.TaskRepository = (*Memory)(nil)

// NewMemory returns an empty repository.
func NewMemory() *Memory {
	return &Memory{tasks: make(map[string]structs.Task)}
}

// Len returns the number of stored tasks.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tasks)
}

// Remove deletes id directly, bypassing Err.
func (m *Memory) Remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.remove(id)
}

func (m *Memory) remove(id string) int64 {
	if _, ok := m.tasks[id]; !ok {
		return 0
	}
	delete(m.tasks, id)
	for i, v := range m.order {
		if v == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return 1
}

func clone(t structs.Task) *structs.Task {
	if t.Deadline != nil {
		d := *t.Deadline
		t.Deadline = &d
	}
	return &t
}

func (m *Memory) Insert(_ context.Context, task *structs.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.tasks[task.ID]; ok {
		return fmt.Errorf("duplicate id %s", task.ID)
	}
	m.tasks[task.ID] = *clone(*task)
	m.order = append(m.order, task.ID)
	return nil
}

func (m *Memory) FindOne(_ context.Context, id string) (*structs.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	t, ok := m.tasks[id]
	if !ok {
		return nil, nil
	}
	return clone(t), nil
}

func (m *Memory) FindAll(_ context.Context, limit int64) ([]*structs.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	out := make([]*structs.Task, 0, len(m.order))
	for _, id := range m.order {
		if limit > 0 && int64(len(out)) >= limit {
			break
		}
		out = append(out, clone(m.tasks[id]))
	}
	return out, nil
}

func (m *Memory) UpdateFields(_ context.Context, id string, changes *repository.TaskChanges) (*structs.Task, error) {
	if m.BeforeUpdate != nil {
		m.BeforeUpdate(id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	t, ok := m.tasks[id]
	if !ok {
		return nil, nil
	}
	if changes.Title != nil {
		t.Title = *changes.Title
	}
	if changes.Description != nil {
		t.Description = *changes.Description
	}
	if changes.Status != nil {
		t.Status = *changes.Status
	}
	if changes.Deadline != nil {
		d := *changes.Deadline
		t.Deadline = &d
	}
	t.UpdatedAt = changes.UpdatedAt
	m.tasks[id] = t
	return clone(t), nil
}

func (m *Memory) DeleteOne(_ context.Context, id string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return 0, m.Err
	}
	return m.remove(id), nil
}
