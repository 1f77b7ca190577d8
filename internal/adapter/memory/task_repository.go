// Package memory keeps tasks and users in process memory. It backs the
// "memory" store driver used for local runs and tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"taskmanager/internal/core/domain"
	"taskmanager/internal/core/ports"
)

type TaskRepository struct {
	mu    sync.RWMutex
	tasks map[string]domain.Task
}

var _ ports.TaskRepository = (*TaskRepository)(nil)

func NewTaskRepository() *TaskRepository {
	return &TaskRepository{tasks: make(map[string]domain.Task)}
}

func (r *TaskRepository) Insert(_ context.Context, task domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks[task.ID] = cloneTask(task)
	return nil
}

func (r *TaskRepository) FindByID(_ context.Context, ownerID, taskID string) (domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	task, ok := r.tasks[taskID]
	if !ok || task.UserID != ownerID {
		return domain.Task{}, domain.ErrTaskNotFound
	}
	return cloneTask(task), nil
}

func (r *TaskRepository) ListByOwner(_ context.Context, ownerID string) ([]domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tasks := make([]domain.Task, 0)
	for _, task := range r.tasks {
		if task.UserID == ownerID {
			tasks = append(tasks, cloneTask(task))
		}
	}
	sort.Slice(tasks, func(i, j int) bool {
		if tasks[i].CreatedAt.Equal(tasks[j].CreatedAt) {
			return tasks[i].ID > tasks[j].ID
		}
		return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
	})
	return tasks, nil
}

func (r *TaskRepository) Update(_ context.Context, ownerID, taskID string, patch domain.TaskPatch, now time.Time) (domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[taskID]
	if !ok || task.UserID != ownerID {
		return domain.Task{}, domain.ErrTaskNotFound
	}
	patch.Apply(&task, now)
	r.tasks[taskID] = cloneTask(task)
	return cloneTask(task), nil
}

func (r *TaskRepository) Delete(_ context.Context, ownerID, taskID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[taskID]
	if !ok || task.UserID != ownerID {
		return domain.ErrTaskNotFound
	}
	delete(r.tasks, taskID)
	return nil
}

func (r *TaskRepository) ToggleCompleted(_ context.Context, ownerID, taskID string, now time.Time) (domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[taskID]
	if !ok || task.UserID != ownerID {
		return domain.Task{}, domain.ErrTaskNotFound
	}
	task.Completed = !task.Completed
	task.UpdatedAt = now
	r.tasks[taskID] = task
	return cloneTask(task), nil
}

func (r *TaskRepository) Ping(context.Context) error {
	return nil
}

// cloneTask copies the pointer fields so callers never share state with the map.
func cloneTask(task domain.Task) domain.Task {
	if task.Description != nil {
		value := *task.Description
		task.Description = &value
	}
	if task.Category != nil {
		value := *task.Category
		task.Category = &value
	}
	if task.DueDate != nil {
		value := *task.DueDate
		task.DueDate = &value
	}
	return task
}
