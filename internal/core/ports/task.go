package ports

import (
	"context"
	"time"

	"taskmanager/internal/core/domain"
)

// TaskRepository persists tasks. Every lookup and write is scoped by the
// owner id; a task owned by someone else behaves as if it did not exist.
type TaskRepository interface {
	Insert(ctx context.Context, task domain.Task) error
	FindByID(ctx context.Context, ownerID, taskID string) (domain.Task, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Task, error)
	Update(ctx context.Context, ownerID, taskID string, patch domain.TaskPatch, now time.Time) (domain.Task, error)
	Delete(ctx context.Context, ownerID, taskID string) error
	ToggleCompleted(ctx context.Context, ownerID, taskID string, now time.Time) (domain.Task, error)
	Ping(ctx context.Context) error
}

type TaskService interface {
	ListTasks(ctx context.Context, ownerID string) ([]domain.Task, error)
	GetTask(ctx context.Context, ownerID, taskID string) (domain.Task, error)
	CreateTask(ctx context.Context, ownerID string, input domain.CreateTaskInput) (domain.Task, error)
	UpdateTask(ctx context.Context, ownerID, taskID string, input domain.UpdateTaskInput) (domain.Task, error)
	DeleteTask(ctx context.Context, ownerID, taskID string) error
	ToggleTask(ctx context.Context, ownerID, taskID string) (domain.Task, error)
}
