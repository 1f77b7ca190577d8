package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"taskmanager/internal/core/domain"
	"taskmanager/internal/core/ports"
)

type TaskService struct {
	taskRepository ports.TaskRepository
	now            func() time.Time
}

func NewTaskService(taskRepository ports.TaskRepository) *TaskService {
	return &TaskService{taskRepository: taskRepository, now: storeNow}
}

// storeNow truncates to milliseconds, the precision the stores keep.
func storeNow() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

func (s *TaskService) ListTasks(ctx context.Context, ownerID string) ([]domain.Task, error) {
	tasks, err := s.taskRepository.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	return tasks, nil
}

func (s *TaskService) GetTask(ctx context.Context, ownerID, taskID string) (domain.Task, error) {
	id, err := parseTaskID(taskID)
	if err != nil {
		return domain.Task{}, err
	}
	return s.taskRepository.FindByID(ctx, ownerID, id)
}

func (s *TaskService) CreateTask(ctx context.Context, ownerID string, input domain.CreateTaskInput) (domain.Task, error) {
	task, err := domain.ValidateCreateTask(input)
	if err != nil {
		return domain.Task{}, err
	}

	now := s.now()
	task.ID = domain.NewID()
	task.UserID = ownerID
	task.Completed = false
	task.CreatedAt = now
	task.UpdatedAt = now

	if err := s.taskRepository.Insert(ctx, task); err != nil {
		return domain.Task{}, fmt.Errorf("create task: %w", err)
	}
	return task, nil
}

func (s *TaskService) UpdateTask(ctx context.Context, ownerID, taskID string, input domain.UpdateTaskInput) (domain.Task, error) {
	id, err := parseTaskID(taskID)
	if err != nil {
		return domain.Task{}, err
	}

	patch, err := domain.ValidateUpdateTask(input)
	if err != nil {
		return domain.Task{}, err
	}

	if patch.IsEmpty() {
		// Nothing to change; still answer with the stored task, or NotFound.
		return s.taskRepository.FindByID(ctx, ownerID, id)
	}
	return s.taskRepository.Update(ctx, ownerID, id, patch, s.now())
}

func (s *TaskService) DeleteTask(ctx context.Context, ownerID, taskID string) error {
	id, err := parseTaskID(taskID)
	if err != nil {
		return err
	}
	return s.taskRepository.Delete(ctx, ownerID, id)
}

func (s *TaskService) ToggleTask(ctx context.Context, ownerID, taskID string) (domain.Task, error) {
	id, err := parseTaskID(taskID)
	if err != nil {
		return domain.Task{}, err
	}
	return s.taskRepository.ToggleCompleted(ctx, ownerID, id, s.now())
}

func parseTaskID(taskID string) (string, error) {
	if !domain.IsValidID(taskID) {
		return "", domain.ErrInvalidTaskID
	}
	return strings.ToLower(taskID), nil
}

var _ ports.TaskService = (*TaskService)(nil)
