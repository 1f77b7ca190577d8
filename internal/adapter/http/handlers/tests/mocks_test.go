package tests

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"

	"taskmanager/internal/adapter/http/middleware"
	"taskmanager/internal/core/domain"
)

const (
	testUserID = "64b7f0c2a1b2c3d4e5f60718"
	testTaskID = "64b7f0c2a1b2c3d4e5f60799"
)

type taskServiceMock struct {
	mock.Mock
}

func (m *taskServiceMock) ListTasks(ctx context.Context, ownerID string) ([]domain.Task, error) {
	args := m.Called(ctx, ownerID)

	var tasks []domain.Task
	if value := args.Get(0); value != nil {
		tasks = value.([]domain.Task)
	}
	return tasks, args.Error(1)
}

func (m *taskServiceMock) GetTask(ctx context.Context, ownerID, taskID string) (domain.Task, error) {
	args := m.Called(ctx, ownerID, taskID)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) CreateTask(ctx context.Context, ownerID string, input domain.CreateTaskInput) (domain.Task, error) {
	args := m.Called(ctx, ownerID, input)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) UpdateTask(ctx context.Context, ownerID, taskID string, input domain.UpdateTaskInput) (domain.Task, error) {
	args := m.Called(ctx, ownerID, taskID, input)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) DeleteTask(ctx context.Context, ownerID, taskID string) error {
	args := m.Called(ctx, ownerID, taskID)
	return args.Error(0)
}

func (m *taskServiceMock) ToggleTask(ctx context.Context, ownerID, taskID string) (domain.Task, error) {
	args := m.Called(ctx, ownerID, taskID)
	return args.Get(0).(domain.Task), args.Error(1)
}

type authServiceMock struct {
	mock.Mock
}

func (m *authServiceMock) Register(ctx context.Context, input domain.RegisterInput) (domain.Session, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(domain.Session), args.Error(1)
}

func (m *authServiceMock) Login(ctx context.Context, input domain.LoginInput) (domain.Session, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(domain.Session), args.Error(1)
}

func (m *authServiceMock) Authenticate(ctx context.Context, token string) (domain.User, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(domain.User), args.Error(1)
}

// withUser stands in for the auth middleware.
func withUser(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		middleware.SetUser(c, domain.User{ID: userID, Username: "alice", Email: "alice@example.com"})
		c.Next()
	}
}
