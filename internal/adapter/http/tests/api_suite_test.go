package tests

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	httpadapter "taskmanager/internal/adapter/http"
	"taskmanager/internal/adapter/http/dto"
	"taskmanager/internal/adapter/http/handlers"
	"taskmanager/internal/adapter/memory"
	"taskmanager/internal/adapter/password"
	"taskmanager/internal/adapter/token"
	appservice "taskmanager/internal/app/service"
	"taskmanager/internal/core/ports"
	"taskmanager/pkg/apierrors"
)

// TaskAPISuite drives the full router against whatever stores openStores
// returns. Each test starts from empty stores.
type TaskAPISuite struct {
	suite.Suite

	openStores func() (ports.TaskRepository, ports.UserRepository)
	router     *gin.Engine
}

func TestTaskAPISuite_Memory(t *testing.T) {
	suite.Run(t, &TaskAPISuite{
		openStores: func() (ports.TaskRepository, ports.UserRepository) {
			return memory.NewTaskRepository(), memory.NewUserRepository()
		},
	})
}

func (s *TaskAPISuite) SetupTest() {
	tasks, users := s.openStores()

	tokens := token.NewJWTManager(token.Config{
		SecretKey: "integration-secret",
		ExpiresIn: time.Hour,
		Issuer:    "task-manager",
	})
	authService := appservice.NewAuthService(users, password.NewBcryptHasher(bcrypt.MinCost), tokens)

	router, err := httpadapter.NewRouter(zap.NewNop(), httpadapter.RouterConfig{CorsOrigins: []string{"*"}})
	s.Require().NoError(err)
	httpadapter.RegisterRoutes(router, httpadapter.Handlers{
		Health: handlers.NewHealthHandler(tasks, "task-manager", "test"),
		Auth:   handlers.NewAuthHandler(authService),
		Task:   handlers.NewTaskHandler(appservice.NewTaskService(tasks)),
	}, authService, httpadapter.AuthRateLimit{})

	s.router = router
}

func (s *TaskAPISuite) do(method, path, token, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *TaskAPISuite) register(username string) string {
	body := `{"username":"` + username + `","email":"` + username + `@example.com","password":"secret1"}`
	rec := s.do(http.MethodPost, "/api/auth/register", "", body)
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	var got dto.AuthResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	s.Require().NotEmpty(got.Token)
	return got.Token
}

func (s *TaskAPISuite) createTask(token, body string) dto.TaskItem {
	rec := s.do(http.MethodPost, "/api/tasks", token, body)
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	var got dto.TaskResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	return got.Task
}

func (s *TaskAPISuite) decodeError(rec *httptest.ResponseRecorder) apierrors.JsonErr {
	var got apierrors.JsonErr
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	return got
}

func (s *TaskAPISuite) TestTaskLifecycle() {
	token := s.register("alice")

	task := s.createTask(token, `{"title":"Buy milk","priority":"low"}`)
	s.Require().Equal("Buy milk", task.Title)
	s.Require().Equal("low", task.Priority)
	s.Require().False(task.Completed)
	s.Require().Nil(task.DueDate)

	rec := s.do(http.MethodGet, "/api/tasks", token, "")
	s.Require().Equal(http.StatusOK, rec.Code)
	var list dto.TaskListResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &list))
	s.Require().Equal(1, list.Count)
	s.Require().Equal(task.ID, list.Tasks[0].ID)

	rec = s.do(http.MethodPatch, "/api/tasks/"+task.ID+"/toggle", token, "")
	s.Require().Equal(http.StatusOK, rec.Code)
	var toggled dto.TaskResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &toggled))
	s.Require().True(toggled.Task.Completed)
	s.Require().Equal("Task completed successfully", toggled.Message)

	rec = s.do(http.MethodPut, "/api/tasks/"+task.ID, token, `{"title":"Buy milk and eggs"}`)
	s.Require().Equal(http.StatusOK, rec.Code)
	var updated dto.TaskResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &updated))
	s.Require().Equal("Buy milk and eggs", updated.Task.Title)
	s.Require().True(updated.Task.Completed)
	s.Require().Equal("low", updated.Task.Priority)
	s.Require().Equal(task.CreatedAt, updated.Task.CreatedAt)

	rec = s.do(http.MethodDelete, "/api/tasks/"+task.ID, token, "")
	s.Require().Equal(http.StatusOK, rec.Code)

	rec = s.do(http.MethodGet, "/api/tasks/"+task.ID, token, "")
	s.Require().Equal(http.StatusNotFound, rec.Code)
	s.Require().Equal("Task not found", s.decodeError(rec).Message)
}

func (s *TaskAPISuite) TestListWithoutTokenIsUnauthorized() {
	rec := s.do(http.MethodGet, "/api/tasks", "", "")

	s.Require().Equal(http.StatusUnauthorized, rec.Code)
	s.Require().Equal("Access denied. No token provided.", s.decodeError(rec).Message)
}

func (s *TaskAPISuite) TestGarbageTokenIsUnauthorized() {
	rec := s.do(http.MethodGet, "/api/tasks", "not.a.token", "")

	s.Require().Equal(http.StatusUnauthorized, rec.Code)
	s.Require().Equal("Token is not valid or has expired.", s.decodeError(rec).Message)
}

func (s *TaskAPISuite) TestCreateWithInvalidCategory() {
	token := s.register("alice")

	rec := s.do(http.MethodPost, "/api/tasks", token, `{"title":"Tidy","category":"invalid-value"}`)

	s.Require().Equal(http.StatusBadRequest, rec.Code)
	got := s.decodeError(rec)
	s.Require().Equal("Validation failed", got.Message)
	s.Require().Len(got.Errors, 1)
	s.Require().Equal("category", got.Errors[0].Path)
	s.Require().Equal("Invalid category", got.Errors[0].Msg)
}

func (s *TaskAPISuite) TestCreateReportsEveryViolation() {
	token := s.register("alice")

	rec := s.do(http.MethodPost, "/api/tasks", token,
		`{"title":"","category":"nope","priority":"urgent","dueDate":"tomorrow"}`)

	s.Require().Equal(http.StatusBadRequest, rec.Code)
	got := s.decodeError(rec)
	paths := make([]string, 0, len(got.Errors))
	for _, fieldErr := range got.Errors {
		paths = append(paths, fieldErr.Path)
	}
	s.Require().Equal([]string{"title", "category", "priority", "dueDate"}, paths)
}

func (s *TaskAPISuite) TestTasksAreScopedToOwner() {
	alice := s.register("alice")
	bob := s.register("bob")

	task := s.createTask(alice, `{"title":"Private"}`)

	s.Require().Equal(http.StatusNotFound, s.do(http.MethodGet, "/api/tasks/"+task.ID, bob, "").Code)
	s.Require().Equal(http.StatusNotFound, s.do(http.MethodPut, "/api/tasks/"+task.ID, bob, `{"title":"Mine"}`).Code)
	s.Require().Equal(http.StatusNotFound, s.do(http.MethodPatch, "/api/tasks/"+task.ID+"/toggle", bob, "").Code)
	s.Require().Equal(http.StatusNotFound, s.do(http.MethodDelete, "/api/tasks/"+task.ID, bob, "").Code)

	rec := s.do(http.MethodGet, "/api/tasks", bob, "")
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Require().JSONEq(`{"tasks":[],"count":0}`, rec.Body.String())

	rec = s.do(http.MethodGet, "/api/tasks/"+task.ID, alice, "")
	s.Require().Equal(http.StatusOK, rec.Code)
}

func (s *TaskAPISuite) TestListIsNewestFirst() {
	token := s.register("alice")

	first := s.createTask(token, `{"title":"first"}`)
	time.Sleep(2 * time.Millisecond)
	second := s.createTask(token, `{"title":"second"}`)

	rec := s.do(http.MethodGet, "/api/tasks", token, "")
	var list dto.TaskListResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &list))
	s.Require().Equal(2, list.Count)
	s.Require().Equal(second.ID, list.Tasks[0].ID)
	s.Require().Equal(first.ID, list.Tasks[1].ID)
}

func (s *TaskAPISuite) TestUpdateClearsDueDate() {
	token := s.register("alice")
	task := s.createTask(token, `{"title":"Dentist","dueDate":"2026-03-01"}`)
	s.Require().NotNil(task.DueDate)
	s.Require().Equal("2026-03-01T00:00:00.000Z", *task.DueDate)

	rec := s.do(http.MethodPut, "/api/tasks/"+task.ID, token, `{"description":"annual check"}`)
	s.Require().Equal(http.StatusOK, rec.Code)
	var kept dto.TaskResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &kept))
	s.Require().NotNil(kept.Task.DueDate)

	rec = s.do(http.MethodPut, "/api/tasks/"+task.ID, token, `{"dueDate":null}`)
	s.Require().Equal(http.StatusOK, rec.Code)
	var cleared dto.TaskResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &cleared))
	s.Require().Nil(cleared.Task.DueDate)
	s.Require().Equal("annual check", *cleared.Task.Description)
}

func (s *TaskAPISuite) TestDoubleToggleRestoresState() {
	token := s.register("alice")
	task := s.createTask(token, `{"title":"Flip"}`)

	s.Require().Equal(http.StatusOK, s.do(http.MethodPatch, "/api/tasks/"+task.ID+"/toggle", token, "").Code)
	rec := s.do(http.MethodPatch, "/api/tasks/"+task.ID+"/toggle", token, "")
	s.Require().Equal(http.StatusOK, rec.Code)

	var got dto.TaskResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	s.Require().False(got.Task.Completed)
	s.Require().Equal("Task uncompleted successfully", got.Message)
}

func (s *TaskAPISuite) TestMalformedTaskIDIsBadRequest() {
	token := s.register("alice")

	rec := s.do(http.MethodGet, "/api/tasks/123", token, "")

	s.Require().Equal(http.StatusBadRequest, rec.Code)
	s.Require().Equal("Invalid task ID", s.decodeError(rec).Message)
}

func (s *TaskAPISuite) TestLoginAndMe() {
	s.register("alice")

	rec := s.do(http.MethodPost, "/api/auth/login", "", `{"email":"ALICE@example.com","password":"secret1"}`)
	s.Require().Equal(http.StatusOK, rec.Code)
	var session dto.AuthResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &session))

	rec = s.do(http.MethodGet, "/api/auth/me", session.Token, "")
	s.Require().Equal(http.StatusOK, rec.Code)
	var me dto.UserResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &me))
	s.Require().Equal("alice", me.User.Username)
	s.Require().Equal("alice@example.com", me.User.Email)

	rec = s.do(http.MethodPost, "/api/auth/login", "", `{"email":"alice@example.com","password":"wrong-password"}`)
	s.Require().Equal(http.StatusUnauthorized, rec.Code)
}

func (s *TaskAPISuite) TestDuplicateRegistration() {
	s.register("alice")

	rec := s.do(http.MethodPost, "/api/auth/register", "", `{"username":"alice","email":"other@example.com","password":"secret1"}`)

	s.Require().Equal(http.StatusBadRequest, rec.Code)
	s.Require().Equal("User already exists with this email or username", s.decodeError(rec).Message)
}

func (s *TaskAPISuite) TestUnknownRoute() {
	rec := s.do(http.MethodGet, "/api/unknown", "", "")

	s.Require().Equal(http.StatusNotFound, rec.Code)
	s.Require().Equal("Route not found", s.decodeError(rec).Message)
}

func (s *TaskAPISuite) TestHealth() {
	rec := s.do(http.MethodGet, "/api/health", "", "")
	s.Require().Equal(http.StatusOK, rec.Code)

	rec = s.do(http.MethodGet, "/api/health/report", "", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	var report dto.HealthAdvanced
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &report))
	s.Require().Equal(handlers.StatusOk, report.Status.Store)
}
