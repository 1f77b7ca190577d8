package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskmanager/internal/adapter/http/dto"
	"taskmanager/internal/adapter/http/mapper"
	"taskmanager/internal/adapter/http/middleware"
	"taskmanager/internal/adapter/http/validation"
	"taskmanager/internal/core/domain"
	"taskmanager/internal/core/ports"
	"taskmanager/pkg/apierrors"
	"taskmanager/pkg/translator"
)

const (
	MsgTaskCreated     = "taskCreated"
	MsgTaskUpdated     = "taskUpdated"
	MsgTaskDeleted     = "taskDeleted"
	MsgTaskCompleted   = "taskCompleted"
	MsgTaskUncompleted = "taskUncompleted"
)

type TaskHandler struct {
	taskService ports.TaskService
}

func NewTaskHandler(taskService ports.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

func (h *TaskHandler) ListTasks(c *gin.Context) {
	lang := middleware.GetLang(c)
	user, ok := requireUser(c)
	if !ok {
		return
	}

	tasks, err := h.taskService.ListTasks(c.Request.Context(), user.ID)
	if err != nil {
		zap.L().Error("failed to list tasks", zap.String("user_id", user.ID), zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailListTask, lang),
		)
		return
	}

	items := mapper.ToTaskItems(tasks)
	c.JSON(http.StatusOK, dto.TaskListResponse{Tasks: items, Count: len(items)})
}

func (h *TaskHandler) GetTask(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(c.Request.Context(), user.ID, c.Param("id"))
	if err != nil {
		respondTaskError(c, err, apierrors.MsgFailGetTask, "failed to get task")
		return
	}

	c.JSON(http.StatusOK, dto.TaskResponse{Task: mapper.ToTaskItem(task)})
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	lang := middleware.GetLang(c)
	user, ok := requireUser(c)
	if !ok {
		return
	}

	raw, ok := bindTaskPayload(c)
	if !ok {
		return
	}

	input, typeErrors := validation.BuildCreateTaskInput(raw)
	if len(typeErrors) > 0 {
		_, err := domain.ValidateCreateTask(input)
		respondValidationError(c, validation.MergeFieldErrors(typeErrors, err))
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), user.ID, input)
	if err != nil {
		respondTaskError(c, err, apierrors.MsgFailCreateTask, "failed to create task")
		return
	}

	c.JSON(http.StatusCreated, dto.TaskResponse{
		Message: translator.Localize(MsgTaskCreated, lang),
		Task:    mapper.ToTaskItem(task),
	})
}

func (h *TaskHandler) UpdateTask(c *gin.Context) {
	lang := middleware.GetLang(c)
	user, ok := requireUser(c)
	if !ok {
		return
	}

	raw, ok := bindTaskPayload(c)
	if !ok {
		return
	}

	input, typeErrors := validation.BuildUpdateTaskInput(raw)
	if len(typeErrors) > 0 {
		_, err := domain.ValidateUpdateTask(input)
		respondValidationError(c, validation.MergeFieldErrors(typeErrors, err))
		return
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), user.ID, c.Param("id"), input)
	if err != nil {
		respondTaskError(c, err, apierrors.MsgFailUpdateTask, "failed to update task")
		return
	}

	c.JSON(http.StatusOK, dto.TaskResponse{
		Message: translator.Localize(MsgTaskUpdated, lang),
		Task:    mapper.ToTaskItem(task),
	})
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	lang := middleware.GetLang(c)
	user, ok := requireUser(c)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(c.Request.Context(), user.ID, c.Param("id")); err != nil {
		respondTaskError(c, err, apierrors.MsgFailDeleteTask, "failed to delete task")
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: translator.Localize(MsgTaskDeleted, lang)})
}

func (h *TaskHandler) ToggleTask(c *gin.Context) {
	lang := middleware.GetLang(c)
	user, ok := requireUser(c)
	if !ok {
		return
	}

	task, err := h.taskService.ToggleTask(c.Request.Context(), user.ID, c.Param("id"))
	if err != nil {
		respondTaskError(c, err, apierrors.MsgFailToggleTask, "failed to toggle task")
		return
	}

	msgKey := MsgTaskUncompleted
	if task.Completed {
		msgKey = MsgTaskCompleted
	}
	c.JSON(http.StatusOK, dto.TaskResponse{
		Message: translator.Localize(msgKey, lang),
		Task:    mapper.ToTaskItem(task),
	})
}

// requireUser reads the user set by the auth middleware. Routes mounted
// without the middleware answer 401.
func requireUser(c *gin.Context) (domain.User, bool) {
	user, ok := middleware.GetUser(c)
	if !ok {
		c.JSON(
			http.StatusUnauthorized,
			apierrors.CreateError(http.StatusUnauthorized, apierrors.MsgNoToken, middleware.GetLang(c)),
		)
		return domain.User{}, false
	}
	return user, true
}

func bindTaskPayload(c *gin.Context) (map[string]json.RawMessage, bool) {
	raw, err := validation.BindJSONObject(c)
	if err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidJSON, middleware.GetLang(c)),
		)
		return nil, false
	}
	return raw, true
}

func respondValidationError(c *gin.Context, fields []domain.FieldError) {
	c.JSON(
		http.StatusBadRequest,
		apierrors.CreateValidationError(http.StatusBadRequest, mapper.ToFieldErrs(fields), middleware.GetLang(c)),
	)
}

func respondTaskError(c *gin.Context, err error, failMsgKey, logMsg string) {
	lang := middleware.GetLang(c)

	var validationErr *domain.ValidationError
	switch {
	case errors.As(err, &validationErr):
		respondValidationError(c, validation.MergeFieldErrors(nil, validationErr))
	case errors.Is(err, domain.ErrInvalidTaskID):
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskID, lang),
		)
	case errors.Is(err, domain.ErrTaskNotFound):
		c.JSON(
			http.StatusNotFound,
			apierrors.CreateError(http.StatusNotFound, apierrors.MsgTaskNotFound, lang),
		)
	default:
		zap.L().Error(logMsg, zap.String("task_id", c.Param("id")), zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, failMsgKey, lang),
		)
	}
}
