package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"tasktracker/internal/adapter/http/dto"
	"tasktracker/internal/adapter/http/mapper"
	"tasktracker/internal/adapter/http/middleware"
	"tasktracker/internal/adapter/http/validation"
	"tasktracker/internal/core/ports"
	"tasktracker/pkg/apierrors"
)

type TaskHandler struct {
	taskService ports.TaskService
}

func NewTaskHandler(taskService ports.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// ListTasks serves GET /api/tasks, optionally narrowed by ?workspaceId=.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	userID := middleware.UserID(c)

	var workspaceID *string
	if value := c.Query("workspaceId"); value != "" {
		if uuid.Validate(value) != nil {
			respondBadRequest(c, apierrors.MsgInvalidWorkspaceID)
			return
		}
		workspaceID = &value
	}

	tasks, err := h.taskService.ListTasks(c.Request.Context(), userID, workspaceID)
	if err != nil {
		respondError(c, err, "failed to list tasks", zap.String("user_id", userID))
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItems(tasks))
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID := middleware.UserID(c)

	var req dto.CreateTaskRequest
	raw, ok := bindJSON(c, &req, apierrors.MsgInvalidTaskPayload)
	if !ok {
		return
	}

	input, err := validation.BuildCreateTaskInput(req, raw)
	if err != nil {
		respondError(c, err, "")
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), userID, input)
	if err != nil {
		respondError(c, err, "failed to create task", zap.String("user_id", userID))
		return
	}

	c.JSON(http.StatusCreated, mapper.ToTaskItem(task))
}

func (h *TaskHandler) UpdateTask(c *gin.Context) {
	userID := middleware.UserID(c)
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateTaskRequest
	raw, ok := bindJSON(c, &req, apierrors.MsgInvalidTaskPayload)
	if !ok {
		return
	}

	input, err := validation.BuildUpdateTaskInput(req, raw)
	if errors.Is(err, validation.ErrEmptyUpdate) {
		respondBadRequest(c, apierrors.MsgEmptyUpdate)
		return
	}
	if err != nil {
		respondError(c, err, "")
		return
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), taskID, userID, input)
	if err != nil {
		respondError(c, err, "failed to update task", zap.String("task_id", taskID))
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(task))
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID := middleware.UserID(c)
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(c.Request.Context(), taskID, userID); err != nil {
		respondError(c, err, "failed to delete task", zap.String("task_id", taskID))
		return
	}

	respondMessage(c, http.StatusOK, apierrors.MsgTaskDeleted)
}

// BatchUpdateTasks serves PUT /api/tasks/batch, the drag-and-drop save.
func (h *TaskHandler) BatchUpdateTasks(c *gin.Context) {
	userID := middleware.UserID(c)

	var raw map[string]json.RawMessage
	if err := c.ShouldBindBodyWith(&raw, binding.JSON); err != nil || !validation.IsJSONArray(raw, "tasks") {
		respondBadRequest(c, apierrors.MsgTasksMustBeArray)
		return
	}

	var req dto.BatchUpdateTasksRequest
	if _, ok := bindJSON(c, &req, apierrors.MsgTasksMustBeArray); !ok {
		return
	}

	if err := h.taskService.ReorderTasks(c.Request.Context(), userID, validation.BuildTaskMoves(req)); err != nil {
		respondError(c, err, "failed to reorder tasks", zap.String("user_id", userID), zap.Int("count", len(req.Tasks)))
		return
	}

	respondMessage(c, http.StatusOK, apierrors.MsgTasksUpdated)
}

func taskIDParam(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if uuid.Validate(id) != nil {
		respondBadRequest(c, apierrors.MsgInvalidTaskID)
		return "", false
	}
	return id, true
}
