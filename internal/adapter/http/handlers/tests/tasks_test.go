package tests

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"tasktracker/internal/adapter/http/dto"
	"tasktracker/internal/adapter/http/handlers"
	"tasktracker/internal/core/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTaskRouter(service *taskServiceMock) *gin.Engine {
	handler := handlers.NewTaskHandler(service)

	router := newRouter()
	router.GET("/api/tasks", handler.ListTasks)
	router.POST("/api/tasks", handler.CreateTask)
	router.PUT("/api/tasks/batch", handler.BatchUpdateTasks)
	router.PUT("/api/tasks/:id", handler.UpdateTask)
	router.DELETE("/api/tasks/:id", handler.DeleteTask)
	return router
}

func sampleTask() domain.Task {
	color := "#ff0000"
	dueDate := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	return domain.Task{
		ID:          testTaskID,
		Title:       "Write tests",
		Description: "handlers first",
		Status:      domain.TaskStatusInProgress,
		Priority:    domain.TaskPriorityHigh,
		Color:       &color,
		Position:    2048,
		DueDate:     &dueDate,
		OwnerID:     testUserID,
		WorkspaceID: testWorkspaceID,
		CreatedAt:   time.Date(2026, 2, 13, 10, 20, 30, 0, time.UTC),
	}
}

func TestTaskHandler_ListTasks_Success(t *testing.T) {
	service := new(taskServiceMock)
	service.On("ListTasks", mock.Anything, testUserID, (*string)(nil)).Return([]domain.Task{sampleTask()}, nil).Once()

	rec := doRequest(t, newTaskRouter(service), http.MethodGet, "/api/tasks", "")

	require.Equal(t, http.StatusOK, rec.Code)

	var got []dto.TaskItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	require.Equal(t, testTaskID, got[0].ID)
	require.Equal(t, "in-progress", got[0].Status)
	require.Equal(t, "high", got[0].Priority)
	require.Equal(t, int64(2048), got[0].Position)
	require.Equal(t, testUserID, got[0].Owner)
	require.Equal(t, testWorkspaceID, got[0].WorkspaceID)
	require.NotNil(t, got[0].DueDate)
	require.Equal(t, "2026-03-01T00:00:00.000Z", *got[0].DueDate)
	require.Equal(t, "2026-02-13T10:20:30.000Z", got[0].CreatedAt)
	service.AssertExpectations(t)
}

func TestTaskHandler_ListTasks_EmptyIsArray(t *testing.T) {
	service := new(taskServiceMock)
	service.On("ListTasks", mock.Anything, testUserID, (*string)(nil)).Return(nil, nil).Once()

	rec := doRequest(t, newTaskRouter(service), http.MethodGet, "/api/tasks", "")

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `[]`, rec.Body.String())
}

func TestTaskHandler_ListTasks_WorkspaceFilter(t *testing.T) {
	service := new(taskServiceMock)
	service.On("ListTasks", mock.Anything, testUserID, mock.MatchedBy(func(id *string) bool {
		return id != nil && *id == testWorkspaceID
	})).Return([]domain.Task{}, nil).Once()

	rec := doRequest(t, newTaskRouter(service), http.MethodGet, "/api/tasks?workspaceId="+testWorkspaceID, "")

	require.Equal(t, http.StatusOK, rec.Code)
	service.AssertExpectations(t)
}

func TestTaskHandler_ListTasks_InvalidWorkspaceID(t *testing.T) {
	service := new(taskServiceMock)

	rec := doRequest(t, newTaskRouter(service), http.MethodGet, "/api/tasks?workspaceId=nope", "")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	got := decodeError(t, rec)
	require.Equal(t, http.StatusBadRequest, got.Code)
	require.Equal(t, "Invalid workspace id", got.Message)
	service.AssertNotCalled(t, "ListTasks", mock.Anything, mock.Anything, mock.Anything)
}

func TestTaskHandler_ListTasks_WorkspaceNotAccessible(t *testing.T) {
	service := new(taskServiceMock)
	service.On("ListTasks", mock.Anything, testUserID, mock.Anything).Return(nil, domain.ErrWorkspaceNotFound).Once()

	rec := doRequest(t, newTaskRouter(service), http.MethodGet, "/api/tasks?workspaceId="+testWorkspaceID, "")

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "Workspace not found or not authorized", decodeError(t, rec).Message)
}

func TestTaskHandler_ListTasks_ServiceError(t *testing.T) {
	service := new(taskServiceMock)
	service.On("ListTasks", mock.Anything, testUserID, mock.Anything).Return(nil, errors.New("db down")).Once()

	rec := doRequest(t, newTaskRouter(service), http.MethodGet, "/api/tasks", "")

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	got := decodeError(t, rec)
	require.Equal(t, http.StatusInternalServerError, got.Code)
	require.Equal(t, "Server error", got.Message)
}

func TestTaskHandler_CreateTask_AppliesDefaults(t *testing.T) {
	service := new(taskServiceMock)
	created := sampleTask()
	created.Status = domain.TaskStatusTodo
	created.Priority = domain.TaskPriorityMedium
	created.Position = domain.PositionGap

	service.On("CreateTask", mock.Anything, testUserID, mock.MatchedBy(func(input domain.CreateTaskInput) bool {
		return input.Title == "Write tests" &&
			input.Description == "" &&
			input.Status == domain.TaskStatusTodo &&
			input.Priority == domain.TaskPriorityMedium &&
			input.Color == nil &&
			input.DueDate == nil &&
			input.WorkspaceID == testWorkspaceID
	})).Return(created, nil).Once()

	body := `{"title":"  Write tests  ","workspaceId":"` + testWorkspaceID + `"}`
	rec := doRequest(t, newTaskRouter(service), http.MethodPost, "/api/tasks", body)

	require.Equal(t, http.StatusCreated, rec.Code)

	var got dto.TaskItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "todo", got.Status)
	require.Equal(t, int64(1024), got.Position)
	service.AssertExpectations(t)
}

func TestTaskHandler_CreateTask_ParsesDueDate(t *testing.T) {
	service := new(taskServiceMock)
	service.On("CreateTask", mock.Anything, testUserID, mock.MatchedBy(func(input domain.CreateTaskInput) bool {
		return input.DueDate != nil &&
			input.DueDate.Equal(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)) &&
			input.Status == domain.TaskStatusCompleted &&
			input.Priority == domain.TaskPriorityLow
	})).Return(sampleTask(), nil).Once()

	body := `{"title":"Ship","status":"completed","priority":"low","dueDate":"2026-03-01","workspaceId":"` + testWorkspaceID + `"}`
	rec := doRequest(t, newTaskRouter(service), http.MethodPost, "/api/tasks", body)

	require.Equal(t, http.StatusCreated, rec.Code)
	service.AssertExpectations(t)
}

func TestTaskHandler_CreateTask_ValidationErrors(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
		msg   string
	}{
		{
			name:  "missing title",
			body:  `{"workspaceId":"` + testWorkspaceID + `"}`,
			field: "title",
			msg:   "Title is required",
		},
		{
			name:  "blank title",
			body:  `{"title":"   ","workspaceId":"` + testWorkspaceID + `"}`,
			field: "title",
			msg:   "Title is required",
		},
		{
			name:  "unknown status",
			body:  `{"title":"a","status":"blocked","workspaceId":"` + testWorkspaceID + `"}`,
			field: "status",
			msg:   "Status must be one of: todo, in-progress, in-review, completed",
		},
		{
			name:  "bad due date",
			body:  `{"title":"a","dueDate":"next week","workspaceId":"` + testWorkspaceID + `"}`,
			field: "dueDate",
			msg:   "DueDate must be a date (YYYY-MM-DD or RFC3339)",
		},
		{
			name:  "title not a string",
			body:  `{"title":42,"workspaceId":"` + testWorkspaceID + `"}`,
			field: "title",
			msg:   "Title must be a string",
		},
		{
			name:  "missing workspace",
			body:  `{"title":"a"}`,
			field: "workspaceId",
			msg:   "WorkspaceId is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(taskServiceMock)

			rec := doRequest(t, newTaskRouter(service), http.MethodPost, "/api/tasks", tt.body)

			require.Equal(t, http.StatusBadRequest, rec.Code)
			got := decodeError(t, rec)
			require.Equal(t, "Validation error", got.Message)
			require.Contains(t, got.Errors[tt.field], tt.msg)
			service.AssertNotCalled(t, "CreateTask", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestTaskHandler_CreateTask_MalformedBody(t *testing.T) {
	service := new(taskServiceMock)

	rec := doRequest(t, newTaskRouter(service), http.MethodPost, "/api/tasks", `{"title":`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "Invalid task payload", decodeError(t, rec).Message)
}

func TestTaskHandler_CreateTask_WorkspaceNotAccessible(t *testing.T) {
	service := new(taskServiceMock)
	service.On("CreateTask", mock.Anything, testUserID, mock.Anything).Return(domain.Task{}, domain.ErrWorkspaceNotFound).Once()

	body := `{"title":"a","workspaceId":"` + testWorkspaceID + `"}`
	rec := doRequest(t, newTaskRouter(service), http.MethodPost, "/api/tasks", body)

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "Workspace not found or not authorized", decodeError(t, rec).Message)
}

func TestTaskHandler_UpdateTask_PartialUpdate(t *testing.T) {
	service := new(taskServiceMock)
	updated := sampleTask()
	updated.Color = nil

	service.On("UpdateTask", mock.Anything, testTaskID, testUserID, mock.MatchedBy(func(input domain.UpdateTaskInput) bool {
		return input.Title != nil && *input.Title == "Renamed" &&
			input.Status == nil &&
			input.ColorSet && input.Color == nil &&
			!input.DueDateSet
	})).Return(updated, nil).Once()

	rec := doRequest(t, newTaskRouter(service), http.MethodPut, "/api/tasks/"+testTaskID, `{"title":"Renamed","color":null}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var got dto.TaskItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Nil(t, got.Color)
	service.AssertExpectations(t)
}

func TestTaskHandler_UpdateTask_EmptyBody(t *testing.T) {
	service := new(taskServiceMock)

	rec := doRequest(t, newTaskRouter(service), http.MethodPut, "/api/tasks/"+testTaskID, `{}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "At least one field must be provided", decodeError(t, rec).Message)
	service.AssertNotCalled(t, "UpdateTask", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTaskHandler_UpdateTask_InvalidID(t *testing.T) {
	service := new(taskServiceMock)

	rec := doRequest(t, newTaskRouter(service), http.MethodPut, "/api/tasks/abc", `{"title":"x"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "Invalid id", decodeError(t, rec).Message)
}

func TestTaskHandler_UpdateTask_NotFound(t *testing.T) {
	service := new(taskServiceMock)
	service.On("UpdateTask", mock.Anything, testTaskID, testUserID, mock.Anything).Return(domain.Task{}, domain.ErrTaskNotFound).Once()

	rec := doRequest(t, newTaskRouter(service), http.MethodPut, "/api/tasks/"+testTaskID, `{"status":"completed"}`)

	require.Equal(t, http.StatusNotFound, rec.Code)
	got := decodeError(t, rec)
	require.Equal(t, http.StatusNotFound, got.Code)
	require.Equal(t, "Task not found", got.Message)
}

func TestTaskHandler_DeleteTask(t *testing.T) {
	service := new(taskServiceMock)
	service.On("DeleteTask", mock.Anything, testTaskID, testUserID).Return(nil).Once()

	rec := doRequest(t, newTaskRouter(service), http.MethodDelete, "/api/tasks/"+testTaskID, "")

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Task deleted", decodeMessage(t, rec))
	service.AssertExpectations(t)
}

func TestTaskHandler_DeleteTask_NotFound(t *testing.T) {
	service := new(taskServiceMock)
	service.On("DeleteTask", mock.Anything, testTaskID, testUserID).Return(domain.ErrTaskNotFound).Once()

	rec := doRequest(t, newTaskRouter(service), http.MethodDelete, "/api/tasks/"+testTaskID, "")

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "Task not found", decodeError(t, rec).Message)
}

func TestTaskHandler_BatchUpdateTasks(t *testing.T) {
	service := new(taskServiceMock)
	service.On("ReorderTasks", mock.Anything, testUserID, []domain.TaskMove{
		{ID: testTaskID, Status: domain.TaskStatusCompleted, Position: 512},
	}).Return(nil).Once()

	body := `{"tasks":[{"_id":"` + testTaskID + `","status":"completed","position":512}]}`
	rec := doRequest(t, newTaskRouter(service), http.MethodPut, "/api/tasks/batch", body)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Tasks updated", decodeMessage(t, rec))
	service.AssertExpectations(t)
}

func TestTaskHandler_BatchUpdateTasks_NotAnArray(t *testing.T) {
	for _, body := range []string{`{}`, `{"tasks":"all"}`, `[]`} {
		service := new(taskServiceMock)

		rec := doRequest(t, newTaskRouter(service), http.MethodPut, "/api/tasks/batch", body)

		require.Equal(t, http.StatusBadRequest, rec.Code, body)
		require.Equal(t, "Tasks must be an array", decodeError(t, rec).Message, body)
	}
}

func TestTaskHandler_BatchUpdateTasks_InvalidEntry(t *testing.T) {
	service := new(taskServiceMock)

	body := `{"tasks":[{"_id":"` + testTaskID + `","status":"archived","position":-1}]}`
	rec := doRequest(t, newTaskRouter(service), http.MethodPut, "/api/tasks/batch", body)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	got := decodeError(t, rec)
	require.Equal(t, "Validation error", got.Message)
	require.Contains(t, got.Errors, "tasks[0].status")
	require.Contains(t, got.Errors, "tasks[0].position")
	service.AssertNotCalled(t, "ReorderTasks", mock.Anything, mock.Anything, mock.Anything)
}
