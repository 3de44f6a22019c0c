package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"tasktracker/internal/adapter/http/middleware"
	"tasktracker/internal/core/domain"
	"tasktracker/pkg/apierrors"
	"tasktracker/pkg/translator"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	testUserID      = "6f1c2f4e-8a9b-4c3d-9e2f-1a2b3c4d5e6f"
	testTaskID      = "0b8e7d6c-5a4b-4f3e-8d2c-1b0a9f8e7d6c"
	testWorkspaceID = "9a8b7c6d-5e4f-4a3b-8c2d-1e0f9a8b7c6d"
)

// withUser stands in for RequireAuth.
func withUser(c *gin.Context) {
	c.Set("user_id", testUserID)
	c.Next()
}

func newRouter() *gin.Engine {
	router := gin.New()
	router.Use(middleware.LanguageMiddleware(), withUser)
	return router
}

func doRequest(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept-Language", translator.LanguageEn)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) apierrors.JsonErr {
	t.Helper()
	var got apierrors.JsonErr
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	return got
}

func decodeMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var got struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	return got.Message
}

type taskServiceMock struct {
	mock.Mock
}

func (m *taskServiceMock) ListTasks(ctx context.Context, userID string, workspaceID *string) ([]domain.Task, error) {
	args := m.Called(ctx, userID, workspaceID)

	var tasks []domain.Task
	if value := args.Get(0); value != nil {
		tasks = value.([]domain.Task)
	}
	return tasks, args.Error(1)
}

func (m *taskServiceMock) CreateTask(ctx context.Context, userID string, input domain.CreateTaskInput) (domain.Task, error) {
	args := m.Called(ctx, userID, input)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) UpdateTask(ctx context.Context, id, userID string, input domain.UpdateTaskInput) (domain.Task, error) {
	args := m.Called(ctx, id, userID, input)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) DeleteTask(ctx context.Context, id, userID string) error {
	return m.Called(ctx, id, userID).Error(0)
}

func (m *taskServiceMock) ReorderTasks(ctx context.Context, userID string, moves []domain.TaskMove) error {
	return m.Called(ctx, userID, moves).Error(0)
}

type workspaceServiceMock struct {
	mock.Mock
}

func (m *workspaceServiceMock) ListWorkspaces(ctx context.Context, userID string) ([]domain.Workspace, error) {
	args := m.Called(ctx, userID)

	var workspaces []domain.Workspace
	if value := args.Get(0); value != nil {
		workspaces = value.([]domain.Workspace)
	}
	return workspaces, args.Error(1)
}

func (m *workspaceServiceMock) CreateWorkspace(ctx context.Context, userID, name string) (domain.Workspace, error) {
	args := m.Called(ctx, userID, name)
	return args.Get(0).(domain.Workspace), args.Error(1)
}

func (m *workspaceServiceMock) CreateDemoWorkspace(ctx context.Context, userID string) (domain.Workspace, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.Workspace), args.Error(1)
}

func (m *workspaceServiceMock) GetWorkspace(ctx context.Context, id, userID string) (domain.Workspace, error) {
	args := m.Called(ctx, id, userID)
	return args.Get(0).(domain.Workspace), args.Error(1)
}

func (m *workspaceServiceMock) RenameWorkspace(ctx context.Context, id, userID, name string) (domain.Workspace, error) {
	args := m.Called(ctx, id, userID, name)
	return args.Get(0).(domain.Workspace), args.Error(1)
}

func (m *workspaceServiceMock) DeleteWorkspace(ctx context.Context, id, userID string) error {
	return m.Called(ctx, id, userID).Error(0)
}

type authServiceMock struct {
	mock.Mock
}

func (m *authServiceMock) Register(ctx context.Context, input domain.RegisterInput) (domain.User, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *authServiceMock) VerifyEmail(ctx context.Context, email, code string) (domain.Session, error) {
	args := m.Called(ctx, email, code)
	return args.Get(0).(domain.Session), args.Error(1)
}

func (m *authServiceMock) ResendVerificationCode(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func (m *authServiceMock) Login(ctx context.Context, email, password string) (domain.Session, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(domain.Session), args.Error(1)
}

func (m *authServiceMock) RequestPasswordReset(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func (m *authServiceMock) ResetPassword(ctx context.Context, token, password string) error {
	return m.Called(ctx, token, password).Error(0)
}
