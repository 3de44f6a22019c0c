package service

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"tasktracker/internal/core/domain"
)

type taskRepositoryMock struct {
	mock.Mock
}

func (m *taskRepositoryMock) ListTasks(ctx context.Context, filter domain.TaskFilter) ([]domain.Task, error) {
	args := m.Called(ctx, filter)

	var tasks []domain.Task
	if value := args.Get(0); value != nil {
		tasks = value.([]domain.Task)
	}
	return tasks, args.Error(1)
}

func (m *taskRepositoryMock) MaxPosition(ctx context.Context, ownerID, workspaceID string, status domain.TaskStatus) (int64, bool, error) {
	args := m.Called(ctx, ownerID, workspaceID, status)
	return args.Get(0).(int64), args.Bool(1), args.Error(2)
}

func (m *taskRepositoryMock) CreateTask(ctx context.Context, task domain.Task) (domain.Task, error) {
	args := m.Called(ctx, task)
	if echo, ok := args.Get(0).(func(context.Context, domain.Task) domain.Task); ok {
		return echo(ctx, task), args.Error(1)
	}
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskRepositoryMock) UpdateOwnedTask(ctx context.Context, id, ownerID string, input domain.UpdateTaskInput) (domain.Task, error) {
	args := m.Called(ctx, id, ownerID, input)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskRepositoryMock) DeleteOwnedTask(ctx context.Context, id, ownerID string) error {
	return m.Called(ctx, id, ownerID).Error(0)
}

func (m *taskRepositoryMock) MoveTasks(ctx context.Context, ownerID string, moves []domain.TaskMove) error {
	return m.Called(ctx, ownerID, moves).Error(0)
}

type workspaceRepositoryMock struct {
	mock.Mock
}

func (m *workspaceRepositoryMock) ListWorkspaces(ctx context.Context, userID string) ([]domain.Workspace, error) {
	args := m.Called(ctx, userID)

	var workspaces []domain.Workspace
	if value := args.Get(0); value != nil {
		workspaces = value.([]domain.Workspace)
	}
	return workspaces, args.Error(1)
}

func (m *workspaceRepositoryMock) CreateWorkspace(ctx context.Context, workspace domain.Workspace, tasks []domain.Task) (domain.Workspace, error) {
	args := m.Called(ctx, workspace, tasks)
	return args.Get(0).(domain.Workspace), args.Error(1)
}

func (m *workspaceRepositoryMock) GetWorkspace(ctx context.Context, id string) (domain.Workspace, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Workspace), args.Error(1)
}

func (m *workspaceRepositoryMock) RenameWorkspace(ctx context.Context, id, ownerID, name string) (domain.Workspace, error) {
	args := m.Called(ctx, id, ownerID, name)
	return args.Get(0).(domain.Workspace), args.Error(1)
}

func (m *workspaceRepositoryMock) DeleteWorkspace(ctx context.Context, id, ownerID string) ([]string, error) {
	args := m.Called(ctx, id, ownerID)

	var owners []string
	if value := args.Get(0); value != nil {
		owners = value.([]string)
	}
	return owners, args.Error(1)
}

type userRepositoryMock struct {
	mock.Mock
}

func (m *userRepositoryMock) CreateUser(ctx context.Context, user domain.User) (domain.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *userRepositoryMock) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *userRepositoryMock) GetUserByResetToken(ctx context.Context, tokenHash string, now time.Time) (domain.User, error) {
	args := m.Called(ctx, tokenHash, now)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *userRepositoryMock) UpdateUser(ctx context.Context, user domain.User) error {
	return m.Called(ctx, user).Error(0)
}

type seederMock struct {
	mock.Mock
}

func (m *seederMock) CreateDemoWorkspace(ctx context.Context, userID string) (domain.Workspace, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.Workspace), args.Error(1)
}

// memoryCache records invalidations and serves whatever was stored.
type memoryCache struct {
	mu          sync.Mutex
	entries     map[string][]domain.Task
	invalidated []string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string][]domain.Task{}}
}

func (c *memoryCache) GetTasks(_ context.Context, userID string) ([]domain.Task, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	tasks, ok := c.entries[userID]
	return tasks, ok
}

func (c *memoryCache) SetTasks(_ context.Context, userID string, tasks []domain.Task) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[userID] = tasks
}

func (c *memoryCache) Invalidate(_ context.Context, userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, userID)
	c.invalidated = append(c.invalidated, userID)
}

type sentMail struct {
	kind  string
	to    string
	value string
}

type recordingMailer struct {
	sent []sentMail
	err  error
}

func (m *recordingMailer) SendVerificationCode(_ context.Context, to, code string) error {
	m.sent = append(m.sent, sentMail{kind: "verification", to: to, value: code})
	return m.err
}

func (m *recordingMailer) SendPasswordReset(_ context.Context, to, token string) error {
	m.sent = append(m.sent, sentMail{kind: "reset", to: to, value: token})
	return m.err
}

// plainHasher prefixes instead of hashing so tests can assert on stored values.
type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (plainHasher) Compare(hash, password string) bool { return hash == "hashed:"+password }

type staticSessions struct{}

func (staticSessions) Issue(userID string) (string, error) { return "token-for-" + userID, nil }

func (staticSessions) Verify(token string) (string, error) { return "", domain.ErrInvalidToken }
