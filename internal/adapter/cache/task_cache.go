package cache

import (
	"context"
	"errors"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"tasktracker/internal/adapter/metrics"
	"tasktracker/internal/core/domain"
	"tasktracker/internal/core/ports"
)

const (
	taskKeyPrefix = "tasks:user:"
	breakerName   = "task-cache"
)

// TaskCache stores each user's full task list under tasks:user:<id>. Backend
// failures are logged and reported as misses; after repeated failures the
// breaker opens and reads and writes skip the backend until it recovers.
type TaskCache struct {
	store Store
	ttl   time.Duration
	cb    *gobreaker.CircuitBreaker[[]byte]
}

var _ ports.TaskCache = (*TaskCache)(nil)

type cachedTask struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	Color       *string    `json:"color,omitempty"`
	Position    int64      `json:"position"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	OwnerID     string     `json:"ownerId"`
	WorkspaceID string     `json:"workspaceId"`
	CreatedAt   time.Time  `json:"createdAt"`
}

func NewTaskCache(store Store, ttl time.Duration) *TaskCache {
	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)

	cb := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		// A miss is a normal answer, not a backend failure.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrMiss)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			zap.L().Warn("cache circuit breaker state change",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateValue(to))
		},
	})

	return &TaskCache{store: store, ttl: ttl, cb: cb}
}

func (c *TaskCache) GetTasks(ctx context.Context, userID string) ([]domain.Task, bool) {
	payload, err := c.cb.Execute(func() ([]byte, error) {
		return c.store.Get(ctx, taskKey(userID))
	})
	if err != nil {
		if !errors.Is(err, ErrMiss) {
			c.logFailure("get", userID, err)
		}
		metrics.TaskCacheMisses.Inc()
		return nil, false
	}

	var entries []cachedTask
	if err := json.Unmarshal(payload, &entries); err != nil {
		c.logFailure("decode", userID, err)
		metrics.TaskCacheMisses.Inc()
		return nil, false
	}

	tasks := make([]domain.Task, 0, len(entries))
	for _, entry := range entries {
		tasks = append(tasks, entry.toDomain())
	}
	metrics.TaskCacheHits.Inc()
	return tasks, true
}

func (c *TaskCache) SetTasks(ctx context.Context, userID string, tasks []domain.Task) {
	entries := make([]cachedTask, 0, len(tasks))
	for _, task := range tasks {
		entries = append(entries, newCachedTask(task))
	}

	payload, err := json.Marshal(entries)
	if err != nil {
		c.logFailure("encode", userID, err)
		return
	}

	_, err = c.cb.Execute(func() ([]byte, error) {
		return nil, c.store.Set(ctx, taskKey(userID), payload, c.ttl)
	})
	if err != nil {
		c.logFailure("set", userID, err)
	}
}

// Invalidate always reaches the backend, even with the breaker open: a delete
// skipped while the store is healthy again would leave a stale list behind.
func (c *TaskCache) Invalidate(ctx context.Context, userID string) {
	if err := c.store.Delete(ctx, taskKey(userID)); err != nil {
		c.logFailure("delete", userID, err)
	}
}

// Ping reports backend reachability for the health report.
func (c *TaskCache) Ping(ctx context.Context) error {
	return c.store.Ping(ctx)
}

func (c *TaskCache) Close() error {
	return c.store.Close()
}

func (c *TaskCache) logFailure(operation, userID string, err error) {
	metrics.TaskCacheErrors.WithLabelValues(operation).Inc()
	zap.L().Warn("task cache unavailable",
		zap.String("operation", operation),
		zap.String("user_id", userID),
		zap.Error(err),
	)
}

func taskKey(userID string) string {
	return taskKeyPrefix + userID
}

func stateValue(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}

func newCachedTask(task domain.Task) cachedTask {
	return cachedTask{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      string(task.Status),
		Priority:    string(task.Priority),
		Color:       task.Color,
		Position:    task.Position,
		DueDate:     task.DueDate,
		OwnerID:     task.OwnerID,
		WorkspaceID: task.WorkspaceID,
		CreatedAt:   task.CreatedAt,
	}
}

func (t cachedTask) toDomain() domain.Task {
	return domain.Task{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      domain.TaskStatus(t.Status),
		Priority:    domain.TaskPriority(t.Priority),
		Color:       t.Color,
		Position:    t.Position,
		DueDate:     t.DueDate,
		OwnerID:     t.OwnerID,
		WorkspaceID: t.WorkspaceID,
		CreatedAt:   t.CreatedAt,
	}
}
