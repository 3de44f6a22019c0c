package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"tasktracker/internal/adapter/http/dto"
	"tasktracker/internal/core/domain"
)

var ErrEmptyUpdate = errors.New("no updatable field in payload")

const dateOnlyLayout = "2006-01-02"

// ParseDueDate accepts RFC3339 timestamps (with offset) or a plain
// YYYY-MM-DD date, read as midnight UTC.
func ParseDueDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t.UTC(), nil
	}
	return time.Parse(dateOnlyLayout, value)
}

func BuildCreateTaskInput(req dto.CreateTaskRequest, raw map[string]json.RawMessage) (domain.CreateTaskInput, error) {
	var errs Errors
	for _, field := range []string{"description", "status", "priority"} {
		if hasJSONField(raw, field) && isJSONNull(raw[field]) {
			errs = append(errs, FieldError{Field: field, Key: KeyInvalid})
		}
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		errs = append(errs, FieldError{Field: "title", Key: KeyRequired})
	}

	var dueDate *time.Time
	if req.DueDate != nil {
		parsed, err := ParseDueDate(*req.DueDate)
		if err != nil {
			errs = append(errs, FieldError{Field: "dueDate", Key: KeyDate})
		}
		dueDate = &parsed
	}
	if len(errs) > 0 {
		return domain.CreateTaskInput{}, errs
	}

	input := domain.CreateTaskInput{
		Title:       title,
		Status:      domain.TaskStatusTodo,
		Priority:    domain.TaskPriorityMedium,
		Color:       req.Color,
		DueDate:     dueDate,
		WorkspaceID: req.WorkspaceID,
	}
	if req.Description != nil {
		input.Description = *req.Description
	}
	if req.Status != nil {
		input.Status = domain.TaskStatus(*req.Status)
	}
	if req.Priority != nil {
		input.Priority = domain.TaskPriority(*req.Priority)
	}
	return input, nil
}

// BuildUpdateTaskInput keeps only the fields present in the body. An explicit
// null clears color and dueDate and is rejected elsewhere.
func BuildUpdateTaskInput(req dto.UpdateTaskRequest, raw map[string]json.RawMessage) (domain.UpdateTaskInput, error) {
	if !hasTaskUpdateFields(raw) {
		return domain.UpdateTaskInput{}, ErrEmptyUpdate
	}

	var errs Errors
	for _, field := range []string{"title", "description", "status", "priority"} {
		if hasJSONField(raw, field) && isJSONNull(raw[field]) {
			errs = append(errs, FieldError{Field: field, Key: KeyInvalid})
		}
	}

	var title *string
	if req.Title != nil {
		value := strings.TrimSpace(*req.Title)
		if value == "" {
			errs = append(errs, FieldError{Field: "title", Key: KeyRequired})
		}
		title = &value
	}

	var dueDate *time.Time
	dueDateSet := hasJSONField(raw, "dueDate")
	if req.DueDate != nil {
		parsed, err := ParseDueDate(*req.DueDate)
		if err != nil {
			errs = append(errs, FieldError{Field: "dueDate", Key: KeyDate})
		}
		dueDate = &parsed
	}
	if len(errs) > 0 {
		return domain.UpdateTaskInput{}, errs
	}

	input := domain.UpdateTaskInput{
		Title:       title,
		Description: req.Description,
		Color:       req.Color,
		ColorSet:    hasJSONField(raw, "color"),
		DueDate:     dueDate,
		DueDateSet:  dueDateSet,
	}
	if req.Status != nil {
		status := domain.TaskStatus(*req.Status)
		input.Status = &status
	}
	if req.Priority != nil {
		priority := domain.TaskPriority(*req.Priority)
		input.Priority = &priority
	}
	return input, nil
}

func BuildTaskMoves(req dto.BatchUpdateTasksRequest) []domain.TaskMove {
	moves := make([]domain.TaskMove, 0, len(req.Tasks))
	for _, item := range req.Tasks {
		move := domain.TaskMove{ID: item.ID, Status: domain.TaskStatus(item.Status)}
		if item.Position != nil {
			move.Position = *item.Position
		}
		moves = append(moves, move)
	}
	return moves
}

// IsJSONArray reports whether field holds a JSON array.
func IsJSONArray(raw map[string]json.RawMessage, field string) bool {
	value, ok := raw[field]
	if !ok {
		return false
	}
	return bytes.HasPrefix(bytes.TrimSpace(value), []byte("["))
}

func hasTaskUpdateFields(raw map[string]json.RawMessage) bool {
	return hasJSONField(raw, "title") ||
		hasJSONField(raw, "description") ||
		hasJSONField(raw, "status") ||
		hasJSONField(raw, "priority") ||
		hasJSONField(raw, "dueDate") ||
		hasJSONField(raw, "color")
}

func hasJSONField(raw map[string]json.RawMessage, field string) bool {
	_, ok := raw[field]
	return ok
}

func isJSONNull(value json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(value), []byte("null"))
}
