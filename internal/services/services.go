package services

import (
	"context"
	"errors"
	"time"

	"github.com/adanyl0v/go-task-store/internal/models"
)

var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrTaskTitleRequired = errors.New("title is required")
)

type TaskService interface {
	// ListTasks returns every task, newest first.
	ListTasks(ctx context.Context) ([]*models.Task, error)

	// ListTasksByStatus returns the tasks whose status equals the
	// given one, newest first. No match is an empty slice, not an error.
	ListTasksByStatus(ctx context.Context, status string) ([]*models.Task, error)

	// GetTask returns ErrTaskNotFound if no task has the given id.
	GetTask(ctx context.Context, id int64) (*models.Task, error)

	// CreateTask persists a new task and returns it with its
	// generated id and timestamps.
	//
	// It returns ErrTaskTitleRequired if the title is empty.
	CreateTask(ctx context.Context, params CreateTaskParams) (*models.Task, error)

	// UpdateTask overwrites the non-nil fields of params and refreshes
	// updated_at. Nil fields keep their stored values.
	//
	// It returns ErrTaskNotFound if no task has the given id.
	UpdateTask(ctx context.Context, params UpdateTaskParams) (*models.Task, error)

	// DeleteTask removes the task permanently.
	//
	// It returns ErrTaskNotFound if no task has the given id.
	DeleteTask(ctx context.Context, id int64) error

	// Ping reports whether the underlying store is reachable.
	Ping(ctx context.Context) error
}

type CreateTaskParams struct {
	Title       string
	Description *string
	Status      *string
	Priority    *string
}

type UpdateTaskParams struct {
	ID          int64
	Title       *string
	Description *string
	Status      *string
	Priority    *string
}

// newTask validates params and fills in the defaults of a fresh task.
func newTask(params CreateTaskParams, now time.Time) (*models.Task, error) {
	if params.Title == "" {
		return nil, ErrTaskTitleRequired
	}

	return &models.Task{
		Title:       params.Title,
		Description: valueOr(params.Description, ""),
		Status:      valueOr(params.Status, models.DefaultStatus),
		Priority:    valueOr(params.Priority, models.DefaultPriority),
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

func valueOr(p *string, def string) string {
	if p == nil {
		return def
	}
	return *p
}
