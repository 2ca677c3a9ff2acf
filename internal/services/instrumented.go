package services

import (
	"context"
	"errors"
	"time"

	"github.com/adanyl0v/go-task-store/internal/metrics"
	"github.com/adanyl0v/go-task-store/internal/models"
)

type instrumentedTaskService struct {
	next TaskService
}

// NewInstrumentedTaskService records a Prometheus sample for every call to next.
func NewInstrumentedTaskService(next TaskService) TaskService {
	return &instrumentedTaskService{next: next}
}

func (s *instrumentedTaskService) ListTasks(ctx context.Context) ([]*models.Task, error) {
	start := time.Now()
	tasks, err := s.next.ListTasks(ctx)
	observe(metrics.OpList, start, err)
	return tasks, err
}

func (s *instrumentedTaskService) ListTasksByStatus(ctx context.Context, status string) ([]*models.Task, error) {
	start := time.Now()
	tasks, err := s.next.ListTasksByStatus(ctx, status)
	observe(metrics.OpListByStatus, start, err)
	return tasks, err
}

func (s *instrumentedTaskService) GetTask(ctx context.Context, id int64) (*models.Task, error) {
	start := time.Now()
	task, err := s.next.GetTask(ctx, id)
	observe(metrics.OpGet, start, err)
	return task, err
}

func (s *instrumentedTaskService) CreateTask(ctx context.Context, params CreateTaskParams) (*models.Task, error) {
	start := time.Now()
	task, err := s.next.CreateTask(ctx, params)
	observe(metrics.OpCreate, start, err)
	return task, err
}

func (s *instrumentedTaskService) UpdateTask(ctx context.Context, params UpdateTaskParams) (*models.Task, error) {
	start := time.Now()
	task, err := s.next.UpdateTask(ctx, params)
	observe(metrics.OpUpdate, start, err)
	return task, err
}

func (s *instrumentedTaskService) DeleteTask(ctx context.Context, id int64) error {
	start := time.Now()
	err := s.next.DeleteTask(ctx, id)
	observe(metrics.OpDelete, start, err)
	return err
}

func (s *instrumentedTaskService) Ping(ctx context.Context) error {
	return s.next.Ping(ctx)
}

func observe(operation string, start time.Time, err error) {
	metrics.RecordTaskOperation(operation, resultOf(err), time.Since(start))
}

func resultOf(err error) string {
	switch {
	case err == nil:
		return metrics.ResultOK
	case errors.Is(err, ErrTaskNotFound):
		return metrics.ResultNotFound
	case errors.Is(err, ErrTaskTitleRequired):
		return metrics.ResultInvalid
	default:
		return metrics.ResultError
	}
}
