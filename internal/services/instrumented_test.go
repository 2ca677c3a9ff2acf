package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/adanyl0v/go-task-store/internal/metrics"
	"github.com/adanyl0v/go-task-store/internal/models"
)

type stubTaskService struct {
	TaskService
	err error
}

func (s stubTaskService) GetTask(context.Context, int64) (*models.Task, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.Task{ID: 1}, nil
}

func TestResultOf(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{nil, metrics.ResultOK},
		{ErrTaskNotFound, metrics.ResultNotFound},
		{fmt.Errorf("wrapped: %w", ErrTaskTitleRequired), metrics.ResultInvalid},
		{errors.New("boom"), metrics.ResultError},
	}
	for _, tc := range cases {
		if got := resultOf(tc.err); got != tc.want {
			t.Fatalf("resultOf(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}

func TestInstrumentedTaskService_CountsResults(t *testing.T) {
	notFound := metrics.TaskOperations.WithLabelValues(metrics.OpGet, metrics.ResultNotFound)
	before := testutil.ToFloat64(notFound)

	svc := NewInstrumentedTaskService(stubTaskService{err: ErrTaskNotFound})
	_, err := svc.GetTask(context.Background(), 1)
	if !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected error to pass through, got %v", err)
	}

	if got := testutil.ToFloat64(notFound); got-before != 1 {
		t.Fatalf("expected not_found counter to grow by 1, grew by %v", got-before)
	}
}
