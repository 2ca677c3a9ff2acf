package v1

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/adanyl0v/go-task-store/internal/models"
	"github.com/adanyl0v/go-task-store/internal/services"
)

// memTaskService is an in-memory TaskService with a clock that advances
// one second per mutation, so ordering and updated_at are deterministic.
type memTaskService struct {
	mu      sync.Mutex
	nextID  int64
	now     time.Time
	tasks   map[int64]models.Task
	pingErr error
}

func newMemTaskService() *memTaskService {
	return &memTaskService{
		nextID: 1,
		now:    time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
		tasks:  make(map[int64]models.Task),
	}
}

func (s *memTaskService) tick() time.Time {
	s.now = s.now.Add(time.Second)
	return s.now
}

func (s *memTaskService) ListTasks(ctx context.Context) ([]*models.Task, error) {
	return s.filter(func(models.Task) bool { return true }), nil
}

func (s *memTaskService) ListTasksByStatus(ctx context.Context, status string) ([]*models.Task, error) {
	return s.filter(func(t models.Task) bool { return t.Status == status }), nil
}

func (s *memTaskService) filter(keep func(models.Task) bool) []*models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks := make([]*models.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if keep(t) {
			t := t
			tasks = append(tasks, &t)
		}
	}
	sort.Slice(tasks, func(i, j int) bool {
		if tasks[i].CreatedAt.Equal(tasks[j].CreatedAt) {
			return tasks[i].ID > tasks[j].ID
		}
		return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
	})
	return tasks
}

func (s *memTaskService) GetTask(ctx context.Context, id int64) (*models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok {
		return nil, services.ErrTaskNotFound
	}
	return &t, nil
}

func (s *memTaskService) CreateTask(ctx context.Context, params services.CreateTaskParams) (*models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if params.Title == "" {
		return nil, services.ErrTaskTitleRequired
	}

	now := s.tick()
	t := models.Task{
		ID:          s.nextID,
		Title:       params.Title,
		Description: deref(params.Description, ""),
		Status:      deref(params.Status, models.DefaultStatus),
		Priority:    deref(params.Priority, models.DefaultPriority),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.nextID++
	s.tasks[t.ID] = t
	return &t, nil
}

func (s *memTaskService) UpdateTask(ctx context.Context, params services.UpdateTaskParams) (*models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[params.ID]
	if !ok {
		return nil, services.ErrTaskNotFound
	}
	t.Title = deref(params.Title, t.Title)
	t.Description = deref(params.Description, t.Description)
	t.Status = deref(params.Status, t.Status)
	t.Priority = deref(params.Priority, t.Priority)
	t.UpdatedAt = s.tick()
	s.tasks[t.ID] = t
	return &t, nil
}

func (s *memTaskService) DeleteTask(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[id]; !ok {
		return services.ErrTaskNotFound
	}
	delete(s.tasks, id)
	return nil
}

func (s *memTaskService) Ping(ctx context.Context) error {
	return s.pingErr
}

func deref(p *string, def string) string {
	if p == nil {
		return def
	}
	return *p
}

// failingTaskService fails every call with err.
type failingTaskService struct {
	err error
}

func (s failingTaskService) ListTasks(context.Context) ([]*models.Task, error) { return nil, s.err }
func (s failingTaskService) ListTasksByStatus(context.Context, string) ([]*models.Task, error) {
	return nil, s.err
}
func (s failingTaskService) GetTask(context.Context, int64) (*models.Task, error) { return nil, s.err }
func (s failingTaskService) CreateTask(context.Context, services.CreateTaskParams) (*models.Task, error) {
	return nil, s.err
}
func (s failingTaskService) UpdateTask(context.Context, services.UpdateTaskParams) (*models.Task, error) {
	return nil, s.err
}
func (s failingTaskService) DeleteTask(context.Context, int64) error { return s.err }
func (s failingTaskService) Ping(context.Context) error             { return s.err }
