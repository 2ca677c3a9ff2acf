package services

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-task-store/internal/models"
)

// PgxQuerier is the subset of *pgxpool.Pool the task service needs.
// Every call acquires a pooled connection and releases it before returning.
type PgxQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
}

type taskServiceImpl struct {
	logger zerolog.Logger
	pgPool PgxQuerier
}

func NewTaskService(
	logger zerolog.Logger,
	pgPool PgxQuerier,
) TaskService {
	return &taskServiceImpl{
		logger: logger,
		pgPool: pgPool,
	}
}

const selectTasksQuery = `
SELECT id,
       title,
       description,
       status,
       priority,
       created_at,
       updated_at
FROM tasks
ORDER BY created_at DESC, id DESC
`

func (s *taskServiceImpl) ListTasks(ctx context.Context) ([]*models.Task, error) {
	tasks, err := s.selectTasks(ctx, selectTasksQuery)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to select tasks")
		return nil, err
	}
	s.logger.Debug().
		Int("count", len(tasks)).
		Msg("selected tasks")
	return tasks, nil
}

const selectTasksByStatusQuery = `
SELECT id,
       title,
       description,
       status,
       priority,
       created_at,
       updated_at
FROM tasks
WHERE status = $1
ORDER BY created_at DESC, id DESC
`

func (s *taskServiceImpl) ListTasksByStatus(ctx context.Context, status string) ([]*models.Task, error) {
	tasks, err := s.selectTasks(ctx, selectTasksByStatusQuery, status)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("status", status).
			Msg("failed to select tasks by status")
		return nil, err
	}
	s.logger.Debug().
		Int("count", len(tasks)).
		Str("status", status).
		Msg("selected tasks by status")
	return tasks, nil
}

func (s *taskServiceImpl) GetTask(ctx context.Context, id int64) (*models.Task, error) {
	const selectTaskByIDQuery = `
SELECT id,
       title,
       description,
       status,
       priority,
       created_at,
       updated_at
FROM tasks
WHERE id = $1
`
	task, err := scanTask(s.pgPool.QueryRow(ctx, selectTaskByIDQuery, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Info().
				Int64("task_id", id).
				Msg("task not found")
			return nil, ErrTaskNotFound
		}

		s.logger.Error().
			Err(err).
			Int64("task_id", id).
			Msg("failed to select task by id")
		return nil, err
	}
	s.logger.Debug().
		Int64("task_id", id).
		Msg("selected task by id")
	return task, nil
}

func (s *taskServiceImpl) CreateTask(ctx context.Context, params CreateTaskParams) (*models.Task, error) {
	task, err := newTask(params, time.Now().UTC().Truncate(time.Microsecond))
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("invalid task")
		return nil, err
	}

	const insertTaskQuery = `
INSERT INTO tasks (title,
                   description,
                   status,
                   priority,
                   created_at,
                   updated_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id
`
	err = s.pgPool.QueryRow(
		ctx,
		insertTaskQuery,
		task.Title,
		task.Description,
		task.Status,
		task.Priority,
		task.CreatedAt,
		task.UpdatedAt,
	).Scan(&task.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.NotNullViolation {
			s.logger.Error().
				Str("column", pgErr.ColumnName).
				Msg("task violates not null constraint")
			return nil, ErrTaskTitleRequired
		}

		s.logger.Error().
			Err(err).
			Msg("failed to insert task")
		return nil, err
	}

	s.logger.Info().
		Int64("task_id", task.ID).
		Msg("created task")
	return task, nil
}

func (s *taskServiceImpl) UpdateTask(ctx context.Context, params UpdateTaskParams) (*models.Task, error) {
	task := &models.Task{ID: params.ID}

	// COALESCE keeps the stored value of every column the caller left nil,
	// so the read-modify-write happens inside a single statement.
	const updateTaskQuery = `
UPDATE tasks
SET title = COALESCE($1, title),
    description = COALESCE($2, description),
    status = COALESCE($3, status),
    priority = COALESCE($4, priority),
    updated_at = GREATEST($5, updated_at + INTERVAL '1 microsecond')
WHERE id = $6
RETURNING title, description, status, priority, created_at, updated_at
`
	err := s.pgPool.QueryRow(
		ctx,
		updateTaskQuery,
		params.Title,
		params.Description,
		params.Status,
		params.Priority,
		time.Now().UTC(),
		params.ID,
	).Scan(
		&task.Title,
		&task.Description,
		&task.Status,
		&task.Priority,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Info().
				Int64("task_id", params.ID).
				Msg("task not found")
			return nil, ErrTaskNotFound
		}

		s.logger.Error().
			Err(err).
			Int64("task_id", params.ID).
			Msg("failed to update task")
		return nil, err
	}

	s.logger.Info().
		Int64("task_id", task.ID).
		Msg("updated task")
	return task, nil
}

func (s *taskServiceImpl) DeleteTask(ctx context.Context, id int64) error {
	const deleteTaskQuery = `
DELETE FROM tasks
WHERE id = $1
`
	tag, err := s.pgPool.Exec(ctx, deleteTaskQuery, id)
	if err != nil {
		s.logger.Error().
			Err(err).
			Int64("task_id", id).
			Msg("failed to delete task")
		return err
	}
	if tag.RowsAffected() == 0 {
		s.logger.Info().
			Int64("task_id", id).
			Msg("task not found")
		return ErrTaskNotFound
	}

	s.logger.Info().
		Int64("task_id", id).
		Msg("deleted task")
	return nil
}

func (s *taskServiceImpl) Ping(ctx context.Context) error {
	return s.pgPool.Ping(ctx)
}

func (s *taskServiceImpl) selectTasks(ctx context.Context, query string, args ...any) ([]*models.Task, error) {
	rows, err := s.pgPool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]*models.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	err = rows.Err()
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func scanTask(row rowScanner) (*models.Task, error) {
	task := new(models.Task)
	err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.Status,
		&task.Priority,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return task, nil
}

// rowScanner is satisfied by pgx.Row, pgx.Rows, *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}
