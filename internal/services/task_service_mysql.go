package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-task-store/internal/models"
)

// ER_BAD_NULL_ERROR
const mysqlErrBadNull = 1048

var taskColumns = []string{
	"id",
	"title",
	"description",
	"status",
	"priority",
	"created_at",
	"updated_at",
}

type mysqlTaskServiceImpl struct {
	logger zerolog.Logger
	db     *sql.DB
}

func NewMySQLTaskService(
	logger zerolog.Logger,
	db *sql.DB,
) TaskService {
	return &mysqlTaskServiceImpl{
		logger: logger,
		db:     db,
	}
}

func (s *mysqlTaskServiceImpl) ListTasks(ctx context.Context) ([]*models.Task, error) {
	tasks, err := s.selectTasks(ctx, sq.Select(taskColumns...).
		From("tasks").
		OrderBy("created_at DESC", "id DESC"))
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

func (s *mysqlTaskServiceImpl) ListTasksByStatus(ctx context.Context, status string) ([]*models.Task, error) {
	tasks, err := s.selectTasks(ctx, sq.Select(taskColumns...).
		From("tasks").
		Where(sq.Eq{"status": status}).
		OrderBy("created_at DESC", "id DESC"))
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

func (s *mysqlTaskServiceImpl) GetTask(ctx context.Context, id int64) (*models.Task, error) {
	task, err := s.selectTask(ctx, id)
	if err != nil {
		if errors.Is(err, ErrTaskNotFound) {
			s.logger.Info().
				Int64("task_id", id).
				Msg("task not found")
			return nil, err
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

func (s *mysqlTaskServiceImpl) CreateTask(ctx context.Context, params CreateTaskParams) (*models.Task, error) {
	task, err := newTask(params, time.Now().UTC().Truncate(time.Microsecond))
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("invalid task")
		return nil, err
	}

	query, args, err := sq.Insert("tasks").
		Columns("title", "description", "status", "priority", "created_at", "updated_at").
		Values(task.Title, task.Description, task.Status, task.Priority, task.CreatedAt, task.UpdatedAt).
		ToSql()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to build insert query")
		return nil, err
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		var myErr *mysql.MySQLError
		if errors.As(err, &myErr) && myErr.Number == mysqlErrBadNull {
			s.logger.Error().
				Str("message", myErr.Message).
				Msg("task violates not null constraint")
			return nil, ErrTaskTitleRequired
		}

		s.logger.Error().
			Err(err).
			Msg("failed to insert task")
		return nil, err
	}

	task.ID, err = res.LastInsertId()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to get inserted task id")
		return nil, err
	}

	s.logger.Info().
		Int64("task_id", task.ID).
		Msg("created task")
	return task, nil
}

func (s *mysqlTaskServiceImpl) UpdateTask(ctx context.Context, params UpdateTaskParams) (*models.Task, error) {
	query, args, err := sq.Update("tasks").
		Set("title", sq.Expr("COALESCE(?, title)", params.Title)).
		Set("description", sq.Expr("COALESCE(?, description)", params.Description)).
		Set("status", sq.Expr("COALESCE(?, status)", params.Status)).
		Set("priority", sq.Expr("COALESCE(?, priority)", params.Priority)).
		Set("updated_at", sq.Expr("GREATEST(?, updated_at + INTERVAL 1 MICROSECOND)", time.Now().UTC())).
		Where(sq.Eq{"id": params.ID}).
		ToSql()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to build update query")
		return nil, err
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		s.logger.Error().
			Err(err).
			Int64("task_id", params.ID).
			Msg("failed to update task")
		return nil, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		s.logger.Error().
			Err(err).
			Int64("task_id", params.ID).
			Msg("failed to get affected rows")
		return nil, err
	}
	if affected == 0 {
		s.logger.Info().
			Int64("task_id", params.ID).
			Msg("task not found")
		return nil, ErrTaskNotFound
	}

	task, err := s.selectTask(ctx, params.ID)
	if err != nil {
		s.logger.Error().
			Err(err).
			Int64("task_id", params.ID).
			Msg("failed to select updated task")
		return nil, err
	}

	s.logger.Info().
		Int64("task_id", task.ID).
		Msg("updated task")
	return task, nil
}

func (s *mysqlTaskServiceImpl) DeleteTask(ctx context.Context, id int64) error {
	query, args, err := sq.Delete("tasks").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to build delete query")
		return err
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		s.logger.Error().
			Err(err).
			Int64("task_id", id).
			Msg("failed to delete task")
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		s.logger.Error().
			Err(err).
			Int64("task_id", id).
			Msg("failed to get affected rows")
		return err
	}
	if affected == 0 {
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

func (s *mysqlTaskServiceImpl) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *mysqlTaskServiceImpl) selectTask(ctx context.Context, id int64) (*models.Task, error) {
	query, args, err := sq.Select(taskColumns...).
		From("tasks").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, err
	}

	task, err := scanTask(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return task, nil
}

func (s *mysqlTaskServiceImpl) selectTasks(ctx context.Context, builder sq.SelectBuilder) ([]*models.Task, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

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
