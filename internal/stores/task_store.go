package stores

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/taskboard/api/internal/models"
)

type taskStoreImpl struct {
	logger zerolog.Logger
	pgPool *pgxpool.Pool
}

func NewTaskStore(
	logger zerolog.Logger,
	pgPool *pgxpool.Pool,
) TaskStore {
	return &taskStoreImpl{
		logger: logger,
		pgPool: pgPool,
	}
}

func (s *taskStoreImpl) CreateTask(ctx context.Context, params CreateTaskParams) (*models.Task, error) {
	now := time.Now()
	task := &models.Task{
		Title:       params.Title,
		Description: params.Description,
		Status:      params.Status,
		AssignedTo:  params.AssignedTo,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if task.Status == "" {
		task.Status = models.StatusPending
	}

	taskUUID, err := uuid.NewV7()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to generate task uuid")
		return nil, err
	}
	task.ID = taskUUID.String()

	const insertTaskQuery = `
INSERT INTO tasks (id,
                   title,
                   description,
                   status,
                   assigned_to,
                   created_at,
                   updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`
	_, err = s.pgPool.Exec(
		ctx,
		insertTaskQuery,
		task.ID,
		task.Title,
		task.Description,
		task.Status,
		task.AssignedTo,
		task.CreatedAt,
		task.UpdatedAt,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to insert task")
		return nil, err
	}
	s.logger.Debug().
		Str("task_id", task.ID).
		Str("assigned_to", task.AssignedTo).
		Msg("inserted task")

	s.logger.Info().
		Str("task_id", task.ID).
		Msg("created task")
	return task, nil
}

func (s *taskStoreImpl) FindTaskByID(ctx context.Context, id string) (*models.Task, error) {
	task := &models.Task{
		ID: id,
	}

	const selectTaskByIDQuery = `
SELECT title,
       description,
       status,
       assigned_to,
       created_at,
       updated_at
FROM tasks
WHERE id = $1
`
	err := s.pgPool.QueryRow(
		ctx,
		selectTaskByIDQuery,
		task.ID,
	).Scan(
		&task.Title,
		&task.Description,
		&task.Status,
		&task.AssignedTo,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Warn().
				Str("task_id", id).
				Msg("task not found")
			return nil, ErrTaskNotFound
		}

		s.logger.Error().
			Err(err).
			Str("task_id", id).
			Msg("failed to select task by id")
		return nil, err
	}
	s.logger.Debug().
		Str("task_id", task.ID).
		Msg("selected task by id")

	return task, nil
}

func (s *taskStoreImpl) FindTasksByAssignee(ctx context.Context, userID string) ([]*models.Task, error) {
	const selectTasksByAssigneeQuery = `
SELECT id,
       title,
       description,
       status,
       created_at,
       updated_at
FROM tasks
WHERE assigned_to = $1
ORDER BY created_at DESC
`
	rows, err := s.pgPool.Query(
		ctx,
		selectTasksByAssigneeQuery,
		userID,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("assigned_to", userID).
			Msg("failed to select tasks by assignee")
		return nil, err
	}
	defer rows.Close()

	tasks := make([]*models.Task, 0)
	for rows.Next() {
		task := &models.Task{AssignedTo: userID}
		err = rows.Scan(
			&task.ID,
			&task.Title,
			&task.Description,
			&task.Status,
			&task.CreatedAt,
			&task.UpdatedAt,
		)
		if err != nil {
			s.logger.Error().
				Err(err).
				Msg("failed to scan task")
			return nil, err
		}
		tasks = append(tasks, task)
	}

	err = rows.Err()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to iterate over rows")
		return nil, err
	}
	s.logger.Debug().
		Int("count", len(tasks)).
		Str("assigned_to", userID).
		Msg("selected tasks by assignee")

	return tasks, nil
}

func (s *taskStoreImpl) UpdateTask(ctx context.Context, params UpdateTaskParams) (*models.Task, error) {
	task := &models.Task{
		ID:        params.ID,
		UpdatedAt: time.Now(),
	}

	const updateTaskQuery = `
UPDATE tasks
SET title = COALESCE($1, title),
    description = COALESCE($2, description),
    status = COALESCE($3, status),
    updated_at = $4
WHERE id = $5
RETURNING title, description, status, assigned_to, created_at
`
	err := s.pgPool.QueryRow(
		ctx,
		updateTaskQuery,
		params.Title,
		params.Description,
		params.Status,
		task.UpdatedAt,
		task.ID,
	).Scan(
		&task.Title,
		&task.Description,
		&task.Status,
		&task.AssignedTo,
		&task.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Warn().
				Str("task_id", task.ID).
				Msg("task not found")
			return nil, ErrTaskNotFound
		}

		s.logger.Error().
			Err(err).
			Str("task_id", task.ID).
			Msg("failed to update task")
		return nil, err
	}
	s.logger.Debug().
		Str("task_id", task.ID).
		Msg("updated task")

	s.logger.Info().
		Str("task_id", task.ID).
		Msg("updated task")
	return task, nil
}

func (s *taskStoreImpl) DeleteTask(ctx context.Context, id string) error {
	const deleteTaskQuery = `
DELETE FROM tasks
WHERE id = $1
`
	tag, err := s.pgPool.Exec(
		ctx,
		deleteTaskQuery,
		id,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("task_id", id).
			Msg("failed to delete task")
		return err
	}
	s.logger.Debug().
		Str("task_id", id).
		Int64("affected", tag.RowsAffected()).
		Msg("deleted task")

	s.logger.Info().
		Str("task_id", id).
		Msg("deleted task")
	return nil
}
