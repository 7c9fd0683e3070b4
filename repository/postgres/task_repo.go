package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/workplan/backend/domain"
	"github.com/workplan/backend/repository"
)

type taskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository returns a Postgres-backed implementation of TaskRepository.
func NewTaskRepository(pool *pgxpool.Pool) repository.TaskRepository {
	return &taskRepository{pool: pool}
}

const taskColumns = `id, employee_id, category, title, description, start_date, end_date, status,
	modification_count, completed_at, created_by, last_reminded_at, created_at, updated_at`

func (r *taskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	const query = `
	SELECT ` + taskColumns + `
	FROM tasks
	WHERE id = $1
	`
	row := r.pool.QueryRow(ctx, query, id)
	return scanTask(row)
}

func (r *taskRepository) List(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	const query = `
	SELECT ` + taskColumns + `
	FROM tasks
	WHERE ($1 = '' OR employee_id = $1)
	  AND ($2 = '' OR category = $2)
	  AND ($3 = '' OR status = $3)
	ORDER BY start_date, created_at
	LIMIT $4 OFFSET $5
	`
	rows, err := r.pool.Query(ctx, query,
		filter.EmployeeID, filter.Category, string(filter.Status),
		limitArg(filter.Limit), filter.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	return tasks, rows.Err()
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil {
		return nil, domain.ErrInvalidPayload
	}
	if task.ID == "" {
		task.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO tasks (id, employee_id, category, title, description, start_date, end_date, status,
		modification_count, completed_at, created_by, last_reminded_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	RETURNING created_at, updated_at
	`

	if err := r.pool.QueryRow(ctx, query,
		task.ID,
		task.EmployeeID,
		task.Category,
		task.Title,
		task.Description,
		task.StartDate,
		task.EndDate,
		task.Status,
		task.ModificationCount,
		nullTime(task.CompletedAt),
		task.CreatedBy,
		nullTime(task.LastRemindedAt),
	).Scan(&task.CreatedAt, &task.UpdatedAt); err != nil {
		return nil, err
	}

	return task, nil
}

func (r *taskRepository) Update(ctx context.Context, task *domain.Task) error {
	if task == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE tasks
	SET employee_id = $2,
		category = $3,
		title = $4,
		description = $5,
		start_date = $6,
		end_date = $7,
		status = $8,
		modification_count = $9,
		completed_at = $10,
		last_reminded_at = $11,
		updated_at = NOW()
	WHERE id = $1
	RETURNING updated_at
	`

	if err := r.pool.QueryRow(ctx, query,
		task.ID,
		task.EmployeeID,
		task.Category,
		task.Title,
		task.Description,
		task.StartDate,
		task.EndDate,
		task.Status,
		task.ModificationCount,
		nullTime(task.CompletedAt),
		nullTime(task.LastRemindedAt),
	).Scan(&task.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrTaskNotFound
		}
		return err
	}

	return nil
}

func (r *taskRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM tasks WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *taskRepository) DeleteBatch(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	const query = `DELETE FROM tasks WHERE id = ANY($1)`
	_, err := r.pool.Exec(ctx, query, ids)
	return err
}

func scanTask(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Task, error) {
	var task domain.Task
	var (
		completed *time.Time
		reminded  *time.Time
	)

	if err := row.Scan(
		&task.ID,
		&task.EmployeeID,
		&task.Category,
		&task.Title,
		&task.Description,
		&task.StartDate,
		&task.EndDate,
		&task.Status,
		&task.ModificationCount,
		&completed,
		&task.CreatedBy,
		&reminded,
		&task.CreatedAt,
		&task.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}

	task.CompletedAt = completed
	task.LastRemindedAt = reminded
	return &task, nil
}
