package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/workplan/backend/domain"
	"github.com/workplan/backend/repository"
)

type commentRepository struct {
	pool *pgxpool.Pool
}

// NewCommentRepository returns a Postgres-backed comment repository.
func NewCommentRepository(pool *pgxpool.Pool) repository.CommentRepository {
	return &commentRepository{pool: pool}
}

func (r *commentRepository) GetByID(ctx context.Context, id string) (*domain.Comment, error) {
	const query = `
	SELECT id, task_id, employee_id, content, created_at
	FROM comments
	WHERE id = $1
	`
	row := r.pool.QueryRow(ctx, query, id)
	return scanComment(row)
}

func (r *commentRepository) ListByTask(ctx context.Context, taskID string) ([]domain.Comment, error) {
	const query = `
	SELECT id, task_id, employee_id, content, created_at
	FROM comments
	WHERE task_id = $1
	ORDER BY created_at
	`
	rows, err := r.pool.Query(ctx, query, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []domain.Comment
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, *comment)
	}
	return comments, rows.Err()
}

func (r *commentRepository) Create(ctx context.Context, comment *domain.Comment) (*domain.Comment, error) {
	if comment == nil {
		return nil, domain.ErrInvalidPayload
	}
	if comment.ID == "" {
		comment.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO comments (id, task_id, employee_id, content)
	VALUES ($1, $2, $3, $4)
	RETURNING created_at
	`
	if err := r.pool.QueryRow(ctx, query,
		comment.ID,
		comment.TaskID,
		comment.EmployeeID,
		comment.Content,
	).Scan(&comment.CreatedAt); err != nil {
		return nil, err
	}
	return comment, nil
}

func (r *commentRepository) Update(ctx context.Context, comment *domain.Comment) error {
	if comment == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE comments
	SET content = $2
	WHERE id = $1
	`
	tag, err := r.pool.Exec(ctx, query, comment.ID, comment.Content)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCommentNotFound
	}
	return nil
}

func (r *commentRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM comments WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCommentNotFound
	}
	return nil
}

func scanComment(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Comment, error) {
	var comment domain.Comment
	if err := row.Scan(
		&comment.ID,
		&comment.TaskID,
		&comment.EmployeeID,
		&comment.Content,
		&comment.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCommentNotFound
		}
		return nil, err
	}
	return &comment, nil
}
