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

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository instantiates a Postgres-backed user repository.
func NewUserRepository(pool *pgxpool.Pool) repository.UserRepository {
	return &userRepository{pool: pool}
}

func (r *userRepository) GetByEmployeeID(ctx context.Context, employeeID string) (*domain.User, error) {
	const query = `
	SELECT id, employee_id, name, role, status, color, active_sessions, created_at, updated_at
	FROM users
	WHERE employee_id = $1
	`
	row := r.pool.QueryRow(ctx, query, employeeID)
	return scanUser(row)
}

func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	const query = `
	SELECT id, employee_id, name, role, status, color, active_sessions, created_at, updated_at
	FROM users
	ORDER BY created_at
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}

func (r *userRepository) Upsert(ctx context.Context, user *domain.User) error {
	if user == nil {
		return domain.ErrInvalidPayload
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO users (id, employee_id, name, role, status, color, active_sessions)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (employee_id) DO UPDATE
	SET name = EXCLUDED.name,
		role = EXCLUDED.role,
		status = EXCLUDED.status,
		color = EXCLUDED.color,
		active_sessions = EXCLUDED.active_sessions,
		updated_at = NOW()
	RETURNING id, created_at, updated_at
	`
	return r.pool.QueryRow(ctx, query,
		user.ID,
		user.EmployeeID,
		user.Name,
		user.Role,
		user.Status,
		user.Color,
		user.ActiveSessions,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

func scanUser(row interface {
	Scan(dest ...interface{}) error
}) (*domain.User, error) {
	var user domain.User
	if err := row.Scan(
		&user.ID,
		&user.EmployeeID,
		&user.Name,
		&user.Role,
		&user.Status,
		&user.Color,
		&user.ActiveSessions,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}
