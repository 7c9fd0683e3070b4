package repository

import (
	"context"

	"github.com/workplan/backend/domain"
)

type UserRepository interface {
	GetByEmployeeID(ctx context.Context, employeeID string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Upsert(ctx context.Context, user *domain.User) error
}
