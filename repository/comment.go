package repository

import (
	"context"

	"github.com/workplan/backend/domain"
)

type CommentRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Comment, error)
	ListByTask(ctx context.Context, taskID string) ([]domain.Comment, error)
	Create(ctx context.Context, comment *domain.Comment) (*domain.Comment, error)
	Update(ctx context.Context, comment *domain.Comment) error
	Delete(ctx context.Context, id string) error
}
