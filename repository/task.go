package repository

import (
	"context"

	"github.com/workplan/backend/domain"
)

// TaskFilter narrows List results at the store level. The calendar and
// dashboard layers apply their own derived-state filtering on top; the store
// only understands stored fields.
type TaskFilter struct {
	EmployeeID string
	Category   string
	Status     domain.TaskStatus
	Limit      int
	Offset     int
}

type TaskRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context, filter TaskFilter) ([]domain.Task, error)
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, id string) error
	DeleteBatch(ctx context.Context, ids []string) error
}
