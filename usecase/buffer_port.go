package usecase

import (
	"context"

	"github.com/workplan/backend/domain"
)

// Operation names shared with the offline buffer.
const (
	OperationCreate = "create"
	OperationUpdate = "update"
	OperationDelete = "delete"
)

// OperationBuffer absorbs mutations while the primary store is unreachable,
// keeping use cases storage-agnostic.
type OperationBuffer interface {
	BufferTask(ctx context.Context, operation string, task *domain.Task) error
	BufferComment(ctx context.Context, operation string, comment *domain.Comment) error
	BufferUser(ctx context.Context, operation string, user *domain.User) error
}
