package services

import (
	"context"
	"encoding/json"

	"github.com/workplan/backend/domain"
	"github.com/workplan/backend/internal/infrastructure/buffer"
	"github.com/workplan/backend/usecase"
)

// BufferBridge adapts the buffer processor to the use-case port so the
// use cases never import infrastructure types.
type BufferBridge struct {
	processor *BufferProcessor
}

func NewBufferBridge(processor *BufferProcessor) *BufferBridge {
	return &BufferBridge{processor: processor}
}

func (b *BufferBridge) BufferTask(ctx context.Context, operation string, task *domain.Task) error {
	if b.processor == nil || task == nil {
		return domain.ErrInvalidPayload
	}
	payload, err := json.Marshal(task)
	if err != nil {
		return err
	}
	item := buffer.Item{
		ID:         task.ID,
		EmployeeID: task.EmployeeID,
		Entity:     buffer.EntityTask,
		Operation:  operation,
		Data:       payload,
		Priority:   4,
	}
	return b.processor.BufferOperation(ctx, item)
}

func (b *BufferBridge) BufferComment(ctx context.Context, operation string, comment *domain.Comment) error {
	if b.processor == nil || comment == nil {
		return domain.ErrInvalidPayload
	}
	payload, err := json.Marshal(comment)
	if err != nil {
		return err
	}
	item := buffer.Item{
		ID:         comment.ID,
		EmployeeID: comment.EmployeeID,
		Entity:     buffer.EntityComment,
		Operation:  operation,
		Data:       payload,
		Priority:   3,
	}
	return b.processor.BufferOperation(ctx, item)
}

func (b *BufferBridge) BufferUser(ctx context.Context, operation string, user *domain.User) error {
	if b.processor == nil || user == nil {
		return domain.ErrInvalidPayload
	}
	payload, err := json.Marshal(user)
	if err != nil {
		return err
	}
	item := buffer.Item{
		ID:         user.ID,
		EmployeeID: user.EmployeeID,
		Entity:     buffer.EntityUser,
		Operation:  operation,
		Data:       payload,
		Priority:   5,
	}
	return b.processor.BufferOperation(ctx, item)
}

var _ usecase.OperationBuffer = (*BufferBridge)(nil)
