// Package comment manages the notes attached to tasks. Edits and deletes
// are limited to the author or an admin.
package comment

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/workplan/backend/domain"
	"github.com/workplan/backend/repository"
	"github.com/workplan/backend/usecase"
	"github.com/workplan/backend/usecase/task"
)

type UseCase struct {
	comments repository.CommentRepository
	buffer   usecase.OperationBuffer
	logger   *zap.Logger
	now      func() time.Time
}

func New(comments repository.CommentRepository, buffer usecase.OperationBuffer, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		comments: comments,
		buffer:   buffer,
		logger:   logger,
		now:      time.Now,
	}
}

// WithClock overrides the wall clock, for deterministic tests.
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// ListByTask returns a task's comments oldest first.
func (uc *UseCase) ListByTask(ctx context.Context, taskID string) ([]domain.Comment, error) {
	comments, err := uc.comments.ListByTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	domain.SortComments(comments)
	return comments, nil
}

// Create attaches a comment to a task, authored by the acting employee.
func (uc *UseCase) Create(ctx context.Context, actor task.Actor, c *domain.Comment) (*domain.Comment, error) {
	if c == nil || strings.TrimSpace(c.Content) == "" {
		return nil, domain.ErrInvalidPayload
	}
	c.EmployeeID = actor.EmployeeID
	if c.CreatedAt.IsZero() {
		c.CreatedAt = uc.now()
	}

	created, err := uc.comments.Create(ctx, c)
	if err != nil {
		if uc.shouldBuffer(ctx, usecase.OperationCreate, c) {
			return c, nil
		}
		return nil, err
	}
	return created, nil
}

// Update rewrites a comment's content. Author and task binding are kept
// from the stored row.
func (uc *UseCase) Update(ctx context.Context, actor task.Actor, id, content string) (*domain.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, domain.ErrInvalidPayload
	}
	old, err := uc.comments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.CanModifyComment(old, actor.EmployeeID, actor.IsAdmin) {
		return nil, domain.ErrForbidden
	}

	next := *old
	next.Content = content
	if err := uc.comments.Update(ctx, &next); err != nil {
		if uc.shouldBuffer(ctx, usecase.OperationUpdate, &next) {
			return &next, nil
		}
		return nil, err
	}
	return &next, nil
}

// Delete removes a comment after the author-or-admin check.
func (uc *UseCase) Delete(ctx context.Context, actor task.Actor, id string) error {
	old, err := uc.comments.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !domain.CanModifyComment(old, actor.EmployeeID, actor.IsAdmin) {
		return domain.ErrForbidden
	}

	if err := uc.comments.Delete(ctx, id); err != nil {
		if err == domain.ErrCommentNotFound {
			return err
		}
		if uc.shouldBuffer(ctx, usecase.OperationDelete, &domain.Comment{ID: id}) {
			return nil
		}
		return err
	}
	return nil
}

func (uc *UseCase) shouldBuffer(ctx context.Context, operation string, c *domain.Comment) bool {
	if uc.buffer == nil {
		return false
	}
	if err := uc.buffer.BufferComment(ctx, operation, c); err != nil {
		uc.logger.Error("failed to buffer comment operation", zap.String("operation", operation), zap.Error(err))
		return false
	}
	uc.logger.Warn("comment operation buffered", zap.String("operation", operation))
	return true
}
