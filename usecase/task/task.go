// Package task owns the write side of the task lifecycle: creation
// defaults, the date-edit modification counter, the completedAt transition
// pair, permission-guarded deletes, and drag rescheduling.
package task

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/workplan/backend/domain"
	"github.com/workplan/backend/pkg/dateutil"
	"github.com/workplan/backend/repository"
	"github.com/workplan/backend/usecase"
	"github.com/workplan/backend/usecase/reschedule"
)

// Actor identifies who is performing a mutation.
type Actor struct {
	EmployeeID string
	IsAdmin    bool
}

type UseCase struct {
	tasks  repository.TaskRepository
	buffer usecase.OperationBuffer
	logger *zap.Logger
	now    func() time.Time
}

func New(tasks repository.TaskRepository, buffer usecase.OperationBuffer, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:  tasks,
		buffer: buffer,
		logger: logger,
		now:    time.Now,
	}
}

// WithClock overrides the wall clock, for deterministic tests.
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// Today is the current calendar day as seen by this use case's clock.
func (uc *UseCase) Today() string {
	return dateutil.Format(uc.now())
}

func (uc *UseCase) List(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	return uc.tasks.List(ctx, filter)
}

func (uc *UseCase) Get(ctx context.Context, id string) (*domain.Task, error) {
	return uc.tasks.GetByID(ctx, id)
}

// Create inserts a task, defaulting the stored status to pending and the
// author to the acting employee.
func (uc *UseCase) Create(ctx context.Context, actor Actor, t *domain.Task) (*domain.Task, error) {
	if t == nil {
		return nil, domain.ErrInvalidPayload
	}
	if t.Status == "" {
		t.Status = domain.TaskPending
	}
	if t.EndDate == "" {
		t.EndDate = t.StartDate
	}
	if t.CreatedBy == "" {
		t.CreatedBy = actor.EmployeeID
	}
	reminded := uc.now()
	t.LastRemindedAt = &reminded

	created, err := uc.tasks.Create(ctx, t)
	if err != nil {
		if uc.shouldBuffer(ctx, usecase.OperationCreate, t) {
			return t, nil
		}
		return nil, err
	}
	return created, nil
}

// Update applies an edit, recomputing the bookkeeping fields against the
// stored row: the modification counter moves only on a date change, and
// completedAt follows the status transition.
func (uc *UseCase) Update(ctx context.Context, actor Actor, t *domain.Task) (*domain.Task, error) {
	if t == nil {
		return nil, domain.ErrInvalidPayload
	}

	old, err := uc.tasks.GetByID(ctx, t.ID)
	if err != nil {
		return nil, err
	}

	uc.applyTransitions(old, t)

	if err := uc.tasks.Update(ctx, t); err != nil {
		if uc.shouldBuffer(ctx, usecase.OperationUpdate, t) {
			return t, nil
		}
		return nil, err
	}
	return t, nil
}

// ToggleStatus flips the stored status, stamping or clearing completedAt.
// Toggling twice restores both fields exactly.
func (uc *UseCase) ToggleStatus(ctx context.Context, actor Actor, id string) (*domain.Task, error) {
	old, err := uc.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	next := *old
	if old.IsCompleted() {
		next.Status = domain.TaskPending
	} else {
		next.Status = domain.TaskCompleted
	}
	uc.applyTransitions(old, &next)

	if err := uc.tasks.Update(ctx, &next); err != nil {
		if uc.shouldBuffer(ctx, usecase.OperationUpdate, &next) {
			return &next, nil
		}
		return nil, err
	}
	return &next, nil
}

// Reschedule shifts a task to start on dropDate, preserving its duration.
func (uc *UseCase) Reschedule(ctx context.Context, actor Actor, id, dropDate string) (*domain.Task, error) {
	old, err := uc.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	shifted, err := reschedule.Shift(old, dropDate)
	if err != nil {
		return nil, err
	}
	uc.applyTransitions(old, shifted)

	if err := uc.tasks.Update(ctx, shifted); err != nil {
		if uc.shouldBuffer(ctx, usecase.OperationUpdate, shifted) {
			return shifted, nil
		}
		return nil, err
	}
	return shifted, nil
}

// Delete removes a task after the ownership check. Denial is a plain
// FORBIDDEN before any mutation happens.
func (uc *UseCase) Delete(ctx context.Context, actor Actor, id string) error {
	t, err := uc.tasks.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !domain.CanDeleteTask(t, actor.EmployeeID, actor.IsAdmin) {
		return domain.ErrForbidden
	}

	if err := uc.tasks.Delete(ctx, id); err != nil {
		if err == domain.ErrTaskNotFound {
			return err
		}
		if uc.shouldBuffer(ctx, usecase.OperationDelete, &domain.Task{ID: id}) {
			return nil
		}
		return err
	}
	return nil
}

// DeleteBatch removes the permitted subset of ids and reports which were
// deleted. Tasks the actor may not touch are skipped, never half-applied.
func (uc *UseCase) DeleteBatch(ctx context.Context, actor Actor, ids []string) ([]string, error) {
	allowed := make([]string, 0, len(ids))
	for _, id := range ids {
		t, err := uc.tasks.GetByID(ctx, id)
		if err != nil {
			if domain.IsDomainError(err, domain.ErrCodeNotFound) {
				continue
			}
			return nil, err
		}
		if domain.CanDeleteTask(t, actor.EmployeeID, actor.IsAdmin) {
			allowed = append(allowed, id)
		} else {
			uc.logger.Warn("batch delete skipped task without permission",
				zap.String("task_id", id), zap.String("actor", actor.EmployeeID))
		}
	}

	if len(allowed) == 0 {
		return nil, nil
	}
	if err := uc.tasks.DeleteBatch(ctx, allowed); err != nil {
		return nil, err
	}
	return allowed, nil
}

// applyTransitions recomputes the derived bookkeeping on next using old as
// the reference row.
func (uc *UseCase) applyTransitions(old, next *domain.Task) {
	next.ModificationCount = old.ModificationCount
	if old.StartDate != next.StartDate || old.EndDate != next.EndDate {
		next.ModificationCount++
	}

	switch {
	case next.Status == domain.TaskCompleted && old.Status != domain.TaskCompleted:
		completed := uc.now()
		next.CompletedAt = &completed
	case next.Status == domain.TaskPending:
		next.CompletedAt = nil
	default:
		next.CompletedAt = old.CompletedAt
	}

	reminded := uc.now()
	next.LastRemindedAt = &reminded
	next.CreatedBy = old.CreatedBy
}

func (uc *UseCase) shouldBuffer(ctx context.Context, operation string, t *domain.Task) bool {
	if uc.buffer == nil {
		return false
	}
	if err := uc.buffer.BufferTask(ctx, operation, t); err != nil {
		uc.logger.Error("failed to buffer task operation", zap.String("operation", operation), zap.Error(err))
		return false
	}
	uc.logger.Warn("task operation buffered", zap.String("operation", operation))
	return true
}
