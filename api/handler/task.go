package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/workplan/backend/api/transport"
	"github.com/workplan/backend/domain"
	"github.com/workplan/backend/pkg/httpcontext"
	"github.com/workplan/backend/repository"
	"github.com/workplan/backend/usecase/calendar"
	"github.com/workplan/backend/usecase/stats"
	taskUC "github.com/workplan/backend/usecase/task"
)

type TaskHandler struct {
	baseHandler
	uc *taskUC.UseCase
}

func NewTaskHandler(uc *taskUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List tasks
// @Tags tasks
// @Router /api/v1/tasks [get]
func (h *TaskHandler) GetTasks(ctx *fasthttp.RequestCtx) {
	actor, ok := h.actor(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	tasks, err := h.uc.List(stdCtx, repository.TaskFilter{
		Limit:  parseInt(string(ctx.QueryArgs().Peek("limit")), 0),
		Offset: parseInt(string(ctx.QueryArgs().Peek("offset")), 0),
	})
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	today := string(ctx.QueryArgs().Peek("today"))
	if today == "" {
		today = h.uc.Today()
	}
	fc := calendar.FilterContext{
		ActorEmployeeID: actor.EmployeeID,
		ActorIsAdmin:    actor.IsAdmin,
		EmployeeID:      string(ctx.QueryArgs().Peek("employee_id")),
		Category:        string(ctx.QueryArgs().Peek("category")),
		Status:          calendar.StatusFilter(string(ctx.QueryArgs().Peek("status"))),
		Today:           today,
	}
	visible := calendar.VisibleTasks(tasks, fc)
	stats.SortUserTasks(visible, today)

	h.respondSuccess(ctx, http.StatusOK, visible)
}

// @Summary Create task
// @Tags tasks
// @Router /api/v1/tasks [post]
func (h *TaskHandler) CreateTask(ctx *fasthttp.RequestCtx) {
	actor, ok := h.actor(ctx)
	if !ok {
		return
	}

	task, ok := h.parseTask(ctx, actor)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.Create(stdCtx, actor, task)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created)
}

// @Summary Update task
// @Tags tasks
// @Router /api/v1/tasks/{id} [put]
func (h *TaskHandler) UpdateTask(ctx *fasthttp.RequestCtx) {
	actor, ok := h.actor(ctx)
	if !ok {
		return
	}

	task, ok := h.parseTask(ctx, actor)
	if !ok {
		return
	}

	if task.ID == "" {
		if id, ok := ctx.UserValue("id").(string); ok {
			task.ID = id
		}
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.Update(stdCtx, actor, task)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// @Summary Toggle task completion
// @Tags tasks
// @Router /api/v1/tasks/{id}/toggle [post]
func (h *TaskHandler) ToggleTask(ctx *fasthttp.RequestCtx) {
	actor, ok := h.actor(ctx)
	if !ok {
		return
	}

	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondInvalid(ctx, "missing task id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	toggled, err := h.uc.ToggleStatus(stdCtx, actor, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, toggled)
}

// @Summary Reschedule task
// @Tags tasks
// @Router /api/v1/tasks/{id}/reschedule [post]
func (h *TaskHandler) RescheduleTask(ctx *fasthttp.RequestCtx) {
	actor, ok := h.actor(ctx)
	if !ok {
		return
	}

	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondInvalid(ctx, "missing task id")
		return
	}

	var req transport.RescheduleRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}
	if err := transport.Validate(req); err != nil {
		h.respondInvalid(ctx, err.Error())
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	moved, err := h.uc.Reschedule(stdCtx, actor, id, req.DropDate)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, moved)
}

// @Summary Delete task
// @Tags tasks
// @Router /api/v1/tasks/{id} [delete]
func (h *TaskHandler) DeleteTask(ctx *fasthttp.RequestCtx) {
	actor, ok := h.actor(ctx)
	if !ok {
		return
	}

	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondInvalid(ctx, "missing task id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.Delete(stdCtx, actor, id); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}

// @Summary Batch delete tasks
// @Tags tasks
// @Router /api/v1/tasks/batch-delete [post]
func (h *TaskHandler) BatchDeleteTasks(ctx *fasthttp.RequestCtx) {
	actor, ok := h.actor(ctx)
	if !ok {
		return
	}

	var req transport.BatchDeleteRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}
	if err := transport.Validate(req); err != nil {
		h.respondInvalid(ctx, err.Error())
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	deleted, err := h.uc.DeleteBatch(stdCtx, actor, req.IDs)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, map[string]interface{}{
		"deleted": deleted,
		"skipped": len(req.IDs) - len(deleted),
	})
}

func (h *TaskHandler) parseTask(ctx *fasthttp.RequestCtx, actor taskUC.Actor) (*domain.Task, bool) {
	var req transport.TaskRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return nil, false
	}
	if err := transport.Validate(req); err != nil {
		h.respondInvalid(ctx, err.Error())
		return nil, false
	}

	// Non-admins may only file tasks under their own employee id.
	employeeID := req.EmployeeID
	if !actor.IsAdmin {
		employeeID = actor.EmployeeID
	}

	return &domain.Task{
		ID:          req.ID,
		EmployeeID:  employeeID,
		Category:    req.Category,
		Title:       req.Title,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Status:      domain.TaskStatus(req.Status),
	}, true
}

func parseInt(value string, fallback int) int {
	if v, err := strconv.Atoi(value); err == nil {
		return v
	}
	return fallback
}
