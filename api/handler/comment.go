package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/workplan/backend/api/transport"
	"github.com/workplan/backend/domain"
	"github.com/workplan/backend/pkg/httpcontext"
	commentUC "github.com/workplan/backend/usecase/comment"
)

type CommentHandler struct {
	baseHandler
	uc *commentUC.UseCase
}

func NewCommentHandler(uc *commentUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *CommentHandler {
	return &CommentHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List comments for a task
// @Tags comments
// @Router /api/v1/tasks/{id}/comments [get]
func (h *CommentHandler) GetComments(ctx *fasthttp.RequestCtx) {
	if _, ok := h.actor(ctx); !ok {
		return
	}

	taskID, _ := ctx.UserValue("id").(string)
	if taskID == "" {
		h.respondInvalid(ctx, "missing task id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	comments, err := h.uc.ListByTask(stdCtx, taskID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, comments)
}

// @Summary Create comment
// @Tags comments
// @Router /api/v1/comments [post]
func (h *CommentHandler) CreateComment(ctx *fasthttp.RequestCtx) {
	actor, ok := h.actor(ctx)
	if !ok {
		return
	}

	var req transport.CommentRequest
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

	created, err := h.uc.Create(stdCtx, actor, &domain.Comment{
		TaskID:  req.TaskID,
		Content: req.Content,
	})
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created)
}

// @Summary Update comment
// @Tags comments
// @Router /api/v1/comments/{id} [put]
func (h *CommentHandler) UpdateComment(ctx *fasthttp.RequestCtx) {
	actor, ok := h.actor(ctx)
	if !ok {
		return
	}

	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondInvalid(ctx, "missing comment id")
		return
	}

	var req transport.CommentUpdateRequest
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

	updated, err := h.uc.Update(stdCtx, actor, id, req.Content)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// @Summary Delete comment
// @Tags comments
// @Router /api/v1/comments/{id} [delete]
func (h *CommentHandler) DeleteComment(ctx *fasthttp.RequestCtx) {
	actor, ok := h.actor(ctx)
	if !ok {
		return
	}

	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondInvalid(ctx, "missing comment id")
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
