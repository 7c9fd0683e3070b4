package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/workplan/backend/api/transport"
	"github.com/workplan/backend/domain"
	"github.com/workplan/backend/pkg/httpcontext"
	"github.com/workplan/backend/repository"
	"github.com/workplan/backend/usecase"
)

type UserHandler struct {
	baseHandler
	users  repository.UserRepository
	buffer usecase.OperationBuffer
}

func NewUserHandler(users repository.UserRepository, buffer usecase.OperationBuffer, adapter *httpcontext.Adapter, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		baseHandler: newBaseHandler(adapter, logger),
		users:       users,
		buffer:      buffer,
	}
}

// @Summary List users
// @Tags users
// @Router /api/v1/users [get]
func (h *UserHandler) GetUsers(ctx *fasthttp.RequestCtx) {
	if _, ok := h.actor(ctx); !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	users, err := h.users.List(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	// Colors are a derived display property; every user leaves with one,
	// configured or hash-derived.
	for i := range users {
		users[i].Color = domain.UserColor(users, users[i].EmployeeID)
	}
	h.respondSuccess(ctx, http.StatusOK, users)
}

// @Summary Create or update a user
// @Tags users
// @Router /api/v1/users [put]
func (h *UserHandler) UpsertUser(ctx *fasthttp.RequestCtx) {
	actor, ok := h.actor(ctx)
	if !ok {
		return
	}
	if !actor.IsAdmin {
		ctx.SetStatusCode(fasthttp.StatusForbidden)
		return
	}

	var req transport.UserRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}
	if err := transport.Validate(req); err != nil {
		h.respondInvalid(ctx, err.Error())
		return
	}

	user := &domain.User{
		EmployeeID: req.EmployeeID,
		Name:       req.Name,
		Role:       domain.Role(req.Role),
		Status:     domain.UserStatus(req.Status),
		Color:      req.Color,
	}
	if user.Role == "" {
		user.Role = domain.RoleUser
	}
	if user.Status == "" {
		user.Status = domain.UserPending
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.users.Upsert(stdCtx, user); err != nil {
		if h.buffer != nil {
			if bufErr := h.buffer.BufferUser(stdCtx, usecase.OperationUpdate, user); bufErr == nil {
				h.logger.Warn("user upsert buffered", zap.String("employee_id", user.EmployeeID))
				h.respondSuccess(ctx, http.StatusOK, user)
				return
			}
		}
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, user)
}
