package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/workplan/backend/pkg/dateutil"
	"github.com/workplan/backend/pkg/httpcontext"
	dashboardUC "github.com/workplan/backend/usecase/dashboard"
)

type DashboardHandler struct {
	baseHandler
	uc *dashboardUC.UseCase
}

func NewDashboardHandler(uc *dashboardUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Dashboard report
// @Tags dashboard
// @Router /api/v1/dashboard [get]
func (h *DashboardHandler) GetReport(ctx *fasthttp.RequestCtx) {
	actor, ok := h.actor(ctx)
	if !ok {
		return
	}
	if !actor.IsAdmin {
		ctx.SetStatusCode(fasthttp.StatusForbidden)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	report, err := h.uc.Report(stdCtx, parseInt(string(ctx.QueryArgs().Peek("year")), 0))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, report)
}

// @Summary Period summary
// @Tags dashboard
// @Router /api/v1/dashboard/period [get]
func (h *DashboardHandler) GetPeriodSummary(ctx *fasthttp.RequestCtx) {
	actor, ok := h.actor(ctx)
	if !ok {
		return
	}

	period := dateutil.Period(string(ctx.QueryArgs().Peek("period")))
	switch period {
	case dateutil.PeriodDay, dateutil.PeriodWeek, dateutil.PeriodMonth:
	case "":
		period = dateutil.PeriodWeek
	default:
		h.respondInvalid(ctx, "period must be day, week, or month")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	summary, err := h.uc.PeriodSummary(stdCtx, actor.EmployeeID, actor.IsAdmin, period)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, summary)
}
