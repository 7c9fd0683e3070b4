package handler

import (
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/workplan/backend/pkg/dateutil"
	"github.com/workplan/backend/pkg/httpcontext"
	"github.com/workplan/backend/repository"
	"github.com/workplan/backend/usecase/calendar"
	taskUC "github.com/workplan/backend/usecase/task"
)

type CalendarHandler struct {
	baseHandler
	uc *taskUC.UseCase
}

func NewCalendarHandler(uc *taskUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *CalendarHandler {
	return &CalendarHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

type gridResponse struct {
	Year       int                `json:"year"`
	Month      int                `json:"month"`
	View       string             `json:"view"`
	Cells      []calendar.DaySlot `json:"cells"`
	Categories []string           `json:"categories"`
}

// @Summary Month or week calendar grid
// @Tags calendar
// @Router /api/v1/calendar/grid [get]
func (h *CalendarHandler) GetGrid(ctx *fasthttp.RequestCtx) {
	actor, ok := h.actor(ctx)
	if !ok {
		return
	}

	today := h.uc.Today()
	now, _ := dateutil.Parse(today)

	year := parseInt(string(ctx.QueryArgs().Peek("year")), now.Year())
	month := parseInt(string(ctx.QueryArgs().Peek("month")), int(now.Month()))
	if month < 1 || month > 12 {
		h.respondInvalid(ctx, "month must be 1..12")
		return
	}

	view := string(ctx.QueryArgs().Peek("view"))
	if view == "" {
		view = "month"
	}
	if view != "month" && view != "week" {
		h.respondInvalid(ctx, "view must be month or week")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	tasks, err := h.uc.List(stdCtx, repository.TaskFilter{})
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	visible := calendar.VisibleTasks(tasks, calendar.FilterContext{
		ActorEmployeeID: actor.EmployeeID,
		ActorIsAdmin:    actor.IsAdmin,
		EmployeeID:      string(ctx.QueryArgs().Peek("employee_id")),
		Category:        string(ctx.QueryArgs().Peek("category")),
		Status:          calendar.StatusFilter(string(ctx.QueryArgs().Peek("status"))),
		Today:           today,
	})

	grid := dateutil.PadToWeeks(dateutil.CalendarGrid(year, time.Month(month)))

	maxVisible := calendar.MonthViewSlots
	if view == "week" {
		grid = calendar.WeekSlice(grid, string(ctx.QueryArgs().Peek("pivot")), today)
		maxVisible = calendar.WeekViewSlots
	}

	h.respondSuccess(ctx, http.StatusOK, gridResponse{
		Year:       year,
		Month:      month,
		View:       view,
		Cells:      calendar.BuildGrid(visible, grid, maxVisible),
		Categories: calendar.Categories(visible),
	})
}
