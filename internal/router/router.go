package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/workplan/backend/api/handler"
)

type Handlers struct {
	Task      *apiHandler.TaskHandler
	Comment   *apiHandler.CommentHandler
	Calendar  *apiHandler.CalendarHandler
	Dashboard *apiHandler.DashboardHandler
	User      *apiHandler.UserHandler
	Health    *apiHandler.HealthHandler
}

func New(handlers Handlers, authMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Tasks
	r.GET("/api/v1/tasks", authMiddleware(handlers.Task.GetTasks))
	r.POST("/api/v1/tasks", authMiddleware(handlers.Task.CreateTask))
	r.PUT("/api/v1/tasks/{id}", authMiddleware(handlers.Task.UpdateTask))
	r.DELETE("/api/v1/tasks/{id}", authMiddleware(handlers.Task.DeleteTask))
	r.POST("/api/v1/tasks/batch-delete", authMiddleware(handlers.Task.BatchDeleteTasks))
	r.POST("/api/v1/tasks/{id}/toggle", authMiddleware(handlers.Task.ToggleTask))
	r.POST("/api/v1/tasks/{id}/reschedule", authMiddleware(handlers.Task.RescheduleTask))

	// Comments
	r.GET("/api/v1/tasks/{id}/comments", authMiddleware(handlers.Comment.GetComments))
	r.POST("/api/v1/comments", authMiddleware(handlers.Comment.CreateComment))
	r.PUT("/api/v1/comments/{id}", authMiddleware(handlers.Comment.UpdateComment))
	r.DELETE("/api/v1/comments/{id}", authMiddleware(handlers.Comment.DeleteComment))

	// Calendar
	r.GET("/api/v1/calendar/grid", authMiddleware(handlers.Calendar.GetGrid))

	// Dashboard
	r.GET("/api/v1/dashboard", authMiddleware(handlers.Dashboard.GetReport))
	r.GET("/api/v1/dashboard/period", authMiddleware(handlers.Dashboard.GetPeriodSummary))

	// Users
	r.GET("/api/v1/users", authMiddleware(handlers.User.GetUsers))
	r.PUT("/api/v1/users", authMiddleware(handlers.User.UpsertUser))

	return r
}
