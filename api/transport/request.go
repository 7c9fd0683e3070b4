package transport

import "github.com/go-playground/validator/v10"

var validate = validator.New()

// Validate runs struct-tag validation on a request payload.
func Validate(req interface{}) error {
	return validate.Struct(req)
}

type TaskRequest struct {
	ID          string `json:"id"`
	EmployeeID  string `json:"employee_id" validate:"required"`
	Category    string `json:"category"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	StartDate   string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate     string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Status      string `json:"status" validate:"omitempty,oneof=pending completed"`
}

type RescheduleRequest struct {
	DropDate string `json:"drop_date" validate:"required,datetime=2006-01-02"`
}

type BatchDeleteRequest struct {
	IDs []string `json:"ids" validate:"required,min=1,dive,required"`
}

type CommentRequest struct {
	TaskID  string `json:"task_id" validate:"required"`
	Content string `json:"content" validate:"required"`
}

type CommentUpdateRequest struct {
	Content string `json:"content" validate:"required"`
}

type UserRequest struct {
	EmployeeID string `json:"employee_id" validate:"required"`
	Name       string `json:"name" validate:"required"`
	Role       string `json:"role" validate:"omitempty,oneof=admin user"`
	Status     string `json:"status" validate:"omitempty,oneof=active pending rejected"`
	Color      string `json:"color" validate:"omitempty,hexcolor"`
}
