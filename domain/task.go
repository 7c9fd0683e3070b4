package domain

import (
	"time"

	"github.com/workplan/backend/pkg/dateutil"
)

// TaskStatus is the stored completion state. The effective pending/overdue/
// completed classification is derived, never stored.
type TaskStatus string

const (
	TaskPending   TaskStatus = "pending"
	TaskCompleted TaskStatus = "completed"
)

// EffectiveStatus classifies a task relative to a reference day.
type EffectiveStatus string

const (
	EffectivePending   EffectiveStatus = "pending"
	EffectiveOverdue   EffectiveStatus = "overdue"
	EffectiveCompleted EffectiveStatus = "completed"
)

// Task is a calendar-anchored work item owned by one employee.
// StartDate and EndDate are inclusive whole-day "YYYY-MM-DD" strings with
// StartDate <= EndDate assumed (an inverted range degrades to a task that
// overlaps nothing, it is not rejected here).
type Task struct {
	ID          string     `json:"id"`
	EmployeeID  string     `json:"employee_id"`
	Category    string     `json:"category"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	StartDate   string     `json:"start_date"`
	EndDate     string     `json:"end_date"`
	Status      TaskStatus `json:"status"`

	// ModificationCount grows only when a date field changes; it feeds the
	// frequent-edit anomaly flag.
	ModificationCount int `json:"modification_count"`

	// CompletedAt is stamped on the pending->completed transition and
	// cleared when the task reverts to pending.
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	// CreatedBy records the author for delete-permission checks. Legacy
	// rows without it are deletable by anyone.
	CreatedBy string `json:"created_by,omitempty"`

	LastRemindedAt *time.Time `json:"last_reminded_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (t *Task) IsCompleted() bool {
	return t != nil && t.Status == TaskCompleted
}

// IsOverdue reports whether the task is open and past its end date on the
// given day.
func (t *Task) IsOverdue(today string) bool {
	return t != nil && t.Status != TaskCompleted && t.EndDate < today
}

// Effective derives the pending/overdue/completed classification for today.
func (t *Task) Effective(today string) EffectiveStatus {
	switch {
	case t.IsCompleted():
		return EffectiveCompleted
	case t.IsOverdue(today):
		return EffectiveOverdue
	default:
		return EffectivePending
	}
}

// OverdueDays returns today minus the end date in whole days. Only
// meaningful (>= 0) when the task is overdue.
func (t *Task) OverdueDays(today string) int {
	end, err := dateutil.Parse(t.EndDate)
	if err != nil {
		return 0
	}
	now, err := dateutil.Parse(today)
	if err != nil {
		return 0
	}
	return dateutil.DaysBetween(end, now)
}

// LateDays returns the completion date minus the end date in whole days;
// <= 0 means on time. A completed task without a completion timestamp is
// treated as on time (legacy rows predate the timestamp).
func (t *Task) LateDays() int {
	if t.CompletedAt == nil {
		return 0
	}
	end, err := dateutil.Parse(t.EndDate)
	if err != nil {
		return 0
	}
	return dateutil.DaysBetween(end, dateutil.Midnight(*t.CompletedAt))
}

// CompletedOnTime reports whether a completed task counts toward the on-time
// numerator.
func (t *Task) CompletedOnTime() bool {
	if !t.IsCompleted() {
		return false
	}
	return t.LateDays() <= 0
}

// OccupiesDate reports whether the task's inclusive range covers the day.
func (t *Task) OccupiesDate(date string) bool {
	return dateutil.Contains(t.StartDate, t.EndDate, date)
}

// OverlapsRange reports whether the task is visible anywhere in [start, end].
func (t *Task) OverlapsRange(start, end string) bool {
	return dateutil.RangesOverlap(t.StartDate, t.EndDate, start, end)
}

// DurationDays is the day offset between start and end that a reschedule
// must preserve.
func (t *Task) DurationDays() int {
	start, err := dateutil.Parse(t.StartDate)
	if err != nil {
		return 0
	}
	end, err := dateutil.Parse(t.EndDate)
	if err != nil {
		return 0
	}
	return dateutil.DaysBetween(start, end)
}
