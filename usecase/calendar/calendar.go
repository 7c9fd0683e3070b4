// Package calendar answers day-level and range-level task membership queries
// for grid rendering. All queries are pure functions over one snapshot plus
// an explicit filter context; nothing here touches a clock or a store.
package calendar

import (
	"time"

	"github.com/workplan/backend/domain"
	"github.com/workplan/backend/pkg/dateutil"
)

// StatusFilter selects by stored or derived state.
type StatusFilter string

const (
	StatusAll       StatusFilter = "all"
	StatusPending   StatusFilter = "pending"
	StatusCompleted StatusFilter = "completed"
	StatusOverdue   StatusFilter = "overdue"
)

// FilterAll is the wildcard value for the employee and category filters.
const FilterAll = "all"

// Default per-cell display slots for the two grid densities.
const (
	MonthViewSlots = 2
	WeekViewSlots  = 6
)

// FilterContext carries the actor and the current filter selections as an
// explicit value instead of ambient shared state. Non-admin actors are hard
// scoped to their own tasks no matter what EmployeeID says.
type FilterContext struct {
	ActorEmployeeID string
	ActorIsAdmin    bool
	EmployeeID      string
	Category        string
	Status          StatusFilter
	Today           string
}

// Matches applies ownership, category, and status in that order.
//
// Note the deliberate stored-pending semantics: "pending" matches the stored
// status only, so an overdue-but-stored-pending task appears under neither
// "pending" nor "completed", only under "overdue" or "all". Callers wanting
// strictly not-yet-due tasks must exclude overdue themselves.
func (f FilterContext) Matches(t *domain.Task) bool {
	if t == nil {
		return false
	}

	if f.ActorIsAdmin {
		if f.EmployeeID != "" && f.EmployeeID != FilterAll && t.EmployeeID != f.EmployeeID {
			return false
		}
	} else if t.EmployeeID != f.ActorEmployeeID {
		return false
	}

	if f.Category != "" && f.Category != FilterAll && t.Category != f.Category {
		return false
	}

	switch f.Status {
	case StatusCompleted:
		return t.Status == domain.TaskCompleted
	case StatusPending:
		return t.Status == domain.TaskPending
	case StatusOverdue:
		return t.IsOverdue(f.Today)
	default:
		return true
	}
}

// VisibleTasks filters a snapshot through the context.
func VisibleTasks(tasks []domain.Task, f FilterContext) []domain.Task {
	out := make([]domain.Task, 0, len(tasks))
	for i := range tasks {
		if f.Matches(&tasks[i]) {
			out = append(out, tasks[i])
		}
	}
	return out
}

// TasksOnDate returns the tasks whose inclusive range covers the day.
func TasksOnDate(tasks []domain.Task, date string) []domain.Task {
	var out []domain.Task
	for _, t := range tasks {
		if t.OccupiesDate(date) {
			out = append(out, t)
		}
	}
	return out
}

// TasksInRange returns the tasks overlapping [start, end].
func TasksInRange(tasks []domain.Task, start, end string) []domain.Task {
	var out []domain.Task
	for _, t := range tasks {
		if t.OverlapsRange(start, end) {
			out = append(out, t)
		}
	}
	return out
}

// DaySlot is one calendar cell's renderable payload: up to maxVisible tasks
// plus an overflow count for the "+N" indicator.
type DaySlot struct {
	Date     string        `json:"date,omitempty"`
	Visible  []domain.Task `json:"visible"`
	Overflow int           `json:"overflow"`
}

// SlotForDate truncates a cell's task list to the view's display budget.
// maxVisible is a presentation policy owned by the caller (2 for month
// cells, 6 for week cells), not a constant of the engine.
func SlotForDate(tasks []domain.Task, date string, maxVisible int) DaySlot {
	onDate := TasksOnDate(tasks, date)
	slot := DaySlot{Date: date, Visible: onDate}
	if maxVisible >= 0 && len(onDate) > maxVisible {
		slot.Visible = onDate[:maxVisible]
		slot.Overflow = len(onDate) - maxVisible
	}
	return slot
}

// BuildGrid maps a month grid to per-cell slots. Nil grid cells stay nil
// padding in the result (an empty Date).
func BuildGrid(tasks []domain.Task, grid []*time.Time, maxVisible int) []DaySlot {
	out := make([]DaySlot, len(grid))
	for i, day := range grid {
		if day == nil {
			continue
		}
		out[i] = SlotForDate(tasks, dateutil.Format(*day), maxVisible)
	}
	return out
}

// WeekSlice extracts the 7-cell row of a month grid containing the pivot
// date. Fallback order when the pivot is absent: today, then the first
// non-nil cell, then index zero. The slice is clamped to the grid's end for
// months whose raw grid is not a multiple of seven.
func WeekSlice(grid []*time.Time, pivot, today string) []*time.Time {
	idx := indexOfDate(grid, pivot)
	if idx < 0 {
		idx = indexOfDate(grid, today)
	}
	if idx < 0 {
		for i, d := range grid {
			if d != nil {
				idx = i
				break
			}
		}
	}
	if idx < 0 {
		idx = 0
	}

	start := (idx / 7) * 7
	end := start + 7
	if end > len(grid) {
		end = len(grid)
	}
	if start > len(grid) {
		return nil
	}
	return grid[start:end]
}

func indexOfDate(grid []*time.Time, date string) int {
	if date == "" {
		return -1
	}
	for i, d := range grid {
		if d != nil && dateutil.Format(*d) == date {
			return i
		}
	}
	return -1
}

// Categories returns the distinct non-empty categories in discovery order,
// for populating filter choices.
func Categories(tasks []domain.Task) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, t := range tasks {
		if t.Category == "" {
			continue
		}
		if _, ok := seen[t.Category]; ok {
			continue
		}
		seen[t.Category] = struct{}{}
		out = append(out, t.Category)
	}
	return out
}
