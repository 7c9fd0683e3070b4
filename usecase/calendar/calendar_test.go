package calendar

import (
	"testing"
	"time"

	"github.com/workplan/backend/domain"
	"github.com/workplan/backend/pkg/dateutil"
)

const today = "2024-06-10"

func snapshot() []domain.Task {
	return []domain.Task{
		{ID: "mine-open", EmployeeID: "E001", Category: "Dev", Status: domain.TaskPending, StartDate: "2024-06-09", EndDate: "2024-06-12"},
		{ID: "mine-overdue", EmployeeID: "E001", Category: "Ops", Status: domain.TaskPending, StartDate: "2024-06-01", EndDate: "2024-06-05"},
		{ID: "mine-done", EmployeeID: "E001", Category: "Dev", Status: domain.TaskCompleted, StartDate: "2024-06-01", EndDate: "2024-06-03"},
		{ID: "theirs", EmployeeID: "E002", Category: "Dev", Status: domain.TaskPending, StartDate: "2024-06-09", EndDate: "2024-06-12"},
	}
}

func ids(tasks []domain.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func TestNonAdminHardScopedToOwnTasks(t *testing.T) {
	f := FilterContext{
		ActorEmployeeID: "E001",
		ActorIsAdmin:    false,
		// A non-admin trying to peek at someone else's tasks is ignored.
		EmployeeID: "E002",
		Status:     StatusAll,
		Today:      today,
	}
	got := VisibleTasks(snapshot(), f)
	for _, task := range got {
		if task.EmployeeID != "E001" {
			t.Errorf("leaked task %s owned by %s", task.ID, task.EmployeeID)
		}
	}
	if len(got) != 3 {
		t.Errorf("visible = %v", ids(got))
	}
}

func TestAdminEmployeeFilter(t *testing.T) {
	f := FilterContext{ActorEmployeeID: "E999", ActorIsAdmin: true, EmployeeID: "E002", Status: StatusAll, Today: today}
	got := VisibleTasks(snapshot(), f)
	if len(got) != 1 || got[0].ID != "theirs" {
		t.Errorf("visible = %v", ids(got))
	}

	f.EmployeeID = FilterAll
	if got := VisibleTasks(snapshot(), f); len(got) != 4 {
		t.Errorf("admin 'all' should see everything, got %v", ids(got))
	}
}

func TestStatusFilterStoredPendingGap(t *testing.T) {
	base := FilterContext{ActorEmployeeID: "E001", ActorIsAdmin: true, EmployeeID: FilterAll, Today: today}

	base.Status = StatusPending
	pending := VisibleTasks(snapshot(), base)
	// Stored-pending matches both the open and the overdue task; the gap is
	// that overdue tasks are NOT excluded here.
	if len(pending) != 3 {
		t.Errorf("stored-pending = %v", ids(pending))
	}

	base.Status = StatusOverdue
	overdue := VisibleTasks(snapshot(), base)
	if len(overdue) != 1 || overdue[0].ID != "mine-overdue" {
		t.Errorf("overdue = %v", ids(overdue))
	}

	base.Status = StatusCompleted
	done := VisibleTasks(snapshot(), base)
	if len(done) != 1 || done[0].ID != "mine-done" {
		t.Errorf("completed = %v", ids(done))
	}
}

func TestCategoryFilter(t *testing.T) {
	f := FilterContext{ActorEmployeeID: "E001", ActorIsAdmin: true, EmployeeID: FilterAll, Category: "Ops", Status: StatusAll, Today: today}
	got := VisibleTasks(snapshot(), f)
	if len(got) != 1 || got[0].ID != "mine-overdue" {
		t.Errorf("category filter = %v", ids(got))
	}
}

func TestTasksOnDate(t *testing.T) {
	got := TasksOnDate(snapshot(), "2024-06-10")
	if len(got) != 2 {
		t.Errorf("on 06-10 = %v", ids(got))
	}
	if got := TasksOnDate(snapshot(), "2024-06-05"); len(got) != 1 || got[0].ID != "mine-overdue" {
		t.Errorf("on 06-05 = %v", ids(got))
	}
}

func TestSlotTruncation(t *testing.T) {
	tasks := []domain.Task{
		{ID: "a", StartDate: "2024-06-10", EndDate: "2024-06-10"},
		{ID: "b", StartDate: "2024-06-10", EndDate: "2024-06-10"},
		{ID: "c", StartDate: "2024-06-10", EndDate: "2024-06-10"},
	}
	slot := SlotForDate(tasks, "2024-06-10", MonthViewSlots)
	if len(slot.Visible) != 2 || slot.Overflow != 1 {
		t.Errorf("month slot = %d visible, %d overflow", len(slot.Visible), slot.Overflow)
	}

	slot = SlotForDate(tasks, "2024-06-10", WeekViewSlots)
	if len(slot.Visible) != 3 || slot.Overflow != 0 {
		t.Errorf("week slot = %d visible, %d overflow", len(slot.Visible), slot.Overflow)
	}
}

func TestWeekSlicePivot(t *testing.T) {
	grid := dateutil.CalendarGrid(2024, time.June) // June 1 is a Saturday: 6 pads.

	week := WeekSlice(grid, "2024-06-10", today)
	if len(week) != 7 {
		t.Fatalf("week length = %d", len(week))
	}
	// 2024-06-10 sits at index 6+9=15, row 2, cells 14..20 → June 9-15.
	if week[0] == nil || dateutil.Format(*week[0]) != "2024-06-09" {
		t.Errorf("week starts at %v", week[0])
	}
	if dateutil.Format(*week[6]) != "2024-06-15" {
		t.Errorf("week ends at %v", week[6])
	}
}

func TestWeekSliceFallbacks(t *testing.T) {
	grid := dateutil.CalendarGrid(2024, time.June)

	// Pivot not in grid: fall back to today.
	week := WeekSlice(grid, "2024-07-01", today)
	if week[0] == nil || dateutil.Format(*week[0]) != "2024-06-09" {
		t.Errorf("today fallback week starts at %v", week[0])
	}

	// Neither pivot nor today present: first non-nil day's row.
	week = WeekSlice(grid, "2023-01-01", "2023-01-02")
	if len(week) != 7 {
		t.Fatalf("fallback week length = %d", len(week))
	}
	if week[6] == nil || dateutil.Format(*week[6]) != "2024-06-01" {
		t.Errorf("first-day fallback row should end on June 1, got %v", week[6])
	}
}

func TestWeekSliceClampsShortLastRow(t *testing.T) {
	// Raw June 2024 grid has 6+30 = 36 cells; the last row holds one cell.
	grid := dateutil.CalendarGrid(2024, time.June)
	week := WeekSlice(grid, "2024-06-30", today)
	if len(week) != 1 {
		t.Errorf("clamped row length = %d, want 1", len(week))
	}
}

func TestCategories(t *testing.T) {
	got := Categories(snapshot())
	if len(got) != 2 || got[0] != "Dev" || got[1] != "Ops" {
		t.Errorf("categories = %v", got)
	}
}
