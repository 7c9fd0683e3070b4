package anomaly

import (
	"testing"
	"time"

	"github.com/workplan/backend/domain"
)

const today = "2024-06-10"

func ts(s string) *time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return &t
}

func TestInspectFrequentEdits(t *testing.T) {
	atLimit := domain.Task{ModificationCount: MaxDateEdits, EndDate: "2024-07-01"}
	if Inspect(&atLimit, today).FrequentEdits {
		t.Error("exactly 3 edits is not yet frequent")
	}
	over := domain.Task{ModificationCount: MaxDateEdits + 1, EndDate: "2024-07-01"}
	if !Inspect(&over, today).FrequentEdits {
		t.Error("4 edits should flag")
	}
}

func TestInspectSeverelyOverdue(t *testing.T) {
	threeDays := domain.Task{Status: domain.TaskPending, EndDate: "2024-06-07"}
	if Inspect(&threeDays, today).SeverelyOverdue {
		t.Error("3 days overdue is at the threshold, not over it")
	}
	fourDays := domain.Task{Status: domain.TaskPending, EndDate: "2024-06-06"}
	if !Inspect(&fourDays, today).SeverelyOverdue {
		t.Error("4 days overdue should flag")
	}
	completed := domain.Task{Status: domain.TaskCompleted, EndDate: "2024-06-01"}
	if Inspect(&completed, today).SeverelyOverdue {
		t.Error("completed tasks are never severely overdue")
	}
}

func TestInspectLateCompletion(t *testing.T) {
	justLate := domain.Task{Status: domain.TaskCompleted, EndDate: "2024-06-01", CompletedAt: ts("2024-06-04T10:00:00Z")}
	if Inspect(&justLate, today).LateCompletion {
		t.Error("3 days late is tolerated")
	}
	tooLate := domain.Task{Status: domain.TaskCompleted, EndDate: "2024-06-01", CompletedAt: ts("2024-06-05T10:00:00Z")}
	if !Inspect(&tooLate, today).LateCompletion {
		t.Error("4 days late should flag")
	}
	// No timestamp: benefit of the doubt.
	legacy := domain.Task{Status: domain.TaskCompleted, EndDate: "2024-01-01"}
	if Inspect(&legacy, today).LateCompletion {
		t.Error("missing completedAt must not flag")
	}
}

func TestAbnormalCountsOncePerTask(t *testing.T) {
	// One task tripping all three rules still counts once.
	tasks := []domain.Task{
		{
			EmployeeID:        "E001",
			Status:            domain.TaskPending,
			EndDate:           "2024-06-01",
			ModificationCount: 10,
		},
		{EmployeeID: "E001", Status: domain.TaskPending, EndDate: "2024-07-01"},
		{EmployeeID: "E002", Status: domain.TaskCompleted, EndDate: "2024-06-01", CompletedAt: ts("2024-06-09T00:00:00Z")},
	}
	counts := AbnormalCounts(tasks, today)
	if counts["E001"] != 1 {
		t.Errorf("E001 abnormal = %d, want 1", counts["E001"])
	}
	if counts["E002"] != 1 {
		t.Errorf("E002 abnormal = %d, want 1", counts["E002"])
	}
}

func TestStagnantTasksExample(t *testing.T) {
	tasks := []domain.Task{
		// Overdue and started >= 7 days ago: stagnant.
		{ID: "stuck", Status: domain.TaskPending, StartDate: "2024-06-01", EndDate: "2024-06-02"},
		// Overdue but started recently: not stagnant.
		{ID: "fresh", Status: domain.TaskPending, StartDate: "2024-06-08", EndDate: "2024-06-09"},
		// Started long ago but not overdue: not stagnant.
		{ID: "open", Status: domain.TaskPending, StartDate: "2024-05-01", EndDate: "2024-06-30"},
		// Completed: never stagnant.
		{ID: "done", Status: domain.TaskCompleted, StartDate: "2024-05-01", EndDate: "2024-05-02"},
	}
	got := StagnantTasks(tasks, today)
	if len(got) != 1 || got[0].ID != "stuck" {
		t.Fatalf("stagnant = %+v, want only 'stuck'", got)
	}
}

func TestStagnantCutoffBoundary(t *testing.T) {
	// Cutoff for 2024-06-10 is 2024-06-03, inclusive.
	atCutoff := []domain.Task{{Status: domain.TaskPending, StartDate: "2024-06-03", EndDate: "2024-06-04"}}
	if len(StagnantTasks(atCutoff, today)) != 1 {
		t.Error("start exactly 7 days ago should be stagnant")
	}
	afterCutoff := []domain.Task{{Status: domain.TaskPending, StartDate: "2024-06-04", EndDate: "2024-06-05"}}
	if len(StagnantTasks(afterCutoff, today)) != 0 {
		t.Error("start 6 days ago should not be stagnant")
	}
}

func TestOverloadedUsers(t *testing.T) {
	users := []domain.User{
		{EmployeeID: "E001", Name: "Alice"},
		{EmployeeID: "E002", Name: "Bob"},
	}
	var tasks []domain.Task
	for i := 0; i < OverloadedOverdueTasks+1; i++ {
		tasks = append(tasks, domain.Task{EmployeeID: "E001", Status: domain.TaskPending, EndDate: "2024-06-01"})
	}
	for i := 0; i < OverloadedOverdueTasks; i++ {
		tasks = append(tasks, domain.Task{EmployeeID: "E002", Status: domain.TaskPending, EndDate: "2024-06-01"})
	}

	out := OverloadedUsers(tasks, users, today)
	if len(out) != 1 || out[0].EmployeeID != "E001" {
		t.Fatalf("overloaded = %+v, want only E001 (strictly more than %d)", out, OverloadedOverdueTasks)
	}
	if out[0].Count != OverloadedOverdueTasks+1 {
		t.Errorf("count = %d", out[0].Count)
	}
}

func TestBuildReport(t *testing.T) {
	users := []domain.User{{EmployeeID: "E001", Name: "Alice"}}
	tasks := []domain.Task{
		{ID: "stuck", EmployeeID: "E001", Status: domain.TaskPending, StartDate: "2024-05-01", EndDate: "2024-05-02"},
	}
	rep := BuildReport(tasks, users, today)
	if rep.StagnantCount != 1 || len(rep.StagnantTasks) != 1 {
		t.Fatalf("report = %+v", rep)
	}
	if rep.StagnantTasks[0].OwnerName != "Alice" {
		t.Errorf("owner name = %q, want Alice", rep.StagnantTasks[0].OwnerName)
	}
	if rep.StagnantTasks[0].OwnerColor == "" {
		t.Error("owner color must always resolve")
	}
	if len(rep.OverloadedUsers) != 0 {
		t.Errorf("one overdue task is not overload: %+v", rep.OverloadedUsers)
	}
}

func TestBuildReportOrphanedOwner(t *testing.T) {
	// Owner missing from the roster: the raw id stands in for the name
	// and the color is derived from it.
	tasks := []domain.Task{
		{ID: "stuck", EmployeeID: "E404", Status: domain.TaskPending, StartDate: "2024-05-01", EndDate: "2024-05-02"},
	}
	rep := BuildReport(tasks, nil, today)
	if len(rep.StagnantTasks) != 1 {
		t.Fatalf("report = %+v", rep)
	}
	got := rep.StagnantTasks[0]
	if got.OwnerName != "E404" {
		t.Errorf("owner name = %q, want the raw id", got.OwnerName)
	}
	if got.OwnerColor != domain.FallbackColor("E404") {
		t.Errorf("owner color = %q, want the id-derived fallback", got.OwnerColor)
	}
}
