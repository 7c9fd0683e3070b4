package stats

import (
	"testing"
	"time"

	"github.com/workplan/backend/domain"
	"github.com/workplan/backend/pkg/dateutil"
)

const today = "2024-06-10"

func ts(s string) *time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return &t
}

func task(owner, start, end string, status domain.TaskStatus) domain.Task {
	return domain.Task{EmployeeID: owner, StartDate: start, EndDate: end, Status: status, Category: "General"}
}

func TestYearScope(t *testing.T) {
	users := []domain.User{
		{EmployeeID: "E001", Name: "Alice", Status: domain.UserActive},
		{EmployeeID: "E002", Name: "Eve", Status: domain.UserRejected},
		{EmployeeID: "E003", Name: domain.SystemAccountName, Status: domain.UserActive},
	}
	tasks := []domain.Task{
		task("E001", "2024-03-01", "2024-03-05", domain.TaskPending),
		task("E001", "2023-12-01", "2023-12-31", domain.TaskPending), // prior year
		task("E001", "2023-12-20", "2024-01-02", domain.TaskPending), // straddles new year
		task("E002", "2024-03-01", "2024-03-05", domain.TaskPending), // rejected owner
		task("E003", "2024-03-01", "2024-03-05", domain.TaskPending), // system account
	}

	scopedTasks, scopedUsers := YearScope(tasks, users, 2024)
	if len(scopedUsers) != 1 || scopedUsers[0].EmployeeID != "E001" {
		t.Fatalf("scoped users = %+v", scopedUsers)
	}
	if len(scopedTasks) != 2 {
		t.Fatalf("scoped tasks = %d, want 2 (in-year + straddling)", len(scopedTasks))
	}
}

func TestOnTimeRateExample(t *testing.T) {
	// Four tasks due by today; three completed on time, one still pending.
	users := []domain.User{{EmployeeID: "E001", Name: "Alice"}}
	tasks := []domain.Task{
		{EmployeeID: "E001", EndDate: "2024-06-01", Status: domain.TaskCompleted, CompletedAt: ts("2024-06-01T10:00:00Z")},
		{EmployeeID: "E001", EndDate: "2024-06-03", Status: domain.TaskCompleted, CompletedAt: ts("2024-06-02T10:00:00Z")},
		{EmployeeID: "E001", EndDate: "2024-06-05", Status: domain.TaskCompleted, CompletedAt: ts("2024-06-05T23:00:00Z")},
		{EmployeeID: "E001", EndDate: "2024-06-08", Status: domain.TaskPending},
	}

	stats := ComputeUserStats(tasks, users, today)
	if len(stats) != 1 {
		t.Fatalf("got %d stats", len(stats))
	}
	s := stats[0]
	if s.TargetLoad != 4 {
		t.Errorf("TargetLoad = %d, want 4", s.TargetLoad)
	}
	if s.CompletedOnTime != 3 {
		t.Errorf("CompletedOnTime = %d, want 3", s.CompletedOnTime)
	}
	if s.OnTimeRate != 75 {
		t.Errorf("OnTimeRate = %d, want 75", s.OnTimeRate)
	}
	if s.Overdue != 1 {
		t.Errorf("Overdue = %d, want 1 (pending past due)", s.Overdue)
	}
}

func TestRatesDefinedAtZeroDenominator(t *testing.T) {
	users := []domain.User{{EmployeeID: "E001", Name: "Alice"}}
	stats := ComputeUserStats(nil, users, today)
	s := stats[0]
	if s.Rate != 0 || s.OnTimeRate != 0 {
		t.Errorf("zero-task rates = %d/%d, want 0/0", s.Rate, s.OnTimeRate)
	}
}

func TestRateBounds(t *testing.T) {
	users := []domain.User{{EmployeeID: "E001"}}
	tasks := []domain.Task{
		{EmployeeID: "E001", EndDate: "2024-06-01", Status: domain.TaskCompleted, CompletedAt: ts("2024-06-09T00:00:00Z")},
		{EmployeeID: "E001", EndDate: "2024-06-02", Status: domain.TaskPending},
		{EmployeeID: "E001", EndDate: "2024-07-01", Status: domain.TaskCompleted},
	}
	s := ComputeUserStats(tasks, users, today)[0]
	for name, v := range map[string]int{"rate": s.Rate, "onTimeRate": s.OnTimeRate} {
		if v < 0 || v > 100 {
			t.Errorf("%s = %d out of [0,100]", name, v)
		}
	}
}

func TestHonorRollTieBreak(t *testing.T) {
	stats := []UserStat{
		{EmployeeID: "A", OnTimeRate: 100, TargetLoad: 3},
		{EmployeeID: "B", OnTimeRate: 100, TargetLoad: 7},
		{EmployeeID: "C", OnTimeRate: 90, TargetLoad: 20},
	}
	winner := HonorRoll(stats)
	if winner == nil || winner.EmployeeID != "B" {
		t.Fatalf("winner = %+v, want B (larger target load wins the tie)", winner)
	}
}

func TestHonorRollEmptyWhenNoTargetLoad(t *testing.T) {
	stats := []UserStat{
		{EmployeeID: "A", OnTimeRate: 0, TargetLoad: 0},
		{EmployeeID: "B", OnTimeRate: 0, TargetLoad: 0},
	}
	if winner := HonorRoll(stats); winner != nil {
		t.Errorf("winner = %+v, want nil", winner)
	}
	if winner := HonorRoll(nil); winner != nil {
		t.Errorf("winner over empty stats = %+v", winner)
	}
}

func TestComputeOrgStat(t *testing.T) {
	tasks := []domain.Task{
		task("E001", "2024-06-01", "2024-06-05", domain.TaskPending),   // overdue
		task("E001", "2024-06-01", "2024-06-20", domain.TaskPending),   // open
		task("E002", "2024-06-01", "2024-06-05", domain.TaskCompleted), // done
	}
	org := ComputeOrgStat(tasks, today)
	if org.Total != 3 || org.Completed != 1 || org.Pending != 2 || org.Overdue != 1 {
		t.Errorf("org = %+v", org)
	}
}

func TestCategoryDistribution(t *testing.T) {
	tasks := []domain.Task{
		{Category: "Ops"}, {Category: "Dev"}, {Category: "Dev"},
		{Category: "Ops"}, {Category: "Dev"}, {Category: "QA"},
	}
	dist := CategoryDistribution(tasks)
	if len(dist) != 3 {
		t.Fatalf("got %d categories", len(dist))
	}
	if dist[0].Name != "Dev" || dist[0].Count != 3 {
		t.Errorf("top category = %+v", dist[0])
	}
	if dist[2].Name != "QA" {
		t.Errorf("last category = %+v", dist[2])
	}
}

func TestOverdueLeaderboard(t *testing.T) {
	users := []domain.User{
		{EmployeeID: "E001", Name: "Alice"},
		{EmployeeID: "E002", Name: "Bob"},
		{EmployeeID: "E003", Name: "Cara"},
	}
	tasks := []domain.Task{
		task("E001", "2024-05-01", "2024-06-01", domain.TaskPending),
		task("E001", "2024-05-01", "2024-06-02", domain.TaskPending),
		task("E002", "2024-05-01", "2024-06-03", domain.TaskPending),
		task("E002", "2024-05-01", "2024-06-04", domain.TaskCompleted),
		task("E003", "2024-05-01", "2024-06-20", domain.TaskPending), // not overdue
	}
	board := OverdueLeaderboard(tasks, users, today)
	if len(board) != 2 {
		t.Fatalf("board = %+v, want 2 entries", board)
	}
	if board[0].EmployeeID != "E001" || board[0].Count != 2 {
		t.Errorf("board[0] = %+v", board[0])
	}
	if board[1].Rate != 50 {
		t.Errorf("Bob rate = %d, want 50", board[1].Rate)
	}
}

func TestComputePeriodSummary(t *testing.T) {
	now := time.Date(2024, time.June, 10, 12, 0, 0, 0, time.UTC)
	start, end := dateutil.PeriodRange(dateutil.PeriodWeek, now)

	tasks := []domain.Task{
		task("E001", "2024-06-09", "2024-06-11", domain.TaskPending),
		task("E001", "2024-06-01", "2024-06-05", domain.TaskPending), // outside week
		task("E001", "2024-06-08", "2024-06-09", domain.TaskCompleted),
	}
	sum := ComputePeriodSummary(tasks, dateutil.PeriodWeek, today, start, end)
	if sum.Total != 2 {
		t.Fatalf("total = %d, want 2", sum.Total)
	}
	if sum.Completed != 1 || sum.Ongoing != 1 || sum.Overdue != 0 {
		t.Errorf("summary = %+v", sum)
	}
	if sum.CompletionRate != 50 {
		t.Errorf("completion rate = %d, want 50", sum.CompletionRate)
	}
}

func TestSortUserTasks(t *testing.T) {
	tasks := []domain.Task{
		{ID: "done", StartDate: "2024-06-01", EndDate: "2024-06-02", Status: domain.TaskCompleted},
		{ID: "pending", StartDate: "2024-06-05", EndDate: "2024-06-20", Status: domain.TaskPending},
		{ID: "overdue-b", StartDate: "2024-06-02", EndDate: "2024-06-05", Status: domain.TaskPending},
		{ID: "overdue-a", StartDate: "2024-06-01", EndDate: "2024-06-05", Status: domain.TaskPending},
	}
	SortUserTasks(tasks, today)

	want := []string{"overdue-a", "overdue-b", "pending", "done"}
	for i, id := range want {
		if tasks[i].ID != id {
			t.Errorf("position %d = %s, want %s", i, tasks[i].ID, id)
		}
	}
}
