// Package anomaly flags behavioral outliers in the year-scoped task set:
// tasks edited too often, badly overdue or finished late, tasks that sat
// untouched past their own start, and staff drowning in overdue work.
package anomaly

import (
	"github.com/workplan/backend/domain"
	"github.com/workplan/backend/pkg/dateutil"
)

// Policy thresholds. Fixed by policy, named so tuning never touches the
// detection logic.
const (
	// MaxDateEdits is the modification count above which a task counts as
	// frequently edited.
	MaxDateEdits = 3
	// MaxOverdueDays is the open-task overdue tolerance in days.
	MaxOverdueDays = 3
	// MaxLateDays is the completed-task lateness tolerance in days.
	MaxLateDays = 3
	// StagnantAfterDays marks an overdue task stagnant once its start date
	// lies at least this many days in the past.
	StagnantAfterDays = 7
	// OverloadedOverdueTasks is the per-user overdue count above which the
	// user counts as overloaded.
	OverloadedOverdueTasks = 5
)

// Flags captures which rules a single task trips.
type Flags struct {
	FrequentEdits   bool `json:"frequent_edits"`
	SeverelyOverdue bool `json:"severely_overdue"`
	LateCompletion  bool `json:"late_completion"`
}

// Any reports whether at least one flag applies; a task counts once toward
// the per-user abnormal total no matter how many rules it trips.
func (f Flags) Any() bool {
	return f.FrequentEdits || f.SeverelyOverdue || f.LateCompletion
}

// Inspect evaluates the per-task rules against the reference day.
func Inspect(t *domain.Task, today string) Flags {
	var f Flags
	if t == nil {
		return f
	}
	f.FrequentEdits = t.ModificationCount > MaxDateEdits
	f.SeverelyOverdue = !t.IsCompleted() && t.OverdueDays(today) > MaxOverdueDays
	f.LateCompletion = t.IsCompleted() && t.CompletedAt != nil && t.LateDays() > MaxLateDays
	return f
}

// AbnormalCounts returns, per employee id, how many tasks trip any rule.
func AbnormalCounts(tasks []domain.Task, today string) map[string]int {
	counts := make(map[string]int)
	for i := range tasks {
		if Inspect(&tasks[i], today).Any() {
			counts[tasks[i].EmployeeID]++
		}
	}
	return counts
}

// StagnantTasks lists open, currently-overdue tasks whose start date is at
// least StagnantAfterDays before today: work that has sat for over a week
// past its own beginning.
func StagnantTasks(tasks []domain.Task, today string) []domain.Task {
	cutoff, err := dateutil.AddDays(today, -StagnantAfterDays)
	if err != nil {
		return nil
	}

	var out []domain.Task
	for _, t := range tasks {
		if !t.IsOverdue(today) {
			continue
		}
		if t.StartDate <= cutoff {
			out = append(out, t)
		}
	}
	return out
}

// OverloadedUser is a staff member with too much overdue work.
type OverloadedUser struct {
	EmployeeID string `json:"employee_id"`
	Name       string `json:"name"`
	Count      int    `json:"count"`
}

// OverloadedUsers returns users whose currently-overdue task count exceeds
// OverloadedOverdueTasks.
func OverloadedUsers(tasks []domain.Task, users []domain.User, today string) []OverloadedUser {
	overdue := make(map[string]int)
	for _, t := range tasks {
		if t.IsOverdue(today) {
			overdue[t.EmployeeID]++
		}
	}

	var out []OverloadedUser
	for _, u := range users {
		if n := overdue[u.EmployeeID]; n > OverloadedOverdueTasks {
			out = append(out, OverloadedUser{EmployeeID: u.EmployeeID, Name: u.Name, Count: n})
		}
	}
	return out
}

// StagnantEntry pairs a stalled task with its owner's display identity.
// Orphaned or nameless owners fall back to the raw employee id and a
// hash-derived color.
type StagnantEntry struct {
	Task       domain.Task `json:"task"`
	OwnerName  string      `json:"owner_name"`
	OwnerColor string      `json:"owner_color"`
}

// Report bundles the org-wide anomaly view for the dashboard.
type Report struct {
	StagnantCount   int              `json:"stagnant_count"`
	StagnantTasks   []StagnantEntry  `json:"stagnant_tasks"`
	OverloadedUsers []OverloadedUser `json:"overloaded_users"`
}

// BuildReport runs every org-wide detection over one snapshot.
func BuildReport(tasks []domain.Task, users []domain.User, today string) Report {
	stagnant := StagnantTasks(tasks, today)
	entries := make([]StagnantEntry, 0, len(stagnant))
	for _, t := range stagnant {
		entries = append(entries, StagnantEntry{
			Task:       t,
			OwnerName:  domain.DisplayName(users, t.EmployeeID),
			OwnerColor: domain.UserColor(users, t.EmployeeID),
		})
	}
	return Report{
		StagnantCount:   len(stagnant),
		StagnantTasks:   entries,
		OverloadedUsers: OverloadedUsers(tasks, users, today),
	}
}
