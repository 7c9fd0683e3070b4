// Package stats derives completion and on-time metrics from an immutable
// task snapshot. Every function takes the reference day explicitly and
// mutates nothing, so results are reproducible and freely computed from
// concurrent readers.
package stats

import (
	"fmt"
	"math"
	"sort"

	"github.com/workplan/backend/domain"
	"github.com/workplan/backend/pkg/dateutil"
)

// UserStat aggregates one employee's in-scope tasks.
type UserStat struct {
	EmployeeID string `json:"employee_id"`
	Name       string `json:"name"`
	Total      int    `json:"total"`
	Completed  int    `json:"completed"`
	Pending    int    `json:"pending"`
	Overdue    int    `json:"overdue"`

	// TargetLoad counts tasks due on or before today, the denominator of
	// the on-time rate.
	TargetLoad      int `json:"target_load"`
	CompletedOnTime int `json:"completed_on_time"`
	Rate            int `json:"rate"`
	OnTimeRate      int `json:"on_time_rate"`
}

// OrgStat is the organization-wide rollup, computed over the flat task set
// rather than by summing per-user figures.
type OrgStat struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
	Overdue   int `json:"overdue"`
}

// CategoryCount is one slice of the category distribution.
type CategoryCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// OverdueEntry is one row of the overdue leaderboard.
type OverdueEntry struct {
	EmployeeID string `json:"employee_id"`
	Name       string `json:"name"`
	Count      int    `json:"count"`
	Rate       int    `json:"rate"`
}

// PeriodSummary condenses one reporting window for the sidebar view.
type PeriodSummary struct {
	Period         dateutil.Period `json:"period"`
	Start          string          `json:"start"`
	End            string          `json:"end"`
	Total          int             `json:"total"`
	Completed      int             `json:"completed"`
	Ongoing        int             `json:"ongoing"`
	Overdue        int             `json:"overdue"`
	CompletionRate int             `json:"completion_rate"`
	TopCategories  []CategoryCount `json:"top_categories"`
}

// YearScope restricts tasks and users to the dashboard's reporting universe:
// tasks overlapping the target calendar year whose owner is neither rejected
// nor the reserved system account. Excluded owners take their tasks with
// them.
func YearScope(tasks []domain.Task, users []domain.User, year int) ([]domain.Task, []domain.User) {
	yearStart := fmt.Sprintf("%04d-01-01", year)
	yearEnd := fmt.Sprintf("%04d-12-31", year)

	scopedUsers := make([]domain.User, 0, len(users))
	valid := make(map[string]struct{}, len(users))
	for _, u := range users {
		if u.CountsForStats() {
			scopedUsers = append(scopedUsers, u)
			valid[u.EmployeeID] = struct{}{}
		}
	}

	scopedTasks := make([]domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if !t.OverlapsRange(yearStart, yearEnd) {
			continue
		}
		if _, ok := valid[t.EmployeeID]; !ok {
			continue
		}
		scopedTasks = append(scopedTasks, t)
	}
	return scopedTasks, scopedUsers
}

// ComputeUserStats produces one UserStat per scoped user, including users
// with no tasks at all. Rates are defined as zero when their denominator is
// zero.
func ComputeUserStats(tasks []domain.Task, users []domain.User, today string) []UserStat {
	byOwner := make(map[string][]domain.Task, len(users))
	for _, t := range tasks {
		byOwner[t.EmployeeID] = append(byOwner[t.EmployeeID], t)
	}

	out := make([]UserStat, 0, len(users))
	for _, u := range users {
		out = append(out, computeUserStat(u, byOwner[u.EmployeeID], today))
	}
	return out
}

func computeUserStat(u domain.User, tasks []domain.Task, today string) UserStat {
	stat := UserStat{EmployeeID: u.EmployeeID, Name: u.Name, Total: len(tasks)}

	for _, t := range tasks {
		if t.IsCompleted() {
			stat.Completed++
		} else if t.EndDate < today {
			stat.Overdue++
		} else {
			stat.Pending++
		}
		if t.EndDate <= today {
			stat.TargetLoad++
			if t.CompletedOnTime() {
				stat.CompletedOnTime++
			}
		}
	}

	stat.Rate = percentage(stat.Completed, stat.Total)
	stat.OnTimeRate = percentage(stat.CompletedOnTime, stat.TargetLoad)
	return stat
}

// ComputeOrgStat rolls up the whole scoped task set. Pending is total minus
// completed, matching the dashboard headline cards.
func ComputeOrgStat(tasks []domain.Task, today string) OrgStat {
	stat := OrgStat{Total: len(tasks)}
	for _, t := range tasks {
		if t.IsCompleted() {
			stat.Completed++
		}
		if t.IsOverdue(today) {
			stat.Overdue++
		}
	}
	stat.Pending = stat.Total - stat.Completed
	return stat
}

// CategoryDistribution counts tasks per category, largest first. Ties keep
// discovery order.
func CategoryDistribution(tasks []domain.Task) []CategoryCount {
	counts := make(map[string]int)
	order := make([]string, 0)
	for _, t := range tasks {
		if _, seen := counts[t.Category]; !seen {
			order = append(order, t.Category)
		}
		counts[t.Category]++
	}

	out := make([]CategoryCount, 0, len(order))
	for _, name := range order {
		out = append(out, CategoryCount{Name: name, Count: counts[name]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}

// HonorRoll picks the single best performer: among users with any due task,
// highest on-time rate wins, with the larger target load breaking ties so
// volume under equal reliability is rewarded. Returns nil when nobody has a
// due task yet.
func HonorRoll(userStats []UserStat) *UserStat {
	var best *UserStat
	for i := range userStats {
		s := &userStats[i]
		if s.TargetLoad == 0 {
			continue
		}
		if best == nil ||
			s.OnTimeRate > best.OnTimeRate ||
			(s.OnTimeRate == best.OnTimeRate && s.TargetLoad > best.TargetLoad) {
			best = s
		}
	}
	if best == nil {
		return nil
	}
	winner := *best
	return &winner
}

// OverdueLeaderboard lists users with at least one currently-overdue task,
// most overdue first. Callers slice their own top-N.
func OverdueLeaderboard(tasks []domain.Task, users []domain.User, today string) []OverdueEntry {
	out := make([]OverdueEntry, 0)
	for _, u := range users {
		var total, overdue int
		for _, t := range tasks {
			if t.EmployeeID != u.EmployeeID {
				continue
			}
			total++
			if t.IsOverdue(today) {
				overdue++
			}
		}
		if overdue == 0 {
			continue
		}
		out = append(out, OverdueEntry{
			EmployeeID: u.EmployeeID,
			Name:       u.Name,
			Count:      overdue,
			Rate:       percentage(overdue, total),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}

// ComputePeriodSummary condenses the tasks overlapping the day/week/month
// window around now, with the top three categories by share.
func ComputePeriodSummary(tasks []domain.Task, period dateutil.Period, today string, start, end string) PeriodSummary {
	summary := PeriodSummary{Period: period, Start: start, End: end}

	var inPeriod []domain.Task
	for _, t := range tasks {
		if t.OverlapsRange(start, end) {
			inPeriod = append(inPeriod, t)
		}
	}

	summary.Total = len(inPeriod)
	for _, t := range inPeriod {
		switch {
		case t.IsCompleted():
			summary.Completed++
		case t.EndDate < today:
			summary.Overdue++
		default:
			summary.Ongoing++
		}
	}
	summary.CompletionRate = percentage(summary.Completed, summary.Total)

	categories := CategoryDistribution(inPeriod)
	if len(categories) > 3 {
		categories = categories[:3]
	}
	summary.TopCategories = categories
	return summary
}

// SortUserTasks orders one user's tasks for the detail view: overdue first,
// then stored-pending, then completed, ties broken by start date.
func SortUserTasks(tasks []domain.Task, today string) {
	rank := func(t *domain.Task) int {
		switch {
		case t.IsOverdue(today):
			return 0
		case !t.IsCompleted():
			return 1
		default:
			return 2
		}
	}
	sort.SliceStable(tasks, func(i, j int) bool {
		ri, rj := rank(&tasks[i]), rank(&tasks[j])
		if ri != rj {
			return ri < rj
		}
		return tasks[i].StartDate < tasks[j].StartDate
	})
}

func percentage(part, whole int) int {
	if whole == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(whole) * 100))
}
