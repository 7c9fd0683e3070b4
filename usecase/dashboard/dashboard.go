// Package dashboard assembles the admin reporting view: org totals,
// per-user metrics, the honor roll, the overdue leaderboard, category
// shares, and the anomaly report, memoized in the report cache.
package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/workplan/backend/domain"
	"github.com/workplan/backend/pkg/dateutil"
	"github.com/workplan/backend/repository"
	"github.com/workplan/backend/usecase/anomaly"
	"github.com/workplan/backend/usecase/calendar"
	"github.com/workplan/backend/usecase/stats"
)

// LeaderboardSize caps the overdue leaderboard shown on the dashboard.
const LeaderboardSize = 5

// AbnormalEntry is one user's abnormal-task count, name-resolved for
// direct display.
type AbnormalEntry struct {
	EmployeeID string `json:"employee_id"`
	Name       string `json:"name"`
	Count      int    `json:"count"`
}

// Report is the full dashboard payload for one reporting year.
type Report struct {
	Year       int                  `json:"year"`
	Today      string               `json:"today"`
	Org        stats.OrgStat        `json:"org"`
	Users      []stats.UserStat     `json:"users"`
	HonorRoll  *stats.UserStat      `json:"honor_roll,omitempty"`
	Overdue    []stats.OverdueEntry `json:"overdue_leaderboard"`
	Categories []stats.CategoryCount `json:"categories"`
	Abnormal   []AbnormalEntry      `json:"abnormal_counts"`
	Anomalies  anomaly.Report       `json:"anomalies"`
}

// abnormalEntries resolves display names for the per-user abnormal counts
// and orders them worst first, ties broken by id for a stable payload.
func abnormalEntries(tasks []domain.Task, users []domain.User, today string) []AbnormalEntry {
	counts := anomaly.AbnormalCounts(tasks, today)
	entries := make([]AbnormalEntry, 0, len(counts))
	for id, n := range counts {
		entries = append(entries, AbnormalEntry{
			EmployeeID: id,
			Name:       domain.DisplayName(users, id),
			Count:      n,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].EmployeeID < entries[j].EmployeeID
	})
	return entries
}

type UseCase struct {
	tasks  repository.TaskRepository
	users  repository.UserRepository
	cache  repository.ReportCache
	logger *zap.Logger
	now    func() time.Time
}

func New(tasks repository.TaskRepository, users repository.UserRepository, cache repository.ReportCache, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:  tasks,
		users:  users,
		cache:  cache,
		logger: logger,
		now:    time.Now,
	}
}

// WithClock overrides the wall clock, for deterministic tests.
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// Report computes the dashboard for the given year, serving from the cache
// when the data snapshot has not moved. The engine itself is pure, so the
// cache key of snapshot version plus reference day fully determines the
// payload.
func (uc *UseCase) Report(ctx context.Context, year int) (json.RawMessage, error) {
	today := dateutil.Format(uc.now())
	if year == 0 {
		year = uc.now().Year()
	}

	tasks, err := uc.tasks.List(ctx, repository.TaskFilter{})
	if err != nil {
		return nil, err
	}
	users, err := uc.users.List(ctx)
	if err != nil {
		return nil, err
	}

	version := snapshotVersion(year, tasks, users)
	if uc.cache != nil {
		if cached, err := uc.cache.Get(ctx, version, today); err != nil {
			uc.logger.Warn("report cache read failed", zap.Error(err))
		} else if len(cached) > 0 {
			return cached, nil
		}
	}

	scopedTasks, scopedUsers := stats.YearScope(tasks, users, year)
	userStats := stats.ComputeUserStats(scopedTasks, scopedUsers, today)

	leaderboard := stats.OverdueLeaderboard(scopedTasks, scopedUsers, today)
	if len(leaderboard) > LeaderboardSize {
		leaderboard = leaderboard[:LeaderboardSize]
	}

	report := Report{
		Year:       year,
		Today:      today,
		Org:        stats.ComputeOrgStat(scopedTasks, today),
		Users:      userStats,
		HonorRoll:  stats.HonorRoll(userStats),
		Overdue:    leaderboard,
		Categories: stats.CategoryDistribution(scopedTasks),
		Abnormal:   abnormalEntries(scopedTasks, scopedUsers, today),
		Anomalies:  anomaly.BuildReport(scopedTasks, scopedUsers, today),
	}

	payload, err := json.Marshal(report)
	if err != nil {
		return nil, err
	}
	if uc.cache != nil {
		if err := uc.cache.Set(ctx, version, today, payload); err != nil {
			uc.logger.Warn("report cache write failed", zap.Error(err))
		}
	}
	return payload, nil
}

// PeriodSummary condenses the actor-visible tasks over the day, week, or
// month window around now.
func (uc *UseCase) PeriodSummary(ctx context.Context, actorEmployeeID string, actorIsAdmin bool, period dateutil.Period) (stats.PeriodSummary, error) {
	now := uc.now()
	today := dateutil.Format(now)
	start, end := dateutil.PeriodRange(period, now)

	tasks, err := uc.tasks.List(ctx, repository.TaskFilter{})
	if err != nil {
		return stats.PeriodSummary{}, err
	}

	visible := calendar.VisibleTasks(tasks, calendar.FilterContext{
		ActorEmployeeID: actorEmployeeID,
		ActorIsAdmin:    actorIsAdmin,
		Today:           today,
	})
	return stats.ComputePeriodSummary(visible, period, today, start, end), nil
}

// snapshotVersion fingerprints the data so any mutation invalidates cached
// reports: row counts plus the newest update timestamp on either table.
func snapshotVersion(year int, tasks []domain.Task, users []domain.User) string {
	var latest time.Time
	for _, t := range tasks {
		if t.UpdatedAt.After(latest) {
			latest = t.UpdatedAt
		}
	}
	for _, u := range users {
		if u.UpdatedAt.After(latest) {
			latest = u.UpdatedAt
		}
	}
	return fmt.Sprintf("%d:%d:%d:%d", year, len(tasks), len(users), latest.UnixNano())
}
