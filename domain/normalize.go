package domain

import (
	"fmt"
	"strings"
	"time"
)

// Store rows arrive with field names in snake_case, camelCase, or all
// lowercase depending on which client wrote them. Normalization is the single
// boundary that folds those variants into the canonical types; nothing past
// this file ever sees a loose record.

// Record is a loosely-shaped row as returned by a generic store client.
type Record map[string]any

func (r Record) str(keys ...string) string {
	for _, k := range keys {
		if v, ok := r[k]; ok && v != nil {
			switch s := v.(type) {
			case string:
				return s
			case fmt.Stringer:
				return s.String()
			case float64:
				// Numeric ids from JSON decoding.
				return strings.TrimSuffix(fmt.Sprintf("%.0f", s), ".")
			default:
				return fmt.Sprintf("%v", s)
			}
		}
	}
	return ""
}

func (r Record) num(keys ...string) int {
	for _, k := range keys {
		if v, ok := r[k]; ok && v != nil {
			switch n := v.(type) {
			case int:
				return n
			case int64:
				return int(n)
			case float64:
				return int(n)
			}
		}
	}
	return 0
}

func (r Record) timestamp(keys ...string) *time.Time {
	for _, k := range keys {
		if v, ok := r[k]; ok && v != nil {
			switch t := v.(type) {
			case time.Time:
				out := t
				return &out
			case string:
				if t == "" {
					continue
				}
				if parsed, err := time.Parse(time.RFC3339, t); err == nil {
					return &parsed
				}
				if parsed, err := time.Parse("2006-01-02", t); err == nil {
					return &parsed
				}
			}
		}
	}
	return nil
}

// NormalizeTask maps a loose row onto a canonical Task.
func NormalizeTask(r Record) Task {
	status := TaskStatus(strings.ToLower(r.str("status")))
	if status != TaskCompleted {
		status = TaskPending
	}
	return Task{
		ID:                r.str("id"),
		EmployeeID:        r.str("employee_id", "employeeId", "employeeid"),
		Category:          r.str("category"),
		Title:             r.str("title"),
		Description:       r.str("description"),
		StartDate:         r.str("start_date", "startDate", "startdate"),
		EndDate:           r.str("end_date", "endDate", "enddate"),
		Status:            status,
		ModificationCount: r.num("modification_count", "modificationCount"),
		CompletedAt:       r.timestamp("completed_at", "completedAt"),
		CreatedBy:         r.str("created_by", "createdBy"),
		LastRemindedAt:    r.timestamp("last_reminded_at", "lastRemindedAt"),
	}
}

// NormalizeUser maps a loose row onto a canonical User. Missing role and
// status default to the least privileged, most visible combination.
func NormalizeUser(r Record) User {
	role := Role(strings.ToLower(r.str("role")))
	if role != RoleAdmin {
		role = RoleUser
	}
	status := UserStatus(strings.ToLower(r.str("status")))
	switch status {
	case UserActive, UserPending, UserRejected:
	default:
		status = UserActive
	}
	return User{
		ID:             r.str("id"),
		EmployeeID:     r.str("employee_id", "employeeId", "employeeid"),
		Name:           r.str("name"),
		Role:           role,
		Status:         status,
		Color:          r.str("color"),
		ActiveSessions: r.num("active_sessions", "activeSessions"),
	}
}

// NormalizeComment maps a loose row onto a canonical Comment.
func NormalizeComment(r Record) Comment {
	c := Comment{
		ID:         r.str("id"),
		TaskID:     r.str("task_id", "taskId", "taskid"),
		EmployeeID: r.str("employee_id", "employeeId", "employeeid"),
		Content:    r.str("content"),
	}
	if ts := r.timestamp("created_at", "createdAt"); ts != nil {
		c.CreatedAt = *ts
	}
	return c
}
