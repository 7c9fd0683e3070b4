package domain

import (
	"sort"
	"time"
)

// Comment is an append-mostly note on a task. Only the author or an admin
// may edit or delete it.
type Comment struct {
	ID         string    `json:"id"`
	TaskID     string    `json:"task_id"`
	EmployeeID string    `json:"employee_id"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

// SortComments orders comments for display, oldest first.
func SortComments(comments []Comment) {
	sort.SliceStable(comments, func(i, j int) bool {
		return comments[i].CreatedAt.Before(comments[j].CreatedAt)
	})
}

// CanModifyComment mirrors the delete rule for comments: admin or author.
func CanModifyComment(c *Comment, actorEmployeeID string, actorIsAdmin bool) bool {
	if c == nil {
		return false
	}
	if actorIsAdmin {
		return true
	}
	return c.EmployeeID == actorEmployeeID
}
