package domain

// CanDeleteTask decides whether an actor may delete a task: admins always,
// the recorded author otherwise. Tasks created before authorship was tracked
// carry no CreatedBy and remain deletable by anyone.
func CanDeleteTask(t *Task, actorEmployeeID string, actorIsAdmin bool) bool {
	if t == nil || actorEmployeeID == "" {
		return false
	}
	if actorIsAdmin {
		return true
	}
	if t.CreatedBy != "" {
		return t.CreatedBy == actorEmployeeID
	}
	return true
}
