package domain

import "time"

// Role separates administrators (org-wide visibility, full permissions)
// from regular users (scoped to their own tasks).
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// UserStatus is the registration lifecycle state.
type UserStatus string

const (
	UserActive   UserStatus = "active"
	UserPending  UserStatus = "pending"
	UserRejected UserStatus = "rejected"
)

// SystemAccountName is a reserved operator account excluded from every
// statistic alongside rejected users.
const SystemAccountName = "System_Admin"

// User is a personnel identity keyed by employee id. Tasks keep their
// employee id even after the user record disappears, so lookups must
// tolerate a miss.
type User struct {
	ID             string     `json:"id"`
	EmployeeID     string     `json:"employee_id"`
	Name           string     `json:"name"`
	Role           Role       `json:"role"`
	Status         UserStatus `json:"status"`
	Color          string     `json:"color,omitempty"`
	ActiveSessions int        `json:"active_sessions"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// CountsForStats reports whether the user participates in aggregates:
// rejected users and the reserved system account are excluded, and their
// tasks with them.
func (u *User) CountsForStats() bool {
	return u != nil && u.Status != UserRejected && u.Name != SystemAccountName
}

// DisplayName resolves an employee id against a user list, falling back to
// the raw id when the record is orphaned or its name is blank.
func DisplayName(users []User, employeeID string) string {
	for i := range users {
		if users[i].EmployeeID == employeeID {
			if users[i].Name != "" {
				return users[i].Name
			}
			break
		}
	}
	return employeeID
}
