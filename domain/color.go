package domain

import "fmt"

// FallbackColor derives a stable display color from an arbitrary string so
// users without an assigned color still render consistently across views.
func FallbackColor(seed string) string {
	var hash int32
	for _, r := range seed {
		hash = r + ((hash << 5) - hash)
	}
	return fmt.Sprintf("#%06X", uint32(hash)&0x00FFFFFF)
}

// UserColor returns the user's configured color or a deterministic fallback
// keyed by employee id.
func UserColor(users []User, employeeID string) string {
	for i := range users {
		if users[i].EmployeeID == employeeID && users[i].Color != "" {
			return users[i].Color
		}
	}
	return FallbackColor(employeeID)
}
