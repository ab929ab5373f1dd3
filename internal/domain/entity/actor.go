package entity

// Role constants for ActorContext
const (
	RoleEmployee = "EMPLOYEE"
	RoleManager  = "MANAGER"
	RoleFinance  = "FINANCE"
	RoleAdmin    = "ADMIN"
)

// ActorContext identifies the user on whose behalf an operation runs. It is
// passed explicitly into every mutating call instead of living in ambient
// process state.
type ActorContext struct {
	ID    string   `json:"id"`
	Name  string   `json:"name,omitempty"`
	Roles []string `json:"roles"`
}

// HasRole reports whether the actor carries the given role.
func (a ActorContext) HasRole(role string) bool {
	for _, r := range a.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Elevated reports whether the actor may act on records owned by others.
func (a ActorContext) Elevated() bool {
	return a.HasRole(RoleManager) || a.HasRole(RoleAdmin)
}

// CanActOn reports whether the actor may act on a request owned by employeeID.
func (a ActorContext) CanActOn(employeeID string) bool {
	return a.ID == employeeID || a.Elevated()
}
