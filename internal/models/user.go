package models

// User captures the identity produced by the mock sign-in flow.
type User struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Email  string   `json:"email"`
	Role   UserRole `json:"role"`
	Avatar string   `json:"avatar,omitempty"`
}

// CanManage reports whether the user may edit or delete the given listing.
func (u User) CanManage(p Property) bool {
	return u.Role == RoleAdmin || (u.ID != "" && u.ID == p.OwnerID)
}
