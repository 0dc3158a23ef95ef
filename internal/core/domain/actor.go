package domain

// Actor is the authenticated identity performing an operation, resolved by the
// upstream auth layer and passed explicitly into every core operation. The
// optional client fields end up in audit entries.
type Actor struct {
	UserID    string
	Role      UserRole
	ClientIP  *string
	UserAgent *string
}

// IsAdmin reports whether the actor holds the administrative role.
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}
