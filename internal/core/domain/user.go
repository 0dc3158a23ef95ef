package domain

import "time"

// UserRole determines what a user may do in the review workflow.
type UserRole string

const (
	RoleEmployee       UserRole = "EMPLOYEE"
	RoleMedicalOfficer UserRole = "MEDICAL_OFFICER"
	RoleAccountant     UserRole = "ACCOUNTANT"
	RoleAdmin          UserRole = "ADMIN"
)

// IsReviewer reports whether the role may act on other users' claims.
func (r UserRole) IsReviewer() bool {
	return r == RoleMedicalOfficer || r == RoleAccountant || r == RoleAdmin
}

// User represents an authenticated actor in the domain.
type User struct {
	UserID       string   `json:"userID"` // Primary Key (UUID)
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	Role         UserRole `json:"role"`
	PasswordHash string   `json:"-"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"` // Used for soft delete
}
