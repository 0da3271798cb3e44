package user

import "time"

type Role string

const (
	RoleAdmin   Role = "admin"   // Full access, can manage workers
	RoleManager Role = "manager" // Can schedule and reconcile shifts
	RoleStaff   Role = "staff"   // Regular worker
)

type User struct {
	ID              string
	Name            string
	Email           string
	PasswordHash    *string
	Role            Role
	OAuthProvider   *string
	OAuthProviderID *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
