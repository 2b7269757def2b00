package domain

import "time"

// Role classifies what a user is allowed to do.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Meets reports whether the role satisfies the required role. Admins outrank
// ordinary users.
func (r Role) Meets(required Role) bool {
	return r == required || r == RoleAdmin
}

// User represents an account registered with the system. PasswordHash holds
// the bcrypt digest of the password; the plaintext is never stored.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	IsActive     bool
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
