package domain

import "time"

// Role enumerates access levels for accounts.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is the single entity managed by this service. ID is the surrogate key
// owned by the database and never leaves the process; UUID is the public
// identifier generated by the service at creation time.
type User struct {
	ID           int64
	UUID         string
	Name         string
	Email        string
	PasswordHash string
	Status       bool
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time
}

// Active reports whether the user has not been soft-deleted.
func (u *User) Active() bool {
	return u.DeletedAt == nil
}
