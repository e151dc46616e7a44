package domain

import "time"

// UserStatus represents lifecycle states for a CRM user account.
type UserStatus string

const (
	UserStatusActive   UserStatus = "Active"
	UserStatusInactive UserStatus = "Inactive"
)

// Active reports whether the account may authenticate. The legacy data
// uses both "Active" and the single-letter "A" form.
func (s UserStatus) Active() bool {
	switch s {
	case UserStatusActive, "A":
		return true
	}
	return false
}

// User is an authenticated identity: an operator working leads through
// the review workflow.
type User struct {
	ID           int64
	Name         string
	Username     string
	Email        string
	PasswordHash string
	Status       UserStatus
	RoleID       int64
	Role         Role
	AssignedIP   *string
	TeamID       *int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
