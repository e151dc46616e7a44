package dto

import (
	"time"

	"github.com/patientfirst/crm-backend/internal/domain"
)

// LoginRequest carries credentials.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthUser is the identity block returned on login and verify. The
// password hash and assigned IP never leave the server.
type AuthUser struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	RoleID   int64  `json:"role_id"`
	Role     string `json:"role"`
	TeamID   *int64 `json:"team_id,omitempty"`
}

// LoginResponse carries the issued token.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      AuthUser  `json:"user"`
}

// VerifyResponse confirms a still-valid token.
type VerifyResponse struct {
	Valid bool     `json:"valid"`
	User  AuthUser `json:"user"`
}

// NewAuthUser maps a domain user to its public identity block.
func NewAuthUser(user *domain.User) AuthUser {
	return AuthUser{
		ID:       user.ID,
		Name:     user.Name,
		Username: user.Username,
		Email:    user.Email,
		RoleID:   user.RoleID,
		Role:     string(user.Role),
		TeamID:   user.TeamID,
	}
}
