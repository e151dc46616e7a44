package dto

import (
	"time"

	"github.com/patientfirst/crm-backend/internal/domain"
	"github.com/patientfirst/crm-backend/internal/service"
)

// UserRequest is the admin account create/update payload. Password is
// required on create and optional on update.
type UserRequest struct {
	Name       string  `json:"name" validate:"required"`
	Username   string  `json:"username" validate:"required"`
	Email      string  `json:"email" validate:"required,email"`
	Password   string  `json:"password"`
	Status     string  `json:"status" validate:"omitempty,oneof=Active Inactive"`
	RoleID     int64   `json:"role_id" validate:"required"`
	AssignedIP *string `json:"assigned_ip"`
	TeamID     *int64  `json:"team_id"`
}

// ToInput maps the request onto the service input.
func (r UserRequest) ToInput() service.UserInput {
	return service.UserInput{
		Name:       r.Name,
		Username:   r.Username,
		Email:      r.Email,
		Password:   r.Password,
		Status:     domain.UserStatus(r.Status),
		RoleID:     r.RoleID,
		AssignedIP: r.AssignedIP,
		TeamID:     r.TeamID,
	}
}

// AssignIPRequest sets or clears an account allowlist address.
type AssignIPRequest struct {
	AssignedIP *string `json:"assigned_ip"`
}

// UserResponse is the outward account shape. Admin listings include the
// assigned IP; the hash never leaves.
type UserResponse struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	Status     string    `json:"status"`
	RoleID     int64     `json:"role_id"`
	Role       string    `json:"role"`
	AssignedIP *string   `json:"assigned_ip,omitempty"`
	TeamID     *int64    `json:"team_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewUserResponse maps a domain user outward.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:         user.ID,
		Name:       user.Name,
		Username:   user.Username,
		Email:      user.Email,
		Status:     string(user.Status),
		RoleID:     user.RoleID,
		Role:       string(user.Role),
		AssignedIP: user.AssignedIP,
		TeamID:     user.TeamID,
		CreatedAt:  user.CreatedAt,
		UpdatedAt:  user.UpdatedAt,
	}
}

// NewUserResponses maps an account listing.
func NewUserResponses(users []domain.User) []UserResponse {
	result := make([]UserResponse, 0, len(users))
	for i := range users {
		result = append(result, NewUserResponse(&users[i]))
	}
	return result
}
