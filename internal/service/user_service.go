package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/patientfirst/crm-backend/internal/auth"
	"github.com/patientfirst/crm-backend/internal/domain"
	"github.com/patientfirst/crm-backend/internal/repository"
	apperrors "github.com/patientfirst/crm-backend/pkg/util"
)

// UserInput carries admin-supplied account fields.
type UserInput struct {
	Name       string
	Username   string
	Email      string
	Password   string
	Status     domain.UserStatus
	RoleID     int64
	AssignedIP *string
	TeamID     *int64
}

// UserService covers the administrative account operations.
type UserService struct {
	users      repository.UserRepository
	bcryptCost int
}

// NewUserService builds the service.
func NewUserService(users repository.UserRepository, bcryptCost int) *UserService {
	return &UserService{users: users, bcryptCost: bcryptCost}
}

// CreateUser provisions an account with a hashed password.
func (s *UserService) CreateUser(ctx context.Context, input UserInput) (*domain.User, error) {
	if _, err := s.users.GetByUsername(ctx, input.Username); err == nil {
		return nil, apperrors.NewValidationError("username already taken", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = domain.UserStatusActive
	}

	user := &domain.User{
		Name:         input.Name,
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		Status:       status,
		RoleID:       input.RoleID,
		AssignedIP:   input.AssignedIP,
		TeamID:       input.TeamID,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateUser mutates account fields; an empty password keeps the
// existing hash.
func (s *UserService) UpdateUser(ctx context.Context, id int64, input UserInput) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user")
		}
		return nil, err
	}

	user.Name = input.Name
	user.Username = input.Username
	user.Email = input.Email
	user.RoleID = input.RoleID
	user.AssignedIP = input.AssignedIP
	user.TeamID = input.TeamID
	if input.Status != "" {
		user.Status = input.Status
	}
	if input.Password != "" {
		hash, err := auth.HashPassword(input.Password, s.bcryptCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// AssignIP sets or clears the account's allowlisted address.
func (s *UserService) AssignIP(ctx context.Context, id int64, assignedIP *string) error {
	if assignedIP != nil {
		normalized := auth.NormalizeIP(*assignedIP)
		assignedIP = &normalized
	}
	if err := s.users.UpdateAssignedIP(ctx, id, assignedIP); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user")
		}
		return err
	}
	return nil
}

// ListUsers returns every account.
func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}
