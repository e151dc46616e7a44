package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/patientfirst/crm-backend/internal/auth"
	"github.com/patientfirst/crm-backend/internal/domain"
	"github.com/patientfirst/crm-backend/internal/events"
	"github.com/patientfirst/crm-backend/internal/repository"
	apperrors "github.com/patientfirst/crm-backend/pkg/util"
)

// AuthService resolves credentials and bearer tokens into identities
// and enforces the role-conditioned IP allowlist at login time.
type AuthService struct {
	users      repository.UserRepository
	tokens     *auth.TokenManager
	monitor    *LoginMonitor
	dispatcher events.Dispatcher
}

// NewAuthService builds the service.
func NewAuthService(users repository.UserRepository, tokens *auth.TokenManager, monitor *LoginMonitor, dispatcher events.Dispatcher) *AuthService {
	return &AuthService{users: users, tokens: tokens, monitor: monitor, dispatcher: dispatcher}
}

// Login authenticates a user. Checks run in a fixed order: credentials,
// account status, then the IP policy — a wrong password on an account
// with no assigned IP reports INVALID_CREDENTIALS, never an IP error.
// The IP allowlist is evaluated only here, not on subsequent requests.
func (s *AuthService) Login(ctx context.Context, username, password, clientIP string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.recordFailure(ctx, 0, username, clientIP, "unknown username")
			return nil, "", time.Time{}, apperrors.NewInvalidCredentials()
		}
		return nil, "", time.Time{}, err
	}

	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		s.recordFailure(ctx, user.ID, username, clientIP, "invalid password")
		return nil, "", time.Time{}, apperrors.NewInvalidCredentials()
	}

	if !user.Status.Active() {
		s.recordFailure(ctx, user.ID, username, clientIP, "account inactive")
		return nil, "", time.Time{}, apperrors.NewAccountInactive()
	}

	if err := s.checkIPPolicy(user, clientIP); err != nil {
		s.recordFailure(ctx, user.ID, username, clientIP, "ip policy")
		return nil, "", time.Time{}, err
	}

	token, expiresAt, err := s.tokens.GenerateToken(user)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	s.monitor.RecordSuccess(ctx, username, clientIP)
	s.publish(ctx, events.EventLoginSucceeded, user.ID, events.LoginPayload{
		Username: username,
		ClientIP: clientIP,
	})
	return user, token, expiresAt, nil
}

// checkIPPolicy applies the role-conditioned allowlist. Agents and QA
// reviewers must have an assigned IP and log in from it; other roles
// are restricted only when an IP happens to be assigned.
func (s *AuthService) checkIPPolicy(user *domain.User, clientIP string) error {
	if user.Role.RequiresAssignedIP() {
		if user.AssignedIP == nil || *user.AssignedIP == "" {
			return apperrors.NewIPNotAssigned(string(user.Role))
		}
	}
	if user.AssignedIP == nil || *user.AssignedIP == "" {
		return nil
	}
	if !auth.IPMatch(clientIP, *user.AssignedIP) {
		return apperrors.NewIPRestricted(auth.NormalizeIP(clientIP), auth.NormalizeIP(*user.AssignedIP))
	}
	return nil
}

// Verify resolves a bearer token into its current user, rejecting
// tokens from a previous process instance and deactivated accounts.
func (s *AuthService) Verify(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.tokens.ParseToken(token)
	if err != nil {
		return nil, apperrors.NewUnauthorized("Invalid or expired token")
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewUnauthorized("User not found")
		}
		return nil, err
	}
	if !user.Status.Active() {
		return nil, apperrors.NewAccountInactive()
	}
	return user, nil
}

func (s *AuthService) recordFailure(ctx context.Context, userID int64, username, clientIP, reason string) {
	s.monitor.RecordFailure(ctx, username, clientIP, reason)
	s.publish(ctx, events.EventLoginFailed, userID, events.LoginPayload{
		Username: username,
		ClientIP: clientIP,
		Reason:   reason,
	})
}

func (s *AuthService) publish(ctx context.Context, eventType events.EventType, userID int64, payload any) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		UserID:    userID,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
