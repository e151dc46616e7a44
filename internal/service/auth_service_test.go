package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/patientfirst/crm-backend/internal/auth"
	"github.com/patientfirst/crm-backend/internal/domain"
	apperrors "github.com/patientfirst/crm-backend/pkg/util"
)

func newAuthService(t *testing.T, users ...*domain.User) *AuthService {
	t.Helper()
	tokens := auth.NewTokenManager("test-secret", 1, "test-instance")
	monitor := NewLoginMonitor(nil, zap.NewNop())
	return NewAuthService(newFakeUserRepo(users...), tokens, monitor, nil)
}

func hashOf(t *testing.T, password string) string {
	t.Helper()
	hash, err := auth.HashPassword(password, 4)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	return hash
}

func errCode(t *testing.T, err error) string {
	t.Helper()
	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) {
		t.Fatalf("expected DomainError, got %v", err)
	}
	return domainErr.Code
}

func TestLoginSuccess(t *testing.T) {
	svc := newAuthService(t, &domain.User{
		ID:           1,
		Username:     "jdoe",
		PasswordHash: hashOf(t, "pw"),
		Status:       domain.UserStatusActive,
		Role:         domain.RoleManager,
	})

	user, token, expiresAt, err := svc.Login(context.Background(), "jdoe", "pw", "203.0.113.5")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if user.ID != 1 || token == "" || expiresAt.IsZero() {
		t.Errorf("unexpected login result: user=%v token=%q", user, token)
	}
}

func TestLoginCheckOrdering(t *testing.T) {
	assigned := "203.0.113.5"
	tests := []struct {
		name     string
		user     *domain.User
		username string
		password string
		clientIP string
		wantCode string
	}{
		{
			name:     "unknown username",
			user:     &domain.User{ID: 1, Username: "other", PasswordHash: hashOf(t, "pw"), Status: domain.UserStatusActive},
			username: "jdoe", password: "pw", clientIP: "203.0.113.5",
			wantCode: apperrors.CodeInvalidCredentials,
		},
		{
			name: "wrong password wins over ip policy",
			user: &domain.User{
				ID: 1, Username: "jdoe", PasswordHash: hashOf(t, "pw"),
				Status: domain.UserStatusActive, Role: domain.RoleAgent,
			},
			username: "jdoe", password: "nope", clientIP: "198.51.100.7",
			wantCode: apperrors.CodeInvalidCredentials,
		},
		{
			name: "inactive account wins over ip policy",
			user: &domain.User{
				ID: 1, Username: "jdoe", PasswordHash: hashOf(t, "pw"),
				Status: domain.UserStatusInactive, Role: domain.RoleAgent,
			},
			username: "jdoe", password: "pw", clientIP: "198.51.100.7",
			wantCode: apperrors.CodeAccountInactive,
		},
		{
			name: "agent without assigned ip",
			user: &domain.User{
				ID: 1, Username: "jdoe", PasswordHash: hashOf(t, "pw"),
				Status: domain.UserStatusActive, Role: domain.RoleAgent,
			},
			username: "jdoe", password: "pw", clientIP: "203.0.113.5",
			wantCode: apperrors.CodeIPNotAssigned,
		},
		{
			name: "agent from wrong address",
			user: &domain.User{
				ID: 1, Username: "jdoe", PasswordHash: hashOf(t, "pw"),
				Status: domain.UserStatusActive, Role: domain.RoleAgent, AssignedIP: &assigned,
			},
			username: "jdoe", password: "pw", clientIP: "198.51.100.7",
			wantCode: apperrors.CodeIPRestricted,
		},
		{
			name: "manager with assigned ip from wrong address",
			user: &domain.User{
				ID: 1, Username: "jdoe", PasswordHash: hashOf(t, "pw"),
				Status: domain.UserStatusActive, Role: domain.RoleManager, AssignedIP: &assigned,
			},
			username: "jdoe", password: "pw", clientIP: "198.51.100.7",
			wantCode: apperrors.CodeIPRestricted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newAuthService(t, tt.user)
			_, _, _, err := svc.Login(context.Background(), tt.username, tt.password, tt.clientIP)
			if err == nil {
				t.Fatal("expected login to fail")
			}
			if got := errCode(t, err); got != tt.wantCode {
				t.Errorf("error code = %q, want %q", got, tt.wantCode)
			}
		})
	}
}

func TestLoginAcceptsMappedIPv4(t *testing.T) {
	assigned := "203.0.113.5"
	svc := newAuthService(t, &domain.User{
		ID: 1, Username: "jdoe", PasswordHash: hashOf(t, "pw"),
		Status: domain.UserStatusActive, Role: domain.RoleAgent, AssignedIP: &assigned,
	})

	if _, _, _, err := svc.Login(context.Background(), "jdoe", "pw", "::ffff:203.0.113.5"); err != nil {
		t.Fatalf("expected mapped IPv4 to satisfy allowlist, got %v", err)
	}
}

func TestLoginManagerWithoutAssignedIP(t *testing.T) {
	// IP restriction is opt-in for roles outside the fixed-station set.
	svc := newAuthService(t, &domain.User{
		ID: 1, Username: "jdoe", PasswordHash: hashOf(t, "pw"),
		Status: domain.UserStatusActive, Role: domain.RoleManager,
	})

	if _, _, _, err := svc.Login(context.Background(), "jdoe", "pw", "198.51.100.7"); err != nil {
		t.Fatalf("expected manager login from any address, got %v", err)
	}
}

func TestVerify(t *testing.T) {
	user := &domain.User{
		ID: 1, Username: "jdoe", PasswordHash: hashOf(t, "pw"),
		Status: domain.UserStatusActive, Role: domain.RoleManager,
	}
	svc := newAuthService(t, user)

	_, token, _, err := svc.Login(context.Background(), "jdoe", "pw", "203.0.113.5")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	resolved, err := svc.Verify(context.Background(), token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if resolved.ID != user.ID {
		t.Errorf("resolved user %d, want %d", resolved.ID, user.ID)
	}

	if _, err := svc.Verify(context.Background(), "garbage"); err == nil {
		t.Fatal("expected verify of garbage token to fail")
	}

	// A deactivated account invalidates outstanding sessions.
	user.Status = domain.UserStatusInactive
	if _, err := svc.Verify(context.Background(), token); err == nil {
		t.Fatal("expected verify to fail for deactivated account")
	}
}
