package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/patientfirst/crm-backend/internal/domain"
	"github.com/patientfirst/crm-backend/internal/repository"
	apperrors "github.com/patientfirst/crm-backend/pkg/util"
)

const principalKey = "auth_principal"

// Middleware resolves bearer tokens into authenticated users.
type Middleware struct {
	tokens *TokenManager
	users  repository.UserRepository
}

// NewMiddleware constructs middleware.
func NewMiddleware(tokens *TokenManager, users repository.UserRepository) *Middleware {
	return &Middleware{tokens: tokens, users: users}
}

// Optional attaches the authenticated user when a valid bearer token is
// present and continues anonymously otherwise. Lead routes use this:
// visibility rules handle the anonymous case downstream.
func (m *Middleware) Optional(c *fiber.Ctx) error {
	token, ok := BearerToken(c)
	if !ok {
		return c.Next()
	}

	claims, err := m.tokens.ParseToken(token)
	if err != nil {
		return c.Next()
	}

	user, err := m.users.GetByID(c.Context(), claims.UserID)
	if err != nil {
		return c.Next()
	}

	c.Locals(principalKey, user)
	return c.Next()
}

// Required rejects requests without a valid token or with a token whose
// account has since been deactivated.
func (m *Middleware) Required(c *fiber.Ctx) error {
	token, ok := BearerToken(c)
	if !ok {
		return apperrors.NewUnauthorized("Authentication required")
	}

	claims, err := m.tokens.ParseToken(token)
	if err != nil {
		return apperrors.NewUnauthorized("Invalid or expired token")
	}

	user, err := m.users.GetByID(c.Context(), claims.UserID)
	if err != nil {
		return apperrors.NewUnauthorized("User not found")
	}
	if !user.Status.Active() {
		return apperrors.NewAccountInactive()
	}

	c.Locals(principalKey, user)
	return c.Next()
}

// RequireRole builds a handler admitting only the listed roles. It must
// run after Required.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		user, ok := UserFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("Authentication required")
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[user.Role]; !exists {
			return apperrors.NewForbidden("Insufficient role")
		}
		return c.Next()
	}
}

// UserFromContext retrieves the authenticated user, if any.
func UserFromContext(c *fiber.Ctx) (*domain.User, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	user, ok := val.(*domain.User)
	return user, ok
}

// ClientIP extracts the caller address, preferring proxy headers the
// way the reverse proxy in front of this service sets them.
func ClientIP(c *fiber.Ctx) string {
	if fwd := c.Get("X-Forwarded-For"); fwd != "" {
		parts := strings.SplitN(fwd, ",", 2)
		return strings.TrimSpace(parts[0])
	}
	if real := c.Get("X-Real-IP"); real != "" {
		return real
	}
	return c.IP()
}

// BearerToken extracts the Authorization bearer token, if present.
func BearerToken(c *fiber.Ctx) (string, bool) {
	header := c.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}
