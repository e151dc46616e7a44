package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/patientfirst/crm-backend/internal/domain"
)

// ErrInvalidToken covers bad signatures, expiry, and tokens minted by a
// previous process instance.
var ErrInvalidToken = errors.New("invalid or expired token")

// TokenManager issues and validates signed session tokens. Every token
// embeds the run-instance marker of the issuing process; a restart
// changes the marker and invalidates all outstanding tokens, forcing
// re-login. The marker is set once at startup and never mutated.
type TokenManager struct {
	secret   []byte
	ttl      time.Duration
	instance string
}

// NewTokenManager builds a manager bound to the given run-instance marker.
func NewTokenManager(secret string, ttlHours int, instance string) *TokenManager {
	if ttlHours <= 0 {
		ttlHours = 24
	}
	return &TokenManager{
		secret:   []byte(secret),
		ttl:      time.Duration(ttlHours) * time.Hour,
		instance: instance,
	}
}

// Claims describes the JWT payload.
type Claims struct {
	UserID   int64       `json:"id"`
	Username string      `json:"username"`
	Email    string      `json:"email"`
	RoleID   int64       `json:"role_id"`
	Role     domain.Role `json:"role"`
	Instance string      `json:"iid"`
	jwt.RegisteredClaims
}

// GenerateToken signs a session token for the user.
func (tm *TokenManager) GenerateToken(user *domain.User) (string, time.Time, error) {
	expiresAt := time.Now().Add(tm.ttl)
	claims := &Claims{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		RoleID:   user.RoleID,
		Role:     user.Role,
		Instance: tm.instance,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseToken validates the token and returns its claims. Tokens issued
// by another run of the process are rejected even when the signature
// and expiry are fine.
func (tm *TokenManager) ParseToken(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Instance != tm.instance {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
