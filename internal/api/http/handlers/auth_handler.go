package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/patientfirst/crm-backend/internal/api/dto"
	"github.com/patientfirst/crm-backend/internal/auth"
	"github.com/patientfirst/crm-backend/internal/service"
	apperrors "github.com/patientfirst/crm-backend/pkg/util"
)

// AuthHandler exposes login and token verification.
type AuthHandler struct {
	authService *service.AuthService
	validate    *validator.Validate
}

// NewAuthHandler builds the handler.
func NewAuthHandler(authService *service.AuthService, validate *validator.Validate) *AuthHandler {
	return &AuthHandler{authService: authService, validate: validate}
}

// Login handles POST /api/auth/login. The caller address used by the IP
// allowlist is resolved from proxy headers, not the socket peer.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}
	if err := h.validate.Struct(req); err != nil {
		return apperrors.NewValidationError("username and password are required", nil)
	}

	user, token, expiresAt, err := h.authService.Login(c.Context(), req.Username, req.Password, auth.ClientIP(c))
	if err != nil {
		return err
	}

	return c.JSON(dto.OKMessage("Login successful", dto.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      dto.NewAuthUser(user),
	}))
}

// Verify handles POST /api/auth/verify.
func (h *AuthHandler) Verify(c *fiber.Ctx) error {
	token, ok := auth.BearerToken(c)
	if !ok {
		return apperrors.NewUnauthorized("Authentication required")
	}

	user, err := h.authService.Verify(c.Context(), token)
	if err != nil {
		return err
	}

	return c.JSON(dto.OK(dto.VerifyResponse{
		Valid: true,
		User:  dto.NewAuthUser(user),
	}))
}
