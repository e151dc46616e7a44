package handlers

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/patientfirst/crm-backend/internal/api/dto"
	"github.com/patientfirst/crm-backend/internal/service"
	apperrors "github.com/patientfirst/crm-backend/pkg/util"
)

// UserHandler exposes the administrative account endpoints.
type UserHandler struct {
	userService *service.UserService
	validate    *validator.Validate
}

// NewUserHandler builds the handler.
func NewUserHandler(userService *service.UserService, validate *validator.Validate) *UserHandler {
	return &UserHandler{userService: userService, validate: validate}
}

// Create handles POST /api/users.
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var req dto.UserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}
	if err := h.validate.Struct(req); err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}
	if req.Password == "" {
		return apperrors.NewValidationError("password is required", nil)
	}

	user, err := h.userService.CreateUser(c.Context(), req.ToInput())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).
		JSON(dto.OKMessage("User created successfully", dto.NewUserResponse(user)))
}

// Update handles PUT /api/users/:id.
func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, err := userID(c)
	if err != nil {
		return err
	}

	var req dto.UserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}
	if err := h.validate.Struct(req); err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}

	user, err := h.userService.UpdateUser(c.Context(), id, req.ToInput())
	if err != nil {
		return err
	}
	return c.JSON(dto.OKMessage("User updated successfully", dto.NewUserResponse(user)))
}

// AssignIP handles PUT /api/users/:id/assigned-ip.
func (h *UserHandler) AssignIP(c *fiber.Ctx) error {
	id, err := userID(c)
	if err != nil {
		return err
	}

	var req dto.AssignIPRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}

	if err := h.userService.AssignIP(c.Context(), id, req.AssignedIP); err != nil {
		return err
	}
	return c.JSON(dto.OKMessage("Assigned IP updated", nil))
}

// List handles GET /api/users.
func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.userService.ListUsers(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(dto.NewUserResponses(users)))
}

func userID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("user id must be a positive integer", nil)
	}
	return id, nil
}
