package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/patientfirst/crm-backend/internal/api/dto"
	"github.com/patientfirst/crm-backend/internal/domain"
	"github.com/patientfirst/crm-backend/internal/repository"
	apperrors "github.com/patientfirst/crm-backend/pkg/util"
)

// CatalogHandler serves the read-mostly reference tables: workflow
// stages, roles and teams.
type CatalogHandler struct {
	statuses repository.StatusRepository
	roles    repository.RoleRepository
	teams    repository.TeamRepository
	validate *validator.Validate
}

// NewCatalogHandler builds the handler.
func NewCatalogHandler(statuses repository.StatusRepository, roles repository.RoleRepository, teams repository.TeamRepository, validate *validator.Validate) *CatalogHandler {
	return &CatalogHandler{statuses: statuses, roles: roles, teams: teams, validate: validate}
}

// ListStatuses handles GET /api/statuses.
func (h *CatalogHandler) ListStatuses(c *fiber.Ctx) error {
	statuses, err := h.statuses.ListAll(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(dto.NewStatusResponses(statuses)))
}

// ListRoles handles GET /api/roles.
func (h *CatalogHandler) ListRoles(c *fiber.Ctx) error {
	roles, err := h.roles.ListAll(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(dto.NewRoleResponses(roles)))
}

// ListTeams handles GET /api/teams.
func (h *CatalogHandler) ListTeams(c *fiber.Ctx) error {
	teams, err := h.teams.ListAll(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(dto.NewTeamResponses(teams)))
}

// CreateTeam handles POST /api/teams.
func (h *CatalogHandler) CreateTeam(c *fiber.Ctx) error {
	var req dto.TeamRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}
	if err := h.validate.Struct(req); err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}

	status := req.Status
	if status == "" {
		status = "active"
	}
	team := &domain.Team{TeamName: req.TeamName, Status: status}
	if err := h.teams.Create(c.Context(), team); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OKMessage("Team created successfully", dto.TeamResponse{
		ID:        team.ID,
		TeamName:  team.TeamName,
		Status:    team.Status,
		CreatedAt: team.CreatedAt,
	}))
}
