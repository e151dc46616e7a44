package handlers

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/patientfirst/crm-backend/internal/api/dto"
	"github.com/patientfirst/crm-backend/internal/auth"
	"github.com/patientfirst/crm-backend/internal/domain"
	"github.com/patientfirst/crm-backend/internal/service"
	apperrors "github.com/patientfirst/crm-backend/pkg/util"
)

// LeadHandler exposes the lead lifecycle endpoints.
type LeadHandler struct {
	leadService *service.LeadService
	catalog     *domain.StatusCatalog
	validate    *validator.Validate
}

// NewLeadHandler builds the handler.
func NewLeadHandler(leadService *service.LeadService, catalog *domain.StatusCatalog, validate *validator.Validate) *LeadHandler {
	return &LeadHandler{leadService: leadService, catalog: catalog, validate: validate}
}

// Create handles POST /api/leads.
func (h *LeadHandler) Create(c *fiber.Ctx) error {
	var req dto.LeadRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}
	if err := h.validate.Struct(req); err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}

	actor, _ := auth.UserFromContext(c)
	lead, err := h.leadService.CreateLead(c.Context(), actor, req.ToInput())
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).
		JSON(dto.OKMessage("Lead created successfully", dto.NewLeadResponse(lead, h.catalog)))
}

// List handles GET /api/leads.
func (h *LeadHandler) List(c *fiber.Ctx) error {
	query := service.ListQuery{
		Search:    c.Query("search"),
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
		Page:      c.QueryInt("page", 1),
		Limit:     c.QueryInt("limit", 25),
	}
	if raw := c.Query("status"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return apperrors.NewValidationError("status must be numeric", nil)
		}
		query.StatusID = &id
	}
	if raw := c.Query("team_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return apperrors.NewValidationError("team_id must be numeric", nil)
		}
		query.TeamID = &id
	}

	actor, _ := auth.UserFromContext(c)
	leads, total, err := h.leadService.ListLeads(c.Context(), actor, query)
	if err != nil {
		return err
	}

	return c.JSON(dto.OK(dto.PagedData{
		Items: dto.NewLeadResponses(leads, h.catalog),
		Pagination: dto.Pagination{
			Page:  query.Page,
			Limit: query.Limit,
			Total: total,
		},
	}))
}

// Get handles GET /api/leads/:id.
func (h *LeadHandler) Get(c *fiber.Ctx) error {
	id, err := leadID(c)
	if err != nil {
		return err
	}

	actor, _ := auth.UserFromContext(c)
	lead, err := h.leadService.GetLead(c.Context(), actor, id)
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(dto.NewLeadResponse(lead, h.catalog)))
}

// Update handles PUT /api/leads/:id.
func (h *LeadHandler) Update(c *fiber.Ctx) error {
	id, err := leadID(c)
	if err != nil {
		return err
	}

	var req dto.LeadRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}
	if err := h.validate.Struct(req); err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}

	actor, _ := auth.UserFromContext(c)
	lead, err := h.leadService.UpdateLead(c.Context(), actor, id, req.ToInput())
	if err != nil {
		return err
	}
	return c.JSON(dto.OKMessage("Lead updated successfully", dto.NewLeadResponse(lead, h.catalog)))
}

// Delete handles DELETE /api/leads/:id.
func (h *LeadHandler) Delete(c *fiber.Ctx) error {
	id, err := leadID(c)
	if err != nil {
		return err
	}

	actor, _ := auth.UserFromContext(c)
	if err := h.leadService.DeleteLead(c.Context(), actor, id); err != nil {
		return err
	}
	return c.JSON(dto.OKMessage("Lead deleted successfully", nil))
}

// StatusHistory handles GET /api/leads/:id/status-history.
func (h *LeadHandler) StatusHistory(c *fiber.Ctx) error {
	id, err := leadID(c)
	if err != nil {
		return err
	}

	actor, _ := auth.UserFromContext(c)
	// The trail is only readable when the lead itself is.
	if _, err := h.leadService.GetLead(c.Context(), actor, id); err != nil {
		return err
	}

	records, err := h.leadService.StatusHistory(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(dto.NewStatusHistory(records)))
}

func leadID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("lead id must be a positive integer", nil)
	}
	return id, nil
}
