package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/patientfirst/crm-backend/internal/api/dto"
	"github.com/patientfirst/crm-backend/internal/repository"
	"github.com/patientfirst/crm-backend/internal/service"
)

// DashboardHandler serves aggregate counts and the activity feed.
type DashboardHandler struct {
	leadService *service.LeadService
	activities  repository.ActivityRepository
}

// NewDashboardHandler builds the handler.
func NewDashboardHandler(leadService *service.LeadService, activities repository.ActivityRepository) *DashboardHandler {
	return &DashboardHandler{leadService: leadService, activities: activities}
}

// Summary handles GET /api/dashboard/summary.
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	summary, err := h.leadService.DashboardSummary(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(fiber.Map{"leads_by_status": summary}))
}

// Activities handles GET /api/activities.
func (h *DashboardHandler) Activities(c *fiber.Ctx) error {
	activities, err := h.activities.ListRecent(c.Context(), c.QueryInt("limit", 50))
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(dto.NewActivityResponses(activities)))
}
