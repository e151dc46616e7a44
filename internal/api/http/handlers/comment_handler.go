package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/patientfirst/crm-backend/internal/api/dto"
	"github.com/patientfirst/crm-backend/internal/auth"
	"github.com/patientfirst/crm-backend/internal/domain"
	"github.com/patientfirst/crm-backend/internal/repository"
	"github.com/patientfirst/crm-backend/internal/service"
	apperrors "github.com/patientfirst/crm-backend/pkg/util"
)

// CommentHandler exposes lead notes. Visibility piggybacks on the lead:
// whoever can read the lead can read and write its notes.
type CommentHandler struct {
	comments    repository.CommentRepository
	leadService *service.LeadService
	validate    *validator.Validate
}

// NewCommentHandler builds the handler.
func NewCommentHandler(comments repository.CommentRepository, leadService *service.LeadService, validate *validator.Validate) *CommentHandler {
	return &CommentHandler{comments: comments, leadService: leadService, validate: validate}
}

// List handles GET /api/leads/:id/comments.
func (h *CommentHandler) List(c *fiber.Ctx) error {
	id, err := leadID(c)
	if err != nil {
		return err
	}

	actor, _ := auth.UserFromContext(c)
	if _, err := h.leadService.GetLead(c.Context(), actor, id); err != nil {
		return err
	}

	comments, err := h.comments.ListByLead(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(dto.NewCommentResponses(comments)))
}

// Create handles POST /api/leads/:id/comments.
func (h *CommentHandler) Create(c *fiber.Ctx) error {
	id, err := leadID(c)
	if err != nil {
		return err
	}

	actor, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Authentication required")
	}

	if _, err := h.leadService.GetLead(c.Context(), actor, id); err != nil {
		return err
	}

	var req dto.CommentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}
	if err := h.validate.Struct(req); err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}

	comment := &domain.Comment{
		LeadID:  id,
		UserID:  actor.ID,
		Comment: req.Comment,
	}
	if err := h.comments.Create(c.Context(), comment); err != nil {
		return err
	}
	comment.UserName = actor.Name

	return c.Status(fiber.StatusCreated).JSON(dto.OKMessage("Comment added", dto.CommentResponse{
		ID:        comment.ID,
		LeadID:    comment.LeadID,
		UserID:    comment.UserID,
		UserName:  comment.UserName,
		Comment:   comment.Comment,
		CreatedAt: comment.CreatedAt,
	}))
}
