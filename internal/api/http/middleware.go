package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/patientfirst/crm-backend/internal/api/dto"
	"github.com/patientfirst/crm-backend/internal/observability"
	apperrors "github.com/patientfirst/crm-backend/pkg/util"
)

// ErrorHandler converts every error leaving a handler into the uniform
// failure envelope. Domain errors keep their code and details; anything
// else collapses to INTERNAL_ERROR without leaking internals.
func ErrorHandler(logger *zap.Logger, metrics *observability.Metrics) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(dto.Envelope{
				Success:   false,
				Message:   fiberErr.Message,
				ErrorType: apperrors.CodeInternalError,
			})
		}

		domainErr := apperrors.ToDomainError(err)
		if domainErr.HTTPStatus >= fiber.StatusInternalServerError {
			logger.Error("request failed",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("code", domainErr.Code),
				zap.Error(err))
		}
		metrics.RecordError(c.Path(), c.Method(), domainErr.Code)

		envelope := dto.Envelope{
			Success:   false,
			Message:   domainErr.Message,
			ErrorType: domainErr.Code,
		}
		if len(domainErr.Details) > 0 {
			envelope.Details = domainErr.Details
		}
		return c.Status(domainErr.HTTPStatus).JSON(envelope)
	}
}

// Recover turns handler panics into 500 responses instead of dropping
// the connection.
func Recover(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered",
					zap.String("path", c.Path()),
					zap.Any("panic", r))
				err = apperrors.NewInternalError(fiber.ErrInternalServerError)
			}
		}()
		return c.Next()
	}
}
