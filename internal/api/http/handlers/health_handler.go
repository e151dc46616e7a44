package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/patientfirst/crm-backend/internal/api/dto"
	"github.com/patientfirst/crm-backend/internal/persistence"
)

// HealthHandler reports process liveness and backing store reachability.
type HealthHandler struct {
	postgres *persistence.Postgres
	redis    *persistence.Redis
	version  string
}

// NewHealthHandler builds the handler.
func NewHealthHandler(postgres *persistence.Postgres, redis *persistence.Redis, version string) *HealthHandler {
	return &HealthHandler{postgres: postgres, redis: redis, version: version}
}

// Check handles GET /health.
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	dbStatus := "ok"
	if err := h.postgres.Pool.Ping(c.Context()); err != nil {
		dbStatus = "unreachable"
	}

	redisStatus := "ok"
	if err := h.redis.Ping(c.Context()); err != nil {
		redisStatus = "unreachable"
	}

	return c.JSON(dto.OK(fiber.Map{
		"status":   "ok",
		"version":  h.version,
		"postgres": dbStatus,
		"redis":    redisStatus,
	}))
}
