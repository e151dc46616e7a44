package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/patientfirst/crm-backend/internal/api/http/handlers"
	"github.com/patientfirst/crm-backend/internal/auth"
	"github.com/patientfirst/crm-backend/internal/domain"
)

// Handlers bundles every route handler the router mounts.
type Handlers struct {
	Health    *handlers.HealthHandler
	Auth      *handlers.AuthHandler
	Lead      *handlers.LeadHandler
	User      *handlers.UserHandler
	Catalog   *handlers.CatalogHandler
	Comment   *handlers.CommentHandler
	Dashboard *handlers.DashboardHandler
}

// RegisterRoutes mounts the HTTP surface. Lead routes use optional
// authentication: the visibility rules decide what an anonymous caller
// sees. Account administration is locked to admin roles.
func RegisterRoutes(app *fiber.App, h Handlers, authMW *auth.Middleware) {
	app.Get("/health", h.Health.Check)

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/login", h.Auth.Login)
	authGroup.Post("/verify", h.Auth.Verify)

	leads := api.Group("/leads", authMW.Optional)
	leads.Get("/", h.Lead.List)
	leads.Post("/", h.Lead.Create)
	leads.Get("/:id", h.Lead.Get)
	leads.Put("/:id", h.Lead.Update)
	leads.Delete("/:id", h.Lead.Delete)
	leads.Get("/:id/status-history", h.Lead.StatusHistory)
	leads.Get("/:id/comments", h.Comment.List)
	leads.Post("/:id/comments", h.Comment.Create)

	api.Get("/statuses", authMW.Optional, h.Catalog.ListStatuses)
	api.Get("/roles", authMW.Optional, h.Catalog.ListRoles)
	api.Get("/teams", authMW.Optional, h.Catalog.ListTeams)

	adminOnly := auth.RequireRole(domain.RoleSuperAdmin, domain.RoleManager)
	api.Post("/teams", authMW.Required, adminOnly, h.Catalog.CreateTeam)

	users := api.Group("/users", authMW.Required, adminOnly)
	users.Get("/", h.User.List)
	users.Post("/", h.User.Create)
	users.Put("/:id", h.User.Update)
	users.Put("/:id/assigned-ip", h.User.AssignIP)

	api.Get("/dashboard/summary", authMW.Required, h.Dashboard.Summary)
	api.Get("/activities", authMW.Required, adminOnly, h.Dashboard.Activities)
}
