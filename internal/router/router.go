package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/trainhub/trainhub-api/internal/config"
	"github.com/trainhub/trainhub-api/internal/handler"
	"github.com/trainhub/trainhub-api/internal/middleware"
	"github.com/trainhub/trainhub-api/internal/models"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler       *handler.AuthHandler
	UserHandler       *handler.UserHandler
	DepartmentHandler *handler.DepartmentHandler
	CatalogHandler    *handler.CatalogHandler
	SessionHandler    *handler.SessionHandler
	EnrollmentHandler *handler.EnrollmentHandler
	FeedbackHandler   *handler.FeedbackHandler
	EvaluationHandler *handler.EvaluationHandler
	AttachmentHandler *handler.AttachmentHandler
	AuditHandler      *handler.AuditHandler
	ComplianceHandler *handler.ComplianceHandler
	DashboardHandler  *handler.DashboardHandler
	HealthHandler     *handler.HealthHandler
	JWTMiddleware     fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	if deps.HealthHandler != nil {
		deps.HealthHandler.Register(app)
	}

	api := app.Group("/api", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})

	// Login is the only unauthenticated API route.
	if deps.AuthHandler != nil {
		deps.AuthHandler.RegisterPublic(api)
	}

	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}
	api.Use(jwtMiddleware)

	manage := middleware.RequireRole(models.RoleManager, models.RoleHRAdmin)
	admin := middleware.RequireRole(models.RoleHRAdmin)

	if deps.AuthHandler != nil {
		deps.AuthHandler.Register(api)
	}
	if deps.UserHandler != nil {
		deps.UserHandler.Register(api.Group("/users"), manage, admin)
	}
	if deps.DepartmentHandler != nil {
		deps.DepartmentHandler.Register(api.Group("/departments"), admin)
	}
	if deps.CatalogHandler != nil {
		deps.CatalogHandler.Register(api.Group("/training-catalog"), manage, admin)
	}
	if deps.SessionHandler != nil {
		deps.SessionHandler.Register(api.Group("/training-sessions"), manage)
	}
	if deps.EnrollmentHandler != nil {
		deps.EnrollmentHandler.Register(api.Group("/training-enrollments"), manage)
	}
	if deps.FeedbackHandler != nil {
		deps.FeedbackHandler.Register(api.Group("/training-feedback"), manage)
	}
	if deps.EvaluationHandler != nil {
		deps.EvaluationHandler.Register(api.Group("/effectiveness-evaluations", manage))
	}
	if deps.AttachmentHandler != nil {
		deps.AttachmentHandler.Register(api.Group("/evidence-attachments"))
	}
	if deps.AuditHandler != nil {
		deps.AuditHandler.Register(api.Group("/audit-logs", admin))
	}
	if deps.ComplianceHandler != nil {
		deps.ComplianceHandler.Register(api.Group("/compliance-requirements"), admin)
	}
	if deps.DashboardHandler != nil {
		deps.DashboardHandler.Register(api.Group("/dashboard", manage))
	}
}
