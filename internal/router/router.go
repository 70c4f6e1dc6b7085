package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/campus-portal-api/internal/config"
	"github.com/noah-isme/campus-portal-api/internal/handler"
	"github.com/noah-isme/campus-portal-api/internal/middleware"
	"github.com/noah-isme/campus-portal-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler       *handler.AuthHandler
	DashboardHandler  *handler.DashboardHandler
	ScheduleHandler   *handler.ScheduleHandler
	AttendanceHandler *handler.AttendanceHandler
	AcademicsHandler  *handler.AcademicsHandler
	FeeHandler        *handler.FeeHandler
	NoticeHandler     *handler.NoticeHandler
	ProfileHandler    *handler.ProfileHandler
	SyllabusHandler   *handler.SyllabusHandler
	DocumentHandler   *handler.DocumentHandler
	AssistantHandler  *handler.AssistantHandler
	SeedHandler       *handler.SeedHandler
	JWTMiddleware     fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/metrics", observability.MetricsHandler())

	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	if deps.AuthHandler != nil {
		deps.AuthHandler.Register(api.Group("/auth"))
	}
	if deps.SeedHandler != nil {
		deps.SeedHandler.Register(api.Group("/seed"))
	}

	// Use provided JWT middleware, or a no-op if nil
	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	if deps.DashboardHandler != nil {
		deps.DashboardHandler.Register(api.Group("/dashboard", jwtMiddleware))
	}
	if deps.AttendanceHandler != nil {
		deps.AttendanceHandler.Register(api.Group("/attendance", jwtMiddleware))
	}
	if deps.AcademicsHandler != nil {
		deps.AcademicsHandler.Register(api.Group("/academics", jwtMiddleware))
	}
	if deps.FeeHandler != nil {
		deps.FeeHandler.Register(api.Group("/fees", jwtMiddleware))
	}
	if deps.NoticeHandler != nil {
		deps.NoticeHandler.Register(api.Group("/notices", jwtMiddleware))
	}
	if deps.ProfileHandler != nil {
		deps.ProfileHandler.Register(api.Group("/profile", jwtMiddleware))
	}
	if deps.SyllabusHandler != nil {
		deps.SyllabusHandler.Register(api.Group("/syllabus", jwtMiddleware))
	}
	if deps.DocumentHandler != nil {
		deps.DocumentHandler.Register(api.Group("/documents", jwtMiddleware))
	}
	if deps.AssistantHandler != nil {
		deps.AssistantHandler.Register(api.Group("/assistant", jwtMiddleware))
	}

	// Schedule routes, the live socket included, are student-only.
	if deps.ScheduleHandler != nil {
		deps.ScheduleHandler.Register(api.Group("/schedule", jwtMiddleware, middleware.RequireRole(middleware.AuthRoleStudent)))
	}
}
