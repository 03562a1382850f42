package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/eventhub/internal/api/http/handlers"
	"github.com/spec-kit/eventhub/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health  *handlers.HealthHandler
	Metrics *handlers.MetricsHandler
	Public  *handlers.PublicHandler
	Auth    *handlers.AuthHandler
	Portal  *handlers.PortalHandler
	Admin   *handlers.AdminHandler
	Client  *auth.ClientMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", cfg.Metrics.Snapshot)

	api := app.Group("/api", cfg.Client.Handle)
	api.Get("/event", cfg.Public.Event)
	api.Get("/session", cfg.Public.Session)
	api.Post("/registrations", cfg.Public.Register)

	authGroup := api.Group("/auth")
	authGroup.Post("/otp", cfg.Auth.RequestOTP)
	authGroup.Post("/login", cfg.Auth.LoginUser)
	authGroup.Post("/logout", cfg.Auth.LogoutUser)

	portal := api.Group("/portal", auth.RequireUser())
	portal.Get("/", cfg.Portal.Overview)
	portal.Post("/tiles/:type", cfg.Portal.OpenTile)
	portal.Post("/feedback", cfg.Portal.SubmitFeedback)
	portal.Get("/feedback/stats", cfg.Portal.FeedbackStats)

	api.Post("/admin/login", cfg.Auth.LoginAdmin)
	api.Post("/admin/logout", cfg.Auth.LogoutAdmin)

	admin := api.Group("/admin", auth.RequireAdmin())
	admin.Get("/stats", cfg.Admin.Stats)
	admin.Get("/registrations", cfg.Admin.Registrations)
	admin.Get("/registrations.csv", cfg.Admin.RegistrationsCSV)
	admin.Patch("/registrations/:id/status", cfg.Admin.SetStatus)
	admin.Post("/registrations/:id/toggle", cfg.Admin.ToggleStatus)
	admin.Get("/logins", cfg.Admin.LoginLogs)
	admin.Get("/logins.csv", cfg.Admin.LoginLogsCSV)
	admin.Get("/feedback", cfg.Admin.Feedback)
}
