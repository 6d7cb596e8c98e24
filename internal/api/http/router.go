package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/sla-engine/internal/api/http/handlers"
	"github.com/spec-kit/sla-engine/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Tickets        *handlers.TicketsHandler
	Contracts      *handlers.ContractsHandler
	AuthMiddleware *auth.AuthMiddleware
	MetricsHandler fiber.Handler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.MetricsHandler != nil {
		app.Get("/metrics", cfg.MetricsHandler)
	}

	api := app.Group("/api/v1", cfg.AuthMiddleware.Handle)
	api.Post("/tickets", cfg.Tickets.CreateTicket)
	api.Get("/tickets", cfg.Tickets.ListTickets)
	api.Get("/tickets/:id", cfg.Tickets.GetTicket)
	api.Post("/tickets/:id/interactions", cfg.Tickets.LogInteraction)

	admin := api.Group("", auth.RequireRole(auth.RoleAgent, auth.RoleAdmin))
	admin.Get("/contracts/:id", cfg.Contracts.GetContract)
	admin.Get("/calendars/:id", cfg.Contracts.GetCalendar)
}
