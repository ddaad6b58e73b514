package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/LuisSinastre/ServiceDesk-Backend/internal/api/http/handlers"
	"github.com/LuisSinastre/ServiceDesk-Backend/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Catalog        *handlers.CatalogHandler
	Tickets        *handlers.TicketsHandler
	Approvals      *handlers.ApprovalsHandler
	Treatment      *handlers.TreatmentHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/login", cfg.Auth.Login)

	protected := app.Group("", cfg.AuthMiddleware.Handle)
	protected.Post("/register_user", cfg.Auth.RegisterAccount)
	protected.Get("/ticket_types", cfg.Catalog.TicketTypes)
	protected.Post("/open_ticket", cfg.Tickets.OpenTicket)
	protected.Get("/list_tickets", cfg.Tickets.ListTickets)
	protected.Get("/ticket_detail/:ticket_number", cfg.Tickets.TicketDetail)

	approvals := protected.Group("", auth.RequireApprover())
	approvals.Get("/pending_approvals", cfg.Approvals.PendingApprovals)
	approvals.Post("/approve_ticket/:ticket_number", cfg.Approvals.ApproveTicket)
	approvals.Post("/reject_ticket/:ticket_number", cfg.Approvals.RejectTicket)
	approvals.Get("/get_rejection_reasons", cfg.Catalog.RejectionReasons)

	treatment := protected.Group("", auth.RequireHandler())
	treatment.Get("/processing_tickets", cfg.Treatment.ProcessingTickets)
	treatment.Post("/treat_ticket/:ticket_number", cfg.Treatment.TreatTicket)
	treatment.Post("/cancel_ticket/:ticket_number", cfg.Treatment.CancelTicket)
	treatment.Get("/get_cancel_reasons", cfg.Catalog.CancellationReasons)
}
