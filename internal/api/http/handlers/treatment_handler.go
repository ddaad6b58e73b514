package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/LuisSinastre/ServiceDesk-Backend/internal/api/dto"
	"github.com/LuisSinastre/ServiceDesk-Backend/internal/auth"
	"github.com/LuisSinastre/ServiceDesk-Backend/internal/service"
	apperrors "github.com/LuisSinastre/ServiceDesk-Backend/pkg/util"
)

// TreatmentHandler serves the handler work queue, treatment and cancellation.
type TreatmentHandler struct {
	lifecycle *service.LifecycleService
	queries   *service.QueryService
}

// NewTreatmentHandler constructs handler.
func NewTreatmentHandler(lifecycle *service.LifecycleService, queries *service.QueryService) *TreatmentHandler {
	return &TreatmentHandler{lifecycle: lifecycle, queries: queries}
}

// ProcessingTickets GET /processing_tickets.
func (h *TreatmentHandler) ProcessingTickets(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	tickets, err := h.queries.PendingTreatments(c.UserContext(), claims)
	if err != nil {
		return err
	}
	items := make([]dto.TicketSummary, 0, len(tickets))
	for i := range tickets {
		items = append(items, ticketSummary(&tickets[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// TreatTicket POST /treat_ticket/:ticket_number.
func (h *TreatmentHandler) TreatTicket(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	number, err := parseTicketNumber(c)
	if err != nil {
		return err
	}
	var req dto.TreatTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	result, err := h.lifecycle.Treat(c.UserContext(), claims, number, req.TreatmentObservation)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.TreatmentResponse{
		TicketNumber:  result.TicketNumber,
		Status:        result.Status,
		NextTreatment: result.NextTreatment,
	}})
}

// CancelTicket POST /cancel_ticket/:ticket_number.
func (h *TreatmentHandler) CancelTicket(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	number, err := parseTicketNumber(c)
	if err != nil {
		return err
	}
	var req dto.CancelTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	result, err := h.lifecycle.Cancel(c.UserContext(), claims, number, req.CancellationReason)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.TreatmentResponse{
		TicketNumber:  result.TicketNumber,
		Status:        result.Status,
		NextTreatment: result.NextTreatment,
	}})
}
