package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/LuisSinastre/ServiceDesk-Backend/internal/api/dto"
	"github.com/LuisSinastre/ServiceDesk-Backend/internal/auth"
	"github.com/LuisSinastre/ServiceDesk-Backend/internal/domain"
	"github.com/LuisSinastre/ServiceDesk-Backend/internal/service"
	apperrors "github.com/LuisSinastre/ServiceDesk-Backend/pkg/util"
)

// TicketsHandler serves submission and read endpoints.
type TicketsHandler struct {
	lifecycle *service.LifecycleService
	queries   *service.QueryService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(lifecycle *service.LifecycleService, queries *service.QueryService) *TicketsHandler {
	return &TicketsHandler{lifecycle: lifecycle, queries: queries}
}

// OpenTicket POST /open_ticket.
func (h *TicketsHandler) OpenTicket(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.OpenTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	number, err := h.lifecycle.OpenTicket(c.UserContext(), claims, service.OpenTicketInput{
		TicketType:      req.TicketType,
		Submotive:       req.Submotive,
		MotiveSubmotive: req.MotiveSubmotive,
		Form:            req.Form,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": fiber.Map{"ticket_number": number}})
}

// ListTickets GET /list_tickets.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	tickets, err := h.queries.List(c.UserContext(), claims, c.Query("search"))
	if err != nil {
		return err
	}

	items := make([]dto.TicketSummary, 0, len(tickets))
	for i := range tickets {
		items = append(items, ticketSummary(&tickets[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// TicketDetail GET /ticket_detail/:ticket_number.
func (h *TicketsHandler) TicketDetail(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	number, err := parseTicketNumber(c)
	if err != nil {
		return err
	}

	ticket, err := h.queries.Detail(c.UserContext(), claims, number)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketDetail(ticket)})
}

func parseTicketNumber(c *fiber.Ctx) (int64, error) {
	raw := c.Params("ticket_number")
	number, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || number <= 0 {
		return 0, apperrors.NewValidationError("invalid ticket number", map[string]any{"ticket_number": raw})
	}
	return number, nil
}

func ticketSummary(ticket *domain.Ticket) dto.TicketSummary {
	return dto.TicketSummary{
		TicketNumber:    ticket.Number,
		TicketType:      ticket.TicketType,
		Submotive:       ticket.Submotive,
		MotiveSubmotive: ticket.MotiveSubmotive,
		Requester:       ticket.Requester,
		Status:          ticket.Status,
		OpenedAt:        ticket.OpenedAt,
	}
}

func ticketDetail(ticket *domain.Ticket) dto.TicketDetailResponse {
	return dto.TicketDetailResponse{
		TicketNumber:       ticket.Number,
		TicketType:         ticket.TicketType,
		Submotive:          ticket.Submotive,
		MotiveSubmotive:    ticket.MotiveSubmotive,
		Form:               ticket.Form,
		RequesterID:        ticket.RequesterID,
		Requester:          ticket.Requester,
		Manager:            ticket.Manager,
		Status:             ticket.Status,
		ApprovalSequence:   []int64(ticket.ApprovalSequence),
		NextApprover:       ticket.NextApprover,
		TreatmentSequence:  []int64(ticket.TreatmentSequence),
		NextTreatment:      ticket.NextTreatment,
		Observations:       ticket.Observations,
		RejectionReason:    ticket.RejectionReason,
		CancellationReason: ticket.CancellationReason,
		OpenedAt:           ticket.OpenedAt,
		ClosedAt:           ticket.ClosedAt,
	}
}
