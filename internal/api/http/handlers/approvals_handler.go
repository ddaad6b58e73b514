package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/LuisSinastre/ServiceDesk-Backend/internal/api/dto"
	"github.com/LuisSinastre/ServiceDesk-Backend/internal/auth"
	"github.com/LuisSinastre/ServiceDesk-Backend/internal/service"
	apperrors "github.com/LuisSinastre/ServiceDesk-Backend/pkg/util"
)

// ApprovalsHandler serves the approver work queue and decisions.
type ApprovalsHandler struct {
	lifecycle *service.LifecycleService
	queries   *service.QueryService
}

// NewApprovalsHandler constructs handler.
func NewApprovalsHandler(lifecycle *service.LifecycleService, queries *service.QueryService) *ApprovalsHandler {
	return &ApprovalsHandler{lifecycle: lifecycle, queries: queries}
}

// PendingApprovals GET /pending_approvals.
func (h *ApprovalsHandler) PendingApprovals(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	tickets, err := h.queries.PendingApprovals(c.UserContext(), claims)
	if err != nil {
		return err
	}
	items := make([]dto.TicketSummary, 0, len(tickets))
	for i := range tickets {
		items = append(items, ticketSummary(&tickets[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// ApproveTicket POST /approve_ticket/:ticket_number.
func (h *ApprovalsHandler) ApproveTicket(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	number, err := parseTicketNumber(c)
	if err != nil {
		return err
	}

	result, err := h.lifecycle.Approve(c.UserContext(), claims, number)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.ApprovalResponse{
		TicketNumber:    result.TicketNumber,
		Status:          result.Status,
		NextApprover:    result.NextApprover,
		NextTreatment:   result.NextTreatment,
		AlreadyApproved: result.AlreadyApproved,
	}})
}

// RejectTicket POST /reject_ticket/:ticket_number.
func (h *ApprovalsHandler) RejectTicket(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	number, err := parseTicketNumber(c)
	if err != nil {
		return err
	}
	var req dto.RejectTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	result, err := h.lifecycle.Reject(c.UserContext(), claims, number, req.RejectionReason)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.RejectionResponse{
		TicketNumber:    result.TicketNumber,
		Status:          result.Status,
		AlreadyRejected: result.AlreadyRejected,
	}})
}
