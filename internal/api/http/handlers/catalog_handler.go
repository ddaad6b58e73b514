package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/LuisSinastre/ServiceDesk-Backend/internal/api/dto"
	"github.com/LuisSinastre/ServiceDesk-Backend/internal/auth"
	"github.com/LuisSinastre/ServiceDesk-Backend/internal/service"
	apperrors "github.com/LuisSinastre/ServiceDesk-Backend/pkg/util"
)

// CatalogHandler serves the ticket-type catalog and reason lists.
type CatalogHandler struct {
	service *service.CatalogService
}

// NewCatalogHandler constructs handler.
func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: catalogService}
}

// TicketTypes GET /ticket_types.
func (h *CatalogHandler) TicketTypes(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	entries, err := h.service.ListForRole(c.UserContext(), claims.Profile)
	if err != nil {
		return err
	}

	items := make([]dto.CatalogEntryResponse, 0, len(entries))
	for _, entry := range entries {
		items = append(items, dto.CatalogEntryResponse{
			TicketType:      entry.TicketType,
			Submotive:       entry.Submotive,
			MotiveSubmotive: entry.MotiveSubmotive,
			Form:            entry.Form,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}

// RejectionReasons GET /get_rejection_reasons.
func (h *CatalogHandler) RejectionReasons(c *fiber.Ctx) error {
	reasons, err := h.service.RejectionReasons(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": reasons})
}

// CancellationReasons GET /get_cancel_reasons.
func (h *CatalogHandler) CancellationReasons(c *fiber.Ctx) error {
	reasons, err := h.service.CancellationReasons(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": reasons})
}
