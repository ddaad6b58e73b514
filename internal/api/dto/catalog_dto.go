package dto

import (
	"github.com/LuisSinastre/ServiceDesk-Backend/internal/domain"
)

// CatalogEntryResponse is one openable ticket type for the caller's role.
type CatalogEntryResponse struct {
	TicketType      string              `json:"ticket_type"`
	Submotive       string              `json:"submotive"`
	MotiveSubmotive string              `json:"motive_submotive"`
	Form            domain.FormDocument `json:"form"`
}
