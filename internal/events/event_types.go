package events

import (
	"time"

	"github.com/LuisSinastre/ServiceDesk-Backend/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketOpened    EventType = "ticket_opened"
	EventTicketApproved  EventType = "ticket_approved"
	EventTicketRejected  EventType = "ticket_rejected"
	EventTicketTreated   EventType = "ticket_treated"
	EventTicketConcluded EventType = "ticket_concluded"
	EventTicketCanceled  EventType = "ticket_canceled"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	UserID      int64       `json:"user_id"`
	Name        string      `json:"name"`
	Role        domain.Role `json:"role"`
	ApproverID  int64       `json:"approver_id,omitempty"`
	TreatmentID int64       `json:"treatment_id,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID           string      `json:"id"`
	Type         EventType   `json:"type"`
	TicketNumber int64       `json:"ticket_number"`
	Actor        Actor       `json:"actor"`
	Timestamp    time.Time   `json:"timestamp"`
	Payload      interface{} `json:"payload"`
}

// TicketOpenedPayload payload.
type TicketOpenedPayload struct {
	TicketType      string              `json:"ticket_type"`
	MotiveSubmotive string              `json:"motive_submotive"`
	Status          domain.TicketStatus `json:"status"`
	NextApprover    int64               `json:"next_approver"`
}

// ApprovalAdvancedPayload payload for approvals.
type ApprovalAdvancedPayload struct {
	NextApprover  int64               `json:"next_approver"`
	NextTreatment int64               `json:"next_treatment"`
	Status        domain.TicketStatus `json:"status"`
}

// TicketTerminatedPayload payload for reject/conclude/cancel.
type TicketTerminatedPayload struct {
	Status domain.TicketStatus `json:"status"`
	Reason string              `json:"reason,omitempty"`
}

// TreatmentAdvancedPayload payload for treatment steps.
type TreatmentAdvancedPayload struct {
	NextTreatment int64               `json:"next_treatment"`
	Status        domain.TicketStatus `json:"status"`
}
