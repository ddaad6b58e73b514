package dto

import (
	"time"

	"github.com/LuisSinastre/ServiceDesk-Backend/internal/domain"
)

// OpenTicketRequest payload.
type OpenTicketRequest struct {
	TicketType      string              `json:"ticket_type"`
	Submotive       string              `json:"submotive"`
	MotiveSubmotive string              `json:"motive_submotive"`
	Form            domain.FormDocument `json:"form"`
}

// RejectTicketRequest payload.
type RejectTicketRequest struct {
	RejectionReason string `json:"rejection_reason"`
}

// TreatTicketRequest payload.
type TreatTicketRequest struct {
	TreatmentObservation string `json:"treatment_observation"`
}

// CancelTicketRequest payload.
type CancelTicketRequest struct {
	CancellationReason string `json:"cancellation_reason"`
}

// TicketSummary is the listing row.
type TicketSummary struct {
	TicketNumber    int64               `json:"ticket_number"`
	TicketType      string              `json:"ticket_type"`
	Submotive       string              `json:"submotive"`
	MotiveSubmotive string              `json:"motive_submotive"`
	Requester       string              `json:"requester"`
	Status          domain.TicketStatus `json:"status"`
	OpenedAt        time.Time           `json:"open_date_time"`
}

// TicketDetailResponse is the full ticket view.
type TicketDetailResponse struct {
	TicketNumber       int64               `json:"ticket_number"`
	TicketType         string              `json:"ticket_type"`
	Submotive          string              `json:"submotive"`
	MotiveSubmotive    string              `json:"motive_submotive"`
	Form               domain.FormDocument `json:"form"`
	RequesterID        int64               `json:"requester_id"`
	Requester          string              `json:"requester"`
	Manager            string              `json:"manager"`
	Status             domain.TicketStatus `json:"status"`
	ApprovalSequence   []int64             `json:"approval_sequence"`
	NextApprover       int64               `json:"next_approver"`
	TreatmentSequence  []int64             `json:"treatment_sequence"`
	NextTreatment      int64               `json:"next_treatment"`
	Observations       string              `json:"treatment_observation"`
	RejectionReason    string              `json:"rejection_reason,omitempty"`
	CancellationReason string              `json:"cancellation_reason,omitempty"`
	OpenedAt           time.Time           `json:"open_date_time"`
	ClosedAt           *time.Time          `json:"close_date_time,omitempty"`
}

// ApprovalResponse reports an approve outcome.
type ApprovalResponse struct {
	TicketNumber    int64               `json:"ticket_number"`
	Status          domain.TicketStatus `json:"status"`
	NextApprover    int64               `json:"next_approver"`
	NextTreatment   int64               `json:"next_treatment"`
	AlreadyApproved bool                `json:"already_approved,omitempty"`
}

// RejectionResponse reports a reject outcome.
type RejectionResponse struct {
	TicketNumber    int64               `json:"ticket_number"`
	Status          domain.TicketStatus `json:"status"`
	AlreadyRejected bool                `json:"already_rejected,omitempty"`
}

// TreatmentResponse reports a treat or cancel outcome.
type TreatmentResponse struct {
	TicketNumber  int64               `json:"ticket_number"`
	Status        domain.TicketStatus `json:"status"`
	NextTreatment int64               `json:"next_treatment"`
}
