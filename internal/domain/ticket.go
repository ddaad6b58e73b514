package domain

import (
	"fmt"
	"time"
)

// TicketStatus is the human-readable lifecycle label stored on the ticket.
// Awaiting-approval states are parameterized by the pending approver's role
// via AwaitingApprovalStatus.
type TicketStatus string

const (
	TicketStatusOpen      TicketStatus = "Open"
	TicketStatusConcluded TicketStatus = "Concluded"
	TicketStatusRejected  TicketStatus = "Rejected"
	TicketStatusCanceled  TicketStatus = "Canceled"

	awaitingApprovalPrefix = "Awaiting Approval - "
)

// AwaitingApprovalStatus builds the status label for a pending approver role.
func AwaitingApprovalStatus(role string) TicketStatus {
	return TicketStatus(awaitingApprovalPrefix + role)
}

// IsTerminal reports whether the status ends the lifecycle.
func (s TicketStatus) IsTerminal() bool {
	return s == TicketStatusConcluded || s == TicketStatusRejected || s == TicketStatusCanceled
}

// FormDocument is the opaque structured form captured at open time.
type FormDocument map[string]any

// Ticket is the aggregate for one service request. Sequences are immutable
// after open; only the cursor fields advance. Rows are never deleted.
type Ticket struct {
	Number          int64
	TicketType      string
	Submotive       string
	MotiveSubmotive string
	Form            FormDocument

	RequesterID int64
	Requester   string
	Manager     string

	Status            TicketStatus
	ApprovalSequence  Sequence
	NextApprover      int64
	TreatmentSequence Sequence
	NextTreatment     int64

	Observations       string
	RejectionReason    string
	CancellationReason string

	OpenedAt time.Time
	ClosedAt *time.Time
}

// IsTerminal reports whether the ticket reached a final state.
func (t *Ticket) IsTerminal() bool {
	return t.Status.IsTerminal()
}

// AppendObservation adds one timestamped, actor-tagged line to the append-only
// treatment log. Prior entries are never rewritten.
func (t *Ticket) AppendObservation(at time.Time, handlerID int64, actorName string, role Role, text string) {
	entry := fmt.Sprintf("[%s] handler %d %s (%s): %s", at.Format("2006-01-02 15:04"), handlerID, actorName, role, text)
	if t.Observations == "" {
		t.Observations = entry
		return
	}
	t.Observations += "\n" + entry
}
