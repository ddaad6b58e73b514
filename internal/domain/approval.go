package domain

import "time"

// DecisionKind distinguishes the two write-once approval row variants.
type DecisionKind string

const (
	DecisionApproved DecisionKind = "APPROVED"
	DecisionRejected DecisionKind = "REJECTED"
)

// ApprovalDecision is one (ticket, approver) row. Written exactly once when
// the approver acts; re-read afterwards only for idempotence checks and audit.
type ApprovalDecision struct {
	ID           int64
	TicketNumber int64
	ApproverID   int64
	Role         Role
	Kind         DecisionKind
	DecidedAt    time.Time
}
