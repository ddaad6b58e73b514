package repository

import (
	"context"

	"github.com/LuisSinastre/ServiceDesk-Backend/internal/domain"
)

// ApprovalRepository persists write-once approval/rejection decision rows.
// The UNIQUE (ticket_number, approver_id) constraint backs the idempotence
// guarantee under concurrency.
type ApprovalRepository interface {
	GetDecision(ctx context.Context, ticketNumber, approverID int64) (*domain.ApprovalDecision, error)
	Record(ctx context.Context, decision *domain.ApprovalDecision) error
}

type approvalRepository struct {
	q Querier
}

// NewApprovalRepository instantiates repository bound to a pool or transaction.
func NewApprovalRepository(q Querier) ApprovalRepository {
	return &approvalRepository{q: q}
}

func (r *approvalRepository) GetDecision(ctx context.Context, ticketNumber, approverID int64) (*domain.ApprovalDecision, error) {
	const query = `
        SELECT id, ticket_number, approver_id, approver_profile, decision, decided_at
        FROM ticket_approvals WHERE ticket_number=$1 AND approver_id=$2`

	var decision domain.ApprovalDecision
	if err := r.q.QueryRow(ctx, query, ticketNumber, approverID).Scan(
		&decision.ID,
		&decision.TicketNumber,
		&decision.ApproverID,
		&decision.Role,
		&decision.Kind,
		&decision.DecidedAt,
	); err != nil {
		return nil, err
	}
	return &decision, nil
}

func (r *approvalRepository) Record(ctx context.Context, decision *domain.ApprovalDecision) error {
	const query = `
        INSERT INTO ticket_approvals (ticket_number, approver_id, approver_profile, decision, decided_at)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id`
	return r.q.QueryRow(ctx, query,
		decision.TicketNumber,
		decision.ApproverID,
		decision.Role,
		decision.Kind,
		decision.DecidedAt,
	).Scan(&decision.ID)
}
