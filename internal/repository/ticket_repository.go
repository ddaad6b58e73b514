package repository

import (
	"fmt"
	"strconv"
	"strings"

	"context"

	"github.com/jackc/pgx/v5"

	"github.com/LuisSinastre/ServiceDesk-Backend/internal/domain"
)

// TicketRepository encapsulates ticket persistence. Tickets are permanent
// audit records; there is no delete.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	GetByNumber(ctx context.Context, number int64) (*domain.Ticket, error)
	GetForUpdate(ctx context.Context, number int64) (*domain.Ticket, error)
	UpdateProgress(ctx context.Context, ticket *domain.Ticket) error
	ListWithScope(ctx context.Context, scope domain.TicketScope, search string) ([]domain.Ticket, error)
	ListPendingApprovals(ctx context.Context, approverID int64, managerName string) ([]domain.Ticket, error)
	ListPendingTreatments(ctx context.Context, treatmentID int64) ([]domain.Ticket, error)
}

type ticketRepository struct {
	q Querier
}

// NewTicketRepository instantiates repository bound to a pool or transaction.
func NewTicketRepository(q Querier) TicketRepository {
	return &ticketRepository{q: q}
}

const ticketColumns = `ticket_number, ticket_type, submotive, motive_submotive, form,
               requester_id, requester_name, manager_name, ticket_status,
               approval_sequence, next_approver, treatment_sequence, next_treatment,
               treatment_observation, rejection_reason, cancellation_reason,
               open_date_time, close_date_time`

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO tickets (ticket_type, submotive, motive_submotive, form,
            requester_id, requester_name, manager_name, ticket_status,
            approval_sequence, next_approver, treatment_sequence, next_treatment,
            treatment_observation, open_date_time, close_date_time)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
        RETURNING ticket_number`
	return r.q.QueryRow(ctx, query,
		ticket.TicketType,
		ticket.Submotive,
		ticket.MotiveSubmotive,
		ticket.Form,
		ticket.RequesterID,
		ticket.Requester,
		ticket.Manager,
		ticket.Status,
		[]int64(ticket.ApprovalSequence),
		ticket.NextApprover,
		[]int64(ticket.TreatmentSequence),
		ticket.NextTreatment,
		ticket.Observations,
		ticket.OpenedAt,
		ticket.ClosedAt,
	).Scan(&ticket.Number)
}

func (r *ticketRepository) GetByNumber(ctx context.Context, number int64) (*domain.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE ticket_number=$1`
	return r.fetchSingle(ctx, query, number)
}

// GetForUpdate locks the ticket row for the duration of the enclosing
// transaction. Callers must be inside TxManager.InTx.
func (r *ticketRepository) GetForUpdate(ctx context.Context, number int64) (*domain.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE ticket_number=$1 FOR UPDATE`
	return r.fetchSingle(ctx, query, number)
}

func (r *ticketRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Ticket, error) {
	var ticket domain.Ticket
	var approvalSeq, treatmentSeq []int64
	if err := r.q.QueryRow(ctx, query, arg).Scan(
		&ticket.Number,
		&ticket.TicketType,
		&ticket.Submotive,
		&ticket.MotiveSubmotive,
		&ticket.Form,
		&ticket.RequesterID,
		&ticket.Requester,
		&ticket.Manager,
		&ticket.Status,
		&approvalSeq,
		&ticket.NextApprover,
		&treatmentSeq,
		&ticket.NextTreatment,
		&ticket.Observations,
		&ticket.RejectionReason,
		&ticket.CancellationReason,
		&ticket.OpenedAt,
		&ticket.ClosedAt,
	); err != nil {
		return nil, err
	}
	ticket.ApprovalSequence = domain.Sequence(approvalSeq)
	ticket.TreatmentSequence = domain.Sequence(treatmentSeq)
	if err := ticket.ApprovalSequence.Validate(); err != nil {
		return nil, fmt.Errorf("ticket %d approval sequence: %w", ticket.Number, err)
	}
	if err := ticket.TreatmentSequence.Validate(); err != nil {
		return nil, fmt.Errorf("ticket %d treatment sequence: %w", ticket.Number, err)
	}
	return &ticket, nil
}

// UpdateProgress persists the mutable lifecycle fields. Classification, form
// and sequences never change after open.
func (r *ticketRepository) UpdateProgress(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        UPDATE tickets SET ticket_status=$1, next_approver=$2, next_treatment=$3,
            treatment_observation=$4, rejection_reason=$5, cancellation_reason=$6,
            close_date_time=$7
        WHERE ticket_number=$8`
	cmd, err := r.q.Exec(ctx, query,
		ticket.Status,
		ticket.NextApprover,
		ticket.NextTreatment,
		ticket.Observations,
		ticket.RejectionReason,
		ticket.CancellationReason,
		ticket.ClosedAt,
		ticket.Number,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ticketRepository) ListWithScope(ctx context.Context, scope domain.TicketScope, search string) ([]domain.Ticket, error) {
	base := `SELECT ` + ticketColumns + ` FROM tickets`
	clauses := []string{"1=1"}
	args := []any{}

	switch {
	case scope.All:
	case scope.ManagerName != "":
		args = append(args, scope.ManagerName, scope.RequesterID)
		clauses = append(clauses, fmt.Sprintf("(manager_name=$%d OR requester_id=$%d)", len(args)-1, len(args)))
	default:
		args = append(args, scope.RequesterID)
		clauses = append(clauses, fmt.Sprintf("requester_id=$%d", len(args)))
	}

	if term := strings.TrimSpace(search); term != "" {
		like := "%" + strings.ToLower(term) + "%"
		if number, err := strconv.ParseInt(term, 10, 64); err == nil {
			args = append(args, number, like)
			clauses = append(clauses, fmt.Sprintf(
				"(ticket_number=$%d OR LOWER(ticket_type) LIKE $%d OR LOWER(submotive) LIKE $%d)",
				len(args)-1, len(args), len(args)))
		} else {
			args = append(args, like)
			clauses = append(clauses, fmt.Sprintf(
				"(LOWER(ticket_type) LIKE $%d OR LOWER(submotive) LIKE $%d)",
				len(args), len(args)))
		}
	}

	query := fmt.Sprintf("%s WHERE %s ORDER BY ticket_number DESC", base, strings.Join(clauses, " AND "))
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.scanTickets(rows)
}

func (r *ticketRepository) ListPendingApprovals(ctx context.Context, approverID int64, managerName string) ([]domain.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE next_approver=$1`
	args := []any{approverID}
	if managerName != "" {
		query += ` AND manager_name=$2`
		args = append(args, managerName)
	}
	query += ` ORDER BY ticket_number`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.scanTickets(rows)
}

func (r *ticketRepository) ListPendingTreatments(ctx context.Context, treatmentID int64) ([]domain.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE next_treatment=$1 ORDER BY ticket_number`
	rows, err := r.q.Query(ctx, query, treatmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.scanTickets(rows)
}

func (r *ticketRepository) scanTickets(rows pgx.Rows) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for rows.Next() {
		var ticket domain.Ticket
		var approvalSeq, treatmentSeq []int64
		if err := rows.Scan(
			&ticket.Number,
			&ticket.TicketType,
			&ticket.Submotive,
			&ticket.MotiveSubmotive,
			&ticket.Form,
			&ticket.RequesterID,
			&ticket.Requester,
			&ticket.Manager,
			&ticket.Status,
			&approvalSeq,
			&ticket.NextApprover,
			&treatmentSeq,
			&ticket.NextTreatment,
			&ticket.Observations,
			&ticket.RejectionReason,
			&ticket.CancellationReason,
			&ticket.OpenedAt,
			&ticket.ClosedAt,
		); err != nil {
			return nil, err
		}
		ticket.ApprovalSequence = domain.Sequence(approvalSeq)
		ticket.TreatmentSequence = domain.Sequence(treatmentSeq)
		result = append(result, ticket)
	}
	return result, rows.Err()
}
