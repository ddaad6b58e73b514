package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/LuisSinastre/ServiceDesk-Backend/internal/domain"
)

// CatalogRepository reads the static ticket-type catalog: which workflows
// exist for a role and which sequences a new ticket inherits.
type CatalogRepository interface {
	GetEntry(ctx context.Context, role domain.Role, motiveSubmotive string) (*domain.CatalogEntry, error)
	ListForRole(ctx context.Context, role domain.Role) ([]domain.CatalogEntry, error)
}

type catalogRepository struct {
	q Querier
}

// NewCatalogRepository instantiates repository.
func NewCatalogRepository(q Querier) CatalogRepository {
	return &catalogRepository{q: q}
}

const catalogColumns = `profile, ticket_type, submotive, motive_submotive, form, approval_sequence, treatment_sequence`

func (r *catalogRepository) GetEntry(ctx context.Context, role domain.Role, motiveSubmotive string) (*domain.CatalogEntry, error) {
	query := `SELECT ` + catalogColumns + ` FROM ticket_types WHERE profile=$1 AND motive_submotive=$2`
	var entry domain.CatalogEntry
	var approvalSeq, treatmentSeq []int64
	if err := r.q.QueryRow(ctx, query, role, motiveSubmotive).Scan(
		&entry.Role,
		&entry.TicketType,
		&entry.Submotive,
		&entry.MotiveSubmotive,
		&entry.Form,
		&approvalSeq,
		&treatmentSeq,
	); err != nil {
		return nil, err
	}
	entry.ApprovalSequence = domain.Sequence(approvalSeq)
	entry.TreatmentSequence = domain.Sequence(treatmentSeq)
	if err := entry.ApprovalSequence.Validate(); err != nil {
		return nil, fmt.Errorf("catalog %s/%s approval sequence: %w", role, motiveSubmotive, err)
	}
	if err := entry.TreatmentSequence.Validate(); err != nil {
		return nil, fmt.Errorf("catalog %s/%s treatment sequence: %w", role, motiveSubmotive, err)
	}
	return &entry, nil
}

func (r *catalogRepository) ListForRole(ctx context.Context, role domain.Role) ([]domain.CatalogEntry, error) {
	query := `SELECT ` + catalogColumns + ` FROM ticket_types WHERE profile=$1 ORDER BY ticket_type, submotive`
	rows, err := r.q.Query(ctx, query, role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCatalogEntries(rows)
}

func scanCatalogEntries(rows pgx.Rows) ([]domain.CatalogEntry, error) {
	var result []domain.CatalogEntry
	for rows.Next() {
		var entry domain.CatalogEntry
		var approvalSeq, treatmentSeq []int64
		if err := rows.Scan(
			&entry.Role,
			&entry.TicketType,
			&entry.Submotive,
			&entry.MotiveSubmotive,
			&entry.Form,
			&approvalSeq,
			&treatmentSeq,
		); err != nil {
			return nil, err
		}
		entry.ApprovalSequence = domain.Sequence(approvalSeq)
		entry.TreatmentSequence = domain.Sequence(treatmentSeq)
		result = append(result, entry)
	}
	return result, rows.Err()
}
