package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/LuisSinastre/ServiceDesk-Backend/internal/domain"
	"github.com/LuisSinastre/ServiceDesk-Backend/internal/repository"
)

// memStore backs the in-memory repository fakes shared by the service tests.
type memStore struct {
	tickets        map[int64]*domain.Ticket
	decisions      map[string]*domain.ApprovalDecision
	approverRoles  map[int64]domain.Role
	catalog        map[string]*domain.CatalogEntry
	nextNumber     int64
	nextDecisionID int64
}

func newMemStore() *memStore {
	return &memStore{
		tickets:       make(map[int64]*domain.Ticket),
		decisions:     make(map[string]*domain.ApprovalDecision),
		approverRoles: make(map[int64]domain.Role),
		catalog:       make(map[string]*domain.CatalogEntry),
	}
}

func decisionKey(ticketNumber, approverID int64) string {
	return fmt.Sprintf("%d|%d", ticketNumber, approverID)
}

func catalogKey(role domain.Role, motiveSubmotive string) string {
	return string(role) + "|" + motiveSubmotive
}

func cloneTicket(t *domain.Ticket) *domain.Ticket {
	out := *t
	out.ApprovalSequence = t.ApprovalSequence.Clone()
	out.TreatmentSequence = t.TreatmentSequence.Clone()
	if t.ClosedAt != nil {
		closed := *t.ClosedAt
		out.ClosedAt = &closed
	}
	return &out
}

type fakeTicketRepo struct {
	store *memStore
}

func (r *fakeTicketRepo) Create(_ context.Context, ticket *domain.Ticket) error {
	r.store.nextNumber++
	ticket.Number = r.store.nextNumber
	r.store.tickets[ticket.Number] = cloneTicket(ticket)
	return nil
}

func (r *fakeTicketRepo) GetByNumber(_ context.Context, number int64) (*domain.Ticket, error) {
	ticket, ok := r.store.tickets[number]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return cloneTicket(ticket), nil
}

func (r *fakeTicketRepo) GetForUpdate(ctx context.Context, number int64) (*domain.Ticket, error) {
	return r.GetByNumber(ctx, number)
}

func (r *fakeTicketRepo) UpdateProgress(_ context.Context, ticket *domain.Ticket) error {
	stored, ok := r.store.tickets[ticket.Number]
	if !ok {
		return pgx.ErrNoRows
	}
	stored.Status = ticket.Status
	stored.NextApprover = ticket.NextApprover
	stored.NextTreatment = ticket.NextTreatment
	stored.Observations = ticket.Observations
	stored.RejectionReason = ticket.RejectionReason
	stored.CancellationReason = ticket.CancellationReason
	if ticket.ClosedAt != nil {
		closed := *ticket.ClosedAt
		stored.ClosedAt = &closed
	} else {
		stored.ClosedAt = nil
	}
	return nil
}

func (r *fakeTicketRepo) ListWithScope(_ context.Context, scope domain.TicketScope, search string) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for _, ticket := range r.store.tickets {
		switch {
		case scope.All:
		case scope.ManagerName != "":
			if ticket.Manager != scope.ManagerName && ticket.RequesterID != scope.RequesterID {
				continue
			}
		default:
			if ticket.RequesterID != scope.RequesterID {
				continue
			}
		}
		if search != "" && !strings.Contains(strings.ToLower(ticket.TicketType), strings.ToLower(search)) {
			continue
		}
		result = append(result, *cloneTicket(ticket))
	}
	return result, nil
}

func (r *fakeTicketRepo) ListPendingApprovals(_ context.Context, approverID int64, managerName string) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for _, ticket := range r.store.tickets {
		if ticket.NextApprover != approverID {
			continue
		}
		if managerName != "" && ticket.Manager != managerName {
			continue
		}
		result = append(result, *cloneTicket(ticket))
	}
	return result, nil
}

func (r *fakeTicketRepo) ListPendingTreatments(_ context.Context, treatmentID int64) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for _, ticket := range r.store.tickets {
		if ticket.NextTreatment != treatmentID {
			continue
		}
		result = append(result, *cloneTicket(ticket))
	}
	return result, nil
}

type fakeApprovalRepo struct {
	store *memStore
}

func (r *fakeApprovalRepo) GetDecision(_ context.Context, ticketNumber, approverID int64) (*domain.ApprovalDecision, error) {
	decision, ok := r.store.decisions[decisionKey(ticketNumber, approverID)]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *decision
	return &copied, nil
}

func (r *fakeApprovalRepo) Record(_ context.Context, decision *domain.ApprovalDecision) error {
	key := decisionKey(decision.TicketNumber, decision.ApproverID)
	if _, exists := r.store.decisions[key]; exists {
		return fmt.Errorf("duplicate decision for %s", key)
	}
	r.store.nextDecisionID++
	decision.ID = r.store.nextDecisionID
	copied := *decision
	r.store.decisions[key] = &copied
	return nil
}

type fakeProfileRepo struct {
	store *memStore
}

func (r *fakeProfileRepo) RoleForApprover(_ context.Context, approverID int64) (domain.Role, error) {
	role, ok := r.store.approverRoles[approverID]
	if !ok {
		return "", pgx.ErrNoRows
	}
	return role, nil
}

type fakeCatalogRepo struct {
	store *memStore
}

func (r *fakeCatalogRepo) GetEntry(_ context.Context, role domain.Role, motiveSubmotive string) (*domain.CatalogEntry, error) {
	entry, ok := r.store.catalog[catalogKey(role, motiveSubmotive)]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *entry
	copied.ApprovalSequence = entry.ApprovalSequence.Clone()
	copied.TreatmentSequence = entry.TreatmentSequence.Clone()
	return &copied, nil
}

func (r *fakeCatalogRepo) ListForRole(_ context.Context, role domain.Role) ([]domain.CatalogEntry, error) {
	var result []domain.CatalogEntry
	for key, entry := range r.store.catalog {
		if !strings.HasPrefix(key, string(role)+"|") {
			continue
		}
		result = append(result, *entry)
	}
	return result, nil
}

type fakeTxManager struct {
	store *memStore
}

func (m *fakeTxManager) InTx(ctx context.Context, fn func(ctx context.Context, r repository.Repos) error) error {
	return fn(ctx, repository.Repos{
		Tickets:   &fakeTicketRepo{store: m.store},
		Approvals: &fakeApprovalRepo{store: m.store},
		Profiles:  &fakeProfileRepo{store: m.store},
	})
}
