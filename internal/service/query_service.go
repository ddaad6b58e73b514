package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/LuisSinastre/ServiceDesk-Backend/internal/auth"
	"github.com/LuisSinastre/ServiceDesk-Backend/internal/domain"
	"github.com/LuisSinastre/ServiceDesk-Backend/internal/repository"
	apperrors "github.com/LuisSinastre/ServiceDesk-Backend/pkg/util"
)

// QueryService answers the read side: listings, detail views and work queues,
// all filtered by the caller's role-derived visibility.
type QueryService struct {
	tickets repository.TicketRepository
}

// QueryDependencies bundles collaborators for QueryService.
type QueryDependencies struct {
	TicketRepo repository.TicketRepository
}

// NewQueryService constructs the service.
func NewQueryService(deps QueryDependencies) *QueryService {
	return &QueryService{tickets: deps.TicketRepo}
}

// List returns the tickets visible to the caller, optionally narrowed by a
// search term matching the ticket number or classification text.
func (s *QueryService) List(ctx context.Context, claims *auth.Claims, search string) ([]domain.Ticket, error) {
	scope := claims.Profile.Scope(claims.UserID, claims.Name)
	result, err := s.tickets.ListWithScope(ctx, scope, strings.TrimSpace(search))
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return result, nil
}

// Detail returns one ticket. A ticket outside the caller's visibility reads
// as NOT_FOUND so its existence is never disclosed.
func (s *QueryService) Detail(ctx context.Context, claims *auth.Claims, ticketNumber int64) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByNumber(ctx, ticketNumber)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_number": ticketNumber})
		}
		return nil, apperrors.MapError(err)
	}
	if !claims.Profile.CanView(claims.UserID, claims.Name, ticket) {
		return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_number": ticketNumber})
	}
	return ticket, nil
}

// PendingApprovals returns tickets waiting on the caller's approver slot.
// Managers only see requests raised by their own reports.
func (s *QueryService) PendingApprovals(ctx context.Context, claims *auth.Claims) ([]domain.Ticket, error) {
	if claims.ApproverID == domain.SentinelNone {
		return nil, apperrors.NewForbidden("approver profile required")
	}
	managerName := ""
	if claims.Profile == domain.RoleManager {
		managerName = claims.Name
	}
	result, err := s.tickets.ListPendingApprovals(ctx, claims.ApproverID, managerName)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return result, nil
}

// PendingTreatments returns tickets whose treatment cursor points at the
// caller's handler slot.
func (s *QueryService) PendingTreatments(ctx context.Context, claims *auth.Claims) ([]domain.Ticket, error) {
	if claims.TreatmentID == domain.SentinelNone {
		return nil, apperrors.NewForbidden("treatment profile required")
	}
	result, err := s.tickets.ListPendingTreatments(ctx, claims.TreatmentID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return result, nil
}
