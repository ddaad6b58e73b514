package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/LuisSinastre/ServiceDesk-Backend/internal/auth"
	"github.com/LuisSinastre/ServiceDesk-Backend/internal/domain"
	"github.com/LuisSinastre/ServiceDesk-Backend/internal/events"
	"github.com/LuisSinastre/ServiceDesk-Backend/internal/repository"
	apperrors "github.com/LuisSinastre/ServiceDesk-Backend/pkg/util"
)

// LifecycleService is the ticket state machine: it opens tickets, advances
// the approval and treatment sequences, and terminates the flow on rejection
// or cancellation. Every mutating operation runs its read-then-write inside
// one transaction so concurrent calls cannot double-advance a cursor.
type LifecycleService struct {
	tx         repository.TxManager
	catalog    repository.CatalogRepository
	profiles   repository.ProfileRepository
	dispatcher events.Dispatcher
	now        func() time.Time
}

// LifecycleDependencies bundles collaborators for the lifecycle engine.
type LifecycleDependencies struct {
	TxManager   repository.TxManager
	CatalogRepo repository.CatalogRepository
	ProfileRepo repository.ProfileRepository
	Dispatcher  events.Dispatcher
}

// NewLifecycleService constructs the service.
func NewLifecycleService(deps LifecycleDependencies) *LifecycleService {
	return &LifecycleService{
		tx:         deps.TxManager,
		catalog:    deps.CatalogRepo,
		profiles:   deps.ProfileRepo,
		dispatcher: deps.Dispatcher,
		now:        time.Now,
	}
}

// OpenTicketInput describes the open payload. The form is captured verbatim
// and never mutated afterwards.
type OpenTicketInput struct {
	TicketType      string
	Submotive       string
	MotiveSubmotive string
	Form            domain.FormDocument
}

// ApprovalResult reports the outcome of an approve call.
type ApprovalResult struct {
	TicketNumber    int64
	Status          domain.TicketStatus
	NextApprover    int64
	NextTreatment   int64
	AlreadyApproved bool
}

// RejectionResult reports the outcome of a reject call.
type RejectionResult struct {
	TicketNumber    int64
	Status          domain.TicketStatus
	AlreadyRejected bool
}

// TreatmentResult reports the outcome of a treat or cancel call.
type TreatmentResult struct {
	TicketNumber  int64
	Status        domain.TicketStatus
	NextTreatment int64
	Concluded     bool
}

// OpenTicket seeds a new ticket from the catalog workflow for the caller's
// role and classification. Fails hard when no workflow is defined.
func (s *LifecycleService) OpenTicket(ctx context.Context, claims *auth.Claims, input OpenTicketInput) (int64, error) {
	if strings.TrimSpace(input.TicketType) == "" || strings.TrimSpace(input.MotiveSubmotive) == "" {
		return 0, apperrors.NewValidationError("ticket_type and motive_submotive required", nil)
	}

	entry, err := s.catalog.GetEntry(ctx, claims.Profile, input.MotiveSubmotive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.NewCatalogMiss(string(claims.Profile), input.MotiveSubmotive)
		}
		return 0, apperrors.NewInternalError(err)
	}

	now := s.now()
	ticket := &domain.Ticket{
		TicketType:        input.TicketType,
		Submotive:         input.Submotive,
		MotiveSubmotive:   input.MotiveSubmotive,
		Form:              input.Form,
		RequesterID:       claims.UserID,
		Requester:         claims.Name,
		Manager:           claims.Manager,
		ApprovalSequence:  entry.ApprovalSequence.Clone(),
		TreatmentSequence: entry.TreatmentSequence.Clone(),
		OpenedAt:          now,
	}

	if first := ticket.ApprovalSequence.First(); first == domain.SentinelNone {
		// No approval required: the ticket is reachable by the treatment
		// queue right away, or immediately concluded when there is no
		// treatment step either.
		ticket.NextApprover = domain.SentinelNone
		if firstTreatment := ticket.TreatmentSequence.First(); firstTreatment == domain.SentinelNone {
			ticket.Status = domain.TicketStatusConcluded
			ticket.ClosedAt = &now
		} else {
			ticket.Status = domain.TicketStatusOpen
			ticket.NextTreatment = firstTreatment
		}
	} else {
		role, err := s.profiles.RoleForApprover(ctx, first)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return 0, apperrors.NewNotFound("approver profile", map[string]any{"approver_id": first})
			}
			return 0, apperrors.NewInternalError(err)
		}
		ticket.NextApprover = first
		ticket.Status = domain.AwaitingApprovalStatus(string(role))
	}

	if err := s.tx.InTx(ctx, func(ctx context.Context, r repository.Repos) error {
		return r.Tickets.Create(ctx, ticket)
	}); err != nil {
		return 0, apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:         events.EventTicketOpened,
		TicketNumber: ticket.Number,
		Actor:        claimsActor(claims),
		Payload: events.TicketOpenedPayload{
			TicketType:      ticket.TicketType,
			MotiveSubmotive: ticket.MotiveSubmotive,
			Status:          ticket.Status,
			NextApprover:    ticket.NextApprover,
		},
	})
	return ticket.Number, nil
}

// Approve records the caller's approval and advances the approval cursor.
// Approving the same ticket twice by the same approver is a no-op success.
func (s *LifecycleService) Approve(ctx context.Context, claims *auth.Claims, ticketNumber int64) (*ApprovalResult, error) {
	if claims.ApproverID == domain.SentinelNone {
		return nil, apperrors.NewForbidden("approver profile required")
	}

	result := &ApprovalResult{TicketNumber: ticketNumber}
	err := s.tx.InTx(ctx, func(ctx context.Context, r repository.Repos) error {
		ticket, err := r.Tickets.GetForUpdate(ctx, ticketNumber)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NewNotFound("ticket", map[string]any{"ticket_number": ticketNumber})
			}
			return err
		}

		decision, err := r.Approvals.GetDecision(ctx, ticketNumber, claims.ApproverID)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return err
		}
		if decision != nil && decision.Kind == domain.DecisionApproved {
			result.AlreadyApproved = true
			result.Status = ticket.Status
			result.NextApprover = ticket.NextApprover
			result.NextTreatment = ticket.NextTreatment
			return nil
		}

		if ticket.IsTerminal() {
			return apperrors.NewAlreadyTerminal(string(ticket.Status))
		}
		if !ticket.ApprovalSequence.Contains(claims.ApproverID) {
			return apperrors.NewNotInSequence("approver is not in this ticket's approval sequence")
		}
		if ticket.NextApprover != claims.ApproverID {
			return apperrors.NewNotCurrentHandler("approval is pending on another approver")
		}

		now := s.now()
		if err := r.Approvals.Record(ctx, &domain.ApprovalDecision{
			TicketNumber: ticketNumber,
			ApproverID:   claims.ApproverID,
			Role:         claims.Profile,
			Kind:         domain.DecisionApproved,
			DecidedAt:    now,
		}); err != nil {
			return err
		}

		next, _ := ticket.ApprovalSequence.After(claims.ApproverID)
		ticket.NextApprover = next
		if next == domain.SentinelNone {
			// Approval chain exhausted: hand off to treatment, or conclude
			// outright when no treatment step is configured.
			if firstTreatment := ticket.TreatmentSequence.First(); firstTreatment == domain.SentinelNone {
				ticket.Status = domain.TicketStatusConcluded
				ticket.ClosedAt = &now
			} else {
				ticket.Status = domain.TicketStatusOpen
				ticket.NextTreatment = firstTreatment
			}
		} else {
			role, err := r.Profiles.RoleForApprover(ctx, next)
			if err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return apperrors.NewNotFound("approver profile", map[string]any{"approver_id": next})
				}
				return err
			}
			ticket.Status = domain.AwaitingApprovalStatus(string(role))
		}

		if err := r.Tickets.UpdateProgress(ctx, ticket); err != nil {
			return err
		}
		result.Status = ticket.Status
		result.NextApprover = ticket.NextApprover
		result.NextTreatment = ticket.NextTreatment
		return nil
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	if !result.AlreadyApproved {
		s.publishEvent(ctx, events.Event{
			Type:         events.EventTicketApproved,
			TicketNumber: ticketNumber,
			Actor:        claimsActor(claims),
			Payload: events.ApprovalAdvancedPayload{
				NextApprover:  result.NextApprover,
				NextTreatment: result.NextTreatment,
				Status:        result.Status,
			},
		})
	}
	return result, nil
}

// Reject terminates the approval flow. Safe to call repeatedly by the same
// approver: the terminal fields are re-applied using the originally recorded
// decision time.
func (s *LifecycleService) Reject(ctx context.Context, claims *auth.Claims, ticketNumber int64, reason string) (*RejectionResult, error) {
	if claims.ApproverID == domain.SentinelNone {
		return nil, apperrors.NewForbidden("approver profile required")
	}
	if strings.TrimSpace(reason) == "" {
		return nil, apperrors.NewValidationError("rejection reason required", nil)
	}

	result := &RejectionResult{TicketNumber: ticketNumber}
	err := s.tx.InTx(ctx, func(ctx context.Context, r repository.Repos) error {
		ticket, err := r.Tickets.GetForUpdate(ctx, ticketNumber)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NewNotFound("ticket", map[string]any{"ticket_number": ticketNumber})
			}
			return err
		}

		decision, err := r.Approvals.GetDecision(ctx, ticketNumber, claims.ApproverID)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return err
		}

		if decision != nil && decision.Kind == domain.DecisionRejected {
			// Re-confirmation: re-apply the terminal fields with the original
			// decision time, never a second decision row.
			result.AlreadyRejected = true
			applyRejection(ticket, reason, decision.DecidedAt)
			result.Status = ticket.Status
			return r.Tickets.UpdateProgress(ctx, ticket)
		}
		if decision != nil {
			// The approver already approved; the decision row is write-once
			// and cannot flip.
			return apperrors.NewConflict("approver already approved this ticket", map[string]any{
				"ticket_number": ticketNumber,
			})
		}

		if ticket.IsTerminal() {
			return apperrors.NewAlreadyTerminal(string(ticket.Status))
		}
		if !ticket.ApprovalSequence.Contains(claims.ApproverID) {
			return apperrors.NewNotInSequence("approver is not in this ticket's approval sequence")
		}

		now := s.now()
		if err := r.Approvals.Record(ctx, &domain.ApprovalDecision{
			TicketNumber: ticketNumber,
			ApproverID:   claims.ApproverID,
			Role:         claims.Profile,
			Kind:         domain.DecisionRejected,
			DecidedAt:    now,
		}); err != nil {
			return err
		}

		applyRejection(ticket, reason, now)
		result.Status = ticket.Status
		return r.Tickets.UpdateProgress(ctx, ticket)
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	if !result.AlreadyRejected {
		s.publishEvent(ctx, events.Event{
			Type:         events.EventTicketRejected,
			TicketNumber: ticketNumber,
			Actor:        claimsActor(claims),
			Payload: events.TicketTerminatedPayload{
				Status: result.Status,
				Reason: reason,
			},
		})
	}
	return result, nil
}

// Treat appends a handling observation and advances the treatment cursor.
// The last treatment step concludes the ticket.
func (s *LifecycleService) Treat(ctx context.Context, claims *auth.Claims, ticketNumber int64, observation string) (*TreatmentResult, error) {
	if claims.TreatmentID == domain.SentinelNone {
		return nil, apperrors.NewForbidden("treatment profile required")
	}
	if strings.TrimSpace(observation) == "" {
		return nil, apperrors.NewValidationError("treatment observation required", nil)
	}

	result := &TreatmentResult{TicketNumber: ticketNumber}
	err := s.tx.InTx(ctx, func(ctx context.Context, r repository.Repos) error {
		ticket, err := r.Tickets.GetForUpdate(ctx, ticketNumber)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NewNotFound("ticket", map[string]any{"ticket_number": ticketNumber})
			}
			return err
		}

		if ticket.IsTerminal() {
			return apperrors.NewAlreadyTerminal(string(ticket.Status))
		}
		if ticket.NextApprover != domain.SentinelNone {
			return apperrors.NewDomainError("TICKET_NOT_IN_TREATMENT", "ticket is still awaiting approval", http.StatusConflict, nil)
		}
		if !ticket.TreatmentSequence.Contains(claims.TreatmentID) {
			return apperrors.NewNotInSequence("handler is not in this ticket's treatment sequence")
		}

		now := s.now()
		ticket.AppendObservation(now, claims.TreatmentID, claims.Name, claims.Profile, observation)

		next, _ := ticket.TreatmentSequence.After(claims.TreatmentID)
		ticket.NextTreatment = next
		if next == domain.SentinelNone {
			ticket.Status = domain.TicketStatusConcluded
			ticket.ClosedAt = &now
			result.Concluded = true
		}

		if err := r.Tickets.UpdateProgress(ctx, ticket); err != nil {
			return err
		}
		result.Status = ticket.Status
		result.NextTreatment = ticket.NextTreatment
		return nil
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	eventType := events.EventTicketTreated
	if result.Concluded {
		eventType = events.EventTicketConcluded
	}
	s.publishEvent(ctx, events.Event{
		Type:         eventType,
		TicketNumber: ticketNumber,
		Actor:        claimsActor(claims),
		Payload: events.TreatmentAdvancedPayload{
			NextTreatment: result.NextTreatment,
			Status:        result.Status,
		},
	})
	return result, nil
}

// Cancel terminates the treatment flow. Unlike Treat it demands the exact
// current handler, not mere sequence membership.
func (s *LifecycleService) Cancel(ctx context.Context, claims *auth.Claims, ticketNumber int64, reason string) (*TreatmentResult, error) {
	if claims.TreatmentID == domain.SentinelNone {
		return nil, apperrors.NewForbidden("treatment profile required")
	}
	if strings.TrimSpace(reason) == "" {
		return nil, apperrors.NewValidationError("cancellation reason required", nil)
	}

	result := &TreatmentResult{TicketNumber: ticketNumber}
	err := s.tx.InTx(ctx, func(ctx context.Context, r repository.Repos) error {
		ticket, err := r.Tickets.GetForUpdate(ctx, ticketNumber)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NewNotFound("ticket", map[string]any{"ticket_number": ticketNumber})
			}
			return err
		}

		if ticket.IsTerminal() {
			return apperrors.NewAlreadyTerminal(string(ticket.Status))
		}
		if ticket.NextTreatment != claims.TreatmentID {
			return apperrors.NewNotCurrentHandler("only the current handler may cancel")
		}

		now := s.now()
		ticket.AppendObservation(now, claims.TreatmentID, claims.Name, claims.Profile, reason)
		ticket.Status = domain.TicketStatusCanceled
		ticket.NextTreatment = domain.SentinelNone
		ticket.CancellationReason = reason
		ticket.ClosedAt = &now

		if err := r.Tickets.UpdateProgress(ctx, ticket); err != nil {
			return err
		}
		result.Status = ticket.Status
		result.NextTreatment = ticket.NextTreatment
		return nil
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:         events.EventTicketCanceled,
		TicketNumber: ticketNumber,
		Actor:        claimsActor(claims),
		Payload: events.TicketTerminatedPayload{
			Status: result.Status,
			Reason: reason,
		},
	})
	return result, nil
}

func applyRejection(ticket *domain.Ticket, reason string, closedAt time.Time) {
	ticket.Status = domain.TicketStatusRejected
	ticket.NextApprover = domain.SentinelNone
	ticket.NextTreatment = domain.SentinelNone
	ticket.RejectionReason = reason
	ticket.ClosedAt = &closedAt
}

func (s *LifecycleService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func claimsActor(claims *auth.Claims) events.Actor {
	return events.Actor{
		UserID:      claims.UserID,
		Name:        claims.Name,
		Role:        claims.Profile,
		ApproverID:  claims.ApproverID,
		TreatmentID: claims.TreatmentID,
	}
}
