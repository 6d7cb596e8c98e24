package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/spec-kit/sla-engine/internal/domain"
	"github.com/spec-kit/sla-engine/internal/events"
	"github.com/spec-kit/sla-engine/internal/repository"
	"github.com/spec-kit/sla-engine/internal/sla"
	apperrors "github.com/spec-kit/sla-engine/pkg/util"
)

// TicketService coordinates ticket intake and SLA resolution.
type TicketService struct {
	pool       *pgxpool.Pool
	engine     *sla.Engine
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewTicketService constructs the service.
func NewTicketService(pool *pgxpool.Pool, engine *sla.Engine, dispatcher events.Dispatcher, logger *zap.Logger) *TicketService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TicketService{pool: pool, engine: engine, dispatcher: dispatcher, logger: logger}
}

// TicketCreateInput describes ticket creation payload. ContractID, when set,
// pins the ticket to that contract and skips auto-linking entirely.
type TicketCreateInput struct {
	RequesterID string
	Title       string
	Description string
	Priority    domain.TicketPriority
	ContractID  *string
}

// CreateTicket inserts the ticket and resolves its SLA inside one
// transaction: the ticket row, the resolved contract link and both deadlines
// commit together or not at all. SLA resolution failures do not block intake;
// the ticket is committed without deadlines and the reason is logged.
func (s *TicketService) CreateTicket(ctx context.Context, input TicketCreateInput) (*domain.Ticket, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apperrors.NewValidationError("title required", nil)
	}
	priority := input.Priority
	if priority == "" {
		priority = domain.TicketPriorityMedium
	}
	if !domain.ValidPriority(priority) {
		return nil, apperrors.NewValidationError("unknown priority", map[string]any{"priority": priority})
	}

	ticket := &domain.Ticket{
		ExternalKey: generateTicketKey(),
		RequesterID: input.RequesterID,
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		Status:      domain.TicketStatusOpen,
		Priority:    priority,
		ContractID:  input.ContractID,
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	tickets := repository.NewTicketRepository(tx)
	if err := tickets.Create(ctx, ticket); err != nil {
		return nil, err
	}

	outcome := s.engine.OnTicketCreated(ctx,
		repository.NewContractRepository(tx),
		repository.NewCalendarRepository(tx),
		ticket)

	if outcome.ContractID != nil {
		if err := tickets.SetSlaFields(ctx, ticket.ID, outcome.ContractID, outcome.ResponseDueAt, outcome.SolutionDueAt); err != nil {
			return nil, err
		}
		ticket.ContractID = outcome.ContractID
		ticket.ResponseDueAt = outcome.ResponseDueAt
		ticket.SolutionDueAt = outcome.SolutionDueAt
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		Payload: events.TicketCreatedPayload{
			RequesterID: ticket.RequesterID,
			Priority:    ticket.Priority,
			Title:       ticket.Title,
			ContractID:  ticket.ContractID,
		},
	})
	switch outcome.State {
	case sla.StateDeadlinesSet:
		s.publishEvent(ctx, events.Event{
			Type:     events.EventSlaDeadlinesSet,
			TicketID: ticket.ID,
			Payload: events.SlaDeadlinesSetPayload{
				ContractID:    *outcome.ContractID,
				Priority:      string(ticket.Priority),
				ResponseDueAt: *outcome.ResponseDueAt,
				SolutionDueAt: *outcome.SolutionDueAt,
			},
		})
	case sla.StateNotApplicable:
		reason := ""
		if outcome.Reason != nil {
			reason = outcome.Reason.Error()
		}
		s.publishEvent(ctx, events.Event{
			Type:     events.EventSlaSkipped,
			TicketID: ticket.ID,
			Payload: events.SlaSkippedPayload{
				ContractID: outcome.ContractID,
				Reason:     reason,
			},
		})
	}
	return ticket, nil
}

// GetTicket fetches a ticket with its interactions.
func (s *TicketService) GetTicket(ctx context.Context, ticketID string) (*domain.Ticket, []domain.Interaction, error) {
	tickets := repository.NewTicketRepository(s.pool)
	ticket, err := tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, nil, err
	}
	interactions, err := repository.NewInteractionRepository(s.pool).ListByTicket(ctx, ticketID)
	if err != nil {
		return nil, nil, err
	}
	return ticket, interactions, nil
}

// ListTickets returns paginated tickets for a requester.
func (s *TicketService) ListTickets(ctx context.Context, requesterID string, limit, offset int) ([]domain.Ticket, error) {
	return repository.NewTicketRepository(s.pool).ListByRequester(ctx, requesterID, limit, offset)
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func generateTicketKey() string {
	return "TCK-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}
