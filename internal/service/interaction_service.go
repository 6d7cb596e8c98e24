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

// InteractionService records ticket interactions and debits contracted hours.
type InteractionService struct {
	pool       *pgxpool.Pool
	engine     *sla.Engine
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewInteractionService constructs the service.
func NewInteractionService(pool *pgxpool.Pool, engine *sla.Engine, dispatcher events.Dispatcher, logger *zap.Logger) *InteractionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InteractionService{pool: pool, engine: engine, dispatcher: dispatcher, logger: logger}
}

// InteractionCreateInput describes an interaction payload. TimeSpentHours is
// decimal hours of work to debit against the ticket's contract.
type InteractionCreateInput struct {
	TicketID       string
	AuthorID       *string
	Body           string
	TimeSpentHours float64
}

// LogInteraction inserts the interaction and, when time was spent on a
// contract-linked ticket, debits the contract's hour ledger in the same
// transaction. A failed debit rolls the whole operation back: logging time
// against a vanished contract must never silently succeed or drop hours.
func (s *InteractionService) LogInteraction(ctx context.Context, input InteractionCreateInput) (*domain.Interaction, error) {
	body := strings.TrimSpace(input.Body)
	if body == "" && input.TimeSpentHours == 0 {
		return nil, apperrors.NewValidationError("body or time_spent_hours required", nil)
	}
	if input.TimeSpentHours < 0 {
		return nil, apperrors.NewValidationError("time_spent_hours must not be negative", nil)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	ticket, err := repository.NewTicketRepository(tx).GetByID(ctx, input.TicketID)
	if err != nil {
		return nil, err
	}

	interaction := &domain.Interaction{
		TicketID:       ticket.ID,
		AuthorID:       input.AuthorID,
		Body:           body,
		TimeSpentHours: input.TimeSpentHours,
	}
	if err := repository.NewInteractionRepository(tx).Create(ctx, interaction); err != nil {
		return nil, err
	}

	if input.TimeSpentHours > 0 && ticket.ContractID != nil {
		ledger := repository.NewContractRepository(tx)
		if err := s.engine.OnInteractionLogged(ctx, ledger, *ticket.ContractID, input.TimeSpentHours); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTimeLogged,
		TicketID: ticket.ID,
		Payload: events.TimeLoggedPayload{
			InteractionID: interaction.ID,
			ContractID:    ticket.ContractID,
			Hours:         interaction.TimeSpentHours,
		},
	})
	return interaction, nil
}

func (s *InteractionService) publishEvent(ctx context.Context, event events.Event) {
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
