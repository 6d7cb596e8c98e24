package sla

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/sla-engine/internal/domain"
	"github.com/spec-kit/sla-engine/internal/observability"
)

// ContractSource supplies contract data for SLA resolution. Implementations
// are expected to be bound to the caller's database transaction so that the
// linking decision and the ticket row commit together.
type ContractSource interface {
	FindActiveContracts(ctx context.Context, requesterID string, asOf time.Time) ([]domain.ContractSummary, error)
	LoadContract(ctx context.Context, id string) (*domain.Contract, error)
}

// CalendarSource supplies business calendars.
type CalendarSource interface {
	LoadCalendar(ctx context.Context, id string) (*domain.Calendar, error)
}

// HourLedger debits contracted hours. The increment must be a server-side
// arithmetic update, never a read-modify-write, so concurrent debits on the
// same contract cannot lose updates.
type HourLedger interface {
	IncrementUsedHours(ctx context.Context, contractID string, hours float64) error
}

// State tracks how far SLA resolution got for a ticket.
type State string

const (
	StateUnlinked      State = "UNLINKED"
	StateLinked        State = "LINKED"
	StateRuleResolved  State = "RULE_RESOLVED"
	StateDeadlinesSet  State = "DEADLINES_SET"
	StateNotApplicable State = "NOT_APPLICABLE"
)

// Outcome is the result of SLA resolution at ticket creation. ContractID is
// populated as soon as a contract was linked, even when deadline computation
// later failed: the hour ledger still needs the link. Reason carries the
// cause whenever resolution stopped short of DeadlinesSet.
type Outcome struct {
	State         State
	ContractID    *string
	ResponseDueAt *time.Time
	SolutionDueAt *time.Time
	Reason        error
}

// Engine is the stateless SLA orchestrator. It owns no data and no mutable
// state; contract and calendar data arrive through the sources passed per
// call, so concurrent ticket creation needs no synchronization here.
type Engine struct {
	logger  *zap.Logger
	metrics *observability.Metrics
}

// NewEngine constructs the engine.
func NewEngine(logger *zap.Logger, metrics *observability.Metrics) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{logger: logger, metrics: metrics}
}

// OnTicketCreated resolves the contract link and both SLA deadlines for a
// freshly inserted ticket. Resolution is one-shot: deadlines freeze at
// creation and are never recomputed on later priority or contract changes.
//
// Every failure short of a ledger write is non-fatal by policy: ticket intake
// must never be blocked by SLA configuration gaps, so the outcome simply
// reports NotApplicable and the reason is logged for operators.
func (e *Engine) OnTicketCreated(ctx context.Context, contracts ContractSource, calendars CalendarSource, ticket *domain.Ticket) Outcome {
	out := Outcome{State: StateUnlinked}

	contractID := ""
	if ticket.ContractID != nil && *ticket.ContractID != "" {
		// Explicit link from the caller always wins over auto-selection.
		contractID = *ticket.ContractID
	} else {
		candidates, err := contracts.FindActiveContracts(ctx, ticket.RequesterID, ticket.CreatedAt)
		if err != nil {
			return e.skip(ticket, out, fmt.Errorf("list contracts: %w", err))
		}
		selected, ok := SelectContract(candidates, ticket.CreatedAt)
		if !ok {
			return e.skip(ticket, out, ErrNoActiveContract)
		}
		contractID = selected
	}

	out.State = StateLinked
	out.ContractID = &contractID

	contract, err := contracts.LoadContract(ctx, contractID)
	if err != nil {
		return e.skip(ticket, out, fmt.Errorf("load contract %s: %w", contractID, err))
	}
	if contract.CalendarID == nil || *contract.CalendarID == "" {
		return e.skip(ticket, out, ErrMissingCalendar)
	}
	rule, ok := contract.RuleFor(ticket.Priority)
	if !ok {
		return e.skip(ticket, out, ErrMissingSlaRule)
	}
	if err := rule.Validate(); err != nil {
		return e.skip(ticket, out, fmt.Errorf("%w: %v", ErrMissingSlaRule, err))
	}
	out.State = StateRuleResolved

	calendar, err := calendars.LoadCalendar(ctx, *contract.CalendarID)
	if err != nil {
		return e.skip(ticket, out, fmt.Errorf("load calendar %s: %w", *contract.CalendarID, err))
	}

	responseDue, err := ComputeDeadline(ticket.CreatedAt, rule.ResponseTimeMinutes, calendar)
	if err != nil {
		return e.skip(ticket, out, err)
	}
	solutionDue, err := ComputeDeadline(ticket.CreatedAt, rule.SolutionTimeMinutes, calendar)
	if err != nil {
		return e.skip(ticket, out, err)
	}

	out.State = StateDeadlinesSet
	out.ResponseDueAt = &responseDue
	out.SolutionDueAt = &solutionDue
	e.metrics.RecordDeadline("response")
	e.metrics.RecordDeadline("solution")
	e.logger.Info("sla deadlines resolved",
		zap.String("ticket_id", ticket.ID),
		zap.String("contract_id", contractID),
		zap.String("priority", string(ticket.Priority)),
		zap.Time("response_due_at", responseDue),
		zap.Time("solution_due_at", solutionDue))
	return out
}

// OnInteractionLogged debits logged time against the linked contract. Zero
// hours is a no-op without a write. A failed debit is returned to the caller
// so the enclosing interaction transaction rolls back.
func (e *Engine) OnInteractionLogged(ctx context.Context, ledger HourLedger, contractID string, hours float64) error {
	if hours <= 0 {
		return nil
	}
	if err := ledger.IncrementUsedHours(ctx, contractID, hours); err != nil {
		e.logger.Error("contract hour debit failed",
			zap.String("contract_id", contractID),
			zap.Float64("hours", hours),
			zap.Error(err))
		return fmt.Errorf("%w: %v", ErrLedgerWrite, err)
	}
	e.metrics.RecordHoursDebited(hours)
	e.logger.Debug("contract hours debited",
		zap.String("contract_id", contractID),
		zap.Float64("hours", hours))
	return nil
}

func (e *Engine) skip(ticket *domain.Ticket, out Outcome, reason error) Outcome {
	out.State = StateNotApplicable
	out.Reason = reason
	e.metrics.RecordSlaSkip(reasonCode(reason))
	e.logger.Warn("ticket created without sla deadlines",
		zap.String("ticket_id", ticket.ID),
		zap.String("requester_id", ticket.RequesterID),
		zap.String("priority", string(ticket.Priority)),
		zap.String("reason", reasonCode(reason)),
		zap.Error(reason))
	return out
}
