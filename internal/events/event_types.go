package events

import (
	"time"

	"github.com/spec-kit/sla-engine/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated   EventType = "ticket_created"
	EventSlaDeadlinesSet EventType = "sla_deadlines_set"
	EventSlaSkipped      EventType = "sla_skipped"
	EventTimeLogged      EventType = "time_logged"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticket_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	RequesterID string                `json:"requester_id"`
	Priority    domain.TicketPriority `json:"priority"`
	Title       string                `json:"title"`
	ContractID  *string               `json:"contract_id,omitempty"`
}

// SlaDeadlinesSetPayload payload.
type SlaDeadlinesSetPayload struct {
	ContractID    string    `json:"contract_id"`
	Priority      string    `json:"priority"`
	ResponseDueAt time.Time `json:"response_due_at"`
	SolutionDueAt time.Time `json:"solution_due_at"`
}

// SlaSkippedPayload payload.
type SlaSkippedPayload struct {
	ContractID *string `json:"contract_id,omitempty"`
	Reason     string  `json:"reason"`
}

// TimeLoggedPayload payload.
type TimeLoggedPayload struct {
	InteractionID string  `json:"interaction_id"`
	ContractID    *string `json:"contract_id,omitempty"`
	Hours         float64 `json:"hours"`
}
