package dto

import (
	"time"

	"github.com/spec-kit/sla-engine/internal/domain"
)

// CreateTicketRequest payload. ContractID pins the ticket to a specific
// contract; when absent the engine auto-selects one.
type CreateTicketRequest struct {
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Priority    domain.TicketPriority `json:"priority"`
	ContractID  *string               `json:"contract_id,omitempty"`
}

// TicketResponse carries a ticket with its SLA fields.
type TicketResponse struct {
	ID            string                `json:"id"`
	ExternalKey   string                `json:"external_key"`
	RequesterID   string                `json:"requester_id"`
	Title         string                `json:"title"`
	Description   string                `json:"description"`
	Status        domain.TicketStatus   `json:"status"`
	Priority      domain.TicketPriority `json:"priority"`
	ContractID    *string               `json:"contract_id"`
	ResponseDueAt *time.Time            `json:"response_due_at"`
	SolutionDueAt *time.Time            `json:"solution_due_at"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
	ClosedAt      *time.Time            `json:"closed_at"`
}

// TicketDetailResponse is a ticket with its interaction thread.
type TicketDetailResponse struct {
	TicketResponse
	Interactions []InteractionResponse `json:"interactions"`
}

// CreateInteractionRequest payload.
type CreateInteractionRequest struct {
	Body           string  `json:"body"`
	TimeSpentHours float64 `json:"time_spent_hours"`
}

// InteractionResponse represents a thread entry.
type InteractionResponse struct {
	ID             string    `json:"id"`
	TicketID       string    `json:"ticket_id"`
	AuthorID       *string   `json:"author_id"`
	Body           string    `json:"body"`
	TimeSpentHours float64   `json:"time_spent_hours"`
	CreatedAt      time.Time `json:"created_at"`
}
