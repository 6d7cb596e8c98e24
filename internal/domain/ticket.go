package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "OPEN"
	TicketStatusInProgress TicketStatus = "IN_PROGRESS"
	TicketStatusResolved   TicketStatus = "RESOLVED"
	TicketStatusClosed     TicketStatus = "CLOSED"
)

// TicketPriority enumerates SLA urgency.
type TicketPriority string

const (
	TicketPriorityLow      TicketPriority = "LOW"
	TicketPriorityMedium   TicketPriority = "MEDIUM"
	TicketPriorityHigh     TicketPriority = "HIGH"
	TicketPriorityCritical TicketPriority = "CRITICAL"
	TicketPriorityUrgent   TicketPriority = "URGENT"
)

// ValidPriority reports whether p is one of the known priorities.
func ValidPriority(p TicketPriority) bool {
	switch p {
	case TicketPriorityLow, TicketPriorityMedium, TicketPriorityHigh,
		TicketPriorityCritical, TicketPriorityUrgent:
		return true
	}
	return false
}

// Ticket is the aggregate for support requests. ContractID and the two due
// timestamps are resolved once at creation time and never recomputed; they
// stay nil when no contract, calendar or rule applied.
type Ticket struct {
	ID            string
	ExternalKey   string
	RequesterID   string
	Title         string
	Description   string
	Status        TicketStatus
	Priority      TicketPriority
	ContractID    *string
	ResponseDueAt *time.Time
	SolutionDueAt *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
	ClosedAt      *time.Time
}
