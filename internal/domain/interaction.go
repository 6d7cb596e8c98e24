package domain

import "time"

// Interaction is a single agent or requester entry on a ticket. TimeSpentHours
// above zero triggers an hour-ledger debit on the ticket's linked contract,
// committed in the same transaction as the interaction row.
type Interaction struct {
	ID             string
	TicketID       string
	AuthorID       *string
	Body           string
	TimeSpentHours float64
	CreatedAt      time.Time
}
