package repository

import (
	"context"

	"github.com/spec-kit/sla-engine/internal/domain"
)

// InteractionRepository encapsulates interaction persistence.
type InteractionRepository interface {
	Create(ctx context.Context, interaction *domain.Interaction) error
	ListByTicket(ctx context.Context, ticketID string) ([]domain.Interaction, error)
}

type interactionRepository struct {
	db DB
}

// NewInteractionRepository instantiates repository.
func NewInteractionRepository(db DB) InteractionRepository {
	return &interactionRepository{db: db}
}

func (r *interactionRepository) Create(ctx context.Context, interaction *domain.Interaction) error {
	const query = `
        INSERT INTO interactions (ticket_id, author_user_id, body, time_spent_hours)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`
	return r.db.QueryRow(ctx, query,
		interaction.TicketID,
		interaction.AuthorID,
		interaction.Body,
		interaction.TimeSpentHours,
	).Scan(&interaction.ID, &interaction.CreatedAt)
}

func (r *interactionRepository) ListByTicket(ctx context.Context, ticketID string) ([]domain.Interaction, error) {
	const query = `
        SELECT id, ticket_id, author_user_id, body, time_spent_hours, created_at
        FROM interactions WHERE ticket_id=$1
        ORDER BY created_at ASC`
	rows, err := r.db.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Interaction
	for rows.Next() {
		var interaction domain.Interaction
		if err := rows.Scan(
			&interaction.ID,
			&interaction.TicketID,
			&interaction.AuthorID,
			&interaction.Body,
			&interaction.TimeSpentHours,
			&interaction.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, interaction)
	}
	return result, rows.Err()
}
