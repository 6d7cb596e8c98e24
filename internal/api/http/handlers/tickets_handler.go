package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/sla-engine/internal/api/dto"
	"github.com/spec-kit/sla-engine/internal/auth"
	"github.com/spec-kit/sla-engine/internal/domain"
	"github.com/spec-kit/sla-engine/internal/service"
	apperrors "github.com/spec-kit/sla-engine/pkg/util"
)

// TicketsHandler manages ticket intake and interaction endpoints.
type TicketsHandler struct {
	tickets      *service.TicketService
	interactions *service.InteractionService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(tickets *service.TicketService, interactions *service.InteractionService) *TicketsHandler {
	return &TicketsHandler{tickets: tickets, interactions: interactions}
}

// CreateTicket POST /tickets.
func (h *TicketsHandler) CreateTicket(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Title) == "" {
		return apperrors.NewValidationError("title required", nil)
	}

	ticket, err := h.tickets.CreateTicket(c.UserContext(), service.TicketCreateInput{
		RequesterID: principal.SubjectID,
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		ContractID:  req.ContractID,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": ticketResponse(ticket)})
}

// ListTickets GET /tickets.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 20)
	tickets, err := h.tickets.ListTickets(c.UserContext(), principal.SubjectID, pageSize, (page-1)*pageSize)
	if err != nil {
		return err
	}
	items := make([]dto.TicketResponse, 0, len(tickets))
	for i := range tickets {
		items = append(items, ticketResponse(&tickets[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetTicket GET /tickets/:id.
func (h *TicketsHandler) GetTicket(c *fiber.Ctx) error {
	ticket, interactions, err := h.tickets.GetTicket(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	detail := dto.TicketDetailResponse{
		TicketResponse: ticketResponse(ticket),
		Interactions:   make([]dto.InteractionResponse, 0, len(interactions)),
	}
	for i := range interactions {
		detail.Interactions = append(detail.Interactions, interactionResponse(&interactions[i]))
	}
	return c.JSON(fiber.Map{"data": detail})
}

// LogInteraction POST /tickets/:id/interactions.
func (h *TicketsHandler) LogInteraction(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateInteractionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	authorID := principal.SubjectID
	interaction, err := h.interactions.LogInteraction(c.UserContext(), service.InteractionCreateInput{
		TicketID:       c.Params("id"),
		AuthorID:       &authorID,
		Body:           req.Body,
		TimeSpentHours: req.TimeSpentHours,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": interactionResponse(interaction)})
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func ticketResponse(ticket *domain.Ticket) dto.TicketResponse {
	return dto.TicketResponse{
		ID:            ticket.ID,
		ExternalKey:   ticket.ExternalKey,
		RequesterID:   ticket.RequesterID,
		Title:         ticket.Title,
		Description:   ticket.Description,
		Status:        ticket.Status,
		Priority:      ticket.Priority,
		ContractID:    ticket.ContractID,
		ResponseDueAt: ticket.ResponseDueAt,
		SolutionDueAt: ticket.SolutionDueAt,
		CreatedAt:     ticket.CreatedAt,
		UpdatedAt:     ticket.UpdatedAt,
		ClosedAt:      ticket.ClosedAt,
	}
}

func interactionResponse(interaction *domain.Interaction) dto.InteractionResponse {
	return dto.InteractionResponse{
		ID:             interaction.ID,
		TicketID:       interaction.TicketID,
		AuthorID:       interaction.AuthorID,
		Body:           interaction.Body,
		TimeSpentHours: interaction.TimeSpentHours,
		CreatedAt:      interaction.CreatedAt,
	}
}
