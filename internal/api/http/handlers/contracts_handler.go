package handlers

import (
	"fmt"
	"sort"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/sla-engine/internal/api/dto"
	"github.com/spec-kit/sla-engine/internal/repository"
)

// ContractsHandler exposes read-only contract and calendar views so
// operators can diagnose SLA decisions. Configuration writes happen in the
// surrounding admin system.
type ContractsHandler struct {
	contracts repository.ContractRepository
	calendars repository.CalendarRepository
}

// NewContractsHandler constructs handler.
func NewContractsHandler(contracts repository.ContractRepository, calendars repository.CalendarRepository) *ContractsHandler {
	return &ContractsHandler{contracts: contracts, calendars: calendars}
}

// GetContract GET /contracts/:id.
func (h *ContractsHandler) GetContract(c *fiber.Ctx) error {
	contract, err := h.contracts.LoadContract(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	resp := dto.ContractResponse{
		ID:           contract.ID,
		RequesterID:  contract.RequesterID,
		Name:         contract.Name,
		CalendarID:   contract.CalendarID,
		StartDate:    contract.StartDate,
		EndDate:      contract.EndDate,
		IsActive:     contract.IsActive,
		MonthlyHours: contract.MonthlyHours,
		UsedHours:    contract.UsedHours,
		Rules:        make([]dto.SlaRuleResponse, 0, len(contract.Rules)),
	}
	for _, rule := range contract.Rules {
		resp.Rules = append(resp.Rules, dto.SlaRuleResponse{
			Priority:            rule.Priority,
			ResponseTimeMinutes: rule.ResponseTimeMinutes,
			SolutionTimeMinutes: rule.SolutionTimeMinutes,
		})
	}
	return c.JSON(fiber.Map{"data": resp})
}

// GetCalendar GET /calendars/:id.
func (h *ContractsHandler) GetCalendar(c *fiber.Ctx) error {
	calendar, err := h.calendars.LoadCalendar(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	resp := dto.CalendarResponse{
		ID:           calendar.ID,
		Name:         calendar.Name,
		WorkingHours: make(map[string]dto.WindowDTO, len(calendar.Hours)),
		Holidays:     make([]string, 0, len(calendar.Holidays)),
	}
	for day, window := range calendar.Hours {
		resp.WorkingHours[day.String()] = dto.WindowDTO{
			Start: formatClock(window.Start),
			End:   formatClock(window.End),
		}
	}
	for holiday := range calendar.Holidays {
		resp.Holidays = append(resp.Holidays, holiday)
	}
	sort.Strings(resp.Holidays)
	return c.JSON(fiber.Map{"data": resp})
}

func formatClock(minute int) string {
	return fmt.Sprintf("%02d:%02d", minute/60, minute%60)
}
