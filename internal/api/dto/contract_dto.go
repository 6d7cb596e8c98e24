package dto

import (
	"time"

	"github.com/spec-kit/sla-engine/internal/domain"
)

// ContractResponse exposes a contract and its SLA rules for operators.
type ContractResponse struct {
	ID           string            `json:"id"`
	RequesterID  string            `json:"requester_id"`
	Name         string            `json:"name"`
	CalendarID   *string           `json:"calendar_id"`
	StartDate    time.Time         `json:"start_date"`
	EndDate      *time.Time        `json:"end_date"`
	IsActive     bool              `json:"is_active"`
	MonthlyHours float64           `json:"monthly_hours"`
	UsedHours    float64           `json:"used_hours"`
	Rules        []SlaRuleResponse `json:"rules"`
}

// SlaRuleResponse exposes one priority's minute budgets.
type SlaRuleResponse struct {
	Priority            domain.TicketPriority `json:"priority"`
	ResponseTimeMinutes int                   `json:"response_time_minutes"`
	SolutionTimeMinutes int                   `json:"solution_time_minutes"`
}

// CalendarResponse exposes working windows as HH:MM pairs plus holidays.
type CalendarResponse struct {
	ID           string               `json:"id"`
	Name         string               `json:"name"`
	WorkingHours map[string]WindowDTO `json:"working_hours"`
	Holidays     []string             `json:"holidays"`
}

// WindowDTO is a single day's working interval.
type WindowDTO struct {
	Start string `json:"start"`
	End   string `json:"end"`
}
