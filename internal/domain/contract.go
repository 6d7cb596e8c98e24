package domain

import (
	"fmt"
	"time"
)

// Contract binds a requester to a business calendar, a set of SLA rules and
// a contracted hour budget. UsedHours accumulates as agents log time against
// the requester's tickets; overage is a billing concern, never enforced here.
type Contract struct {
	ID           string
	RequesterID  string
	Name         string
	CalendarID   *string
	StartDate    time.Time
	EndDate      *time.Time
	IsActive     bool
	MonthlyHours float64
	UsedHours    float64
	Rules        []SlaRule
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RuleFor returns the contract's SLA rule for the given priority.
func (c *Contract) RuleFor(priority TicketPriority) (*SlaRule, bool) {
	for i := range c.Rules {
		if c.Rules[i].Priority == priority {
			return &c.Rules[i], true
		}
	}
	return nil, false
}

// SlaRule is a priority-keyed pair of business-minute budgets: one for the
// first response, one for the full solution.
type SlaRule struct {
	ID                  string
	ContractID          string
	Priority            TicketPriority
	ResponseTimeMinutes int
	SolutionTimeMinutes int
}

// Validate rejects malformed rules before they reach the deadline calculator.
func (r *SlaRule) Validate() error {
	if r.ResponseTimeMinutes <= 0 || r.SolutionTimeMinutes <= 0 {
		return fmt.Errorf("sla rule %s: minute budgets must be positive", r.ID)
	}
	if r.SolutionTimeMinutes < r.ResponseTimeMinutes {
		return fmt.Errorf("sla rule %s: solution budget below response budget", r.ID)
	}
	return nil
}

// ContractSummary is the slice of contract state the linker selects on.
type ContractSummary struct {
	ID          string
	RequesterID string
	IsActive    bool
	StartDate   time.Time
	EndDate     *time.Time
	CreatedAt   time.Time
}
