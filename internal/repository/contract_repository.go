package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/sla-engine/internal/domain"
)

// ContractRepository manages contract persistence and the hour ledger.
type ContractRepository interface {
	FindActiveContracts(ctx context.Context, requesterID string, asOf time.Time) ([]domain.ContractSummary, error)
	LoadContract(ctx context.Context, id string) (*domain.Contract, error)
	IncrementUsedHours(ctx context.Context, contractID string, hours float64) error
}

type contractRepository struct {
	db DB
}

// NewContractRepository builds the repository.
func NewContractRepository(db DB) ContractRepository {
	return &contractRepository{db: db}
}

// FindActiveContracts returns the requester's contracts active as of the
// given instant. The SQL filter mirrors the linker's date rules; the linker
// re-applies them on the returned summaries and makes the final selection.
func (r *contractRepository) FindActiveContracts(ctx context.Context, requesterID string, asOf time.Time) ([]domain.ContractSummary, error) {
	const query = `
        SELECT id, requester_user_id, is_active, start_date, end_date, created_at
        FROM contracts
        WHERE requester_user_id=$1 AND is_active = TRUE
          AND start_date <= $2::date AND (end_date IS NULL OR end_date >= $2::date)`
	rows, err := r.db.Query(ctx, query, requesterID, asOf)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ContractSummary
	for rows.Next() {
		var summary domain.ContractSummary
		if err := rows.Scan(
			&summary.ID,
			&summary.RequesterID,
			&summary.IsActive,
			&summary.StartDate,
			&summary.EndDate,
			&summary.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, summary)
	}
	return result, rows.Err()
}

func (r *contractRepository) LoadContract(ctx context.Context, id string) (*domain.Contract, error) {
	const query = `
        SELECT id, requester_user_id, name, calendar_id, start_date, end_date,
               is_active, monthly_hours, used_hours, created_at, updated_at
        FROM contracts WHERE id=$1`
	var contract domain.Contract
	if err := r.db.QueryRow(ctx, query, id).Scan(
		&contract.ID,
		&contract.RequesterID,
		&contract.Name,
		&contract.CalendarID,
		&contract.StartDate,
		&contract.EndDate,
		&contract.IsActive,
		&contract.MonthlyHours,
		&contract.UsedHours,
		&contract.CreatedAt,
		&contract.UpdatedAt,
	); err != nil {
		return nil, err
	}

	rules, err := r.loadRules(ctx, id)
	if err != nil {
		return nil, err
	}
	contract.Rules = rules
	return &contract, nil
}

func (r *contractRepository) loadRules(ctx context.Context, contractID string) ([]domain.SlaRule, error) {
	const query = `
        SELECT id, contract_id, priority, response_time_minutes, solution_time_minutes
        FROM sla_rules WHERE contract_id=$1`
	rows, err := r.db.Query(ctx, query, contractID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rules []domain.SlaRule
	for rows.Next() {
		var rule domain.SlaRule
		if err := rows.Scan(
			&rule.ID,
			&rule.ContractID,
			&rule.Priority,
			&rule.ResponseTimeMinutes,
			&rule.SolutionTimeMinutes,
		); err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, rows.Err()
}

// IncrementUsedHours debits the hour ledger with a single server-side
// arithmetic update. The increment must never be a read-modify-write at the
// application layer: concurrent interaction creation on the same contract is
// expected and must not lose updates.
func (r *contractRepository) IncrementUsedHours(ctx context.Context, contractID string, hours float64) error {
	const query = `
        UPDATE contracts SET used_hours = used_hours + $1, updated_at = NOW()
        WHERE id=$2`
	cmd, err := r.db.Exec(ctx, query, hours, contractID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
