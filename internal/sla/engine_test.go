package sla

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/sla-engine/internal/domain"
)

type fakeContracts struct {
	summaries []domain.ContractSummary
	contracts map[string]*domain.Contract
	findErr   error
	findCalls int
}

func (f *fakeContracts) FindActiveContracts(_ context.Context, _ string, _ time.Time) ([]domain.ContractSummary, error) {
	f.findCalls++
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.summaries, nil
}

func (f *fakeContracts) LoadContract(_ context.Context, id string) (*domain.Contract, error) {
	c, ok := f.contracts[id]
	if !ok {
		return nil, errors.New("contract not found")
	}
	return c, nil
}

type fakeCalendars struct {
	calendars map[string]*domain.Calendar
}

func (f *fakeCalendars) LoadCalendar(_ context.Context, id string) (*domain.Calendar, error) {
	cal, ok := f.calendars[id]
	if !ok {
		return nil, errors.New("calendar not found")
	}
	return cal, nil
}

type fakeLedger struct {
	mu     sync.Mutex
	totals map[string]float64
	writes int
	err    error
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{totals: map[string]float64{}}
}

func (f *fakeLedger) IncrementUsedHours(_ context.Context, contractID string, hours float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.totals[contractID] += hours
	f.writes++
	return nil
}

func strPtr(s string) *string { return &s }

func testContract(id, calendarID string) *domain.Contract {
	var calID *string
	if calendarID != "" {
		calID = &calendarID
	}
	return &domain.Contract{
		ID:          id,
		RequesterID: "requester-1",
		Name:        "support contract",
		CalendarID:  calID,
		StartDate:   at(1, 0, 0),
		IsActive:    true,
		Rules: []domain.SlaRule{
			{ID: "rule-1", ContractID: id, Priority: domain.TicketPriorityHigh, ResponseTimeMinutes: 60, SolutionTimeMinutes: 480},
		},
		CreatedAt: at(1, 12, 0),
	}
}

func testTicket(priority domain.TicketPriority) *domain.Ticket {
	return &domain.Ticket{
		ID:          "ticket-1",
		ExternalKey: "TCK-0001",
		RequesterID: "requester-1",
		Title:       "printer on fire",
		Status:      domain.TicketStatusOpen,
		Priority:    priority,
		CreatedAt:   at(8, 10, 0), // Monday 10:00
	}
}

func TestOnTicketCreatedHappyPath(t *testing.T) {
	engine := NewEngine(zap.NewNop(), nil)
	contracts := &fakeContracts{
		summaries: []domain.ContractSummary{
			{ID: "contract-1", RequesterID: "requester-1", IsActive: true, StartDate: at(1, 0, 0), CreatedAt: at(1, 12, 0)},
		},
		contracts: map[string]*domain.Contract{"contract-1": testContract("contract-1", "cal-1")},
	}
	calendars := &fakeCalendars{calendars: map[string]*domain.Calendar{"cal-1": weekdayCalendar()}}

	out := engine.OnTicketCreated(context.Background(), contracts, calendars, testTicket(domain.TicketPriorityHigh))

	require.Equal(t, StateDeadlinesSet, out.State)
	require.NotNil(t, out.ContractID)
	assert.Equal(t, "contract-1", *out.ContractID)
	require.NotNil(t, out.ResponseDueAt)
	require.NotNil(t, out.SolutionDueAt)
	assert.Equal(t, at(8, 11, 0), *out.ResponseDueAt)
	assert.Equal(t, at(8, 18, 0), *out.SolutionDueAt) // 8h budget exhausts at close
	assert.False(t, out.SolutionDueAt.Before(*out.ResponseDueAt))
	assert.NoError(t, out.Reason)
}

func TestOnTicketCreatedExplicitContractSkipsSelection(t *testing.T) {
	engine := NewEngine(zap.NewNop(), nil)
	contracts := &fakeContracts{
		findErr:   errors.New("selection must not run"),
		contracts: map[string]*domain.Contract{"contract-9": testContract("contract-9", "cal-1")},
	}
	calendars := &fakeCalendars{calendars: map[string]*domain.Calendar{"cal-1": weekdayCalendar()}}

	ticket := testTicket(domain.TicketPriorityHigh)
	ticket.ContractID = strPtr("contract-9")

	out := engine.OnTicketCreated(context.Background(), contracts, calendars, ticket)

	assert.Equal(t, StateDeadlinesSet, out.State)
	assert.Equal(t, 0, contracts.findCalls)
	require.NotNil(t, out.ContractID)
	assert.Equal(t, "contract-9", *out.ContractID)
}

func TestOnTicketCreatedNoActiveContract(t *testing.T) {
	engine := NewEngine(zap.NewNop(), nil)
	contracts := &fakeContracts{contracts: map[string]*domain.Contract{}}
	calendars := &fakeCalendars{}

	out := engine.OnTicketCreated(context.Background(), contracts, calendars, testTicket(domain.TicketPriorityHigh))

	assert.Equal(t, StateNotApplicable, out.State)
	assert.Nil(t, out.ContractID)
	assert.Nil(t, out.ResponseDueAt)
	assert.ErrorIs(t, out.Reason, ErrNoActiveContract)
}

func TestOnTicketCreatedMissingCalendarKeepsLink(t *testing.T) {
	engine := NewEngine(zap.NewNop(), nil)
	contracts := &fakeContracts{
		summaries: []domain.ContractSummary{
			{ID: "contract-1", RequesterID: "requester-1", IsActive: true, StartDate: at(1, 0, 0), CreatedAt: at(1, 12, 0)},
		},
		contracts: map[string]*domain.Contract{"contract-1": testContract("contract-1", "")},
	}
	calendars := &fakeCalendars{}

	out := engine.OnTicketCreated(context.Background(), contracts, calendars, testTicket(domain.TicketPriorityHigh))

	// The link survives so time logging can still debit the contract.
	assert.Equal(t, StateNotApplicable, out.State)
	require.NotNil(t, out.ContractID)
	assert.Equal(t, "contract-1", *out.ContractID)
	assert.Nil(t, out.ResponseDueAt)
	assert.ErrorIs(t, out.Reason, ErrMissingCalendar)
}

func TestOnTicketCreatedMissingRuleForPriority(t *testing.T) {
	engine := NewEngine(zap.NewNop(), nil)
	contracts := &fakeContracts{
		summaries: []domain.ContractSummary{
			{ID: "contract-1", RequesterID: "requester-1", IsActive: true, StartDate: at(1, 0, 0), CreatedAt: at(1, 12, 0)},
		},
		contracts: map[string]*domain.Contract{"contract-1": testContract("contract-1", "cal-1")},
	}
	calendars := &fakeCalendars{calendars: map[string]*domain.Calendar{"cal-1": weekdayCalendar()}}

	// The contract only carries a HIGH rule.
	out := engine.OnTicketCreated(context.Background(), contracts, calendars, testTicket(domain.TicketPriorityLow))

	assert.Equal(t, StateNotApplicable, out.State)
	require.NotNil(t, out.ContractID)
	assert.ErrorIs(t, out.Reason, ErrMissingSlaRule)
}

func TestOnTicketCreatedCalendarExhausted(t *testing.T) {
	engine := NewEngine(zap.NewNop(), nil)
	empty := &domain.Calendar{ID: "cal-empty", Hours: map[time.Weekday]domain.WorkingWindow{}, Holidays: map[string]struct{}{}}
	contracts := &fakeContracts{
		summaries: []domain.ContractSummary{
			{ID: "contract-1", RequesterID: "requester-1", IsActive: true, StartDate: at(1, 0, 0), CreatedAt: at(1, 12, 0)},
		},
		contracts: map[string]*domain.Contract{"contract-1": testContract("contract-1", "cal-empty")},
	}
	calendars := &fakeCalendars{calendars: map[string]*domain.Calendar{"cal-empty": empty}}

	out := engine.OnTicketCreated(context.Background(), contracts, calendars, testTicket(domain.TicketPriorityHigh))

	assert.Equal(t, StateNotApplicable, out.State)
	require.NotNil(t, out.ContractID)
	assert.ErrorIs(t, out.Reason, ErrCalendarExhausted)
}

func TestOnInteractionLoggedDebitsHours(t *testing.T) {
	engine := NewEngine(zap.NewNop(), nil)
	ledger := newFakeLedger()

	require.NoError(t, engine.OnInteractionLogged(context.Background(), ledger, "contract-1", 1.5))
	assert.InDelta(t, 1.5, ledger.totals["contract-1"], 1e-9)
}

func TestOnInteractionLoggedZeroHoursNoWrite(t *testing.T) {
	engine := NewEngine(zap.NewNop(), nil)
	ledger := newFakeLedger()

	require.NoError(t, engine.OnInteractionLogged(context.Background(), ledger, "contract-1", 0))
	assert.Equal(t, 0, ledger.writes)
}

func TestOnInteractionLoggedWriteFailure(t *testing.T) {
	engine := NewEngine(zap.NewNop(), nil)
	ledger := newFakeLedger()
	ledger.err = errors.New("connection reset")

	err := engine.OnInteractionLogged(context.Background(), ledger, "contract-1", 2)
	assert.ErrorIs(t, err, ErrLedgerWrite)
}

func TestOnInteractionLoggedConcurrentDebits(t *testing.T) {
	engine := NewEngine(zap.NewNop(), nil)
	ledger := newFakeLedger()

	const workers = 50
	const hoursEach = 0.5

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			_ = engine.OnInteractionLogged(context.Background(), ledger, "contract-1", hoursEach)
		}()
	}
	wg.Wait()

	assert.InDelta(t, workers*hoursEach, ledger.totals["contract-1"], 1e-9)
	assert.Equal(t, workers, ledger.writes)
}
