package sla

import "errors"

// Sentinel errors for SLA resolution. Everything except ErrLedgerWrite is
// recovered locally at ticket creation: the ticket is still created, just
// without the affected deadlines. ErrLedgerWrite aborts the enclosing
// interaction transaction, because silently dropping billed hours is worse
// than a failed submission the caller can retry.
var (
	ErrNoActiveContract  = errors.New("no active contract for requester")
	ErrMissingCalendar   = errors.New("contract has no calendar assigned")
	ErrMissingSlaRule    = errors.New("contract has no sla rule for ticket priority")
	ErrCalendarExhausted = errors.New("calendar has no working time within search horizon")
	ErrLedgerWrite       = errors.New("contract hour debit failed")
)

// reasonCode maps a resolution error to a short label used in logs and
// metrics.
func reasonCode(err error) string {
	switch {
	case errors.Is(err, ErrNoActiveContract):
		return "no_active_contract"
	case errors.Is(err, ErrMissingCalendar):
		return "missing_calendar"
	case errors.Is(err, ErrMissingSlaRule):
		return "missing_sla_rule"
	case errors.Is(err, ErrCalendarExhausted):
		return "calendar_exhausted"
	default:
		return "internal"
	}
}
