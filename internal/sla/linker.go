package sla

import (
	"time"

	"github.com/spec-kit/sla-engine/internal/domain"
)

// SelectContract picks the single contract a new ticket should consume from
// the requester's candidates: active, already started and not yet ended as of
// now, most recently created first, ties broken by highest id. Returns false
// when no candidate qualifies.
//
// Selection is pure and side-effect free; persisting the chosen id is the
// caller's job. Validity dates compare by UTC calendar date, matching how
// DATE columns come out of the database, so a contract ending today still
// qualifies while one ending yesterday does not.
func SelectContract(candidates []domain.ContractSummary, now time.Time) (string, bool) {
	today := dayOrdinal(now)

	var best *domain.ContractSummary
	for i := range candidates {
		c := &candidates[i]
		if !c.IsActive {
			continue
		}
		if today < dayOrdinal(c.StartDate) {
			continue
		}
		if c.EndDate != nil && today > dayOrdinal(*c.EndDate) {
			continue
		}
		if best == nil || betterCandidate(c, best) {
			best = c
		}
	}
	if best == nil {
		return "", false
	}
	return best.ID, true
}

func betterCandidate(c, best *domain.ContractSummary) bool {
	if !c.CreatedAt.Equal(best.CreatedAt) {
		return c.CreatedAt.After(best.CreatedAt)
	}
	return c.ID > best.ID
}

// dayOrdinal collapses an instant to its UTC calendar date as a comparable
// integer. The database scans DATE columns as UTC midnight while timestamps
// may carry another zone; mixing locations here would let this filter
// disagree with the SQL date filter on boundary days.
func dayOrdinal(t time.Time) int {
	year, month, day := t.UTC().Date()
	return year*10000 + int(month)*100 + day
}
