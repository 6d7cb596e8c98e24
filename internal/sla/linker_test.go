package sla

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/sla-engine/internal/domain"
)

func summary(id string, active bool, start time.Time, end *time.Time, created time.Time) domain.ContractSummary {
	return domain.ContractSummary{
		ID:          id,
		RequesterID: "requester-1",
		IsActive:    active,
		StartDate:   start,
		EndDate:     end,
		CreatedAt:   created,
	}
}

func datePtr(t time.Time) *time.Time { return &t }

func TestSelectContract(t *testing.T) {
	now := time.Date(2024, time.March, 15, 14, 30, 0, 0, time.UTC)
	yearAgo := now.AddDate(-1, 0, 0)

	t.Run("empty candidates", func(t *testing.T) {
		_, ok := SelectContract(nil, now)
		assert.False(t, ok)
	})

	t.Run("most recently created wins", func(t *testing.T) {
		candidates := []domain.ContractSummary{
			summary("older", true, yearAgo, nil, now.AddDate(0, -6, 0)),
			summary("newer", true, yearAgo, nil, now.AddDate(0, -1, 0)),
		}
		id, ok := SelectContract(candidates, now)
		assert.True(t, ok)
		assert.Equal(t, "newer", id)
	})

	t.Run("created-at tie breaks on highest id", func(t *testing.T) {
		created := now.AddDate(0, -2, 0)
		candidates := []domain.ContractSummary{
			summary("aaa", true, yearAgo, nil, created),
			summary("zzz", true, yearAgo, nil, created),
			summary("mmm", true, yearAgo, nil, created),
		}
		id, ok := SelectContract(candidates, now)
		assert.True(t, ok)
		assert.Equal(t, "zzz", id)
	})

	t.Run("inactive excluded", func(t *testing.T) {
		candidates := []domain.ContractSummary{
			summary("inactive", false, yearAgo, nil, now),
		}
		_, ok := SelectContract(candidates, now)
		assert.False(t, ok)
	})

	t.Run("not yet started excluded", func(t *testing.T) {
		candidates := []domain.ContractSummary{
			summary("future", true, now.AddDate(0, 0, 1), nil, now),
		}
		_, ok := SelectContract(candidates, now)
		assert.False(t, ok)
	})

	t.Run("ended yesterday excluded, ending today included", func(t *testing.T) {
		candidates := []domain.ContractSummary{
			summary("expired", true, yearAgo, datePtr(now.AddDate(0, 0, -1)), now.AddDate(0, -1, 0)),
			summary("ending-today", true, yearAgo, datePtr(now.Truncate(24*time.Hour)), now.AddDate(0, -2, 0)),
		}
		id, ok := SelectContract(candidates, now)
		assert.True(t, ok)
		assert.Equal(t, "ending-today", id)
	})

	t.Run("validity compares utc dates across zones", func(t *testing.T) {
		// 20:00 UTC on March 15, seen from UTC+10 where the local date is
		// already March 16. The contract ends March 15 and must still link.
		zoned := time.Date(2024, time.March, 16, 6, 0, 0, 0, time.FixedZone("UTC+10", 10*3600))
		endsToday := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
		candidates := []domain.ContractSummary{
			summary("ends-march-15", true, yearAgo, datePtr(endsToday), yearAgo),
		}
		id, ok := SelectContract(candidates, zoned)
		assert.True(t, ok)
		assert.Equal(t, "ends-march-15", id)
	})

	t.Run("starting today included", func(t *testing.T) {
		midnight := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
		candidates := []domain.ContractSummary{
			summary("starts-today", true, midnight, nil, now),
		}
		id, ok := SelectContract(candidates, now)
		assert.True(t, ok)
		assert.Equal(t, "starts-today", id)
	})
}
