package sla

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/sla-engine/internal/domain"
)

// Mon-Fri 09:00-18:00, Jan 2024: the 8th is a Monday.
func weekdayCalendar(holidays ...string) *domain.Calendar {
	cal := &domain.Calendar{
		ID:       "cal-1",
		Name:     "business hours",
		Hours:    map[time.Weekday]domain.WorkingWindow{},
		Holidays: map[string]struct{}{},
	}
	for day := time.Monday; day <= time.Friday; day++ {
		cal.Hours[day] = domain.WorkingWindow{Start: 9 * 60, End: 18 * 60}
	}
	for _, h := range holidays {
		cal.Holidays[h] = struct{}{}
	}
	return cal
}

func at(day int, hour, minute int) time.Time {
	return time.Date(2024, time.January, day, hour, minute, 0, 0, time.UTC)
}

func TestComputeDeadline(t *testing.T) {
	cal := weekdayCalendar()

	tests := []struct {
		name   string
		start  time.Time
		budget int
		want   time.Time
	}{
		{
			name:   "simple same-day",
			start:  at(8, 10, 0),
			budget: 60,
			want:   at(8, 11, 0),
		},
		{
			name:   "weekend start consumes no budget",
			start:  at(13, 10, 0), // Saturday
			budget: 30,
			want:   at(15, 9, 30), // Monday 09:30
		},
		{
			name:   "after-hours friday rolls to monday",
			start:  at(12, 19, 0), // Friday 19:00
			budget: 15,
			want:   at(15, 9, 15), // Monday 09:15
		},
		{
			name:   "exact exhaustion lands on window end",
			start:  at(8, 17, 45),
			budget: 15,
			want:   at(8, 18, 0),
		},
		{
			name:   "multi-day span",
			start:  at(8, 17, 0), // 1h Monday + full 9h Tuesday
			budget: 600,
			want:   at(9, 18, 0),
		},
		{
			name:   "before opening advances without consuming",
			start:  at(8, 7, 30),
			budget: 30,
			want:   at(8, 9, 30),
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ComputeDeadline(tc.start, tc.budget, cal)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestComputeDeadlineZeroBudgetIdentity(t *testing.T) {
	cal := weekdayCalendar()

	// Zero budget returns the start unchanged, even outside business hours.
	for _, start := range []time.Time{at(8, 10, 0), at(13, 10, 0), at(8, 23, 59)} {
		got, err := ComputeDeadline(start, 0, cal)
		require.NoError(t, err)
		assert.Equal(t, start, got)
	}
}

func TestComputeDeadlineHolidaySkip(t *testing.T) {
	cal := weekdayCalendar("2024-01-09") // Tuesday holiday

	// 30 min consumed Monday 17:30-18:00, remaining 15 min roll past the
	// holiday to Wednesday 09:00-09:15.
	got, err := ComputeDeadline(at(8, 17, 30), 45, cal)
	require.NoError(t, err)
	assert.Equal(t, at(10, 9, 15), got)
}

func TestComputeDeadlineSpansFullWeek(t *testing.T) {
	cal := weekdayCalendar()

	// 5 working days of 9h each starting Monday 09:00 end Friday 18:00.
	got, err := ComputeDeadline(at(8, 9, 0), 5*9*60, cal)
	require.NoError(t, err)
	assert.Equal(t, at(12, 18, 0), got)
}

func TestComputeDeadlineKeepsSubMinuteRemainder(t *testing.T) {
	cal := weekdayCalendar()

	// Monday 17:45:30 leaves 14m30s in the window; the residual 30s of a
	// 15-minute budget carries into Tuesday instead of rounding to a minute.
	start := time.Date(2024, time.January, 8, 17, 45, 30, 0, time.UTC)
	got, err := ComputeDeadline(start, 15, cal)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.January, 9, 9, 0, 30, 0, time.UTC), got)
}

func TestComputeDeadlineExhaustedCalendar(t *testing.T) {
	empty := &domain.Calendar{
		ID:       "cal-2",
		Hours:    map[time.Weekday]domain.WorkingWindow{},
		Holidays: map[string]struct{}{},
	}
	_, err := ComputeDeadline(at(8, 10, 0), 60, empty)
	assert.ErrorIs(t, err, ErrCalendarExhausted)
}

func TestComputeDeadlineIdempotent(t *testing.T) {
	cal := weekdayCalendar("2024-01-09")
	start := at(8, 16, 45)

	first, err := ComputeDeadline(start, 240, cal)
	require.NoError(t, err)
	second, err := ComputeDeadline(start, 240, cal)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
