package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Mon-Fri 09:00-18:00, Jan 2024: the 8th is a Monday.
func weekdayCalendar(holidays ...string) *Calendar {
	cal := &Calendar{
		ID:       "cal-1",
		Name:     "business hours",
		Hours:    map[time.Weekday]WorkingWindow{},
		Holidays: map[string]struct{}{},
	}
	for day := time.Monday; day <= time.Friday; day++ {
		cal.Hours[day] = WorkingWindow{Start: 9 * 60, End: 18 * 60}
	}
	for _, h := range holidays {
		cal.Holidays[h] = struct{}{}
	}
	return cal
}

func at(day int, hour, minute int) time.Time {
	return time.Date(2024, time.January, day, hour, minute, 0, 0, time.UTC)
}

func TestCalendarValidate(t *testing.T) {
	require.NoError(t, weekdayCalendar().Validate())

	bad := weekdayCalendar()
	bad.Hours[time.Monday] = WorkingWindow{Start: 18 * 60, End: 9 * 60}
	require.Error(t, bad.Validate())

	outOfRange := weekdayCalendar()
	outOfRange.Hours[time.Monday] = WorkingWindow{Start: 9 * 60, End: 25 * 60}
	require.Error(t, outOfRange.Validate())
}

func TestIsBusinessInstant(t *testing.T) {
	cal := weekdayCalendar("2024-01-09")

	tests := []struct {
		name    string
		instant time.Time
		want    bool
	}{
		{"monday mid-morning", at(8, 10, 30), true},
		{"window start inclusive", at(8, 9, 0), true},
		{"window end exclusive", at(8, 18, 0), false},
		{"before opening", at(8, 8, 59), false},
		{"saturday", at(13, 10, 0), false},
		{"sunday", at(14, 10, 0), false},
		{"holiday tuesday", at(9, 10, 0), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, cal.IsBusinessInstant(tc.instant))
		})
	}
}

func TestNextBusinessOpen(t *testing.T) {
	cal := weekdayCalendar("2024-01-09")

	t.Run("business instant unchanged", func(t *testing.T) {
		instant := at(8, 11, 15)
		got, ok := cal.NextBusinessOpen(instant)
		require.True(t, ok)
		assert.Equal(t, instant, got)
	})

	t.Run("before opening rolls to same day start", func(t *testing.T) {
		got, ok := cal.NextBusinessOpen(at(8, 7, 0))
		require.True(t, ok)
		assert.Equal(t, at(8, 9, 0), got)
	})

	t.Run("after close rolls to next working day", func(t *testing.T) {
		// Monday evening; Tuesday is a holiday, so Wednesday opens next.
		got, ok := cal.NextBusinessOpen(at(8, 19, 0))
		require.True(t, ok)
		assert.Equal(t, at(10, 9, 0), got)
	})

	t.Run("weekend rolls to monday", func(t *testing.T) {
		got, ok := cal.NextBusinessOpen(at(13, 10, 0))
		require.True(t, ok)
		assert.Equal(t, at(15, 9, 0), got)
	})

	t.Run("calendar without working days gives up", func(t *testing.T) {
		empty := &Calendar{ID: "cal-2", Hours: map[time.Weekday]WorkingWindow{}, Holidays: map[string]struct{}{}}
		_, ok := empty.NextBusinessOpen(at(8, 10, 0))
		assert.False(t, ok)
	})
}
