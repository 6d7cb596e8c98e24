package sla

import (
	"time"

	"github.com/spec-kit/sla-engine/internal/domain"
)

// maxDeadlineIterations caps the day walk. Each iteration consumes at least
// one full working day, so any sane SLA budget finishes far earlier; hitting
// the cap means the calendar is misconfigured.
const maxDeadlineIterations = 400

// ComputeDeadline returns the instant reached after consuming budgetMinutes
// of business time from start, skipping closed hours, weekends and holidays.
//
// The walk is day-granular: each iteration consumes the remainder of the
// current working window in one step instead of advancing minute by minute,
// which keeps multi-day budgets (a 30-day solution window) cheap. Advancing
// from a non-business start to the next open window consumes no budget. A
// budget that exhausts exactly at a window boundary lands on the window end,
// not on the next day's opening. The budget is consumed as a duration, so a
// start instant carrying seconds keeps its sub-minute remainder across
// window crossings instead of losing it to truncation.
//
// Pure function: same inputs always produce the same output.
func ComputeDeadline(start time.Time, budgetMinutes int, cal *domain.Calendar) (time.Time, error) {
	if budgetMinutes <= 0 {
		return start, nil
	}

	cursor, ok := cal.NextBusinessOpen(start)
	if !ok {
		return time.Time{}, ErrCalendarExhausted
	}

	remaining := time.Duration(budgetMinutes) * time.Minute
	for i := 0; i < maxDeadlineIterations; i++ {
		window, open := cal.WindowOn(cursor)
		if !open {
			// cursor always sits inside a window here; a closed day
			// means the calendar changed underneath us.
			return time.Time{}, ErrCalendarExhausted
		}

		windowEnd := windowEndFor(cursor, window)
		available := windowEnd.Sub(cursor)
		if remaining <= available {
			return cursor.Add(remaining), nil
		}

		remaining -= available
		next, ok := cal.NextBusinessOpen(windowEnd)
		if !ok {
			return time.Time{}, ErrCalendarExhausted
		}
		cursor = next
	}
	return time.Time{}, ErrCalendarExhausted
}

// windowEndFor returns the instant the working window closes on cursor's day.
func windowEndFor(cursor time.Time, window domain.WorkingWindow) time.Time {
	year, month, day := cursor.Date()
	return time.Date(year, month, day, window.End/60, window.End%60, 0, 0, cursor.Location())
}
