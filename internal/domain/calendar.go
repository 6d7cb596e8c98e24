package domain

import (
	"fmt"
	"time"
)

const holidayDateLayout = "2006-01-02"

// nextBusinessOpenHorizonDays bounds the forward search for an open day. A
// calendar that yields no working day within this horizon is misconfigured.
const nextBusinessOpenHorizonDays = 400

// WorkingWindow is a single day's working interval, expressed as minutes
// after midnight. Start is inclusive, End exclusive.
type WorkingWindow struct {
	Start int
	End   int
}

// Minutes returns the window length in minutes.
func (w WorkingWindow) Minutes() int {
	return w.End - w.Start
}

// Calendar describes the business hours a contract is measured against:
// an optional working window per weekday plus a set of holiday dates.
// Weekdays without a window are non-working days.
type Calendar struct {
	ID       string
	Name     string
	Hours    map[time.Weekday]WorkingWindow
	Holidays map[string]struct{}
}

// Validate checks window sanity. Calendars are loaded from configuration
// tables, so malformed rows are rejected here rather than trusted at use time.
func (c *Calendar) Validate() error {
	for day, window := range c.Hours {
		if window.Start < 0 || window.End > 24*60 {
			return fmt.Errorf("calendar %s: %s window out of range", c.ID, day)
		}
		if window.Start >= window.End {
			return fmt.Errorf("calendar %s: %s window start must precede end", c.ID, day)
		}
	}
	return nil
}

// IsHoliday reports whether the instant's local calendar date is a holiday.
func (c *Calendar) IsHoliday(t time.Time) bool {
	_, ok := c.Holidays[t.Format(holidayDateLayout)]
	return ok
}

// WindowOn returns the working window for the instant's day, if the day is
// a working day and not a holiday.
func (c *Calendar) WindowOn(t time.Time) (WorkingWindow, bool) {
	if c.IsHoliday(t) {
		return WorkingWindow{}, false
	}
	window, ok := c.Hours[t.Weekday()]
	return window, ok
}

// IsBusinessInstant reports whether t falls inside a working window on a
// non-holiday day. The window end is exclusive.
func (c *Calendar) IsBusinessInstant(t time.Time) bool {
	window, ok := c.WindowOn(t)
	if !ok {
		return false
	}
	minute := t.Hour()*60 + t.Minute()
	return minute >= window.Start && minute < window.End
}

// NextBusinessOpen returns t unchanged when t is already a business instant.
// Otherwise it advances to the start of the next open window: later the same
// day if the window has not started yet, or the window start of the next
// working non-holiday day. The second return is false when no open day exists
// within the search horizon.
func (c *Calendar) NextBusinessOpen(t time.Time) (time.Time, bool) {
	if c.IsBusinessInstant(t) {
		return t, true
	}

	if window, ok := c.WindowOn(t); ok {
		minute := t.Hour()*60 + t.Minute()
		if minute < window.Start {
			return dayAtMinute(t, window.Start), true
		}
	}

	probe := t
	for i := 0; i < nextBusinessOpenHorizonDays; i++ {
		probe = startOfNextDay(probe)
		if window, ok := c.WindowOn(probe); ok {
			return dayAtMinute(probe, window.Start), true
		}
	}
	return time.Time{}, false
}

// dayAtMinute returns the instant on t's calendar day at the given minute
// after midnight, preserving t's location.
func dayAtMinute(t time.Time, minute int) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, minute/60, minute%60, 0, 0, t.Location())
}

func startOfNextDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day+1, 0, 0, 0, 0, t.Location())
}
