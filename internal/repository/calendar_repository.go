package repository

import (
	"context"
	"time"

	"github.com/spec-kit/sla-engine/internal/domain"
)

// CalendarRepository loads business calendars as typed, validated structures.
type CalendarRepository interface {
	LoadCalendar(ctx context.Context, id string) (*domain.Calendar, error)
}

type calendarRepository struct {
	db DB
}

// NewCalendarRepository builds the repository.
func NewCalendarRepository(db DB) CalendarRepository {
	return &calendarRepository{db: db}
}

func (r *calendarRepository) LoadCalendar(ctx context.Context, id string) (*domain.Calendar, error) {
	const query = `SELECT id, name FROM calendars WHERE id=$1`
	calendar := domain.Calendar{
		Hours:    make(map[time.Weekday]domain.WorkingWindow),
		Holidays: make(map[string]struct{}),
	}
	if err := r.db.QueryRow(ctx, query, id).Scan(&calendar.ID, &calendar.Name); err != nil {
		return nil, err
	}

	if err := r.loadHours(ctx, &calendar); err != nil {
		return nil, err
	}
	if err := r.loadHolidays(ctx, &calendar); err != nil {
		return nil, err
	}
	if err := calendar.Validate(); err != nil {
		return nil, err
	}
	return &calendar, nil
}

func (r *calendarRepository) loadHours(ctx context.Context, calendar *domain.Calendar) error {
	const query = `
        SELECT weekday, start_minute, end_minute
        FROM calendar_hours WHERE calendar_id=$1`
	rows, err := r.db.Query(ctx, query, calendar.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var weekday int
		var window domain.WorkingWindow
		if err := rows.Scan(&weekday, &window.Start, &window.End); err != nil {
			return err
		}
		calendar.Hours[time.Weekday(weekday)] = window
	}
	return rows.Err()
}

func (r *calendarRepository) loadHolidays(ctx context.Context, calendar *domain.Calendar) error {
	const query = `SELECT holiday FROM calendar_holidays WHERE calendar_id=$1`
	rows, err := r.db.Query(ctx, query, calendar.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var day time.Time
		if err := rows.Scan(&day); err != nil {
			return err
		}
		calendar.Holidays[day.Format("2006-01-02")] = struct{}{}
	}
	return rows.Err()
}
