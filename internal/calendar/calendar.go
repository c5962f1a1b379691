// Package calendar resolves whether a civil date is a working day.
package calendar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/julianstephens/workform/internal/errors"
	"github.com/julianstephens/workform/internal/models"
	"github.com/julianstephens/workform/internal/storage"
	"github.com/julianstephens/workform/internal/utils"
)

// Store is the persistence the calendar needs.
type Store interface {
	GetCalendarDay(ctx context.Context, date string) (models.CalendarDay, error)
	ListCalendarDays(ctx context.Context, from, to string) ([]models.CalendarDay, error)
	UpsertCalendarDay(ctx context.Context, d models.CalendarDay) (models.CalendarDay, error)
}

type Service struct {
	store Store
	now   func() time.Time
}

func New(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

// DefaultStatus is the status of a date with no explicit entry: weekends are
// holidays, every other day is a working day.
func DefaultStatus(date string) (models.DayStatus, error) {
	weekend, err := utils.IsWeekend(date)
	if err != nil {
		return "", apperrors.Invalid("date", "must be YYYY-MM-DD, got %q", date)
	}
	if weekend {
		return models.DayHoliday, nil
	}
	return models.DayWorking, nil
}

// Resolve returns the effective status of date. An explicit entry wins over
// the weekend default.
func (s *Service) Resolve(ctx context.Context, date string) (models.ResolvedDay, error) {
	def, err := DefaultStatus(date)
	if err != nil {
		return models.ResolvedDay{}, err
	}

	day, err := s.store.GetCalendarDay(ctx, date)
	switch {
	case err == nil:
		return models.ResolvedDay{Date: date, Status: day.Status, Explicit: true}, nil
	case errors.Is(err, storage.ErrNotFound):
		return models.ResolvedDay{Date: date, Status: def}, nil
	default:
		return models.ResolvedDay{}, fmt.Errorf("loading calendar day %s: %w", date, err)
	}
}

// IsWorkingDay reports whether reminders and submissions are expected on date.
func (s *Service) IsWorkingDay(ctx context.Context, date string) (bool, error) {
	day, err := s.Resolve(ctx, date)
	if err != nil {
		return false, err
	}
	return day.IsWorking(), nil
}

// Month returns the explicit entries of a month (1-12) keyed by date.
func (s *Service) Month(ctx context.Context, year, month int) (map[string]models.DayStatus, error) {
	from, to, err := utils.MonthBounds(year, time.Month(month))
	if err != nil {
		return nil, apperrors.Invalid("month", "%v", err)
	}

	days, err := s.store.ListCalendarDays(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("listing calendar %04d-%02d: %w", year, month, err)
	}

	out := make(map[string]models.DayStatus, len(days))
	for _, d := range days {
		out[d.Date] = d.Status
	}
	return out, nil
}

// Set records an explicit status for date, replacing any earlier entry.
func (s *Service) Set(ctx context.Context, date string, status models.DayStatus) (models.CalendarDay, error) {
	var verr apperrors.ValidationError
	if !utils.ValidDate(date) {
		verr.Add("date", "must be YYYY-MM-DD, got %q", date)
	}
	if !status.Valid() {
		verr.Add("status", "must be %q or %q, got %q", models.DayHoliday, models.DayWorking, status)
	}
	if err := verr.Err(); err != nil {
		return models.CalendarDay{}, err
	}

	now := s.now().UTC()
	day, err := s.store.UpsertCalendarDay(ctx, models.CalendarDay{
		ID:        uuid.New().String(),
		Date:      date,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return models.CalendarDay{}, fmt.Errorf("saving calendar day %s: %w", date, err)
	}
	return day, nil
}
