package postgres

import (
	"context"

	"github.com/julianstephens/workform/internal/models"
)

const calendarColumns = `id, date, status, created_at, updated_at`

func scanCalendarDay(row rowScanner) (models.CalendarDay, error) {
	var d models.CalendarDay
	var status string
	if err := row.Scan(&d.ID, &d.Date, &status, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return models.CalendarDay{}, err
	}
	d.Status = models.DayStatus(status)
	return d, nil
}

func (s *Store) GetCalendarDay(ctx context.Context, date string) (models.CalendarDay, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+calendarColumns+` FROM calendar_days WHERE date = $1`, date)
	d, err := scanCalendarDay(row)
	return d, translateErr(err)
}

func (s *Store) ListCalendarDays(ctx context.Context, from, to string) ([]models.CalendarDay, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+calendarColumns+` FROM calendar_days
		WHERE date >= $1 AND date <= $2
		ORDER BY date`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var days []models.CalendarDay
	for rows.Next() {
		d, err := scanCalendarDay(rows)
		if err != nil {
			return nil, err
		}
		days = append(days, d)
	}
	return days, rows.Err()
}

func (s *Store) UpsertCalendarDay(ctx context.Context, d models.CalendarDay) (models.CalendarDay, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO calendar_days (`+calendarColumns+`)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (date) DO UPDATE SET
			status = EXCLUDED.status,
			updated_at = EXCLUDED.updated_at
		RETURNING `+calendarColumns,
		d.ID, d.Date, string(d.Status), d.CreatedAt, d.UpdatedAt)
	stored, err := scanCalendarDay(row)
	return stored, translateErr(err)
}
