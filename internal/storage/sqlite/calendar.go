package sqlite

import (
	"context"

	"github.com/julianstephens/workform/internal/models"
)

const calendarColumns = `id, date, status, created_at, updated_at`

func scanCalendarDay(row rowScanner) (models.CalendarDay, error) {
	var d models.CalendarDay
	var status, createdAt, updatedAt string
	if err := row.Scan(&d.ID, &d.Date, &status, &createdAt, &updatedAt); err != nil {
		return models.CalendarDay{}, err
	}
	d.Status = models.DayStatus(status)
	d.CreatedAt = parseTime(createdAt)
	d.UpdatedAt = parseTime(updatedAt)
	return d, nil
}

func (s *Store) GetCalendarDay(ctx context.Context, date string) (models.CalendarDay, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+calendarColumns+` FROM calendar_days WHERE date = ?`, date)
	d, err := scanCalendarDay(row)
	return d, translateErr(err)
}

func (s *Store) ListCalendarDays(ctx context.Context, from, to string) ([]models.CalendarDay, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+calendarColumns+` FROM calendar_days
		WHERE date >= ? AND date <= ?
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
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO calendar_days (`+calendarColumns+`)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (date) DO UPDATE SET
			status = excluded.status,
			updated_at = excluded.updated_at`,
		d.ID, d.Date, string(d.Status), formatTime(d.CreatedAt), formatTime(d.UpdatedAt))
	if err != nil {
		return models.CalendarDay{}, translateErr(err)
	}
	return s.GetCalendarDay(ctx, d.Date)
}
