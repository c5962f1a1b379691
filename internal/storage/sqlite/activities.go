package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/julianstephens/workform/internal/models"
	"github.com/julianstephens/workform/internal/storage"
)

const activityColumns = `id, employee_name, employee_id, date, tasks, created_at, updated_at`

func scanActivity(row rowScanner) (models.WorkActivity, error) {
	var a models.WorkActivity
	var tasks, createdAt, updatedAt string
	if err := row.Scan(&a.ID, &a.EmployeeName, &a.EmployeeID, &a.Date, &tasks, &createdAt, &updatedAt); err != nil {
		return models.WorkActivity{}, err
	}
	if err := json.Unmarshal([]byte(tasks), &a.Tasks); err != nil {
		return models.WorkActivity{}, fmt.Errorf("decoding tasks for activity %s: %w", a.ID, err)
	}
	a.CreatedAt = parseTime(createdAt)
	a.UpdatedAt = parseTime(updatedAt)
	return a, nil
}

func encodeTasks(tasks []models.Task) (string, error) {
	if tasks == nil {
		tasks = []models.Task{}
	}
	b, err := json.Marshal(tasks)
	if err != nil {
		return "", fmt.Errorf("encoding tasks: %w", err)
	}
	return string(b), nil
}

func (s *Store) GetActivity(ctx context.Context, employeeName, date string) (models.WorkActivity, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+activityColumns+` FROM work_activities WHERE employee_name = ? AND date = ?`, employeeName, date)
	a, err := scanActivity(row)
	return a, translateErr(err)
}

func (s *Store) InsertActivity(ctx context.Context, a models.WorkActivity) error {
	tasks, err := encodeTasks(a.Tasks)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO work_activities (`+activityColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.EmployeeName, a.EmployeeID, a.Date, tasks, formatTime(a.CreatedAt), formatTime(a.UpdatedAt))
	return translateErr(err)
}

func (s *Store) UpdateActivity(ctx context.Context, a models.WorkActivity) error {
	tasks, err := encodeTasks(a.Tasks)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `
		UPDATE work_activities SET employee_id = ?, tasks = ?, updated_at = ?
		WHERE id = ?`,
		a.EmployeeID, tasks, formatTime(a.UpdatedAt), a.ID)
	if err != nil {
		return translateErr(err)
	}
	return checkAffected(res)
}

func (s *Store) ListActivities(ctx context.Context, f storage.ActivityFilter) ([]models.WorkActivity, error) {
	var where []string
	var args []any
	if f.EmployeeName != "" {
		where = append(where, "employee_name = ?")
		args = append(args, f.EmployeeName)
	}
	if f.EmployeeID != "" {
		where = append(where, "employee_id = ?")
		args = append(args, f.EmployeeID)
	}
	if f.From != "" {
		where = append(where, "date >= ?")
		args = append(args, f.From)
	}
	if f.To != "" {
		where = append(where, "date <= ?")
		args = append(args, f.To)
	}
	if f.Before != "" {
		where = append(where, "date < ?")
		args = append(args, f.Before)
	}

	query := `SELECT ` + activityColumns + ` FROM work_activities`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY date DESC, employee_name ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activities []models.WorkActivity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		activities = append(activities, a)
	}
	return activities, rows.Err()
}

func (s *Store) DeleteActivity(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM work_activities WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkAffected(res)
}
