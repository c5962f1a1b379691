package postgres

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
	var tasks []byte
	if err := row.Scan(&a.ID, &a.EmployeeName, &a.EmployeeID, &a.Date, &tasks, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return models.WorkActivity{}, err
	}
	if err := json.Unmarshal(tasks, &a.Tasks); err != nil {
		return models.WorkActivity{}, fmt.Errorf("decoding tasks for activity %s: %w", a.ID, err)
	}
	return a, nil
}

func encodeTasks(tasks []models.Task) ([]byte, error) {
	if tasks == nil {
		tasks = []models.Task{}
	}
	b, err := json.Marshal(tasks)
	if err != nil {
		return nil, fmt.Errorf("encoding tasks: %w", err)
	}
	return b, nil
}

func (s *Store) GetActivity(ctx context.Context, employeeName, date string) (models.WorkActivity, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+activityColumns+` FROM work_activities WHERE employee_name = $1 AND date = $2`, employeeName, date)
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
		VALUES ($1, $2, $3, $4, $5::jsonb, $6, $7)`,
		a.ID, a.EmployeeName, a.EmployeeID, a.Date, string(tasks), a.CreatedAt, a.UpdatedAt)
	return translateErr(err)
}

func (s *Store) UpdateActivity(ctx context.Context, a models.WorkActivity) error {
	tasks, err := encodeTasks(a.Tasks)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `
		UPDATE work_activities SET employee_id = $1, tasks = $2::jsonb, updated_at = $3
		WHERE id = $4`,
		a.EmployeeID, string(tasks), a.UpdatedAt, a.ID)
	if err != nil {
		return translateErr(err)
	}
	return checkAffected(res)
}

func (s *Store) ListActivities(ctx context.Context, f storage.ActivityFilter) ([]models.WorkActivity, error) {
	var where []string
	var args []any
	add := func(cond, val string) {
		args = append(args, val)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if f.EmployeeName != "" {
		add("employee_name = $%d", f.EmployeeName)
	}
	if f.EmployeeID != "" {
		add("employee_id = $%d", f.EmployeeID)
	}
	if f.From != "" {
		add("date >= $%d", f.From)
	}
	if f.To != "" {
		add("date <= $%d", f.To)
	}
	if f.Before != "" {
		add("date < $%d", f.Before)
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
	res, err := s.db.ExecContext(ctx, `DELETE FROM work_activities WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffected(res)
}
