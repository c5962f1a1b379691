package sqlite

import (
	"context"
	"database/sql"

	"github.com/julianstephens/workform/internal/models"
)

const employeeColumns = `id, name, category, email, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEmployee(row rowScanner) (models.Employee, error) {
	var e models.Employee
	var category, createdAt, updatedAt string
	if err := row.Scan(&e.ID, &e.Name, &category, &e.Email, &createdAt, &updatedAt); err != nil {
		return models.Employee{}, err
	}
	e.Category = models.Category(category)
	e.CreatedAt = parseTime(createdAt)
	e.UpdatedAt = parseTime(updatedAt)
	return e, nil
}

func (s *Store) AddEmployee(ctx context.Context, e models.Employee) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO employees (`+employeeColumns+`)
		VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.Name, string(e.Category), e.Email, formatTime(e.CreatedAt), formatTime(e.UpdatedAt))
	return translateErr(err)
}

func (s *Store) GetEmployee(ctx context.Context, id string) (models.Employee, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = ?`, id)
	e, err := scanEmployee(row)
	return e, translateErr(err)
}

func (s *Store) FindEmployee(ctx context.Context, name string, category models.Category) (models.Employee, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+employeeColumns+` FROM employees WHERE name = ? AND category = ?`, name, string(category))
	e, err := scanEmployee(row)
	return e, translateErr(err)
}

func (s *Store) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+employeeColumns+` FROM employees ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEmployees(rows)
}

func collectEmployees(rows *sql.Rows) ([]models.Employee, error) {
	var employees []models.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

func (s *Store) UpdateEmployee(ctx context.Context, e models.Employee) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE employees SET name = ?, category = ?, email = ?, updated_at = ?
		WHERE id = ?`,
		e.Name, string(e.Category), e.Email, formatTime(e.UpdatedAt), e.ID)
	if err != nil {
		return translateErr(err)
	}
	return checkAffected(res)
}

func (s *Store) DeleteEmployee(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM employees WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkAffected(res)
}
