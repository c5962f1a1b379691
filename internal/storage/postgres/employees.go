package postgres

import (
	"context"

	"github.com/julianstephens/workform/internal/models"
)

const employeeColumns = `id, name, category, email, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEmployee(row rowScanner) (models.Employee, error) {
	var e models.Employee
	var category string
	if err := row.Scan(&e.ID, &e.Name, &category, &e.Email, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return models.Employee{}, err
	}
	e.Category = models.Category(category)
	return e, nil
}

func (s *Store) AddEmployee(ctx context.Context, e models.Employee) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO employees (`+employeeColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		e.ID, e.Name, string(e.Category), e.Email, e.CreatedAt, e.UpdatedAt)
	return translateErr(err)
}

func (s *Store) GetEmployee(ctx context.Context, id string) (models.Employee, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = $1`, id)
	e, err := scanEmployee(row)
	return e, translateErr(err)
}

func (s *Store) FindEmployee(ctx context.Context, name string, category models.Category) (models.Employee, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+employeeColumns+` FROM employees WHERE name = $1 AND category = $2`, name, string(category))
	e, err := scanEmployee(row)
	return e, translateErr(err)
}

func (s *Store) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+employeeColumns+` FROM employees ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

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
		UPDATE employees SET name = $1, category = $2, email = $3, updated_at = $4
		WHERE id = $5`,
		e.Name, string(e.Category), e.Email, e.UpdatedAt, e.ID)
	if err != nil {
		return translateErr(err)
	}
	return checkAffected(res)
}

func (s *Store) DeleteEmployee(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffected(res)
}
