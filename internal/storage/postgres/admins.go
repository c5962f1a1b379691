package postgres

import (
	"context"

	"github.com/julianstephens/workform/internal/models"
)

const adminColumns = `id, email, password_hash, name, created_at, updated_at`

func scanAdmin(row rowScanner) (models.Admin, error) {
	var a models.Admin
	if err := row.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.Name, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return models.Admin{}, err
	}
	return a, nil
}

func (s *Store) AddAdmin(ctx context.Context, a models.Admin) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO admins (`+adminColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		a.ID, a.Email, a.PasswordHash, a.Name, a.CreatedAt, a.UpdatedAt)
	return translateErr(err)
}

func (s *Store) GetAdmin(ctx context.Context, id string) (models.Admin, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+adminColumns+` FROM admins WHERE id = $1`, id)
	a, err := scanAdmin(row)
	return a, translateErr(err)
}

func (s *Store) GetAdminByEmail(ctx context.Context, email string) (models.Admin, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+adminColumns+` FROM admins WHERE email = $1`, email)
	a, err := scanAdmin(row)
	return a, translateErr(err)
}
