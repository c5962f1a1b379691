package sqlite

import (
	"context"

	"github.com/julianstephens/workform/internal/models"
)

const adminColumns = `id, email, password_hash, name, created_at, updated_at`

func scanAdmin(row rowScanner) (models.Admin, error) {
	var a models.Admin
	var createdAt, updatedAt string
	if err := row.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.Name, &createdAt, &updatedAt); err != nil {
		return models.Admin{}, err
	}
	a.CreatedAt = parseTime(createdAt)
	a.UpdatedAt = parseTime(updatedAt)
	return a, nil
}

func (s *Store) AddAdmin(ctx context.Context, a models.Admin) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO admins (`+adminColumns+`)
		VALUES (?, ?, ?, ?, ?, ?)`,
		a.ID, a.Email, a.PasswordHash, a.Name, formatTime(a.CreatedAt), formatTime(a.UpdatedAt))
	return translateErr(err)
}

func (s *Store) GetAdmin(ctx context.Context, id string) (models.Admin, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+adminColumns+` FROM admins WHERE id = ?`, id)
	a, err := scanAdmin(row)
	return a, translateErr(err)
}

func (s *Store) GetAdminByEmail(ctx context.Context, email string) (models.Admin, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+adminColumns+` FROM admins WHERE email = ?`, email)
	a, err := scanAdmin(row)
	return a, translateErr(err)
}
