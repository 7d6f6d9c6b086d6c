package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Permuta-api/internal/domain/entity"
	"github.com/jhoicas/Permuta-api/internal/domain/repository"
)

var _ repository.AdminCredentialRepository = (*AdminCredentialRepo)(nil)

// AdminCredentialRepo credencial administrativa sobre PostgreSQL.
type AdminCredentialRepo struct {
	q Querier
}

// NewAdminCredentialRepository construye el adaptador.
func NewAdminCredentialRepository(q Querier) *AdminCredentialRepo {
	return &AdminCredentialRepo{q: q}
}

// Get obtiene la credencial de username; (nil, nil) si no existe.
func (r *AdminCredentialRepo) Get(ctx context.Context, username string) (*entity.AdminCredential, error) {
	var c entity.AdminCredential
	err := r.q.QueryRow(ctx,
		`SELECT username, password_hash, updated_at FROM admin_credentials WHERE username = $1`, username,
	).Scan(&c.Username, &c.PasswordHash, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get admin credential: %w", err)
	}
	return &c, nil
}

// Upsert guarda el hash de la contraseña.
func (r *AdminCredentialRepo) Upsert(ctx context.Context, c *entity.AdminCredential) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO admin_credentials (username, password_hash, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (username) DO UPDATE SET password_hash = EXCLUDED.password_hash, updated_at = EXCLUDED.updated_at`,
		c.Username, c.PasswordHash, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert admin credential: %w", err)
	}
	return nil
}
