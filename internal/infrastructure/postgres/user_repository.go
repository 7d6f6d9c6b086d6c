package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Permuta-api/internal/domain"
	"github.com/jhoicas/Permuta-api/internal/domain/entity"
	"github.com/jhoicas/Permuta-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, username, email, first_name, last_name, profile_image_url,
	role, account_type::text, account_expires_at, created_at, updated_at`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios. Acepta pool o tx.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// List devuelve todos los usuarios.
func (r *UserRepo) List(ctx context.Context) ([]*entity.User, error) {
	rows, err := r.q.Query(ctx, `SELECT `+userColumns+` FROM users`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

// Upsert inserta o actualiza por id. Los campos de perfil nulos conservan el valor
// actual; role y account_type vacíos también.
func (r *UserRepo) Upsert(ctx context.Context, user *entity.User) (*entity.User, error) {
	query := `
		INSERT INTO users (id, username, email, first_name, last_name, profile_image_url,
			role, account_type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6,
			COALESCE(NULLIF($7::text, ''), 'user'),
			COALESCE(NULLIF($8::text, ''), 'free')::account_type,
			$9, $9)
		ON CONFLICT (id) DO UPDATE SET
			username          = COALESCE(EXCLUDED.username, users.username),
			email             = COALESCE(EXCLUDED.email, users.email),
			first_name        = COALESCE(EXCLUDED.first_name, users.first_name),
			last_name         = COALESCE(EXCLUDED.last_name, users.last_name),
			profile_image_url = COALESCE(EXCLUDED.profile_image_url, users.profile_image_url),
			role              = CASE WHEN $7::text = '' THEN users.role ELSE EXCLUDED.role END,
			account_type      = CASE WHEN $8::text = '' THEN users.account_type ELSE EXCLUDED.account_type END,
			updated_at        = EXCLUDED.updated_at
		RETURNING ` + userColumns
	u, err := scanUser(r.q.QueryRow(ctx, query,
		user.ID, user.Username, user.Email, user.FirstName, user.LastName, user.ProfileImageURL,
		user.Role, user.AccountType, user.UpdatedAt,
	))
	if err != nil {
		return nil, translateWriteError("upsert user", err, domain.ErrInvalidReference)
	}
	return u, nil
}

// UpdateRole cambia el rol; (nil, nil) si no existe.
func (r *UserRepo) UpdateRole(ctx context.Context, id, role string, now time.Time) (*entity.User, error) {
	query := `UPDATE users SET role = $2, updated_at = $3 WHERE id = $1 RETURNING ` + userColumns
	return r.updateOne(ctx, "update user role", query, id, role, now)
}

// UpdateAccount cambia plan y vencimiento; (nil, nil) si no existe.
func (r *UserRepo) UpdateAccount(ctx context.Context, id, accountType string, expiresAt *time.Time, now time.Time) (*entity.User, error) {
	query := `
		UPDATE users SET account_type = $2::text::account_type, account_expires_at = $3, updated_at = $4
		WHERE id = $1 RETURNING ` + userColumns
	return r.updateOne(ctx, "update user account", query, id, accountType, expiresAt, now)
}

func (r *UserRepo) updateOne(ctx context.Context, op, query string, args ...any) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// Delete elimina un usuario. domain.ErrReferenced si tiene permutas o mensajes.
func (r *UserRepo) Delete(ctx context.Context, id string) (bool, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return false, translateWriteError("delete user", err, domain.ErrReferenced)
	}
	return cmd.RowsAffected() > 0, nil
}

// DowngradeExpired pasa a free los planes pagos vencidos.
func (r *UserRepo) DowngradeExpired(ctx context.Context, now time.Time) (int64, error) {
	cmd, err := r.q.Exec(ctx, `
		UPDATE users SET account_type = 'free', account_expires_at = NULL, updated_at = $1
		WHERE account_type <> 'free' AND account_expires_at IS NOT NULL AND account_expires_at < $1`, now)
	if err != nil {
		return 0, fmt.Errorf("downgrade expired accounts: %w", err)
	}
	return cmd.RowsAffected(), nil
}

func scanUser(row pgxScanner) (*entity.User, error) {
	var u entity.User
	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.FirstName, &u.LastName, &u.ProfileImageURL,
		&u.Role, &u.AccountType, &u.AccountExpiresAt, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
