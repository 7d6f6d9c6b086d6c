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

var _ repository.PermutaRepository = (*PermutaRepo)(nil)

const permutaColumns = `id, user_id, from_sector_id, to_sector_id, status::text, description,
	created_at, updated_at, completed_at`

// PermutaRepo implementación de PermutaRepository sobre PostgreSQL (usable con pool o tx).
type PermutaRepo struct {
	q Querier
}

// NewPermutaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPermutaRepository(q Querier) *PermutaRepo {
	return &PermutaRepo{q: q}
}

// GetByID obtiene una permuta por ID.
func (r *PermutaRepo) GetByID(ctx context.Context, id int64) (*entity.Permuta, error) {
	p, err := scanPermuta(r.q.QueryRow(ctx, `SELECT `+permutaColumns+` FROM permutas WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get permuta: %w", err)
	}
	return p, nil
}

// List todas las permutas, más recientes primero.
func (r *PermutaRepo) List(ctx context.Context, limit int) ([]*entity.Permuta, error) {
	return r.list(ctx, `SELECT `+permutaColumns+` FROM permutas
		ORDER BY created_at DESC, id DESC LIMIT $1`, limitArg(limit))
}

// ListByStatus permutas con el estado dado, más recientes primero.
func (r *PermutaRepo) ListByStatus(ctx context.Context, status entity.PermutaStatus, limit int) ([]*entity.Permuta, error) {
	return r.list(ctx, `SELECT `+permutaColumns+` FROM permutas WHERE status::text = $1
		ORDER BY created_at DESC, id DESC LIMIT $2`, string(status), limitArg(limit))
}

// ListByUser permutas de un usuario, más recientes primero.
func (r *PermutaRepo) ListByUser(ctx context.Context, userID string, limit int) ([]*entity.Permuta, error) {
	return r.list(ctx, `SELECT `+permutaColumns+` FROM permutas WHERE user_id = $1
		ORDER BY created_at DESC, id DESC LIMIT $2`, userID, limitArg(limit))
}

func (r *PermutaRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Permuta, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list permutas: %w", err)
	}
	defer rows.Close()
	var list []*entity.Permuta
	for rows.Next() {
		p, err := scanPermuta(rows)
		if err != nil {
			return nil, fmt.Errorf("scan permuta: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Create persiste la permuta y completa ID y timestamps.
func (r *PermutaRepo) Create(ctx context.Context, p *entity.Permuta) error {
	query := `
		INSERT INTO permutas (user_id, from_sector_id, to_sector_id, status, description,
			created_at, updated_at, completed_at)
		VALUES ($1, $2, $3, $4::text::permuta_status, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`
	err := r.q.QueryRow(ctx, query,
		p.UserID, p.FromSectorID, p.ToSectorID, string(p.Status), p.Description,
		p.CreatedAt, p.UpdatedAt, p.CompletedAt,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return translateWriteError("insert permuta", err, domain.ErrInvalidReference)
	}
	return nil
}

// Update mezcla sectores y descripción presentes en el patch.
func (r *PermutaRepo) Update(ctx context.Context, id int64, patch entity.PermutaPatch, now time.Time) (*entity.Permuta, error) {
	query := `
		UPDATE permutas SET
			from_sector_id = COALESCE($2, from_sector_id),
			to_sector_id   = COALESCE($3, to_sector_id),
			description    = COALESCE($4, description),
			updated_at     = $5
		WHERE id = $1
		RETURNING ` + permutaColumns
	p, err := scanPermuta(r.q.QueryRow(ctx, query, id, patch.FromSectorID, patch.ToSectorID, patch.Description, now))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, translateWriteError("update permuta", err, domain.ErrInvalidReference)
	}
	return p, nil
}

// UpdateStatus sobrescribe el estado. completed_at solo se fija al pasar a
// completed; en cualquier otro caso se conserva.
func (r *PermutaRepo) UpdateStatus(ctx context.Context, id int64, status entity.PermutaStatus, now time.Time) (*entity.Permuta, error) {
	query := `
		UPDATE permutas SET
			status       = $2::text::permuta_status,
			updated_at   = $3,
			completed_at = CASE WHEN $2::text = 'completed' THEN $3 ELSE completed_at END
		WHERE id = $1
		RETURNING ` + permutaColumns
	p, err := scanPermuta(r.q.QueryRow(ctx, query, id, string(status), now))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("update permuta status: %w", err)
	}
	return p, nil
}

// Delete elimina la permuta; las actividades quedan con permuta_id NULL.
func (r *PermutaRepo) Delete(ctx context.Context, id int64) (bool, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM permutas WHERE id = $1`, id)
	if err != nil {
		return false, translateWriteError("delete permuta", err, domain.ErrReferenced)
	}
	return cmd.RowsAffected() > 0, nil
}

func scanPermuta(row pgxScanner) (*entity.Permuta, error) {
	var (
		p      entity.Permuta
		status string
	)
	err := row.Scan(
		&p.ID, &p.UserID, &p.FromSectorID, &p.ToSectorID, &status, &p.Description,
		&p.CreatedAt, &p.UpdatedAt, &p.CompletedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Status = entity.PermutaStatus(status)
	return &p, nil
}
