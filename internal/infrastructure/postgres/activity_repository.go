package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Permuta-api/internal/domain"
	"github.com/jhoicas/Permuta-api/internal/domain/entity"
	"github.com/jhoicas/Permuta-api/internal/domain/repository"
)

var _ repository.ActivityRepository = (*ActivityRepo)(nil)

// ActivityRepo feed de actividad sobre PostgreSQL (usable con pool o tx).
type ActivityRepo struct {
	q Querier
}

// NewActivityRepository construye el adaptador. Pasar pool o tx (Querier).
func NewActivityRepository(q Querier) *ActivityRepo {
	return &ActivityRepo{q: q}
}

// List actividades más recientes primero.
func (r *ActivityRepo) List(ctx context.Context, limit int) ([]*entity.Activity, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, user_id, permuta_id, sector_id, type, description, created_at
		FROM activities ORDER BY created_at DESC, id DESC LIMIT $1`, limitArg(limit))
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	defer rows.Close()
	var list []*entity.Activity
	for rows.Next() {
		var a entity.Activity
		if err := rows.Scan(&a.ID, &a.UserID, &a.PermutaID, &a.SectorID, &a.Type, &a.Description, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// Create inserta la actividad; created_at lo asigna la base.
func (r *ActivityRepo) Create(ctx context.Context, a *entity.Activity) error {
	query := `
		INSERT INTO activities (user_id, permuta_id, sector_id, type, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`
	err := r.q.QueryRow(ctx, query, a.UserID, a.PermutaID, a.SectorID, a.Type, a.Description).
		Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		return translateWriteError("insert activity", err, domain.ErrInvalidReference)
	}
	return nil
}
