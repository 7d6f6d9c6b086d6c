package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Permuta-api/internal/domain/entity"
)

// SectorRepository define el puerto de persistencia para Sector.
type SectorRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.Sector, error)
	List(ctx context.Context) ([]*entity.Sector, error)
	// Create asigna ID y timestamps sobre el propio sector.
	Create(ctx context.Context, sector *entity.Sector) error
	// Update mezcla solo los campos presentes; (nil, nil) si no existe.
	Update(ctx context.Context, id int64, patch entity.SectorPatch, now time.Time) (*entity.Sector, error)
	// Delete borra físicamente; domain.ErrReferenced si hay permutas que lo usan.
	Delete(ctx context.Context, id int64) (bool, error)
}
