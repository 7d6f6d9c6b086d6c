package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Permuta-api/internal/domain/entity"
)

// PermutaRepository define el puerto de persistencia para Permuta.
// Todos los listados devuelven la más reciente primero (created_at DESC).
type PermutaRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.Permuta, error)
	List(ctx context.Context, limit int) ([]*entity.Permuta, error)
	ListByStatus(ctx context.Context, status entity.PermutaStatus, limit int) ([]*entity.Permuta, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]*entity.Permuta, error)
	// Create asigna ID y timestamps; domain.ErrInvalidReference si usuario o sector no existen.
	Create(ctx context.Context, permuta *entity.Permuta) error
	Update(ctx context.Context, id int64, patch entity.PermutaPatch, now time.Time) (*entity.Permuta, error)
	// UpdateStatus sobrescribe el estado; fija completed_at = now solo si status es completed.
	UpdateStatus(ctx context.Context, id int64, status entity.PermutaStatus, now time.Time) (*entity.Permuta, error)
	Delete(ctx context.Context, id int64) (bool, error)
}
