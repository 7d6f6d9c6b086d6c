package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Permuta-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Las búsquedas devuelven (nil, nil) cuando el registro no existe.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*entity.User, error)
	// List escaneo completo sin orden garantizado (el cliente hace los joins en memoria).
	List(ctx context.Context) ([]*entity.User, error)
	// Upsert inserta o actualiza por id y devuelve la fila resultante.
	Upsert(ctx context.Context, user *entity.User) (*entity.User, error)
	UpdateRole(ctx context.Context, id, role string, now time.Time) (*entity.User, error)
	UpdateAccount(ctx context.Context, id, accountType string, expiresAt *time.Time, now time.Time) (*entity.User, error)
	Delete(ctx context.Context, id string) (bool, error)
	// DowngradeExpired pasa a free los planes vencidos antes de now y devuelve cuántos cambió.
	DowngradeExpired(ctx context.Context, now time.Time) (int64, error)
}
