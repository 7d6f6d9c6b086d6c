package repository

import (
	"context"

	"github.com/jhoicas/Permuta-api/internal/domain/entity"
)

// ActivityRepository feed append-only; no hay update ni delete.
type ActivityRepository interface {
	// List más reciente primero; limit <= 0 significa sin límite.
	List(ctx context.Context, limit int) ([]*entity.Activity, error)
	Create(ctx context.Context, activity *entity.Activity) error
}
