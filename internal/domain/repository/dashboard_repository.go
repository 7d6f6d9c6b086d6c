package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Permuta-api/internal/domain/entity"
)

// DashboardRepository consultas escalares de solo lectura para el dashboard.
// Cada método es una agregación independiente.
type DashboardRepository interface {
	CountUsers(ctx context.Context) (int64, error)
	CountPermutasByStatus(ctx context.Context, statuses ...entity.PermutaStatus) (int64, error)
	CountSectors(ctx context.Context) (int64, error)
	// CompletionRate porcentaje de permutas completadas (0 si no hay permutas).
	CompletionRate(ctx context.Context) (decimal.Decimal, error)
}
