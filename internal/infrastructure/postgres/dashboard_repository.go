package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Permuta-api/internal/domain/entity"
	"github.com/jhoicas/Permuta-api/internal/domain/repository"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo agregaciones read-only para el dashboard.
type DashboardRepo struct {
	q Querier
}

// NewDashboardRepository construye el adaptador.
func NewDashboardRepository(q Querier) *DashboardRepo {
	return &DashboardRepo{q: q}
}

// CountUsers total de usuarios.
func (r *DashboardRepo) CountUsers(ctx context.Context) (int64, error) {
	return r.count(ctx, "count users", `SELECT COUNT(*) FROM users`)
}

// CountPermutasByStatus total de permutas en cualquiera de los estados dados.
func (r *DashboardRepo) CountPermutasByStatus(ctx context.Context, statuses ...entity.PermutaStatus) (int64, error) {
	names := make([]string, len(statuses))
	for i, s := range statuses {
		names[i] = string(s)
	}
	return r.count(ctx, "count permutas", `SELECT COUNT(*) FROM permutas WHERE status::text = ANY($1)`, names)
}

// CountSectors total de sectores.
func (r *DashboardRepo) CountSectors(ctx context.Context) (int64, error) {
	return r.count(ctx, "count sectors", `SELECT COUNT(*) FROM sectors`)
}

// CompletionRate porcentaje de permutas completadas con dos decimales.
func (r *DashboardRepo) CompletionRate(ctx context.Context) (decimal.Decimal, error) {
	var rate decimal.Decimal
	err := r.q.QueryRow(ctx, `
		SELECT COALESCE(
			ROUND(100.0 * COUNT(*) FILTER (WHERE status = 'completed') / NULLIF(COUNT(*), 0), 2),
			0)::numeric
		FROM permutas`).Scan(&rate)
	if err != nil {
		return decimal.Zero, fmt.Errorf("completion rate: %w", err)
	}
	return rate, nil
}

func (r *DashboardRepo) count(ctx context.Context, op, query string, args ...any) (int64, error) {
	var n int64
	if err := r.q.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}
