package memory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Permuta-api/internal/domain/entity"
	"github.com/jhoicas/Permuta-api/internal/domain/repository"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo conteos sobre el estado en memoria.
type DashboardRepo struct {
	s *Store
}

func (r *DashboardRepo) CountUsers(_ context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.data.users)), nil
}

func (r *DashboardRepo) CountPermutasByStatus(_ context.Context, statuses ...entity.PermutaStatus) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var n int64
	for _, p := range r.s.data.permutas {
		for _, st := range statuses {
			if p.Status == st {
				n++
				break
			}
		}
	}
	return n, nil
}

func (r *DashboardRepo) CountSectors(_ context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.data.sectors)), nil
}

func (r *DashboardRepo) CompletionRate(_ context.Context) (decimal.Decimal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	total := len(r.s.data.permutas)
	if total == 0 {
		return decimal.Zero, nil
	}
	completed := 0
	for _, p := range r.s.data.permutas {
		if p.Status == entity.PermutaCompleted {
			completed++
		}
	}
	return decimal.NewFromInt(int64(completed)).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(total))).
		Round(2), nil
}
