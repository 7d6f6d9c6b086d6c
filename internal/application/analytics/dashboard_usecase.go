// Package analytics contiene el agregador del dashboard de la página inicial.
package analytics

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Permuta-api/internal/application/dto"
	"github.com/jhoicas/Permuta-api/internal/domain/entity"
	"github.com/jhoicas/Permuta-api/internal/domain/repository"
)

// DashboardUseCase calcula los conteos del dashboard.
//
// Fuente de datos: DashboardRepository (consultas escalares read-only).
// Sin caché: cada llamada recalcula los totales históricos.
type DashboardUseCase struct {
	repo repository.DashboardRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(repo repository.DashboardRepository) *DashboardUseCase {
	return &DashboardUseCase{repo: repo}
}

// GetStats construye las estadísticas del dashboard.
//
// Cinco consultas independientes en paralelo:
//  1. CountUsers                        → TotalUsers
//  2. CountPermutasByStatus(activas)    → ActivePermutas
//  3. CountPermutasByStatus(completed)  → CompletedPermutas
//  4. CountSectors                      → Sectors
//  5. CompletionRate                    → CompletionRate
//
// No se toma un snapshot: bajo escrituras concurrentes los conteos pueden
// reflejar instantes ligeramente distintos.
func (uc *DashboardUseCase) GetStats(ctx context.Context) (*dto.DashboardStatsResponse, error) {
	type countResult struct {
		n   int64
		err error
	}
	type rateResult struct {
		rate decimal.Decimal
		err  error
	}

	usersCh := make(chan countResult, 1)
	activeCh := make(chan countResult, 1)
	completedCh := make(chan countResult, 1)
	sectorsCh := make(chan countResult, 1)
	rateCh := make(chan rateResult, 1)

	go func() {
		n, err := uc.repo.CountUsers(ctx)
		usersCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.repo.CountPermutasByStatus(ctx, entity.ActivePermutaStatuses...)
		activeCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.repo.CountPermutasByStatus(ctx, entity.PermutaCompleted)
		completedCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.repo.CountSectors(ctx)
		sectorsCh <- countResult{n, err}
	}()
	go func() {
		r, err := uc.repo.CompletionRate(ctx)
		rateCh <- rateResult{r, err}
	}()

	users := <-usersCh
	active := <-activeCh
	completed := <-completedCh
	sectors := <-sectorsCh
	rate := <-rateCh

	if users.err != nil {
		return nil, fmt.Errorf("dashboard: contar usuarios: %w", users.err)
	}
	if active.err != nil {
		return nil, fmt.Errorf("dashboard: contar permutas activas: %w", active.err)
	}
	if completed.err != nil {
		return nil, fmt.Errorf("dashboard: contar permutas completadas: %w", completed.err)
	}
	if sectors.err != nil {
		return nil, fmt.Errorf("dashboard: contar sectores: %w", sectors.err)
	}
	if rate.err != nil {
		return nil, fmt.Errorf("dashboard: tasa de completadas: %w", rate.err)
	}

	stats := entity.DashboardStats{
		TotalUsers:        users.n,
		ActivePermutas:    active.n,
		CompletedPermutas: completed.n,
		Sectors:           sectors.n,
		CompletionRate:    rate.rate.Round(2),
	}
	return &dto.DashboardStatsResponse{
		TotalUsers:        stats.TotalUsers,
		ActivePermutas:    stats.ActivePermutas,
		CompletedPermutas: stats.CompletedPermutas,
		Sectors:           stats.Sectors,
		CompletionRate:    stats.CompletionRate,
	}, nil
}
