package usecase

import (
	"context"

	"github.com/jhoicas/Permuta-api/internal/application/dto"
	"github.com/jhoicas/Permuta-api/internal/domain/repository"
)

// ActivityUseCase lectura del feed de actividad.
type ActivityUseCase struct {
	repo repository.ActivityRepository
}

// NewActivityUseCase construye el caso de uso.
func NewActivityUseCase(repo repository.ActivityRepository) *ActivityUseCase {
	return &ActivityUseCase{repo: repo}
}

// List actividades más recientes primero; limit <= 0 devuelve todas.
func (uc *ActivityUseCase) List(ctx context.Context, limit int) ([]dto.ActivityResponse, error) {
	list, err := uc.repo.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ActivityResponse, 0, len(list))
	for _, a := range list {
		items = append(items, *dto.ToActivityResponse(a))
	}
	return items, nil
}
