package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Permuta-api/internal/application/dto"
	"github.com/jhoicas/Permuta-api/internal/domain/entity"
	"github.com/jhoicas/Permuta-api/internal/domain/repository"
	"github.com/jhoicas/Permuta-api/pkg/textfold"
)

// SectorUseCase CRUD de sectores. La creación registra actividad en la misma transacción.
type SectorUseCase struct {
	repo repository.SectorRepository
	tx   repository.TxRunner
}

// NewSectorUseCase construye el caso de uso.
func NewSectorUseCase(repo repository.SectorRepository, tx repository.TxRunner) *SectorUseCase {
	return &SectorUseCase{repo: repo, tx: tx}
}

// List devuelve los sectores. q filtra por nombre, ciudad o descripción
// sin distinguir mayúsculas ni acentos.
func (uc *SectorUseCase) List(ctx context.Context, q string) ([]dto.SectorResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SectorResponse, 0, len(list))
	for _, s := range list {
		if q != "" && !matchesSector(s, q) {
			continue
		}
		items = append(items, *dto.ToSectorResponse(s))
	}
	return items, nil
}

func matchesSector(s *entity.Sector, q string) bool {
	if textfold.Contains(s.Name, q) {
		return true
	}
	for _, f := range []*string{s.City, s.Description} {
		if f != nil && textfold.Contains(*f, q) {
			return true
		}
	}
	return false
}

// GetByID obtiene un sector por ID; (nil, nil) si no existe.
func (uc *SectorUseCase) GetByID(ctx context.Context, id int64) (*dto.SectorResponse, error) {
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.ToSectorResponse(s), nil
}

// Create inserta el sector y su actividad sector_created atómicamente.
func (uc *SectorUseCase) Create(ctx context.Context, session *entity.Session, in dto.CreateSectorRequest) (*dto.SectorResponse, error) {
	now := time.Now()
	sector := &entity.Sector{
		Name:        in.Name,
		Description: in.Description,
		Address:     in.Address,
		City:        in.City,
		ZipCode:     in.ZipCode,
		Phone:       in.Phone,
		Email:       in.Email,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err := uc.tx.Run(ctx, func(repos repository.TxRepos) error {
		if err := repos.Sectors.Create(ctx, sector); err != nil {
			return fmt.Errorf("sector: crear: %w", err)
		}
		if err := repos.Activities.Create(ctx, entity.SectorCreatedActivity(session.ActorID(), sector)); err != nil {
			return fmt.Errorf("sector: registrar actividad: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto.ToSectorResponse(sector), nil
}

// Update aplica solo los campos presentes; (nil, nil) si no existe.
func (uc *SectorUseCase) Update(ctx context.Context, id int64, in dto.UpdateSectorRequest) (*dto.SectorResponse, error) {
	s, err := uc.repo.Update(ctx, id, in.Patch(), time.Now())
	if err != nil {
		return nil, err
	}
	return dto.ToSectorResponse(s), nil
}

// Delete borra el sector. domain.ErrReferenced si alguna permuta lo usa.
func (uc *SectorUseCase) Delete(ctx context.Context, id int64) (bool, error) {
	return uc.repo.Delete(ctx, id)
}
