// Package permuta contiene el ciclo de vida de una permuta: alta, cambios de
// estado con su registro en el feed de actividad y el comprobante PDF.
package permuta

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Permuta-api/internal/application/dto"
	"github.com/jhoicas/Permuta-api/internal/domain"
	"github.com/jhoicas/Permuta-api/internal/domain/entity"
	"github.com/jhoicas/Permuta-api/internal/domain/repository"
)

// UseCase operaciones sobre permutas.
type UseCase struct {
	repo      repository.PermutaRepository
	users     repository.UserRepository
	sectors   repository.SectorRepository
	tx        repository.TxRunner
	generator ReceiptGenerator
}

// NewUseCase construye el caso de uso inyectando sus dependencias.
func NewUseCase(
	repo repository.PermutaRepository,
	users repository.UserRepository,
	sectors repository.SectorRepository,
	tx repository.TxRunner,
	generator ReceiptGenerator,
) *UseCase {
	return &UseCase{repo: repo, users: users, sectors: sectors, tx: tx, generator: generator}
}

// List aplica uno de tres modos excluyentes: por estado, por usuario o todas.
// Si el filtro trae estado y usuario, gana el estado.
func (uc *UseCase) List(ctx context.Context, filter entity.PermutaFilter) ([]dto.PermutaResponse, error) {
	var (
		list []*entity.Permuta
		err  error
	)
	switch {
	case filter.Status != nil:
		list, err = uc.repo.ListByStatus(ctx, *filter.Status, filter.Limit)
	case filter.UserID != "":
		list, err = uc.repo.ListByUser(ctx, filter.UserID, filter.Limit)
	default:
		list, err = uc.repo.List(ctx, filter.Limit)
	}
	if err != nil {
		return nil, err
	}
	items := make([]dto.PermutaResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *dto.ToPermutaResponse(p))
	}
	return items, nil
}

// GetByID obtiene una permuta; (nil, nil) si no existe.
func (uc *UseCase) GetByID(ctx context.Context, id int64) (*dto.PermutaResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.ToPermutaResponse(p), nil
}

// Create inserta la permuta y su actividad permuta_created en una transacción.
// El dueño es el usuario de la sesión; la sesión admin debe indicar userId.
func (uc *UseCase) Create(ctx context.Context, session *entity.Session, in dto.CreatePermutaRequest) (*dto.PermutaResponse, error) {
	ownerID := session.UserID()
	if ownerID == "" {
		ownerID = in.UserID
	}
	if ownerID == "" {
		return nil, dto.ValidationErrors{{Field: "userId", Message: "userId es requerido en sesión admin"}}
	}

	now := time.Now()
	p := &entity.Permuta{
		UserID:       ownerID,
		FromSectorID: in.FromSectorID,
		ToSectorID:   in.ToSectorID,
		Description:  in.Description,
		CreatedAt:    now,
	}
	p.ApplyStatus(in.InitialStatus(), now)

	err := uc.tx.Run(ctx, func(repos repository.TxRepos) error {
		if err := repos.Permutas.Create(ctx, p); err != nil {
			return fmt.Errorf("permuta: crear: %w", err)
		}
		if err := repos.Activities.Create(ctx, entity.PermutaCreatedActivity(session.ActorID(), p)); err != nil {
			return fmt.Errorf("permuta: registrar actividad: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto.ToPermutaResponse(p), nil
}

// Update aplica el patch (sectores y descripción); (nil, nil) si no existe.
// Los sectores resultantes de la mezcla deben seguir siendo distintos.
func (uc *UseCase) Update(ctx context.Context, id int64, in dto.UpdatePermutaRequest) (*dto.PermutaResponse, error) {
	var updated *entity.Permuta
	err := uc.tx.Run(ctx, func(repos repository.TxRepos) error {
		current, err := repos.Permutas.GetByID(ctx, id)
		if err != nil || current == nil {
			return err
		}
		if err := in.ValidateMerged(current); err != nil {
			return err
		}
		updated, err = repos.Permutas.Update(ctx, id, in.Patch(), time.Now())
		return err
	})
	if err != nil {
		return nil, err
	}
	return dto.ToPermutaResponse(updated), nil
}

// UpdateStatus cambia el estado y registra la actividad correspondiente.
//
// Ambas escrituras van en la misma transacción: si la actividad falla, el
// cambio de estado se revierte. Retorna domain.ErrNotFound si la permuta no existe.
func (uc *UseCase) UpdateStatus(ctx context.Context, session *entity.Session, id int64, status entity.PermutaStatus) (*dto.PermutaResponse, error) {
	if _, ok := entity.ParsePermutaStatus(string(status)); !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, status)
	}

	var updated *entity.Permuta
	err := uc.tx.Run(ctx, func(repos repository.TxRepos) error {
		p, err := repos.Permutas.UpdateStatus(ctx, id, status, time.Now())
		if err != nil {
			return fmt.Errorf("permuta: actualizar estado: %w", err)
		}
		if p == nil {
			return domain.ErrNotFound
		}
		if err := repos.Activities.Create(ctx, entity.PermutaStatusActivity(session.ActorID(), p)); err != nil {
			return fmt.Errorf("permuta: registrar actividad: %w", err)
		}
		updated = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto.ToPermutaResponse(updated), nil
}

// Delete borra la permuta; las actividades quedan con permutaId nulo.
func (uc *UseCase) Delete(ctx context.Context, id int64) (bool, error) {
	return uc.repo.Delete(ctx, id)
}

// Receipt genera el comprobante PDF y el nombre de archivo sugerido.
// Retorna domain.ErrNotFound si la permuta no existe.
func (uc *UseCase) Receipt(ctx context.Context, id int64) ([]byte, string, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, "", fmt.Errorf("comprobante: obtener permuta: %w", err)
	}
	if p == nil {
		return nil, "", domain.ErrNotFound
	}
	owner, err := uc.users.GetByID(ctx, p.UserID)
	if err != nil {
		return nil, "", fmt.Errorf("comprobante: obtener usuario: %w", err)
	}
	from, err := uc.sectors.GetByID(ctx, p.FromSectorID)
	if err != nil {
		return nil, "", fmt.Errorf("comprobante: obtener sector origen: %w", err)
	}
	to, err := uc.sectors.GetByID(ctx, p.ToSectorID)
	if err != nil {
		return nil, "", fmt.Errorf("comprobante: obtener sector destino: %w", err)
	}

	pdfBytes, err := uc.generator.PermutaReceipt(ctx, ReceiptData{
		Permuta:    p,
		Owner:      owner,
		FromSector: from,
		ToSector:   to,
	})
	if err != nil {
		return nil, "", fmt.Errorf("comprobante: generar PDF: %w", err)
	}
	return pdfBytes, fmt.Sprintf("permuta-%d.pdf", p.ID), nil
}
