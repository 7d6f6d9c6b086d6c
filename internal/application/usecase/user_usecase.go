package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Permuta-api/internal/application/dto"
	"github.com/jhoicas/Permuta-api/internal/domain/entity"
	"github.com/jhoicas/Permuta-api/internal/domain/repository"
)

// UserUseCase aplica reglas de negocio para usuarios.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// List devuelve todos los usuarios.
func (uc *UserUseCase) List(ctx context.Context) ([]dto.UserResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *dto.ToUserResponse(u))
	}
	return items, nil
}

// GetByID obtiene un usuario por ID; (nil, nil) si no existe.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.ToUserResponse(user), nil
}

// Find devuelve la entidad (la usan los middlewares de autorización).
func (uc *UserUseCase) Find(ctx context.Context, id string) (*entity.User, error) {
	return uc.repo.GetByID(ctx, id)
}

// Upsert inserta o actualiza un usuario por id. Sin id se genera uno.
// Role y AccountType vacíos conservan el valor actual (o el default al insertar).
func (uc *UserUseCase) Upsert(ctx context.Context, in dto.UpsertUserRequest) (*dto.UserResponse, error) {
	id := in.ID
	if id == "" {
		id = uuid.New().String()
	}
	now := time.Now()
	user, err := uc.repo.Upsert(ctx, &entity.User{
		ID:              id,
		Username:        in.Username,
		Email:           in.Email,
		FirstName:       in.FirstName,
		LastName:        in.LastName,
		ProfileImageURL: in.ProfileImageURL,
		Role:            in.Role,
		AccountType:     in.AccountType,
		CreatedAt:       now,
		UpdatedAt:       now,
	})
	if err != nil {
		return nil, err
	}
	return dto.ToUserResponse(user), nil
}

// UpdateRole cambia el rol; (nil, nil) si el usuario no existe.
func (uc *UserUseCase) UpdateRole(ctx context.Context, id string, in dto.UpdateRoleRequest) (*dto.UserResponse, error) {
	user, err := uc.repo.UpdateRole(ctx, id, in.Role, time.Now())
	if err != nil {
		return nil, err
	}
	return dto.ToUserResponse(user), nil
}

// Promote cambia el plan de cuenta. free no vence; el resto vence en now + duración.
func (uc *UserUseCase) Promote(ctx context.Context, id string, in dto.PromoteUserRequest) (*dto.UserResponse, error) {
	now := time.Now()
	var expiresAt *time.Time
	if in.AccountType != entity.AccountFree {
		days, _ := in.Days()
		t := now.AddDate(0, 0, days)
		expiresAt = &t
	}
	user, err := uc.repo.UpdateAccount(ctx, id, in.AccountType, expiresAt, now)
	if err != nil {
		return nil, err
	}
	return dto.ToUserResponse(user), nil
}

// Delete elimina un usuario. domain.ErrReferenced si tiene permutas o mensajes.
func (uc *UserUseCase) Delete(ctx context.Context, id string) (bool, error) {
	return uc.repo.Delete(ctx, id)
}

// ExpireAccounts devuelve a free los planes vencidos (job programado).
func (uc *UserUseCase) ExpireAccounts(ctx context.Context) (int64, error) {
	n, err := uc.repo.DowngradeExpired(ctx, time.Now())
	if err != nil {
		return 0, fmt.Errorf("usuarios: vencer planes: %w", err)
	}
	return n, nil
}
