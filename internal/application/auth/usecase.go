package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Permuta-api/internal/application/dto"
	"github.com/jhoicas/Permuta-api/internal/domain"
	"github.com/jhoicas/Permuta-api/internal/domain/entity"
	"github.com/jhoicas/Permuta-api/internal/domain/repository"
	"github.com/jhoicas/Permuta-api/pkg/jwt"
)

// Datos del usuario sintético que representa a la sesión admin.
const (
	adminEmail     = "admin@sistema.permuta"
	adminFirstName = "Administrador"
	adminLastName  = "Sistema"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: sesión, login admin y sincronización del proveedor.
type AuthUseCase struct {
	userRepo      repository.UserRepository
	credRepo      repository.AdminCredentialRepository
	adminUsername string
	jwtCfg        JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(
	userRepo repository.UserRepository,
	credRepo repository.AdminCredentialRepository,
	adminUsername string,
	jwtCfg JWTConfig,
) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, credRepo: credRepo, adminUsername: adminUsername, jwtCfg: jwtCfg}
}

// SeedAdmin guarda la credencial inicial si todavía no existe ninguna.
// Una contraseña ya cambiada no se pisa al reiniciar.
func (uc *AuthUseCase) SeedAdmin(ctx context.Context, password string) (bool, error) {
	cred, err := uc.credRepo.Get(ctx, uc.adminUsername)
	if err != nil {
		return false, err
	}
	if cred != nil {
		return false, nil
	}
	if password == "" {
		return false, fmt.Errorf("auth: contraseña inicial del administrador vacía")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}
	err = uc.credRepo.Upsert(ctx, &entity.AdminCredential{
		Username:     uc.adminUsername,
		PasswordHash: string(hash),
		UpdatedAt:    time.Now(),
	})
	return err == nil, err
}

// AdminLogin verifica usuario/contraseña y emite un token de sesión admin.
func (uc *AuthUseCase) AdminLogin(ctx context.Context, in dto.AdminLoginRequest) (*dto.AdminLoginResponse, error) {
	cred, err := uc.credRepo.Get(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if cred == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}

	now := time.Now()
	session := entity.NewAdminSession("admin-"+uuid.New().String(), now)
	token, err := jwt.Generate(uc.jwtCfg.Secret, uc.jwtCfg.Issuer, jwt.Claims{
		RegisteredClaims: gojwt.RegisteredClaims{Subject: session.AdminID},
		Kind:             jwt.KindAdmin,
		AdminSince:       now.Unix(),
	}, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.AdminLoginResponse{
		Success: true,
		Token:   token,
		User:    AdminUser(session),
	}, nil
}

// ChangePassword verifica la contraseña actual y persiste el hash de la nueva.
func (uc *AuthUseCase) ChangePassword(ctx context.Context, in dto.ChangePasswordRequest) error {
	cred, err := uc.credRepo.Get(ctx, uc.adminUsername)
	if err != nil {
		return err
	}
	if cred == nil {
		return fmt.Errorf("auth: credencial admin no inicializada: %w", domain.ErrNotFound)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(in.CurrentPassword)); err != nil {
		return domain.ErrWrongPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	cred.PasswordHash = string(hash)
	cred.UpdatedAt = time.Now()
	return uc.credRepo.Upsert(ctx, cred)
}

// ParseSession valida el token Bearer y lo convierte en la sesión tipada.
func (uc *AuthUseCase) ParseSession(token string) (*entity.Session, error) {
	claims, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		return nil, errors.Join(domain.ErrUnauthorized, err)
	}
	switch claims.Kind {
	case jwt.KindAdmin:
		return entity.NewAdminSession(claims.Subject, time.Unix(claims.AdminSince, 0)), nil
	default:
		return entity.NewProviderSession(entity.ProviderClaims{
			Subject:         claims.Subject,
			Email:           claims.Email,
			FirstName:       claims.FirstName,
			LastName:        claims.LastName,
			ProfileImageURL: claims.ProfileImageURL,
		}), nil
	}
}

// SyncProvider crea o actualiza el usuario de una sesión provider con los datos
// del token. Nunca modifica rol ni plan.
func (uc *AuthUseCase) SyncProvider(ctx context.Context, session *entity.Session) (*dto.UserResponse, error) {
	if session.UserID() == "" {
		return nil, domain.ErrForbidden
	}
	c := session.Provider
	now := time.Now()
	user, err := uc.userRepo.Upsert(ctx, &entity.User{
		ID:              c.Subject,
		Email:           optional(c.Email),
		FirstName:       optional(c.FirstName),
		LastName:        optional(c.LastName),
		ProfileImageURL: optional(c.ProfileImageURL),
		CreatedAt:       now,
		UpdatedAt:       now,
	})
	if err != nil {
		return nil, err
	}
	return dto.ToUserResponse(user), nil
}

// AdminUser usuario sintético de la sesión admin; no tiene fila en users.
func AdminUser(session *entity.Session) dto.AdminUserResponse {
	return dto.AdminUserResponse{
		ID:        session.AdminID,
		Email:     adminEmail,
		FirstName: adminFirstName,
		LastName:  adminLastName,
		Role:      entity.RoleAdmin,
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
