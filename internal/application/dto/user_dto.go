package dto

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/jhoicas/Permuta-api/internal/domain/entity"
)

// UserResponse salida de un usuario.
type UserResponse struct {
	ID               string     `json:"id"`
	Username         *string    `json:"username"`
	Email            *string    `json:"email"`
	FirstName        *string    `json:"firstName"`
	LastName         *string    `json:"lastName"`
	ProfileImageURL  *string    `json:"profileImageUrl"`
	Role             string     `json:"role"`
	AccountType      string     `json:"accountType"`
	AccountExpiresAt *time.Time `json:"accountExpiresAt"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// UpsertUserRequest alta o actualización de un usuario por id (sincronización con el proveedor).
// Sin id se genera uno nuevo.
type UpsertUserRequest struct {
	ID              string  `json:"id"`
	Username        *string `json:"username"`
	Email           *string `json:"email"`
	FirstName       *string `json:"firstName"`
	LastName        *string `json:"lastName"`
	ProfileImageURL *string `json:"profileImageUrl"`
	Role            string  `json:"role"`
	AccountType     string  `json:"accountType"`
}

// Validate reglas del esquema de inserción de users.
func (r UpsertUserRequest) Validate() error {
	var errs ValidationErrors
	if len(r.ID) > 255 {
		errs.add("id", "excede la longitud máxima")
	}
	if r.Email != nil && !validEmail(*r.Email) {
		errs.add("email", "email inválido")
	}
	errs.checkOptionalText("username", r.Username, 255)
	errs.checkOptionalText("firstName", r.FirstName, 255)
	errs.checkOptionalText("lastName", r.LastName, 255)
	errs.checkOptionalText("profileImageUrl", r.ProfileImageURL, 2048)
	if r.Role != "" && !entity.ValidRole(r.Role) {
		errs.add("role", "debe ser user o admin")
	}
	if r.AccountType != "" && !entity.ValidAccountType(r.AccountType) {
		errs.add("accountType", "debe ser free, pro_i, pro_ii o premium")
	}
	return errs.Err()
}

// UpdateRoleRequest cambio de rol.
type UpdateRoleRequest struct {
	Role string `json:"role"`
}

// Validate el rol debe ser un texto no vacío del conjunto conocido.
func (r UpdateRoleRequest) Validate() error {
	var errs ValidationErrors
	if blank(r.Role) {
		errs.add("role", "role es requerido")
	} else if !entity.ValidRole(r.Role) {
		errs.add("role", "debe ser user o admin")
	}
	return errs.Err()
}

// PromoteUserRequest cambio de plan. Duration en días; acepta número o texto ("7").
type PromoteUserRequest struct {
	AccountType string      `json:"accountType"`
	Duration    json.Number `json:"duration"`
}

// Days devuelve la duración validada en días.
func (r PromoteUserRequest) Days() (int, bool) {
	n, err := strconv.Atoi(r.Duration.String())
	if err != nil {
		return 0, false
	}
	for _, d := range entity.PromotionDurations {
		if d == n {
			return n, true
		}
	}
	return 0, false
}

// Validate plan del enum y duración permitida (la duración se ignora para free).
func (r PromoteUserRequest) Validate() error {
	var errs ValidationErrors
	if !entity.ValidAccountType(r.AccountType) {
		errs.add("accountType", "debe ser free, pro_i, pro_ii o premium")
	}
	if r.AccountType != entity.AccountFree {
		if _, ok := r.Days(); !ok {
			errs.add("duration", "debe ser 7, 15, 30 o 365")
		}
	}
	return errs.Err()
}

// ToUserResponse convierte la entidad.
func ToUserResponse(u *entity.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:               u.ID,
		Username:         u.Username,
		Email:            u.Email,
		FirstName:        u.FirstName,
		LastName:         u.LastName,
		ProfileImageURL:  u.ProfileImageURL,
		Role:             u.Role,
		AccountType:      u.AccountType,
		AccountExpiresAt: u.AccountExpiresAt,
		CreatedAt:        u.CreatedAt,
		UpdatedAt:        u.UpdatedAt,
	}
}
