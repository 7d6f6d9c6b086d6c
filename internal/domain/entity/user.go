package entity

import "time"

// Roles de usuario. El campo es texto libre en la base; la API solo acepta estos.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// ValidRole informa si role es uno de los roles conocidos.
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}

// Planes de cuenta (enum account_type en PostgreSQL).
const (
	AccountFree    = "free"
	AccountProI    = "pro_i"
	AccountProII   = "pro_ii"
	AccountPremium = "premium"
)

// ValidAccountType informa si t pertenece al enum account_type.
func ValidAccountType(t string) bool {
	switch t {
	case AccountFree, AccountProI, AccountProII, AccountPremium:
		return true
	}
	return false
}

// PromotionDurations duraciones (en días) aceptadas al promover un usuario.
var PromotionDurations = []int{7, 15, 30, 365}

// User representa un usuario sincronizado desde el proveedor de identidad.
type User struct {
	ID               string
	Username         *string
	Email            *string
	FirstName        *string
	LastName         *string
	ProfileImageURL  *string
	Role             string
	AccountType      string
	AccountExpiresAt *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// IsAdmin informa si el usuario tiene rol de administrador.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// AccountExpired informa si el plan pago del usuario ya venció en now.
func (u *User) AccountExpired(now time.Time) bool {
	if u == nil || u.AccountType == AccountFree || u.AccountExpiresAt == nil {
		return false
	}
	return u.AccountExpiresAt.Before(now)
}
