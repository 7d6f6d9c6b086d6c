package entity

import "time"

// SessionKind variante de la sesión.
type SessionKind string

const (
	SessionProvider SessionKind = "provider"
	SessionAdmin    SessionKind = "admin"
)

// ProviderClaims identidad entregada por el proveedor externo.
type ProviderClaims struct {
	Subject         string
	Email           string
	FirstName       string
	LastName        string
	ProfileImageURL string
}

// Session unión etiquetada: o bien una sesión del proveedor de identidad
// (Provider != nil) o bien una sesión administrativa (AdminID/AdminSince).
// Un *Session nil representa un visitante anónimo.
type Session struct {
	Kind       SessionKind
	Provider   *ProviderClaims
	AdminID    string
	AdminSince time.Time
}

// NewProviderSession construye la variante provider.
func NewProviderSession(c ProviderClaims) *Session {
	return &Session{Kind: SessionProvider, Provider: &c}
}

// NewAdminSession construye la variante admin.
func NewAdminSession(id string, since time.Time) *Session {
	return &Session{Kind: SessionAdmin, AdminID: id, AdminSince: since}
}

// IsAuthenticated es la única regla de autenticación: cualquier variante bien formada.
func (s *Session) IsAuthenticated() bool {
	if s == nil {
		return false
	}
	switch s.Kind {
	case SessionProvider:
		return s.Provider != nil && s.Provider.Subject != ""
	case SessionAdmin:
		return s.AdminID != ""
	}
	return false
}

// IsAdminSession informa si la sesión viene del login administrativo.
func (s *Session) IsAdminSession() bool {
	return s.IsAuthenticated() && s.Kind == SessionAdmin
}

// IsAdmin deriva el permiso de administración: sesión admin, o sesión provider
// cuyo usuario persistido tiene rol admin. user puede ser nil.
func (s *Session) IsAdmin(user *User) bool {
	if !s.IsAuthenticated() {
		return false
	}
	if s.Kind == SessionAdmin {
		return true
	}
	return user != nil && user.ID == s.Provider.Subject && user.IsAdmin()
}

// UserID ID del usuario persistido detrás de la sesión ("" para admin o anónimo).
func (s *Session) UserID() string {
	if !s.IsAuthenticated() || s.Kind != SessionProvider {
		return ""
	}
	return s.Provider.Subject
}

// Subject identificador de la sesión en cualquiera de sus variantes.
func (s *Session) Subject() string {
	if !s.IsAuthenticated() {
		return ""
	}
	if s.Kind == SessionAdmin {
		return s.AdminID
	}
	return s.Provider.Subject
}

// ActorID valor para las columnas user_id de auditoría: la sesión admin no
// tiene fila en users, así que se registra como nil.
func (s *Session) ActorID() *string {
	id := s.UserID()
	if id == "" {
		return nil
	}
	return &id
}
