package dto

// AdminLoginRequest credenciales del acceso administrativo.
type AdminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AdminUserResponse usuario sintético de la sesión admin (no existe en users).
type AdminUserResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
}

// AdminLoginResponse token de sesión admin.
type AdminLoginResponse struct {
	Success bool              `json:"success"`
	Token   string            `json:"token"`
	User    AdminUserResponse `json:"user"`
}

// ChangePasswordRequest cambio de la contraseña administrativa.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// Validate la nueva contraseña debe tener al menos 8 caracteres.
func (r ChangePasswordRequest) Validate() error {
	var errs ValidationErrors
	if r.CurrentPassword == "" {
		errs.add("currentPassword", "currentPassword es requerido")
	}
	if len(r.NewPassword) < 8 {
		errs.add("newPassword", "debe tener al menos 8 caracteres")
	}
	return errs.Err()
}
