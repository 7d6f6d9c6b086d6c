package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Permuta-api/internal/application/auth"
	"github.com/jhoicas/Permuta-api/internal/application/dto"
)

// AuthHandler sesión actual, sincronización con el proveedor y login administrativo.
type AuthHandler struct {
	uc    *auth.AuthUseCase
	users userLookup
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, users userLookup) *AuthHandler {
	return &AuthHandler{uc: uc, users: users}
}

// CurrentUser godoc
// @Summary      Usuario de la sesión actual
// @Description  Con sesión admin devuelve el usuario sintético del administrador.
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.UserResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/auth/user [get]
func (h *AuthHandler) CurrentUser(c *fiber.Ctx) error {
	session := GetSession(c)
	if session.IsAdminSession() {
		return c.JSON(auth.AdminUser(session))
	}
	user, err := h.users.Find(c.UserContext(), session.UserID())
	if err != nil {
		return err
	}
	if user == nil {
		return notFound(c, "usuario no sincronizado; llame a /api/auth/sync")
	}
	return c.JSON(dto.ToUserResponse(user))
}

// Sync godoc
// @Summary      Sincronizar el usuario del proveedor de identidad
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.UserResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/auth/sync [post]
func (h *AuthHandler) Sync(c *fiber.Ctx) error {
	user, err := h.uc.SyncProvider(c.UserContext(), GetSession(c))
	if err != nil {
		return err
	}
	return c.JSON(user)
}

// AdminLogin godoc
// @Summary      Login de administrador
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdminLoginRequest  true  "username, password"
// @Success      200   {object}  dto.AdminLoginResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      429   {object}  dto.ErrorResponse
// @Router       /api/admin/login [post]
func (h *AuthHandler) AdminLogin(c *fiber.Ctx) error {
	var in dto.AdminLoginRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.Username == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "username y password son requeridos"})
	}
	out, err := h.uc.AdminLogin(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// ChangePassword godoc
// @Summary      Cambiar la contraseña del administrador
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.ChangePasswordRequest  true  "currentPassword, newPassword"
// @Success      200   {object}  dto.SuccessResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/admin/change-password [post]
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var in dto.ChangePasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := in.Validate(); err != nil {
		return err
	}
	if err := h.uc.ChangePassword(c.UserContext(), in); err != nil {
		return err
	}
	return c.JSON(dto.SuccessResponse{Success: true, Message: "contraseña actualizada"})
}
