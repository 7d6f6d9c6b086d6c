package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Permuta-api/internal/application/dto"
	"github.com/jhoicas/Permuta-api/internal/application/usecase"
)

// UserHandler maneja los endpoints de usuarios.
type UserHandler struct {
	uc *usecase.UserUseCase
}

// NewUserHandler construye el handler.
func NewUserHandler(uc *usecase.UserUseCase) *UserHandler {
	return &UserHandler{uc: uc}
}

// List godoc
// @Summary      Listar usuarios
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   dto.UserResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(list)
}

// GetByID godoc
// @Summary      Obtener usuario
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "ID del usuario"
// @Success      200  {object}  dto.UserResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/{id} [get]
func (h *UserHandler) GetByID(c *fiber.Ctx) error {
	user, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	if user == nil {
		return notFound(c, "usuario no encontrado")
	}
	return c.JSON(user)
}

// Upsert godoc
// @Summary      Crear o actualizar usuario
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.UpsertUserRequest  true  "datos del usuario"
// @Success      200   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/users [post]
func (h *UserHandler) Upsert(c *fiber.Ctx) error {
	var in dto.UpsertUserRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := in.Validate(); err != nil {
		return err
	}
	user, err := h.uc.Upsert(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.JSON(user)
}

// UpdateRole godoc
// @Summary      Cambiar rol de usuario
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "ID del usuario"
// @Param        body  body      dto.UpdateRoleRequest  true  "role: user | admin"
// @Success      200   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/users/{id}/role [put]
func (h *UserHandler) UpdateRole(c *fiber.Ctx) error {
	var in dto.UpdateRoleRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := in.Validate(); err != nil {
		return err
	}
	user, err := h.uc.UpdateRole(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return err
	}
	if user == nil {
		return notFound(c, "usuario no encontrado")
	}
	return c.JSON(user)
}

// Promote godoc
// @Summary      Cambiar plan de cuenta
// @Description  accountType free no vence; el resto vence tras duration días (7, 15, 30 o 365).
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                  true  "ID del usuario"
// @Param        body  body      dto.PromoteUserRequest  true  "accountType, duration"
// @Success      200   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/users/{id}/promote [put]
func (h *UserHandler) Promote(c *fiber.Ctx) error {
	var in dto.PromoteUserRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := in.Validate(); err != nil {
		return err
	}
	user, err := h.uc.Promote(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return err
	}
	if user == nil {
		return notFound(c, "usuario no encontrado")
	}
	return c.JSON(user)
}

// Delete godoc
// @Summary      Eliminar usuario
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "ID del usuario"
// @Success      200  {object}  dto.SuccessResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/users/{id} [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	ok, err := h.uc.Delete(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	if !ok {
		return notFound(c, "usuario no encontrado")
	}
	return c.JSON(dto.SuccessResponse{Success: true, Message: "usuario eliminado"})
}
