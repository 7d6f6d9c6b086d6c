package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Permuta-api/internal/application/dto"
	"github.com/jhoicas/Permuta-api/internal/application/permuta"
	"github.com/jhoicas/Permuta-api/internal/domain/entity"
)

// PermutaHandler maneja los endpoints de permutas.
type PermutaHandler struct {
	uc *permuta.UseCase
}

// NewPermutaHandler construye el handler.
func NewPermutaHandler(uc *permuta.UseCase) *PermutaHandler {
	return &PermutaHandler{uc: uc}
}

// List godoc
// @Summary      Listar permutas
// @Description  status y userId son excluyentes; si vienen ambos gana status. Orden: más recientes primero.
// @Tags         permutas
// @Produce      json
// @Param        status  query     string  false  "pending | analyzing | approved | completed | rejected | cancelled"
// @Param        userId  query     string  false  "ID del dueño"
// @Param        limit   query     int     false  "máximo de resultados"
// @Success      200     {array}   dto.PermutaResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/permutas [get]
func (h *PermutaHandler) List(c *fiber.Ctx) error {
	filter := entity.PermutaFilter{UserID: c.Query("userId"), Limit: queryLimit(c)}
	if raw := c.Query("status"); raw != "" {
		status, ok := entity.ParsePermutaStatus(raw)
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Code: "INVALID_STATUS", Message: fmt.Sprintf("status debe ser uno de: %s", entity.StatusNames()),
			})
		}
		filter.Status = &status
	}
	list, err := h.uc.List(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return c.JSON(list)
}

// GetByID godoc
// @Summary      Obtener permuta
// @Tags         permutas
// @Produce      json
// @Param        id   path      int  true  "ID de la permuta"
// @Success      200  {object}  dto.PermutaResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/permutas/{id} [get]
func (h *PermutaHandler) GetByID(c *fiber.Ctx) error {
	id, ok, err := paramID(c)
	if !ok {
		return err
	}
	p, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	if p == nil {
		return notFound(c, "permuta no encontrada")
	}
	return c.JSON(p)
}

// Create godoc
// @Summary      Crear permuta
// @Description  El dueño es el usuario de la sesión; con sesión admin se indica userId.
// @Tags         permutas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.CreatePermutaRequest  true  "fromSectorId, toSectorId, description"
// @Success      201   {object}  dto.PermutaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/permutas [post]
func (h *PermutaHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePermutaRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := in.Validate(); err != nil {
		return err
	}
	p, err := h.uc.Create(c.UserContext(), GetSession(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(p)
}

// Update godoc
// @Summary      Actualizar permuta
// @Tags         permutas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                       true  "ID de la permuta"
// @Param        body  body      dto.UpdatePermutaRequest  true  "campos a modificar"
// @Success      200   {object}  dto.PermutaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/permutas/{id} [put]
func (h *PermutaHandler) Update(c *fiber.Ctx) error {
	id, ok, err := paramID(c)
	if !ok {
		return err
	}
	var in dto.UpdatePermutaRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := in.Validate(); err != nil {
		return err
	}
	p, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return err
	}
	if p == nil {
		return notFound(c, "permuta no encontrada")
	}
	return c.JSON(p)
}

// UpdateStatus godoc
// @Summary      Cambiar estado de una permuta
// @Description  Registra la actividad correspondiente en la misma transacción.
// @Tags         permutas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                             true  "ID de la permuta"
// @Param        body  body      dto.UpdatePermutaStatusRequest  true  "status"
// @Success      200   {object}  dto.PermutaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/permutas/{id}/status [put]
func (h *PermutaHandler) UpdateStatus(c *fiber.Ctx) error {
	id, ok, err := paramID(c)
	if !ok {
		return err
	}
	var in dto.UpdatePermutaStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	status, err := in.Parse()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_STATUS", Message: fmt.Sprintf("status debe ser uno de: %s", entity.StatusNames()),
		})
	}
	p, err := h.uc.UpdateStatus(c.UserContext(), GetSession(c), id, status)
	if err != nil {
		return err
	}
	return c.JSON(p)
}

// Delete godoc
// @Summary      Eliminar permuta
// @Tags         permutas
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "ID de la permuta"
// @Success      204  "sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/permutas/{id} [delete]
func (h *PermutaHandler) Delete(c *fiber.Ctx) error {
	id, ok, err := paramID(c)
	if !ok {
		return err
	}
	deleted, err := h.uc.Delete(c.UserContext(), id)
	if err != nil {
		return err
	}
	if !deleted {
		return notFound(c, "permuta no encontrada")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Receipt godoc
// @Summary      Comprobante PDF de la permuta
// @Tags         permutas
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id   path      int  true  "ID de la permuta"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/permutas/{id}/receipt [get]
func (h *PermutaHandler) Receipt(c *fiber.Ctx) error {
	id, ok, err := paramID(c)
	if !ok {
		return err
	}
	pdf, filename, err := h.uc.Receipt(c.UserContext(), id)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(pdf)
}
