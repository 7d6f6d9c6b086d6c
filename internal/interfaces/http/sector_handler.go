package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Permuta-api/internal/application/dto"
	"github.com/jhoicas/Permuta-api/internal/application/usecase"
)

// SectorHandler maneja los endpoints de sectores (también publicados como /api/institutions).
type SectorHandler struct {
	uc *usecase.SectorUseCase
}

// NewSectorHandler construye el handler.
func NewSectorHandler(uc *usecase.SectorUseCase) *SectorHandler {
	return &SectorHandler{uc: uc}
}

// List godoc
// @Summary      Listar sectores
// @Description  q filtra por nombre, ciudad o descripción sin distinguir mayúsculas ni acentos.
// @Tags         sectors
// @Produce      json
// @Param        q    query     string  false  "texto a buscar"
// @Success      200  {array}   dto.SectorResponse
// @Router       /api/sectors [get]
func (h *SectorHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.UserContext(), c.Query("q"))
	if err != nil {
		return err
	}
	return c.JSON(list)
}

// GetByID godoc
// @Summary      Obtener sector
// @Tags         sectors
// @Produce      json
// @Param        id   path      int  true  "ID del sector"
// @Success      200  {object}  dto.SectorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sectors/{id} [get]
func (h *SectorHandler) GetByID(c *fiber.Ctx) error {
	id, ok, err := paramID(c)
	if !ok {
		return err
	}
	s, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	if s == nil {
		return notFound(c, "sector no encontrado")
	}
	return c.JSON(s)
}

// Create godoc
// @Summary      Crear sector
// @Tags         sectors
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.CreateSectorRequest  true  "datos del sector"
// @Success      201   {object}  dto.SectorResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/sectors [post]
func (h *SectorHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSectorRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := in.Validate(); err != nil {
		return err
	}
	s, err := h.uc.Create(c.UserContext(), GetSession(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(s)
}

// Update godoc
// @Summary      Actualizar sector
// @Tags         sectors
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                      true  "ID del sector"
// @Param        body  body      dto.UpdateSectorRequest  true  "campos a modificar"
// @Success      200   {object}  dto.SectorResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/sectors/{id} [put]
func (h *SectorHandler) Update(c *fiber.Ctx) error {
	id, ok, err := paramID(c)
	if !ok {
		return err
	}
	var in dto.UpdateSectorRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := in.Validate(); err != nil {
		return err
	}
	s, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return err
	}
	if s == nil {
		return notFound(c, "sector no encontrado")
	}
	return c.JSON(s)
}

// Delete godoc
// @Summary      Eliminar sector
// @Description  Un sector usado por alguna permuta no se puede borrar (409).
// @Tags         sectors
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "ID del sector"
// @Success      204  "sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/sectors/{id} [delete]
func (h *SectorHandler) Delete(c *fiber.Ctx) error {
	id, ok, err := paramID(c)
	if !ok {
		return err
	}
	deleted, err := h.uc.Delete(c.UserContext(), id)
	if err != nil {
		return err
	}
	if !deleted {
		return notFound(c, "sector no encontrado")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
