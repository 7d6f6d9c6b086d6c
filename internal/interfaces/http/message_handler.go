package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Permuta-api/internal/application/dto"
	"github.com/jhoicas/Permuta-api/internal/application/usecase"
)

// MessageHandler bandeja de mensajes del usuario de la sesión.
type MessageHandler struct {
	uc *usecase.MessageUseCase
}

// NewMessageHandler construye el handler.
func NewMessageHandler(uc *usecase.MessageUseCase) *MessageHandler {
	return &MessageHandler{uc: uc}
}

// List godoc
// @Summary      Mensajes enviados y recibidos
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Param        unread  query     bool  false  "solo recibidos sin leer"
// @Param        limit   query     int   false  "máximo de resultados"
// @Success      200     {array}   dto.MessageResponse
// @Router       /api/messages [get]
func (h *MessageHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.UserContext(), GetSession(c).UserID(), c.QueryBool("unread", false), queryLimit(c))
	if err != nil {
		return err
	}
	return c.JSON(list)
}

// GetByID godoc
// @Summary      Obtener mensaje
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "ID del mensaje"
// @Success      200  {object}  dto.MessageResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/messages/{id} [get]
func (h *MessageHandler) GetByID(c *fiber.Ctx) error {
	id, ok, err := paramID(c)
	if !ok {
		return err
	}
	m, err := h.uc.GetByID(c.UserContext(), id, GetSession(c).UserID())
	if err != nil {
		return err
	}
	if m == nil {
		return notFound(c, "mensaje no encontrado")
	}
	return c.JSON(m)
}

// Send godoc
// @Summary      Enviar mensaje
// @Tags         messages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.CreateMessageRequest  true  "receiverId, content"
// @Success      201   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/messages [post]
func (h *MessageHandler) Send(c *fiber.Ctx) error {
	var in dto.CreateMessageRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := in.Validate(); err != nil {
		return err
	}
	m, err := h.uc.Send(c.UserContext(), GetSession(c).UserID(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(m)
}

// MarkAsRead godoc
// @Summary      Marcar mensaje como leído
// @Description  Solo el destinatario; repetir la llamada no cambia nada.
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "ID del mensaje"
// @Success      200  {object}  dto.MessageResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/messages/{id}/read [put]
func (h *MessageHandler) MarkAsRead(c *fiber.Ctx) error {
	id, ok, err := paramID(c)
	if !ok {
		return err
	}
	m, err := h.uc.MarkAsRead(c.UserContext(), id, GetSession(c).UserID())
	if err != nil {
		return err
	}
	if m == nil {
		return notFound(c, "mensaje no encontrado")
	}
	return c.JSON(m)
}

// Delete godoc
// @Summary      Eliminar mensaje
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "ID del mensaje"
// @Success      200  {object}  dto.SuccessResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/messages/{id} [delete]
func (h *MessageHandler) Delete(c *fiber.Ctx) error {
	id, ok, err := paramID(c)
	if !ok {
		return err
	}
	deleted, err := h.uc.Delete(c.UserContext(), id, GetSession(c).UserID())
	if err != nil {
		return err
	}
	if !deleted {
		return notFound(c, "mensaje no encontrado")
	}
	return c.JSON(dto.SuccessResponse{Success: true, Message: "mensaje eliminado"})
}
