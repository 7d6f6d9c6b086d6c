package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Permuta-api/internal/application/dto"
)

// paramID lee el :id numérico de la ruta. ok=false ya escribió la respuesta 400.
func paramID(c *fiber.Ctx) (int64, bool, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	return id, true, nil
}

// queryLimit lee ?limit; ausente o no positivo = sin límite.
func queryLimit(c *fiber.Ctx) int {
	n := c.QueryInt("limit", 0)
	if n < 0 {
		return 0
	}
	return n
}
