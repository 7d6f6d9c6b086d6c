package http

import (
	"errors"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Permuta-api/internal/application/dto"
	"github.com/jhoicas/Permuta-api/internal/domain"
	"github.com/jhoicas/Permuta-api/pkg/logger"
)

// domainStatus tabla de errores de dominio → (status HTTP, código, mensaje).
var domainStatus = []struct {
	err     error
	status  int
	code    string
	message string
}{
	{domain.ErrInvalidStatus, fiber.StatusBadRequest, "INVALID_STATUS", "estado de permuta inválido"},
	{domain.ErrInvalidReference, fiber.StatusBadRequest, "INVALID_REFERENCE", "el usuario o sector referenciado no existe"},
	{domain.ErrWrongPassword, fiber.StatusBadRequest, "WRONG_PASSWORD", "la contraseña actual es incorrecta"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION", "entrada inválida"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED", "no autorizado"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN", "acceso denegado"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND", "recurso no encontrado"},
	{domain.ErrUserNotFound, fiber.StatusNotFound, "NOT_FOUND", "usuario no encontrado"},
	{domain.ErrReferenced, fiber.StatusConflict, "REFERENCED", "el registro está en uso por otros registros"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE", "el registro ya existe"},
}

// ErrorHandler traduce los errores que devuelven los handlers a dto.ErrorResponse.
// Los errores no previstos responden 500 con un mensaje genérico; el detalle
// solo va al log y a Sentry.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var verrs dto.ValidationErrors
		if errors.As(err, &verrs) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Code: "VALIDATION", Message: "datos inválidos", Errors: verrs,
			})
		}
		for _, d := range domainStatus {
			if errors.Is(err, d.err) {
				return c.Status(d.status).JSON(dto.ErrorResponse{Code: d.code, Message: d.message})
			}
		}
		var fe *fiber.Error
		if errors.As(err, &fe) && fe.Code < fiber.StatusInternalServerError {
			return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: codeForStatus(fe.Code), Message: fe.Message})
		}

		log.Error().Err(err).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Msg("error interno")
		if hub := sentryfiber.GetHubFromContext(c); hub != nil {
			hub.CaptureException(err)
		} else {
			sentry.CaptureException(err)
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: "error interno del servidor",
		})
	}
}

func codeForStatus(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case fiber.StatusTooManyRequests:
		return "RATE_LIMITED"
	case fiber.StatusUnauthorized:
		return "UNAUTHORIZED"
	case fiber.StatusForbidden:
		return "FORBIDDEN"
	default:
		return "BAD_REQUEST"
	}
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

func notFound(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: message})
}
