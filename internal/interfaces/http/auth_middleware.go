package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Permuta-api/internal/application/dto"
	"github.com/jhoicas/Permuta-api/internal/domain/entity"
)

// Locals keys de la sesión en Fiber.
const (
	LocalSession      = "session"
	localTokenProblem = "session_token_problem"
)

// sessionParser lo implementa *auth.AuthUseCase.
type sessionParser interface {
	ParseSession(token string) (*entity.Session, error)
}

// userLookup es el contrato mínimo que necesita RequireAdmin para leer el rol persistido.
// Lo implementa *usecase.UserUseCase; el uso de interfaz evita el import circular.
type userLookup interface {
	Find(ctx context.Context, id string) (*entity.User, error)
}

// SessionMiddleware deriva la sesión del Bearer Token y la deja en c.Locals.
// Sin header la petición sigue como anónima; las rutas protegidas deciden con
// RequireAuth / RequireProviderSession / RequireAdmin.
func SessionMiddleware(parser sessionParser) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Next()
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			c.Locals(localTokenProblem, "formato: Bearer <token>")
			return c.Next()
		}
		session, err := parser.ParseSession(strings.TrimSpace(parts[1]))
		if err != nil {
			c.Locals(localTokenProblem, "token inválido o expirado")
			return c.Next()
		}
		c.Locals(LocalSession, session)
		return c.Next()
	}
}

// GetSession devuelve la sesión del contexto; nil para visitantes anónimos.
func GetSession(c *fiber.Ctx) *entity.Session {
	s, _ := c.Locals(LocalSession).(*entity.Session)
	return s
}

// RequireAuth exige cualquier sesión válida (provider o admin).
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !GetSession(c).IsAuthenticated() {
			return unauthorized(c)
		}
		return c.Next()
	}
}

// RequireProviderSession exige una sesión del proveedor de identidad: las rutas
// que operan sobre el usuario persistido no tienen sentido con la sesión admin.
func RequireProviderSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		session := GetSession(c)
		if !session.IsAuthenticated() {
			return unauthorized(c)
		}
		if session.UserID() == "" {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code: "FORBIDDEN", Message: "se requiere una sesión de usuario",
			})
		}
		return c.Next()
	}
}

// RequireAdminSession exige la sesión del login administrativo.
func RequireAdminSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		session := GetSession(c)
		if !session.IsAuthenticated() {
			return unauthorized(c)
		}
		if !session.IsAdminSession() {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code: "FORBIDDEN", Message: "se requiere la sesión de administrador",
			})
		}
		return c.Next()
	}
}

// RequireAdmin exige permiso de administración: sesión admin, o sesión provider
// cuyo usuario tiene rol admin en la base.
//
// Comportamiento:
//   - 401 → sin sesión o token inválido.
//   - 403 → usuario sin rol admin (o aún no sincronizado).
//   - error → fallo al leer el usuario; lo resuelve el ErrorHandler (500).
func RequireAdmin(users userLookup) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session := GetSession(c)
		if !session.IsAuthenticated() {
			return unauthorized(c)
		}
		var user *entity.User
		if id := session.UserID(); id != "" {
			u, err := users.Find(c.UserContext(), id)
			if err != nil {
				return err
			}
			user = u
		}
		if !session.IsAdmin(user) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code: "FORBIDDEN", Message: "se requiere rol de administrador",
			})
		}
		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx) error {
	if problem, ok := c.Locals(localTokenProblem).(string); ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: problem})
	}
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
}
