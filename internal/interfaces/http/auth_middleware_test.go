package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Permuta-api/internal/domain/entity"
	pkgjwt "github.com/jhoicas/Permuta-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Autenticación
// ──────────────────────────────────────────────────────────────────────────────

func TestSession_SinToken_Retorna401(t *testing.T) {
	env := buildTestApp(t, nil)

	resp, body := env.do(t, http.MethodGet, "/api/dashboard/stats", "", nil)

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "MISSING_TOKEN", errorCode(t, body))
}

func TestSession_TokenInvalido_Retorna401(t *testing.T) {
	env := buildTestApp(t, nil)

	resp, body := env.do(t, http.MethodGet, "/api/dashboard/stats", "esto-no-es-un-jwt", nil)

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", errorCode(t, body))
}

func TestSession_FormatoIncorrecto_Retorna401(t *testing.T) {
	env := buildTestApp(t, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/stats", nil)
	req.Header.Set("Authorization", "Token "+providerToken(t, "u-1"))

	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestSession_TokenDeOtroSecret_Retorna401(t *testing.T) {
	env := buildTestApp(t, nil)
	tok, err := pkgjwt.Generate("otro-secret-completamente-distinto", testIssuer, pkgjwt.Claims{
		RegisteredClaims: gojwt.RegisteredClaims{Subject: "u-1"},
		Kind:             pkgjwt.KindProvider,
	}, testExpMin)
	require.NoError(t, err)

	resp, body := env.do(t, http.MethodGet, "/api/dashboard/stats", tok, nil)

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", errorCode(t, body))
}

// Las rutas públicas ignoran un token inválido: el visitante sigue siendo anónimo.
func TestSession_RutaPublicaConTokenInvalido_Retorna200(t *testing.T) {
	env := buildTestApp(t, nil)

	resp, _ := env.do(t, http.MethodGet, "/api/sectors", "basura", nil)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestHealth(t *testing.T) {
	env := buildTestApp(t, nil)

	resp, body := env.do(t, http.MethodGet, "/health", "", nil)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", decode[map[string]any](t, body)["status"])
}

// ──────────────────────────────────────────────────────────────────────────────
// /api/auth/user y /api/auth/sync
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthUser_ProviderNoSincronizado_Retorna404(t *testing.T) {
	env := buildTestApp(t, nil)

	resp, _ := env.do(t, http.MethodGet, "/api/auth/user", providerToken(t, "u-nuevo"), nil)

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestAuthSync_CreaUsuarioDesdeClaims(t *testing.T) {
	env := buildTestApp(t, nil)
	tok := providerToken(t, "u-1")

	resp, body := env.do(t, http.MethodPost, "/api/auth/sync", tok, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(body))
	user := decode[map[string]any](t, body)
	assert.Equal(t, "u-1", user["id"])
	assert.Equal(t, "u-1@example.com", user["email"])
	assert.Equal(t, entity.RoleUser, user["role"])
	assert.Equal(t, entity.AccountFree, user["accountType"])

	resp, body = env.do(t, http.MethodGet, "/api/auth/user", tok, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "u-1", decode[map[string]any](t, body)["id"])
}

// Sincronizar no debe pisar el rol asignado por un administrador.
func TestAuthSync_ConservaRolAdmin(t *testing.T) {
	env := buildTestApp(t, nil)
	env.seedUser(t, "u-1", entity.RoleAdmin)

	resp, body := env.do(t, http.MethodPost, "/api/auth/sync", providerToken(t, "u-1"), nil)

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, entity.RoleAdmin, decode[map[string]any](t, body)["role"])
}

func TestAuthSync_SesionAdmin_Retorna403(t *testing.T) {
	env := buildTestApp(t, nil)

	resp, _ := env.do(t, http.MethodPost, "/api/auth/sync", env.adminToken(t), nil)

	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestAuthUser_SesionAdmin_DevuelveUsuarioSintetico(t *testing.T) {
	env := buildTestApp(t, nil)

	resp, body := env.do(t, http.MethodGet, "/api/auth/user", env.adminToken(t), nil)

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	user := decode[map[string]any](t, body)
	assert.Equal(t, "admin@sistema.permuta", user["email"])
	assert.Equal(t, entity.RoleAdmin, user["role"])
}

// ──────────────────────────────────────────────────────────────────────────────
// RequireAdmin
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireAdmin_UsuarioComun_Retorna403(t *testing.T) {
	env := buildTestApp(t, nil)
	env.seedUser(t, "u-1", entity.RoleUser)

	resp, body := env.do(t, http.MethodPut, "/api/users/u-1/role", providerToken(t, "u-1"),
		map[string]string{"role": entity.RoleAdmin})

	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", errorCode(t, body))
}

func TestRequireAdmin_UsuarioNoSincronizado_Retorna403(t *testing.T) {
	env := buildTestApp(t, nil)

	resp, _ := env.do(t, http.MethodDelete, "/api/users/u-2", providerToken(t, "u-fantasma"), nil)

	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestRequireAdmin_UsuarioConRolAdmin_Pasa(t *testing.T) {
	env := buildTestApp(t, nil)
	env.seedUser(t, "u-admin", entity.RoleAdmin)
	env.seedUser(t, "u-2", entity.RoleUser)

	resp, body := env.do(t, http.MethodPut, "/api/users/u-2/role", providerToken(t, "u-admin"),
		map[string]string{"role": entity.RoleAdmin})

	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(body))
	assert.Equal(t, entity.RoleAdmin, decode[map[string]any](t, body)["role"])
}

func TestRequireAdmin_SesionAdmin_Pasa(t *testing.T) {
	env := buildTestApp(t, nil)

	resp, body := env.do(t, http.MethodPost, "/api/users", env.adminToken(t), map[string]any{
		"id": "u-9", "email": "nueve@example.com",
	})

	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(body))
	assert.Equal(t, "u-9", decode[map[string]any](t, body)["id"])
}

// Los mensajes requieren un usuario real detrás de la sesión.
func TestMessages_SesionAdmin_Retorna403(t *testing.T) {
	env := buildTestApp(t, nil)

	resp, _ := env.do(t, http.MethodGet, "/api/messages", env.adminToken(t), nil)

	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
