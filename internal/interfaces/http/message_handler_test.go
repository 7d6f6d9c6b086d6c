package http_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Permuta-api/internal/domain/entity"
)

func newMessageEnv(t *testing.T) (*testEnv, string, string) {
	t.Helper()
	env := buildTestApp(t, nil)
	env.seedUser(t, "ana", entity.RoleUser)
	env.seedUser(t, "beto", entity.RoleUser)
	return env, providerToken(t, "ana"), providerToken(t, "beto")
}

func sendMessage(t *testing.T, env *testEnv, token, receiver, content string) int64 {
	t.Helper()
	resp, body := env.do(t, http.MethodPost, "/api/messages", token, map[string]any{
		"receiverId": receiver, "content": content,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(body))
	msg := decode[map[string]any](t, body)
	assert.Equal(t, false, msg["isRead"])
	return int64(msg["id"].(float64))
}

// Un mensaje pasa de no leído a leído y ambos participantes lo siguen viendo.
func TestMessages_NoLeidoALeido(t *testing.T) {
	env, ana, beto := newMessageEnv(t)
	id := sendMessage(t, env, ana, "beto", "hola, ¿te interesa la permuta?")

	_, body := env.do(t, http.MethodGet, "/api/messages?unread=true", beto, nil)
	unread := decode[[]map[string]any](t, body)
	require.Len(t, unread, 1)
	assert.Equal(t, float64(id), unread[0]["id"])

	path := fmt.Sprintf("/api/messages/%d/read", id)
	resp, body := env.do(t, http.MethodPut, path, beto, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(body))
	assert.Equal(t, true, decode[map[string]any](t, body)["isRead"])

	// idempotente
	resp, body = env.do(t, http.MethodPut, path, beto, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, true, decode[map[string]any](t, body)["isRead"])

	_, body = env.do(t, http.MethodGet, "/api/messages?unread=true", beto, nil)
	assert.Empty(t, decode[[]map[string]any](t, body))

	for _, tok := range []string{ana, beto} {
		_, body = env.do(t, http.MethodGet, "/api/messages", tok, nil)
		all := decode[[]map[string]any](t, body)
		require.Len(t, all, 1)
		assert.Equal(t, true, all[0]["isRead"])
	}
}

func TestMessages_SoloElDestinatarioMarcaLeido(t *testing.T) {
	env, ana, _ := newMessageEnv(t)
	id := sendMessage(t, env, ana, "beto", "hola")

	resp, body := env.do(t, http.MethodPut, fmt.Sprintf("/api/messages/%d/read", id), ana, nil)

	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", errorCode(t, body))
}

func TestMessages_TercerosNoVenNiBorran(t *testing.T) {
	env, ana, _ := newMessageEnv(t)
	env.seedUser(t, "caro", entity.RoleUser)
	caro := providerToken(t, "caro")
	id := sendMessage(t, env, ana, "beto", "privado")

	resp, _ := env.do(t, http.MethodGet, fmt.Sprintf("/api/messages/%d", id), caro, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, _ = env.do(t, http.MethodDelete, fmt.Sprintf("/api/messages/%d", id), caro, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	_, body := env.do(t, http.MethodGet, "/api/messages", caro, nil)
	assert.Empty(t, decode[[]map[string]any](t, body))
}

func TestMessages_EmisorBorra(t *testing.T) {
	env, ana, beto := newMessageEnv(t)
	id := sendMessage(t, env, ana, "beto", "me equivoqué")

	resp, _ := env.do(t, http.MethodDelete, fmt.Sprintf("/api/messages/%d", id), ana, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = env.do(t, http.MethodGet, fmt.Sprintf("/api/messages/%d", id), beto, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestMessages_ListaMasRecientePrimeroConLimite(t *testing.T) {
	env, ana, beto := newMessageEnv(t)
	sendMessage(t, env, ana, "beto", "uno")
	second := sendMessage(t, env, beto, "ana", "dos")

	_, body := env.do(t, http.MethodGet, "/api/messages?limit=1", ana, nil)
	list := decode[[]map[string]any](t, body)
	require.Len(t, list, 1)
	assert.Equal(t, float64(second), list[0]["id"])
}

func TestMessages_DestinatarioInexistente_Retorna400(t *testing.T) {
	env, ana, _ := newMessageEnv(t)

	resp, body := env.do(t, http.MethodPost, "/api/messages", ana, map[string]any{
		"receiverId": "nadie", "content": "hola",
	})

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_REFERENCE", errorCode(t, body))
}

func TestMessages_SinDestinatario_Retorna400(t *testing.T) {
	env, ana, _ := newMessageEnv(t)

	resp, body := env.do(t, http.MethodPost, "/api/messages", ana, map[string]any{"content": "hola"})

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", errorCode(t, body))
}
