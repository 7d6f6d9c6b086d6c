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

func TestSectorCreate_RegistraActividad(t *testing.T) {
	env := buildTestApp(t, nil)
	env.seedUser(t, "u-1", entity.RoleUser)

	env.createSector(t, providerToken(t, "u-1"), "Escuela Rural 12")

	_, body := env.do(t, http.MethodGet, "/api/activities?limit=1", "", nil)
	acts := decode[[]map[string]any](t, body)
	require.Len(t, acts, 1)
	assert.Equal(t, entity.ActivitySectorCreated, acts[0]["type"])
	assert.Equal(t, "Sector Escuela Rural 12 was added to the platform", acts[0]["description"])
}

func TestSectorCreate_SinNombre_Retorna400(t *testing.T) {
	env := buildTestApp(t, nil)

	resp, body := env.do(t, http.MethodPost, "/api/sectors", env.adminToken(t), map[string]any{"city": "Lima"})

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	errs := decode[map[string]any](t, body)["errors"].([]any)
	require.NotEmpty(t, errs)
	assert.Equal(t, "name", errs[0].(map[string]any)["field"])
}

func TestSectorList_BusquedaSinAcentos(t *testing.T) {
	env := buildTestApp(t, nil)
	tok := env.adminToken(t)
	resp, _ := env.do(t, http.MethodPost, "/api/sectors", tok, map[string]any{"name": "Hospital San José", "city": "Bogotá"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	env.createSector(t, tok, "Colegio Mayor")

	_, body := env.do(t, http.MethodGet, "/api/sectors?q=bogota", "", nil)
	list := decode[[]map[string]any](t, body)
	require.Len(t, list, 1)
	assert.Equal(t, "Hospital San José", list[0]["name"])

	_, body = env.do(t, http.MethodGet, "/api/sectors?q=JOSE", "", nil)
	assert.Len(t, decode[[]map[string]any](t, body), 1)

	_, body = env.do(t, http.MethodGet, "/api/sectors", "", nil)
	assert.Len(t, decode[[]map[string]any](t, body), 2)
}

func TestSectorUpdate_Parcial(t *testing.T) {
	env := buildTestApp(t, nil)
	tok := env.adminToken(t)
	id := env.createSector(t, tok, "Biblioteca")

	resp, body := env.do(t, http.MethodPut, fmt.Sprintf("/api/sectors/%d", id), tok, map[string]any{"city": "Quito"})

	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(body))
	s := decode[map[string]any](t, body)
	assert.Equal(t, "Biblioteca", s["name"])
	assert.Equal(t, "Quito", s["city"])
}

// Un sector usado por una permuta no se puede borrar.
func TestSectorDelete_Referenciado_Retorna409(t *testing.T) {
	f := newPermutaFixture(t)

	resp, body := f.env.do(t, http.MethodDelete, fmt.Sprintf("/api/sectors/%d", f.fromID), f.token, nil)

	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "REFERENCED", errorCode(t, body))

	resp, _ = f.env.do(t, http.MethodGet, fmt.Sprintf("/api/sectors/%d", f.fromID), "", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestSectorDelete_Libre(t *testing.T) {
	env := buildTestApp(t, nil)
	tok := env.adminToken(t)
	id := env.createSector(t, tok, "Temporal")

	resp, body := env.do(t, http.MethodDelete, fmt.Sprintf("/api/sectors/%d", id), tok, nil)
	require.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	assert.Empty(t, body)

	resp, _ = env.do(t, http.MethodDelete, fmt.Sprintf("/api/sectors/%d", id), tok, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestInstitutions_AliasDeSectors(t *testing.T) {
	env := buildTestApp(t, nil)
	tok := env.adminToken(t)

	resp, body := env.do(t, http.MethodPost, "/api/institutions", tok, map[string]any{"name": "Universidad Nacional"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(body))
	id := int64(decode[map[string]any](t, body)["id"].(float64))

	resp, body = env.do(t, http.MethodGet, fmt.Sprintf("/api/sectors/%d", id), "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Universidad Nacional", decode[map[string]any](t, body)["name"])
}
