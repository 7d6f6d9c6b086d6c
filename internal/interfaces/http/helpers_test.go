package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/jhoicas/Permuta-api/internal/application/analytics"
	"github.com/jhoicas/Permuta-api/internal/application/auth"
	"github.com/jhoicas/Permuta-api/internal/application/permuta"
	"github.com/jhoicas/Permuta-api/internal/application/usecase"
	"github.com/jhoicas/Permuta-api/internal/domain/entity"
	"github.com/jhoicas/Permuta-api/internal/infrastructure/memory"
	"github.com/jhoicas/Permuta-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/Permuta-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/Permuta-api/pkg/jwt"
	"github.com/jhoicas/Permuta-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret     = "test-secret-key-for-unit-tests"
	testIssuer        = "sistema-permuta-test"
	testExpMin        = 60
	testAdminUser     = "admin"
	testAdminPassword = "admin123"
)

// testEnv API completa sobre los repositorios en memoria.
type testEnv struct {
	app   *fiber.App
	repos *memory.Repos
	auth  *auth.AuthUseCase
}

// buildTestApp arma la API con el mismo Router y ErrorHandler que producción.
// limiter nil deja /api/admin/login sin límite.
func buildTestApp(t *testing.T, limiter fiber.Handler) *testEnv {
	t.Helper()
	repos := memory.NewRepos()

	authUC := auth.NewAuthUseCase(repos.Users, repos.Credentials, testAdminUser, auth.JWTConfig{
		Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer,
	})
	_, err := authUC.SeedAdmin(context.Background(), testAdminPassword)
	require.NoError(t, err)

	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler(logger.Nop())})
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:       authUC,
		UserUC:       usecase.NewUserUseCase(repos.Users),
		SectorUC:     usecase.NewSectorUseCase(repos.Sectors, repos.Tx),
		PermutaUC:    permuta.NewUseCase(repos.Permutas, repos.Users, repos.Sectors, repos.Tx, pdf.NewReceiptGenerator("Sistema Permuta")),
		MessageUC:    usecase.NewMessageUseCase(repos.Messages),
		ActivityUC:   usecase.NewActivityUseCase(repos.Activities),
		DashboardUC:  appanalytics.NewDashboardUseCase(repos.Dashboard),
		LoginLimiter: limiter,
	})
	return &testEnv{app: app, repos: repos, auth: authUC}
}

// providerToken genera un token de sesión del proveedor de identidad para userID.
func providerToken(t *testing.T, userID string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testIssuer, pkgjwt.Claims{
		RegisteredClaims: gojwt.RegisteredClaims{Subject: userID},
		Kind:             pkgjwt.KindProvider,
		Email:            userID + "@example.com",
		FirstName:        "Usuario " + userID,
	}, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return tok
}

// adminToken inicia sesión como administrador y devuelve el token.
func (e *testEnv) adminToken(t *testing.T) string {
	t.Helper()
	resp, body := e.do(t, http.MethodPost, "/api/admin/login", "", map[string]string{
		"username": testAdminUser, "password": testAdminPassword,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(body))
	out := decode[map[string]any](t, body)
	return out["token"].(string)
}

// seedUser inserta un usuario directamente en el repositorio.
func (e *testEnv) seedUser(t *testing.T, id, role string) {
	t.Helper()
	email := id + "@example.com"
	_, err := e.repos.Users.Upsert(context.Background(), &entity.User{ID: id, Email: &email, Role: role})
	require.NoError(t, err)
}

// createSector crea un sector vía API y devuelve su id.
func (e *testEnv) createSector(t *testing.T, token, name string) int64 {
	t.Helper()
	resp, body := e.do(t, http.MethodPost, "/api/sectors", token, map[string]any{"name": name})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(body))
	return int64(decode[map[string]any](t, body)["id"].(float64))
}

// createPermuta crea una permuta vía API y devuelve su id.
func (e *testEnv) createPermuta(t *testing.T, token string, from, to int64) int64 {
	t.Helper()
	resp, body := e.do(t, http.MethodPost, "/api/permutas", token, map[string]any{
		"fromSectorId": from, "toSectorId": to, "description": "cambio por cercanía",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(body))
	return int64(decode[map[string]any](t, body)["id"].(float64))
}

// do lanza una petición JSON y devuelve la respuesta con su cuerpo leído.
func (e *testEnv) do(t *testing.T, method, path, token string, body any) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func decode[T any](t *testing.T, body []byte) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(body, &out), string(body))
	return out
}

func errorCode(t *testing.T, body []byte) string {
	t.Helper()
	return decode[map[string]any](t, body)["code"].(string)
}
