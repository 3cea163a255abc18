package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/invorya/stock-api/internal/interfaces/http"
	pkgjwt "github.com/invorya/stock-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	mwTestSecret = "test-secret-key-for-unit-tests"
	mwTestIssuer = "stock-api-test"
	mwTestExpMin = 60
)

// buildAuthApp construye una aplicación Fiber mínima con el AuthMiddleware y
// un handler dummy que devuelve el id extraído del token.
func buildAuthApp() *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(mwTestSecret),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":      true,
				"user_id": apphttp.GetUserID(c),
			})
		},
	)
	return app
}

func doAuthRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: token válido → HTTP 200 con el user_id del token en locals.
func TestAuthMiddleware_TokenValido_ExtraeUserID(t *testing.T) {
	app := buildAuthApp()
	tok, err := pkgjwt.Generate(mwTestSecret, 42, "ana@almacen.pt", mwTestIssuer, mwTestExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")

	resp := doAuthRequest(t, app, "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, float64(42), body["user_id"], "el user_id debe venir del token")
}

// Caso 2: sin header Authorization → HTTP 401 MISSING_TOKEN.
func TestAuthMiddleware_SinHeader_401(t *testing.T) {
	app := buildAuthApp()
	resp := doAuthRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_TOKEN",
		"la respuesta debe indicar el código MISSING_TOKEN")
}

// Caso 3: header sin el esquema Bearer → HTTP 401 INVALID_TOKEN.
func TestAuthMiddleware_EsquemaInvalido_401(t *testing.T) {
	app := buildAuthApp()
	resp := doAuthRequest(t, app, "Basic dXNlcjpwYXNz")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INVALID_TOKEN")
}

// Caso 4: token malformado → HTTP 401.
func TestAuthMiddleware_TokenMalformado_401(t *testing.T) {
	app := buildAuthApp()
	resp := doAuthRequest(t, app, "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Caso 5: token firmado con otro secret → HTTP 401.
func TestAuthMiddleware_SecretIncorrecto_401(t *testing.T) {
	app := buildAuthApp()
	tok, err := pkgjwt.Generate("otro-secret-distinto", 42, "ana@almacen.pt", mwTestIssuer, mwTestExpMin)
	require.NoError(t, err)

	resp := doAuthRequest(t, app, "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Caso 6: token expirado → HTTP 401.
func TestAuthMiddleware_TokenExpirado_401(t *testing.T) {
	app := buildAuthApp()
	tok, err := pkgjwt.Generate(mwTestSecret, 42, "ana@almacen.pt", mwTestIssuer, -5)
	require.NoError(t, err)

	resp := doAuthRequest(t, app, "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// GetUserID sin middleware debe devolver 0, nunca entrar en pánico.
func TestGetUserID_SinMiddleware_Cero(t *testing.T) {
	app := fiber.New()
	app.Get("/open", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": apphttp.GetUserID(c)})
	})

	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, float64(0), body["user_id"])
}
