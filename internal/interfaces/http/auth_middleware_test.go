package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Contenidos-api/internal/application/dto"
	apphttp "github.com/jhoicas/Contenidos-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/Contenidos-api/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testIssuer    = "contenidos-test"
	testExpMin    = 60
)

func bearer(t *testing.T, secret, role string, expMin int) string {
	t.Helper()
	tok, err := pkgjwt.Generate(secret, testUserID, role, testIssuer, expMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

// ──────────────────────────────────────────────────────────────────────────────
// AuthMiddleware + RequireRole
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name    string
		allowed []string
		header  func(t *testing.T) string
		status  int
		code    string
	}{
		{"admin en ruta admin", []string{"admin"}, func(t *testing.T) string { return bearer(t, testJWTSecret, "admin", testExpMin) }, http.StatusOK, ""},
		{"editor en ruta admin o editor", []string{"admin", "editor"}, func(t *testing.T) string { return bearer(t, testJWTSecret, "editor", testExpMin) }, http.StatusOK, ""},
		{"editor en ruta admin", []string{"admin"}, func(t *testing.T) string { return bearer(t, testJWTSecret, "editor", testExpMin) }, http.StatusForbidden, "FORBIDDEN"},
		{"rol desconocido", []string{"admin", "editor"}, func(t *testing.T) string { return bearer(t, testJWTSecret, "invitado", testExpMin) }, http.StatusForbidden, "FORBIDDEN"},
		{"token sin rol", []string{"admin"}, func(t *testing.T) string { return bearer(t, testJWTSecret, "", testExpMin) }, http.StatusUnauthorized, "MISSING_ROLE"},
		{"sin header", []string{"admin"}, func(*testing.T) string { return "" }, http.StatusUnauthorized, "MISSING_TOKEN"},
		{"sin prefijo Bearer", []string{"admin"}, func(*testing.T) string { return "Token abc" }, http.StatusUnauthorized, "INVALID_TOKEN"},
		{"token malformado", []string{"admin"}, func(*testing.T) string { return "Bearer token.invalido.aqui" }, http.StatusUnauthorized, "INVALID_TOKEN"},
		{"token expirado", []string{"admin"}, func(t *testing.T) string { return bearer(t, testJWTSecret, "admin", -1) }, http.StatusUnauthorized, "INVALID_TOKEN"},
		{"otro secret", []string{"admin"}, func(t *testing.T) string { return bearer(t, "otro-secret", "admin", testExpMin) }, http.StatusUnauthorized, "INVALID_TOKEN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/protected",
				apphttp.AuthMiddleware(testJWTSecret),
				apphttp.RequireRole(tt.allowed...),
				func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) },
			)
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if h := tt.header(t); h != "" {
				req.Header.Set("Authorization", h)
			}
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.status, resp.StatusCode)
			if tt.code != "" {
				var body dto.ErrorResponse
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
				assert.Equal(t, tt.code, body.Code)
			}
		})
	}
}

func TestAuthMiddleware_CargaLocals(t *testing.T) {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": apphttp.GetUserID(c), "role": apphttp.GetRole(c)})
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", bearer(t, testJWTSecret, "editor", testExpMin))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, "editor", body["role"])
}
