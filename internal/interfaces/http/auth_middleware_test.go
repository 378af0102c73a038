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

	apphttp "github.com/jhoicas/rectificadora-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/rectificadora-api/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUsuario   = "taller"
	testIssuer    = "rectificadora-test"
	testExpMin    = 60
)

func bearer(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUsuario, role, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

// rbacApp protege DELETE /motores/1 con JWT y los roles indicados.
func rbacApp(roles ...string) *fiber.App {
	app := fiber.New()
	app.Delete("/motores/1",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireRole(roles...),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"role": apphttp.GetRole(c)})
		},
	)
	return app
}

func TestRequireRole(t *testing.T) {
	cases := []struct {
		name   string
		roles  []string
		header func(t *testing.T) string
		status int
		code   string
	}{
		{"admin borra motores", []string{"admin"}, func(t *testing.T) string { return bearer(t, "admin") }, http.StatusOK, ""},
		{"mecanico en ruta mixta", []string{"admin", "mecanico"}, func(t *testing.T) string { return bearer(t, "mecanico") }, http.StatusOK, ""},
		{"mecanico no borra", []string{"admin"}, func(t *testing.T) string { return bearer(t, "mecanico") }, http.StatusForbidden, "FORBIDDEN"},
		{"rol desconocido", []string{"admin"}, func(t *testing.T) string { return bearer(t, "cliente") }, http.StatusForbidden, "FORBIDDEN"},
		{"token sin rol", []string{"admin"}, func(t *testing.T) string { return bearer(t, "") }, http.StatusUnauthorized, "MISSING_ROLE"},
		{"sin header", []string{"admin"}, func(*testing.T) string { return "" }, http.StatusUnauthorized, "MISSING_TOKEN"},
		{"token malformado", []string{"admin"}, func(*testing.T) string { return "Bearer token.invalido.aqui" }, http.StatusUnauthorized, "INVALID_TOKEN"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodDelete, "/motores/1", nil)
			if h := tc.header(t); h != "" {
				req.Header.Set("Authorization", h)
			}
			resp, err := rbacApp(tc.roles...).Test(req, -1)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tc.status, resp.StatusCode)
			if tc.code != "" {
				body, _ := io.ReadAll(resp.Body)
				assert.Contains(t, string(body), tc.code)
			}
		})
	}
}

func TestAuthMiddleware_ExtractaClaims(t *testing.T) {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"usuario": apphttp.GetUsuario(c),
			"role":    apphttp.GetRole(c),
		})
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", bearer(t, "admin"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUsuario, body["usuario"])
	assert.Equal(t, "admin", body["role"])
}

func TestAnonymousMiddleware_CargaUsuarioYRol(t *testing.T) {
	app := fiber.New()
	app.Get("/me", apphttp.AnonymousMiddleware("taller", "admin"), apphttp.RequireRole("admin"), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"usuario": apphttp.GetUsuario(c), "role": apphttp.GetRole(c)})
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/me", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "taller", body["usuario"])
	assert.Equal(t, "admin", body["role"])
}

type toggle bool

func (t toggle) Enabled() bool { return bool(t) }

func TestRequireFeature(t *testing.T) {
	for _, tc := range []struct {
		enabled bool
		status  int
	}{{true, http.StatusOK}, {false, http.StatusServiceUnavailable}} {
		app := fiber.New()
		app.Get("/x", apphttp.RequireFeature("correo", toggle(tc.enabled)), func(c *fiber.Ctx) error {
			return c.SendStatus(fiber.StatusOK)
		})
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/x", nil), -1)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, tc.status, resp.StatusCode, "enabled=%v", tc.enabled)
	}
}
