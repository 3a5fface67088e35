package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/biciros/internal/application/auth"
	"github.com/jhoicas/biciros/internal/domain/entity"
	"github.com/jhoicas/biciros/internal/infrastructure/memstore"
	"github.com/jhoicas/biciros/internal/infrastructure/prefs"
	apphttp "github.com/jhoicas/biciros/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/biciros/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "biciros-test"
	testExpMin    = 60
)

var testJWT = auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}

// testUsers un usuario activo por rol, más uno inactivo y uno sin rol.
func testUsers() *memstore.UserRepo {
	return memstore.NewUserRepo(
		&entity.User{ID: "u-admin", Email: "admin@biciros.co", Name: "Admin", Role: entity.RoleAdmin, Status: entity.UserStatusActive},
		&entity.User{ID: "u-vendedor", Email: "ana@biciros.co", Name: "Ana", Role: entity.RoleVendedor, Status: entity.UserStatusActive},
		&entity.User{ID: "u-mecanico", Email: "luis@biciros.co", Name: "Luis", Role: entity.RoleMecanico, Status: entity.UserStatusActive},
		&entity.User{ID: "u-inactivo", Email: "beto@biciros.co", Name: "Beto", Role: entity.RoleAdmin, Status: entity.UserStatusInactive},
		&entity.User{ID: "u-sin-rol", Email: "sinrol@biciros.co", Name: "Sin Rol", Status: entity.UserStatusActive},
	)
}

func testAuth() *auth.AuthUseCase {
	return auth.NewAuthUseCase(testUsers(), prefs.NewMemory(), testJWT, nil)
}

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para validar el token y cargar locals
//   - RequireRole para autorizar el acceso
//   - Un handler dummy que devuelve 200 si pasa los middlewares
func buildTestApp(allowedRoles ...string) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testAuth()),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":   true,
				"role": apphttp.GetRole(c),
			})
		},
	)
	return app
}

// tokenFor genera un JWT para el usuario indicado. El claim de rol no decide el acceso.
func tokenFor(t *testing.T, userID string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, userID, entity.RoleAdmin, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

// doRequest lanza una petición GET /protected y devuelve la respuesta.
func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func bodyString(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireRole
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireRole_AdminAccedeRutaAdmin(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin)
	resp := doRequest(t, app, tokenFor(t, "u-admin"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "admin", body["role"])
}

func TestRequireRole_MecanicoAccedeRutaMultiRol(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin, entity.RoleMecanico)
	resp := doRequest(t, app, tokenFor(t, "u-mecanico"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// El token dice admin, pero el rol vigente del usuario es vendedor.
func TestRequireRole_VendedorBloqueadoEnRutaAdmin(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin)
	resp := doRequest(t, app, tokenFor(t, "u-vendedor"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "FORBIDDEN")
}

func TestRequireRole_UsuarioSinRol_Retorna401(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin)
	resp := doRequest(t, app, tokenFor(t, "u-sin-rol"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "MISSING_ROLE")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_SinAuthHeader_Retorna401(t *testing.T) {
	resp := doRequest(t, buildTestApp(entity.RoleAdmin), "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "MISSING_TOKEN")
}

func TestAuthMiddleware_TokensRechazados(t *testing.T) {
	other, err := pkgjwt.Generate("otro-secret", "u-admin", entity.RoleAdmin, testIssuer, testExpMin)
	require.NoError(t, err)
	expired, err := pkgjwt.Generate(testJWTSecret, "u-admin", entity.RoleAdmin, testIssuer, -1)
	require.NoError(t, err)

	cases := map[string]string{
		"malformado":      "Bearer token.invalido.aqui",
		"sin Bearer":      "Token abc",
		"Bearer vacío":    "Bearer   ",
		"firma ajena":     "Bearer " + other,
		"vencido":         "Bearer " + expired,
		"usuario borrado": tokenFor(t, "u-no-existe"),
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			resp := doRequest(t, buildTestApp(entity.RoleAdmin), header)
			defer resp.Body.Close()

			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			assert.Contains(t, bodyString(t, resp), "INVALID_TOKEN")
		})
	}
}

func TestAuthMiddleware_UsuarioInactivo_Retorna403(t *testing.T) {
	resp := doRequest(t, buildTestApp(entity.RoleAdmin), tokenFor(t, "u-inactivo"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestAuthMiddleware_CargaElUsuario(t *testing.T) {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testAuth()), func(c *fiber.Ctx) error {
		u := apphttp.GetUser(c)
		return c.JSON(fiber.Map{
			"user_id": apphttp.GetUserID(c),
			"role":    apphttp.GetRole(c),
			"name":    u.Name,
		})
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", tokenFor(t, "u-mecanico"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "u-mecanico", body["user_id"])
	assert.Equal(t, "mecanico", body["role"])
	assert.Equal(t, "Luis", body["name"])
}

// authFunc adapta una función al puerto Authenticator.
type authFunc func(ctx context.Context, token string) (*entity.User, error)

func (f authFunc) Authenticate(ctx context.Context, token string) (*entity.User, error) {
	return f(ctx, token)
}

func TestAuthMiddleware_RecibeElTokenSinPrefijo(t *testing.T) {
	var got string
	app := fiber.New()
	app.Get("/x", apphttp.AuthMiddleware(authFunc(func(_ context.Context, token string) (*entity.User, error) {
		got = token
		return &entity.User{ID: "u-1", Role: entity.RoleVendedor}, nil
	})), func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", "Bearer abc.def.ghi")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "abc.def.ghi", got)
}
