package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Alojamientos-api/internal/domain/entity"
	idem "github.com/jhoicas/Alojamientos-api/internal/infrastructure/redis"
	apphttp "github.com/jhoicas/Alojamientos-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/Alojamientos-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testUnitID    = "00000000-0000-0000-0000-000000000002"
	otherUnitID   = "00000000-0000-0000-0000-000000000003"
	testIssuer    = "alojamientos-test"
	testExpMin    = 60
)

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para parsear el JWT y cargar locals
//   - RequireRole para autorizar el acceso
//   - Un handler dummy que devuelve 200 si pasa los middlewares
func buildTestApp(allowedRoles ...string) *fiber.App {
	app := fiber.New(fiber.Config{
		// Silenciar errores internos en los tests
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})
	// Ruta protegida: JWT + RBAC
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
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

// tokenForRole genera un JWT con el rol indicado.
func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testUnitID, role, testIssuer, testExpMin)
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

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireRole
// ──────────────────────────────────────────────────────────────────────────────

// Matriz de acceso sobre el router real: alojamiento y personal son de supervisor,
// almacén y movimientos de almacenista, unidades solo de admin.
func TestRouter_AccesoPorRol(t *testing.T) {
	f := newAPIFixture(t, nil)
	acc := f.store.SeedAccommodation(f.unit.ID, "Casa Norte", 4)
	occupancy := "/api/accommodations/" + acc.ID + "/occupancy"

	cases := []struct {
		name   string
		method string
		path   string
		role   string
		want   int
	}{
		{"supervisor no retira stock", fiber.MethodPost, "/api/movements", entity.RoleSupervisor, http.StatusForbidden},
		{"supervisor no ve productos", fiber.MethodGet, "/api/products", entity.RoleSupervisor, http.StatusForbidden},
		{"almacenista no traslada", fiber.MethodPost, "/api/employees/" + f.emp.ID + "/transfers", entity.RoleAlmacenista, http.StatusForbidden},
		{"almacenista no desvincula", fiber.MethodPost, "/api/employees/" + f.emp.ID + "/dismiss", entity.RoleAlmacenista, http.StatusForbidden},
		{"almacenista no inspecciona", fiber.MethodGet, "/api/inspections", entity.RoleAlmacenista, http.StatusForbidden},
		{"almacenista no edita habitaciones", fiber.MethodPut, "/api/rooms/x", entity.RoleAlmacenista, http.StatusForbidden},
		{"supervisor no crea unidades", fiber.MethodPost, "/api/units", entity.RoleSupervisor, http.StatusForbidden},
		{"almacenista no lista unidades", fiber.MethodGet, "/api/units", entity.RoleAlmacenista, http.StatusForbidden},
		{"supervisor ve ocupación", fiber.MethodGet, occupancy, entity.RoleSupervisor, http.StatusOK},
		{"almacenista ve ocupación", fiber.MethodGet, occupancy, entity.RoleAlmacenista, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, raw := f.do(t, tc.method, tc.path, tc.role, "", nil)
			assert.Equal(t, tc.want, resp.StatusCode, string(raw))
			if tc.want == http.StatusForbidden {
				assert.Equal(t, "FORBIDDEN", errorCode(t, raw))
			}
		})
	}
}

// Un rol desconocido en el token no entra a ninguna ruta de negocio.
func TestRequireRole_RolDesconocido(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin, entity.RoleSupervisor, entity.RoleAlmacenista)
	resp := doRequest(t, app, tokenForRole(t, "contador"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

// buildIdempotentApp monta AuthMiddleware + Idempotency sobre Redis en memoria y cuenta
// cuántas veces se ejecuta realmente el handler.
func buildIdempotentApp(t *testing.T, calls *atomic.Int32) *fiber.App {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	store := idem.NewIdempotencyStore(client, time.Hour)

	app := fiber.New()
	handler := func(c *fiber.Ctx) error {
		n := calls.Add(1)
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"unit_id": apphttp.GetUnitID(c), "n": n})
	}
	app.Post("/movements", apphttp.AuthMiddleware(testJWTSecret), apphttp.Idempotency(store), handler)
	app.Post("/movements/:id/return", apphttp.AuthMiddleware(testJWTSecret), apphttp.Idempotency(store), handler)
	return app
}

func postWithKey(t *testing.T, app *fiber.App, path, unitID, key string) (*http.Response, map[string]any) {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, unitID, entity.RoleAlmacenista, testIssuer, testExpMin)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	req.Header.Set("Idempotency-Key", key)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp, body
}

// La misma Idempotency-Key enviada desde dos unidades son dos peticiones distintas.
func TestIdempotency_ClavePorUnidad(t *testing.T) {
	var calls atomic.Int32
	app := buildIdempotentApp(t, &calls)

	resp, body := postWithKey(t, app, "/movements", testUnitID, "retiro-1")
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, testUnitID, body["unit_id"])

	resp, body = postWithKey(t, app, "/movements", otherUnitID, "retiro-1")
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Empty(t, resp.Header.Get("Idempotent-Replayed"), "otra unidad no debe recibir la respuesta ajena")
	assert.Equal(t, otherUnitID, body["unit_id"])

	resp, body = postWithKey(t, app, "/movements", testUnitID, "retiro-1")
	assert.Equal(t, "true", resp.Header.Get("Idempotent-Replayed"))
	assert.Equal(t, testUnitID, body["unit_id"])
	assert.EqualValues(t, 1, body["n"])

	assert.Equal(t, int32(2), calls.Load())
}

// La clave también se separa por ruta: retirar y devolver con la misma clave no chocan.
func TestIdempotency_ClavePorRuta(t *testing.T) {
	var calls atomic.Int32
	app := buildIdempotentApp(t, &calls)

	resp, _ := postWithKey(t, app, "/movements", testUnitID, "k")
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp, _ = postWithKey(t, app, "/movements/m1/return", testUnitID, "k")
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Empty(t, resp.Header.Get("Idempotent-Replayed"))

	assert.Equal(t, int32(2), calls.Load())
}

// Token sin claim de rol (emulado con token vacío) → HTTP 401.
func TestRequireRole_TokenSinRol_Retorna401(t *testing.T) {
	// Generamos un token con rol vacío para simular un token legacy sin el claim.
	app := buildTestApp("admin")
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testUnitID, "", testIssuer, testExpMin)
	require.NoError(t, err)

	resp := doRequest(t, app, "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode,
		"token sin rol debe retornar 401")

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_ROLE",
		"la respuesta debe indicar el código MISSING_ROLE")
}

// Sin header Authorization → HTTP 401 MISSING_TOKEN.
func TestRequireRole_SinAuthHeader_Retorna401(t *testing.T) {
	app := buildTestApp("admin")
	resp := doRequest(t, app, "") // sin header
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Token inválido / malformado → HTTP 401 INVALID_TOKEN.
func TestRequireRole_TokenInvalido_Retorna401(t *testing.T) {
	app := buildTestApp("admin")
	resp := doRequest(t, app, "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware: extracción de claims del token
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_ExtractaClaims(t *testing.T) {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id": apphttp.GetUserID(c),
			"unit_id": apphttp.GetUnitID(c),
			"role":    apphttp.GetRole(c),
		})
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", tokenForRole(t, "admin"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, testUnitID, body["unit_id"])
	assert.Equal(t, "admin", body["role"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests JWT pkg: integridad del generate/parse con role
// ──────────────────────────────────────────────────────────────────────────────

func TestJWT_GenerateAndParse_ConRole(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testUnitID, "almacenista", testIssuer, testExpMin)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	userID, unitID, role, err := pkgjwt.Parse(testJWTSecret, tok)
	require.NoError(t, err)

	assert.Equal(t, testUserID, userID)
	assert.Equal(t, testUnitID, unitID)
	assert.Equal(t, "almacenista", role)
}

func TestJWT_TokenExpirado_RetornaError(t *testing.T) {
	// Token con expiración -1 minuto (ya expirado)
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testUnitID, "admin", testIssuer, -1)
	require.NoError(t, err)

	_, _, _, err = pkgjwt.Parse(testJWTSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestJWT_SecretIncorrecto_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testUnitID, "admin", testIssuer, testExpMin)
	require.NoError(t, err)

	_, _, _, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err, "secret incorrecto debe invalidar el token")
}
