package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Obra-api/internal/domain/rbac"
	"github.com/jhoicas/Obra-api/internal/domain/tenant"
	apphttp "github.com/jhoicas/Obra-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/Obra-api/pkg/jwt"
	"github.com/jhoicas/Obra-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testOrgID     = "00000000-0000-0000-0000-000000000002"
	otherOrgID    = "00000000-0000-0000-0000-000000000003"
	testIssuer    = "obra-api-test"
)

type recorder struct {
	decisions []tenant.Decision
}

func (r *recorder) RecordDecision(_ rbac.Permission, d tenant.Decision) {
	r.decisions = append(r.decisions, d)
}

func newResolver() *tenant.Resolver {
	return tenant.NewResolver(pkgjwt.NewVerifier(testJWTSecret))
}

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para resolver el tenant desde el JWT
//   - RequirePermission para autorizar con la tabla de permisos
//   - Un handler dummy que devuelve el Scope si pasa los middlewares
func buildTestApp(rec *recorder, required rbac.Permission, also ...rbac.Permission) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler(logger.Nop())})
	app.Get("/protected",
		apphttp.AuthMiddleware(newResolver()),
		apphttp.RequirePermission(tenant.NewGate(rec), required, also...),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{
				"organization_id": apphttp.GetScope(c).OrganizationID(),
				"user_id":         apphttp.GetScope(c).UserID(),
				"role":            apphttp.GetTenant(c).Role,
			})
		},
	)
	return app
}

// tokenFor genera un JWT para la organización y rol indicados.
func tokenFor(t *testing.T, orgID, role string, ttl time.Duration) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testIssuer, pkgjwt.Identity{
		UserID:         testUserID,
		Email:          "user@obra.co",
		Role:           role,
		OrganizationID: orgID,
	}, ttl)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

func tokenForRole(t *testing.T, role string) string {
	return tokenFor(t, testOrgID, role, time.Hour)
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
// Tests RequirePermission
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: el rol tiene el permiso → 200 y el Scope lleva la organización del token.
func TestRequirePermission_AdminCreaObra(t *testing.T) {
	rec := &recorder{}
	app := buildTestApp(rec, rbac.ProjectCreate)
	resp := doRequest(t, app, tokenForRole(t, "admin"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testOrgID, body["organization_id"])
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, []tenant.Decision{tenant.DecisionAuthorized}, rec.decisions)
}

// Caso 2: site_engineer no tiene project.create → 403 con el permiso faltante.
func TestRequirePermission_SiteEngineerNoCreaObra(t *testing.T) {
	rec := &recorder{}
	app := buildTestApp(rec, rbac.ProjectCreate)
	resp := doRequest(t, app, tokenForRole(t, "site_engineer"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "project.create")
	assert.Contains(t, string(body), `"success":false`)
	assert.Equal(t, []tenant.Decision{tenant.DecisionForbidden}, rec.decisions)
}

// Caso 3: permiso dependiente ausente → 403 aunque tenga el principal.
func TestRequirePermission_SinPermisoDependiente(t *testing.T) {
	app := buildTestApp(&recorder{}, rbac.ExpenseCreate, rbac.ExpenseUpdate)
	resp := doRequest(t, app, tokenForRole(t, "supervisor"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "expense.update")
	assert.NotContains(t, string(body), "expense.create")
}

// Caso 4: rol desconocido → todo permiso se niega.
func TestRequirePermission_RolDesconocido(t *testing.T) {
	app := buildTestApp(&recorder{}, rbac.DashboardRead)
	resp := doRequest(t, app, tokenForRole(t, "bodeguero"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

// Caso 5: sin header Authorization → 401 y decisión Rejected.
func TestRequirePermission_SinAuthHeader_Retorna401(t *testing.T) {
	rec := &recorder{}
	app := buildTestApp(rec, rbac.DashboardRead)
	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, []tenant.Decision{tenant.DecisionRejected}, rec.decisions)
}

// Caso 6: token malformado, expirado o firmado con otro secreto → 401.
func TestRequirePermission_TokenInvalido_Retorna401(t *testing.T) {
	app := buildTestApp(&recorder{}, rbac.DashboardRead)

	otro, err := pkgjwt.Generate("otro-secret-completamente-distinto", testIssuer, pkgjwt.Identity{
		UserID: testUserID, Role: "admin", OrganizationID: testOrgID,
	}, time.Hour)
	require.NoError(t, err)

	for name, header := range map[string]string{
		"malformado":   "Bearer token.invalido.aqui",
		"sin bearer":   "Token abc",
		"expirado":     tokenFor(t, testOrgID, "admin", -time.Minute),
		"otro secreto": "Bearer " + otro,
	} {
		resp := doRequest(t, app, header)
		resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, name)
	}
}

// Caso 7: token sin organización → 401 (no hay tenant del cual acotar datos).
func TestRequirePermission_TokenSinOrganizacion_Retorna401(t *testing.T) {
	app := buildTestApp(&recorder{}, rbac.DashboardRead)
	resp := doRequest(t, app, tokenFor(t, "", "admin", time.Hour))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware: extracción de claims del token
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_ExtraeClaims(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler(logger.Nop())})
	app.Get("/me", apphttp.AuthMiddleware(newResolver()), apphttp.Authenticated(), func(c *fiber.Ctx) error {
		tc := apphttp.GetTenant(c)
		return c.JSON(fiber.Map{
			"user_id":         tc.UserID,
			"organization_id": tc.OrganizationID,
			"role":            tc.Role,
		})
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", tokenForRole(t, "accountant"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, testOrgID, body["organization_id"])
	assert.Equal(t, "accountant", body["role"])
}

func TestAuthenticated_SinToken_Retorna401(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler(logger.Nop())})
	app.Get("/me", apphttp.AuthMiddleware(newResolver()), apphttp.Authenticated(), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/me", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
