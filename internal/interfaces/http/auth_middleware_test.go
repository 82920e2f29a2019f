package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Contable-api/internal/domain/entity"
	apphttp "github.com/jhoicas/Contable-api/internal/interfaces/http"
	"github.com/jhoicas/Contable-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testCompanyID = "00000000-0000-0000-0000-000000000002"
)

var testTokens = jwt.Config{
	Secret: "test-secret-key-for-unit-tests",
	Issuer: "contable-api-test",
	TTL:    time.Hour,
}

// buildTestApp monta GET /protected detrás de AuthMiddleware + RequireRole(allowedRoles...).
func buildTestApp(allowedRoles ...string) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testTokens),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{
				"user_id":    apphttp.GetUserID(c),
				"company_id": apphttp.GetCompanyID(c),
				"role":       apphttp.GetRole(c),
			})
		},
	)
	return app
}

func signToken(t *testing.T, cfg jwt.Config, role string) string {
	t.Helper()
	tok, err := jwt.Generate(cfg, jwt.Identity{UserID: testUserID, CompanyID: testCompanyID, Role: role})
	require.NoError(t, err)
	return "Bearer " + tok
}

// tokenForRole genera el header Authorization de un usuario de la empresa de prueba.
func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	return signToken(t, testTokens, role)
}

// doRequest lanza GET /protected y devuelve status y cuerpo JSON.
func doRequest(t *testing.T, app *fiber.App, authHeader string) (int, map[string]string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	body := map[string]string{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

// ──────────────────────────────────────────────────────────────────────────────
// RequireRole: grupo de finanzas (admin, contador)
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireRole_GrupoFinanzas(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin, entity.RoleContador)

	tests := []struct {
		role   string
		status int
		code   string
	}{
		{entity.RoleAdmin, http.StatusOK, ""},
		{entity.RoleContador, http.StatusOK, ""},
		{entity.RoleVendedor, http.StatusForbidden, "FORBIDDEN"},
		{entity.RoleBodeguero, http.StatusForbidden, "FORBIDDEN"},
		{"gerente", http.StatusForbidden, "FORBIDDEN"},
		{"", http.StatusUnauthorized, "MISSING_ROLE"},
	}
	for _, tt := range tests {
		t.Run("rol_"+tt.role, func(t *testing.T) {
			status, body := doRequest(t, app, tokenForRole(t, tt.role))
			assert.Equal(t, tt.status, status)
			if tt.code != "" {
				assert.Equal(t, tt.code, body["code"])
				assert.NotEmpty(t, body["message"])
				return
			}
			assert.Equal(t, tt.role, body["role"])
		})
	}
}

func TestRequireRole_MensajeNombraElRol(t *testing.T) {
	app := buildTestApp(entity.RoleBodeguero)
	status, body := doRequest(t, app, tokenForRole(t, entity.RoleContador))
	assert.Equal(t, http.StatusForbidden, status)
	assert.Contains(t, body["message"], entity.RoleContador)
}

// ──────────────────────────────────────────────────────────────────────────────
// AuthMiddleware: header y token
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_ErroresDeToken(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin)

	expired := testTokens
	expired.TTL = -time.Minute
	foreign := testTokens
	foreign.Issuer = "otra-api"
	otherSecret := testTokens
	otherSecret.Secret = "otro-secreto-completamente-distinto"

	tests := []struct {
		name   string
		header string
		code   string
	}{
		{"sin header", "", "MISSING_TOKEN"},
		{"esquema basic", "Basic dXNlcjpwYXNz", "INVALID_TOKEN"},
		{"malformado", "Bearer token.invalido.aqui", "INVALID_TOKEN"},
		{"vencido", signToken(t, expired, entity.RoleAdmin), "TOKEN_EXPIRED"},
		{"otro emisor", signToken(t, foreign, entity.RoleAdmin), "INVALID_TOKEN"},
		{"otro secreto", signToken(t, otherSecret, entity.RoleAdmin), "INVALID_TOKEN"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := doRequest(t, app, tt.header)
			assert.Equal(t, http.StatusUnauthorized, status)
			assert.Equal(t, tt.code, body["code"])
		})
	}
}

func TestAuthMiddleware_ExtraeClaims(t *testing.T) {
	app := buildTestApp(entity.RoleContador)
	status, body := doRequest(t, app, "bearer "+tokenForRole(t, entity.RoleContador)[len("Bearer "):])

	assert.Equal(t, http.StatusOK, status, "el esquema no distingue mayúsculas")
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, testCompanyID, body["company_id"])
	assert.Equal(t, entity.RoleContador, body["role"])
}
