package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Contable-api/internal/application/analytics"
	"github.com/jhoicas/Contable-api/internal/application/auth"
	"github.com/jhoicas/Contable-api/internal/application/billing"
	"github.com/jhoicas/Contable-api/internal/application/inventory"
	"github.com/jhoicas/Contable-api/internal/application/treasury"
	"github.com/jhoicas/Contable-api/internal/application/usecase"
	"github.com/jhoicas/Contable-api/internal/infrastructure/excel"
	"github.com/jhoicas/Contable-api/internal/infrastructure/memory"
	"github.com/jhoicas/Contable-api/internal/infrastructure/metrics"
	apphttp "github.com/jhoicas/Contable-api/internal/interfaces/http"
)

// newAPI arma la API completa sobre el almacén en memoria.
func newAPI(t *testing.T) *fiber.App {
	t.Helper()
	store := memory.NewStore()
	repos := store.Repos()
	authUC := auth.NewAuthUseCase(repos.Users, repos.Companies, testTokens).WithBcryptCost(bcrypt.MinCost)
	m := metrics.New("contable-test")

	app := fiber.New()
	app.Use(apphttp.Metrics(m))
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:      authUC,
		CompanyUC:   usecase.NewCompanyUseCase(repos.Companies),
		UserUC:      usecase.NewUserUseCase(repos.Users),
		PartyUC:     usecase.NewPartyUseCase(store),
		ProductUC:   usecase.NewProductUseCase(store),
		InventoryUC: inventory.NewInventoryUseCase(store),
		InvoiceUC:   billing.NewInvoiceUseCase(store),
		ReturnUC:    billing.NewReturnUseCase(store),
		AccountUC:   treasury.NewAccountUseCase(store),
		VoucherUC:   treasury.NewVoucherUseCase(store),
		TransferUC:  treasury.NewTransferUseCase(store),
		DashboardUC: analytics.NewDashboardUseCase(repos.Reports),
		ReportUC:    analytics.NewReportUseCase(store, excel.NewExporter()),
		Metrics:     m,
		JWT:         testTokens,
	})
	return app
}

// call envía body como JSON (si no es nil) y decodifica la respuesta cuando es JSON.
func call(t *testing.T, app *fiber.App, method, path, auth string, body interface{}) (int, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]interface{}{}
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &out))
	}
	return resp.StatusCode, out
}

func TestAPI_SinToken(t *testing.T) {
	app := newAPI(t)
	status, body := call(t, app, http.MethodGet, "/api/products", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "MISSING_TOKEN", body["code"])
}

func TestAPI_PermisosPorRol(t *testing.T) {
	app := newAPI(t)
	product := map[string]interface{}{"code": "P1", "name": "Martillo"}

	status, body := call(t, app, http.MethodPost, "/api/products", tokenForRole(t, "vendedor"), product)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", body["code"])

	status, _ = call(t, app, http.MethodPost, "/api/products", tokenForRole(t, "bodeguero"), product)
	assert.Equal(t, http.StatusCreated, status)

	status, body = call(t, app, http.MethodGet, "/api/products", tokenForRole(t, "vendedor"), nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, body["items"], 1)

	status, _ = call(t, app, http.MethodGet, "/api/treasury/payments", tokenForRole(t, "vendedor"), nil)
	assert.Equal(t, http.StatusForbidden, status)
	status, _ = call(t, app, http.MethodGet, "/api/users", tokenForRole(t, "contador"), nil)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestAPI_ValidacionDelBody(t *testing.T) {
	app := newAPI(t)
	tok := tokenForRole(t, "bodeguero")

	status, body := call(t, app, http.MethodPost, "/api/products", tok, map[string]interface{}{
		"code": "", "buy_price": -1,
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", body["code"])
	fields, ok := body["fields"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, fields, "code")
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "buy_price")

	req := httptest.NewRequest(http.MethodPost, "/api/products", bytes.NewBufferString("{no es json"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", tok)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPI_FiltrosDeConsulta(t *testing.T) {
	app := newAPI(t)
	tok := tokenForRole(t, "bodeguero")

	status, body := call(t, app, http.MethodGet, "/api/inventory/movements?from=2026-02-10&to=2026-02-01", tok, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_QUERY", body["code"])

	status, body = call(t, app, http.MethodGet, "/api/inventory/movements?type=TRASLADO", tok, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", body["code"])
}

func TestAPI_FlujoCompraVenta(t *testing.T) {
	app := newAPI(t)
	bodega := tokenForRole(t, "bodeguero")
	vendedor := tokenForRole(t, "vendedor")
	contador := tokenForRole(t, "contador")

	status, product := call(t, app, http.MethodPost, "/api/products", bodega, map[string]interface{}{
		"code": "P1", "name": "Martillo", "buy_price": "20000", "sell_price": "32000",
	})
	require.Equal(t, http.StatusCreated, status)
	productID := product["id"].(string)

	status, supplier := call(t, app, http.MethodPost, "/api/suppliers", bodega, map[string]interface{}{
		"code": "S1", "name": "Herramientas S.A.",
	})
	require.Equal(t, http.StatusCreated, status)

	status, purchase := call(t, app, http.MethodPost, "/api/purchases/invoices", bodega, map[string]interface{}{
		"party_id": supplier["id"],
		"items":    []map[string]interface{}{{"product_id": productID, "quantity": "10"}},
	})
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "FC-000001", purchase["number"])

	status, customer := call(t, app, http.MethodPost, "/api/customers", vendedor, map[string]interface{}{
		"code": "C1", "name": "Obra Calle 80",
	})
	require.Equal(t, http.StatusCreated, status)

	status, body := call(t, app, http.MethodPost, "/api/sales/invoices", vendedor, map[string]interface{}{
		"party_id": customer["id"],
		"items":    []map[string]interface{}{{"product_id": productID, "quantity": "11"}},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "INSUFFICIENT_STOCK", body["code"])

	status, sale := call(t, app, http.MethodPost, "/api/sales/invoices", vendedor, map[string]interface{}{
		"party_id": customer["id"],
		"items":    []map[string]interface{}{{"product_id": productID, "quantity": "2"}},
	})
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "64000", sale["total"])
	saleID := sale["id"].(string)

	_, product = call(t, app, http.MethodGet, "/api/products/"+productID, vendedor, nil)
	assert.Equal(t, "8", product["current_stock"])

	_, customer = call(t, app, http.MethodGet, "/api/customers/"+customer["id"].(string), vendedor, nil)
	assert.Equal(t, "64000", customer["balance"])

	status, _ = call(t, app, http.MethodDelete, "/api/sales/invoices/"+saleID, vendedor, nil)
	assert.Equal(t, http.StatusForbidden, status)
	status, _ = call(t, app, http.MethodDelete, "/api/sales/invoices/"+saleID, contador, nil)
	assert.Equal(t, http.StatusNoContent, status)
	status, body = call(t, app, http.MethodGet, "/api/sales/invoices/"+saleID, contador, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", body["code"])

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `document_type="SALES_INVOICE"`)
}

func TestAPI_RegistroYLogin(t *testing.T) {
	app := newAPI(t)

	status, company := call(t, app, http.MethodPost, "/api/companies", "", map[string]interface{}{
		"name": "Ferretería Central", "tax_id": "800197268-4",
	})
	require.Equal(t, http.StatusCreated, status)

	status, _ = call(t, app, http.MethodPost, "/api/auth/register", "", map[string]interface{}{
		"email": "admin@central.co", "password": "clave-segura", "company_id": company["id"], "role": "admin",
	})
	require.Equal(t, http.StatusCreated, status)

	status, body := call(t, app, http.MethodPost, "/api/auth/login", "", map[string]interface{}{
		"email": "admin@central.co", "password": "otra-clave",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.NotEmpty(t, body["message"])

	status, body = call(t, app, http.MethodPost, "/api/auth/login", "", map[string]interface{}{
		"email": "admin@central.co", "password": "clave-segura",
	})
	require.Equal(t, http.StatusOK, status)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)

	status, body = call(t, app, http.MethodGet, "/api/users", "Bearer "+token, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, body["items"], 1)
}

func TestAPI_IDDeRutaNoUUID(t *testing.T) {
	app := newAPI(t)
	contador := tokenForRole(t, "contador")

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/sales/invoices/no-es-uuid"},
		{http.MethodDelete, "/api/products/123"},
		{http.MethodGet, "/api/treasury/receipts/RC-000001"},
		{http.MethodGet, "/api/reports/parties/x/statement"},
		{http.MethodGet, "/api/inventory/movements/00000000-0000-0000-0000"},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			status, body := call(t, app, tt.method, tt.path, contador, nil)
			assert.Equal(t, http.StatusBadRequest, status)
			assert.Equal(t, "INVALID_ID", body["code"])
		})
	}

	// el rol se valida antes que el id
	status, body := call(t, app, http.MethodGet, "/api/treasury/payments/no-es-uuid", tokenForRole(t, "vendedor"), nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", body["code"])

	// UUID bien formado pero inexistente
	status, body = call(t, app, http.MethodGet, "/api/sales/invoices/6f1c2a7e-3b4d-4e5f-8a9b-0c1d2e3f4a5b", contador, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", body["code"])
}

func TestAPI_EstadoDeCuentaPorTipoDeTercero(t *testing.T) {
	app := newAPI(t)
	bodega := tokenForRole(t, "bodeguero")
	vendedor := tokenForRole(t, "vendedor")
	contador := tokenForRole(t, "contador")

	status, supplier := call(t, app, http.MethodPost, "/api/suppliers", bodega, map[string]interface{}{
		"code": "S1", "name": "Herramientas S.A.",
	})
	require.Equal(t, http.StatusCreated, status)
	status, customer := call(t, app, http.MethodPost, "/api/customers", vendedor, map[string]interface{}{
		"code": "C1", "name": "Obra Calle 80",
	})
	require.Equal(t, http.StatusCreated, status)
	supplierPath := "/api/reports/parties/" + supplier["id"].(string) + "/statement"
	customerPath := "/api/reports/parties/" + customer["id"].(string) + "/statement"

	tests := []struct {
		name   string
		token  string
		path   string
		status int
	}{
		{"bodeguero lee proveedor", bodega, supplierPath, http.StatusOK},
		{"bodeguero exporta proveedor", bodega, supplierPath + ".xlsx", http.StatusOK},
		{"bodeguero no lee cliente", bodega, customerPath, http.StatusForbidden},
		{"vendedor lee cliente", vendedor, customerPath, http.StatusOK},
		{"vendedor no lee proveedor", vendedor, supplierPath, http.StatusForbidden},
		{"vendedor no exporta proveedor", vendedor, supplierPath + ".xlsx", http.StatusForbidden},
		{"contador lee proveedor", contador, supplierPath, http.StatusOK},
		{"contador lee cliente", contador, customerPath, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := call(t, app, http.MethodGet, tt.path, tt.token, nil)
			assert.Equal(t, tt.status, status)
			if tt.status == http.StatusForbidden {
				assert.Equal(t, "FORBIDDEN", body["code"])
			}
		})
	}
}
