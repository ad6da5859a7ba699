package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/auth"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/stock"
	"github.com/jhoicas/almacen-api/internal/bootstrap"
	"github.com/jhoicas/almacen-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/almacen-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/almacen-api/pkg/jwt"
)

type api struct {
	app  *fiber.App
	deps apphttp.RouterDeps
}

func newAPI(t *testing.T, wrapTx func(stock.TxRunner) stock.TxRunner) *api {
	t.Helper()
	store := memory.NewStore()
	require.NoError(t, memory.Seed(context.Background(), store))
	repos := bootstrap.MemoryRepos(store)
	if wrapTx != nil {
		repos.Tx = wrapTx(repos.Tx)
	}
	deps := bootstrap.RouterDeps(repos, bootstrap.Options{
		JWT: auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer},
	})
	app := fiber.New()
	apphttp.Router(app, deps)
	return &api{app: app, deps: deps}
}

func (a *api) do(t *testing.T, method, path, role string, body any) (*http.Response, []byte) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if role != "" {
		tok, err := pkgjwt.Generate(testJWTSecret, testUserID, role, testIssuer, testExpMin)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	return resp, buf.Bytes()
}

// fixture crea un producto y un bulto vacío.
func (a *api) fixture(t *testing.T) (productID, packageID string) {
	t.Helper()
	ctx := context.Background()
	cat, err := a.deps.CategoryUC.Create(ctx, dto.CatalogRequest{Name: "Aseo"})
	require.NoError(t, err)
	p, err := a.deps.ProductUC.Create(ctx, dto.CreateProductRequest{Name: "Guantes", Price: decimal.NewFromInt(1200), CategoryID: cat.ID})
	require.NoError(t, err)
	pkg, err := a.deps.PackageUC.Create(ctx, dto.CreatePackageRequest{Description: "Caja 1", CurrentLocation: "Muelle A"})
	require.NoError(t, err)
	return p.ID, pkg.ID
}

func decodeResult(t *testing.T, body []byte) dto.ResultResponse {
	t.Helper()
	var out dto.ResultResponse
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}

func (a *api) quantity(t *testing.T, productID string) int {
	t.Helper()
	resp, body := a.do(t, http.MethodGet, "/api/products/"+productID, "consulta", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var p dto.ProductResponse
	require.NoError(t, json.Unmarshal(body, &p))
	return p.QuantityOnHand
}

func TestStockRoutes_EntryLifecycle(t *testing.T) {
	a := newAPI(t, nil)
	productID, packageID := a.fixture(t)

	// bulto sin detalles
	resp, body := a.do(t, http.MethodPost, "/api/entries", "bodeguero", dto.CreateRecordRequest{PackageID: packageID})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	res := decodeResult(t, body)
	assert.False(t, res.Success)
	assert.NotEmpty(t, res.Message)

	resp, body = a.do(t, http.MethodPost, "/api/line-items", "bodeguero", dto.CreateLineItemRequest{PackageID: packageID, ProductID: productID, Quantity: 4})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	res = decodeResult(t, body)
	assert.True(t, res.Success)
	assert.Equal(t, "Detalle agregado correctamente.", res.Message)
	assert.Equal(t, 0, a.quantity(t, productID))

	resp, body = a.do(t, http.MethodPost, "/api/entries", "bodeguero", dto.CreateRecordRequest{PackageID: packageID})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	res = decodeResult(t, body)
	assert.True(t, res.Success)
	assert.Equal(t, "Entrada registrada correctamente.", res.Message)
	assert.Equal(t, 4, a.quantity(t, productID))

	resp, body = a.do(t, http.MethodPost, "/api/entries", "bodeguero", dto.CreateRecordRequest{PackageID: packageID})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.False(t, decodeResult(t, body).Success)

	resp, body = a.do(t, http.MethodPost, "/api/exits", "bodeguero", dto.CreateRecordRequest{PackageID: packageID})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.False(t, decodeResult(t, body).Success)
	assert.Equal(t, 4, a.quantity(t, productID))

	resp, body = a.do(t, http.MethodDelete, "/api/packages/"+packageID, "admin", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Bulto eliminado correctamente.", decodeResult(t, body).Message)
	assert.Equal(t, 0, a.quantity(t, productID))
}

func TestStockRoutes_NotFound(t *testing.T) {
	a := newAPI(t, nil)

	resp, body := a.do(t, http.MethodDelete, "/api/entries/00000000-0000-4000-8000-0000000000ff", "bodeguero", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	var e dto.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &e))
	assert.Equal(t, "NOT_FOUND", e.Code)

	resp, _ = a.do(t, http.MethodGet, "/api/packages/no-es-uuid", "consulta", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestStockRoutes_ValidationAndRoles(t *testing.T) {
	a := newAPI(t, nil)
	productID, packageID := a.fixture(t)

	resp, body := a.do(t, http.MethodPost, "/api/line-items", "bodeguero", map[string]any{"package_id": packageID, "product_id": productID, "quantity": 0})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var e dto.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &e))
	assert.Equal(t, "VALIDATION", e.Code)
	assert.Contains(t, e.Details, "quantity")

	resp, _ = a.do(t, http.MethodPost, "/api/line-items", "consulta", dto.CreateLineItemRequest{PackageID: packageID, ProductID: productID, Quantity: 1})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = a.do(t, http.MethodGet, "/api/line-items", "consulta", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = a.do(t, http.MethodGet, "/api/users", "bodeguero", nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = a.do(t, http.MethodGet, "/api/products", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

type brokenTx struct{}

func (brokenTx) Run(context.Context, func(stock.TxRepos) error) error {
	return errors.New("conexión reiniciada por el servidor")
}

func TestStockRoutes_PersistenceFailure(t *testing.T) {
	a := newAPI(t, func(stock.TxRunner) stock.TxRunner { return brokenTx{} })
	productID, packageID := a.fixture(t)

	resp, body := a.do(t, http.MethodPost, "/api/line-items", "bodeguero", dto.CreateLineItemRequest{PackageID: packageID, ProductID: productID, Quantity: 2})
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	res := decodeResult(t, body)
	assert.False(t, res.Success)
	assert.Equal(t, "No se pudo completar la operación. Intente nuevamente.", res.Message)
}

func TestExportRoutes(t *testing.T) {
	a := newAPI(t, nil)
	_, packageID := a.fixture(t)

	resp, body := a.do(t, http.MethodGet, "/api/export/products", "consulta", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "products_")
	assert.True(t, bytes.HasPrefix(body, []byte("PK")), "xlsx es un zip")

	resp, _ = a.do(t, http.MethodGet, "/api/export/invoices", "consulta", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body = a.do(t, http.MethodGet, "/api/packages/"+packageID+"/manifest", "consulta", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))
}
