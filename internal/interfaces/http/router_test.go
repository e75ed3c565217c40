package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalog-api/internal/application/catalog"
	"github.com/jhoicas/catalog-api/internal/application/dto"
	"github.com/jhoicas/catalog-api/internal/application/ports"
	"github.com/jhoicas/catalog-api/internal/domain/entity"
	"github.com/jhoicas/catalog-api/internal/infrastructure/memory"
	"github.com/jhoicas/catalog-api/internal/infrastructure/metrics"
	"github.com/jhoicas/catalog-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/catalog-api/internal/interfaces/http"
)

// ── Helpers ───────────────────────────────────────────────────────────────────

type apiOptions struct {
	secret string
	rates  ports.RateProvider
}

func newAPI(t *testing.T, opts apiOptions) *fiber.App {
	t.Helper()
	if opts.rates == nil {
		opts.rates = ports.RateProviderFunc(func(context.Context, entity.Currency, entity.Currency) (decimal.Decimal, error) {
			return decimal.RequireFromString("1.17"), nil
		})
	}
	categories := memory.NewCategoryRepository()
	products := memory.NewProductRepository()
	v := catalog.NewValidator(categories, products)
	categoryUC := catalog.NewCategoryUseCase(categories, v)
	productUC := catalog.NewProductUseCase(products, categoryUC, v,
		catalog.NewPriceConverter(opts.rates), pdf.NewMarotoSheetGenerator("catalog-api", ""))

	app := apphttp.NewServer(apphttp.ServerOptions{
		AppName: "catalog-api",
		Logger:  zerolog.Nop(),
		Metrics: metrics.New("catalog"),
	})
	apphttp.Router(app, apphttp.RouterDeps{CategoryUC: categoryUC, ProductUC: productUC, JWTSecret: opts.secret})
	return app
}

func call(t *testing.T, app *fiber.App, method, path, body string, headers ...string) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, out
}

func errorCode(t *testing.T, body []byte) string {
	t.Helper()
	var e dto.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &e), "cuerpo: %s", body)
	return e.Code
}

// seedAPI crea Electronics(1) → Mobile phones(2) con el producto 1 en 2.
func seedAPI(t *testing.T, app *fiber.App, headers ...string) {
	t.Helper()
	resp, body := call(t, app, http.MethodPost, "/api/categories", `{"name":"Electronics"}`, headers...)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	resp, body = call(t, app, http.MethodPost, "/api/categories", `{"name":"Mobile phones","parent_id":1}`, headers...)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	resp, body = call(t, app, http.MethodPost, "/api/products",
		`{"name":"Iphone 12","category_id":2,"price":"1.00","currency":"eur"}`, headers...)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
}

// ── Categorías ────────────────────────────────────────────────────────────────

func TestAPI_CategoriasFlujoCompleto(t *testing.T) {
	app := newAPI(t, apiOptions{})
	seedAPI(t, app)

	resp, body := call(t, app, http.MethodGet, "/api/categories/parents", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var roots []dto.CategoryResponse
	require.NoError(t, json.Unmarshal(body, &roots))
	require.Len(t, roots, 1)
	assert.Equal(t, "Electronics", roots[0].Name)

	resp, body = call(t, app, http.MethodGet, "/api/categories/1/children", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "Mobile phones")

	resp, body = call(t, app, http.MethodGet, "/api/categories/2/tree", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var tree dto.CategoryTree
	require.NoError(t, json.Unmarshal(body, &tree))
	assert.Equal(t, int64(1), tree.Category.ID)
	require.NotNil(t, tree.Children)
	assert.Equal(t, int64(2), tree.Children.Category.ID)
	assert.Nil(t, tree.Children.Children)

	resp, body = call(t, app, http.MethodPut, "/api/categories/2", `{"id":2,"name":"Phones","parent_id":1}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Contains(t, string(body), `"name":"Phones"`)
}

func TestAPI_CategoriasErrores(t *testing.T) {
	app := newAPI(t, apiOptions{})
	seedAPI(t, app)

	cases := []struct {
		name, method, path, body string
		status                   int
		code                     string
	}{
		{"get inexistente", http.MethodGet, "/api/categories/99", "", http.StatusNotFound, "NotFound"},
		{"id no numérico", http.MethodGet, "/api/categories/abc", "", http.StatusBadRequest, apphttp.CodeInvalidID},
		{"crear con id", http.MethodPost, "/api/categories", `{"id":5,"name":"x"}`, http.StatusBadRequest, "IdAssignmentForbidden"},
		{"padre inexistente", http.MethodPost, "/api/categories", `{"name":"x","parent_id":42}`, http.StatusBadRequest, "ParentCategoryDoesNotExist"},
		{"sin nombre", http.MethodPost, "/api/categories", `{"parent_id":1}`, http.StatusBadRequest, apphttp.CodeValidation},
		{"nombre null", http.MethodPost, "/api/categories", `{"name":null}`, http.StatusBadRequest, apphttp.CodeValidation},
		{"crear con id y sin nombre", http.MethodPost, "/api/categories", `{"id":5}`, http.StatusBadRequest, "IdAssignmentForbidden"},
		{"crear con id y padre inexistente", http.MethodPost, "/api/categories", `{"id":5,"name":null,"parent_id":42}`, http.StatusBadRequest, "IdAssignmentForbidden"},
		{"id distinto y sin nombre", http.MethodPut, "/api/categories/2", `{"id":1}`, http.StatusBadRequest, "IdUpdateForbidden"},
		{"get id cero", http.MethodGet, "/api/categories/0", "", http.StatusNotFound, "NotFound"},
		{"borrar id negativo", http.MethodDelete, "/api/categories/-3", "", http.StatusNotFound, "NotFound"},
		{"json inválido", http.MethodPost, "/api/categories", `{"name":`, http.StatusBadRequest, apphttp.CodeInvalidBody},
		{"id distinto", http.MethodPut, "/api/categories/2", `{"id":1,"name":"x"}`, http.StatusBadRequest, "IdUpdateForbidden"},
		{"update inexistente", http.MethodPut, "/api/categories/9", `{"id":9,"name":"x"}`, http.StatusNotFound, "NotFound"},
		{"borrar con hijas", http.MethodDelete, "/api/categories/1", "", http.StatusBadRequest, "CategoryAssigned"},
		{"borrar con productos", http.MethodDelete, "/api/categories/2", "", http.StatusBadRequest, "CategoryAssigned"},
		{"borrar inexistente", http.MethodDelete, "/api/categories/9", "", http.StatusNotFound, "NotFound"},
		{"árbol inexistente", http.MethodGet, "/api/categories/9/tree", "", http.StatusNotFound, "NotFound"},
		{"sin hijas", http.MethodGet, "/api/categories/2/children", "", http.StatusNotFound, "NotFound"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, body := call(t, app, tc.method, tc.path, tc.body)
			assert.Equal(t, tc.status, resp.StatusCode, string(body))
			assert.Equal(t, tc.code, errorCode(t, body))
		})
	}
}

func TestAPI_NombreSeGuardaTalCual(t *testing.T) {
	app := newAPI(t, apiOptions{})

	for _, name := range []string{"  Padded  ", ""} {
		payload, err := json.Marshal(map[string]any{"name": name})
		require.NoError(t, err)
		resp, body := call(t, app, http.MethodPost, "/api/categories", string(payload))
		require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
		var created dto.CategoryResponse
		require.NoError(t, json.Unmarshal(body, &created))
		assert.Equal(t, name, created.Name)

		resp, body = call(t, app, http.MethodGet, fmt.Sprintf("/api/categories/%d", created.ID), "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var got dto.CategoryResponse
		require.NoError(t, json.Unmarshal(body, &got))
		assert.Equal(t, created, got)
	}

	resp, body := call(t, app, http.MethodPost, "/api/products",
		`{"name":" Iphone 12 ","category_id":1,"price":"1.00","currency":"EUR"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	resp, body = call(t, app, http.MethodGet, "/api/products/1", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var p dto.ProductResponse
	require.NoError(t, json.Unmarshal(body, &p))
	assert.Equal(t, " Iphone 12 ", p.Name)
}

func TestAPI_ListRootsVacio(t *testing.T) {
	app := newAPI(t, apiOptions{})
	resp, body := call(t, app, http.MethodGet, "/api/categories/parents", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NotFound", errorCode(t, body))
}

// ── Productos ─────────────────────────────────────────────────────────────────

func TestAPI_ProductoConConversion(t *testing.T) {
	app := newAPI(t, apiOptions{})
	seedAPI(t, app)

	resp, body := call(t, app, http.MethodGet, "/api/products/1", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var p dto.ProductResponse
	require.NoError(t, json.Unmarshal(body, &p))
	assert.Equal(t, "EUR", p.Currency, "la moneda se normaliza a mayúsculas")
	assert.Equal(t, "1.00", p.Price.StringFixed(2))

	resp, body = call(t, app, http.MethodGet, "/api/products/1?currency=usd", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &p))
	assert.Equal(t, "USD", p.Currency)
	assert.Equal(t, "1.17", p.Price.StringFixed(2))

	resp, body = call(t, app, http.MethodGet, "/api/products/1?currency=XYZ1", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, apphttp.CodeInvalidCurrency, errorCode(t, body))
}

func TestAPI_ProductoConversionFallida(t *testing.T) {
	failing := ports.RateProviderFunc(func(context.Context, entity.Currency, entity.Currency) (decimal.Decimal, error) {
		return decimal.Zero, errors.New("dial tcp: connection refused")
	})
	app := newAPI(t, apiOptions{rates: failing})
	seedAPI(t, app)

	resp, body := call(t, app, http.MethodGet, "/api/products/1?currency=USD", "")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "ConversionFailed", errorCode(t, body))
	assert.NotContains(t, string(body), "connection refused")
}

func TestAPI_ProductoFull(t *testing.T) {
	app := newAPI(t, apiOptions{})
	seedAPI(t, app)

	resp, body := call(t, app, http.MethodGet, "/api/products/1/full", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var full dto.FullProductResponse
	require.NoError(t, json.Unmarshal(body, &full))
	assert.Equal(t, "Iphone 12", full.Product.Name)
	assert.Equal(t, []dto.CategoryResponse{
		{ID: 1, Name: "Electronics"},
		{ID: 2, Name: "Mobile phones", ParentID: dto.Int64Ptr(1)},
	}, full.CategoryTree.Path())
}

func TestAPI_ProductoSheet(t *testing.T) {
	app := newAPI(t, apiOptions{})
	seedAPI(t, app)

	resp, body := call(t, app, http.MethodGet, "/api/products/1/sheet?currency=USD", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))
}

func TestAPI_ProductosErrores(t *testing.T) {
	app := newAPI(t, apiOptions{})
	seedAPI(t, app)

	cases := []struct {
		name, method, path, body string
		status                   int
		code                     string
	}{
		{"sin categoría", http.MethodPost, "/api/products", `{"name":"x","price":1,"currency":"EUR"}`, http.StatusBadRequest, "CategoryIdIsNull"},
		{"categoría inexistente", http.MethodPost, "/api/products", `{"name":"x","category_id":9,"price":1,"currency":"EUR"}`, http.StatusBadRequest, "ParentCategoryDoesNotExist"},
		{"precio negativo", http.MethodPost, "/api/products", `{"name":"x","category_id":2,"price":-1,"currency":"EUR"}`, http.StatusBadRequest, apphttp.CodeValidation},
		{"moneda desconocida", http.MethodPost, "/api/products", `{"name":"x","category_id":2,"price":1,"currency":"ZZZ"}`, http.StatusBadRequest, apphttp.CodeValidation},
		{"crear con id", http.MethodPost, "/api/products", `{"id":3,"name":"x","category_id":2,"price":1,"currency":"EUR"}`, http.StatusBadRequest, "IdAssignmentForbidden"},
		{"crear con id y cuerpo inválido", http.MethodPost, "/api/products", `{"id":3,"price":-1,"currency":"ZZZ"}`, http.StatusBadRequest, "IdAssignmentForbidden"},
		{"update sin id y cuerpo inválido", http.MethodPut, "/api/products/1", `{"price":-1}`, http.StatusBadRequest, "IdUpdateForbidden"},
		{"update id coincide y precio negativo", http.MethodPut, "/api/products/1", `{"id":1,"name":"x","category_id":2,"price":-1,"currency":"EUR"}`, http.StatusBadRequest, apphttp.CodeValidation},
		{"listar sin category_id", http.MethodGet, "/api/products", "", http.StatusBadRequest, apphttp.CodeInvalidID},
		{"listar category_id no numérico", http.MethodGet, "/api/products?category_id=x", "", http.StatusBadRequest, apphttp.CodeInvalidID},
		{"listar category_id negativo", http.MethodGet, "/api/products?category_id=-1", "", http.StatusNotFound, "NotFound"},
		{"get id cero", http.MethodGet, "/api/products/0", "", http.StatusNotFound, "NotFound"},
		{"listar categoría vacía", http.MethodGet, "/api/products?category_id=1", "", http.StatusNotFound, "NotFound"},
		{"update sin id", http.MethodPut, "/api/products/1", `{"name":"x","category_id":2,"price":1,"currency":"EUR"}`, http.StatusBadRequest, "IdUpdateForbidden"},
		{"borrar inexistente", http.MethodDelete, "/api/products/7", "", http.StatusNotFound, "NotFound"},
		{"full inexistente", http.MethodGet, "/api/products/7/full", "", http.StatusNotFound, "NotFound"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, body := call(t, app, tc.method, tc.path, tc.body)
			assert.Equal(t, tc.status, resp.StatusCode, string(body))
			assert.Equal(t, tc.code, errorCode(t, body))
		})
	}
}

func TestAPI_ProductoUpdateYDelete(t *testing.T) {
	app := newAPI(t, apiOptions{})
	seedAPI(t, app)

	resp, body := call(t, app, http.MethodPut, "/api/products/1",
		`{"id":1,"name":"Iphone 13","category_id":1,"price":"999.99","currency":"USD"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	resp, body = call(t, app, http.MethodGet, "/api/products?category_id=1", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "Iphone 13")

	resp, _ = call(t, app, http.MethodDelete, "/api/products/1", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

// ── Transversales ─────────────────────────────────────────────────────────────

func TestAPI_EscrituraProtegidaConSecret(t *testing.T) {
	app := newAPI(t, apiOptions{secret: testJWTSecret})

	resp, body := call(t, app, http.MethodPost, "/api/categories", `{"name":"x"}`)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "MISSING_TOKEN", errorCode(t, body))

	resp, _ = call(t, app, http.MethodPost, "/api/categories", `{"name":"x"}`, "Authorization", tokenForRole(t, "reader"))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	seedAPI(t, app, "Authorization", tokenForRole(t, "admin"))

	// lectura sin token
	resp, _ = call(t, app, http.MethodGet, "/api/categories/1", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAPI_RequestIDYHealth(t *testing.T) {
	app := newAPI(t, apiOptions{})

	resp, body := call(t, app, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"status":"ok"`)
	assert.NotEmpty(t, resp.Header.Get(apphttp.HeaderRequestID))

	resp, _ = call(t, app, http.MethodGet, "/health", "", apphttp.HeaderRequestID, "abc-123")
	assert.Equal(t, "abc-123", resp.Header.Get(apphttp.HeaderRequestID))
}

func TestAPI_RutaInexistente(t *testing.T) {
	app := newAPI(t, apiOptions{})
	resp, body := call(t, app, http.MethodGet, "/api/nada", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "ROUTE_NOT_FOUND", errorCode(t, body))
}

func TestAPI_Metrics(t *testing.T) {
	app := newAPI(t, apiOptions{})
	call(t, app, http.MethodGet, "/api/categories/parents", "")

	resp, body := call(t, app, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `catalog_http_requests_total{method="GET",path="/api/categories/parents",status="404"} 1`)
}
