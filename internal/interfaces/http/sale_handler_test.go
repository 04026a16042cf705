package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/pos-api/internal/application/sales"
	"github.com/tu-usuario/pos-api/internal/domain/entity"
	"github.com/tu-usuario/pos-api/internal/domain/repository"
	apphttp "github.com/tu-usuario/pos-api/internal/interfaces/http"
	pkgjwt "github.com/tu-usuario/pos-api/pkg/jwt"
	"github.com/tu-usuario/pos-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testIssuer    = "pos-api-test"
	testExpMin    = 60
)

// stubRunner ejecuta fn con repositorios mínimos en memoria, o devuelve err
// directamente para simular fallos de transacción.
type stubRunner struct {
	product *entity.Product
	err     error
}

func (r *stubRunner) Run(_ context.Context, fn func(
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	saleRepo repository.SaleRepository,
) error) error {
	if r.err != nil {
		return r.err
	}
	return fn(&stubProductRepo{product: r.product}, stubCustomerRepo{}, stubSaleRepo{})
}

type stubProductRepo struct{ product *entity.Product }

func (s *stubProductRepo) Create(_ context.Context, _ *entity.Product) error { return nil }
func (s *stubProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	if s.product != nil && s.product.ID == id {
		cp := *s.product
		return &cp, nil
	}
	return nil, nil
}
func (s *stubProductRepo) GetBySKU(_ context.Context, _ string) (*entity.Product, error) {
	return nil, nil
}
func (s *stubProductRepo) Update(_ context.Context, _ *entity.Product) error { return nil }
func (s *stubProductRepo) ReserveStock(_ context.Context, id string, qty int64) (bool, error) {
	if s.product == nil || s.product.ID != id {
		return false, nil
	}
	if s.product.StockQuantity < qty {
		return false, nil
	}
	s.product.StockQuantity -= qty
	return true, nil
}
func (s *stubProductRepo) Delete(_ context.Context, _ string) error { return nil }

type stubCustomerRepo struct{}

func (stubCustomerRepo) Create(_ context.Context, _ *entity.Customer) error { return nil }
func (stubCustomerRepo) GetByID(_ context.Context, _ string) (*entity.Customer, error) {
	return nil, nil
}
func (stubCustomerRepo) List(_ context.Context, _, _ int) ([]*entity.Customer, int, error) {
	return nil, 0, nil
}
func (stubCustomerRepo) Update(_ context.Context, _ *entity.Customer) error { return nil }
func (stubCustomerRepo) Delete(_ context.Context, _ string) error           { return nil }

type stubSaleRepo struct{}

func (stubSaleRepo) Create(_ context.Context, _ *entity.Sale) error         { return nil }
func (stubSaleRepo) CreateItem(_ context.Context, _ *entity.SaleItem) error { return nil }
func (stubSaleRepo) GetByID(_ context.Context, _ string) (*entity.Sale, error) {
	return nil, nil
}
func (stubSaleRepo) GetItemsBySaleID(_ context.Context, _ string) ([]*entity.SaleItem, error) {
	return nil, nil
}
func (stubSaleRepo) List(_ context.Context, _ repository.SaleFilter) ([]*entity.Sale, int, error) {
	return nil, 0, nil
}
func (stubSaleRepo) ListByCustomer(_ context.Context, _ string, _ int) ([]*entity.Sale, error) {
	return nil, nil
}
func (stubSaleRepo) StatsByCustomer(_ context.Context, _ string) (*repository.CustomerStats, error) {
	return &repository.CustomerStats{}, nil
}

type stubUserRepo struct{}

func (stubUserRepo) Create(_ context.Context, _ *entity.User) error { return nil }
func (stubUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	return &entity.User{ID: id, Email: "cajero@tienda.test"}, nil
}

// buildSalesApp construye una app Fiber con la ruta POST /api/sales protegida
// y el runner indicado detrás del caso de uso.
func buildSalesApp(runner sales.TxRunner) *fiber.App {
	log := logger.New(logger.Config{Env: "test", Level: "error"})
	createUC := sales.NewCreateSaleUseCase(runner, stubUserRepo{}, 0)
	queryUC := sales.NewSaleQueryUseCase(stubSaleRepo{}, stubCustomerRepo{}, stubUserRepo{})
	handler := apphttp.NewSaleHandler(createUC, queryUC, log)

	app := fiber.New()
	app.Post("/api/sales", apphttp.AuthMiddleware(testJWTSecret), handler.Create)
	return app
}

func bearerToken(t *testing.T) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

func postSale(t *testing.T, app *fiber.App, authHeader, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/sales", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Autenticación
// ──────────────────────────────────────────────────────────────────────────────

func TestPostSale_SinTokenRetorna401(t *testing.T) {
	app := buildSalesApp(&stubRunner{})
	resp := postSale(t, app, "", `{"items":[{"product_id":"p1","quantity":1}]}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestPostSale_TokenInvalidoRetorna401(t *testing.T) {
	app := buildSalesApp(&stubRunner{})
	resp := postSale(t, app, "Bearer token.invalido.aqui", `{"items":[{"product_id":"p1","quantity":1}]}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Mapeo de errores del motor de ventas a HTTP
// ──────────────────────────────────────────────────────────────────────────────

func TestPostSale_VentaValidaRetorna201(t *testing.T) {
	app := buildSalesApp(&stubRunner{product: &entity.Product{
		ID:            "p1",
		SKU:           "SKU-p1",
		Name:          "Café 500g",
		Price:         decimal.RequireFromString("19.99"),
		StockQuantity: 10,
	}})
	resp := postSale(t, app, bearerToken(t), `{"items":[{"product_id":"p1","quantity":2}]}`)
	defer resp.Body.Close()

	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "39.98", body["total_amount"])
	items, ok := body["items"].([]interface{})
	require.True(t, ok)
	assert.Len(t, items, 1)
}

func TestPostSale_ListaVaciaRetorna400(t *testing.T) {
	app := buildSalesApp(&stubRunner{})
	resp := postSale(t, app, bearerToken(t), `{"items":[]}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestPostSale_ProductoInexistenteRetorna404(t *testing.T) {
	app := buildSalesApp(&stubRunner{}) // sin producto: GetByID devuelve nil
	resp := postSale(t, app, bearerToken(t), `{"items":[{"product_id":"no-existe","quantity":1}]}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "NOT_FOUND", body["code"])
}

func TestPostSale_StockInsuficienteRetorna409ConDetalle(t *testing.T) {
	app := buildSalesApp(&stubRunner{product: &entity.Product{
		ID:            "p1",
		Name:          "Café 500g",
		Price:         decimal.RequireFromString("19.99"),
		StockQuantity: 3,
	}})
	resp := postSale(t, app, bearerToken(t), `{"items":[{"product_id":"p1","quantity":5}]}`)
	defer resp.Body.Close()

	require.Equal(t, http.StatusConflict, resp.StatusCode)

	var body struct {
		Code      string `json:"code"`
		ProductID string `json:"product_id"`
		Available int64  `json:"available"`
		Requested int64  `json:"requested"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "INSUFFICIENT_STOCK", body.Code)
	assert.Equal(t, "p1", body.ProductID)
	assert.Equal(t, int64(3), body.Available)
	assert.Equal(t, int64(5), body.Requested)
}

func TestPostSale_TimeoutDeTransaccionRetorna408(t *testing.T) {
	app := buildSalesApp(&stubRunner{err: context.DeadlineExceeded})
	resp := postSale(t, app, bearerToken(t), `{"items":[{"product_id":"p1","quantity":1}]}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusRequestTimeout, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "TX_TIMEOUT", body["code"])
}

func TestPostSale_ErrorDePersistenciaRetorna500Generico(t *testing.T) {
	app := buildSalesApp(&stubRunner{err: assert.AnError})
	resp := postSale(t, app, bearerToken(t), `{"items":[{"product_id":"p1","quantity":1}]}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "INTERNAL", body["code"])
	assert.NotContains(t, body["message"], "assert.AnError",
		"los errores de almacenamiento no deben filtrarse al cliente")
}

// ──────────────────────────────────────────────────────────────────────────────
// JWT pkg — generate/parse
// ──────────────────────────────────────────────────────────────────────────────

func TestJWT_GenerateAndParse(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testIssuer, testExpMin)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	userID, err := pkgjwt.Parse(testJWTSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, testUserID, userID)
}

func TestJWT_TokenExpiradoRetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testIssuer, -1)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testJWTSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestJWT_SecretIncorrectoRetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testIssuer, testExpMin)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err, "secret incorrecto debe invalidar el token")
}
