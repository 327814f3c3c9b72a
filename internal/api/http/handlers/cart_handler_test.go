package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/cafe-pos/internal/api/http"
	"github.com/spec-kit/cafe-pos/internal/api/http/handlers"
	"github.com/spec-kit/cafe-pos/internal/auth"
	"github.com/spec-kit/cafe-pos/internal/backend"
	"github.com/spec-kit/cafe-pos/internal/backend/backendtest"
	"github.com/spec-kit/cafe-pos/internal/cart"
	"github.com/spec-kit/cafe-pos/internal/config"
	"github.com/spec-kit/cafe-pos/internal/domain"
	"github.com/spec-kit/cafe-pos/internal/events"
	"github.com/spec-kit/cafe-pos/internal/observability"
	"github.com/spec-kit/cafe-pos/internal/service"
	"github.com/spec-kit/cafe-pos/internal/session"
)

type terminalFixture struct {
	app  *fiber.App
	fake *backendtest.Server
}

func newTerminal(t *testing.T) *terminalFixture {
	t.Helper()

	fake := backendtest.New()
	t.Cleanup(fake.Close)
	fake.AddAccount("lan", "s3cret", domain.Identity{ID: "NV001", DisplayName: "Lan", Username: "lan"})
	fake.SeedCategories([]backendtest.CategoryFixture{{ID: "L01", Name: "Cà phê"}})
	fake.SeedMenu([]backendtest.MenuItemFixture{
		{ID: "M001", Name: "Cà phê đen", Price: 25000, Unit: "ly", CategoryID: "L01", CategoryName: "Cà phê"},
		{ID: "M002", Name: "Trà đào", Price: 30000, Unit: "ly", CategoryID: "L01", CategoryName: "Cà phê"},
	})

	logger := zap.NewNop()
	tokens := session.NewMemoryTokenStore()
	client := backend.NewClient(config.BackendConfig{BaseURL: fake.URL}, tokens, logger)
	manager := session.NewManager(client, tokens, logger)
	manager.Initialize(context.Background())

	dispatcher := events.NewInMemoryDispatcher()
	catalogService := service.NewCatalogService(client, 0)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, observability.NewMetrics(), 0)
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:  handlers.NewHealthHandler("test", "test", nil, client),
		Session: handlers.NewSessionHandler(manager, dispatcher),
		Catalog: handlers.NewCatalogHandler(catalogService),
		Cart:    handlers.NewCartHandler(cart.New(), catalogService, dispatcher),
		Admin:   handlers.NewAdminHandler(client),
		Guard:   auth.NewGuard(manager),
	})

	return &terminalFixture{app: app, fake: fake}
}

func (f *terminalFixture) do(t *testing.T, method, path string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := f.app.Test(req)
	require.NoError(t, err)

	decoded := map[string]any{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

func (f *terminalFixture) login(t *testing.T) {
	t.Helper()
	resp, _ := f.do(t, http.MethodPost, "/session/login", map[string]string{
		"username": "lan", "password": "s3cret",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func cartData(t *testing.T, body map[string]any) map[string]any {
	t.Helper()
	data, ok := body["data"].(map[string]any)
	require.True(t, ok, "expected a data envelope, got %v", body)
	return data
}

func TestLoginFailureEnvelope(t *testing.T) {
	f := newTerminal(t)

	resp, body := f.do(t, http.MethodPost, "/session/login", map[string]string{
		"username": "lan", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	errBody, ok := body["error"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "LOGIN_FAILED", errBody["code"])
	assert.Equal(t, "Tài khoản hoặc mật khẩu không đúng", errBody["message"])
}

func TestCartRequiresSession(t *testing.T) {
	f := newTerminal(t)

	resp, _ := f.do(t, http.MethodGet, "/cart", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestOrderFlow(t *testing.T) {
	f := newTerminal(t)
	f.login(t)

	// Two espressos and one peach tea.
	resp, _ := f.do(t, http.MethodPost, "/cart/items", map[string]string{"product_id": "M001"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp, _ = f.do(t, http.MethodPost, "/cart/items", map[string]string{"product_id": "M001"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp, body := f.do(t, http.MethodPost, "/cart/items", map[string]string{"product_id": "M002"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	data := cartData(t, body)
	lines := data["lines"].([]any)
	require.Len(t, lines, 2)
	assert.Equal(t, "80000", data["total"])

	resp, body = f.do(t, http.MethodPut, "/cart/customer", map[string]string{
		"customer_name": "Anh Minh", "table": "Bàn 4",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Anh Minh", cartData(t, body)["customer_name"])

	resp, body = f.do(t, http.MethodPost, "/cart/checkout", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	receipt := cartData(t, body)
	assert.NotEmpty(t, receipt["order_id"])
	assert.Equal(t, "Anh Minh", receipt["customer_name"])
	assert.Equal(t, "Bàn 4", receipt["table"])
	assert.Equal(t, "80000", receipt["total"])

	// Checkout resets the sale.
	resp, body = f.do(t, http.MethodGet, "/cart", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data = cartData(t, body)
	assert.Empty(t, data["lines"])
	assert.Equal(t, "0", data["total"])
	assert.Empty(t, data["customer_name"])
}

func TestAddUnknownProduct(t *testing.T) {
	f := newTerminal(t)
	f.login(t)

	resp, _ := f.do(t, http.MethodPost, "/cart/items", map[string]string{"product_id": "M999"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSetQuantityToZeroRemovesLine(t *testing.T) {
	f := newTerminal(t)
	f.login(t)

	resp, _ := f.do(t, http.MethodPost, "/cart/items", map[string]string{"product_id": "M001"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := f.do(t, http.MethodPut, "/cart/items/M001", map[string]int{"quantity": 0})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, cartData(t, body)["lines"])
}

func TestCheckoutEmptyCartRejected(t *testing.T) {
	f := newTerminal(t)
	f.login(t)

	resp, body := f.do(t, http.MethodPost, "/cart/checkout", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	errBody, ok := body["error"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "VALIDATION_FAILED", errBody["code"])
}

func TestCatalogMenuFilter(t *testing.T) {
	f := newTerminal(t)
	f.login(t)

	resp, body := f.do(t, http.MethodGet, "/catalog/menu?category=L01", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["data"].([]any), 2)

	resp, body = f.do(t, http.MethodGet, "/catalog/menu?category=L99", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, body["data"])
}

func TestLogoutClosesSession(t *testing.T) {
	f := newTerminal(t)
	f.login(t)

	resp, _ := f.do(t, http.MethodPost, "/session/logout", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = f.do(t, http.MethodGet, "/cart", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, body := f.do(t, http.MethodGet, "/session", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, false, cartData(t, body)["authenticated"])
}
