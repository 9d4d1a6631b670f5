package httpapi_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nikolayk812/storefront/internal/httpapi"
	"github.com/nikolayk812/storefront/internal/memcommerce"
	"github.com/nikolayk812/storefront/internal/repository"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"
)

const (
	redSmall   = "gid://memcommerce/ProductVariant/11"
	redMedium  = "gid://memcommerce/ProductVariant/12"
	blueSmall  = "gid://memcommerce/ProductVariant/14"
	blueLarge  = "gid://memcommerce/ProductVariant/16"
	enamelMug  = "gid://memcommerce/ProductVariant/21"
	cookieName = "sid"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	goleak.VerifyTestMain(m)
}

type client struct {
	t       *testing.T
	router  http.Handler
	cookies []*http.Cookie
}

func newClient(t *testing.T) *client {
	t.Helper()

	handler := httpapi.NewHandler(
		memcommerce.New(memcommerce.DemoCatalog()...),
		repository.NewMemoryCartSession(time.Hour),
		httpapi.WithSessionCookie(cookieName, time.Hour, false),
	)

	reg := prometheus.NewRegistry()
	metrics, err := httpapi.NewHTTPMetrics(reg)
	require.NoError(t, err)

	router := httpapi.NewRouter(handler, httpapi.RouterConfig{
		Logger:   zaptest.NewLogger(t),
		Metrics:  metrics,
		Gatherer: reg,
	})

	return &client{t: t, router: router}
}

func (c *client) do(method, target string, body any) *httptest.ResponseRecorder {
	c.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, cookie := range c.cookies {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)

	if cookies := w.Result().Cookies(); len(cookies) > 0 {
		c.cookies = cookies
	}
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestHealth(t *testing.T) {
	c := newClient(t)

	w := c.do(http.MethodGet, "/api/health", nil)
	require.Equal(t, http.StatusOK, w.Code)

	health := decode[httpapi.HealthResponse](t, w)
	assert.True(t, health.OK)
	assert.Equal(t, "memcommerce", health.Shop)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestListProducts(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		wantStatus int
		wantCount  int
	}{
		{name: "default limit", target: "/api/products", wantStatus: http.StatusOK, wantCount: 2},
		{name: "limit one", target: "/api/products?limit=1", wantStatus: http.StatusOK, wantCount: 1},
		{name: "limit not a number", target: "/api/products?limit=abc", wantStatus: http.StatusBadRequest},
		{name: "limit zero", target: "/api/products?limit=0", wantStatus: http.StatusBadRequest},
		{name: "limit too large", target: "/api/products?limit=101", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newClient(t)

			w := c.do(http.MethodGet, tt.target, nil)
			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())

			if tt.wantStatus != http.StatusOK {
				assert.Equal(t, "invalid_request", decode[httpapi.ErrorResponse](t, w).Error.Code)
				return
			}
			assert.Len(t, decode[[]httpapi.ProductCardDTO](t, w), tt.wantCount)
		})
	}
}

func TestGetProduct(t *testing.T) {
	c := newClient(t)

	w := c.do(http.MethodGet, "/api/products/classic-tee", nil)
	require.Equal(t, http.StatusOK, w.Code)

	product := decode[httpapi.ProductDTO](t, w)
	assert.Equal(t, "Classic Tee", product.Title)
	assert.Len(t, product.Variants, 6)

	w = c.do(http.MethodGet, "/api/products/missing", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "not_found", decode[httpapi.ErrorResponse](t, w).Error.Code)
}

func TestProductView(t *testing.T) {
	tests := []struct {
		name          string
		query         string
		wantState     string
		wantVariantID string
		wantBadgeText string
		wantSelection map[string]string
	}{
		{
			name:          "default selection",
			wantState:     "default",
			wantVariantID: redSmall,
			wantBadgeText: "In stock",
			wantSelection: map[string]string{"Color": "Red", "Size": "S"},
		},
		{
			name:          "restored from option values",
			query:         "Color=Blue&Size=S",
			wantState:     "forced",
			wantVariantID: blueSmall,
			wantBadgeText: "Only 1 left",
			wantSelection: map[string]string{"Color": "Blue", "Size": "S"},
		},
		{
			name:          "restored from variant id",
			query:         "variant=" + redMedium,
			wantState:     "forced",
			wantVariantID: redMedium,
			wantBadgeText: "In stock",
			wantSelection: map[string]string{"Color": "Red", "Size": "M"},
		},
		{
			name:          "click on an available value",
			query:         "option=Size&value=M",
			wantState:     "user-adjusted",
			wantVariantID: redMedium,
			wantBadgeText: "In stock",
			wantSelection: map[string]string{"Color": "Red", "Size": "M"},
		},
		{
			name:          "click on a value unavailable under the selection is ignored",
			query:         "option=Size&value=L",
			wantState:     "default",
			wantVariantID: redSmall,
			wantBadgeText: "In stock",
			wantSelection: map[string]string{"Color": "Red", "Size": "S"},
		},
		{
			name:          "click applies after the restored link",
			query:         "Color=Blue&Size=M&option=Size&value=L",
			wantState:     "user-adjusted",
			wantVariantID: blueLarge,
			wantBadgeText: "In stock",
			wantSelection: map[string]string{"Color": "Blue", "Size": "L"},
		},
		{
			name:          "thumbnail click forces its variant",
			query:         "image=https://cdn.example.com/classic-tee-blue.jpg",
			wantState:     "forced",
			wantVariantID: blueSmall,
			wantBadgeText: "Only 1 left",
			wantSelection: map[string]string{"Color": "Blue", "Size": "S"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newClient(t)

			w := c.do(http.MethodGet, "/api/products/classic-tee/view?"+tt.query, nil)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())

			view := decode[httpapi.ProductViewDTO](t, w)
			assert.Equal(t, tt.wantState, view.State)
			assert.Equal(t, tt.wantVariantID, view.VariantID)
			assert.Equal(t, tt.wantVariantID, view.MerchandiseID)
			assert.Equal(t, tt.wantBadgeText, view.BadgeText)
			assert.Equal(t, tt.wantSelection, view.Selection)
			assert.True(t, view.CanAddToCart)
			assert.Empty(t, view.Message)
			assert.Contains(t, view.Link, "variant=")
		})
	}
}

func TestCartLifecycle(t *testing.T) {
	c := newClient(t)

	w := c.do(http.MethodPost, "/api/cart/add", map[string]any{"merchandiseId": redMedium, "quantity": 2})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	summary := decode[httpapi.CartSummaryDTO](t, w)
	assert.NotEmpty(t, summary.ID)
	assert.Equal(t, 2, summary.TotalQuantity)
	require.NotEmpty(t, c.cookies)
	assert.Equal(t, cookieName, c.cookies[0].Name)

	w = c.do(http.MethodPost, "/api/cart/add", map[string]any{"merchandiseId": enamelMug})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	second := decode[httpapi.CartSummaryDTO](t, w)
	assert.Equal(t, summary.ID, second.ID)
	assert.Equal(t, 3, second.TotalQuantity)

	w = c.do(http.MethodGet, "/api/cart", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	cart := decode[httpapi.CartDTO](t, w)
	require.Len(t, cart.Lines, 2)
	assert.Equal(t, 3, cart.TotalQuantity)
	assert.Equal(t, "51.80 USD", cart.Cost.Subtotal.Formatted)

	w = c.do(http.MethodPost, "/api/cart/update", map[string]any{"lineId": cart.Lines[0].ID, "quantity": 5})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 6, decode[httpapi.CartDTO](t, w).TotalQuantity)

	w = c.do(http.MethodPost, "/api/cart/remove", map[string]any{
		"cartId":  summary.ID,
		"lineIds": []string{cart.Lines[1].ID},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	removed := decode[httpapi.CartDTO](t, w)
	assert.Len(t, removed.Lines, 1)
	assert.Equal(t, 5, removed.TotalQuantity)

	w = c.do(http.MethodPost, "/api/cart/clear", nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = c.do(http.MethodGet, "/api/cart", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = c.do(http.MethodGet, "/api/cart?id="+summary.ID, nil)
	require.Equal(t, http.StatusOK, w.Code, "the remote cart outlives the session")
}

func TestCartErrors(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		target     string
		body       any
		wantStatus int
		wantCode   string
	}{
		{
			name:       "add without merchandise",
			method:     http.MethodPost,
			target:     "/api/cart/add",
			body:       map[string]any{"quantity": 1},
			wantStatus: http.StatusBadRequest,
			wantCode:   "invalid_request",
		},
		{
			name:       "add zero quantity",
			method:     http.MethodPost,
			target:     "/api/cart/add",
			body:       map[string]any{"merchandiseId": redSmall, "quantity": 0},
			wantStatus: http.StatusBadRequest,
			wantCode:   "invalid_request",
		},
		{
			name:       "add unknown merchandise",
			method:     http.MethodPost,
			target:     "/api/cart/add",
			body:       map[string]any{"merchandiseId": "gid://memcommerce/ProductVariant/404"},
			wantStatus: http.StatusBadGateway,
			wantCode:   "remote_failure",
		},
		{
			name:       "update without a cart",
			method:     http.MethodPost,
			target:     "/api/cart/update",
			body:       map[string]any{"lineId": "line-1", "quantity": 1},
			wantStatus: http.StatusBadRequest,
			wantCode:   "invalid_request",
		},
		{
			name:       "remove with no lines",
			method:     http.MethodPost,
			target:     "/api/cart/remove",
			body:       map[string]any{"cartId": "gid://memcommerce/Cart/1", "lineIds": []string{}},
			wantStatus: http.StatusBadRequest,
			wantCode:   "invalid_request",
		},
		{
			name:       "get without a cart",
			method:     http.MethodGet,
			target:     "/api/cart",
			wantStatus: http.StatusBadRequest,
			wantCode:   "invalid_request",
		},
		{
			name:       "get unknown cart",
			method:     http.MethodGet,
			target:     "/api/cart?id=gid://memcommerce/Cart/404",
			wantStatus: http.StatusNotFound,
			wantCode:   "not_found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newClient(t)

			w := c.do(tt.method, tt.target, tt.body)
			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			assert.Equal(t, tt.wantCode, decode[httpapi.ErrorResponse](t, w).Error.Code)
		})
	}
}

func TestSessionCookieIsReused(t *testing.T) {
	c := newClient(t)

	c.do(http.MethodGet, "/api/cart", nil)
	require.Len(t, c.cookies, 1)
	first := c.cookies[0].Value

	w := c.do(http.MethodGet, "/api/cart", nil)
	assert.Empty(t, w.Result().Cookies())
	assert.Equal(t, first, c.cookies[0].Value)
}

func TestMetricsEndpoint(t *testing.T) {
	c := newClient(t)

	c.do(http.MethodGet, "/api/health", nil)

	w := c.do(http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.True(t, strings.Contains(body, `storefront_http_requests_total{method="GET",route="/api/health",status="200"} 1`), body)
}
