package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tokopos/internal/config"
	"tokopos/internal/dto"
	"tokopos/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() { gin.SetMode(gin.TestMode) }

// ── Helpers ──────────────────────────────────────────────────────────────────

func testConfig() *config.Config {
	return &config.Config{
		Port:               8000,
		Env:                "test",
		WorkerPoolSize:     1,
		AllowNegativeStock: true,
		PaymentMaxRetries:  3,
		StoreName:          "Toko Test",
		ProductCacheTTL:    time.Minute,
		RateLimitRPS:       1000,
		RateLimitBurst:     1000,
	}
}

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	cfg := testConfig()
	db := testutil.NewDB(t)
	return New(cfg, db, nil, NewServices(cfg, db, nil))
}

func do(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func createProduct(t *testing.T, r *gin.Engine, name string, stock int) dto.ProductResponse {
	t.Helper()
	w := do(t, r, http.MethodPost, "/v1/products", map[string]any{
		"name": name, "price": "10000", "unit": "pcs", "stock_quantity": stock, "min_stock_threshold": 10,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[dto.ProductResponse](t, w)
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestHealth(t *testing.T) {
	r := newTestEngine(t)
	w := do(t, r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true,"db":"connected","redis":"disabled"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestSaleFlow(t *testing.T) {
	r := newTestEngine(t)
	p := createProduct(t, r, "Gas Canister", 50)

	w := do(t, r, http.MethodPost, "/v1/sales", map[string]any{
		"items":          []map[string]any{{"product_id": p.ID, "quantity": 50, "unit_price": 10}},
		"payment_method": "cash",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	sale := decode[dto.SaleResponse](t, w)
	assert.True(t, decimal.NewFromInt(500).Equal(sale.FinalAmount), sale.FinalAmount.String())

	w = do(t, r, http.MethodPost, "/v1/sales", map[string]any{
		"items":          []map[string]any{{"product_id": p.ID, "quantity": 1, "unit_price": 10}},
		"payment_method": "cash",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(t, r, http.MethodGet, fmt.Sprintf("/v1/products/%d", p.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, -1, decode[dto.ProductResponse](t, w).StockQuantity)

	w = do(t, r, http.MethodGet, fmt.Sprintf("/v1/inventory/movements?product_id=%d&kind=out", p.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(2), decode[dto.StockMovementListResponse](t, w).Total)

	w = do(t, r, http.MethodGet, fmt.Sprintf("/v1/sales/%d/receipt", sale.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))

	w = do(t, r, http.MethodGet, "/v1/inventory/reconcile", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[dto.ReconcileResponse](t, w).Consistent)
}

func TestSaleErrors(t *testing.T) {
	r := newTestEngine(t)
	p := createProduct(t, r, "Matches", 5)

	cases := []struct {
		name string
		body map[string]any
		code int
	}{
		{"empty cart", map[string]any{"items": []any{}, "payment_method": "cash"}, http.StatusUnprocessableEntity},
		{"bad payment method", map[string]any{
			"items": []map[string]any{{"product_id": p.ID, "quantity": 1, "unit_price": 1}}, "payment_method": "barter",
		}, http.StatusUnprocessableEntity},
		{"discount over total", map[string]any{
			"items":           []map[string]any{{"product_id": p.ID, "quantity": 1, "unit_price": 1000}},
			"discount_amount": 1001, "payment_method": "cash",
		}, http.StatusUnprocessableEntity},
		{"unknown product", map[string]any{
			"items": []map[string]any{{"product_id": 9999, "quantity": 1, "unit_price": 1}}, "payment_method": "cash",
		}, http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := do(t, r, http.MethodPost, "/v1/sales", tc.body)
			assert.Equal(t, tc.code, w.Code, w.Body.String())
		})
	}

	w := do(t, r, http.MethodGet, fmt.Sprintf("/v1/products/%d", p.ID), nil)
	assert.Equal(t, 5, decode[dto.ProductResponse](t, w).StockQuantity)
}

func TestAdjustmentEndpoint(t *testing.T) {
	r := newTestEngine(t)
	p := createProduct(t, r, "Candles", 8)

	w := do(t, r, http.MethodPost, "/v1/inventory/adjustments", map[string]any{"product_id": p.ID, "new_quantity": 0})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 0, decode[dto.ProductResponse](t, w).StockQuantity)

	w = do(t, r, http.MethodPost, "/v1/inventory/adjustments", map[string]any{"product_id": p.ID})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = do(t, r, http.MethodPost, "/v1/inventory/adjustments", map[string]any{"product_id": 4242, "new_quantity": 1})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, r, http.MethodGet, "/v1/products/low-stock", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Candles")
}

func TestDebtCreditFlow(t *testing.T) {
	r := newTestEngine(t)

	w := do(t, r, http.MethodPost, "/v1/customers", map[string]any{"name": "Bu Ani"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	customer := decode[dto.CustomerResponse](t, w)

	w = do(t, r, http.MethodPost, "/v1/debt-credits", map[string]any{
		"customer_id": customer.ID, "type": "debt", "amount": "1000", "due_date": "2026-10-20",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	record := decode[dto.DebtCreditResponse](t, w)
	require.NotNil(t, record.DueDate)
	assert.Contains(t, *record.DueDate, "2026-10-20")

	w = do(t, r, http.MethodPost, "/v1/debt-credits", map[string]any{
		"customer_id": customer.ID, "type": "debt", "amount": "0.004",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	payPath := fmt.Sprintf("/v1/debt-credits/%d/payments", record.ID)

	w = do(t, r, http.MethodPost, payPath, map[string]any{"payment_amount": "999.999"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "payment_amount")

	w = do(t, r, http.MethodPost, payPath, map[string]any{"payment_amount": 1200})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(t, r, http.MethodPost, payPath, map[string]any{"payment_amount": 300})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	remaining := decode[dto.DebtCreditResponse](t, w).RemainingAmount
	assert.True(t, decimal.NewFromInt(700).Equal(remaining), remaining.String())

	w = do(t, r, http.MethodPost, payPath, map[string]any{"payment_amount": 700, "notes": "cash at till"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[dto.DebtCreditResponse](t, w).IsPaid)

	w = do(t, r, http.MethodPost, payPath, map[string]any{"payment_amount": 1})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(t, r, http.MethodPost, payPath, map[string]any{"payment_amount": 0})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = do(t, r, http.MethodPost, "/v1/debt-credits/999/payments", map[string]any{"payment_amount": 1})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, r, http.MethodGet, "/v1/debt-credits?status=paid", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[struct {
		Data []dto.DebtCreditResponse `json:"data"`
	}](t, w)
	require.Len(t, list.Data, 1)

	w = do(t, r, http.MethodGet, "/v1/debt-credits?status=bogus", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestExpenseEndpoints(t *testing.T) {
	r := newTestEngine(t)

	w := do(t, r, http.MethodPost, "/v1/expenses", map[string]any{"type": "salary", "amount": 2000000})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = do(t, r, http.MethodPost, "/v1/expenses", map[string]any{"type": "gifts", "amount": 1})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = do(t, r, http.MethodGet, "/v1/expenses?type=salary", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"salary"`)
}
