package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/RehanShaikh007/TextileERP-sub000/internal/config"
	"github.com/RehanShaikh007/TextileERP-sub000/internal/handler"
	"github.com/RehanShaikh007/TextileERP-sub000/internal/notification"
	"github.com/RehanShaikh007/TextileERP-sub000/internal/repository/memory"
	"github.com/RehanShaikh007/TextileERP-sub000/internal/server"
	"github.com/RehanShaikh007/TextileERP-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopSender struct{}

func (nopSender) Send(context.Context, string, string) (string, error) { return "SM1", nil }

func newTestRouter(t *testing.T, override ...server.RouteRegistrar) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memory.NewStore()
	tx := store.TxManager()
	dispatcher := notification.NewDispatcher(nopSender{}, store.Notifications(), nil, time.Second)

	products := service.NewProductService(store.Products(), store.Orders(), store.StockMovements(), store.Audits(), tx, dispatcher)
	customers := service.NewCustomerService(store.Customers(), store.Audits(), tx, dispatcher)
	orders := service.NewOrderService(store.Orders(), store.Products(), store.Customers(), store.Returns(), store.StockMovements(), store.Audits(), tx, dispatcher)
	dashboard := service.NewDashboardService(store.Dashboard())

	handlers := []server.RouteRegistrar{
		handler.NewProductHandler(products),
		handler.NewCustomerHandler(customers, orders),
		handler.NewStockHandler(service.NewStockService(store.Stocks(), store.Audits(), tx, dispatcher)),
		handler.NewReturnHandler(service.NewReturnService(store.Returns(), store.Orders(), store.Products(), store.StockMovements(), store.Audits(), tx, dispatcher)),
		handler.NewBusinessHandler(service.NewBusinessService(store.Business(), store.Audits(), tx)),
		handler.NewNotificationHandler(service.NewNotificationService(store.Notifications(), store.Business(), store.Audits(), tx, dispatcher)),
		handler.NewAgentHandler(service.NewAgentService(dashboard)),
		handler.NewDashboardHandler(dashboard),
		handler.NewAuditHandler(service.NewAuditService(store.Audits())),
		handler.NewUserHandler(service.NewUserService(store.Users())),
	}
	if len(override) > 0 {
		handlers = append(handlers, override...)
	} else {
		handlers = append(handlers, handler.NewOrderHandler(orders))
	}

	router, err := server.NewRouter(&config.Config{CORS: "*", Shutdown: time.Second}, nil, handlers...)
	require.NoError(t, err)
	return router
}

type envelope map[string]json.RawMessage

func do(t *testing.T, r http.Handler, method, path string, body interface{}) (int, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		case json.RawMessage:
			buf.Write(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

func field(t *testing.T, raw json.RawMessage, path ...string) interface{} {
	t.Helper()
	var v interface{}
	require.NoError(t, json.Unmarshal(raw, &v))
	for _, p := range path {
		m, ok := v.(map[string]interface{})
		require.True(t, ok, "not an object at %s", p)
		v = m[p]
	}
	return v
}

func createProduct(t *testing.T, r http.Handler, stock string) string {
	t.Helper()
	code, env := do(t, r, http.MethodPost, "/api/v1/products", map[string]interface{}{
		"name":     "Cotton Poplin",
		"category": "Cotton",
		"variants": []map[string]string{{"color": "Red", "pricePerMeters": "120", "stockInMeters": stock}},
	})
	require.Equal(t, http.StatusCreated, code)
	return field(t, env["product"], "id").(string)
}

func redStock(t *testing.T, r http.Handler, productID string) string {
	t.Helper()
	code, env := do(t, r, http.MethodGet, "/api/v1/products/"+productID, nil)
	require.Equal(t, http.StatusOK, code)
	variants := field(t, env["product"], "variants").([]interface{})
	return variants[0].(map[string]interface{})["stockInMeters"].(string)
}

func TestOrderPutRoundTripLeavesStock(t *testing.T) {
	r := newTestRouter(t)
	productID := createProduct(t, r, "100")

	code, env := do(t, r, http.MethodPost, "/api/v1/order", map[string]interface{}{
		"customer":   "Ravi Traders",
		"orderItems": []map[string]string{{"productId": productID, "color": "red", "quantity": "30"}},
	})
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, true, field(t, env["success"]))
	assert.Equal(t, "ORD-001", field(t, env["order"], "displayId"))
	assert.Equal(t, "3600", field(t, env["order"], "totalAmount"))
	orderID := field(t, env["order"], "id").(string)
	assert.Equal(t, "70", redStock(t, r, productID))

	code, env = do(t, r, http.MethodGet, "/api/v1/order/"+orderID, nil)
	require.Equal(t, http.StatusOK, code)

	code, env = do(t, r, http.MethodPut, "/api/v1/order/"+orderID, env["order"])
	require.Equal(t, http.StatusOK, code, string(env["message"]))
	assert.Equal(t, "70", redStock(t, r, productID))

	code, env = do(t, r, http.MethodGet, "/api/v1/products/"+productID+"/movements", nil)
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 1, field(t, env["pagination"], "total"))
}

func TestErrorMapping(t *testing.T) {
	r := newTestRouter(t)
	productID := createProduct(t, r, "10")

	tests := []struct {
		name   string
		method string
		path   string
		body   interface{}
		status int
	}{
		{"unknown id", http.MethodGet, "/api/v1/order/00000000-0000-0000-0000-000000000001", nil, http.StatusNotFound},
		{"malformed id", http.MethodGet, "/api/v1/stock/not-a-uuid", nil, http.StatusBadRequest},
		{"malformed json", http.MethodPost, "/api/v1/order", "{", http.StatusBadRequest},
		{"invalid unit", http.MethodPost, "/api/v1/products", map[string]interface{}{
			"name": "Silk", "unit": "yards", "variants": []map[string]string{{"color": "Gold"}},
		}, http.StatusBadRequest},
		{"invalid phone", http.MethodPost, "/api/v1/customer", map[string]string{
			"name": "Meena", "type": "Retail", "phone": "call me",
		}, http.StatusBadRequest},
		{"invalid customer type", http.MethodPost, "/api/v1/customer", map[string]string{
			"name": "Meena", "type": "Online",
		}, http.StatusBadRequest},
		{"insufficient stock", http.MethodPost, "/api/v1/order", map[string]interface{}{
			"customer":   "Ravi Traders",
			"orderItems": []map[string]string{{"productId": productID, "color": "Red", "quantity": "11"}},
		}, http.StatusConflict},
		{"no test recipients", http.MethodPost, "/api/v1/whatsapp-notifications/test", nil, http.StatusBadRequest},
		{"bad dashboard date", http.MethodGet, "/api/v1/dashboard?start_date=yesterday", nil, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, env := do(t, r, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, code, string(env["message"]))
			assert.Equal(t, false, field(t, env["success"]))
		})
	}
}

type failingOrders struct{ service.OrderService }

func (failingOrders) GetOrder(context.Context, string) (service.OrderResponse, error) {
	return service.OrderResponse{}, errors.New("dial tcp 10.0.0.5:5432: connection refused")
}

func TestInternalErrorsAreNotEchoed(t *testing.T) {
	r := newTestRouter(t, handler.NewOrderHandler(failingOrders{}))

	code, env := do(t, r, http.MethodGet, "/api/v1/order/00000000-0000-0000-0000-000000000001", nil)
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "Internal server error", field(t, env["message"]))
	assert.NotContains(t, string(env["message"]), "10.0.0.5")
}

func TestBusinessSingleton(t *testing.T) {
	r := newTestRouter(t)

	code, _ := do(t, r, http.MethodGet, "/api/v1/business", nil)
	assert.Equal(t, http.StatusNotFound, code)

	body := map[string]string{"businessName": "Shree Textiles", "pincode": "395003"}
	code, env := do(t, r, http.MethodPost, "/api/v1/business", body)
	require.Equal(t, http.StatusCreated, code, string(env["message"]))
	assert.Equal(t, "Shree Textiles", field(t, env["business"], "businessName"))

	code, _ = do(t, r, http.MethodPost, "/api/v1/business", body)
	assert.Equal(t, http.StatusConflict, code)
}

func TestListEnvelope(t *testing.T) {
	r := newTestRouter(t)
	for _, name := range []string{"Asha", "Bharat", "Chetan"} {
		code, _ := do(t, r, http.MethodPost, "/api/v1/customer", map[string]string{
			"name": name, "type": "Wholesale", "phone": "+919800000001",
		})
		require.Equal(t, http.StatusCreated, code)
	}

	code, env := do(t, r, http.MethodGet, "/api/v1/customer?page=2&limit=2", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, field(t, env["customers"]).([]interface{}), 1)
	assert.EqualValues(t, 2, field(t, env["pagination"], "page"))
	assert.EqualValues(t, 2, field(t, env["pagination"], "limit"))
	assert.EqualValues(t, 3, field(t, env["pagination"], "total"))

	code, env = do(t, r, http.MethodGet, "/api/v1/audit-logs", nil)
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 3, field(t, env["pagination"], "total"))
}

func TestReturnFlow(t *testing.T) {
	r := newTestRouter(t)
	productID := createProduct(t, r, "100")

	_, env := do(t, r, http.MethodPost, "/api/v1/order", map[string]interface{}{
		"customer":   "Ravi Traders",
		"orderItems": []map[string]string{{"productId": productID, "color": "Red", "quantity": "20"}},
	})
	orderID := field(t, env["order"], "id").(string)

	code, env := do(t, r, http.MethodPost, "/api/v1/returns", map[string]string{
		"orderId": orderID, "product": "cotton poplin", "color": "RED",
		"quantityInMeters": "5", "returnReason": "Damaged",
	})
	require.Equal(t, http.StatusCreated, code, string(env["message"]))
	assert.Equal(t, "RET-001", field(t, env["return"], "displayId"))
	assert.Equal(t, "600", field(t, env["return"], "refundAmount"))
	assert.Equal(t, "pending", field(t, env["return"], "status"))
	returnID := field(t, env["return"], "id").(string)

	code, env = do(t, r, http.MethodPut, "/api/v1/returns/"+returnID, map[string]bool{"isApprove": true})
	require.Equal(t, http.StatusOK, code, string(env["message"]))
	assert.Equal(t, "approved", field(t, env["return"], "status"))
	assert.Equal(t, "85", redStock(t, r, productID))

	code, _ = do(t, r, http.MethodPut, "/api/v1/returns/"+returnID, map[string]bool{"isRejected": true})
	assert.Equal(t, http.StatusConflict, code)
}

func TestUsersMeAndAgent(t *testing.T) {
	r := newTestRouter(t)

	code, env := do(t, r, http.MethodGet, "/api/v1/users/me", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "local-dev", field(t, env["user"], "externalId"))

	code, env = do(t, r, http.MethodPost, "/api/v1/agent/chat", map[string]string{"message": "how many customers?"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, []interface{}{"customer"}, field(t, env["agent"], "intents"))

	code, _ = do(t, r, http.MethodPost, "/api/v1/agent/chat", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestInfrastructureRoutes(t *testing.T) {
	r := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "textile_http_requests_total")
}

// roundTrip GETs path and PUTs the returned object back unchanged
func roundTrip(t *testing.T, r http.Handler, path, key string) (before, after json.RawMessage) {
	t.Helper()
	code, env := do(t, r, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, code)
	before = env[key]
	code, env = do(t, r, http.MethodPut, path, before)
	require.Equal(t, http.StatusOK, code, string(env["message"]))
	return before, env[key]
}

func TestProductPutRoundTrip(t *testing.T) {
	r := newTestRouter(t)
	productID := createProduct(t, r, "100")

	before, after := roundTrip(t, r, "/api/v1/products/"+productID, "product")
	assert.Equal(t, field(t, before, "variants"), field(t, after, "variants"))
	assert.Equal(t, "100", field(t, after, "totalStock"))

	code, env := do(t, r, http.MethodGet, "/api/v1/products/"+productID+"/movements", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, field(t, env["movements"]), "unchanged stock writes no movement")
}

func TestCustomerPutRoundTrip(t *testing.T) {
	r := newTestRouter(t)
	code, env := do(t, r, http.MethodPost, "/api/v1/customer", map[string]string{
		"name": "Shree Textiles", "type": "Wholesale", "phone": "+919800000001",
		"email": "accounts@shree.example", "city": "Surat", "creditLimit": "250000",
	})
	require.Equal(t, http.StatusCreated, code, string(env["message"]))
	customerID := field(t, env["customer"], "id").(string)

	before, after := roundTrip(t, r, "/api/v1/customer/"+customerID, "customer")
	for _, key := range []string{"id", "name", "type", "phone", "email", "city", "creditLimit", "address"} {
		assert.Equal(t, field(t, before, key), field(t, after, key), key)
	}
}

func TestStockPutRoundTrip(t *testing.T) {
	r := newTestRouter(t)
	code, env := do(t, r, http.MethodPost, "/api/v1/stock", map[string]interface{}{
		"stockType": "Gray Stock",
		"variants": []map[string]string{
			{"color": "Red", "quantity": "300"},
			{"color": "Blue", "quantity": "120"},
		},
		"stockDetails":   map[string]interface{}{"gray": map[string]string{"product": "Cotton Poplin", "factory": "Surat Mills"}},
		"additionalInfo": map[string]string{"batchNumber": "B-17"},
	})
	require.Equal(t, http.StatusCreated, code, string(env["message"]))
	stockID := field(t, env["stock"], "id").(string)

	before, after := roundTrip(t, r, "/api/v1/stock/"+stockID, "stock")
	assert.Equal(t, field(t, before, "variants"), field(t, after, "variants"), "variant ids survive")
	assert.Equal(t, field(t, before, "stockDetails"), field(t, after, "stockDetails"))
	assert.Equal(t, field(t, before, "status"), field(t, after, "status"))
}
