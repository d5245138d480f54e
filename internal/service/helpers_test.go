package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/RehanShaikh007/TextileERP-sub000/internal/model"
	"github.com/RehanShaikh007/TextileERP-sub000/internal/notification"
	"github.com/RehanShaikh007/TextileERP-sub000/internal/repository/memory"
	"github.com/RehanShaikh007/TextileERP-sub000/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type countingSender struct {
	mu    sync.Mutex
	count int
}

func (s *countingSender) Send(context.Context, string, string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.count++
	return "SM1", nil
}

func (s *countingSender) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count
}

type env struct {
	store      *memory.Store
	sender     *countingSender
	dispatcher *notification.Dispatcher

	products      service.ProductService
	customers     service.CustomerService
	orders        service.OrderService
	stock         service.StockService
	returns       service.ReturnService
	business      service.BusinessService
	notifications service.NotificationService
	dashboard     service.DashboardService
}

func newEnv(t *testing.T) *env {
	t.Helper()
	store := memory.NewStore()
	sender := &countingSender{}
	dispatcher := notification.NewDispatcher(sender, store.Notifications(), nil, time.Second)
	tx := store.TxManager()

	return &env{
		store:         store,
		sender:        sender,
		dispatcher:    dispatcher,
		products:      service.NewProductService(store.Products(), store.Orders(), store.StockMovements(), store.Audits(), tx, dispatcher),
		customers:     service.NewCustomerService(store.Customers(), store.Audits(), tx, dispatcher),
		orders:        service.NewOrderService(store.Orders(), store.Products(), store.Customers(), store.Returns(), store.StockMovements(), store.Audits(), tx, dispatcher),
		stock:         service.NewStockService(store.Stocks(), store.Audits(), tx, dispatcher),
		returns:       service.NewReturnService(store.Returns(), store.Orders(), store.Products(), store.StockMovements(), store.Audits(), tx, dispatcher),
		business:      service.NewBusinessService(store.Business(), store.Audits(), tx),
		notifications: service.NewNotificationService(store.Notifications(), store.Business(), store.Audits(), tx, dispatcher),
		dashboard:     service.NewDashboardService(store.Dashboard()),
	}
}

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func dp(v string) *decimal.Decimal {
	x := d(v)
	return &x
}

// seedProduct creates a product with the given color stocks at price 100
func (e *env) seedProduct(t *testing.T, name string, stocks map[string]string) service.ProductResponse {
	t.Helper()
	req := service.ProductRequest{Name: name, Category: "Cotton", Unit: model.UnitMeters}
	for color, qty := range stocks {
		req.Variants = append(req.Variants, service.ProductVariantRequest{
			Color:          color,
			PricePerMeters: d("100"),
			StockInMeters:  d(qty),
		})
	}
	p, err := e.products.CreateProduct(context.Background(), "tester", req)
	require.NoError(t, err)
	return p
}

func (e *env) variantStock(t *testing.T, productID, color string) decimal.Decimal {
	t.Helper()
	p, err := e.products.GetProduct(context.Background(), productID)
	require.NoError(t, err)
	for _, v := range p.Variants {
		if v.Color == color {
			return v.StockInMeters
		}
	}
	t.Fatalf("color %s not found", color)
	return decimal.Zero
}
