package service_test

import (
	"context"
	"testing"

	"github.com/RehanShaikh007/TextileERP-sub000/internal/model"
	"github.com/RehanShaikh007/TextileERP-sub000/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func orderReq(productID string, items ...service.OrderItemRequest) service.OrderRequest {
	for i := range items {
		items[i].ProductID = productID
	}
	return service.OrderRequest{Customer: "Ravi Traders", Items: items}
}

func TestCreateOrderDeductsStock(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	p := e.seedProduct(t, "Cotton Poplin", map[string]string{"Red": "500", "Blue": "300"})

	order, err := e.orders.CreateOrder(ctx, "tester", orderReq(p.ID.String(),
		service.OrderItemRequest{Color: "red", Quantity: d("10"), PricePerMeters: dp("150")},
		service.OrderItemRequest{Color: "Blue", Quantity: d("5")},
	))
	require.NoError(t, err)

	assert.Equal(t, model.OrderStatusPending, order.Status)
	assert.Equal(t, "ORD-001", order.Code)
	assert.True(t, d("2000").Equal(order.TotalAmount), "10×150 + 5×100")
	assert.Equal(t, "Red", order.Items[0].Color)
	assert.True(t, d("490").Equal(e.variantStock(t, p.ID.String(), "Red")))
	assert.True(t, d("295").Equal(e.variantStock(t, p.ID.String(), "Blue")))

	moves, total, err := e.products.ListMovements(ctx, p.ID.String(), service.Page{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	for _, m := range moves {
		assert.Equal(t, model.MovementOrderPlaced, m.Reason)
		assert.True(t, m.Delta.IsNegative())
	}
}

func TestCreateOrderInsufficientStockRollsBack(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	p := e.seedProduct(t, "Linen", map[string]string{"Red": "50", "Blue": "5"})

	_, err := e.orders.CreateOrder(ctx, "tester", orderReq(p.ID.String(),
		service.OrderItemRequest{Color: "Red", Quantity: d("10")},
		service.OrderItemRequest{Color: "Blue", Quantity: d("6")},
	))
	require.ErrorIs(t, err, service.ErrInsufficientStock)

	assert.True(t, d("50").Equal(e.variantStock(t, p.ID.String(), "Red")))
	list, total, err := e.orders.ListOrders(ctx, service.OrderQuery{})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, list)
}

func TestCreateOrderValidation(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	p := e.seedProduct(t, "Silk", map[string]string{"Gold": "100"})

	tests := []struct {
		name string
		req  service.OrderRequest
	}{
		{"unknown color", orderReq(p.ID.String(), service.OrderItemRequest{Color: "Green", Quantity: d("1")})},
		{"zero quantity", orderReq(p.ID.String(), service.OrderItemRequest{Color: "Gold", Quantity: d("0")})},
		{"missing customer", service.OrderRequest{Items: []service.OrderItemRequest{{ProductID: p.ID.String(), Color: "Gold", Quantity: d("1")}}}},
		{"unknown product", orderReq("00000000-0000-0000-0000-000000000001", service.OrderItemRequest{Color: "Gold", Quantity: d("1")})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.orders.CreateOrder(ctx, "tester", tt.req)
			assert.ErrorIs(t, err, service.ErrValidation)
		})
	}
}

// toRequest mirrors what a client sends back after reading an order
func toRequest(o service.OrderResponse) service.OrderRequest {
	req := service.OrderRequest{
		Customer:     o.Customer,
		Status:       o.Status,
		OrderDate:    &o.OrderDate,
		DeliveryDate: o.DeliveryDate,
		Notes:        o.Notes,
	}
	for _, item := range o.Items {
		price := item.PricePerMeters
		req.Items = append(req.Items, service.OrderItemRequest{
			ID:             item.ID.String(),
			ProductID:      item.ProductID.String(),
			Color:          item.Color,
			Quantity:       item.Quantity,
			Unit:           item.Unit,
			PricePerMeters: &price,
		})
	}
	return req
}

func TestUpdateOrderRoundTripIsNoOp(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	p := e.seedProduct(t, "Rayon", map[string]string{"Black": "100"})

	created, err := e.orders.CreateOrder(ctx, "tester", orderReq(p.ID.String(), service.OrderItemRequest{Color: "Black", Quantity: d("40")}))
	require.NoError(t, err)

	got, err := e.orders.GetOrder(ctx, created.ID.String())
	require.NoError(t, err)

	updated, err := e.orders.UpdateOrder(ctx, "tester", got.ID.String(), toRequest(got))
	require.NoError(t, err)

	assert.Equal(t, got.Items[0].ID, updated.Items[0].ID)
	assert.True(t, got.TotalAmount.Equal(updated.TotalAmount))
	assert.True(t, d("60").Equal(e.variantStock(t, p.ID.String(), "Black")))

	_, total, err := e.products.ListMovements(ctx, p.ID.String(), service.Page{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total, "round trip must not write ledger rows")
}

func TestUpdateOrderAppliesNetDelta(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	p := e.seedProduct(t, "Denim", map[string]string{"Indigo": "100"})

	created, err := e.orders.CreateOrder(ctx, "tester", orderReq(p.ID.String(), service.OrderItemRequest{Color: "Indigo", Quantity: d("30")}))
	require.NoError(t, err)

	req := toRequest(created)
	req.Items[0].Quantity = d("45")
	_, err = e.orders.UpdateOrder(ctx, "tester", created.ID.String(), req)
	require.NoError(t, err)
	assert.True(t, d("55").Equal(e.variantStock(t, p.ID.String(), "Indigo")))

	req.Status = model.OrderStatusCancelled
	cancelled, err := e.orders.UpdateOrder(ctx, "tester", created.ID.String(), req)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusCancelled, cancelled.Status)
	assert.True(t, d("100").Equal(e.variantStock(t, p.ID.String(), "Indigo")))

	req.Status = model.OrderStatusPending
	_, err = e.orders.UpdateOrder(ctx, "tester", created.ID.String(), req)
	assert.ErrorIs(t, err, service.ErrInvalidTransition)
}

func TestDeleteOrderCreditsStock(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	p := e.seedProduct(t, "Chiffon", map[string]string{"Pink": "20"})

	created, err := e.orders.CreateOrder(ctx, "tester", orderReq(p.ID.String(), service.OrderItemRequest{Color: "Pink", Quantity: d("20")}))
	require.NoError(t, err)
	assert.True(t, e.variantStock(t, p.ID.String(), "Pink").IsZero())

	require.NoError(t, e.orders.DeleteOrder(ctx, "tester", created.ID.String()))
	assert.True(t, d("20").Equal(e.variantStock(t, p.ID.String(), "Pink")))

	_, err = e.orders.GetOrder(ctx, created.ID.String())
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestOrderLinkedToCustomer(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	p := e.seedProduct(t, "Voile", map[string]string{"White": "100"})
	c, err := e.customers.CreateCustomer(ctx, "tester", service.CustomerRequest{Name: "Meena Fabrics", Type: model.CustomerTypeRetail})
	require.NoError(t, err)

	req := orderReq(p.ID.String(), service.OrderItemRequest{Color: "White", Quantity: d("1")})
	req.Customer = ""
	req.CustomerID = c.ID.String()
	created, err := e.orders.CreateOrder(ctx, "tester", req)
	require.NoError(t, err)
	assert.Equal(t, "Meena Fabrics", created.Customer)

	list, total, err := e.orders.ListOrders(ctx, service.OrderQuery{CustomerID: c.ID.String()})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, created.ID, list[0].ID)
}

// approveReturn files a Red return of qty against o and approves it
func approveReturn(t *testing.T, e *env, o service.OrderResponse, qty string) service.ReturnResponse {
	t.Helper()
	ctx := context.Background()
	ret, err := e.returns.CreateReturn(ctx, "tester", service.ReturnRequest{
		OrderID: o.ID.String(), Product: "Cotton Poplin", Color: "Red",
		QuantityInMeters: d(qty), ReturnReason: "Damaged",
	})
	require.NoError(t, err)
	ret, err = e.returns.UpdateReturn(ctx, "tester", ret.ID.String(), service.ReturnUpdateRequest{IsApprove: boolPtr(true)})
	require.NoError(t, err)
	return ret
}

func TestCancelOrderAfterApprovedReturn(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	p, o := placeOrder(t, e)

	approveReturn(t, e, o, "25")
	require.True(t, d("425").Equal(e.variantStock(t, p.ID.String(), "Red")))

	req := toRequest(o)
	req.Status = model.OrderStatusCancelled
	_, err := e.orders.UpdateOrder(ctx, "tester", o.ID.String(), req)
	require.NoError(t, err)
	assert.True(t, d("500").Equal(e.variantStock(t, p.ID.String(), "Red")), "only the 75 still held goes back")

	moves, _, err := e.products.ListMovements(ctx, p.ID.String(), service.Page{})
	require.NoError(t, err)
	assert.Equal(t, model.MovementOrderUpdated, moves[0].Reason)
	assert.True(t, d("75").Equal(moves[0].Delta), "delta %s", moves[0].Delta)
	assert.True(t, d("500").Equal(moves[0].BalanceAfter))
}

func TestUpdateOrderKeepsReturnedQuantity(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	p, o := placeOrder(t, e)

	approveReturn(t, e, o, "80")
	_, err := e.returns.CreateReturn(ctx, "tester", service.ReturnRequest{
		OrderID: o.ID.String(), Product: "Cotton Poplin", Color: "Red",
		QuantityInMeters: d("10"), ReturnReason: "Short width",
	})
	require.NoError(t, err)
	require.True(t, d("480").Equal(e.variantStock(t, p.ID.String(), "Red")))

	tests := []struct {
		name  string
		qty   string
		err   error
		stock string
	}{
		{"below approved", "10", service.ErrConflict, "480"},
		{"below approved plus pending", "85", service.ErrConflict, "480"},
		{"covers every return", "90", nil, "490"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := toRequest(o)
			req.Items[0].Quantity = d(tt.qty)
			_, err := e.orders.UpdateOrder(ctx, "tester", o.ID.String(), req)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
			} else {
				require.NoError(t, err)
			}
			assert.True(t, d(tt.stock).Equal(e.variantStock(t, p.ID.String(), "Red")), "stock %s", e.variantStock(t, p.ID.String(), "Red"))
		})
	}
}

func TestDeleteOrderWithReturnsIsRefused(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	p, o := placeOrder(t, e)

	ret := approveReturn(t, e, o, "25")
	err := e.orders.DeleteOrder(ctx, "tester", o.ID.String())
	assert.ErrorIs(t, err, service.ErrConflict)
	assert.True(t, d("425").Equal(e.variantStock(t, p.ID.String(), "Red")))

	require.NoError(t, e.returns.DeleteReturn(ctx, "tester", ret.ID.String()))
	assert.True(t, d("400").Equal(e.variantStock(t, p.ID.String(), "Red")))

	require.NoError(t, e.orders.DeleteOrder(ctx, "tester", o.ID.String()))
	assert.True(t, d("500").Equal(e.variantStock(t, p.ID.String(), "Red")))
}

func TestDeleteApprovedReturnOfCancelledOrder(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	p, o := placeOrder(t, e)

	ret := approveReturn(t, e, o, "25")
	req := toRequest(o)
	req.Status = model.OrderStatusCancelled
	_, err := e.orders.UpdateOrder(ctx, "tester", o.ID.String(), req)
	require.NoError(t, err)

	require.NoError(t, e.returns.DeleteReturn(ctx, "tester", ret.ID.String()))
	assert.True(t, d("500").Equal(e.variantStock(t, p.ID.String(), "Red")), "a cancelled order holds nothing either way")
}
