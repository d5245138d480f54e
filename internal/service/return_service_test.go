package service_test

import (
	"context"
	"testing"

	"github.com/RehanShaikh007/TextileERP-sub000/internal/model"
	"github.com/RehanShaikh007/TextileERP-sub000/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

// placeOrder seeds a product with 500 m of Red and orders 100 m at 60/m
func placeOrder(t *testing.T, e *env) (service.ProductResponse, service.OrderResponse) {
	t.Helper()
	p := e.seedProduct(t, "Cotton Poplin", map[string]string{"Red": "500"})
	o, err := e.orders.CreateOrder(context.Background(), "tester", orderReq(p.ID.String(),
		service.OrderItemRequest{Color: "Red", Quantity: d("100"), PricePerMeters: dp("60")},
	))
	require.NoError(t, err)
	return p, o
}

func TestCreateReturnRefund(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	_, o := placeOrder(t, e)

	tests := []struct {
		name    string
		product string
		color   string
		qty     string
		refund  string
		linked  bool
	}{
		{"matched item uses its price", " cotton poplin ", "RED", "10", "600", true},
		{"unmatched item uses default rate", "Georgette", "Blue", "2", "900", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ret, err := e.returns.CreateReturn(ctx, "tester", service.ReturnRequest{
				OrderID:          o.ID.String(),
				Product:          tt.product,
				Color:            tt.color,
				QuantityInMeters: d(tt.qty),
				ReturnReason:     "Damaged",
			})
			require.NoError(t, err)
			assert.True(t, d(tt.refund).Equal(ret.RefundAmount), "refund %s", ret.RefundAmount)
			assert.Equal(t, tt.linked, ret.ProductID != nil)
			assert.Equal(t, model.ReturnStatusPending, ret.ReturnStatus)
			assert.Equal(t, "Ravi Traders", ret.Customer)
		})
	}
}

func TestCreateReturnDisplayIDs(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	_, o := placeOrder(t, e)

	for _, want := range []string{"RET-001", "RET-002"} {
		ret, err := e.returns.CreateReturn(ctx, "tester", service.ReturnRequest{
			OrderID: o.ID.String(), Product: "Cotton Poplin", Color: "Red",
			QuantityInMeters: d("1"), ReturnReason: "Shade mismatch",
		})
		require.NoError(t, err)
		assert.Equal(t, want, ret.Code)
	}
}

func TestCreateReturnRejectsOverReturn(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	_, o := placeOrder(t, e)

	req := service.ReturnRequest{
		OrderID: o.ID.String(), Product: "Cotton Poplin", Color: "Red",
		QuantityInMeters: d("70"), ReturnReason: "Damaged",
	}
	first, err := e.returns.CreateReturn(ctx, "tester", req)
	require.NoError(t, err)

	_, err = e.returns.CreateReturn(ctx, "tester", req)
	assert.ErrorIs(t, err, service.ErrValidation, "70 + 70 exceeds the 100 ordered")

	// rejected returns free their quantity again
	_, err = e.returns.UpdateReturn(ctx, "tester", first.ID.String(), service.ReturnUpdateRequest{IsRejected: boolPtr(true)})
	require.NoError(t, err)
	_, err = e.returns.CreateReturn(ctx, "tester", req)
	assert.NoError(t, err)
}

func TestCreateReturnValidation(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	p, o := placeOrder(t, e)

	_, err := e.returns.CreateReturn(ctx, "tester", service.ReturnRequest{
		OrderID: o.ID.String(), Product: "Cotton Poplin", Color: "Red",
		QuantityInMeters: d("0"), ReturnReason: "Damaged",
	})
	assert.ErrorIs(t, err, service.ErrValidation)

	_, err = e.returns.CreateReturn(ctx, "tester", service.ReturnRequest{
		OrderID: p.ID.String(), Product: "Cotton Poplin", Color: "Red",
		QuantityInMeters: d("1"), ReturnReason: "Damaged",
	})
	assert.ErrorIs(t, err, service.ErrValidation, "unknown order")

	req := toRequest(o)
	req.Status = model.OrderStatusCancelled
	_, err = e.orders.UpdateOrder(ctx, "tester", o.ID.String(), req)
	require.NoError(t, err)
	_, err = e.returns.CreateReturn(ctx, "tester", service.ReturnRequest{
		OrderID: o.ID.String(), Product: "Cotton Poplin", Color: "Red",
		QuantityInMeters: d("1"), ReturnReason: "Damaged",
	})
	assert.ErrorIs(t, err, service.ErrConflict)
}

func TestReturnApprovalCreditsStock(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	p, o := placeOrder(t, e)
	require.True(t, d("400").Equal(e.variantStock(t, p.ID.String(), "Red")))

	ret, err := e.returns.CreateReturn(ctx, "tester", service.ReturnRequest{
		OrderID: o.ID.String(), Product: "Cotton Poplin", Color: "red",
		QuantityInMeters: d("25"), ReturnReason: "Damaged",
	})
	require.NoError(t, err)
	assert.True(t, d("400").Equal(e.variantStock(t, p.ID.String(), "Red")), "pending returns do not move stock")

	approved, err := e.returns.UpdateReturn(ctx, "tester", ret.ID.String(), service.ReturnUpdateRequest{IsApprove: boolPtr(true)})
	require.NoError(t, err)
	assert.Equal(t, model.ReturnStatusApproved, approved.ReturnStatus)
	assert.NotNil(t, approved.DecidedAt)
	assert.True(t, d("425").Equal(e.variantStock(t, p.ID.String(), "Red")))

	// repeating the same decision is a no-op
	_, err = e.returns.UpdateReturn(ctx, "tester", ret.ID.String(), service.ReturnUpdateRequest{IsApprove: boolPtr(true)})
	require.NoError(t, err)
	assert.True(t, d("425").Equal(e.variantStock(t, p.ID.String(), "Red")))

	_, err = e.returns.UpdateReturn(ctx, "tester", ret.ID.String(), service.ReturnUpdateRequest{IsRejected: boolPtr(true)})
	assert.ErrorIs(t, err, service.ErrConflict)

	require.NoError(t, e.returns.DeleteReturn(ctx, "tester", ret.ID.String()))
	assert.True(t, d("400").Equal(e.variantStock(t, p.ID.String(), "Red")))
}

func TestReturnDecisionRules(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	_, o := placeOrder(t, e)

	ret, err := e.returns.CreateReturn(ctx, "tester", service.ReturnRequest{
		OrderID: o.ID.String(), Product: "Cotton Poplin", Color: "Red",
		QuantityInMeters: d("5"), ReturnReason: "Damaged",
	})
	require.NoError(t, err)

	_, err = e.returns.UpdateReturn(ctx, "tester", ret.ID.String(), service.ReturnUpdateRequest{
		IsApprove: boolPtr(true), IsRejected: boolPtr(true),
	})
	assert.ErrorIs(t, err, service.ErrValidation)

	reason := "Wrong shade delivered"
	rejected, err := e.returns.UpdateReturn(ctx, "tester", ret.ID.String(), service.ReturnUpdateRequest{
		IsRejected: boolPtr(true), ReturnReason: &reason,
	})
	require.NoError(t, err)
	assert.Equal(t, model.ReturnStatusRejected, rejected.ReturnStatus)
	assert.Equal(t, reason, rejected.ReturnReason)

	_, err = e.returns.UpdateReturn(ctx, "tester", ret.ID.String(), service.ReturnUpdateRequest{IsApprove: boolPtr(true)})
	assert.ErrorIs(t, err, service.ErrConflict)

	list, total, err := e.returns.ListReturns(ctx, service.ReturnQuery{Status: model.ReturnStatusRejected})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, ret.ID, list[0].ID)
}

func TestCreateReturnCapSumsLinesOfColor(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	p := e.seedProduct(t, "Cotton Poplin", map[string]string{"Red": "500"})
	o, err := e.orders.CreateOrder(ctx, "tester", orderReq(p.ID.String(),
		service.OrderItemRequest{Color: "Red", Quantity: d("60")},
		service.OrderItemRequest{Color: "red", Quantity: d("40")},
	))
	require.NoError(t, err)

	create := func(qty string) error {
		_, err := e.returns.CreateReturn(ctx, "tester", service.ReturnRequest{
			OrderID: o.ID.String(), Product: "Cotton Poplin", Color: "Red",
			QuantityInMeters: d(qty), ReturnReason: "Damaged",
		})
		return err
	}

	require.NoError(t, create("90"), "both lines count toward the cap")
	assert.ErrorIs(t, create("11"), service.ErrValidation)
	assert.NoError(t, create("10"))
	assert.ErrorIs(t, create("0.5"), service.ErrValidation)
}
