package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/RehanShaikh007/TextileERP-sub000/internal/model"
	"github.com/RehanShaikh007/TextileERP-sub000/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardExcludesCancelledOrders(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	p := e.seedProduct(t, "Cotton Poplin", map[string]string{"Red": "500", "Blue": "50"})

	kept, err := e.orders.CreateOrder(ctx, "tester", orderReq(p.ID.String(),
		service.OrderItemRequest{Color: "Red", Quantity: d("10"), PricePerMeters: dp("120")}))
	require.NoError(t, err)
	dropped, err := e.orders.CreateOrder(ctx, "tester", orderReq(p.ID.String(),
		service.OrderItemRequest{Color: "Red", Quantity: d("5")}))
	require.NoError(t, err)

	req := toRequest(dropped)
	req.Status = model.OrderStatusCancelled
	_, err = e.orders.UpdateOrder(ctx, "tester", dropped.ID.String(), req)
	require.NoError(t, err)

	start, end := service.DefaultRange(time.Now().Add(time.Hour))
	stats, err := e.dashboard.GetDashboard(ctx, start, end)
	require.NoError(t, err)

	assert.True(t, kept.TotalAmount.Equal(stats.TotalRevenue), "revenue %s", stats.TotalRevenue)
	assert.EqualValues(t, 2, stats.TotalOrders)
	assert.EqualValues(t, 1, stats.OrdersByStatus[model.OrderStatusCancelled])
	assert.EqualValues(t, 1, stats.TotalProducts)
	assert.EqualValues(t, 1, stats.LowStockVariants, "Blue holds 50 m")

	_, err = e.dashboard.GetDashboard(ctx, end, start)
	assert.ErrorIs(t, err, service.ErrValidation)
}

func TestDefaultRange(t *testing.T) {
	now := time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC)
	start, end := service.DefaultRange(now)
	assert.Equal(t, time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, now, end)
}

func TestAgentChat(t *testing.T) {
	e := newEnv(t)
	agent := service.NewAgentService(e.dashboard)
	ctx := context.Background()
	e.seedProduct(t, "Cotton Poplin", map[string]string{"Red": "0"})

	tests := []struct {
		message string
		intents []string
		reply   string
	}{
		{"hello there", []string{"help"}, "I can summarise"},
		{"How is the STOCK looking?", []string{"stock"}, "1 are out of stock"},
		{"any pending returns or refunds?", []string{"order", "return"}, "waiting for a decision"},
		{"how many customers do we have", []string{"customer"}, "0 customers"},
		{"what was revenue", []string{"revenue"}, "₹0.00"},
	}
	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			reply, err := agent.Chat(ctx, service.AgentRequest{Message: tt.message})
			require.NoError(t, err)
			assert.Equal(t, tt.intents, reply.Intents)
			assert.Contains(t, reply.Reply, tt.reply)
		})
	}
}
