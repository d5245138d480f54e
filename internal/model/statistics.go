package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardStats aggregates order, stock and return figures for a time range
type DashboardStats struct {
	TotalRevenue     decimal.Decimal  `json:"totalRevenue"`
	TotalOrders      int64            `json:"totalOrders"`
	OrdersByStatus   map[string]int64 `json:"ordersByStatus"`
	TotalCustomers   int64            `json:"totalCustomers"`
	TotalProducts    int64            `json:"totalProducts"`
	LowStockVariants int64            `json:"lowStockVariants"`
	OutOfStock       int64            `json:"outOfStockVariants"`
	PendingReturns   int64            `json:"pendingReturns"`
	RefundTotal      decimal.Decimal  `json:"refundTotal"`
	MonthlyRevenue   []RevenuePoint   `json:"monthlyRevenue"`
	TopProducts      []ProductRanking `json:"topProducts"`
	RangeStart       time.Time        `json:"rangeStart"`
	RangeEnd         time.Time        `json:"rangeEnd"`
}

// RevenuePoint is the revenue of one calendar month (YYYY-MM)
type RevenuePoint struct {
	Period  string          `json:"period"`
	Revenue decimal.Decimal `json:"revenue"`
	Orders  int64           `json:"orders"`
}

// ProductRanking represents a ranked product based on accumulated quantities
type ProductRanking struct {
	ProductID     string          `json:"productId"`
	ProductName   string          `json:"productName"`
	TotalQuantity decimal.Decimal `json:"totalQuantity"`
	TotalValue    decimal.Decimal `json:"totalValue"`
}
