package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/RehanShaikh007/TextileERP-sub000/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RevenueSummary is the revenue of non-cancelled orders in a range
type RevenueSummary struct {
	Revenue decimal.Decimal
	Orders  int64
}

// ReturnSummary counts pending returns and sums approved refunds
type ReturnSummary struct {
	Pending     int64
	RefundTotal decimal.Decimal
}

type DashboardRepository interface {
	GetRevenue(ctx context.Context, start, end time.Time) (RevenueSummary, error)
	CountOrdersByStatus(ctx context.Context, start, end time.Time) (map[string]int64, error)
	GetMonthlyRevenue(ctx context.Context, start, end time.Time) ([]model.RevenuePoint, error)
	GetTopProducts(ctx context.Context, start, end time.Time, limit int) ([]model.ProductRanking, error)
	CountCustomers(ctx context.Context) (int64, error)
	CountProducts(ctx context.Context) (int64, error)
	CountVariantStock(ctx context.Context, lowThreshold decimal.Decimal) (low int64, out int64, err error)
	GetReturnSummary(ctx context.Context) (ReturnSummary, error)
}

type dashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) DashboardRepository {
	return &dashboardRepository{db: db}
}

// lineValue mirrors model.OrderTotal in SQL
const lineValue = "order_items.quantity * order_items.price_per_meters"

func (r *dashboardRepository) GetRevenue(ctx context.Context, start, end time.Time) (RevenueSummary, error) {
	var result struct {
		Revenue decimal.Decimal
		Orders  int64
	}
	if err := GetDB(ctx, r.db).Table("orders").
		Select("COALESCE(SUM("+lineValue+"), 0) AS revenue, COUNT(DISTINCT orders.id) AS orders").
		Joins("LEFT JOIN order_items ON order_items.order_id = orders.id").
		Where("orders.status <> ? AND orders.order_date >= ? AND orders.order_date <= ?", model.OrderStatusCancelled, start, end).
		Scan(&result).Error; err != nil {
		return RevenueSummary{}, fmt.Errorf("failed to query revenue: %w", err)
	}
	return RevenueSummary{Revenue: result.Revenue, Orders: result.Orders}, nil
}

func (r *dashboardRepository) CountOrdersByStatus(ctx context.Context, start, end time.Time) (map[string]int64, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	if err := GetDB(ctx, r.db).Model(&model.Order{}).
		Select("status, COUNT(*) AS count").
		Where("order_date >= ? AND order_date <= ?", start, end).
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to count orders by status: %w", err)
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (r *dashboardRepository) GetMonthlyRevenue(ctx context.Context, start, end time.Time) ([]model.RevenuePoint, error) {
	query := `
		SELECT
			TO_CHAR(DATE_TRUNC('month', o.order_date), 'YYYY-MM') AS period,
			COALESCE(SUM(oi.quantity * oi.price_per_meters), 0) AS revenue,
			COUNT(DISTINCT o.id) AS orders
		FROM orders o
		LEFT JOIN order_items oi ON oi.order_id = o.id
		WHERE o.status <> $1
		  AND o.order_date >= $2
		  AND o.order_date <= $3
		GROUP BY DATE_TRUNC('month', o.order_date)
		ORDER BY period
	`

	var points []model.RevenuePoint
	if err := GetDB(ctx, r.db).Raw(query, model.OrderStatusCancelled, start, end).Scan(&points).Error; err != nil {
		return nil, fmt.Errorf("failed to query monthly revenue: %w", err)
	}
	return points, nil
}

func (r *dashboardRepository) GetTopProducts(ctx context.Context, start, end time.Time, limit int) ([]model.ProductRanking, error) {
	var rankings []model.ProductRanking
	if err := GetDB(ctx, r.db).Table("order_items").
		Select("order_items.product_id AS product_id, MAX(order_items.product) AS product_name, SUM(order_items.quantity) AS total_quantity, SUM("+lineValue+") AS total_value").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.status <> ? AND orders.order_date >= ? AND orders.order_date <= ?", model.OrderStatusCancelled, start, end).
		Group("order_items.product_id").
		Order("total_quantity DESC").
		Limit(limit).
		Scan(&rankings).Error; err != nil {
		return nil, fmt.Errorf("failed to query top products: %w", err)
	}
	return rankings, nil
}

func (r *dashboardRepository) CountCustomers(ctx context.Context) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.Customer{}).Count(&count).Error
	return count, err
}

func (r *dashboardRepository) CountProducts(ctx context.Context) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.Product{}).Count(&count).Error
	return count, err
}

func (r *dashboardRepository) CountVariantStock(ctx context.Context, lowThreshold decimal.Decimal) (int64, int64, error) {
	var result struct {
		Low int64
		Out int64
	}
	if err := GetDB(ctx, r.db).Table("product_variants").
		Select("COUNT(*) FILTER (WHERE product_variants.stock_in_meters > 0 AND product_variants.stock_in_meters < ?) AS low, COUNT(*) FILTER (WHERE product_variants.stock_in_meters <= 0) AS out", lowThreshold).
		Joins("JOIN products ON products.id = product_variants.product_id AND products.deleted_at IS NULL").
		Scan(&result).Error; err != nil {
		return 0, 0, fmt.Errorf("failed to count variant stock: %w", err)
	}
	return result.Low, result.Out, nil
}

func (r *dashboardRepository) GetReturnSummary(ctx context.Context) (ReturnSummary, error) {
	var result struct {
		Pending     int64
		RefundTotal decimal.Decimal
	}
	if err := GetDB(ctx, r.db).Model(&model.Return{}).
		Select("COUNT(*) FILTER (WHERE is_approve = false AND is_rejected = false) AS pending, COALESCE(SUM(refund_amount) FILTER (WHERE is_approve = true), 0) AS refund_total").
		Scan(&result).Error; err != nil {
		return ReturnSummary{}, fmt.Errorf("failed to summarize returns: %w", err)
	}
	return ReturnSummary{Pending: result.Pending, RefundTotal: result.RefundTotal}, nil
}
