package service

import (
	"context"
	"fmt"
	"time"

	"github.com/RehanShaikh007/TextileERP-sub000/internal/model"
	"github.com/RehanShaikh007/TextileERP-sub000/internal/repository"
)

type DashboardService interface {
	GetDashboard(ctx context.Context, start, end time.Time) (model.DashboardStats, error)
}

type dashboardService struct {
	dashboardRepo repository.DashboardRepository
}

func NewDashboardService(dashboardRepo repository.DashboardRepository) DashboardService {
	return &dashboardService{dashboardRepo: dashboardRepo}
}

// DefaultRange covers the current month and the eleven before it
func DefaultRange(now time.Time) (time.Time, time.Time) {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -11, 0)
	return start, now
}

// GetDashboard aggregates revenue, order, stock and return figures.
// Revenue counts every non-cancelled order dated within the range.
func (s *dashboardService) GetDashboard(ctx context.Context, start, end time.Time) (model.DashboardStats, error) {
	if end.Before(start) {
		return model.DashboardStats{}, invalidf("end date is before start date")
	}

	stats := model.DashboardStats{RangeStart: start, RangeEnd: end}

	revenue, err := s.dashboardRepo.GetRevenue(ctx, start, end)
	if err != nil {
		return stats, err
	}
	stats.TotalRevenue = revenue.Revenue

	if stats.OrdersByStatus, err = s.dashboardRepo.CountOrdersByStatus(ctx, start, end); err != nil {
		return stats, err
	}
	for _, n := range stats.OrdersByStatus {
		stats.TotalOrders += n
	}

	if stats.MonthlyRevenue, err = s.dashboardRepo.GetMonthlyRevenue(ctx, start, end); err != nil {
		return stats, err
	}
	if stats.TopProducts, err = s.dashboardRepo.GetTopProducts(ctx, start, end, 5); err != nil {
		return stats, err
	}
	if stats.TotalCustomers, err = s.dashboardRepo.CountCustomers(ctx); err != nil {
		return stats, fmt.Errorf("failed to count customers: %w", err)
	}
	if stats.TotalProducts, err = s.dashboardRepo.CountProducts(ctx); err != nil {
		return stats, fmt.Errorf("failed to count products: %w", err)
	}
	if stats.LowStockVariants, stats.OutOfStock, err = s.dashboardRepo.CountVariantStock(ctx, model.LowStockThreshold); err != nil {
		return stats, err
	}

	returns, err := s.dashboardRepo.GetReturnSummary(ctx)
	if err != nil {
		return stats, err
	}
	stats.PendingReturns = returns.Pending
	stats.RefundTotal = returns.RefundTotal

	if stats.MonthlyRevenue == nil {
		stats.MonthlyRevenue = []model.RevenuePoint{}
	}
	if stats.TopProducts == nil {
		stats.TopProducts = []model.ProductRanking{}
	}
	return stats, nil
}
