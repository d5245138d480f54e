package memory

import (
	"context"
	"slices"
	"time"

	"github.com/RehanShaikh007/TextileERP-sub000/internal/model"
	"github.com/RehanShaikh007/TextileERP-sub000/internal/repository"

	"github.com/shopspring/decimal"
)

type dashboardRepo struct {
	s *Store
}

func (s *Store) Dashboard() repository.DashboardRepository {
	return &dashboardRepo{s: s}
}

func inRange(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}

// revenueOrders returns non-cancelled orders dated within the range
func (r *dashboardRepo) revenueOrders(start, end time.Time) []model.Order {
	var out []model.Order
	for _, o := range r.s.orders.rows {
		if o.Status == model.OrderStatusCancelled || !inRange(o.OrderDate, start, end) {
			continue
		}
		out = append(out, o)
	}
	return out
}

func (r *dashboardRepo) GetRevenue(_ context.Context, start, end time.Time) (repository.RevenueSummary, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	summary := repository.RevenueSummary{Revenue: decimal.Zero}
	for _, o := range r.revenueOrders(start, end) {
		summary.Revenue = summary.Revenue.Add(o.Total())
		summary.Orders++
	}
	return summary, nil
}

func (r *dashboardRepo) CountOrdersByStatus(_ context.Context, start, end time.Time) (map[string]int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	counts := make(map[string]int64)
	for _, o := range r.s.orders.rows {
		if inRange(o.OrderDate, start, end) {
			counts[o.Status]++
		}
	}
	return counts, nil
}

func (r *dashboardRepo) GetMonthlyRevenue(_ context.Context, start, end time.Time) ([]model.RevenuePoint, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	byMonth := make(map[string]*model.RevenuePoint)
	for _, o := range r.revenueOrders(start, end) {
		period := o.OrderDate.Format("2006-01")
		p, ok := byMonth[period]
		if !ok {
			p = &model.RevenuePoint{Period: period, Revenue: decimal.Zero}
			byMonth[period] = p
		}
		p.Revenue = p.Revenue.Add(o.Total())
		p.Orders++
	}

	points := make([]model.RevenuePoint, 0, len(byMonth))
	for _, p := range byMonth {
		points = append(points, *p)
	}
	slices.SortFunc(points, func(a, b model.RevenuePoint) int {
		if a.Period < b.Period {
			return -1
		}
		if a.Period > b.Period {
			return 1
		}
		return 0
	})
	return points, nil
}

func (r *dashboardRepo) GetTopProducts(_ context.Context, start, end time.Time, limit int) ([]model.ProductRanking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	byProduct := make(map[string]*model.ProductRanking)
	for _, o := range r.revenueOrders(start, end) {
		for _, item := range o.Items {
			key := item.ProductID.String()
			p, ok := byProduct[key]
			if !ok {
				p = &model.ProductRanking{ProductID: key, ProductName: item.Product, TotalQuantity: decimal.Zero, TotalValue: decimal.Zero}
				byProduct[key] = p
			}
			p.TotalQuantity = p.TotalQuantity.Add(item.Quantity)
			p.TotalValue = p.TotalValue.Add(item.Quantity.Mul(item.PricePerMeters))
		}
	}

	rankings := make([]model.ProductRanking, 0, len(byProduct))
	for _, p := range byProduct {
		rankings = append(rankings, *p)
	}
	slices.SortFunc(rankings, func(a, b model.ProductRanking) int { return b.TotalQuantity.Cmp(a.TotalQuantity) })
	if limit > 0 && len(rankings) > limit {
		rankings = rankings[:limit]
	}
	return rankings, nil
}

func (r *dashboardRepo) CountCustomers(_ context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.customers.rows)), nil
}

func (r *dashboardRepo) CountProducts(_ context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.products.rows)), nil
}

func (r *dashboardRepo) CountVariantStock(_ context.Context, lowThreshold decimal.Decimal) (int64, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var low, out int64
	for _, p := range r.s.products.rows {
		for _, v := range p.Variants {
			switch {
			case !v.StockInMeters.IsPositive():
				out++
			case v.StockInMeters.LessThan(lowThreshold):
				low++
			}
		}
	}
	return low, out, nil
}

func (r *dashboardRepo) GetReturnSummary(_ context.Context) (repository.ReturnSummary, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	summary := repository.ReturnSummary{RefundTotal: decimal.Zero}
	for _, ret := range r.s.returns.rows {
		switch ret.Status() {
		case model.ReturnStatusPending:
			summary.Pending++
		case model.ReturnStatusApproved:
			summary.RefundTotal = summary.RefundTotal.Add(ret.RefundAmount)
		}
	}
	return summary, nil
}
