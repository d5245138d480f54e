package model

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultRefundRatePerMeter applies when a return matches no order item
var DefaultRefundRatePerMeter = decimal.NewFromInt(450)

// LowStockThreshold is the total below which stock is suggested as low
var LowStockThreshold = decimal.NewFromInt(100)

// OrderTotal sums quantity × pricePerMeters over the items
func OrderTotal(items []OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Quantity.Mul(item.PricePerMeters))
	}
	return total
}

// StockTotal sums the variant quantities regardless of stock type
func StockTotal(variants []StockVariant) decimal.Decimal {
	total := decimal.Zero
	for _, v := range variants {
		total = total.Add(v.Quantity)
	}
	return total
}

// SuggestStockStatus derives a status from a total quantity. It is a hint shown
// next to the stored status and never replaces it.
func SuggestStockStatus(total decimal.Decimal) string {
	switch {
	case !total.IsPositive():
		return StockStatusOut
	case total.LessThan(LowStockThreshold):
		return StockStatusLow
	}
	return StockStatusAvailable
}

// MatchOrderItem finds the item for a product name and color, ignoring case
// and surrounding spaces.
func MatchOrderItem(items []OrderItem, product, color string) (OrderItem, bool) {
	for _, item := range items {
		if sameName(item.Product, product) && sameName(item.Color, color) {
			return item, true
		}
	}
	return OrderItem{}, false
}

// RefundAmount prices a return of qty meters against the order items. It
// returns the amount, the per-meter rate used and whether an item matched.
func RefundAmount(items []OrderItem, product, color string, qty decimal.Decimal) (decimal.Decimal, decimal.Decimal, bool) {
	rate := DefaultRefundRatePerMeter
	item, ok := MatchOrderItem(items, product, color)
	if ok {
		rate = item.PricePerMeters
	}
	return qty.Mul(rate), rate, ok
}

// DisplayID formats a human readable sequence number such as RET-001
func DisplayID(prefix string, seq int64) string {
	return fmt.Sprintf("%s-%03d", prefix, seq)
}

func sameName(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
