package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/RehanShaikh007/TextileERP-sub000/internal/model"
	"github.com/RehanShaikh007/TextileERP-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type stockKey struct {
	productID uuid.UUID
	color     string
}

func keyOf(productID uuid.UUID, color string) stockKey {
	return stockKey{productID: productID, color: strings.ToLower(strings.TrimSpace(color))}
}

// demand is the quantity an order holds per product color
type demand map[stockKey]decimal.Decimal

// orderedQuantity totals the items per product color
func orderedQuantity(items []model.OrderItem) demand {
	d := demand{}
	for _, item := range items {
		k := keyOf(item.ProductID, item.Color)
		d[k] = d[k].Add(item.Quantity)
	}
	return d
}

// returnedQuantity totals the returns that still count against an order:
// pending and approved ones matched to an order item.
func returnedQuantity(returns []model.Return) demand {
	d := demand{}
	for _, r := range returns {
		if r.IsRejected || r.ProductID == nil {
			continue
		}
		k := keyOf(*r.ProductID, r.Color)
		d[k] = d[k].Add(r.QuantityInMeters)
	}
	return d
}

// orderDemand returns what the order holds out of stock: the ordered
// quantities less approved returns. Cancelled orders hold nothing.
func orderDemand(o *model.Order, returns []model.Return) demand {
	if o == nil || o.Status == model.OrderStatusCancelled {
		return demand{}
	}
	d := orderedQuantity(o.Items)
	for _, r := range returns {
		if !r.IsApprove || r.ProductID == nil {
			continue
		}
		k := keyOf(*r.ProductID, r.Color)
		d[k] = d[k].Sub(r.QuantityInMeters)
	}
	return d
}

// coversReturns refuses items that leave less on the order than was already returned
func coversReturns(items []model.OrderItem, returns []model.Return) error {
	ordered := orderedQuantity(items)
	returned := returnedQuantity(returns)
	keys := sortedKeys(returned)
	for _, k := range keys {
		if ordered[k].LessThan(returned[k]) {
			return fmt.Errorf("%w: %s of color %q already returned, order keeps %s",
				ErrConflict, returned[k].String(), k.color, ordered[k].String())
		}
	}
	return nil
}

func sortedKeys(ds ...demand) []stockKey {
	seen := make(map[stockKey]bool)
	var keys []stockKey
	for _, d := range ds {
		for k := range d {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].productID != keys[j].productID {
			return keys[i].productID.String() < keys[j].productID.String()
		}
		return keys[i].color < keys[j].color
	})
	return keys
}

// stockLedger moves product variant balances and records every change
type stockLedger struct {
	productRepo  repository.ProductRepository
	movementRepo repository.StockMovementRepository
}

// apply adds delta to a variant's stock. Must run inside a transaction.
func (l stockLedger) apply(ctx context.Context, productID uuid.UUID, color string, delta decimal.Decimal, reason, refType string, refID uuid.UUID) error {
	if delta.IsZero() {
		return nil
	}

	variant, err := l.productRepo.FindVariantForUpdate(ctx, productID, color)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return invalidf("product %s has no color %q", productID, color)
		}
		return fmt.Errorf("failed to lock product variant: %w", err)
	}

	balance := variant.StockInMeters.Add(delta)
	if balance.IsNegative() {
		return fmt.Errorf("%w: %s of %s requested, %s available",
			ErrInsufficientStock, delta.Neg().String(), variant.Color, variant.StockInMeters.String())
	}

	if err := l.productRepo.UpdateVariantStock(ctx, variant.ID, balance); err != nil {
		return fmt.Errorf("failed to update variant stock: %w", err)
	}

	movement := &model.StockMovement{
		ProductID:     productID,
		Color:         variant.Color,
		Delta:         delta,
		BalanceAfter:  balance,
		Reason:        reason,
		ReferenceType: refType,
		ReferenceID:   refID,
	}
	if err := l.movementRepo.Create(ctx, movement); err != nil {
		return fmt.Errorf("failed to record stock movement: %w", err)
	}
	return nil
}

// reconcile moves stock from the before demand to the after demand. Only net
// per-color differences are written; keys are visited in a fixed order so
// concurrent writers lock variants consistently.
func (l stockLedger) reconcile(ctx context.Context, before, after demand, reason, refType string, refID uuid.UUID) error {
	for _, k := range sortedKeys(before, after) {
		delta := before[k].Sub(after[k])
		if err := l.apply(ctx, k.productID, k.color, delta, reason, refType, refID); err != nil {
			return err
		}
	}
	return nil
}
