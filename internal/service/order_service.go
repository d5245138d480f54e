package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/RehanShaikh007/TextileERP-sub000/internal/model"
	"github.com/RehanShaikh007/TextileERP-sub000/internal/notification"
	"github.com/RehanShaikh007/TextileERP-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DTOs
type OrderItemRequest struct {
	ID             string           `json:"id" binding:"omitempty,uuid"`
	ProductID      string           `json:"productId" binding:"required,uuid"`
	Color          string           `json:"color" binding:"required"`
	Quantity       decimal.Decimal  `json:"quantity"`
	Unit           string           `json:"unit" binding:"omitempty,unit"`
	PricePerMeters *decimal.Decimal `json:"pricePerMeters"` // defaults to the variant price
}

type OrderRequest struct {
	CustomerID   string             `json:"customerId" binding:"omitempty,uuid"`
	Customer     string             `json:"customer" binding:"max=255"`
	Status       string             `json:"status" binding:"omitempty,oneof=pending confirmed processing shipped delivered cancelled"`
	OrderDate    *time.Time         `json:"orderDate"`
	DeliveryDate *time.Time         `json:"deliveryDate"`
	Items        []OrderItemRequest `json:"orderItems" binding:"required,min=1,dive"`
	Notes        string             `json:"notes"`
}

type OrderQuery struct {
	Status     string
	CustomerID string
	Search     string
	Page
}

type OrderResponse struct {
	model.Order
	Code        string          `json:"displayId"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

func toOrderResponse(o *model.Order) OrderResponse {
	if o.Items == nil {
		o.Items = []model.OrderItem{}
	}
	return OrderResponse{Order: *o, Code: o.DisplayID(), TotalAmount: o.Total()}
}

type OrderService interface {
	ListOrders(ctx context.Context, q OrderQuery) ([]OrderResponse, int64, error)
	GetOrder(ctx context.Context, id string) (OrderResponse, error)
	CreateOrder(ctx context.Context, actor string, req OrderRequest) (OrderResponse, error)
	UpdateOrder(ctx context.Context, actor, id string, req OrderRequest) (OrderResponse, error)
	DeleteOrder(ctx context.Context, actor, id string) error
}

type orderService struct {
	orderRepo    repository.OrderRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	returnRepo   repository.ReturnRepository
	auditRepo    repository.AuditRepository
	txManager    repository.TransactionManager
	ledger       stockLedger
	notifier     notification.Notifier
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	returnRepo repository.ReturnRepository,
	movementRepo repository.StockMovementRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	notifier notification.Notifier,
) OrderService {
	return &orderService{
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		returnRepo:   returnRepo,
		auditRepo:    auditRepo,
		txManager:    txManager,
		ledger:       stockLedger{productRepo: productRepo, movementRepo: movementRepo},
		notifier:     notifier,
	}
}

func (s *orderService) ListOrders(ctx context.Context, q OrderQuery) ([]OrderResponse, int64, error) {
	filter := repository.OrderFilter{
		Status: q.Status,
		Search: strings.TrimSpace(q.Search),
		Page:   repository.Page(q.Page.normalize()),
	}
	if q.CustomerID != "" {
		customerID, err := parseID("customer", q.CustomerID)
		if err != nil {
			return nil, 0, err
		}
		filter.CustomerID = &customerID
	}

	orders, total, err := s.orderRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}

	res := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		res = append(res, toOrderResponse(&orders[i]))
	}
	return res, total, nil
}

func (s *orderService) GetOrder(ctx context.Context, id string) (OrderResponse, error) {
	orderID, err := parseID("order", id)
	if err != nil {
		return OrderResponse{}, err
	}
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return OrderResponse{}, lookupErr("order", err)
	}
	return toOrderResponse(order), nil
}

// fill copies the request onto the order, resolving the customer and each
// item's product and color. existing holds the current items by id.
func (s *orderService) fill(ctx context.Context, order *model.Order, req OrderRequest, existing map[uuid.UUID]bool) error {
	order.CustomerID = nil
	order.Customer = strings.TrimSpace(req.Customer)
	if req.CustomerID != "" {
		customerID, _ := uuid.Parse(req.CustomerID)
		customer, err := s.customerRepo.FindByID(ctx, customerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return invalidf("customer %s does not exist", req.CustomerID)
			}
			return fmt.Errorf("failed to load customer: %w", err)
		}
		order.CustomerID = &customer.ID
		if order.Customer == "" {
			order.Customer = customer.Name
		}
	}
	if order.Customer == "" {
		return invalidf("customer is required")
	}

	if req.Status != "" {
		order.Status = req.Status
	} else if order.Status == "" {
		order.Status = model.OrderStatusPending
	}
	if req.OrderDate != nil {
		order.OrderDate = *req.OrderDate
	} else if order.OrderDate.IsZero() {
		order.OrderDate = time.Now()
	}
	order.DeliveryDate = req.DeliveryDate
	order.Notes = req.Notes

	products := make(map[uuid.UUID]*model.Product)
	items := make([]model.OrderItem, 0, len(req.Items))
	for i, itemReq := range req.Items {
		if !itemReq.Quantity.IsPositive() {
			return invalidf("item %d: quantity must be greater than zero", i+1)
		}
		productID, _ := uuid.Parse(itemReq.ProductID)
		product, ok := products[productID]
		if !ok {
			found, err := s.productRepo.FindByID(ctx, productID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return invalidf("item %d: product %s does not exist", i+1, itemReq.ProductID)
				}
				return fmt.Errorf("failed to load product: %w", err)
			}
			product = found
			products[productID] = found
		}

		var variant *model.ProductVariant
		for j := range product.Variants {
			if strings.EqualFold(product.Variants[j].Color, strings.TrimSpace(itemReq.Color)) {
				variant = &product.Variants[j]
				break
			}
		}
		if variant == nil {
			return invalidf("item %d: %s has no color %q", i+1, product.Name, itemReq.Color)
		}

		price := variant.PricePerMeters
		if itemReq.PricePerMeters != nil {
			if itemReq.PricePerMeters.IsNegative() {
				return invalidf("item %d: price must not be negative", i+1)
			}
			price = *itemReq.PricePerMeters
		}
		unit := itemReq.Unit
		if unit == "" {
			unit = product.Unit
		}

		item := model.OrderItem{
			ProductID:      product.ID,
			Product:        product.Name,
			Color:          variant.Color,
			Quantity:       itemReq.Quantity,
			Unit:           unitOrDefault(unit),
			PricePerMeters: price,
		}
		if itemReq.ID != "" {
			if itemID, err := uuid.Parse(itemReq.ID); err == nil && existing[itemID] {
				item.ID = itemID
				delete(existing, itemID)
			}
		}
		items = append(items, item)
	}
	order.Items = items
	return nil
}

func (s *orderService) CreateOrder(ctx context.Context, actor string, req OrderRequest) (OrderResponse, error) {
	var order model.Order
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.fill(txCtx, &order, req, nil); err != nil {
			return err
		}
		if err := s.orderRepo.Create(txCtx, &order); err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}
		if err := s.ledger.reconcile(txCtx, demand{}, orderDemand(&order, nil), model.MovementOrderPlaced, model.RefTypeOrder, order.ID); err != nil {
			return err
		}
		return recordAudit(txCtx, s.auditRepo, actor, model.ActionCreateOrder, order.ID.String(), order.Customer, req)
	})
	if err != nil {
		return OrderResponse{}, err
	}

	s.notifier.Notify(ctx, notification.EventOrderCreated, orderEventData(&order))
	return toOrderResponse(&order), nil
}

// UpdateOrder fully replaces the order. Stock moves only by the net
// difference between the old and new items; returned quantities stay covered.
func (s *orderService) UpdateOrder(ctx context.Context, actor, id string, req OrderRequest) (OrderResponse, error) {
	orderID, err := parseID("order", id)
	if err != nil {
		return OrderResponse{}, err
	}

	var order *model.Order
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		current, err := s.orderRepo.FindByIDForUpdate(txCtx, orderID)
		if err != nil {
			return lookupErr("order", err)
		}
		returns, err := s.returnRepo.ListByOrder(txCtx, current.ID)
		if err != nil {
			return fmt.Errorf("failed to load order returns: %w", err)
		}
		before := orderDemand(current, returns)
		fromStatus := current.Status

		existing := make(map[uuid.UUID]bool, len(current.Items))
		for _, item := range current.Items {
			existing[item.ID] = true
		}
		if err := s.fill(txCtx, current, req, existing); err != nil {
			return err
		}
		if !model.CanTransitionOrder(fromStatus, current.Status) {
			return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, fromStatus, current.Status)
		}
		if err := coversReturns(current.Items, returns); err != nil {
			return err
		}

		if err := s.orderRepo.Update(txCtx, current); err != nil {
			return fmt.Errorf("failed to update order: %w", err)
		}
		if err := s.orderRepo.ReplaceItems(txCtx, current.ID, current.Items); err != nil {
			return fmt.Errorf("failed to update order items: %w", err)
		}
		if err := s.ledger.reconcile(txCtx, before, orderDemand(current, returns), model.MovementOrderUpdated, model.RefTypeOrder, current.ID); err != nil {
			return err
		}
		order = current

		return recordAudit(txCtx, s.auditRepo, actor, model.ActionUpdateOrder, current.ID.String(), current.Customer, map[string]interface{}{
			"from_status": fromStatus,
			"request":     req,
		})
	})
	if err != nil {
		return OrderResponse{}, err
	}

	s.notifier.Notify(ctx, notification.EventOrderUpdated, orderEventData(order))
	return toOrderResponse(order), nil
}

// DeleteOrder removes an order and credits its hold back. Orders with returns
// are kept so the returns stay attached.
func (s *orderService) DeleteOrder(ctx context.Context, actor, id string) error {
	orderID, err := parseID("order", id)
	if err != nil {
		return err
	}

	var order *model.Order
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		current, err := s.orderRepo.FindByIDForUpdate(txCtx, orderID)
		if err != nil {
			return lookupErr("order", err)
		}
		returns, err := s.returnRepo.ListByOrder(txCtx, current.ID)
		if err != nil {
			return fmt.Errorf("failed to load order returns: %w", err)
		}
		if len(returns) > 0 {
			return fmt.Errorf("%w: order %s has %d return(s), delete them first", ErrConflict, current.DisplayID(), len(returns))
		}
		if err := s.ledger.reconcile(txCtx, orderDemand(current, nil), demand{}, model.MovementOrderDeleted, model.RefTypeOrder, current.ID); err != nil {
			return err
		}
		if err := s.orderRepo.Delete(txCtx, orderID); err != nil {
			return fmt.Errorf("failed to delete order: %w", err)
		}
		order = current
		return recordAudit(txCtx, s.auditRepo, actor, model.ActionDeleteOrder, current.ID.String(), current.Customer, map[string]string{
			"displayId": current.DisplayID(),
			"status":    current.Status,
		})
	})
	if err != nil {
		return err
	}

	s.notifier.Notify(ctx, notification.EventOrderDeleted, orderEventData(order))
	return nil
}

func orderEventData(o *model.Order) map[string]string {
	items := make([]string, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, fmt.Sprintf("%s %s × %s", item.Product, item.Color, item.Quantity.String()))
	}
	return map[string]string{
		"id":       o.ID.String(),
		"orderId":  o.DisplayID(),
		"customer": o.Customer,
		"status":   o.Status,
		"items":    strings.Join(items, ", "),
		"total":    o.Total().StringFixed(2),
	}
}
