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

type ReturnRequest struct {
	OrderID          string          `json:"orderId" binding:"required,uuid"`
	Product          string          `json:"product" binding:"required,max=255"`
	Color            string          `json:"color" binding:"required,max=100"`
	QuantityInMeters decimal.Decimal `json:"quantityInMeters"`
	ReturnReason     string          `json:"returnReason" binding:"required"`
}

// ReturnUpdateRequest changes the reason or records the decision. Omitted
// fields keep their value.
type ReturnUpdateRequest struct {
	ReturnReason *string `json:"returnReason"`
	IsApprove    *bool   `json:"isApprove"`
	IsRejected   *bool   `json:"isRejected"`
}

type ReturnQuery struct {
	Status  string
	OrderID string
	Page
}

type ReturnResponse struct {
	model.Return
	Code         string `json:"displayId"`
	ReturnStatus string `json:"status"`
}

func toReturnResponse(r *model.Return) ReturnResponse {
	return ReturnResponse{Return: *r, Code: r.DisplayID(), ReturnStatus: r.Status()}
}

type ReturnService interface {
	ListReturns(ctx context.Context, q ReturnQuery) ([]ReturnResponse, int64, error)
	GetReturn(ctx context.Context, id string) (ReturnResponse, error)
	CreateReturn(ctx context.Context, actor string, req ReturnRequest) (ReturnResponse, error)
	UpdateReturn(ctx context.Context, actor, id string, req ReturnUpdateRequest) (ReturnResponse, error)
	DeleteReturn(ctx context.Context, actor, id string) error
}

type returnService struct {
	returnRepo repository.ReturnRepository
	orderRepo  repository.OrderRepository
	auditRepo  repository.AuditRepository
	txManager  repository.TransactionManager
	ledger     stockLedger
	notifier   notification.Notifier
}

func NewReturnService(
	returnRepo repository.ReturnRepository,
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	notifier notification.Notifier,
) ReturnService {
	return &returnService{
		returnRepo: returnRepo,
		orderRepo:  orderRepo,
		auditRepo:  auditRepo,
		txManager:  txManager,
		ledger:     stockLedger{productRepo: productRepo, movementRepo: movementRepo},
		notifier:   notifier,
	}
}

func (s *returnService) ListReturns(ctx context.Context, q ReturnQuery) ([]ReturnResponse, int64, error) {
	filter := repository.ReturnFilter{
		Status: q.Status,
		Page:   repository.Page(q.Page.normalize()),
	}
	if q.OrderID != "" {
		orderID, err := parseID("order", q.OrderID)
		if err != nil {
			return nil, 0, err
		}
		filter.OrderID = &orderID
	}

	returns, total, err := s.returnRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list returns: %w", err)
	}

	res := make([]ReturnResponse, 0, len(returns))
	for i := range returns {
		res = append(res, toReturnResponse(&returns[i]))
	}
	return res, total, nil
}

func (s *returnService) GetReturn(ctx context.Context, id string) (ReturnResponse, error) {
	returnID, err := parseID("return", id)
	if err != nil {
		return ReturnResponse{}, err
	}
	ret, err := s.returnRepo.FindByID(ctx, returnID)
	if err != nil {
		return ReturnResponse{}, lookupErr("return", err)
	}
	return toReturnResponse(ret), nil
}

// CreateReturn prices the return from the matching order item. A matched
// color also caps the quantity at what the order holds of it after earlier
// returns, summed over every line of that color.
func (s *returnService) CreateReturn(ctx context.Context, actor string, req ReturnRequest) (ReturnResponse, error) {
	if !req.QuantityInMeters.IsPositive() {
		return ReturnResponse{}, invalidf("quantityInMeters must be greater than zero")
	}
	orderID, err := parseID("order", req.OrderID)
	if err != nil {
		return ReturnResponse{}, err
	}

	var ret model.Return
	var orderCode string
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		order, err := s.orderRepo.FindByIDForUpdate(txCtx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return invalidf("order %s does not exist", req.OrderID)
			}
			return fmt.Errorf("failed to load order: %w", err)
		}
		if order.Status == model.OrderStatusCancelled {
			return fmt.Errorf("%w: order %s is cancelled", ErrConflict, order.DisplayID())
		}

		orderCode = order.DisplayID()

		refund, rate, matched := model.RefundAmount(order.Items, req.Product, req.Color, req.QuantityInMeters)
		ret = model.Return{
			OrderID:          order.ID,
			Customer:         order.Customer,
			Product:          strings.TrimSpace(req.Product),
			Color:            strings.TrimSpace(req.Color),
			QuantityInMeters: req.QuantityInMeters,
			PricePerMeters:   rate,
			RefundAmount:     refund,
			ReturnReason:     strings.TrimSpace(req.ReturnReason),
		}

		if matched {
			item, _ := model.MatchOrderItem(order.Items, req.Product, req.Color)
			earlier, err := s.returnRepo.ListByOrder(txCtx, order.ID)
			if err != nil {
				return fmt.Errorf("failed to load earlier returns: %w", err)
			}
			k := keyOf(item.ProductID, item.Color)
			remaining := orderedQuantity(order.Items)[k].Sub(returnedQuantity(earlier)[k])
			if req.QuantityInMeters.GreaterThan(remaining) {
				return invalidf("only %s of %s %s left to return", remaining.String(), item.Product, item.Color)
			}
			productID := item.ProductID
			ret.ProductID = &productID
			ret.Product = item.Product
			ret.Color = item.Color
		}

		if err := s.returnRepo.Create(txCtx, &ret); err != nil {
			return fmt.Errorf("failed to create return: %w", err)
		}
		return recordAudit(txCtx, s.auditRepo, actor, model.ActionCreateReturn, ret.ID.String(), ret.DisplayID(), req)
	})
	if err != nil {
		return ReturnResponse{}, err
	}

	s.notifier.Notify(ctx, notification.EventReturnCreated, returnEventData(&ret, orderCode))
	return toReturnResponse(&ret), nil
}

// UpdateReturn approves or rejects once; the decision is final. Approval
// releases the returned quantity from the order's hold back into stock.
func (s *returnService) UpdateReturn(ctx context.Context, actor, id string, req ReturnUpdateRequest) (ReturnResponse, error) {
	returnID, err := parseID("return", id)
	if err != nil {
		return ReturnResponse{}, err
	}

	var ret *model.Return
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		current, err := s.returnRepo.FindByID(txCtx, returnID)
		if err != nil {
			return lookupErr("return", err)
		}

		approve, reject := current.IsApprove, current.IsRejected
		if req.IsApprove != nil {
			approve = *req.IsApprove
		}
		if req.IsRejected != nil {
			reject = *req.IsRejected
		}
		if approve && reject {
			return invalidf("a return cannot be both approved and rejected")
		}
		decided := current.IsApprove || current.IsRejected
		if decided && (approve != current.IsApprove || reject != current.IsRejected) {
			return fmt.Errorf("%w: return %s is already %s", ErrConflict, current.DisplayID(), current.Status())
		}

		action := model.ActionUpdateReturn
		if !decided && (approve || reject) {
			now := time.Now()
			current.DecidedAt = &now
			current.IsApprove, current.IsRejected = approve, reject
			action = model.ActionRejectReturn
			if approve {
				action = model.ActionApproveReturn
				if err := s.approve(txCtx, current); err != nil {
					return err
				}
			}
		}
		if req.ReturnReason != nil {
			reason := strings.TrimSpace(*req.ReturnReason)
			if reason == "" {
				return invalidf("returnReason must not be empty")
			}
			current.ReturnReason = reason
		}

		if err := s.returnRepo.Update(txCtx, current); err != nil {
			return fmt.Errorf("failed to update return: %w", err)
		}
		ret = current
		return recordAudit(txCtx, s.auditRepo, actor, action, current.ID.String(), current.DisplayID(), req)
	})
	if err != nil {
		return ReturnResponse{}, err
	}

	s.notifier.Notify(ctx, notification.EventReturnUpdated, returnEventData(ret, ""))
	return toReturnResponse(ret), nil
}

// DeleteReturn removes the return; an approved one goes back into the order's
// hold, taking its stock credit back.
func (s *returnService) DeleteReturn(ctx context.Context, actor, id string) error {
	returnID, err := parseID("return", id)
	if err != nil {
		return err
	}

	var ret *model.Return
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		current, err := s.returnRepo.FindByID(txCtx, returnID)
		if err != nil {
			return lookupErr("return", err)
		}
		if current.IsApprove && current.ProductID != nil {
			if err := s.release(txCtx, current); err != nil {
				return err
			}
		}
		if err := s.returnRepo.Delete(txCtx, returnID); err != nil {
			return fmt.Errorf("failed to delete return: %w", err)
		}
		ret = current
		return recordAudit(txCtx, s.auditRepo, actor, model.ActionDeleteReturn, current.ID.String(), current.DisplayID(), map[string]string{
			"status": current.Status(),
		})
	})
	if err != nil {
		return err
	}

	s.notifier.Notify(ctx, notification.EventReturnDeleted, returnEventData(ret, ""))
	return nil
}

// approve credits stock by what the approved ret takes off the order's hold
func (s *returnService) approve(ctx context.Context, ret *model.Return) error {
	if ret.ProductID == nil {
		return nil
	}
	order, err := s.orderRepo.FindByIDForUpdate(ctx, ret.OrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: order of return %s no longer exists", ErrConflict, ret.DisplayID())
		}
		return fmt.Errorf("failed to load order: %w", err)
	}
	if order.Status == model.OrderStatusCancelled {
		return fmt.Errorf("%w: order %s is cancelled", ErrConflict, order.DisplayID())
	}
	returns, err := s.returnRepo.ListByOrder(ctx, order.ID)
	if err != nil {
		return fmt.Errorf("failed to load order returns: %w", err)
	}
	return s.ledger.reconcile(ctx, orderDemand(order, returns), orderDemand(order, replaceReturn(returns, *ret)),
		model.MovementReturnApproved, model.RefTypeReturn, ret.ID)
}

// release takes an approved return out of the order's books. A deleted order
// holds nothing, so there is nothing to move.
func (s *returnService) release(ctx context.Context, ret *model.Return) error {
	order, err := s.orderRepo.FindByIDForUpdate(ctx, ret.OrderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load order: %w", err)
	}
	returns, err := s.returnRepo.ListByOrder(ctx, order.ID)
	if err != nil {
		return fmt.Errorf("failed to load order returns: %w", err)
	}
	return s.ledger.reconcile(ctx, orderDemand(order, returns), orderDemand(order, dropReturn(returns, ret.ID)),
		model.MovementReturnDeleted, model.RefTypeReturn, ret.ID)
}

func replaceReturn(returns []model.Return, ret model.Return) []model.Return {
	return append(dropReturn(returns, ret.ID), ret)
}

func dropReturn(returns []model.Return, id uuid.UUID) []model.Return {
	out := make([]model.Return, 0, len(returns))
	for _, r := range returns {
		if r.ID != id {
			out = append(out, r)
		}
	}
	return out
}

func returnEventData(r *model.Return, orderCode string) map[string]string {
	return map[string]string{
		"id":       r.ID.String(),
		"returnId": r.DisplayID(),
		"customer": r.Customer,
		"product":  r.Product,
		"color":    r.Color,
		"quantity": r.QuantityInMeters.String(),
		"refund":   r.RefundAmount.StringFixed(2),
		"status":   r.Status(),
		"orderId":  orderCode,
	}
}
