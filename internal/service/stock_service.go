package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/RehanShaikh007/TextileERP-sub000/internal/model"
	"github.com/RehanShaikh007/TextileERP-sub000/internal/notification"
	"github.com/RehanShaikh007/TextileERP-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type StockVariantRequest struct {
	ID       string          `json:"id" binding:"omitempty,uuid"`
	Color    string          `json:"color" binding:"required,max=100"`
	Quantity decimal.Decimal `json:"quantity"`
	Unit     string          `json:"unit" binding:"omitempty,unit"`
}

type StockRequest struct {
	StockType      string                `json:"stockType" binding:"required,oneof='Gray Stock' 'Factory Stock' 'Design Stock'"`
	Status         string                `json:"status" binding:"omitempty,oneof=available low out processing"`
	Variants       []StockVariantRequest `json:"variants" binding:"required,min=1,dive"`
	StockDetails   model.StockDetails    `json:"stockDetails"`
	AdditionalInfo model.AdditionalInfo  `json:"additionalInfo"`
}

type StockQuery struct {
	StockType string
	Status    string
	Page
}

type StockResponse struct {
	model.Stock
	TotalQuantity   decimal.Decimal `json:"totalQuantity"`
	SuggestedStatus string          `json:"suggestedStatus"`
}

func toStockResponse(st *model.Stock) StockResponse {
	total := st.TotalQuantity()
	return StockResponse{Stock: *st, TotalQuantity: total, SuggestedStatus: model.SuggestStockStatus(total)}
}

type StockService interface {
	ListStock(ctx context.Context, q StockQuery) ([]StockResponse, int64, error)
	GetStock(ctx context.Context, id string) (StockResponse, error)
	CreateStock(ctx context.Context, actor string, req StockRequest) (StockResponse, error)
	UpdateStock(ctx context.Context, actor, id string, req StockRequest) (StockResponse, error)
	DeleteStock(ctx context.Context, actor, id string) error
}

type stockService struct {
	stockRepo repository.StockRepository
	auditRepo repository.AuditRepository
	txManager repository.TransactionManager
	notifier  notification.Notifier
}

func NewStockService(
	stockRepo repository.StockRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	notifier notification.Notifier,
) StockService {
	return &stockService{
		stockRepo: stockRepo,
		auditRepo: auditRepo,
		txManager: txManager,
		notifier:  notifier,
	}
}

func (s *stockService) ListStock(ctx context.Context, q StockQuery) ([]StockResponse, int64, error) {
	stocks, total, err := s.stockRepo.List(ctx, repository.StockFilter{
		StockType: q.StockType,
		Status:    q.Status,
		Page:      repository.Page(q.Page.normalize()),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list stock: %w", err)
	}

	res := make([]StockResponse, 0, len(stocks))
	for i := range stocks {
		res = append(res, toStockResponse(&stocks[i]))
	}
	return res, total, nil
}

func (s *stockService) GetStock(ctx context.Context, id string) (StockResponse, error) {
	stockID, err := parseID("stock", id)
	if err != nil {
		return StockResponse{}, err
	}
	st, err := s.stockRepo.FindByID(ctx, stockID)
	if err != nil {
		return StockResponse{}, lookupErr("stock", err)
	}
	return toStockResponse(st), nil
}

// buildStock validates the request and copies it onto st. Variants sent back
// with one of st's ids keep it. A missing status takes the suggestion derived
// from the total quantity.
func buildStock(st *model.Stock, req StockRequest) error {
	if !model.IsValidStockType(req.StockType) {
		return invalidf("unknown stockType %q", req.StockType)
	}
	if !req.StockDetails.Matches(req.StockType) {
		return invalidf("stockDetails must describe exactly the %s", req.StockType)
	}
	if strings.TrimSpace(req.StockDetails.ProductName()) == "" {
		return invalidf("stockDetails product is required")
	}

	existing := make(map[uuid.UUID]bool, len(st.Variants))
	for _, v := range st.Variants {
		existing[v.ID] = true
	}

	variants := make([]model.StockVariant, 0, len(req.Variants))
	for _, v := range req.Variants {
		if v.Quantity.IsNegative() {
			return invalidf("quantity of %q must not be negative", v.Color)
		}
		variant := model.StockVariant{
			Color:    strings.TrimSpace(v.Color),
			Quantity: v.Quantity,
			Unit:     unitOrDefault(v.Unit),
		}
		if id, err := uuid.Parse(v.ID); err == nil && existing[id] {
			variant.ID = id
			delete(existing, id)
		}
		variants = append(variants, variant)
	}

	st.StockType = req.StockType
	st.Variants = variants
	st.Details = req.StockDetails
	st.AdditionalInfo = req.AdditionalInfo
	st.Status = req.Status
	if st.Status == "" {
		st.Status = model.SuggestStockStatus(model.StockTotal(variants))
	}
	return nil
}

func (s *stockService) CreateStock(ctx context.Context, actor string, req StockRequest) (StockResponse, error) {
	var st model.Stock
	if err := buildStock(&st, req); err != nil {
		return StockResponse{}, err
	}

	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.stockRepo.Create(txCtx, &st); err != nil {
			return fmt.Errorf("failed to create stock: %w", err)
		}
		return recordAudit(txCtx, s.auditRepo, actor, model.ActionCreateStock, st.ID.String(), st.Details.ProductName(), req)
	})
	if err != nil {
		return StockResponse{}, err
	}

	s.notifier.Notify(ctx, notification.EventStockCreated, stockEventData(&st))
	return toStockResponse(&st), nil
}

func (s *stockService) UpdateStock(ctx context.Context, actor, id string, req StockRequest) (StockResponse, error) {
	stockID, err := parseID("stock", id)
	if err != nil {
		return StockResponse{}, err
	}

	var st *model.Stock
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		current, err := s.stockRepo.FindByID(txCtx, stockID)
		if err != nil {
			return lookupErr("stock", err)
		}
		if err := buildStock(current, req); err != nil {
			return err
		}
		if err := s.stockRepo.Update(txCtx, current); err != nil {
			return fmt.Errorf("failed to update stock: %w", err)
		}
		if err := s.stockRepo.ReplaceVariants(txCtx, current.ID, current.Variants); err != nil {
			return fmt.Errorf("failed to update stock variants: %w", err)
		}
		st = current
		return recordAudit(txCtx, s.auditRepo, actor, model.ActionUpdateStock, current.ID.String(), current.Details.ProductName(), req)
	})
	if err != nil {
		return StockResponse{}, err
	}

	s.notifier.Notify(ctx, notification.EventStockUpdated, stockEventData(st))
	return toStockResponse(st), nil
}

func (s *stockService) DeleteStock(ctx context.Context, actor, id string) error {
	stockID, err := parseID("stock", id)
	if err != nil {
		return err
	}

	var st *model.Stock
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		current, err := s.stockRepo.FindByID(txCtx, stockID)
		if err != nil {
			return lookupErr("stock", err)
		}
		if err := s.stockRepo.Delete(txCtx, stockID); err != nil {
			return fmt.Errorf("failed to delete stock: %w", err)
		}
		st = current
		return recordAudit(txCtx, s.auditRepo, actor, model.ActionDeleteStock, current.ID.String(), current.Details.ProductName(), map[string]bool{"deleted": true})
	})
	if err != nil {
		return err
	}

	s.notifier.Notify(ctx, notification.EventStockDeleted, stockEventData(st))
	return nil
}

func stockEventData(st *model.Stock) map[string]string {
	return map[string]string{
		"id":        st.ID.String(),
		"stockType": st.StockType,
		"product":   st.Details.ProductName(),
		"quantity":  st.TotalQuantity().String(),
		"status":    st.Status,
	}
}
