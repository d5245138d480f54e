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

// DTOs
type ProductVariantRequest struct {
	Color          string          `json:"color" binding:"required,max=100"`
	PricePerMeters decimal.Decimal `json:"pricePerMeters"`
	StockInMeters  decimal.Decimal `json:"stockInMeters"`
}

type ProductRequest struct {
	Name     string                  `json:"name" binding:"required,max=255"`
	Category string                  `json:"category" binding:"max=100"`
	Tags     []string                `json:"tags"`
	Unit     string                  `json:"unit" binding:"omitempty,unit"`
	Variants []ProductVariantRequest `json:"variants" binding:"required,min=1,dive"`
}

type ProductQuery struct {
	Search   string
	Category string
	Page
}

type ProductResponse struct {
	model.Product
	TotalStock  decimal.Decimal `json:"totalStock"`
	StockStatus string          `json:"stockStatus"`
}

func toProductResponse(p *model.Product) ProductResponse {
	total := decimal.Zero
	for _, v := range p.Variants {
		total = total.Add(v.StockInMeters)
	}
	if p.Tags == nil {
		p.Tags = model.StringList{}
	}
	return ProductResponse{
		Product:     *p,
		TotalStock:  total,
		StockStatus: model.SuggestStockStatus(total),
	}
}

type ProductService interface {
	ListProducts(ctx context.Context, q ProductQuery) ([]ProductResponse, int64, error)
	GetProduct(ctx context.Context, id string) (ProductResponse, error)
	CreateProduct(ctx context.Context, actor string, req ProductRequest) (ProductResponse, error)
	UpdateProduct(ctx context.Context, actor, id string, req ProductRequest) (ProductResponse, error)
	DeleteProduct(ctx context.Context, actor, id string) error
	ListMovements(ctx context.Context, id string, page Page) ([]model.StockMovement, int64, error)
}

type productService struct {
	productRepo  repository.ProductRepository
	orderRepo    repository.OrderRepository
	movementRepo repository.StockMovementRepository
	auditRepo    repository.AuditRepository
	txManager    repository.TransactionManager
	ledger       stockLedger
	notifier     notification.Notifier
}

func NewProductService(
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	movementRepo repository.StockMovementRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	notifier notification.Notifier,
) ProductService {
	return &productService{
		productRepo:  productRepo,
		orderRepo:    orderRepo,
		movementRepo: movementRepo,
		auditRepo:    auditRepo,
		txManager:    txManager,
		ledger:       stockLedger{productRepo: productRepo, movementRepo: movementRepo},
		notifier:     notifier,
	}
}

func (s *productService) ListProducts(ctx context.Context, q ProductQuery) ([]ProductResponse, int64, error) {
	page := q.Page.normalize()
	products, total, err := s.productRepo.List(ctx, repository.ProductFilter{
		Search:   strings.TrimSpace(q.Search),
		Category: q.Category,
		Page:     repository.Page(page),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}

	res := make([]ProductResponse, 0, len(products))
	for i := range products {
		res = append(res, toProductResponse(&products[i]))
	}
	return res, total, nil
}

func (s *productService) GetProduct(ctx context.Context, id string) (ProductResponse, error) {
	productID, err := parseID("product", id)
	if err != nil {
		return ProductResponse{}, err
	}
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return ProductResponse{}, lookupErr("product", err)
	}
	return toProductResponse(product), nil
}

func validateVariants(variants []ProductVariantRequest) error {
	seen := make(map[string]bool, len(variants))
	for _, v := range variants {
		color := strings.ToLower(strings.TrimSpace(v.Color))
		if color == "" {
			return invalidf("variant color is required")
		}
		if seen[color] {
			return invalidf("duplicate variant color %q", v.Color)
		}
		seen[color] = true
		if v.PricePerMeters.IsNegative() {
			return invalidf("price of %q must not be negative", v.Color)
		}
		if v.StockInMeters.IsNegative() {
			return invalidf("stock of %q must not be negative", v.Color)
		}
	}
	return nil
}

func (s *productService) CreateProduct(ctx context.Context, actor string, req ProductRequest) (ProductResponse, error) {
	if err := validateVariants(req.Variants); err != nil {
		return ProductResponse{}, err
	}

	product := model.Product{
		Name:     strings.TrimSpace(req.Name),
		Category: strings.TrimSpace(req.Category),
		Tags:     model.StringList(req.Tags),
		Unit:     unitOrDefault(req.Unit),
	}
	for _, v := range req.Variants {
		product.Variants = append(product.Variants, model.ProductVariant{
			Color:          strings.TrimSpace(v.Color),
			PricePerMeters: v.PricePerMeters,
			StockInMeters:  v.StockInMeters,
		})
	}

	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.productRepo.Create(txCtx, &product); err != nil {
			return fmt.Errorf("failed to create product: %w", err)
		}
		return recordAudit(txCtx, s.auditRepo, actor, model.ActionCreateProduct, product.ID.String(), product.Name, req)
	})
	if err != nil {
		return ProductResponse{}, err
	}

	s.notifier.Notify(ctx, notification.EventProductCreated, productEventData(&product))
	return toProductResponse(&product), nil
}

// UpdateProduct replaces the product fields. Variants are matched by color:
// matching rows keep their id, new colors are added, missing ones removed.
// A changed stockInMeters on an existing color is booked as a ledger
// adjustment against the locked balance.
func (s *productService) UpdateProduct(ctx context.Context, actor, id string, req ProductRequest) (ProductResponse, error) {
	productID, err := parseID("product", id)
	if err != nil {
		return ProductResponse{}, err
	}
	if err := validateVariants(req.Variants); err != nil {
		return ProductResponse{}, err
	}

	var product *model.Product
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		current, err := s.productRepo.FindByID(txCtx, productID)
		if err != nil {
			return lookupErr("product", err)
		}

		requested := make(map[string]bool, len(req.Variants))
		for _, v := range req.Variants {
			requested[strings.ToLower(strings.TrimSpace(v.Color))] = true
		}
		existing := make(map[string]model.ProductVariant, len(current.Variants))
		for _, v := range current.Variants {
			existing[strings.ToLower(v.Color)] = v
			if requested[strings.ToLower(v.Color)] {
				continue
			}
			open, err := s.orderRepo.CountOpenItems(txCtx, current.ID, v.Color)
			if err != nil {
				return fmt.Errorf("failed to check orders of %s: %w", v.Color, err)
			}
			if open > 0 {
				return fmt.Errorf("%w: color %s is on %d open order item(s)", ErrConflict, v.Color, open)
			}
		}

		current.Name = strings.TrimSpace(req.Name)
		current.Category = strings.TrimSpace(req.Category)
		current.Tags = model.StringList(req.Tags)
		current.Unit = unitOrDefault(req.Unit)
		if err := s.productRepo.Update(txCtx, current); err != nil {
			return fmt.Errorf("failed to update product: %w", err)
		}

		keep := make([]uuid.UUID, 0, len(req.Variants))
		variants := make([]model.ProductVariant, 0, len(req.Variants))
		for _, v := range req.Variants {
			color := strings.TrimSpace(v.Color)
			old, ok := existing[strings.ToLower(color)]
			if !ok {
				variant := model.ProductVariant{
					ProductID:      current.ID,
					Color:          color,
					PricePerMeters: v.PricePerMeters,
					StockInMeters:  v.StockInMeters,
				}
				if err := s.productRepo.SaveVariant(txCtx, &variant); err != nil {
					return fmt.Errorf("failed to save variant %s: %w", color, err)
				}
				keep = append(keep, variant.ID)
				variants = append(variants, variant)
				continue
			}

			variant, err := s.productRepo.FindVariantForUpdate(txCtx, current.ID, old.Color)
			if err != nil {
				return fmt.Errorf("failed to lock variant %s: %w", color, err)
			}
			variant.Color = color
			variant.PricePerMeters = v.PricePerMeters
			if err := s.productRepo.SaveVariant(txCtx, variant); err != nil {
				return fmt.Errorf("failed to save variant %s: %w", color, err)
			}
			delta := v.StockInMeters.Sub(variant.StockInMeters)
			if err := s.ledger.apply(txCtx, current.ID, color, delta, model.MovementAdjustment, model.RefTypeProduct, current.ID); err != nil {
				return err
			}
			variant.StockInMeters = v.StockInMeters
			keep = append(keep, variant.ID)
			variants = append(variants, *variant)
		}
		if err := s.productRepo.DeleteVariantsExcept(txCtx, current.ID, keep); err != nil {
			return fmt.Errorf("failed to remove variants: %w", err)
		}
		current.Variants = variants
		product = current

		return recordAudit(txCtx, s.auditRepo, actor, model.ActionUpdateProduct, current.ID.String(), current.Name, req)
	})
	if err != nil {
		return ProductResponse{}, err
	}

	s.notifier.Notify(ctx, notification.EventProductUpdated, productEventData(product))
	return toProductResponse(product), nil
}

func (s *productService) DeleteProduct(ctx context.Context, actor, id string) error {
	productID, err := parseID("product", id)
	if err != nil {
		return err
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return lookupErr("product", err)
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.productRepo.Delete(txCtx, productID); err != nil {
			return fmt.Errorf("failed to delete product: %w", err)
		}
		return recordAudit(txCtx, s.auditRepo, actor, model.ActionDeleteProduct, product.ID.String(), product.Name, map[string]bool{"deleted": true})
	})
	if err != nil {
		return err
	}

	s.notifier.Notify(ctx, notification.EventProductDeleted, productEventData(product))
	return nil
}

func (s *productService) ListMovements(ctx context.Context, id string, page Page) ([]model.StockMovement, int64, error) {
	productID, err := parseID("product", id)
	if err != nil {
		return nil, 0, err
	}
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return nil, 0, lookupErr("product", err)
	}
	return s.movementRepo.ListByProduct(ctx, productID, repository.Page(page.normalize()))
}

func unitOrDefault(unit string) string {
	if unit == "" {
		return model.UnitMeters
	}
	return unit
}

func productEventData(p *model.Product) map[string]string {
	colors := make([]string, 0, len(p.Variants))
	for _, v := range p.Variants {
		colors = append(colors, v.Color)
	}
	return map[string]string{
		"id":       p.ID.String(),
		"name":     p.Name,
		"category": p.Category,
		"colors":   strings.Join(colors, ", "),
	}
}
