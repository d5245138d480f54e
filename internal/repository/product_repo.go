package repository

import (
	"context"
	"strings"

	"github.com/RehanShaikh007/TextileERP-sub000/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProductFilter narrows product listings
type ProductFilter struct {
	Search   string
	Category string
	Page
}

type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	Update(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]model.Product, int64, error)
	SaveVariant(ctx context.Context, variant *model.ProductVariant) error
	DeleteVariantsExcept(ctx context.Context, productID uuid.UUID, keep []uuid.UUID) error
	FindVariantForUpdate(ctx context.Context, productID uuid.UUID, color string) (*model.ProductVariant, error)
	UpdateVariantStock(ctx context.Context, variantID uuid.UUID, stock decimal.Decimal) error
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	return GetDB(ctx, r.db).Create(product).Error
}

// Update saves product columns only; variants are written through SaveVariant.
func (r *productRepository) Update(ctx context.Context, product *model.Product) error {
	return GetDB(ctx, r.db).Omit(clause.Associations).Save(product).Error
}

func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Product{}).Error
}

func (r *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var product model.Product
	if err := GetDB(ctx, r.db).
		Preload("Variants", func(db *gorm.DB) *gorm.DB { return db.Order("color ASC") }).
		First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) List(ctx context.Context, filter ProductFilter) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	query := GetDB(ctx, r.db).Model(&model.Product{})
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := filter.Page.apply(query).
		Preload("Variants", func(db *gorm.DB) *gorm.DB { return db.Order("color ASC") }).
		Order("created_at desc").
		Find(&products).Error; err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

func (r *productRepository) SaveVariant(ctx context.Context, variant *model.ProductVariant) error {
	return GetDB(ctx, r.db).Save(variant).Error
}

func (r *productRepository) DeleteVariantsExcept(ctx context.Context, productID uuid.UUID, keep []uuid.UUID) error {
	query := GetDB(ctx, r.db).Where("product_id = ?", productID)
	if len(keep) > 0 {
		query = query.Where("id NOT IN ?", keep)
	}
	return query.Delete(&model.ProductVariant{}).Error
}

func (r *productRepository) FindVariantForUpdate(ctx context.Context, productID uuid.UUID, color string) (*model.ProductVariant, error) {
	var variant model.ProductVariant
	if err := GetDB(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("product_id = ? AND LOWER(color) = ?", productID, strings.ToLower(strings.TrimSpace(color))).
		First(&variant).Error; err != nil {
		return nil, err
	}
	return &variant, nil
}

func (r *productRepository) UpdateVariantStock(ctx context.Context, variantID uuid.UUID, stock decimal.Decimal) error {
	return GetDB(ctx, r.db).Model(&model.ProductVariant{}).Where("id = ?", variantID).Update("stock_in_meters", stock).Error
}
