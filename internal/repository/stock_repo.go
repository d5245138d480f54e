package repository

import (
	"context"

	"github.com/RehanShaikh007/TextileERP-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StockFilter narrows stock listings
type StockFilter struct {
	StockType string
	Status    string
	Page
}

type StockRepository interface {
	Create(ctx context.Context, stock *model.Stock) error
	Update(ctx context.Context, stock *model.Stock) error
	ReplaceVariants(ctx context.Context, stockID uuid.UUID, variants []model.StockVariant) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Stock, error)
	List(ctx context.Context, filter StockFilter) ([]model.Stock, int64, error)
}

type stockRepository struct {
	db *gorm.DB
}

func NewStockRepository(db *gorm.DB) StockRepository {
	return &stockRepository{db: db}
}

func (r *stockRepository) Create(ctx context.Context, stock *model.Stock) error {
	return GetDB(ctx, r.db).Create(stock).Error
}

func (r *stockRepository) Update(ctx context.Context, stock *model.Stock) error {
	return GetDB(ctx, r.db).Omit(clause.Associations).Save(stock).Error
}

// ReplaceVariants keeps rows whose id is sent back, inserts new ones and drops the rest.
func (r *stockRepository) ReplaceVariants(ctx context.Context, stockID uuid.UUID, variants []model.StockVariant) error {
	db := GetDB(ctx, r.db)

	keep := make([]uuid.UUID, 0, len(variants))
	for _, v := range variants {
		if v.ID != uuid.Nil {
			keep = append(keep, v.ID)
		}
	}

	del := db.Where("stock_id = ?", stockID)
	if len(keep) > 0 {
		del = del.Where("id NOT IN ?", keep)
	}
	if err := del.Delete(&model.StockVariant{}).Error; err != nil {
		return err
	}

	for i := range variants {
		variants[i].StockID = stockID
		if err := db.Save(&variants[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *stockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Stock{}).Error
}

func (r *stockRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Stock, error) {
	var stock model.Stock
	if err := GetDB(ctx, r.db).Preload("Variants").First(&stock, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &stock, nil
}

func (r *stockRepository) List(ctx context.Context, filter StockFilter) ([]model.Stock, int64, error) {
	var stocks []model.Stock
	var total int64

	query := GetDB(ctx, r.db).Model(&model.Stock{})
	if filter.StockType != "" {
		query = query.Where("stock_type = ?", filter.StockType)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := filter.Page.apply(query).Preload("Variants").Order("created_at DESC").Find(&stocks).Error; err != nil {
		return nil, 0, err
	}
	return stocks, total, nil
}
