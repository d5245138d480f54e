package repository

import (
	"context"

	"github.com/RehanShaikh007/TextileERP-sub000/internal/model"

	"gorm.io/gorm"
)

// BusinessRepository stores the single business profile row
type BusinessRepository interface {
	Get(ctx context.Context) (*model.Business, error)
	Create(ctx context.Context, business *model.Business) error
	Update(ctx context.Context, business *model.Business) error
}

type businessRepository struct {
	db *gorm.DB
}

func NewBusinessRepository(db *gorm.DB) BusinessRepository {
	return &businessRepository{db: db}
}

func (r *businessRepository) Get(ctx context.Context) (*model.Business, error) {
	var business model.Business
	if err := GetDB(ctx, r.db).Order("created_at ASC").First(&business).Error; err != nil {
		return nil, err
	}
	return &business, nil
}

func (r *businessRepository) Create(ctx context.Context, business *model.Business) error {
	return GetDB(ctx, r.db).Create(business).Error
}

func (r *businessRepository) Update(ctx context.Context, business *model.Business) error {
	return GetDB(ctx, r.db).Save(business).Error
}
