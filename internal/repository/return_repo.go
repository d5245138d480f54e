package repository

import (
	"context"

	"github.com/RehanShaikh007/TextileERP-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReturnFilter narrows return listings; Status is pending, approved or rejected.
type ReturnFilter struct {
	Status  string
	OrderID *uuid.UUID
	Page
}

type ReturnRepository interface {
	Create(ctx context.Context, ret *model.Return) error
	Update(ctx context.Context, ret *model.Return) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Return, error)
	List(ctx context.Context, filter ReturnFilter) ([]model.Return, int64, error)
	ListByOrder(ctx context.Context, orderID uuid.UUID) ([]model.Return, error)
}

type returnRepository struct {
	db *gorm.DB
}

func NewReturnRepository(db *gorm.DB) ReturnRepository {
	return &returnRepository{db: db}
}

func (r *returnRepository) Create(ctx context.Context, ret *model.Return) error {
	return GetDB(ctx, r.db).Create(ret).Error
}

func (r *returnRepository) Update(ctx context.Context, ret *model.Return) error {
	return GetDB(ctx, r.db).Save(ret).Error
}

func (r *returnRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Return{}).Error
}

func (r *returnRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Return, error) {
	var ret model.Return
	if err := GetDB(ctx, r.db).First(&ret, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &ret, nil
}

func (r *returnRepository) List(ctx context.Context, filter ReturnFilter) ([]model.Return, int64, error) {
	var returns []model.Return
	var total int64

	query := GetDB(ctx, r.db).Model(&model.Return{})
	switch filter.Status {
	case model.ReturnStatusApproved:
		query = query.Where("is_approve = ?", true)
	case model.ReturnStatusRejected:
		query = query.Where("is_rejected = ?", true)
	case model.ReturnStatusPending:
		query = query.Where("is_approve = ? AND is_rejected = ?", false, false)
	}
	if filter.OrderID != nil {
		query = query.Where("order_id = ?", *filter.OrderID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := filter.Page.apply(query).Order("created_at DESC").Find(&returns).Error; err != nil {
		return nil, 0, err
	}
	return returns, total, nil
}

// ListByOrder returns every return filed against an order, oldest first.
func (r *returnRepository) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]model.Return, error) {
	var returns []model.Return
	if err := GetDB(ctx, r.db).Where("order_id = ?", orderID).Order("seq ASC").Find(&returns).Error; err != nil {
		return nil, err
	}
	return returns, nil
}
