package repository

import (
	"context"

	"github.com/RehanShaikh007/TextileERP-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MessageFilter narrows the WhatsApp message log
type MessageFilter struct {
	Status string
	Event  string
	Page
}

type NotificationRepository interface {
	GetSettings(ctx context.Context) (*model.WhatsappNotification, error)
	SaveSettings(ctx context.Context, settings *model.WhatsappNotification) error
	CreateMessage(ctx context.Context, msg *model.WhatsappMessage) error
	FindMessage(ctx context.Context, id uuid.UUID) (*model.WhatsappMessage, error)
	ListMessages(ctx context.Context, filter MessageFilter) ([]model.WhatsappMessage, int64, error)
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) GetSettings(ctx context.Context) (*model.WhatsappNotification, error) {
	var settings model.WhatsappNotification
	if err := GetDB(ctx, r.db).Order("created_at ASC").First(&settings).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *notificationRepository) SaveSettings(ctx context.Context, settings *model.WhatsappNotification) error {
	return GetDB(ctx, r.db).Save(settings).Error
}

func (r *notificationRepository) CreateMessage(ctx context.Context, msg *model.WhatsappMessage) error {
	return GetDB(ctx, r.db).Create(msg).Error
}

func (r *notificationRepository) FindMessage(ctx context.Context, id uuid.UUID) (*model.WhatsappMessage, error) {
	var msg model.WhatsappMessage
	if err := GetDB(ctx, r.db).First(&msg, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &msg, nil
}

func (r *notificationRepository) ListMessages(ctx context.Context, filter MessageFilter) ([]model.WhatsappMessage, int64, error) {
	var messages []model.WhatsappMessage
	var total int64

	query := GetDB(ctx, r.db).Model(&model.WhatsappMessage{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Event != "" {
		query = query.Where("event = ?", filter.Event)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := filter.Page.apply(query).Order("created_at DESC").Find(&messages).Error; err != nil {
		return nil, 0, err
	}
	return messages, total, nil
}
