package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/RehanShaikh007/TextileERP-sub000/internal/model"
	"github.com/RehanShaikh007/TextileERP-sub000/internal/notification"
	"github.com/RehanShaikh007/TextileERP-sub000/internal/repository"

	"gorm.io/gorm"
)

// NotificationSettingsRequest upserts the settings; omitted toggles keep their value.
type NotificationSettingsRequest struct {
	Enabled         *bool    `json:"enabled"`
	Recipients      []string `json:"recipients" binding:"omitempty,max=20,dive,phone"`
	OrderUpdates    *bool    `json:"orderUpdates"`
	ProductUpdates  *bool    `json:"productUpdates"`
	StockUpdates    *bool    `json:"stockUpdates"`
	CustomerUpdates *bool    `json:"customerUpdates"`
	ReturnUpdates   *bool    `json:"returnUpdates"`
}

type TestMessageRequest struct {
	Recipients []string `json:"recipients" binding:"omitempty,max=20,dive,phone"`
}

type MessageQuery struct {
	Status string
	Event  string
	Page
}

// Dispatcher is the part of notification.Dispatcher the settings service drives
type Dispatcher interface {
	UpdateSettings(s notification.Settings)
	SendTest(ctx context.Context, business string, recipients []string) ([]model.WhatsappMessage, error)
}

type NotificationService interface {
	LoadSettings(ctx context.Context) error
	GetSettings(ctx context.Context) (*model.WhatsappNotification, error)
	UpdateSettings(ctx context.Context, actor string, req NotificationSettingsRequest) (*model.WhatsappNotification, error)
	SendTest(ctx context.Context, req TestMessageRequest) ([]model.WhatsappMessage, error)
	ListMessages(ctx context.Context, q MessageQuery) ([]model.WhatsappMessage, int64, error)
	GetMessage(ctx context.Context, id string) (*model.WhatsappMessage, error)
}

type notificationService struct {
	notificationRepo repository.NotificationRepository
	businessRepo     repository.BusinessRepository
	auditRepo        repository.AuditRepository
	txManager        repository.TransactionManager
	dispatcher       Dispatcher
}

func NewNotificationService(
	notificationRepo repository.NotificationRepository,
	businessRepo repository.BusinessRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	dispatcher Dispatcher,
) NotificationService {
	return &notificationService{
		notificationRepo: notificationRepo,
		businessRepo:     businessRepo,
		auditRepo:        auditRepo,
		txManager:        txManager,
		dispatcher:       dispatcher,
	}
}

func defaultSettings() *model.WhatsappNotification {
	return &model.WhatsappNotification{
		Recipients:      model.StringList{},
		OrderUpdates:    true,
		ProductUpdates:  true,
		StockUpdates:    true,
		CustomerUpdates: true,
		ReturnUpdates:   true,
	}
}

// LoadSettings pushes the stored settings into the dispatcher at startup
func (s *notificationService) LoadSettings(ctx context.Context) error {
	settings, err := s.GetSettings(ctx)
	if err != nil {
		return err
	}
	s.dispatcher.UpdateSettings(notification.SettingsFromModel(*settings))
	return nil
}

// GetSettings returns the stored settings, or the defaults when none were saved
func (s *notificationService) GetSettings(ctx context.Context) (*model.WhatsappNotification, error) {
	settings, err := s.notificationRepo.GetSettings(ctx)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return defaultSettings(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load notification settings: %w", err)
	}
	if settings.Recipients == nil {
		settings.Recipients = model.StringList{}
	}
	return settings, nil
}

func (s *notificationService) UpdateSettings(ctx context.Context, actor string, req NotificationSettingsRequest) (*model.WhatsappNotification, error) {
	var settings *model.WhatsappNotification
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		current, err := s.GetSettings(txCtx)
		if err != nil {
			return err
		}

		setBool(&current.Enabled, req.Enabled)
		setBool(&current.OrderUpdates, req.OrderUpdates)
		setBool(&current.ProductUpdates, req.ProductUpdates)
		setBool(&current.StockUpdates, req.StockUpdates)
		setBool(&current.CustomerUpdates, req.CustomerUpdates)
		setBool(&current.ReturnUpdates, req.ReturnUpdates)
		if req.Recipients != nil {
			current.Recipients = normalizeRecipients(req.Recipients)
		}
		if current.Enabled && len(current.Recipients) == 0 {
			return invalidf("at least one recipient is required when notifications are enabled")
		}

		if err := s.notificationRepo.SaveSettings(txCtx, current); err != nil {
			return fmt.Errorf("failed to save notification settings: %w", err)
		}
		settings = current
		return recordAudit(txCtx, s.auditRepo, actor, model.ActionUpdateSettings, current.ID.String(), "whatsapp notifications", req)
	})
	if err != nil {
		return nil, err
	}

	s.dispatcher.UpdateSettings(notification.SettingsFromModel(*settings))
	return settings, nil
}

func (s *notificationService) SendTest(ctx context.Context, req TestMessageRequest) ([]model.WhatsappMessage, error) {
	business := "Textile ERP"
	if b, err := s.businessRepo.Get(ctx); err == nil && b.BusinessName != "" {
		business = b.BusinessName
	}

	msgs, err := s.dispatcher.SendTest(ctx, business, normalizeRecipients(req.Recipients))
	if errors.Is(err, notification.ErrNoRecipients) {
		return nil, invalidf("%s", err.Error())
	}
	return msgs, err
}

func (s *notificationService) ListMessages(ctx context.Context, q MessageQuery) ([]model.WhatsappMessage, int64, error) {
	msgs, total, err := s.notificationRepo.ListMessages(ctx, repository.MessageFilter{
		Status: q.Status,
		Event:  q.Event,
		Page:   repository.Page(q.Page.normalize()),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list whatsapp messages: %w", err)
	}
	return msgs, total, nil
}

func (s *notificationService) GetMessage(ctx context.Context, id string) (*model.WhatsappMessage, error) {
	msgID, err := parseID("message", id)
	if err != nil {
		return nil, err
	}
	msg, err := s.notificationRepo.FindMessage(ctx, msgID)
	if err != nil {
		return nil, lookupErr("message", err)
	}
	return msg, nil
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

// normalizeRecipients trims and de-duplicates numbers, keeping order
func normalizeRecipients(in []string) model.StringList {
	out := model.StringList{}
	seen := make(map[string]bool, len(in))
	for _, r := range in {
		r = strings.TrimSpace(r)
		if r == "" || seen[r] {
			continue
		}
		seen[r] = true
		out = append(out, r)
	}
	return out
}
