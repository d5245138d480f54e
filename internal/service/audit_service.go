package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/RehanShaikh007/TextileERP-sub000/internal/logger"
	"github.com/RehanShaikh007/TextileERP-sub000/internal/model"
	"github.com/RehanShaikh007/TextileERP-sub000/internal/repository"

	"github.com/sirupsen/logrus"
)

type AuditQuery struct {
	Action   string
	EntityID string
	Page
}

type AuditService interface {
	GetAuditLogs(ctx context.Context, q AuditQuery) ([]model.AuditLog, int64, error)
}

type auditService struct {
	auditRepo repository.AuditRepository
}

// NewAuditService creates a new AuditService instance
func NewAuditService(auditRepo repository.AuditRepository) AuditService {
	return &auditService{auditRepo: auditRepo}
}

func (s *auditService) GetAuditLogs(ctx context.Context, q AuditQuery) ([]model.AuditLog, int64, error) {
	page := q.Page.normalize()
	return s.auditRepo.List(ctx, repository.AuditFilter{
		Action:   q.Action,
		EntityID: q.EntityID,
		Page:     repository.Page(page),
	})
}

// recordAudit writes the audit row inside the caller's transaction and
// mirrors it to the audit log stream.
func recordAudit(ctx context.Context, repo repository.AuditRepository, actor, action, entityID, entityName string, details any) error {
	payload, _ := json.Marshal(details)
	entry := &model.AuditLog{
		Actor:      actor,
		Action:     action,
		EntityID:   entityID,
		EntityName: entityName,
		Details:    string(payload),
	}
	if err := repo.Log(ctx, entry); err != nil {
		return fmt.Errorf("failed to write audit log: %w", err)
	}

	logger.Audit().WithFields(logrus.Fields{
		"actor":     actor,
		"action":    action,
		"entity_id": entityID,
	}).Info(entityName)
	return nil
}
