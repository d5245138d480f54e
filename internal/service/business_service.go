package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/RehanShaikh007/TextileERP-sub000/internal/model"
	"github.com/RehanShaikh007/TextileERP-sub000/internal/repository"

	"gorm.io/gorm"
)

type BusinessRequest struct {
	BusinessName string `json:"businessName" binding:"required,max=255"`
	OwnerName    string `json:"ownerName" binding:"max=255"`
	Email        string `json:"email" binding:"omitempty,email"`
	Phone        string `json:"phone" binding:"omitempty,phone"`
	Address      string `json:"address"`
	City         string `json:"city" binding:"max=100"`
	State        string `json:"state" binding:"max=100"`
	Pincode      string `json:"pincode" binding:"omitempty,numeric,len=6"`
	GSTNumber    string `json:"gstNumber" binding:"omitempty,alphanum,len=15"`
	Website      string `json:"website" binding:"omitempty,url"`
}

type BusinessService interface {
	GetBusiness(ctx context.Context) (*model.Business, error)
	CreateBusiness(ctx context.Context, actor string, req BusinessRequest) (*model.Business, error)
	UpdateBusiness(ctx context.Context, actor string, req BusinessRequest) (*model.Business, error)
}

type businessService struct {
	businessRepo repository.BusinessRepository
	auditRepo    repository.AuditRepository
	txManager    repository.TransactionManager
}

func NewBusinessService(businessRepo repository.BusinessRepository, auditRepo repository.AuditRepository, txManager repository.TransactionManager) BusinessService {
	return &businessService{businessRepo: businessRepo, auditRepo: auditRepo, txManager: txManager}
}

func (s *businessService) GetBusiness(ctx context.Context) (*model.Business, error) {
	b, err := s.businessRepo.Get(ctx)
	if err != nil {
		return nil, lookupErr("business profile", err)
	}
	return b, nil
}

func applyBusiness(b *model.Business, req BusinessRequest) {
	b.BusinessName = strings.TrimSpace(req.BusinessName)
	b.OwnerName = strings.TrimSpace(req.OwnerName)
	b.Email = strings.TrimSpace(req.Email)
	b.Phone = strings.TrimSpace(req.Phone)
	b.Address = req.Address
	b.City = strings.TrimSpace(req.City)
	b.State = strings.TrimSpace(req.State)
	b.Pincode = strings.TrimSpace(req.Pincode)
	b.GSTNumber = strings.ToUpper(strings.TrimSpace(req.GSTNumber))
	b.Website = strings.TrimSpace(req.Website)
}

// CreateBusiness stores the profile; only one may exist.
func (s *businessService) CreateBusiness(ctx context.Context, actor string, req BusinessRequest) (*model.Business, error) {
	var business model.Business
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := s.businessRepo.Get(txCtx); err == nil {
			return fmt.Errorf("%w: business profile already exists", ErrConflict)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to load business profile: %w", err)
		}

		applyBusiness(&business, req)
		if err := s.businessRepo.Create(txCtx, &business); err != nil {
			return fmt.Errorf("failed to create business profile: %w", err)
		}
		return recordAudit(txCtx, s.auditRepo, actor, model.ActionUpdateBusiness, business.ID.String(), business.BusinessName, req)
	})
	if err != nil {
		return nil, err
	}
	return &business, nil
}

func (s *businessService) UpdateBusiness(ctx context.Context, actor string, req BusinessRequest) (*model.Business, error) {
	var business *model.Business
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		current, err := s.businessRepo.Get(txCtx)
		if err != nil {
			return lookupErr("business profile", err)
		}
		applyBusiness(current, req)
		if err := s.businessRepo.Update(txCtx, current); err != nil {
			return fmt.Errorf("failed to update business profile: %w", err)
		}
		business = current
		return recordAudit(txCtx, s.auditRepo, actor, model.ActionUpdateBusiness, current.ID.String(), current.BusinessName, req)
	})
	if err != nil {
		return nil, err
	}
	return business, nil
}
