package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/RehanShaikh007/TextileERP-sub000/internal/model"
	"github.com/RehanShaikh007/TextileERP-sub000/internal/notification"
	"github.com/RehanShaikh007/TextileERP-sub000/internal/repository"

	"github.com/shopspring/decimal"
)

type CustomerRequest struct {
	Name        string          `json:"name" binding:"required,max=255"`
	Type        string          `json:"type" binding:"required,oneof=Wholesale Retail"`
	Email       string          `json:"email" binding:"omitempty,email"`
	Phone       string          `json:"phone" binding:"omitempty,phone"`
	City        string          `json:"city" binding:"max=100"`
	CreditLimit decimal.Decimal `json:"creditLimit"`
	Address     string          `json:"address"`
}

type CustomerQuery struct {
	Type   string
	Search string
	Page
}

type CustomerService interface {
	ListCustomers(ctx context.Context, q CustomerQuery) ([]model.Customer, int64, error)
	GetCustomer(ctx context.Context, id string) (*model.Customer, error)
	CreateCustomer(ctx context.Context, actor string, req CustomerRequest) (*model.Customer, error)
	UpdateCustomer(ctx context.Context, actor, id string, req CustomerRequest) (*model.Customer, error)
	DeleteCustomer(ctx context.Context, actor, id string) error
}

type customerService struct {
	customerRepo repository.CustomerRepository
	auditRepo    repository.AuditRepository
	txManager    repository.TransactionManager
	notifier     notification.Notifier
}

func NewCustomerService(
	customerRepo repository.CustomerRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	notifier notification.Notifier,
) CustomerService {
	return &customerService{
		customerRepo: customerRepo,
		auditRepo:    auditRepo,
		txManager:    txManager,
		notifier:     notifier,
	}
}

func (s *customerService) ListCustomers(ctx context.Context, q CustomerQuery) ([]model.Customer, int64, error) {
	customers, total, err := s.customerRepo.List(ctx, repository.CustomerFilter{
		Type:   q.Type,
		Search: strings.TrimSpace(q.Search),
		Page:   repository.Page(q.Page.normalize()),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list customers: %w", err)
	}
	return customers, total, nil
}

func (s *customerService) GetCustomer(ctx context.Context, id string) (*model.Customer, error) {
	customerID, err := parseID("customer", id)
	if err != nil {
		return nil, err
	}
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, lookupErr("customer", err)
	}
	return customer, nil
}

func applyCustomer(c *model.Customer, req CustomerRequest) error {
	if req.CreditLimit.IsNegative() {
		return invalidf("creditLimit must not be negative")
	}
	c.Name = strings.TrimSpace(req.Name)
	c.Type = req.Type
	c.Email = strings.TrimSpace(req.Email)
	c.Phone = strings.TrimSpace(req.Phone)
	c.City = strings.TrimSpace(req.City)
	c.CreditLimit = req.CreditLimit
	c.Address = req.Address
	return nil
}

func (s *customerService) CreateCustomer(ctx context.Context, actor string, req CustomerRequest) (*model.Customer, error) {
	var customer model.Customer
	if err := applyCustomer(&customer, req); err != nil {
		return nil, err
	}

	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.customerRepo.Create(txCtx, &customer); err != nil {
			return fmt.Errorf("failed to create customer: %w", err)
		}
		return recordAudit(txCtx, s.auditRepo, actor, model.ActionCreateCustomer, customer.ID.String(), customer.Name, req)
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, notification.EventCustomerCreated, map[string]string{
		"id":    customer.ID.String(),
		"name":  customer.Name,
		"type":  customer.Type,
		"phone": customer.Phone,
		"city":  customer.City,
	})
	return &customer, nil
}

func (s *customerService) UpdateCustomer(ctx context.Context, actor, id string, req CustomerRequest) (*model.Customer, error) {
	customerID, err := parseID("customer", id)
	if err != nil {
		return nil, err
	}

	var customer *model.Customer
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		current, err := s.customerRepo.FindByID(txCtx, customerID)
		if err != nil {
			return lookupErr("customer", err)
		}
		if err := applyCustomer(current, req); err != nil {
			return err
		}
		if err := s.customerRepo.Update(txCtx, current); err != nil {
			return fmt.Errorf("failed to update customer: %w", err)
		}
		customer = current
		return recordAudit(txCtx, s.auditRepo, actor, model.ActionUpdateCustomer, current.ID.String(), current.Name, req)
	})
	if err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *customerService) DeleteCustomer(ctx context.Context, actor, id string) error {
	customerID, err := parseID("customer", id)
	if err != nil {
		return err
	}

	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		customer, err := s.customerRepo.FindByID(txCtx, customerID)
		if err != nil {
			return lookupErr("customer", err)
		}
		if err := s.customerRepo.Delete(txCtx, customerID); err != nil {
			return fmt.Errorf("failed to delete customer: %w", err)
		}
		return recordAudit(txCtx, s.auditRepo, actor, model.ActionDeleteCustomer, customer.ID.String(), customer.Name, map[string]bool{"deleted": true})
	})
}
