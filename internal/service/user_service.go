package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/RehanShaikh007/TextileERP-sub000/internal/model"
	"github.com/RehanShaikh007/TextileERP-sub000/internal/repository"
)

// Identity is what the auth middleware extracts from a verified token
type Identity struct {
	Subject string
	Email   string
	Name    string
	Role    string
}

// UserService defines the interface for business logic related to User
type UserService interface {
	Sync(ctx context.Context, id Identity) (*model.User, error)
	ListUsers(ctx context.Context, page Page) ([]model.User, int64, error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

// Sync upserts the local copy of the identity provider's user
func (s *userService) Sync(ctx context.Context, id Identity) (*model.User, error) {
	if strings.TrimSpace(id.Subject) == "" {
		return nil, invalidf("token has no subject")
	}
	user := &model.User{
		ExternalID: id.Subject,
		Email:      id.Email,
		Name:       id.Name,
		Role:       id.Role,
	}
	if user.Role == "" {
		user.Role = "staff"
	}
	if err := s.userRepo.Upsert(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to sync user: %w", err)
	}
	return s.userRepo.GetByExternalID(ctx, id.Subject)
}

func (s *userService) ListUsers(ctx context.Context, page Page) ([]model.User, int64, error) {
	users, total, err := s.userRepo.List(ctx, repository.Page(page.normalize()))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, total, nil
}
