package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/yangsb/account-ledger/internal/apperrors"
	"github.com/yangsb/account-ledger/internal/core/domain"
	portsrepo "github.com/yangsb/account-ledger/internal/core/ports/repositories"
	portssvc "github.com/yangsb/account-ledger/internal/core/ports/services"
)

// userService implements the UserSvc interface.
type userService struct {
	BaseService
	userRepo portsrepo.UserRepository
}

// NewUserService creates a new user service.
func NewUserService(userRepo portsrepo.UserRepository) portssvc.UserSvc {
	return &userService{userRepo: userRepo}
}

var _ portssvc.UserSvc = (*userService)(nil)

func (s *userService) CreateUser(ctx context.Context, name string) (*domain.AccountUser, error) {
	now := time.Now().UTC()
	user := domain.AccountUser{
		UserID: uuid.NewString(),
		Name:   name,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		s.LogError(ctx, err, "Failed to save user", slog.String("user_id", user.UserID))
		return nil, err
	}

	s.LogInfo(ctx, "User created successfully", slog.String("user_id", user.UserID))
	return &user, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.AccountUser, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrUserNotFound) {
			s.LogError(ctx, err, "Failed to find user by ID", slog.String("user_id", userID))
		}
		return nil, err
	}
	return user, nil
}
