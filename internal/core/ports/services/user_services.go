package services

import (
	"context"

	"github.com/yangsb/account-ledger/internal/core/domain"
)

// UserSvc exposes the account-user registry.
type UserSvc interface {
	CreateUser(ctx context.Context, name string) (*domain.AccountUser, error)
	GetUserByID(ctx context.Context, userID string) (*domain.AccountUser, error)
}
