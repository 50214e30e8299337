package repositories

import (
	"context"

	"github.com/yangsb/account-ledger/internal/core/domain"
)

// UserRepository defines persistence operations for account users.
type UserRepository interface {
	SaveUser(ctx context.Context, user domain.AccountUser) error
	FindUserByID(ctx context.Context, userID string) (*domain.AccountUser, error)
}
