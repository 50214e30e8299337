package services

import (
	"context"

	"github.com/yangsb/account-ledger/internal/core/domain"
)

// AccountSvc exposes the account registry: CRUD over accounts, the per-user
// account cap and the ACTIVE -> CLOSED lifecycle.
type AccountSvc interface {
	CreateAccount(ctx context.Context, userID string, initialBalance int64) (*domain.Account, error)
	// DeleteAccount closes the account; it acquires the same per-account lease
	// as balance movement so a concurrent use cannot race the zero-balance check.
	DeleteAccount(ctx context.Context, userID string, accountNumber string) (*domain.Account, error)
	ListActiveAccounts(ctx context.Context, userID string) ([]domain.Account, error)
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
}
