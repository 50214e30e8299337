package repositories

import (
	"context"
	"time"

	"github.com/yangsb/account-ledger/internal/core/domain"
)

// AccountRepository defines persistence operations for accounts.
//
// CreateAccount assigns the globally unique account number and enforces the
// per-user active-account cap inside a single database transaction, so the
// invariants hold under multiple processes sharing one store.
type AccountRepository interface {
	// CreateAccount persists the account and returns it with its assigned
	// account number. Returns apperrors.ErrMaxAccountsExceeded when the owner
	// already holds maxAccounts ACTIVE accounts.
	CreateAccount(ctx context.Context, account domain.Account, maxAccounts int) (*domain.Account, error)
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error)
	// ListActiveAccountsByUser returns the user's ACTIVE accounts ordered by
	// registration time.
	ListActiveAccountsByUser(ctx context.Context, userID string) ([]domain.Account, error)
	// CloseAccount transitions the account ACTIVE -> CLOSED. The caller is
	// expected to hold the account's lease and to have verified the balance.
	CloseAccount(ctx context.Context, accountNumber string, closedAt time.Time) error
}
