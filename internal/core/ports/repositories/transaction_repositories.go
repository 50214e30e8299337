package repositories

import (
	"context"

	"github.com/yangsb/account-ledger/internal/core/domain"
)

// TransactionRepository defines persistence operations for the append-only
// transaction ledger.
type TransactionRepository interface {
	// SaveTransaction appends a ledger record without touching any balance.
	// Used for FAIL records; the record is keyed by whatever account number
	// was supplied, whether or not such an account exists.
	SaveTransaction(ctx context.Context, txn domain.Transaction) error
	// SaveTransactionWithBalance atomically applies balanceDelta to the
	// account's balance and appends the SUCCESS record carrying the resulting
	// post-balance, as one durable unit. The store rejects a delta that would
	// drive the balance negative.
	SaveTransactionWithBalance(ctx context.Context, txn domain.Transaction, balanceDelta int64) (*domain.Transaction, error)
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)
	// HasSuccessfulCancel reports whether a SUCCESS CANCEL record already
	// references the given USE transaction.
	HasSuccessfulCancel(ctx context.Context, useTransactionID string) (bool, error)
}
