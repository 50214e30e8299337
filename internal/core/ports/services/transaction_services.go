package services

import (
	"context"

	"github.com/yangsb/account-ledger/internal/core/domain"
)

// TransactionSvc is the transaction processor: it serializes balance movement
// per account and guarantees every attempt leaves exactly one ledger record.
type TransactionSvc interface {
	UseBalance(ctx context.Context, userID string, accountNumber string, amount int64) (*domain.Transaction, error)
	CancelBalance(ctx context.Context, transactionID string, accountNumber string, amount int64) (*domain.Transaction, error)
	// QueryTransaction needs no lock; FAIL records stay visible so failed
	// attempts remain auditable.
	QueryTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error)
}
