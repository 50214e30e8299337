package dto

import (
	"time"

	"github.com/yangsb/account-ledger/internal/core/domain"
)

// UseBalanceRequest defines the data needed to use balance from an account.
// The configured amount bounds are business rules checked by the processor
// (and audited as FAIL records); binding only rejects structurally bad input.
type UseBalanceRequest struct {
	UserID        string `json:"userId" binding:"required"`
	AccountNumber string `json:"accountNumber" binding:"required,acctnum"`
	Amount        int64  `json:"amount" binding:"required,gt=0"`
}

// CancelBalanceRequest defines the data needed to cancel a prior use.
type CancelBalanceRequest struct {
	TransactionID string `json:"transactionId" binding:"required"`
	AccountNumber string `json:"accountNumber" binding:"required,acctnum"`
	Amount        int64  `json:"amount" binding:"required,gt=0"`
}

// TransactionResponse is returned by the use and cancel operations.
type TransactionResponse struct {
	AccountNumber     string    `json:"accountNumber"`
	TransactionResult string    `json:"transactionResult"`
	TransactionID     string    `json:"transactionId"`
	Amount            int64     `json:"amount"`
	TransactedAt      time.Time `json:"transactedAt"`
}

// QueryTransactionResponse is returned by the transaction lookup; FAIL
// records are returned the same way so failed attempts stay auditable.
type QueryTransactionResponse struct {
	AccountNumber     string    `json:"accountNumber"`
	TransactionType   string    `json:"transactionType"`
	TransactionResult string    `json:"transactionResult"`
	TransactionID     string    `json:"transactionId"`
	Amount            int64     `json:"amount"`
	TransactedAt      time.Time `json:"transactedAt"`
}

// ToTransactionResponse converts a ledger record to the use/cancel response.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		AccountNumber:     txn.AccountNumber,
		TransactionResult: string(txn.Result),
		TransactionID:     txn.TransactionID,
		Amount:            txn.Amount,
		TransactedAt:      txn.OccurredAt,
	}
}

// ToQueryTransactionResponse converts a ledger record to the lookup response.
func ToQueryTransactionResponse(txn *domain.Transaction) QueryTransactionResponse {
	return QueryTransactionResponse{
		AccountNumber:     txn.AccountNumber,
		TransactionType:   string(txn.Kind),
		TransactionResult: string(txn.Result),
		TransactionID:     txn.TransactionID,
		Amount:            txn.Amount,
		TransactedAt:      txn.OccurredAt,
	}
}
