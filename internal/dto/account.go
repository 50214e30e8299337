package dto

import (
	"time"

	"github.com/yangsb/account-ledger/internal/core/domain"
)

// CreateAccountRequest defines the data needed to open an account.
type CreateAccountRequest struct {
	UserID         string `json:"userId" binding:"required"`
	InitialBalance int64  `json:"initialBalance" binding:"min=0"`
}

// CreateAccountResponse is returned on successful account creation.
type CreateAccountResponse struct {
	UserID        string    `json:"userId"`
	AccountNumber string    `json:"accountNumber"`
	RegisteredAt  time.Time `json:"registeredAt"`
}

// DeleteAccountRequest defines the data needed to close an account.
type DeleteAccountRequest struct {
	UserID        string `json:"userId" binding:"required"`
	AccountNumber string `json:"accountNumber" binding:"required,acctnum"`
}

// DeleteAccountResponse is returned on successful account closure.
type DeleteAccountResponse struct {
	UserID         string    `json:"userId"`
	AccountNumber  string    `json:"accountNumber"`
	UnregisteredAt time.Time `json:"unRegisteredAt"`
}

// AccountInfo is one element of the active-account listing.
type AccountInfo struct {
	AccountNumber string `json:"accountNumber"`
	Balance       int64  `json:"balance"`
}

// ToCreateAccountResponse builds the creation response from the domain account.
func ToCreateAccountResponse(acc *domain.Account) CreateAccountResponse {
	return CreateAccountResponse{
		UserID:        acc.OwnerUserID,
		AccountNumber: acc.AccountNumber,
		RegisteredAt:  acc.RegisteredAt,
	}
}

// ToDeleteAccountResponse builds the closure response from the domain account.
func ToDeleteAccountResponse(acc *domain.Account) DeleteAccountResponse {
	resp := DeleteAccountResponse{
		UserID:        acc.OwnerUserID,
		AccountNumber: acc.AccountNumber,
	}
	if acc.ClosedAt != nil {
		resp.UnregisteredAt = *acc.ClosedAt
	}
	return resp
}

// ToAccountInfos converts active accounts to their listing representation.
func ToAccountInfos(accounts []domain.Account) []AccountInfo {
	infos := make([]AccountInfo, len(accounts))
	for i, acc := range accounts {
		infos[i] = AccountInfo{
			AccountNumber: acc.AccountNumber,
			Balance:       acc.Balance,
		}
	}
	return infos
}
