package domain

import "time"

// AccountStatus is the lifecycle state of an account.
type AccountStatus string

const (
	AccountActive AccountStatus = "ACTIVE"
	AccountClosed AccountStatus = "CLOSED"
)

// MaxAccountsPerUser is the number of ACTIVE accounts a single user may hold.
const MaxAccountsPerUser = 10

// Account represents a bank account within the core domain.
// Balance is stored in currency minor units and is never negative; it may be
// mutated only by the transaction processor while holding the account's lease.
type Account struct {
	AccountID     string        `json:"accountID"`     // Primary Key (UUID), internal identity
	AccountNumber string        `json:"accountNumber"` // Globally unique, assigned at creation, never reused
	OwnerUserID   string        `json:"ownerUserID"`   // FK -> users.user_id
	Balance       int64         `json:"balance"`       // Minor units, >= 0
	Status        AccountStatus `json:"status"`
	RegisteredAt  time.Time     `json:"registeredAt"`
	ClosedAt      *time.Time    `json:"closedAt,omitempty"` // Set exactly once on ACTIVE -> CLOSED
	AuditFields
}

// IsActive reports whether the account can take part in balance movement.
func (a *Account) IsActive() bool {
	return a.Status == AccountActive
}
