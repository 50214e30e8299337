package models

import "time"

// AccountStatus mirrors the status column of the accounts table.
type AccountStatus string

// Account mirrors the accounts table.
type Account struct {
	AccountID     string        `db:"account_id"`
	AccountNumber string        `db:"account_number"`
	OwnerUserID   string        `db:"owner_user_id"`
	Balance       int64         `db:"balance"`
	Status        AccountStatus `db:"status"`
	RegisteredAt  time.Time     `db:"registered_at"`
	ClosedAt      *time.Time    `db:"closed_at"`
	AuditFields
}
