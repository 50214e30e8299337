package models

import "time"

// Transaction mirrors the transactions table. Rows are insert-only.
type Transaction struct {
	TransactionID        string    `db:"transaction_id"`
	AccountNumber        string    `db:"account_number"`
	Kind                 string    `db:"kind"`
	Result               string    `db:"result"`
	Amount               int64     `db:"amount"`
	PostBalance          *int64    `db:"post_balance"` // NULL for FAIL rows
	RelatedTransactionID *string   `db:"related_transaction_id"`
	OccurredAt           time.Time `db:"occurred_at"`
}
