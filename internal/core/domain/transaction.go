package domain

import "time"

// TransactionKind distinguishes balance use from balance-use cancellation.
type TransactionKind string

const (
	KindUse    TransactionKind = "USE"
	KindCancel TransactionKind = "CANCEL"
)

// TransactionResult is the single terminal state of a processed request.
// A record never moves between results; a retried operation is a brand-new
// record with a new identity.
type TransactionResult string

const (
	ResultSuccess TransactionResult = "SUCCESS"
	ResultFail    TransactionResult = "FAIL"
)

// Transaction is one immutable entry in the append-only ledger. Every
// processed use/cancel request, successful or rejected, produces exactly one.
type Transaction struct {
	TransactionID string            `json:"transactionID"` // Caller-opaque unique ID (UUID)
	AccountNumber string            `json:"accountNumber"` // As supplied by the caller, even for FAIL records
	Kind          TransactionKind   `json:"kind"`
	Result        TransactionResult `json:"result"`
	Amount        int64             `json:"amount"`      // Positive, minor units
	PostBalance   int64             `json:"postBalance"` // Balance after this record; meaningful only for SUCCESS
	// RelatedTransactionID links a SUCCESS CANCEL to the USE it reverses.
	// Storing the link on the cancel row keeps the USE record untouched.
	RelatedTransactionID *string   `json:"relatedTransactionID,omitempty"`
	OccurredAt           time.Time `json:"occurredAt"`
}

// IsCancelable reports whether this record is a successful use, i.e. the only
// kind of record a cancellation may reference.
func (t *Transaction) IsCancelable() bool {
	return t.Kind == KindUse && t.Result == ResultSuccess
}
