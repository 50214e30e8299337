package domain

// AccountUser is the identity anchor for account ownership. Immutable after
// creation as far as the transaction core is concerned.
type AccountUser struct {
	UserID string `json:"userID"` // Primary Key (UUID)
	Name   string `json:"name"`
	AuditFields
}
