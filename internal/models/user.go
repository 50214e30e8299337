package models

// AccountUser mirrors the users table.
type AccountUser struct {
	UserID string `db:"user_id"`
	Name   string `db:"name"`
	AuditFields
}
