package ledger

import "time"

// AuditLog is an append-only record of a ledger mutation, persisted in the
// same atomic unit as the mutation itself.
type AuditLog struct {
	ID          int
	Action      string // "Create", "Update", "Void"
	EntityName  string // "TransactionHeader", "CreditMemo", ...
	EntityID    string
	Description string
	PerformedBy string
	Timestamp   time.Time
}

// NewAuditLog creates an audit entry for the given action.
func NewAuditLog(action, entityName, entityID, description, actor string) *AuditLog {
	return &AuditLog{
		Action:      action,
		EntityName:  entityName,
		EntityID:    entityID,
		Description: description,
		PerformedBy: actor,
		Timestamp:   time.Now(),
	}
}
