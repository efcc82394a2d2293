package domain

import "time"

// Audit actions recorded against the ledger.
const (
	AuditCreated  = "created"
	AuditUpdated  = "updated"
	AuditResolved = "resolved"
)

// AuditEvent is an append-only record of a ledger mutation. It is written
// asynchronously and is not authoritative for reimbursement state.
type AuditEvent struct {
	ReimbursementID string
	Action          string
	ActorID         string
	Detail          string
	Timestamp       time.Time
}
