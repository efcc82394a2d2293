package ports

import (
	"context"
	"time"

	"github.com/revpay/reimbursement-system/internal/core/domain"
)

// AuditEventInput is the DTO handed from the ledger to the audit pipeline.
type AuditEventInput struct {
	ReimbursementID string
	Action          string
	ActorID         string
	Detail          string
	Timestamp       time.Time
}

// AuditService persists audit events dequeued by the dispatcher.
type AuditService interface {
	Process(ctx context.Context, event AuditEventInput) error
}

// AuditRepository appends events to the audit trail.
type AuditRepository interface {
	InsertEvent(ctx context.Context, event *domain.AuditEvent) error
}
