package ports

import (
	"context"
	"time"

	"github.com/revpay/reimbursement-system/internal/core/domain"
)

// ReimbursementFilter carries the query parameters for listing reimbursements.
type ReimbursementFilter struct {
	OwnerUserID string // empty = all owners
	Status      string // empty = any status
}

// ReimbursementRepository defines persistence operations for the ledger.
//
// UpdatePending and Resolve are conditional writes: the persisted status must
// still be pending for the write to apply. This is the per-record
// compare-and-swap that serializes concurrent mutations: exactly one of two
// racing resolves observes pending; the other gets domain.ErrInvalidTransition.
type ReimbursementRepository interface {
	Create(ctx context.Context, r *domain.Reimbursement) (*domain.Reimbursement, error)
	FindByID(ctx context.Context, id string) (*domain.Reimbursement, error)
	// List returns matching reimbursements in creation order.
	List(ctx context.Context, filter ReimbursementFilter) ([]*domain.Reimbursement, error)
	UpdatePending(ctx context.Context, id string, amount float64, description string) (*domain.Reimbursement, error)
	Resolve(ctx context.Context, id string, decision domain.ReimbursementStatus, resolvedBy string, at time.Time) (*domain.Reimbursement, error)
	// Delete removes a record outright. Used to roll back an insert whose
	// owner was deleted mid-create; absent records are not an error.
	Delete(ctx context.Context, id string) error
}
