package ports

import (
	"context"

	"github.com/revpay/reimbursement-system/internal/core/domain"
)

// CreateReimbursementInput carries the data for a new reimbursement request.
// OwnerUserID may differ from the caller only when the caller is a manager.
type CreateReimbursementInput struct {
	Caller      Caller
	OwnerUserID string
	Amount      float64
	Description string
}

// ListForUserInput lists reimbursements owned by a single user, optionally
// filtered by status.
type ListForUserInput struct {
	Caller      Caller
	OwnerUserID string
	Status      string
}

// UpdateReimbursementInput edits amount/description of a pending request.
type UpdateReimbursementInput struct {
	Caller          Caller
	ReimbursementID string
	Amount          float64
	Description     string
}

// ResolveInput applies a terminal decision to a pending request.
type ResolveInput struct {
	Caller          Caller
	ReimbursementID string
	Decision        string
}

// ReimbursementService defines the ledger use cases.
type ReimbursementService interface {
	Create(ctx context.Context, input CreateReimbursementInput) (*domain.Reimbursement, error)
	ListForUser(ctx context.Context, input ListForUserInput) ([]*domain.Reimbursement, error)
	// ListAll returns every reimbursement regardless of status. Manager-only.
	ListAll(ctx context.Context, caller Caller) ([]*domain.Reimbursement, error)
	// ListPending returns every pending reimbursement. Manager-only.
	ListPending(ctx context.Context, caller Caller) ([]*domain.Reimbursement, error)
	Update(ctx context.Context, input UpdateReimbursementInput) (*domain.Reimbursement, error)
	Resolve(ctx context.Context, input ResolveInput) (*domain.Reimbursement, error)
}
