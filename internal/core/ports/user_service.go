package ports

import (
	"context"

	"github.com/revpay/reimbursement-system/internal/core/domain"
)

// UserService defines directory operations gated on the caller's role.
type UserService interface {
	// List returns every user. Manager-only.
	List(ctx context.Context, caller Caller) ([]*domain.User, error)
	// UpdateRole promotes or demotes the target user. Manager-only;
	// idempotent when the role is unchanged.
	UpdateRole(ctx context.Context, caller Caller, targetUserID, role string) (*domain.User, error)
	// Delete removes the target user and cascades to their reimbursements.
	// Manager-only.
	Delete(ctx context.Context, caller Caller, targetUserID string) error
}
