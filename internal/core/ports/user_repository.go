package ports

import (
	"context"

	"github.com/revpay/reimbursement-system/internal/core/domain"
)

// UserRepository defines persistence operations for the user directory.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindAll(ctx context.Context) ([]*domain.User, error)
	// UpdateRole sets the user's role and returns the updated record.
	UpdateRole(ctx context.Context, id, role string) (*domain.User, error)
	// DeleteCascade removes the user and every reimbursement they own as a
	// single atomic unit. Returns domain.ErrUserNotFound when the user is
	// absent; on any failure neither the user nor their reimbursements are
	// touched.
	DeleteCascade(ctx context.Context, id string) error
}
