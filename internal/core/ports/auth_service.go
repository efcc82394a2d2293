package ports

import (
	"context"
	"time"

	"github.com/revpay/reimbursement-system/internal/core/domain"
)

// Caller is the authenticated identity attached to every gated operation.
type Caller struct {
	UserID string
	Role   string
}

// RegisterInput carries self-registration data. Role is never accepted from
// the caller; new accounts always start as employees.
type RegisterInput struct {
	FirstName string
	LastName  string
	Username  string
	Password  string
}

// AuthService implements registration, login, and session revocation.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	// Login returns a signed bearer token and the authenticated user.
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	// Logout revokes the token identified by tokenID until expiresAt.
	Logout(ctx context.Context, tokenID string, expiresAt time.Time) error
}
