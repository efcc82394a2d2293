package domain

import "errors"

// Sentinel errors for the caller-visible failure taxonomy. Each maps to a
// distinct HTTP status in the API error handler; they are never collapsed
// into a generic failure.
var (
	ErrValidation            = errors.New("invalid input")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrForbidden             = errors.New("access forbidden")
	ErrUserNotFound          = errors.New("user not found")
	ErrReimbursementNotFound = errors.New("reimbursement not found")
	ErrUserExists            = errors.New("username already exists")
	ErrInvalidTransition     = errors.New("invalid status transition")
)
