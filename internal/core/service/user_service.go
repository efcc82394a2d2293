package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/revpay/reimbursement-system/internal/core/authz"
	"github.com/revpay/reimbursement-system/internal/core/domain"
	"github.com/revpay/reimbursement-system/internal/core/ports"
)

// UserService implements the directory use cases: listing, role management,
// and cascading deletion.
type UserService struct {
	repo   ports.UserRepository
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

func (s *UserService) List(ctx context.Context, caller ports.Caller) ([]*domain.User, error) {
	if err := authz.Check(caller.Role, authz.ActionListUsers, false); err != nil {
		return nil, err
	}
	return s.repo.FindAll(ctx)
}

// UpdateRole promotes or demotes the target user. Setting the current role
// again is a no-op that still returns the record.
func (s *UserService) UpdateRole(ctx context.Context, caller ports.Caller, targetUserID, role string) (*domain.User, error) {
	if err := authz.Check(caller.Role, authz.ActionUpdateUserRole, false); err != nil {
		return nil, err
	}
	if !domain.ValidRole(role) {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrValidation, role)
	}

	target, err := s.repo.FindByID(ctx, targetUserID)
	if err != nil {
		return nil, err
	}
	if target.Role == role {
		return target, nil
	}

	updated, err := s.repo.UpdateRole(ctx, targetUserID, role)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("user_id", targetUserID).
		Str("role", role).
		Str("changed_by", caller.UserID).
		Msg("user role updated")

	return updated, nil
}

// Delete removes the user and every reimbursement they own in one atomic
// unit; a failed cascade leaves both untouched.
func (s *UserService) Delete(ctx context.Context, caller ports.Caller, targetUserID string) error {
	if err := authz.Check(caller.Role, authz.ActionDeleteUser, false); err != nil {
		return err
	}

	if err := s.repo.DeleteCascade(ctx, targetUserID); err != nil {
		return err
	}

	s.logger.Info().
		Str("user_id", targetUserID).
		Str("deleted_by", caller.UserID).
		Msg("user deleted with owned reimbursements")

	return nil
}
