package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/revpay/reimbursement-system/internal/core/authz"
	"github.com/revpay/reimbursement-system/internal/core/domain"
	"github.com/revpay/reimbursement-system/internal/core/ports"
)

// AuditSink receives audit events for asynchronous persistence. Enqueue must
// not block the caller beyond channel capacity.
type AuditSink interface {
	Enqueue(event ports.AuditEventInput)
}

// ReimbursementService implements the ledger: creation, listing, pending
// edits, and one-shot resolution.
type ReimbursementService struct {
	repo     ports.ReimbursementRepository
	userRepo ports.UserRepository
	audit    AuditSink
	logger   zerolog.Logger
}

func NewReimbursementService(repo ports.ReimbursementRepository, userRepo ports.UserRepository, audit AuditSink, logger zerolog.Logger) *ReimbursementService {
	return &ReimbursementService{repo: repo, userRepo: userRepo, audit: audit, logger: logger}
}

// Create opens a new pending reimbursement. Employees may only file for
// themselves; managers may file on any existing user's behalf.
func (s *ReimbursementService) Create(ctx context.Context, input ports.CreateReimbursementInput) (*domain.Reimbursement, error) {
	owner := input.OwnerUserID == input.Caller.UserID
	if err := authz.Check(input.Caller.Role, authz.ActionCreateReimbursement, owner); err != nil {
		return nil, err
	}
	if err := validateFields(input.Amount, input.Description); err != nil {
		return nil, err
	}

	// The owner must exist at creation time.
	if _, err := s.userRepo.FindByID(ctx, input.OwnerUserID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.Reimbursement{
		OwnerUserID: input.OwnerUserID,
		Amount:      input.Amount,
		Description: input.Description,
		Status:      domain.StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
		StatusHistory: []domain.StatusHistoryEntry{
			{Status: domain.StatusPending, Timestamp: now, ActorID: input.Caller.UserID},
		},
	})
	if err != nil {
		s.logger.Error().Err(err).Str("owner_user_id", input.OwnerUserID).Msg("failed to create reimbursement")
		return nil, err
	}

	// A cascade delete can commit between the existence check and the insert.
	// Re-verify the owner and roll the insert back on a miss so no record ever
	// outlives its owner.
	if _, err := s.userRepo.FindByID(ctx, input.OwnerUserID); err != nil {
		if delErr := s.repo.Delete(ctx, created.ID); delErr != nil {
			s.logger.Error().Err(delErr).
				Str("reimbursement_id", created.ID).
				Msg("failed to roll back reimbursement for deleted owner")
		}
		return nil, err
	}

	s.logger.Info().
		Str("reimbursement_id", created.ID).
		Str("owner_user_id", created.OwnerUserID).
		Float64("amount", created.Amount).
		Msg("reimbursement created")

	s.record(created.ID, domain.AuditCreated, input.Caller.UserID, created.Description)
	return created, nil
}

func (s *ReimbursementService) ListForUser(ctx context.Context, input ports.ListForUserInput) ([]*domain.Reimbursement, error) {
	owner := input.OwnerUserID == input.Caller.UserID
	if err := authz.Check(input.Caller.Role, authz.ActionListUserReimbursements, owner); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, ports.ReimbursementFilter{OwnerUserID: input.OwnerUserID, Status: input.Status})
}

func (s *ReimbursementService) ListAll(ctx context.Context, caller ports.Caller) ([]*domain.Reimbursement, error) {
	if err := authz.Check(caller.Role, authz.ActionListAllReimbursements, false); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, ports.ReimbursementFilter{})
}

func (s *ReimbursementService) ListPending(ctx context.Context, caller ports.Caller) ([]*domain.Reimbursement, error) {
	if err := authz.Check(caller.Role, authz.ActionListPendingReimbursements, false); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, ports.ReimbursementFilter{Status: string(domain.StatusPending)})
}

// Update edits amount and description while the request is still pending.
// Authorization is decided before state so a non-owner learns nothing about
// the record's status.
func (s *ReimbursementService) Update(ctx context.Context, input ports.UpdateReimbursementInput) (*domain.Reimbursement, error) {
	existing, err := s.repo.FindByID(ctx, input.ReimbursementID)
	if err != nil {
		return nil, err
	}

	owner := existing.OwnerUserID == input.Caller.UserID
	if err := authz.Check(input.Caller.Role, authz.ActionEditReimbursement, owner); err != nil {
		return nil, err
	}
	if err := validateFields(input.Amount, input.Description); err != nil {
		return nil, err
	}

	// Conditional write: applies only if the status is still pending.
	updated, err := s.repo.UpdatePending(ctx, input.ReimbursementID, input.Amount, input.Description)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("reimbursement_id", updated.ID).
		Str("updated_by", input.Caller.UserID).
		Msg("reimbursement updated")

	s.record(updated.ID, domain.AuditUpdated, input.Caller.UserID, updated.Description)
	return updated, nil
}

// Resolve applies a terminal decision exactly once. A second resolve on the
// same record fails with ErrInvalidTransition regardless of race timing; it
// is never silently accepted.
func (s *ReimbursementService) Resolve(ctx context.Context, input ports.ResolveInput) (*domain.Reimbursement, error) {
	if err := authz.Check(input.Caller.Role, authz.ActionResolveReimbursement, false); err != nil {
		return nil, err
	}

	decision := domain.ReimbursementStatus(input.Decision)
	if !decision.IsDecision() {
		return nil, fmt.Errorf("%w: decision must be %q or %q", domain.ErrValidation, domain.StatusApproved, domain.StatusDenied)
	}

	resolved, err := s.repo.Resolve(ctx, input.ReimbursementID, decision, input.Caller.UserID, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("reimbursement_id", resolved.ID).
		Str("decision", string(decision)).
		Str("resolved_by", input.Caller.UserID).
		Msg("reimbursement resolved")

	s.record(resolved.ID, domain.AuditResolved, input.Caller.UserID, string(decision))
	return resolved, nil
}

func (s *ReimbursementService) record(reimbursementID, action, actorID, detail string) {
	if s.audit == nil {
		return
	}
	s.audit.Enqueue(ports.AuditEventInput{
		ReimbursementID: reimbursementID,
		Action:          action,
		ActorID:         actorID,
		Detail:          detail,
		Timestamp:       time.Now().UTC(),
	})
}

func validateFields(amount float64, description string) error {
	if amount < 0 {
		return fmt.Errorf("%w: amount must not be negative", domain.ErrValidation)
	}
	if strings.TrimSpace(description) == "" {
		return fmt.Errorf("%w: description must not be blank", domain.ErrValidation)
	}
	return nil
}
