package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/revpay/reimbursement-system/internal/core/domain"
	"github.com/revpay/reimbursement-system/internal/core/ports"
)

func seedUser(t *testing.T, repo *stubUserRepo, username, role string) *domain.User {
	t.Helper()
	now := time.Now().UTC()
	user, err := repo.Create(context.Background(), &domain.User{
		Username:     username,
		PasswordHash: "x",
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return user
}

func TestUserListManagerOnly(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, "avery", domain.RoleEmployee)
	seedUser(t, repo, "morgan", domain.RoleManager)
	svc := NewUserService(repo, zerolog.Nop())

	users, err := svc.List(context.Background(), ports.Caller{UserID: "u2", Role: domain.RoleManager})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}

	if _, err := svc.List(context.Background(), ports.Caller{UserID: "u1", Role: domain.RoleEmployee}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for employee, got %v", err)
	}
}

func TestUpdateRole(t *testing.T) {
	repo := newStubUserRepo()
	target := seedUser(t, repo, "avery", domain.RoleEmployee)
	manager := seedUser(t, repo, "morgan", domain.RoleManager)
	svc := NewUserService(repo, zerolog.Nop())
	caller := ports.Caller{UserID: manager.ID, Role: domain.RoleManager}

	updated, err := svc.UpdateRole(context.Background(), caller, target.ID, domain.RoleManager)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Role != domain.RoleManager {
		t.Fatalf("expected role %q, got %q", domain.RoleManager, updated.Role)
	}

	// Setting the same role again is a no-op, not an error.
	again, err := svc.UpdateRole(context.Background(), caller, target.ID, domain.RoleManager)
	if err != nil {
		t.Fatalf("idempotent update failed: %v", err)
	}
	if again.Role != domain.RoleManager {
		t.Fatalf("expected role %q, got %q", domain.RoleManager, again.Role)
	}
}

func TestUpdateRoleFailures(t *testing.T) {
	repo := newStubUserRepo()
	target := seedUser(t, repo, "avery", domain.RoleEmployee)
	svc := NewUserService(repo, zerolog.Nop())
	manager := ports.Caller{UserID: "u99", Role: domain.RoleManager}

	if _, err := svc.UpdateRole(context.Background(), ports.Caller{UserID: target.ID, Role: domain.RoleEmployee}, target.ID, domain.RoleManager); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for employee caller, got %v", err)
	}
	if _, err := svc.UpdateRole(context.Background(), manager, target.ID, "admin"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for unknown role, got %v", err)
	}
	if _, err := svc.UpdateRole(context.Background(), manager, "missing", domain.RoleManager); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestDeleteCascadesReimbursements(t *testing.T) {
	reimbRepo := newStubReimbursementRepo()
	userRepo := newStubUserRepo()
	userRepo.reimbs = reimbRepo

	target := seedUser(t, userRepo, "avery", domain.RoleEmployee)
	other := seedUser(t, userRepo, "blake", domain.RoleEmployee)
	for _, ownerID := range []string{target.ID, target.ID, other.ID} {
		if _, err := reimbRepo.Create(context.Background(), &domain.Reimbursement{
			OwnerUserID: ownerID,
			Amount:      10,
			Description: "lunch",
			Status:      domain.StatusPending,
		}); err != nil {
			t.Fatalf("seed reimbursement: %v", err)
		}
	}

	svc := NewUserService(userRepo, zerolog.Nop())
	caller := ports.Caller{UserID: "u99", Role: domain.RoleManager}

	if err := svc.Delete(context.Background(), caller, target.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if _, err := userRepo.FindByID(context.Background(), target.ID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected user gone, got %v", err)
	}
	orphans, err := reimbRepo.List(context.Background(), ports.ReimbursementFilter{OwnerUserID: target.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(orphans) != 0 {
		t.Fatalf("expected 0 owned reimbursements after cascade, got %d", len(orphans))
	}
	remaining, err := reimbRepo.List(context.Background(), ports.ReimbursementFilter{OwnerUserID: other.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(remaining) != 1 {
		t.Fatalf("cascade removed another user's records, got %d", len(remaining))
	}
}

func TestDeleteFailures(t *testing.T) {
	repo := newStubUserRepo()
	target := seedUser(t, repo, "avery", domain.RoleEmployee)
	svc := NewUserService(repo, zerolog.Nop())

	if err := svc.Delete(context.Background(), ports.Caller{UserID: target.ID, Role: domain.RoleEmployee}, target.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for employee caller, got %v", err)
	}
	if err := svc.Delete(context.Background(), ports.Caller{UserID: "u99", Role: domain.RoleManager}, "missing"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
