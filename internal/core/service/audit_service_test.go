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

type stubAuditRepo struct {
	events []*domain.AuditEvent
	err    error
}

func (r *stubAuditRepo) InsertEvent(_ context.Context, event *domain.AuditEvent) error {
	if r.err != nil {
		return r.err
	}
	r.events = append(r.events, event)
	return nil
}

func TestAuditServiceProcess(t *testing.T) {
	repo := &stubAuditRepo{}
	svc := NewAuditService(repo, zerolog.Nop())

	now := time.Now().UTC()
	err := svc.Process(context.Background(), ports.AuditEventInput{
		ReimbursementID: "r1",
		Action:          domain.AuditResolved,
		ActorID:         "u2",
		Detail:          "approved",
		Timestamp:       now,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(repo.events))
	}
	got := repo.events[0]
	if got.ReimbursementID != "r1" || got.Action != domain.AuditResolved || got.ActorID != "u2" {
		t.Fatalf("unexpected event: %+v", got)
	}
	if !got.Timestamp.Equal(now) {
		t.Fatalf("expected timestamp %v, got %v", now, got.Timestamp)
	}
}

func TestAuditServiceWrapsRepoError(t *testing.T) {
	repoErr := errors.New("write concern failed")
	svc := NewAuditService(&stubAuditRepo{err: repoErr}, zerolog.Nop())

	err := svc.Process(context.Background(), ports.AuditEventInput{ReimbursementID: "r1"})
	if !errors.Is(err, repoErr) {
		t.Fatalf("expected wrapped repo error, got %v", err)
	}
}
