package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/revpay/reimbursement-system/internal/core/domain"
	"github.com/revpay/reimbursement-system/internal/core/ports"
)

type auditService struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

// NewAuditService returns an AuditService implementation that appends events
// to the audit trail.
func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, log: log}
}

func (s *auditService) Process(ctx context.Context, in ports.AuditEventInput) error {
	event := &domain.AuditEvent{
		ReimbursementID: in.ReimbursementID,
		Action:          in.Action,
		ActorID:         in.ActorID,
		Detail:          in.Detail,
		Timestamp:       in.Timestamp,
	}

	if err := s.repo.InsertEvent(ctx, event); err != nil {
		return fmt.Errorf("process audit event: %w", err)
	}

	s.log.Debug().
		Str("reimbursement_id", in.ReimbursementID).
		Str("action", in.Action).
		Msg("audit event recorded")

	return nil
}
