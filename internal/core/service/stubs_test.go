package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/revpay/reimbursement-system/internal/core/domain"
	"github.com/revpay/reimbursement-system/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	mu     sync.Mutex
	seq    int
	users  map[string]*domain.User // keyed by ID
	reimbs *stubReimbursementRepo  // optional, for cascade deletes
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Username == user.Username {
			return nil, domain.ErrUserExists
		}
	}
	r.seq++
	clone := cloneUser(user)
	clone.ID = fmt.Sprintf("u%d", r.seq)
	r.users[clone.ID] = clone
	return cloneUser(clone), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindAll(_ context.Context) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	return out, nil
}

func (r *stubUserRepo) UpdateRole(_ context.Context, id, role string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.Role = role
	u.UpdatedAt = time.Now().UTC()
	return cloneUser(u), nil
}

// DeleteCascade mirrors the transactional Mongo implementation: the user and
// their reimbursements vanish together or not at all.
func (r *stubUserRepo) DeleteCascade(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	if r.reimbs != nil {
		r.reimbs.deleteByOwner(id)
	}
	return nil
}

type stubReimbursementRepo struct {
	mu      sync.Mutex
	seq     int
	records []*domain.Reimbursement // insertion order
}

func newStubReimbursementRepo() *stubReimbursementRepo {
	return &stubReimbursementRepo{}
}

func cloneReimbursement(r *domain.Reimbursement) *domain.Reimbursement {
	clone := *r
	return &clone
}

func (r *stubReimbursementRepo) Create(_ context.Context, rec *domain.Reimbursement) (*domain.Reimbursement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	clone := cloneReimbursement(rec)
	clone.ID = fmt.Sprintf("r%d", r.seq)
	r.records = append(r.records, clone)
	return cloneReimbursement(clone), nil
}

func (r *stubReimbursementRepo) FindByID(_ context.Context, id string) (*domain.Reimbursement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range r.records {
		if rec.ID == id {
			return cloneReimbursement(rec), nil
		}
	}
	return nil, domain.ErrReimbursementNotFound
}

func (r *stubReimbursementRepo) List(_ context.Context, filter ports.ReimbursementFilter) ([]*domain.Reimbursement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Reimbursement, 0)
	for _, rec := range r.records {
		if filter.OwnerUserID != "" && rec.OwnerUserID != filter.OwnerUserID {
			continue
		}
		if filter.Status != "" && string(rec.Status) != filter.Status {
			continue
		}
		out = append(out, cloneReimbursement(rec))
	}
	return out, nil
}

// UpdatePending applies the same compare-and-swap the Mongo repo performs.
func (r *stubReimbursementRepo) UpdatePending(_ context.Context, id string, amount float64, description string) (*domain.Reimbursement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range r.records {
		if rec.ID != id {
			continue
		}
		if rec.Status != domain.StatusPending {
			return nil, domain.ErrInvalidTransition
		}
		rec.Amount = amount
		rec.Description = description
		rec.UpdatedAt = time.Now().UTC()
		return cloneReimbursement(rec), nil
	}
	return nil, domain.ErrReimbursementNotFound
}

func (r *stubReimbursementRepo) Resolve(_ context.Context, id string, decision domain.ReimbursementStatus, resolvedBy string, at time.Time) (*domain.Reimbursement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range r.records {
		if rec.ID != id {
			continue
		}
		if rec.Status != domain.StatusPending {
			return nil, domain.ErrInvalidTransition
		}
		rec.Status = decision
		rec.ResolvedBy = resolvedBy
		rec.ResolvedAt = &at
		rec.UpdatedAt = at
		return cloneReimbursement(rec), nil
	}
	return nil, domain.ErrReimbursementNotFound
}

func (r *stubReimbursementRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, rec := range r.records {
		if rec.ID == id {
			r.records = append(r.records[:i], r.records[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *stubReimbursementRepo) deleteByOwner(ownerID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.records[:0]
	for _, rec := range r.records {
		if rec.OwnerUserID != ownerID {
			kept = append(kept, rec)
		}
	}
	r.records = kept
}

// ---------------------------------------------------------------------------
// Other collaborators
// ---------------------------------------------------------------------------

type stubRevoker struct {
	mu      sync.Mutex
	revoked map[string]time.Time
}

func newStubRevoker() *stubRevoker {
	return &stubRevoker{revoked: make(map[string]time.Time)}
}

func (s *stubRevoker) Revoke(_ context.Context, tokenID string, until time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[tokenID] = until
	return nil
}

func (s *stubRevoker) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.revoked[tokenID]
	return ok, nil
}

type recordingAuditSink struct {
	mu     sync.Mutex
	events []ports.AuditEventInput
}

func (s *recordingAuditSink) Enqueue(event ports.AuditEventInput) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
}

func (s *recordingAuditSink) all() []ports.AuditEventInput {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ports.AuditEventInput, len(s.events))
	copy(out, s.events)
	return out
}
