package domain

import "time"

// ReimbursementStatus represents the lifecycle state of a reimbursement request.
type ReimbursementStatus string

const (
	StatusPending  ReimbursementStatus = "pending"
	StatusApproved ReimbursementStatus = "approved"
	StatusDenied   ReimbursementStatus = "denied"
)

// validTransitions defines the allowed state machine transitions.
// Approved and denied are terminal: no transition leaves them.
var validTransitions = map[ReimbursementStatus][]ReimbursementStatus{
	StatusPending: {StatusApproved, StatusDenied},
}

// CanTransitionTo reports whether a transition from the current status to next is valid.
func (s ReimbursementStatus) CanTransitionTo(next ReimbursementStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsDecision reports whether the status is a valid resolution outcome.
func (s ReimbursementStatus) IsDecision() bool {
	return s == StatusApproved || s == StatusDenied
}

// StatusHistoryEntry records a single status transition on a reimbursement.
type StatusHistoryEntry struct {
	Status    ReimbursementStatus `json:"status" bson:"status"`
	Timestamp time.Time           `json:"timestamp" bson:"timestamp"`
	ActorID   string              `json:"actor_id,omitempty" bson:"actor_id,omitempty"`
}

// Reimbursement is the core aggregate of the ledger. OwnerUserID is a
// non-owning reference into the user directory; deleting the owner cascades
// to every reimbursement they own.
type Reimbursement struct {
	ID            string               `json:"id" bson:"_id,omitempty"`
	OwnerUserID   string               `json:"owner_user_id" bson:"owner_user_id"`
	Amount        float64              `json:"amount" bson:"amount"`
	Description   string               `json:"description" bson:"description"`
	Status        ReimbursementStatus  `json:"status" bson:"status"`
	CreatedAt     time.Time            `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at" bson:"updated_at"`
	ResolvedBy    string               `json:"resolved_by,omitempty" bson:"resolved_by,omitempty"`
	ResolvedAt    *time.Time           `json:"resolved_at,omitempty" bson:"resolved_at,omitempty"`
	StatusHistory []StatusHistoryEntry `json:"status_history,omitempty" bson:"status_history,omitempty"`
}
