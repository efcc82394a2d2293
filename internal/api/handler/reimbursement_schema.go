package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type createReimbursementRequest struct {
	Amount      float64 `json:"amount"      validate:"gte=0"`
	Description string  `json:"description" validate:"required"`
}

type updateReimbursementRequest struct {
	Amount      float64 `json:"amount"      validate:"gte=0"`
	Description string  `json:"description" validate:"required"`
}

type resolveReimbursementRequest struct {
	Decision string `json:"decision" validate:"required,oneof=approved denied"`
}

// Response-only types owned by the transport layer. These are intentionally
// separate from domain types so the JSON contract is not coupled to internal
// changes.

type statusHistoryItemResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	ActorID   string    `json:"actor_id,omitempty"`
}

type reimbursementResponse struct {
	ID            string                      `json:"id"`
	OwnerUserID   string                      `json:"owner_user_id"`
	Amount        float64                     `json:"amount"`
	Description   string                      `json:"description"`
	Status        string                      `json:"status"`
	CreatedAt     time.Time                   `json:"created_at"`
	UpdatedAt     time.Time                   `json:"updated_at"`
	ResolvedBy    string                      `json:"resolved_by,omitempty"`
	ResolvedAt    *time.Time                  `json:"resolved_at,omitempty"`
	StatusHistory []statusHistoryItemResponse `json:"status_history,omitempty"`
}

type listReimbursementsResponse struct {
	Data []reimbursementResponse `json:"data"`
}
