package handler

import "github.com/revpay/reimbursement-system/internal/core/domain"

// --- Domain entity → HTTP response ---

func toReimbursementResponse(r *domain.Reimbursement) reimbursementResponse {
	resp := reimbursementResponse{
		ID:          r.ID,
		OwnerUserID: r.OwnerUserID,
		Amount:      r.Amount,
		Description: r.Description,
		Status:      string(r.Status),
		CreatedAt:   r.CreatedAt.UTC(),
		UpdatedAt:   r.UpdatedAt.UTC(),
		ResolvedBy:  r.ResolvedBy,
		ResolvedAt:  r.ResolvedAt,
	}
	if len(r.StatusHistory) > 0 {
		resp.StatusHistory = make([]statusHistoryItemResponse, len(r.StatusHistory))
		for i, entry := range r.StatusHistory {
			resp.StatusHistory[i] = statusHistoryItemResponse{
				Status:    string(entry.Status),
				Timestamp: entry.Timestamp.UTC(),
				ActorID:   entry.ActorID,
			}
		}
	}
	return resp
}

func toListResponse(records []*domain.Reimbursement) listReimbursementsResponse {
	items := make([]reimbursementResponse, len(records))
	for i, r := range records {
		items[i] = toReimbursementResponse(r)
	}
	return listReimbursementsResponse{Data: items}
}
