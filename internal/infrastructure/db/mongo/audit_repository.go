package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/revpay/reimbursement-system/internal/core/domain"
	"github.com/revpay/reimbursement-system/internal/core/ports"
)

const auditCollection = "reimbursement_events"

// AuditRepository appends ledger audit events to the reimbursement_events
// collection.
type AuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) ports.AuditRepository {
	return &AuditRepository{coll: db.Collection(auditCollection)}
}

func (r *AuditRepository) InsertEvent(ctx context.Context, event *domain.AuditEvent) error {
	doc := bson.M{
		"reimbursement_id": event.ReimbursementID,
		"action":           event.Action,
		"actor_id":         event.ActorID,
		"detail":           event.Detail,
		"timestamp":        event.Timestamp.UTC(),
		"recorded_at":      time.Now().UTC(),
	}

	_, err := r.coll.InsertOne(ctx, doc)
	return err
}
