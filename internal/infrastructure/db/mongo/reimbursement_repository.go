package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/revpay/reimbursement-system/internal/core/domain"
	"github.com/revpay/reimbursement-system/internal/core/ports"
)

const reimbursementsCollection = "reimbursements"

// ReimbursementRepository implements ports.ReimbursementRepository using MongoDB.
type ReimbursementRepository struct {
	coll *mongo.Collection
}

func NewReimbursementRepository(db *mongo.Database) *ReimbursementRepository {
	return &ReimbursementRepository{coll: db.Collection(reimbursementsCollection)}
}

type mongoReimbursement struct {
	ID            primitive.ObjectID          `bson:"_id,omitempty"`
	OwnerUserID   string                      `bson:"owner_user_id"`
	Amount        float64                     `bson:"amount"`
	Description   string                      `bson:"description"`
	Status        string                      `bson:"status"`
	CreatedAt     time.Time                   `bson:"created_at"`
	UpdatedAt     time.Time                   `bson:"updated_at"`
	ResolvedBy    string                      `bson:"resolved_by,omitempty"`
	ResolvedAt    *time.Time                  `bson:"resolved_at,omitempty"`
	StatusHistory []domain.StatusHistoryEntry `bson:"status_history,omitempty"`
}

func (mr mongoReimbursement) toDomain() *domain.Reimbursement {
	return &domain.Reimbursement{
		ID:            mr.ID.Hex(),
		OwnerUserID:   mr.OwnerUserID,
		Amount:        mr.Amount,
		Description:   mr.Description,
		Status:        domain.ReimbursementStatus(mr.Status),
		CreatedAt:     mr.CreatedAt,
		UpdatedAt:     mr.UpdatedAt,
		ResolvedBy:    mr.ResolvedBy,
		ResolvedAt:    mr.ResolvedAt,
		StatusHistory: mr.StatusHistory,
	}
}

func (r *ReimbursementRepository) Create(ctx context.Context, rec *domain.Reimbursement) (*domain.Reimbursement, error) {
	doc := mongoReimbursement{
		ID:            primitive.NewObjectID(),
		OwnerUserID:   rec.OwnerUserID,
		Amount:        rec.Amount,
		Description:   rec.Description,
		Status:        string(rec.Status),
		CreatedAt:     rec.CreatedAt,
		UpdatedAt:     rec.UpdatedAt,
		StatusHistory: rec.StatusHistory,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert reimbursement: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ReimbursementRepository) FindByID(ctx context.Context, id string) (*domain.Reimbursement, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrReimbursementNotFound
	}

	var mr mongoReimbursement
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mr); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrReimbursementNotFound
		}
		return nil, fmt.Errorf("find reimbursement: %w", err)
	}
	return mr.toDomain(), nil
}

// List returns matching reimbursements in creation order.
func (r *ReimbursementRepository) List(ctx context.Context, filter ports.ReimbursementFilter) ([]*domain.Reimbursement, error) {
	query := bson.M{}
	if filter.OwnerUserID != "" {
		query["owner_user_id"] = filter.OwnerUserID
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("list reimbursements: %w", err)
	}
	defer cursor.Close(ctx)

	records := make([]*domain.Reimbursement, 0)
	for cursor.Next(ctx) {
		var mr mongoReimbursement
		if err := cursor.Decode(&mr); err != nil {
			return nil, fmt.Errorf("decode reimbursement: %w", err)
		}
		records = append(records, mr.toDomain())
	}
	return records, cursor.Err()
}

// UpdatePending applies the edit only while the persisted status is still
// pending (compare-and-swap on status).
func (r *ReimbursementRepository) UpdatePending(ctx context.Context, id string, amount float64, description string) (*domain.Reimbursement, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrReimbursementNotFound
	}

	filter := bson.M{"_id": oid, "status": string(domain.StatusPending)}
	update := bson.M{"$set": bson.M{
		"amount":      amount,
		"description": description,
		"updated_at":  time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var mr mongoReimbursement
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&mr); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, r.missOrResolved(ctx, oid)
		}
		return nil, fmt.Errorf("update reimbursement: %w", err)
	}
	return mr.toDomain(), nil
}

// Resolve transitions pending → decision exactly once. The filter on the
// pending status guarantees that of two racing resolves only one matches.
func (r *ReimbursementRepository) Resolve(ctx context.Context, id string, decision domain.ReimbursementStatus, resolvedBy string, at time.Time) (*domain.Reimbursement, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrReimbursementNotFound
	}

	filter := bson.M{"_id": oid, "status": string(domain.StatusPending)}
	update := bson.M{
		"$set": bson.M{
			"status":      string(decision),
			"resolved_by": resolvedBy,
			"resolved_at": at,
			"updated_at":  at,
		},
		"$push": bson.M{"status_history": domain.StatusHistoryEntry{
			Status:    decision,
			Timestamp: at,
			ActorID:   resolvedBy,
		}},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var mr mongoReimbursement
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&mr); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, r.missOrResolved(ctx, oid)
		}
		return nil, fmt.Errorf("resolve reimbursement: %w", err)
	}
	return mr.toDomain(), nil
}

// Delete removes the record unconditionally. A missing record is treated as
// already deleted.
func (r *ReimbursementRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrReimbursementNotFound
	}
	if _, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return fmt.Errorf("delete reimbursement: %w", err)
	}
	return nil
}

// missOrResolved distinguishes a CAS miss caused by an absent record from one
// caused by a record that already left pending.
func (r *ReimbursementRepository) missOrResolved(ctx context.Context, oid primitive.ObjectID) error {
	err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.ErrReimbursementNotFound
	}
	if err != nil {
		return fmt.Errorf("check reimbursement: %w", err)
	}
	return domain.ErrInvalidTransition
}

// EnsureIndexes creates the owner and status indexes used by the list queries
// and the cascade delete.
func (r *ReimbursementRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner_user_id", Value: 1}, {Key: "created_at", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
