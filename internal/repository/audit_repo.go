package repository

import (
	"context"

	"riskwatch/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type auditRepo struct {
	coll *mongo.Collection
}

// NewAuditRepo creates a MongoDB audit trail reader
func NewAuditRepo(db *mongo.Database) AuditRepo {
	return &auditRepo{coll: db.Collection("audit_logs")}
}

func (r *auditRepo) List(ctx context.Context, limit int) ([]*model.AuditLog, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(int64(ClampLimit(limit, 500)))
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	out := make([]*model.AuditLog, 0)
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
