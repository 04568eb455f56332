package repository

import (
	"context"
	"time"

	"riskwatch/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type journalRepo struct {
	client  *mongo.Client
	entries *mongo.Collection
	audit   *mongo.Collection
}

// NewJournalRepo creates a MongoDB journal repository
func NewJournalRepo(db *mongo.Database) JournalRepo {
	return &journalRepo{
		client:  db.Client(),
		entries: db.Collection("journal_entries"),
		audit:   db.Collection("audit_logs"),
	}
}

func (r *journalRepo) Save(ctx context.Context, e *model.JournalEntry, audit *model.AuditLog) error {
	StampID(&e.ID)
	StampTime(&e.CreatedAt)
	if audit != nil {
		PrepareAudit(audit, e.StudentID, e.CreatedAt)
	}
	return withTransaction(ctx, r.client, func(sc mongo.SessionContext) error {
		if _, err := r.entries.InsertOne(sc, e); err != nil {
			return err
		}
		if audit != nil {
			if _, err := r.audit.InsertOne(sc, audit); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *journalRepo) ListByStudent(ctx context.Context, studentID string, limit int) ([]*model.JournalEntry, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(ClampLimit(limit, 100)))
	cursor, err := r.entries.Find(ctx, bson.M{"studentId": studentID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	out := make([]*model.JournalEntry, 0)
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *journalRepo) CountCrisisSince(ctx context.Context, since time.Time) (int64, error) {
	return r.entries.CountDocuments(ctx, bson.M{
		"crisisFlag": true,
		"createdAt":  bson.M{"$gte": since},
	})
}
