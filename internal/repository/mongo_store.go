package repository

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// OpenMongo connects, pings, ensures indexes and returns the Mongo-backed store
func OpenMongo(ctx context.Context, uri, database string) (*Store, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to MongoDB: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping MongoDB: %w", err)
	}
	log.Println("[Mongo] Connected to MongoDB")

	db := client.Database(database)
	if err := EnsureIndexes(connectCtx, db); err != nil {
		log.Printf("[Mongo] Index creation failed: %v", err)
	}

	return &Store{
		Students:    NewStudentRepo(db),
		Assessments: NewAssessmentRepo(db),
		Journals:    NewJournalRepo(db),
		Users:       NewUserRepo(db),
		Audit:       NewAuditRepo(db),
		Close:       client.Disconnect,
	}, nil
}

// EnsureIndexes creates the lookup and uniqueness indexes
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		"users": {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		"risk_assessments": {
			{Keys: bson.D{{Key: "studentId", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
		"journal_entries": {
			{Keys: bson.D{{Key: "studentId", Value: 1}, {Key: "createdAt", Value: -1}}},
			{Keys: bson.D{{Key: "crisisFlag", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
		"audit_logs": {
			{Keys: bson.D{{Key: "timestamp", Value: -1}}},
		},
	}
	for coll, models := range indexes {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", coll, err)
		}
	}
	return nil
}
