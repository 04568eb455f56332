package repository

import (
	"context"

	"riskwatch/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type assessmentRepo struct {
	client      *mongo.Client
	assessments *mongo.Collection
	audit       *mongo.Collection
}

// NewAssessmentRepo creates a MongoDB assessment repository. Save uses a
// multi-document transaction, so the server must run as a replica set.
func NewAssessmentRepo(db *mongo.Database) AssessmentRepo {
	return &assessmentRepo{
		client:      db.Client(),
		assessments: db.Collection("risk_assessments"),
		audit:       db.Collection("audit_logs"),
	}
}

func (r *assessmentRepo) Save(ctx context.Context, a *model.RiskAssessment, audit *model.AuditLog) error {
	StampID(&a.ID)
	StampTime(&a.CreatedAt)
	if audit != nil {
		PrepareAudit(audit, a.StudentID, a.CreatedAt)
	}
	return withTransaction(ctx, r.client, func(sc mongo.SessionContext) error {
		if _, err := r.assessments.InsertOne(sc, a); err != nil {
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

func (r *assessmentRepo) QueryRecent(ctx context.Context, studentID string, limit int) ([]*model.RiskAssessment, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(ClampLimit(limit, 1000)))
	cursor, err := r.assessments.Find(ctx, bson.M{"studentId": studentID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	out := make([]*model.RiskAssessment, 0)
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *assessmentRepo) CountByTier(ctx context.Context) (map[model.RiskTier]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$tier"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}
	cursor, err := r.assessments.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Tier  model.RiskTier `bson:"_id"`
		Count int64          `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	counts := make(map[model.RiskTier]int64, len(rows))
	for _, row := range rows {
		counts[row.Tier] = row.Count
	}
	return counts, nil
}

// withTransaction runs fn inside a session transaction
func withTransaction(ctx context.Context, client *mongo.Client, fn func(sc mongo.SessionContext) error) error {
	session, err := client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}
