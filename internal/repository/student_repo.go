package repository

import (
	"context"
	"time"

	"riskwatch/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type studentRepo struct {
	coll *mongo.Collection
}

// NewStudentRepo creates a MongoDB student repository
func NewStudentRepo(db *mongo.Database) StudentRepo {
	return &studentRepo{coll: db.Collection("students")}
}

func (r *studentRepo) Create(ctx context.Context, s *model.Student) error {
	StampID(&s.ID)
	StampTime(&s.CreatedAt)
	s.UpdatedAt = s.CreatedAt
	_, err := r.coll.InsertOne(ctx, s)
	return err
}

func (r *studentRepo) GetByID(ctx context.Context, id string) (*model.Student, error) {
	var s model.Student
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&s)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *studentRepo) List(ctx context.Context, skip, limit int) ([]*model.Student, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: 1}}).
		SetSkip(int64(skip)).
		SetLimit(int64(ClampLimit(limit, 100)))
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	students := make([]*model.Student, 0)
	if err := cursor.All(ctx, &students); err != nil {
		return nil, err
	}
	return students, nil
}

func (r *studentRepo) UpdateFeatures(ctx context.Context, id string, fv model.FeatureVector) (*model.Student, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{"$set": bson.M{"features": fv, "updatedAt": time.Now().UTC()}}

	var s model.Student
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&s)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *studentRepo) Count(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{})
}
