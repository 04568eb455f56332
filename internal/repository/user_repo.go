package repository

import (
	"context"
	"strings"

	"riskwatch/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type userRepo struct {
	coll *mongo.Collection
}

// NewUserRepo creates a MongoDB user repository
func NewUserRepo(db *mongo.Database) UserRepo {
	return &userRepo{coll: db.Collection("users")}
}

func (r *userRepo) Create(ctx context.Context, u *model.User) error {
	StampID(&u.ID)
	StampTime(&u.CreatedAt)
	u.Email = strings.ToLower(u.Email)
	_, err := r.coll.InsertOne(ctx, u)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return err
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findOne(ctx, bson.M{"email": strings.ToLower(email)})
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *userRepo) findOne(ctx context.Context, filter bson.M) (*model.User, error) {
	var u model.User
	err := r.coll.FindOne(ctx, filter).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
