package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/primeauto/showroom-api/internal/admins"
)

// MongoRepo implements Repository using MongoDB.
type MongoRepo struct {
	col *mongo.Collection
}

func NewMongoRepo(col *mongo.Collection) *MongoRepo {
	// email is the login key and must be unique
	idxModel := mongo.IndexModel{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)}
	col.Indexes().CreateOne(context.Background(), idxModel)
	return &MongoRepo{col: col}
}

func (r *MongoRepo) Create(ctx context.Context, a *admins.Admin) (*admins.Admin, error) {
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now
	res, err := r.col.InsertOne(ctx, a)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		a.ID = oid
	}
	return a, nil
}

func (r *MongoRepo) GetByEmail(ctx context.Context, email string) (*admins.Admin, error) {
	var a admins.Admin
	if err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&a); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}
