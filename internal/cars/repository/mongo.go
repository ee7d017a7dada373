package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/primeauto/showroom-api/internal/cars"
)

// MongoRepo implements Repository on a MongoDB collection.
type MongoRepo struct {
	col *mongo.Collection
}

func NewMongoRepo(col *mongo.Collection) *MongoRepo {
	// index for the storefront search on name and price
	idxModel := mongo.IndexModel{Keys: bson.D{{Key: "name", Value: 1}, {Key: "price", Value: 1}}}
	col.Indexes().CreateOne(context.Background(), idxModel)
	return &MongoRepo{col: col}
}

func (m *MongoRepo) Create(ctx context.Context, c *cars.Car) (*cars.Car, error) {
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	res, err := m.col.InsertOne(ctx, c)
	if err != nil {
		return nil, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		c.ID = oid
	}
	return c, nil
}

func (m *MongoRepo) Get(ctx context.Context, id string) (*cars.Car, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var c cars.Car
	if err := m.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&c); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (m *MongoRepo) List(ctx context.Context) ([]*cars.Car, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := m.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []*cars.Car{}
	for cur.Next(ctx) {
		var c cars.Car
		if err := cur.Decode(&c); err != nil {
			return nil, err
		}
		out = append(out, &c)
	}
	return out, cur.Err()
}

func (m *MongoRepo) Replace(ctx context.Context, c *cars.Car) error {
	c.UpdatedAt = time.Now().UTC()
	res, err := m.col.ReplaceOne(ctx, bson.M{"_id": c.ID}, c)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *MongoRepo) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	res, err := m.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
