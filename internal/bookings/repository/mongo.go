package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/primeauto/showroom-api/internal/bookings"
)

// MongoRepo implements Repository on a MongoDB collection.
type MongoRepo struct {
	col *mongo.Collection
}

func NewMongoRepo(col *mongo.Collection) *MongoRepo {
	return &MongoRepo{col: col}
}

func (m *MongoRepo) Create(ctx context.Context, b *bookings.Booking) (*bookings.Booking, error) {
	b.CreatedAt = time.Now().UTC()
	res, err := m.col.InsertOne(ctx, b)
	if err != nil {
		return nil, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		b.ID = oid
	}
	return b, nil
}

func (m *MongoRepo) List(ctx context.Context) ([]*bookings.Booking, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := m.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []*bookings.Booking{}
	for cur.Next(ctx) {
		var b bookings.Booking
		if err := cur.Decode(&b); err != nil {
			return nil, err
		}
		out = append(out, &b)
	}
	return out, cur.Err()
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
