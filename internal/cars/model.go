package cars

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Image references a binary object held by the image store. The Car document
// is the source of truth for which assets belong to the car; AssetID is the
// stable handle the store deletes by.
type Image struct {
	URL     string `bson:"url" json:"url"`
	AssetID string `bson:"assetId" json:"assetId"`
}

// Car is an inventory entry. A car carries at least one image once creation
// succeeds.
type Car struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Price       float64            `bson:"price" json:"price"`
	Description string             `bson:"description" json:"description"`
	Images      []Image            `bson:"images" json:"images"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
