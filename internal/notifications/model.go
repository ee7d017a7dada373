package notifications

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification is an append-only dashboard message.
type Notification struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Message   string             `bson:"message" json:"message"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
