package admins

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Admin is a dashboard operator. The password is stored as a bcrypt hash and
// never serialized; Role is fixed to "admin" at registration.
type Admin struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password" json:"-"`
	Role         string             `bson:"role" json:"role"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

const RoleAdmin = "admin"
