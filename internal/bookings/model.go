package bookings

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/primeauto/showroom-api/internal/cars"
)

// Booking is a test-drive request. Bookings are immutable once created and
// always reference an existing car at creation time.
type Booking struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"name"`
	Email         string             `bson:"email" json:"email"`
	Phone         string             `bson:"phone" json:"phone"`
	PreferredDate string             `bson:"preferredDate" json:"preferredDate"`
	Message       string             `bson:"message,omitempty" json:"message,omitempty"`
	CarID         primitive.ObjectID `bson:"car" json:"carId"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}

// WithCar is the admin-listing shape: the booking plus its car expanded for
// display. Car is nil when the referenced car has since been deleted.
type WithCar struct {
	Booking
	Car *cars.Car `json:"car"`
}
