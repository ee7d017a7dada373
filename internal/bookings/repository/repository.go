package repository

import (
	"context"
	"errors"

	"github.com/primeauto/showroom-api/internal/bookings"
)

var ErrNotFound = errors.New("booking not found")

// Repository defines persistence operations for bookings.
type Repository interface {
	Create(ctx context.Context, b *bookings.Booking) (*bookings.Booking, error)
	List(ctx context.Context) ([]*bookings.Booking, error)
	Delete(ctx context.Context, id string) error
}
