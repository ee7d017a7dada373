package repository

import (
	"context"
	"errors"

	"github.com/primeauto/showroom-api/internal/cars"
)

var ErrNotFound = errors.New("car not found")

// Repository defines persistence operations for cars.
type Repository interface {
	Create(ctx context.Context, c *cars.Car) (*cars.Car, error)
	Get(ctx context.Context, id string) (*cars.Car, error)
	List(ctx context.Context) ([]*cars.Car, error)
	Replace(ctx context.Context, c *cars.Car) error
	Delete(ctx context.Context, id string) error
}
