package repository

import (
	"context"
	"errors"

	"github.com/primeauto/showroom-api/internal/admins"
)

var ErrDuplicateEmail = errors.New("admin email already registered")

// Repository defines persistence operations for admins. GetByEmail returns
// (nil, nil) when no admin matches.
type Repository interface {
	Create(ctx context.Context, a *admins.Admin) (*admins.Admin, error)
	GetByEmail(ctx context.Context, email string) (*admins.Admin, error)
}
