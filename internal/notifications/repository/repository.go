package repository

import (
	"context"

	"github.com/primeauto/showroom-api/internal/notifications"
)

// Repository defines persistence for notifications: append and list only.
type Repository interface {
	Create(ctx context.Context, n *notifications.Notification) (*notifications.Notification, error)
	List(ctx context.Context) ([]*notifications.Notification, error)
}
