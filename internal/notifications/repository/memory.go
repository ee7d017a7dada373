package repository

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/primeauto/showroom-api/internal/notifications"
)

// MemoryRepo is an in-memory Repository used by unit tests.
type MemoryRepo struct {
	mu   sync.RWMutex
	list []*notifications.Notification
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

func (m *MemoryRepo) Create(ctx context.Context, n *notifications.Notification) (*notifications.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if n.ID.IsZero() {
		n.ID = primitive.NewObjectID()
	}
	n.CreatedAt = time.Now().UTC()
	cp := *n
	// prepend: newest first
	m.list = append([]*notifications.Notification{&cp}, m.list...)
	return n, nil
}

func (m *MemoryRepo) List(ctx context.Context) ([]*notifications.Notification, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*notifications.Notification, 0, len(m.list))
	for _, n := range m.list {
		cp := *n
		out = append(out, &cp)
	}
	return out, nil
}
