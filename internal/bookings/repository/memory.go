package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/primeauto/showroom-api/internal/bookings"
)

// MemoryRepo is an in-memory Repository used by unit tests.
type MemoryRepo struct {
	mu    sync.RWMutex
	store map[string]*bookings.Booking
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{store: make(map[string]*bookings.Booking)}
}

func (m *MemoryRepo) Create(ctx context.Context, b *bookings.Booking) (*bookings.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if b.ID.IsZero() {
		b.ID = primitive.NewObjectID()
	}
	b.CreatedAt = time.Now().UTC()
	cp := *b
	m.store[b.ID.Hex()] = &cp
	return b, nil
}

func (m *MemoryRepo) List(ctx context.Context) ([]*bookings.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*bookings.Booking, 0, len(m.store))
	for _, b := range m.store {
		cp := *b
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *MemoryRepo) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[id]; !ok {
		return ErrNotFound
	}
	delete(m.store, id)
	return nil
}
