package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/primeauto/showroom-api/internal/cars"
)

// MemoryRepo is an in-memory Repository used by unit tests.
type MemoryRepo struct {
	mu    sync.RWMutex
	store map[string]*cars.Car
}

// clone copies the car including its images slice so stored documents never
// alias caller-held slices.
func clone(c *cars.Car) *cars.Car {
	cp := *c
	cp.Images = append([]cars.Image(nil), c.Images...)
	return &cp
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{store: make(map[string]*cars.Car)}
}

func (m *MemoryRepo) Create(ctx context.Context, c *cars.Car) (*cars.Car, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	m.store[c.ID.Hex()] = clone(c)
	return c, nil
}

func (m *MemoryRepo) Get(ctx context.Context, id string) (*cars.Car, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if c, ok := m.store[id]; ok {
		return clone(c), nil
	}
	return nil, ErrNotFound
}

func (m *MemoryRepo) List(ctx context.Context) ([]*cars.Car, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*cars.Car, 0, len(m.store))
	for _, c := range m.store {
		out = append(out, clone(c))
	}
	// newest first
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *MemoryRepo) Replace(ctx context.Context, c *cars.Car) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[c.ID.Hex()]; !ok {
		return ErrNotFound
	}
	c.UpdatedAt = time.Now().UTC()
	m.store[c.ID.Hex()] = clone(c)
	return nil
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
