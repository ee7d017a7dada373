package repository

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/primeauto/showroom-api/internal/admins"
)

// MemoryRepo is an in-memory Repository used by unit tests.
type MemoryRepo struct {
	mu      sync.RWMutex
	byEmail map[string]*admins.Admin
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byEmail: make(map[string]*admins.Admin)}
}

func (m *MemoryRepo) Create(ctx context.Context, a *admins.Admin) (*admins.Admin, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byEmail[a.Email]; ok {
		return nil, ErrDuplicateEmail
	}
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now
	cp := *a
	m.byEmail[a.Email] = &cp
	return a, nil
}

func (m *MemoryRepo) GetByEmail(ctx context.Context, email string) (*admins.Admin, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if a, ok := m.byEmail[email]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, nil
}
