package store

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/nstepura/matmarket/internal/cart"
	carterrors "github.com/nstepura/matmarket/internal/cart/errors"
)

// memory is an in-memory implementation of CartStore. One mutex guards all
// carts so concurrent requests for the same user resolve in invocation order.
type memory struct {
	mu    sync.RWMutex
	carts map[string][]cart.Line
}

// NewMemoryStore creates an empty in-memory cart store.
func NewMemoryStore() CartStore {
	return &memory{carts: make(map[string][]cart.Line)}
}

func (m *memory) Get(_ context.Context, userID string) ([]cart.Line, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	lines := m.carts[userID]
	out := make([]cart.Line, len(lines))
	for i, l := range lines {
		out[i] = l.Clone()
	}
	return out, nil
}

func (m *memory) Put(_ context.Context, userID string, line cart.Line) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	lines := m.carts[userID]
	for i, l := range lines {
		if l.Product.ID == line.Product.ID {
			lines[i] = line.Clone()
			return nil
		}
	}
	m.carts[userID] = append(lines, line.Clone())
	return nil
}

func (m *memory) Remove(_ context.Context, userID string, productID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	lines := m.carts[userID]
	for i, l := range lines {
		if l.Product.ID == productID {
			m.carts[userID] = append(lines[:i], lines[i+1:]...)
			return nil
		}
	}
	return carterrors.ErrItemNotFound
}

func (m *memory) Clear(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.carts, userID)
	return nil
}

func (m *memory) Find(_ context.Context, userID string, productID uuid.UUID) (*cart.Line, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, l := range m.carts[userID] {
		if l.Product.ID == productID {
			clone := l.Clone()
			return &clone, nil
		}
	}
	return nil, carterrors.ErrItemNotFound
}
