package identities

import (
	"context"
	"sync"

	"github.com/vpavlenko/signalwars/internal/common"
)

// InMemoryRepository is a map-backed Repository used by tests and local runs.
type InMemoryRepository struct {
	mu    sync.RWMutex
	items map[string]*Identity
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{items: make(map[string]*Identity)}
}

// Put stores or replaces an identity record.
func (r *InMemoryRepository) Put(identity *Identity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *identity
	r.items[identity.ID] = &copied
}

func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*Identity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	identity, ok := r.items[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	copied := *identity
	return &copied, nil
}
