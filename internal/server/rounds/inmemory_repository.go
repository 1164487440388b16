package rounds

import (
	"context"
	"sync"

	"github.com/vpavlenko/signalwars/internal/common"
)

// InMemoryRepository holds the singleton round in memory. Used by tests and
// local runs.
type InMemoryRepository struct {
	mu    sync.RWMutex
	round *Round
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{}
}

func (r *InMemoryRepository) Get(ctx context.Context) (*Round, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.round == nil {
		return nil, common.ErrorNotFound
	}
	copied := *r.round
	return &copied, nil
}

func (r *InMemoryRepository) Create(ctx context.Context, round *Round) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.round != nil {
		return nil
	}
	copied := *round
	r.round = &copied
	return nil
}

func (r *InMemoryRepository) Update(ctx context.Context, round *Round) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.round == nil {
		return common.ErrorNotFound
	}
	copied := *round
	r.round = &copied
	return nil
}
