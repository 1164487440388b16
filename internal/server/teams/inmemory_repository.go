package teams

import (
	"context"
	"sort"
	"sync"

	"github.com/vpavlenko/signalwars/internal/common"
)

// InMemoryRepository is a map-backed Repository used by tests and local runs.
type InMemoryRepository struct {
	mu     sync.RWMutex
	items  map[int64]*Team
	nextID int64
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{items: make(map[int64]*Team), nextID: 1}
}

func (r *InMemoryRepository) GetByID(ctx context.Context, id int64) (*Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	team, ok := r.items[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	copied := *team
	return &copied, nil
}

func (r *InMemoryRepository) ListAll(ctx context.Context) ([]*Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var teams []*Team
	for _, team := range r.items {
		copied := *team
		teams = append(teams, &copied)
	}
	sort.Slice(teams, func(i, j int) bool { return teams[i].ID < teams[j].ID })
	return teams, nil
}

func (r *InMemoryRepository) Create(ctx context.Context, team *Team) (*Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.items {
		if existing.Name == team.Name || existing.ShortName == team.ShortName {
			return nil, common.ErrorAlreadyExists
		}
	}

	team.ID = r.nextID
	r.nextID++
	copied := *team
	r.items[team.ID] = &copied
	return team, nil
}
