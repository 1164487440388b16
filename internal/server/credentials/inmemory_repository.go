package credentials

import (
	"context"
	"sort"
	"sync"

	"github.com/vpavlenko/signalwars/internal/common"
)

// InMemoryRepository is a map-backed Repository used by tests and local runs.
type InMemoryRepository struct {
	mu    sync.RWMutex
	users map[string]*GameUser
	fakes []string
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{users: make(map[string]*GameUser)}
}

func copyGameUser(user *GameUser) *GameUser {
	copied := *user
	copied.Passwords = append([]string(nil), user.Passwords...)
	return &copied
}

func (r *InMemoryRepository) CreateGameUser(ctx context.Context, user *GameUser) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.UserName]; ok {
		return common.ErrorAlreadyExists
	}
	r.users[user.UserName] = copyGameUser(user)
	return nil
}

func (r *InMemoryRepository) GetGameUserByName(ctx context.Context, userName string) (*GameUser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[userName]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return copyGameUser(user), nil
}

func (r *InMemoryRepository) ListGameUsersByStation(ctx context.Context, stationID int64) ([]*GameUser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var users []*GameUser
	for _, user := range r.users {
		if user.StationID == stationID {
			users = append(users, copyGameUser(user))
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].UserName < users[j].UserName })
	return users, nil
}

func (r *InMemoryRepository) AddFakePasswords(ctx context.Context, passwords []string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fakes = mergePasswordSets(r.fakes, passwords)
	return append([]string(nil), r.fakes...), nil
}

func (r *InMemoryRepository) GetFakePasswords(ctx context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.fakes...), nil
}
