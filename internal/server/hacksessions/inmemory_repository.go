package hacksessions

import (
	"context"
	"sync"

	"github.com/vpavlenko/signalwars/internal/common"
)

// InMemoryRepository is a map-backed Repository used by tests and local runs.
type InMemoryRepository struct {
	mu    sync.RWMutex
	items map[string]*Session
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{items: make(map[string]*Session)}
}

func copySession(session *Session) *Session {
	copied := *session
	copied.Candidates = append([]Candidate(nil), session.Candidates...)
	if session.ResultCoordinates != nil {
		coordinates := *session.ResultCoordinates
		copied.ResultCoordinates = &coordinates
	}
	return &copied
}

func (r *InMemoryRepository) GetByOwner(ctx context.Context, owner string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	session, ok := r.items[owner]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return copySession(session), nil
}

func (r *InMemoryRepository) Upsert(ctx context.Context, session *Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[session.Owner] = copySession(session)
	return nil
}

func (r *InMemoryRepository) SetTriesRemaining(ctx context.Context, owner string, tries int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.items[owner]
	if !ok {
		return common.ErrorNotFound
	}
	session.TriesRemaining = tries
	return nil
}

func (r *InMemoryRepository) Finalize(ctx context.Context, owner string, wasSuccessful bool, coordinates *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.items[owner]
	if !ok || session.IsDone {
		return nil
	}
	session.IsDone = true
	session.WasSuccessful = wasSuccessful
	if coordinates != nil {
		value := *coordinates
		session.ResultCoordinates = &value
	}
	return nil
}
