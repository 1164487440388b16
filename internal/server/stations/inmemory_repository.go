package stations

import (
	"context"
	"sort"
	"sync"

	"github.com/vpavlenko/signalwars/internal/common"
)

// InMemoryRepository is a map-backed Repository used by tests and local runs.
type InMemoryRepository struct {
	mu    sync.RWMutex
	items map[int64]*Station
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{items: make(map[int64]*Station)}
}

func copyStation(station *Station) *Station {
	copied := *station
	if station.OwnerTeamID != nil {
		ownerTeamID := *station.OwnerTeamID
		copied.OwnerTeamID = &ownerTeamID
	}
	return &copied
}

func (r *InMemoryRepository) Get(ctx context.Context, id int64) (*Station, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	station, ok := r.items[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return copyStation(station), nil
}

func (r *InMemoryRepository) list(filter func(*Station) bool) []*Station {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var stations []*Station
	for _, station := range r.items {
		if filter == nil || filter(station) {
			stations = append(stations, copyStation(station))
		}
	}

	sort.Slice(stations, func(i, j int) bool { return stations[i].ID < stations[j].ID })
	return stations
}

func (r *InMemoryRepository) ListAll(ctx context.Context) ([]*Station, error) {
	return r.list(nil), nil
}

func (r *InMemoryRepository) ListActive(ctx context.Context) ([]*Station, error) {
	return r.list(func(s *Station) bool { return s.IsActive }), nil
}

func (r *InMemoryRepository) Create(ctx context.Context, station *Station) (*Station, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[station.ID]; ok {
		return nil, common.ErrorAlreadyExists
	}
	r.items[station.ID] = copyStation(station)
	return station, nil
}

func (r *InMemoryRepository) Update(ctx context.Context, station *Station) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[station.ID]; !ok {
		return common.ErrorNotFound
	}
	r.items[station.ID] = copyStation(station)
	return nil
}

func (r *InMemoryRepository) SetSignalValue(ctx context.Context, id int64, value int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	station, ok := r.items[id]
	if !ok {
		return common.ErrorNotFound
	}
	station.SignalValue = value
	return nil
}

func (r *InMemoryRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.items, id)
	return nil
}
