package db

import (
	"context"
	"database/sql"

	"github.com/vpavlenko/signalwars/internal/server/credentials"
	"github.com/vpavlenko/signalwars/internal/server/hacksessions"
	"github.com/vpavlenko/signalwars/internal/server/identities"
	"github.com/vpavlenko/signalwars/internal/server/rounds"
	"github.com/vpavlenko/signalwars/internal/server/stations"
	"github.com/vpavlenko/signalwars/internal/server/teams"
)

// InMemoryRepositoryManager backs every repository with maps. Used by tests
// and database-less local runs; Conn returns nil and migrations are a no-op.
type InMemoryRepositoryManager struct {
	identities   *identities.InMemoryRepository
	teams        *teams.InMemoryRepository
	stations     *stations.InMemoryRepository
	rounds       *rounds.InMemoryRepository
	credentials  *credentials.InMemoryRepository
	hackSessions *hacksessions.InMemoryRepository
}

func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	return &InMemoryRepositoryManager{
		identities:   identities.NewInMemoryRepository(),
		teams:        teams.NewInMemoryRepository(),
		stations:     stations.NewInMemoryRepository(),
		rounds:       rounds.NewInMemoryRepository(),
		credentials:  credentials.NewInMemoryRepository(),
		hackSessions: hacksessions.NewInMemoryRepository(),
	}
}

func (m *InMemoryRepositoryManager) RunMigrations(ctx context.Context) error {
	return nil
}

func (m *InMemoryRepositoryManager) Conn() *sql.DB {
	return nil
}

func (m *InMemoryRepositoryManager) Identities() identities.Repository {
	return m.identities
}

func (m *InMemoryRepositoryManager) Teams() teams.Repository {
	return m.teams
}

func (m *InMemoryRepositoryManager) Stations() stations.Repository {
	return m.stations
}

func (m *InMemoryRepositoryManager) Rounds() rounds.Repository {
	return m.rounds
}

func (m *InMemoryRepositoryManager) Credentials() credentials.Repository {
	return m.credentials
}

func (m *InMemoryRepositoryManager) HackSessions() hacksessions.Repository {
	return m.hackSessions
}
