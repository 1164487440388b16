package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/vpavlenko/signalwars/internal/server/credentials"
	"github.com/vpavlenko/signalwars/internal/server/hacksessions"
	"github.com/vpavlenko/signalwars/internal/server/identities"
	"github.com/vpavlenko/signalwars/internal/server/migrations"
	"github.com/vpavlenko/signalwars/internal/server/rounds"
	"github.com/vpavlenko/signalwars/internal/server/stations"
	"github.com/vpavlenko/signalwars/internal/server/teams"
)

type PostgresRepositoryManager struct {
	db           *sql.DB
	identities   identities.Repository
	teams        teams.Repository
	stations     stations.Repository
	rounds       rounds.Repository
	credentials  credentials.Repository
	hackSessions hacksessions.Repository
}

func (m *PostgresRepositoryManager) Conn() *sql.DB {
	return m.db
}

func (m *PostgresRepositoryManager) Identities() identities.Repository {
	return m.identities
}

func (m *PostgresRepositoryManager) Teams() teams.Repository {
	return m.teams
}

func (m *PostgresRepositoryManager) Stations() stations.Repository {
	return m.stations
}

func (m *PostgresRepositoryManager) Rounds() rounds.Repository {
	return m.rounds
}

func (m *PostgresRepositoryManager) Credentials() credentials.Repository {
	return m.credentials
}

func (m *PostgresRepositoryManager) HackSessions() hacksessions.Repository {
	return m.hackSessions
}

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.UpContext(ctx, m.db, "."); err != nil {
		return err
	}

	return nil
}

func NewPostgresRepositoryManager(dsn string) (RepositoryManager, error) {

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	identityRepo, err := identities.NewPostgresRepository(db)
	if err != nil {
		return nil, fmt.Errorf("identity repo creation error: %w", err)
	}

	teamRepo, err := teams.NewPostgresRepository(db)
	if err != nil {
		return nil, fmt.Errorf("team repo creation error: %w", err)
	}

	stationRepo, err := stations.NewPostgresRepository(db)
	if err != nil {
		return nil, fmt.Errorf("station repo creation error: %w", err)
	}

	roundRepo, err := rounds.NewPostgresRepository(db)
	if err != nil {
		return nil, fmt.Errorf("round repo creation error: %w", err)
	}

	credentialRepo, err := credentials.NewPostgresRepository(db)
	if err != nil {
		return nil, fmt.Errorf("credential repo creation error: %w", err)
	}

	hackSessionRepo, err := hacksessions.NewPostgresRepository(db)
	if err != nil {
		return nil, fmt.Errorf("hack session repo creation error: %w", err)
	}

	m := &PostgresRepositoryManager{
		db:           db,
		identities:   identityRepo,
		teams:        teamRepo,
		stations:     stationRepo,
		rounds:       roundRepo,
		credentials:  credentialRepo,
		hackSessions: hackSessionRepo,
	}

	err = m.RunMigrations(context.Background())
	if err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return m, nil
}
