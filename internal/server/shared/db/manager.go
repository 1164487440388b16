// Package db wires the storage layer together: one manager owns the
// connection, the migrations, and every repository.
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

type RepositoryManager interface {
	RunMigrations(context.Context) error
	Conn() *sql.DB
	Identities() identities.Repository
	Teams() teams.Repository
	Stations() stations.Repository
	Rounds() rounds.Repository
	Credentials() credentials.Repository
	HackSessions() hacksessions.Repository
}
