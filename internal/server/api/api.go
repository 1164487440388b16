// Package api is the authorized command surface of the server. Every
// externally reachable operation passes through the identity gate here before
// it reaches a domain service; transports stay thin and never authorize on
// their own.
package api

import (
	"context"

	"github.com/vpavlenko/signalwars/internal/logging"
	"github.com/vpavlenko/signalwars/internal/server/auth"
	"github.com/vpavlenko/signalwars/internal/server/broadcast"
	"github.com/vpavlenko/signalwars/internal/server/credentials"
	"github.com/vpavlenko/signalwars/internal/server/rounds"
	"github.com/vpavlenko/signalwars/internal/server/stations"
	"github.com/vpavlenko/signalwars/internal/server/teams"
)

type API struct {
	gate        *auth.Gate
	stations    *stations.Service
	rounds      *rounds.Service
	teams       teams.Repository
	credentials *credentials.Service
	hub         *broadcast.Hub
	logger      logging.Logger
}

func New(gate *auth.Gate, stationService *stations.Service, roundService *rounds.Service,
	teamRepo teams.Repository, credentialService *credentials.Service,
	hub *broadcast.Hub, logger logging.Logger) *API {
	return &API{
		gate:        gate,
		stations:    stationService,
		rounds:      roundService,
		teams:       teamRepo,
		credentials: credentialService,
		hub:         hub,
		logger:      logger.With("module", "api"),
	}
}

func (a *API) StationGet(ctx context.Context, token string, id int64) (*stations.Station, error) {
	if _, err := a.gate.Authorize(ctx, token, auth.CommandStationsGet, nil); err != nil {
		return nil, err
	}
	return a.stations.Get(ctx, id)
}

func (a *API) StationList(ctx context.Context, token string) ([]*stations.Station, error) {
	if _, err := a.gate.Authorize(ctx, token, auth.CommandStationsList, nil); err != nil {
		return nil, err
	}
	return a.stations.ListAll(ctx)
}

func (a *API) StationCreate(ctx context.Context, token string, station *stations.Station) (*stations.Station, error) {
	if _, err := a.gate.Authorize(ctx, token, auth.CommandStationsCreate, nil); err != nil {
		return nil, err
	}
	created, err := a.stations.Create(ctx, station)
	if err != nil {
		return nil, err
	}
	a.publishStations(ctx)
	return created, nil
}

func (a *API) StationUpdate(ctx context.Context, token string, id int64, params stations.UpdateParams) (*stations.Station, error) {
	if _, err := a.gate.Authorize(ctx, token, auth.CommandStationsUpdate, nil); err != nil {
		return nil, err
	}
	updated, err := a.stations.Update(ctx, id, params)
	if err != nil {
		return nil, err
	}
	a.publishStations(ctx)
	return updated, nil
}

func (a *API) StationDelete(ctx context.Context, token string, id int64) error {
	if _, err := a.gate.Authorize(ctx, token, auth.CommandStationsDelete, nil); err != nil {
		return err
	}
	if err := a.stations.Delete(ctx, id); err != nil {
		return err
	}
	a.publishStations(ctx)
	return nil
}

func (a *API) RoundGet(ctx context.Context, token string) (*rounds.Round, error) {
	if _, err := a.gate.Authorize(ctx, token, auth.CommandRoundGet, nil); err != nil {
		return nil, err
	}
	return a.rounds.Get(ctx)
}

func (a *API) RoundUpdate(ctx context.Context, token string, params rounds.UpdateParams) (*rounds.Round, error) {
	if _, err := a.gate.Authorize(ctx, token, auth.CommandRoundUpdate, nil); err != nil {
		return nil, err
	}
	return a.rounds.Update(ctx, params)
}

func (a *API) TeamList(ctx context.Context, token string) ([]*teams.Team, error) {
	if _, err := a.gate.Authorize(ctx, token, auth.CommandTeamsList, nil); err != nil {
		return nil, err
	}
	return a.teams.ListAll(ctx)
}

func (a *API) CredentialsRegister(ctx context.Context, token string, decoys []credentials.GameUser) error {
	if _, err := a.gate.Authorize(ctx, token, auth.CommandCredentialsRegister, nil); err != nil {
		return err
	}
	a.credentials.RegisterDecoys(ctx, decoys)
	return nil
}

func (a *API) CredentialsAddFake(ctx context.Context, token string, passwords []string) ([]string, error) {
	if _, err := a.gate.Authorize(ctx, token, auth.CommandCredentialsAddFake, nil); err != nil {
		return nil, err
	}
	return a.credentials.AddFakePasswords(ctx, passwords)
}

// publishStations broadcasts the full current station list after a mutation.
// Listing failures are logged; the mutation itself has already succeeded.
func (a *API) publishStations(ctx context.Context) {
	list, err := a.stations.ListAll(ctx)
	if err != nil {
		a.logger.Error(ctx, "listing stations for broadcast failed", "error", err.Error())
		return
	}
	a.hub.Publish(broadcast.TopicStationsChanged, list)
}
