// Package scheduler runs the background decay loop that pulls every
// station's signal back toward the default while a round is active.
package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/vpavlenko/signalwars/internal/common"
	"github.com/vpavlenko/signalwars/internal/logging"
	"github.com/vpavlenko/signalwars/internal/server/broadcast"
	"github.com/vpavlenko/signalwars/internal/server/rounds"
	"github.com/vpavlenko/signalwars/internal/server/signal"
	"github.com/vpavlenko/signalwars/internal/server/stations"
)

// DecayScheduler owns the recurring decay task. It is constructed once at
// startup and driven by Run; an interval of zero disables it entirely.
type DecayScheduler struct {
	interval time.Duration
	rounds   rounds.Repository
	stations stations.Repository
	engine   *signal.Engine
	hub      *broadcast.Hub
	logger   logging.Logger
}

func New(interval time.Duration, roundRepo rounds.Repository, stationRepo stations.Repository,
	engine *signal.Engine, hub *broadcast.Hub, logger logging.Logger) *DecayScheduler {
	return &DecayScheduler{
		interval: interval,
		rounds:   roundRepo,
		stations: stationRepo,
		engine:   engine,
		hub:      hub,
		logger:   logger.With("module", "decay_scheduler"),
	}
}

// Run ticks until the context is cancelled. A tick that is already in flight
// always runs to completion.
func (s *DecayScheduler) Run(ctx context.Context) {

	if s.interval <= 0 {
		s.logger.Info(ctx, "decay scheduler disabled")
		return
	}

	s.logger.Info(ctx, "starting decay scheduler", "interval", s.interval.String())

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info(ctx, "stopping decay scheduler")
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

// tick performs one decay pass: skip everything while the round is inactive,
// otherwise publish the post-decay station list and step every off-default
// station one unit toward the default.
func (s *DecayScheduler) tick(ctx context.Context) {

	round, err := s.rounds.Get(ctx)
	if err != nil {
		if !errors.Is(err, common.ErrorNotFound) {
			s.logger.Error(ctx, "fetching round failed", "error", err.Error())
		}
		return
	}
	if !round.IsActive {
		return
	}

	list, err := s.stations.ListAll(ctx)
	if err != nil {
		s.logger.Error(ctx, "listing stations failed", "error", err.Error())
		return
	}

	params := s.engine.Params()

	var changed []*stations.Station
	for _, station := range list {
		if station.SignalValue == params.DefaultValue {
			continue
		}
		station.SignalValue = params.DecayTarget(station.SignalValue)
		changed = append(changed, station)
	}

	if len(changed) == 0 {
		return
	}

	// one event carrying the full updated list, then per-station persistence
	s.hub.Publish(broadcast.TopicStationsChanged, list)

	for _, station := range changed {
		if _, err := s.engine.DecayStep(ctx, station.ID); err != nil {
			s.logger.Error(ctx, "decay step failed", "station_id", station.ID, "error", err.Error())
		}
	}
}
