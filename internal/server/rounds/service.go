package rounds

import (
	"context"

	"github.com/vpavlenko/signalwars/internal/logging"
	"github.com/vpavlenko/signalwars/internal/server/broadcast"
	"github.com/vpavlenko/signalwars/internal/server/config"
	"github.com/vpavlenko/signalwars/internal/server/stations"
)

// ActivityChange is the payload broadcast whenever the round's activity flag
// flips.
type ActivityChange struct {
	IsActive bool
}

type Service struct {
	repo               Repository
	stations           stations.Repository
	hub                *broadcast.Hub
	signalDefaultValue int
	logger             logging.Logger
}

func NewService(repo Repository, stationRepo stations.Repository, hub *broadcast.Hub, cfg *config.Config, logger logging.Logger) *Service {
	return &Service{
		repo:               repo,
		stations:           stationRepo,
		hub:                hub,
		signalDefaultValue: cfg.SignalDefaultValue,
		logger:             logger.With("module", "round_service"),
	}
}

func (s *Service) Get(ctx context.Context) (*Round, error) {
	return s.repo.Get(ctx)
}

// EnsureExists creates the singleton round record when absent. It is
// idempotent and safe to run on every startup.
func (s *Service) EnsureExists(ctx context.Context) error {
	return s.repo.Create(ctx, &Round{IsActive: false})
}

// Update applies a partial update to the round. Fields that are not supplied
// keep their prior values. Flipping the activity flag additionally:
//
//   - broadcasts an activity-change notification, and
//   - on deactivation, resets every station's signal value to the default.
func (s *Service) Update(ctx context.Context, params UpdateParams) (*Round, error) {

	round, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}

	wasActive := round.IsActive

	if params.IsActive != nil {
		round.IsActive = *params.IsActive
	}
	if params.StartTime != nil {
		round.StartTime = *params.StartTime
	}
	if params.EndTime != nil {
		round.EndTime = *params.EndTime
	}

	if err := s.repo.Update(ctx, round); err != nil {
		return nil, err
	}

	if round.IsActive != wasActive {
		s.hub.Publish(broadcast.TopicRoundActivity, ActivityChange{IsActive: round.IsActive})

		if !round.IsActive {
			s.resetStations(ctx)
		}
	}

	return round, nil
}

// resetStations pulls every station back to the default signal value. Errors
// are logged and skipped so one bad record cannot wedge the round toggle.
func (s *Service) resetStations(ctx context.Context) {
	list, err := s.stations.ListAll(ctx)
	if err != nil {
		s.logger.Error(ctx, "listing stations for reset failed", "error", err.Error())
		return
	}

	for _, station := range list {
		if station.SignalValue == s.signalDefaultValue {
			continue
		}
		if err := s.stations.SetSignalValue(ctx, station.ID, s.signalDefaultValue); err != nil {
			s.logger.Error(ctx, "resetting station signal failed",
				"station_id", station.ID, "error", err.Error())
		}
	}
}
