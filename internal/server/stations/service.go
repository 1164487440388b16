package stations

import (
	"context"
	"fmt"

	"github.com/vpavlenko/signalwars/internal/common"
	"github.com/vpavlenko/signalwars/internal/server/config"
)

// UpdateParams carries a partial station update. Nil fields are left
// untouched. The three ownership-related fields are mutually exclusive per
// call and are applied with a fixed precedence, see Service.Update.
type UpdateParams struct {
	Name              *string
	SignalValue       *int
	IsActive          *bool
	OwnerTeamID       *int64
	ResetOwner        bool
	IsUnderAttack     *bool
	CalibrationReward *int
}

type Service struct {
	repo                 Repository
	calibrationRewardMin int
	calibrationRewardMax int
}

func NewService(repo Repository, cfg *config.Config) *Service {
	return &Service{
		repo:                 repo,
		calibrationRewardMin: cfg.CalibrationRewardMin,
		calibrationRewardMax: cfg.CalibrationRewardMax,
	}
}

func (s *Service) Get(ctx context.Context, id int64) (*Station, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) ListAll(ctx context.Context) ([]*Station, error) {
	return s.repo.ListAll(ctx)
}

func (s *Service) ListActive(ctx context.Context) ([]*Station, error) {
	return s.repo.ListActive(ctx)
}

func (s *Service) validateReward(reward int) error {
	if reward < s.calibrationRewardMin || reward > s.calibrationRewardMax {
		return fmt.Errorf("calibration reward %d outside [%d, %d]: %w",
			reward, s.calibrationRewardMin, s.calibrationRewardMax, common.ErrorInvalidData)
	}
	return nil
}

func (s *Service) Create(ctx context.Context, station *Station) (*Station, error) {
	if station.Name == "" {
		return nil, fmt.Errorf("station name is empty: %w", common.ErrorInvalidData)
	}
	if err := s.validateReward(station.CalibrationReward); err != nil {
		return nil, err
	}

	return s.repo.Create(ctx, station)
}

// Update applies a partial update to a station. Ownership fields follow a
// fixed precedence, first match wins:
//
//  1. ResetOwner, or OwnerTeamID equal to the OwnerTeamReset sentinel, clears
//     ownership and the under-attack flag.
//  2. A supplied OwnerTeamID sets ownership and clears the under-attack flag.
//  3. A supplied IsUnderAttack is applied standalone.
func (s *Service) Update(ctx context.Context, id int64, params UpdateParams) (*Station, error) {

	station, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		station.Name = *params.Name
	}
	if params.SignalValue != nil {
		station.SignalValue = *params.SignalValue
	}
	if params.IsActive != nil {
		station.IsActive = *params.IsActive
	}
	if params.CalibrationReward != nil {
		if err := s.validateReward(*params.CalibrationReward); err != nil {
			return nil, err
		}
		station.CalibrationReward = *params.CalibrationReward
	}

	switch {
	case params.ResetOwner || (params.OwnerTeamID != nil && *params.OwnerTeamID == OwnerTeamReset):
		station.OwnerTeamID = nil
		station.IsUnderAttack = false
	case params.OwnerTeamID != nil:
		station.OwnerTeamID = params.OwnerTeamID
		station.IsUnderAttack = false
	case params.IsUnderAttack != nil:
		station.IsUnderAttack = *params.IsUnderAttack
	}

	if err := s.repo.Update(ctx, station); err != nil {
		return nil, err
	}

	return station, nil
}

func (s *Service) SetSignalValue(ctx context.Context, id int64, value int) error {
	return s.repo.SetSignalValue(ctx, id, value)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
