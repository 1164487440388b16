package credentials

import (
	"context"
	"errors"

	"github.com/vpavlenko/signalwars/internal/common"
	"github.com/vpavlenko/signalwars/internal/logging"
)

type Service struct {
	repo   Repository
	logger logging.Logger
}

func NewService(repo Repository, logger logging.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger.With("module", "credential_pool"),
	}
}

// RegisterDecoys imports decoy identities best-effort: entries whose user
// name is already taken, entries that fail validation, and entries whose
// lookup or insert errors are skipped silently. Bulk imports report no
// partial failures.
func (s *Service) RegisterDecoys(ctx context.Context, decoys []GameUser) {

	for i := range decoys {
		decoy := decoys[i]

		if !validDecoy(&decoy) {
			s.logger.Debug(ctx, "skipping invalid decoy", "user_name", decoy.UserName)
			continue
		}

		_, err := s.repo.GetGameUserByName(ctx, decoy.UserName)
		if err == nil {
			// already registered
			continue
		}
		if !errors.Is(err, common.ErrorNotFound) {
			s.logger.Debug(ctx, "skipping decoy after lookup error",
				"user_name", decoy.UserName, "error", err.Error())
			continue
		}

		if err := s.repo.CreateGameUser(ctx, &decoy); err != nil {
			s.logger.Debug(ctx, "skipping decoy after insert error",
				"user_name", decoy.UserName, "error", err.Error())
		}
	}
}

// validDecoy rejects entries the puzzle builder could not use: a missing
// name, no passwords, or an empty password (hints index into the password).
func validDecoy(decoy *GameUser) bool {
	if decoy.UserName == "" || len(decoy.Passwords) == 0 {
		return false
	}
	for _, password := range decoy.Passwords {
		if password == "" {
			return false
		}
	}
	return true
}

func (s *Service) ListDecoysByStation(ctx context.Context, stationID int64) ([]*GameUser, error) {
	return s.repo.ListGameUsersByStation(ctx, stationID)
}

func (s *Service) AddFakePasswords(ctx context.Context, passwords []string) ([]string, error) {
	return s.repo.AddFakePasswords(ctx, passwords)
}

func (s *Service) GetFakePasswords(ctx context.Context) ([]string, error) {
	return s.repo.GetFakePasswords(ctx)
}
