package credentials

import (
	"context"
)

type Repository interface {
	CreateGameUser(ctx context.Context, user *GameUser) error
	GetGameUserByName(ctx context.Context, userName string) (*GameUser, error)
	ListGameUsersByStation(ctx context.Context, stationID int64) ([]*GameUser, error)

	// AddFakePasswords merges the given passwords into the global fake set
	// and returns the merged set. Duplicates are ignored.
	AddFakePasswords(ctx context.Context, passwords []string) ([]string, error)
	GetFakePasswords(ctx context.Context) ([]string, error)
}
