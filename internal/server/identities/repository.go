package identities

import (
	"context"
)

type Repository interface {
	GetByID(ctx context.Context, id string) (*Identity, error)
}
