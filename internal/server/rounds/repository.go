package rounds

import (
	"context"
)

type Repository interface {
	Get(ctx context.Context) (*Round, error)
	Create(ctx context.Context, round *Round) error
	Update(ctx context.Context, round *Round) error
}
