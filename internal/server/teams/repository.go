package teams

import (
	"context"
)

type Repository interface {
	GetByID(ctx context.Context, id int64) (*Team, error)
	ListAll(ctx context.Context) ([]*Team, error)
	Create(ctx context.Context, team *Team) (*Team, error)
}
