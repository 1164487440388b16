package stations

import (
	"context"
)

type Repository interface {
	Get(ctx context.Context, id int64) (*Station, error)
	ListAll(ctx context.Context) ([]*Station, error)
	ListActive(ctx context.Context) ([]*Station, error)
	Create(ctx context.Context, station *Station) (*Station, error)
	Update(ctx context.Context, station *Station) error
	SetSignalValue(ctx context.Context, id int64, value int) error
	Delete(ctx context.Context, id int64) error
}
