package identities

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vpavlenko/signalwars/internal/common"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) (*PostgresRepository, error) {
	return &PostgresRepository{db: db}, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Identity, error) {
	query :=
		`SELECT id, privilege_level, is_banned, is_verified FROM identities
		 WHERE id = $1
		 `

	identity := &Identity{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&identity.ID, &identity.PrivilegeLevel, &identity.IsBanned, &identity.IsVerified)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}

	return identity, nil
}
