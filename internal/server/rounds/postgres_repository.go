package rounds

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vpavlenko/signalwars/internal/common"
)

// roundID is the primary key of the singleton round row.
const roundID = 1

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) (*PostgresRepository, error) {
	return &PostgresRepository{db: db}, nil
}

func (r *PostgresRepository) Get(ctx context.Context) (*Round, error) {
	query :=
		`SELECT is_active, start_time, end_time FROM rounds
		 WHERE id = $1
		 `

	round := &Round{}
	err := r.db.QueryRowContext(ctx, query, roundID).Scan(&round.IsActive, &round.StartTime, &round.EndTime)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}

	return round, nil
}

func (r *PostgresRepository) Create(ctx context.Context, round *Round) error {
	query :=
		`INSERT INTO rounds (id, is_active, start_time, end_time)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (id) DO NOTHING
		 `

	_, err := r.db.ExecContext(ctx, query, roundID, round.IsActive, round.StartTime, round.EndTime)
	if err != nil {
		return fmt.Errorf("error performing sql request: %v", err)
	}

	return nil
}

func (r *PostgresRepository) Update(ctx context.Context, round *Round) error {
	query :=
		`UPDATE rounds SET is_active = $2, start_time = $3, end_time = $4
		 WHERE id = $1
		 `

	result, err := r.db.ExecContext(ctx, query, roundID, round.IsActive, round.StartTime, round.EndTime)
	if err != nil {
		return fmt.Errorf("error performing sql request: %v", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading affected rows: %v", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}

	return nil
}
