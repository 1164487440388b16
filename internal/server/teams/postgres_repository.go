package teams

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/vpavlenko/signalwars/internal/common"
)

const pgUniqueViolation = "23505"

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) (*PostgresRepository, error) {
	return &PostgresRepository{db: db}, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*Team, error) {
	query :=
		`SELECT id, name, short_name, points, is_active FROM teams
		 WHERE id = $1
		 `

	team := &Team{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&team.ID, &team.Name, &team.ShortName, &team.Points, &team.IsActive)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}

	return team, nil
}

func (r *PostgresRepository) ListAll(ctx context.Context) ([]*Team, error) {
	query :=
		`SELECT id, name, short_name, points, is_active FROM teams
		 ORDER BY id
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}
	defer rows.Close()

	var teams []*Team
	for rows.Next() {
		team := &Team{}
		if err := rows.Scan(&team.ID, &team.Name, &team.ShortName, &team.Points, &team.IsActive); err != nil {
			return nil, fmt.Errorf("error scanning row: %v", err)
		}
		teams = append(teams, team)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading rows: %v", err)
	}

	return teams, nil
}

func (r *PostgresRepository) Create(ctx context.Context, team *Team) (*Team, error) {
	query :=
		`INSERT INTO teams (name, short_name, points, is_active)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query, team.Name, team.ShortName, team.Points, team.IsActive).Scan(&team.ID)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}

	return team, nil
}
