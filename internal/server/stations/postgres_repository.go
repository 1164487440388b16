package stations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/vpavlenko/signalwars/internal/common"
)

// pgUniqueViolation is the PostgreSQL error code for unique constraint
// violations.
const pgUniqueViolation = "23505"

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) (*PostgresRepository, error) {
	return &PostgresRepository{db: db}, nil
}

func scanStation(row interface{ Scan(...any) error }) (*Station, error) {
	station := &Station{}
	var ownerTeamID sql.NullInt64

	err := row.Scan(&station.ID, &station.Name, &station.SignalValue, &station.IsActive,
		&ownerTeamID, &station.IsUnderAttack, &station.CalibrationReward)
	if err != nil {
		return nil, err
	}

	if ownerTeamID.Valid {
		station.OwnerTeamID = &ownerTeamID.Int64
	}

	return station, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id int64) (*Station, error) {
	query :=
		`SELECT id, name, signal_value, is_active, owner_team_id, is_under_attack, calibration_reward
		 FROM stations
		 WHERE id = $1
		 `

	station, err := scanStation(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}

	return station, nil
}

func (r *PostgresRepository) list(ctx context.Context, query string) ([]*Station, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}
	defer rows.Close()

	var stations []*Station
	for rows.Next() {
		station, err := scanStation(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %v", err)
		}
		stations = append(stations, station)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading rows: %v", err)
	}

	return stations, nil
}

func (r *PostgresRepository) ListAll(ctx context.Context) ([]*Station, error) {
	query :=
		`SELECT id, name, signal_value, is_active, owner_team_id, is_under_attack, calibration_reward
		 FROM stations
		 ORDER BY id
		 `
	return r.list(ctx, query)
}

func (r *PostgresRepository) ListActive(ctx context.Context) ([]*Station, error) {
	query :=
		`SELECT id, name, signal_value, is_active, owner_team_id, is_under_attack, calibration_reward
		 FROM stations
		 WHERE is_active
		 ORDER BY id
		 `
	return r.list(ctx, query)
}

func (r *PostgresRepository) Create(ctx context.Context, station *Station) (*Station, error) {
	query :=
		`INSERT INTO stations (id, name, signal_value, is_active, owner_team_id, is_under_attack, calibration_reward)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 `

	_, err := r.db.ExecContext(ctx, query, station.ID, station.Name, station.SignalValue,
		station.IsActive, station.OwnerTeamID, station.IsUnderAttack, station.CalibrationReward)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}

	return station, nil
}

func (r *PostgresRepository) Update(ctx context.Context, station *Station) error {
	query :=
		`UPDATE stations
		 SET name = $2, signal_value = $3, is_active = $4, owner_team_id = $5,
		     is_under_attack = $6, calibration_reward = $7
		 WHERE id = $1
		 `

	result, err := r.db.ExecContext(ctx, query, station.ID, station.Name, station.SignalValue,
		station.IsActive, station.OwnerTeamID, station.IsUnderAttack, station.CalibrationReward)
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

func (r *PostgresRepository) SetSignalValue(ctx context.Context, id int64, value int) error {
	query :=
		`UPDATE stations SET signal_value = $2
		 WHERE id = $1
		 `

	result, err := r.db.ExecContext(ctx, query, id, value)
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

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	query :=
		`DELETE FROM stations
		 WHERE id = $1
		 `

	result, err := r.db.ExecContext(ctx, query, id)
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
