package hacksessions

import (
	"context"
	"database/sql"
	"encoding/json"
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

func (r *PostgresRepository) GetByOwner(ctx context.Context, owner string) (*Session, error) {
	query :=
		`SELECT owner, station_id, candidates, tries_remaining, is_done, was_successful, result_coordinates
		 FROM hack_sessions
		 WHERE owner = $1
		 `

	session := &Session{}
	var candidates []byte
	var coordinates sql.NullString

	err := r.db.QueryRowContext(ctx, query, owner).Scan(&session.Owner, &session.StationID,
		&candidates, &session.TriesRemaining, &session.IsDone, &session.WasSuccessful, &coordinates)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}

	if err := json.Unmarshal(candidates, &session.Candidates); err != nil {
		return nil, fmt.Errorf("error unmarshalling candidates: %v", err)
	}
	if coordinates.Valid {
		session.ResultCoordinates = &coordinates.String
	}

	return session, nil
}

func (r *PostgresRepository) Upsert(ctx context.Context, session *Session) error {
	candidates, err := json.Marshal(session.Candidates)
	if err != nil {
		return fmt.Errorf("error marshalling candidates: %v", err)
	}

	query :=
		`INSERT INTO hack_sessions (owner, station_id, candidates, tries_remaining, is_done, was_successful, result_coordinates)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (owner) DO UPDATE SET
		     station_id = EXCLUDED.station_id,
		     candidates = EXCLUDED.candidates,
		     tries_remaining = EXCLUDED.tries_remaining,
		     is_done = EXCLUDED.is_done,
		     was_successful = EXCLUDED.was_successful,
		     result_coordinates = EXCLUDED.result_coordinates
		 `

	_, err = r.db.ExecContext(ctx, query, session.Owner, session.StationID, candidates,
		session.TriesRemaining, session.IsDone, session.WasSuccessful, session.ResultCoordinates)
	if err != nil {
		return fmt.Errorf("error performing sql request: %v", err)
	}

	return nil
}

func (r *PostgresRepository) SetTriesRemaining(ctx context.Context, owner string, tries int) error {
	query :=
		`UPDATE hack_sessions SET tries_remaining = $2
		 WHERE owner = $1
		 `

	result, err := r.db.ExecContext(ctx, query, owner, tries)
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

func (r *PostgresRepository) Finalize(ctx context.Context, owner string, wasSuccessful bool, coordinates *string) error {
	query :=
		`UPDATE hack_sessions
		 SET is_done = TRUE, was_successful = $2, result_coordinates = $3
		 WHERE owner = $1 AND NOT is_done
		 `

	// Zero affected rows means the session is either absent or already done;
	// finalization is idempotent, so both are fine.
	_, err := r.db.ExecContext(ctx, query, owner, wasSuccessful, coordinates)
	if err != nil {
		return fmt.Errorf("error performing sql request: %v", err)
	}

	return nil
}
