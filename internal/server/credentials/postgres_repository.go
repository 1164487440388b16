package credentials

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/vpavlenko/signalwars/internal/common"
	"github.com/vpavlenko/signalwars/internal/dbx"
)

const pgUniqueViolation = "23505"

// fakePasswordSetID is the primary key of the singleton fake-password row.
const fakePasswordSetID = 1

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) (*PostgresRepository, error) {
	return &PostgresRepository{db: db}, nil
}

func (r *PostgresRepository) CreateGameUser(ctx context.Context, user *GameUser) error {
	passwords, err := json.Marshal(user.Passwords)
	if err != nil {
		return fmt.Errorf("error marshalling passwords: %v", err)
	}

	query :=
		`INSERT INTO game_users (user_name, station_id, passwords)
		 VALUES ($1, $2, $3)
		 `

	_, err = r.db.ExecContext(ctx, query, user.UserName, user.StationID, passwords)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return common.ErrorAlreadyExists
		}
		return fmt.Errorf("error performing sql request: %v", err)
	}

	return nil
}

func scanGameUser(row interface{ Scan(...any) error }) (*GameUser, error) {
	user := &GameUser{}
	var passwords []byte

	if err := row.Scan(&user.UserName, &user.StationID, &passwords); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(passwords, &user.Passwords); err != nil {
		return nil, fmt.Errorf("error unmarshalling passwords: %v", err)
	}

	return user, nil
}

func (r *PostgresRepository) GetGameUserByName(ctx context.Context, userName string) (*GameUser, error) {
	query :=
		`SELECT user_name, station_id, passwords FROM game_users
		 WHERE user_name = $1
		 `

	user, err := scanGameUser(r.db.QueryRowContext(ctx, query, userName))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}

	return user, nil
}

func (r *PostgresRepository) ListGameUsersByStation(ctx context.Context, stationID int64) ([]*GameUser, error) {
	query :=
		`SELECT user_name, station_id, passwords FROM game_users
		 WHERE station_id = $1
		 ORDER BY user_name
		 `

	rows, err := r.db.QueryContext(ctx, query, stationID)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}
	defer rows.Close()

	var users []*GameUser
	for rows.Next() {
		user, err := scanGameUser(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %v", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading rows: %v", err)
	}

	return users, nil
}

// AddFakePasswords merges inside a transaction so two concurrent imports do
// not overwrite each other's additions.
func (r *PostgresRepository) AddFakePasswords(ctx context.Context, passwords []string) ([]string, error) {

	var merged []string

	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		current, err := getFakePasswords(ctx, tx)
		if err != nil && !errors.Is(err, common.ErrorNotFound) {
			return err
		}

		merged = mergePasswordSets(current, passwords)

		encoded, err := json.Marshal(merged)
		if err != nil {
			return fmt.Errorf("error marshalling passwords: %v", err)
		}

		query :=
			`INSERT INTO fake_passwords (id, passwords)
			 VALUES ($1, $2)
			 ON CONFLICT (id) DO UPDATE SET passwords = EXCLUDED.passwords
			 `

		if _, err := tx.ExecContext(ctx, query, fakePasswordSetID, encoded); err != nil {
			return fmt.Errorf("error performing sql request: %v", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return merged, nil
}

func getFakePasswords(ctx context.Context, db dbx.DBTX) ([]string, error) {
	query :=
		`SELECT passwords FROM fake_passwords
		 WHERE id = $1
		 `

	var encoded []byte
	err := db.QueryRowContext(ctx, query, fakePasswordSetID).Scan(&encoded)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}

	var passwords []string
	if err := json.Unmarshal(encoded, &passwords); err != nil {
		return nil, fmt.Errorf("error unmarshalling passwords: %v", err)
	}

	return passwords, nil
}

func (r *PostgresRepository) GetFakePasswords(ctx context.Context) ([]string, error) {
	passwords, err := getFakePasswords(ctx, r.db)
	if errors.Is(err, common.ErrorNotFound) {
		return nil, nil
	}
	return passwords, err
}

// mergePasswordSets unions two password lists, preserving first-seen order.
func mergePasswordSets(current, added []string) []string {
	seen := make(map[string]struct{}, len(current)+len(added))
	merged := make([]string, 0, len(current)+len(added))

	for _, lists := range [][]string{current, added} {
		for _, password := range lists {
			if _, ok := seen[password]; ok {
				continue
			}
			seen[password] = struct{}{}
			merged = append(merged, password)
		}
	}

	return merged
}
