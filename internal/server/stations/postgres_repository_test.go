package stations

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"github.com/vpavlenko/signalwars/internal/common"
)

func newMockRepo(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	repo, err := NewPostgresRepository(db)
	require.NoError(t, err)
	return repo, mock, db
}

func stationColumns() []string {
	return []string{"id", "name", "signal_value", "is_active", "owner_team_id", "is_under_attack", "calibration_reward"}
}

func TestPostgresGet(t *testing.T) {
	repo, mock, _ := newMockRepo(t)

	rows := sqlmock.NewRows(stationColumns()).
		AddRow(1, "alpha", 130, true, nil, false, 20)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, signal_value")).
		WithArgs(int64(1)).WillReturnRows(rows)

	station, err := repo.Get(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, "alpha", station.Name)
	require.Nil(t, station.OwnerTeamID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGet_NotFound(t *testing.T) {
	repo, mock, _ := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, signal_value")).
		WithArgs(int64(9)).WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), 9)
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestPostgresSetSignalValue(t *testing.T) {
	repo, mock, _ := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE stations SET signal_value")).
		WithArgs(int64(1), 128).WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SetSignalValue(context.Background(), 1, 128))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSetSignalValue_NotFound(t *testing.T) {
	repo, mock, _ := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE stations SET signal_value")).
		WithArgs(int64(9), 128).WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SetSignalValue(context.Background(), 9, 128)
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestPostgresListAll(t *testing.T) {
	repo, mock, _ := newMockRepo(t)

	rows := sqlmock.NewRows(stationColumns()).
		AddRow(1, "alpha", 130, true, int64(7), true, 20).
		AddRow(2, "beta", 110, false, nil, false, 30)
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY id")).WillReturnRows(rows)

	stations, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, stations, 2)
	require.NotNil(t, stations[0].OwnerTeamID)
	require.Equal(t, int64(7), *stations[0].OwnerTeamID)
	require.Nil(t, stations[1].OwnerTeamID)
}
