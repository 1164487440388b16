package hacksessions

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vpavlenko/signalwars/internal/common"
)

func seedSession(t *testing.T, repo *InMemoryRepository, owner string) {
	t.Helper()
	err := repo.Upsert(context.Background(), &Session{
		Owner:     owner,
		StationID: 1,
		Candidates: []Candidate{
			{UserName: "neo", Password: "matrix", IsCorrect: true},
			{UserName: "smith", Password: "agent"},
		},
		TriesRemaining: 3,
	})
	require.NoError(t, err)
}

func TestGetByOwner_NotFound(t *testing.T) {
	repo := NewInMemoryRepository()
	_, err := repo.GetByOwner(context.Background(), "ghost")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestUpsert_ReplacesExistingSession(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()
	seedSession(t, repo, "u1")

	err := repo.Upsert(ctx, &Session{Owner: "u1", StationID: 2, TriesRemaining: 3})
	require.NoError(t, err)

	session, err := repo.GetByOwner(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, int64(2), session.StationID)
	require.Empty(t, session.Candidates)
}

func TestFinalize_Idempotent(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()
	seedSession(t, repo, "u1")

	require.NoError(t, repo.Finalize(ctx, "u1", false, nil))

	session, err := repo.GetByOwner(ctx, "u1")
	require.NoError(t, err)
	require.True(t, session.IsDone)
	require.False(t, session.WasSuccessful)

	// the duplicate call on the exhausted-tries path must be a no-op
	coordinates := "late"
	require.NoError(t, repo.Finalize(ctx, "u1", true, &coordinates))

	session, err = repo.GetByOwner(ctx, "u1")
	require.NoError(t, err)
	require.False(t, session.WasSuccessful)
	require.Nil(t, session.ResultCoordinates)
}

func TestSessionCorrect(t *testing.T) {
	session := &Session{Candidates: []Candidate{
		{UserName: "smith", Password: "agent"},
		{UserName: "neo", Password: "matrix", IsCorrect: true},
	}}
	correct := session.Correct()
	require.NotNil(t, correct)
	require.Equal(t, "neo", correct.UserName)

	require.Nil(t, (&Session{}).Correct())
}
