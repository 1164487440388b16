package hacking

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vpavlenko/signalwars/internal/common"
	"github.com/vpavlenko/signalwars/internal/logging"
	"github.com/vpavlenko/signalwars/internal/server/auth"
	"github.com/vpavlenko/signalwars/internal/server/broadcast"
	"github.com/vpavlenko/signalwars/internal/server/config"
	"github.com/vpavlenko/signalwars/internal/server/credentials"
	"github.com/vpavlenko/signalwars/internal/server/hacksessions"
	"github.com/vpavlenko/signalwars/internal/server/identities"
	"github.com/vpavlenko/signalwars/internal/server/notify"
	"github.com/vpavlenko/signalwars/internal/server/signal"
	"github.com/vpavlenko/signalwars/internal/server/stations"
)

type fixture struct {
	service     *Service
	sessions    *hacksessions.InMemoryRepository
	stations    *stations.InMemoryRepository
	credentials *credentials.InMemoryRepository
	hub         *broadcast.Hub
	token       string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	cfg := &config.Config{}
	cfg.LoadDefaults()

	logger := logging.NewSlogLogger(slog.Default())

	identityRepo := identities.NewInMemoryRepository()
	identityRepo.Put(&identities.Identity{ID: "player-1", PrivilegeLevel: auth.LevelUser})
	gate := auth.NewGate(identityRepo, cfg)

	token, err := auth.GenerateToken("player-1", []byte(cfg.SecretKey), time.Hour)
	require.NoError(t, err)

	sessionRepo := hacksessions.NewInMemoryRepository()
	stationRepo := stations.NewInMemoryRepository()
	credentialRepo := credentials.NewInMemoryRepository()
	credentialPool := credentials.NewService(credentialRepo, logger)
	hub := broadcast.NewHub(logger)

	engine := signal.NewEngine(signal.ParamsFromConfig(cfg), stationRepo, notify.NoopReporter{}, logger)

	rnd := rand.New(rand.NewPCG(1, 2))
	service := NewService(gate, sessionRepo, credentialPool, engine, hub, cfg, logger, rnd)

	return &fixture{
		service:     service,
		sessions:    sessionRepo,
		stations:    stationRepo,
		credentials: credentialRepo,
		hub:         hub,
		token:       token,
	}
}

func (f *fixture) seedStation(t *testing.T, id int64, name string, value int) {
	t.Helper()
	_, err := f.stations.Create(context.Background(), &stations.Station{ID: id, Name: name, SignalValue: value})
	require.NoError(t, err)
}

func (f *fixture) seedDecoy(t *testing.T, stationID int64, userName string, passwords ...string) {
	t.Helper()
	err := f.credentials.CreateGameUser(context.Background(), &credentials.GameUser{
		UserName:  userName,
		StationID: stationID,
		Passwords: passwords,
	})
	require.NoError(t, err)
}

func (f *fixture) seedFakes(t *testing.T, passwords ...string) {
	t.Helper()
	_, err := f.credentials.AddFakePasswords(context.Background(), passwords)
	require.NoError(t, err)
}

func (f *fixture) correctPassword(t *testing.T) string {
	t.Helper()
	session, err := f.sessions.GetByOwner(context.Background(), "player-1")
	require.NoError(t, err)
	correct := session.Correct()
	require.NotNil(t, correct)
	return correct.Password
}

func manyFakes(n int) []string {
	fakes := make([]string, 0, n)
	for i := 0; i < n; i++ {
		fakes = append(fakes, "fake"+strings.Repeat("x", i+1))
	}
	return fakes
}

func TestStartOrFetch_RequiresUserLevel(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.StartOrFetch(context.Background(), "", 1)
	require.ErrorIs(t, err, common.ErrorNotAllowed)
}

func TestStartOrFetch_NoDecoysForStation(t *testing.T) {
	f := newFixture(t)
	f.seedStation(t, 1, "alpha", 130)

	_, err := f.service.StartOrFetch(context.Background(), f.token, 1)
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestStartOrFetch_BuildsPuzzle(t *testing.T) {
	f := newFixture(t)
	f.seedStation(t, 1, "alpha", 130)
	f.seedDecoy(t, 1, "ghost", "orbit", "comet")
	f.seedDecoy(t, 1, "wraith", "nebula")
	f.seedFakes(t, manyFakes(20)...)

	view, err := f.service.StartOrFetch(context.Background(), f.token, 1)
	require.NoError(t, err)

	require.Equal(t, int64(1), view.StationID)
	require.Equal(t, 3, view.TriesRemaining)
	require.Contains(t, []string{"ghost", "wraith"}, view.UserName)

	session, err := f.sessions.GetByOwner(context.Background(), "player-1")
	require.NoError(t, err)
	require.Len(t, session.Candidates, 2)

	correct := session.Correct()
	require.NotNil(t, correct)
	require.Equal(t, correct.UserName, view.UserName)
	require.Equal(t, correct.PasswordKind, view.PasswordKind)
	require.Equal(t, string(correct.Password[correct.Hint.Index]), view.Hint.Char)

	// 13 fakes plus the distinct candidate passwords
	distinct := map[string]struct{}{}
	for _, candidate := range session.Candidates {
		distinct[candidate.Password] = struct{}{}
	}
	require.Len(t, view.Passwords, 13+len(distinct))
	for _, candidate := range session.Candidates {
		require.Contains(t, view.Passwords, candidate.Password)
	}
}

func TestStartOrFetch_SingleDecoyStation(t *testing.T) {
	f := newFixture(t)
	f.seedStation(t, 1, "alpha", 130)
	f.seedDecoy(t, 1, "ghost", "orbit")

	view, err := f.service.StartOrFetch(context.Background(), f.token, 1)
	require.NoError(t, err)

	require.Equal(t, "ghost", view.UserName)
	require.Contains(t, view.Passwords, "orbit")

	session, err := f.sessions.GetByOwner(context.Background(), "player-1")
	require.NoError(t, err)
	require.Len(t, session.Candidates, 1)
	require.True(t, session.Candidates[0].IsCorrect)
}

func TestStartOrFetch_SameStationKeepsPuzzle(t *testing.T) {
	f := newFixture(t)
	f.seedStation(t, 1, "alpha", 130)
	f.seedDecoy(t, 1, "ghost", "orbit")
	f.seedDecoy(t, 1, "wraith", "nebula")

	first, err := f.service.StartOrFetch(context.Background(), f.token, 1)
	require.NoError(t, err)

	// burn a try so a rebuild would be visible
	_, err = f.service.SubmitGuess(context.Background(), f.token, "wrong", true)
	require.NoError(t, err)

	second, err := f.service.StartOrFetch(context.Background(), f.token, 1)
	require.NoError(t, err)

	require.Equal(t, first.UserName, second.UserName)
	require.Equal(t, first.PasswordKind, second.PasswordKind)
	require.Equal(t, first.Hint, second.Hint)
	require.Equal(t, 2, second.TriesRemaining)
}

func TestStartOrFetch_NewStationReplacesSession(t *testing.T) {
	f := newFixture(t)
	f.seedStation(t, 1, "alpha", 130)
	f.seedStation(t, 2, "beta", 130)
	f.seedDecoy(t, 1, "ghost", "orbit")
	f.seedDecoy(t, 2, "wraith", "nebula")

	_, err := f.service.StartOrFetch(context.Background(), f.token, 1)
	require.NoError(t, err)
	_, err = f.service.SubmitGuess(context.Background(), f.token, "wrong", true)
	require.NoError(t, err)

	view, err := f.service.StartOrFetch(context.Background(), f.token, 2)
	require.NoError(t, err)

	require.Equal(t, int64(2), view.StationID)
	require.Equal(t, 3, view.TriesRemaining)
	require.Equal(t, "wraith", view.UserName)
}

func TestStartOrFetch_ReplacesResolvedSession(t *testing.T) {
	f := newFixture(t)
	f.seedStation(t, 1, "alpha", 130)
	f.seedStation(t, 2, "beta", 130)
	f.seedDecoy(t, 1, "ghost", "orbit")
	f.seedDecoy(t, 2, "wraith", "nebula")

	_, err := f.service.StartOrFetch(context.Background(), f.token, 1)
	require.NoError(t, err)
	result, err := f.service.SubmitGuess(context.Background(), f.token, f.correctPassword(t), true)
	require.NoError(t, err)
	require.True(t, result.Success)

	view, err := f.service.StartOrFetch(context.Background(), f.token, 2)
	require.NoError(t, err)
	require.Equal(t, int64(2), view.StationID)

	session, err := f.sessions.GetByOwner(context.Background(), "player-1")
	require.NoError(t, err)
	require.False(t, session.IsDone)
}

func TestSubmitGuess_NoSession(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.SubmitGuess(context.Background(), f.token, "orbit", true)
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestSubmitGuess_CorrectBoostsAndResolves(t *testing.T) {
	f := newFixture(t)
	f.seedStation(t, 1, "alpha", 130)
	f.seedDecoy(t, 1, "ghost", "orbit")

	_, events := f.hub.Subscribe(4)

	_, err := f.service.StartOrFetch(context.Background(), f.token, 1)
	require.NoError(t, err)

	result, err := f.service.SubmitGuess(context.Background(), f.token, f.correctPassword(t), true)
	require.NoError(t, err)
	require.True(t, result.Success)
	require.True(t, result.BoostingSignal)
	require.Nil(t, result.Matches)

	station, err := f.stations.Get(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, 132, station.SignalValue)

	session, err := f.sessions.GetByOwner(context.Background(), "player-1")
	require.NoError(t, err)
	require.True(t, session.IsDone)
	require.True(t, session.WasSuccessful)
	require.Equal(t, 3, session.TriesRemaining, "a correct guess must not consume a try")
	require.NotNil(t, session.ResultCoordinates)
	require.Equal(t, "alpha", *session.ResultCoordinates)

	event := <-events
	require.Equal(t, broadcast.TopicHackActivity, event.Topic)
	activity, ok := event.Payload.(HackActivity)
	require.True(t, ok)
	require.Equal(t, int64(1), activity.StationID)
	require.Equal(t, "alpha", activity.StationName)
	require.True(t, activity.Boosting)
}

func TestSubmitGuess_CorrectIgnoresCase(t *testing.T) {
	f := newFixture(t)
	f.seedStation(t, 1, "alpha", 130)
	f.seedDecoy(t, 1, "ghost", "Orbit")

	_, err := f.service.StartOrFetch(context.Background(), f.token, 1)
	require.NoError(t, err)

	result, err := f.service.SubmitGuess(context.Background(), f.token, strings.ToUpper(f.correctPassword(t)), false)
	require.NoError(t, err)
	require.True(t, result.Success)
	require.False(t, result.BoostingSignal)

	station, err := f.stations.Get(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, 128, station.SignalValue)
}

func TestSubmitGuess_WrongDecrementsAndReportsMatches(t *testing.T) {
	f := newFixture(t)
	f.seedStation(t, 1, "alpha", 130)
	f.seedDecoy(t, 1, "ghost", "ba")

	_, err := f.service.StartOrFetch(context.Background(), f.token, 1)
	require.NoError(t, err)

	// position is ignored: every char of "ab" occurs in "ba"
	result, err := f.service.SubmitGuess(context.Background(), f.token, "ab", true)
	require.NoError(t, err)
	require.False(t, result.Success)
	require.Equal(t, 2, result.TriesRemaining)
	require.NotNil(t, result.Matches)
	require.Equal(t, 2, result.Matches.Amount)

	station, err := f.stations.Get(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, 130, station.SignalValue, "a wrong guess must not move the signal")
}

func TestSubmitGuess_ExhaustedTriesFailSession(t *testing.T) {
	f := newFixture(t)
	f.seedStation(t, 1, "alpha", 130)
	f.seedDecoy(t, 1, "ghost", "orbit")

	_, err := f.service.StartOrFetch(context.Background(), f.token, 1)
	require.NoError(t, err)

	for tries := 2; tries >= 1; tries-- {
		result, err := f.service.SubmitGuess(context.Background(), f.token, "wrong", true)
		require.NoError(t, err)
		require.False(t, result.Success)
		require.Equal(t, tries, result.TriesRemaining)
	}

	result, err := f.service.SubmitGuess(context.Background(), f.token, "wrong", true)
	require.NoError(t, err)
	require.False(t, result.Success)
	require.Equal(t, 0, result.TriesRemaining)
	require.Nil(t, result.Matches)

	session, err := f.sessions.GetByOwner(context.Background(), "player-1")
	require.NoError(t, err)
	require.True(t, session.IsDone)
	require.False(t, session.WasSuccessful)
	require.Nil(t, session.ResultCoordinates)

	// a resolved session rejects further guesses
	_, err = f.service.SubmitGuess(context.Background(), f.token, "orbit", true)
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestSubmitGuess_AdjustFailureKeepsSessionActive(t *testing.T) {
	f := newFixture(t)
	f.seedStation(t, 1, "alpha", 130)
	f.seedDecoy(t, 1, "ghost", "orbit")

	_, err := f.service.StartOrFetch(context.Background(), f.token, 1)
	require.NoError(t, err)
	password := f.correctPassword(t)

	// the station disappears between puzzle start and the guess
	require.NoError(t, f.stations.Delete(context.Background(), 1))

	_, err = f.service.SubmitGuess(context.Background(), f.token, password, true)
	require.Error(t, err)

	session, err := f.sessions.GetByOwner(context.Background(), "player-1")
	require.NoError(t, err)
	require.False(t, session.IsDone)
	require.Equal(t, 3, session.TriesRemaining)
}

func TestMatchCount(t *testing.T) {
	tests := []struct {
		guess   string
		correct string
		want    int
	}{
		{guess: "ab", correct: "ba", want: 2},
		{guess: "abc", correct: "xyz", want: 0},
		{guess: "aaa", correct: "za", want: 3},
		{guess: "orbit", correct: "orbit", want: 5},
		{guess: "", correct: "orbit", want: 0},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, matchCount(tt.guess, tt.correct), "%s vs %s", tt.guess, tt.correct)
	}
}
