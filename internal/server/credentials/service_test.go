package credentials

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vpavlenko/signalwars/internal/logging"
)

func newTestService(t *testing.T) (*Service, *InMemoryRepository) {
	t.Helper()
	repo := NewInMemoryRepository()
	return NewService(repo, logging.NewSlogLogger(slog.Default())), repo
}

func TestRegisterDecoys_SkipsDuplicatesAndInvalid(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	svc.RegisterDecoys(ctx, []GameUser{
		{UserName: "neo", StationID: 1, Passwords: []string{"matrix"}},
		{UserName: "neo", StationID: 1, Passwords: []string{"other"}},       // duplicate name
		{UserName: "", StationID: 1, Passwords: []string{"x"}},             // missing name
		{UserName: "ghost", StationID: 1, Passwords: nil},                  // no passwords
		{UserName: "blank", StationID: 1, Passwords: []string{"ok", ""}},   // empty password
		{UserName: "trinity", StationID: 2, Passwords: []string{"a", "b"}}, // fine
	})

	one, err := svc.ListDecoysByStation(ctx, 1)
	require.NoError(t, err)
	require.Len(t, one, 1)
	require.Equal(t, "neo", one[0].UserName)
	require.Equal(t, []string{"matrix"}, one[0].Passwords)

	two, err := svc.ListDecoysByStation(ctx, 2)
	require.NoError(t, err)
	require.Len(t, two, 1)
	require.Equal(t, "trinity", two[0].UserName)
}

func TestRegisterDecoys_KeepsFirstRegistration(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	svc.RegisterDecoys(ctx, []GameUser{{UserName: "neo", StationID: 1, Passwords: []string{"first"}}})
	svc.RegisterDecoys(ctx, []GameUser{{UserName: "neo", StationID: 1, Passwords: []string{"second"}}})

	decoys, err := svc.ListDecoysByStation(ctx, 1)
	require.NoError(t, err)
	require.Len(t, decoys, 1)
	require.Equal(t, []string{"first"}, decoys[0].Passwords)
}

func TestAddFakePasswords_Union(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	merged, err := svc.AddFakePasswords(ctx, []string{"a", "b"})
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"a", "b"}, merged)

	merged, err = svc.AddFakePasswords(ctx, []string{"b", "c", "c"})
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"a", "b", "c"}, merged)

	set, err := svc.GetFakePasswords(ctx)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"a", "b", "c"}, set)
}
