package storage

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"nlhe-lite/card"
	"nlhe-lite/handlog"
	"nlhe-lite/holdem"
)

func sampleRecord(t *testing.T, handName string) *handlog.HandRecord {
	t.Helper()
	players := []holdem.Player{
		{Seat: holdem.SeatUnset, StartingStack: 200},
		{Seat: holdem.SeatUnset, StartingStack: 200},
	}
	hand, err := card.ParseHand("AsKs")
	require.NoError(t, err)
	players[0].Hand = hand

	g, err := holdem.NewGame(players, 0, 5, 10)
	require.NoError(t, err)
	g.SetTableName("regression table")
	g.SetHandName(handName)
	require.NoError(t, g.PostBlinds())
	require.NoError(t, g.Fold())
	require.NoError(t, g.UncalledBet())
	require.NoError(t, g.ShowdownSimple())
	return handlog.FromGame(g)
}

func testStore(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	first := sampleRecord(t, "first hand")
	second := sampleRecord(t, "second hand")

	firstID, err := store.SaveHand(ctx, first)
	require.NoError(t, err)
	secondID, err := store.SaveHand(ctx, second)
	require.NoError(t, err)
	require.NotEqual(t, firstID, secondID)

	loaded, err := store.LoadHand(ctx, firstID)
	require.NoError(t, err)
	require.Equal(t, first, loaded)

	rebuilt, err := loaded.ToGame()
	require.NoError(t, err)
	require.Equal(t, "regression table", rebuilt.TableName())

	summaries, err := store.ListHands(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	for _, summary := range summaries {
		require.Equal(t, 2, summary.PlayerCount)
		require.Equal(t, "regression table", summary.TableName)
		require.False(t, summary.SavedAt.IsZero())
	}

	require.NoError(t, store.DeleteHand(ctx, firstID))
	_, err = store.LoadHand(ctx, firstID)
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, store.DeleteHand(ctx, firstID), ErrNotFound)

	summaries, err = store.ListHands(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	require.Equal(t, secondID, summaries[0].ID)
	require.Equal(t, "second hand", summaries[0].HandName)
}

func TestSaveHandRejectsUnfinishedHand(t *testing.T) {
	players := []holdem.Player{
		{Seat: holdem.SeatUnset, StartingStack: 200},
		{Seat: holdem.SeatUnset, StartingStack: 200},
	}
	g, err := holdem.NewGame(players, 0, 5, 10)
	require.NoError(t, err)
	require.NoError(t, g.PostBlinds())

	store := NewMemoryStore()
	defer store.Close()
	_, err = store.SaveHand(context.Background(), handlog.FromGame(g))
	require.ErrorIs(t, err, ErrHandNotFinished)
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	testStore(t, store)
}

func TestSQLiteStore(t *testing.T) {
	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)
	store, err := NewSQLiteStore(":memory:", log)
	require.NoError(t, err)
	defer store.Close()
	testStore(t, store)
}

func TestSQLiteStoreRejectsEmptyPath(t *testing.T) {
	_, err := NewSQLiteStore("   ", nil)
	require.Error(t, err)
}

func TestStorageModeFromEnv(t *testing.T) {
	cases := map[string]string{
		"":           StorageModeSQLite,
		"sqlite":     StorageModeSQLite,
		"local":      StorageModeSQLite,
		"MEM":        StorageModeMemory,
		"memory":     StorageModeMemory,
		"postgresql": StorageModePostgres,
		"pg":         StorageModePostgres,
		"bogus":      "bogus",
	}
	for raw, want := range cases {
		t.Setenv("STORAGE_MODE", raw)
		require.Equal(t, want, storageModeFromEnv(), "raw %q", raw)
	}
}

func TestNewStoreFromEnvMemory(t *testing.T) {
	t.Setenv("STORAGE_MODE", "memory")
	store, mode, err := NewStoreFromEnv(nil)
	require.NoError(t, err)
	defer store.Close()
	require.Equal(t, StorageModeMemory, mode)
	testStore(t, store)
}

func TestNewStoreFromEnvRejectsUnknownMode(t *testing.T) {
	t.Setenv("STORAGE_MODE", "carrier-pigeon")
	_, mode, err := NewStoreFromEnv(nil)
	require.Error(t, err)
	require.Equal(t, "carrier-pigeon", mode)
}
