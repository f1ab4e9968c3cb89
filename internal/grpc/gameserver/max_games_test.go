package gameserver

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T, cfg ManagerConfig) *GameManager {
	t.Helper()
	cfg.Logger = zerolog.Nop()
	gm := NewGameManager(cfg)
	t.Cleanup(gm.Close)
	return gm
}

// TestMaxGamesLimit tests that the manager correctly enforces the max games limit
func TestMaxGamesLimit(t *testing.T) {
	maxGames := 3
	gm := newTestManager(t, ManagerConfig{MaxGames: maxGames})

	// Create games up to the limit
	for i := 0; i < maxGames; i++ {
		snap, err := gm.CreateGame(context.Background(), GameParams{Size: 5})
		require.NoError(t, err, "Should be able to create game %d", i+1)
		require.NotEmpty(t, snap.GameID)
	}
	assert.Equal(t, maxGames, gm.GetActiveGames())

	// Try to create one more game - should fail
	_, err := gm.CreateGame(context.Background(), GameParams{Size: 5})
	require.Error(t, err, "Should not be able to create game beyond limit")
	assert.True(t, errors.Is(err, ErrAtCapacity))
	assert.Contains(t, err.Error(), "server at capacity")
	assert.Equal(t, maxGames, gm.GetActiveGames())

	// Deleting a game frees a slot
	games := gm.ListGames()
	require.NoError(t, gm.DeleteGame(games[0].ID))
	_, err = gm.CreateGame(context.Background(), GameParams{Size: 5})
	assert.NoError(t, err)
}

// TestMaxGamesZeroMeansUnlimited tests that maxGames=0 means unlimited
func TestMaxGamesZeroMeansUnlimited(t *testing.T) {
	gm := newTestManager(t, ManagerConfig{})

	numGames := 20
	for i := 0; i < numGames; i++ {
		_, err := gm.CreateGame(context.Background(), GameParams{Size: 4})
		require.NoError(t, err, "Should be able to create game %d", i+1)
	}
	assert.Equal(t, numGames, gm.GetActiveGames())
}

func TestCreateGame_Defaults(t *testing.T) {
	gm := newTestManager(t, ManagerConfig{Defaults: GameParams{Size: 6, MineTotal: 5, MaxRerolls: 2}})

	snap, err := gm.CreateGame(context.Background(), GameParams{})
	require.NoError(t, err)
	assert.Equal(t, 6, snap.Size)
	assert.Equal(t, 5, snap.MineTotal)

	// Explicit parameters override defaults
	snap, err = gm.CreateGame(context.Background(), GameParams{Difficulty: "medium"})
	require.NoError(t, err)
	assert.Equal(t, 16, snap.Size)
	assert.Equal(t, 25, snap.MineTotal)

	_, err = gm.CreateGame(context.Background(), GameParams{Difficulty: "nightmare"})
	assert.Error(t, err)
	assert.Equal(t, 2, gm.GetActiveGames(), "failed creations are not registered")
}

func TestCreateGame_SeedIsReproducible(t *testing.T) {
	gm := newTestManager(t, ManagerConfig{})

	a, err := gm.CreateGame(context.Background(), GameParams{Difficulty: "easy", Seed: 99})
	require.NoError(t, err)
	b, err := gm.CreateGame(context.Background(), GameParams{Difficulty: "easy", Seed: 99})
	require.NoError(t, err)

	_, snapA, err := gm.Reveal(a.GameID, 4, 4)
	require.NoError(t, err)
	_, snapB, err := gm.Reveal(b.GameID, 4, 4)
	require.NoError(t, err)
	assert.Equal(t, EncodeRows(snapA), EncodeRows(snapB))
}
