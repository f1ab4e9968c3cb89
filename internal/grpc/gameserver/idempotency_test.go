package gameserver

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gameengine "github.com/mitchelldurbincs/minesweeper/internal/game"
	"github.com/mitchelldurbincs/minesweeper/internal/game/core"
)

func TestIdempotencyManager(t *testing.T) {
	im := NewIdempotencyManager()
	outcome := actionOutcome{
		action: core.Action{Kind: core.ActionFlag, At: core.NewCoordinate(1, 2)},
		result: gameengine.Result{Kind: gameengine.ResultFlagToggled, Flagged: true},
	}

	_, ok := im.Check("k")
	assert.False(t, ok)

	im.Store("k", outcome)
	got, ok := im.Check("k")
	require.True(t, ok)
	assert.Equal(t, outcome, got)

	// Empty keys are never cached
	im.Store("", outcome)
	_, ok = im.Check("")
	assert.False(t, ok)
	assert.Equal(t, 1, im.Len())
}

func TestIdempotencyManager_Expiry(t *testing.T) {
	now := time.Now()
	im := NewIdempotencyManager()
	im.now = func() time.Time { return now }

	im.Store("old", actionOutcome{})
	now = now.Add(idempotencyTTL + time.Minute)

	_, ok := im.Check("old")
	assert.False(t, ok, "entries expire after the TTL")

	// Filling past the cap sweeps expired entries
	for i := 0; i <= idempotencyMaxCache; i++ {
		im.Store("key-"+strconv.Itoa(i), actionOutcome{})
	}
	assert.Equal(t, idempotencyMaxCache+1, im.Len())
}

func TestApply_IdempotencyKeyPerGame(t *testing.T) {
	gm := newTestManager(t, ManagerConfig{})
	a, err := gm.CreateGame(t.Context(), GameParams{Size: 5})
	require.NoError(t, err)
	b, err := gm.CreateGame(t.Context(), GameParams{Size: 5})
	require.NoError(t, err)

	flag := core.Action{Kind: core.ActionFlag, At: core.NewCoordinate(0, 0)}
	_, _, err = gm.Apply(a.GameID, flag, "same-key")
	require.NoError(t, err)
	_, snap, err := gm.Apply(b.GameID, flag, "same-key")
	require.NoError(t, err)
	assert.Equal(t, 1, snap.FlagsPlaced, "keys are scoped to a single game")

	// Failed actions are not cached, so a retry sees the real error again
	off := core.Action{Kind: core.ActionReveal, At: core.NewCoordinate(7, 7)}
	_, _, err = gm.Apply(a.GameID, off, "off-board")
	assert.ErrorIs(t, err, core.ErrInvalidCoordinates)
	_, _, err = gm.Apply(a.GameID, off, "off-board")
	assert.ErrorIs(t, err, core.ErrInvalidCoordinates)
}
