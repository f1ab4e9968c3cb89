package states

import (
	"testing"
	"time"

	"github.com/mitchelldurbincs/minesweeper/internal/game/core"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestStateImplementations(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("InitializingState", func(t *testing.T) {
		state := NewInitializingState()
		ctx := NewGameContext("test", logger)

		assert.Equal(t, PhaseInitializing, state.Phase())
		assert.NoError(t, state.Enter(ctx))
		assert.NoError(t, state.Exit(ctx))
		assert.NoError(t, state.Validate(ctx))
	})

	t.Run("AwaitingFirstMoveState", func(t *testing.T) {
		state := NewAwaitingFirstMoveState()
		ctx := NewGameContext("test", logger)

		assert.Equal(t, PhaseAwaitingFirstMove, state.Phase())
		assert.NoError(t, state.Validate(ctx))
		assert.NoError(t, state.Enter(ctx))
		assert.NoError(t, state.Exit(ctx))
	})

	t.Run("RunningState", func(t *testing.T) {
		state := NewRunningState()
		ctx := NewGameContext("test", logger)

		assert.Equal(t, PhaseRunning, state.Phase())
		assert.NoError(t, state.Validate(ctx))

		before := time.Now()
		assert.NoError(t, state.Enter(ctx))
		assert.False(t, ctx.StartTime.Before(before))
		assert.True(t, ctx.EndTime.IsZero())

		assert.NoError(t, state.Exit(ctx))
		assert.False(t, ctx.EndTime.IsZero(), "leaving running stamps the end time")
	})

	t.Run("WonState", func(t *testing.T) {
		state := NewWonState()
		ctx := NewGameContext("test", logger)

		assert.Equal(t, PhaseWon, state.Phase())
		assert.NoError(t, state.Validate(ctx))
		assert.NoError(t, state.Enter(ctx))
		assert.Error(t, state.Exit(ctx))

		at := core.NewCoordinate(0, 0)
		ctx.Detonated = &at
		err := state.Validate(ctx)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "detonated")
	})

	t.Run("LostState", func(t *testing.T) {
		state := NewLostState()
		ctx := NewGameContext("test", logger)

		assert.Equal(t, PhaseLost, state.Phase())
		err := state.Validate(ctx)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "detonated coordinate")

		at := core.NewCoordinate(2, 2)
		ctx.Detonated = &at
		assert.NoError(t, state.Validate(ctx))
		assert.NoError(t, state.Enter(ctx))
		assert.Error(t, state.Exit(ctx))
	})
}
