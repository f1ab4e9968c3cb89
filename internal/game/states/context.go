package states

import (
	"time"

	"github.com/mitchelldurbincs/minesweeper/internal/game/core"
	"github.com/rs/zerolog"
)

// GameContext provides game-specific information to states for making decisions
type GameContext struct {
	// GameID uniquely identifies this game instance
	GameID string

	// Logger for state-specific logging
	Logger zerolog.Logger

	// StartTime is when the first reveal was applied (PhaseRunning entered)
	StartTime time.Time

	// EndTime is when a terminal phase was entered
	EndTime time.Time

	// Moves counts applied reveal and flag actions
	Moves int

	// Detonated holds the revealed mine once the game is lost
	Detonated *core.Coordinate
}

// NewGameContext creates a new game context
func NewGameContext(gameID string, logger zerolog.Logger) *GameContext {
	return &GameContext{
		GameID: gameID,
		Logger: logger.With().Str("game_id", gameID).Logger(),
	}
}

// GetElapsedTime returns the time between the first reveal and the end of the
// game, or now while the game is still running.
func (gc *GameContext) GetElapsedTime() time.Duration {
	if gc.StartTime.IsZero() {
		return 0
	}
	if !gc.EndTime.IsZero() {
		return gc.EndTime.Sub(gc.StartTime)
	}
	return time.Since(gc.StartTime)
}
