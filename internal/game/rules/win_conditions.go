package rules

import (
	"github.com/mitchelldurbincs/minesweeper/internal/game/core"
	"github.com/rs/zerolog"
)

// WinConditionChecker decides whether a board has been cleared
type WinConditionChecker struct {
	logger zerolog.Logger
}

// NewWinConditionChecker creates a new win condition checker
func NewWinConditionChecker(logger zerolog.Logger) *WinConditionChecker {
	return &WinConditionChecker{
		logger: logger.With().Str("component", "WinConditionChecker").Logger(),
	}
}

// IsWon recomputes the win condition from the grid alone: the first move has
// been played, the flagged cells are exactly the mines, and the only hidden
// cells left are the mines.
func (wc *WinConditionChecker) IsWon(b *core.Board, firstMoveTaken bool) bool {
	if !firstMoveTaken {
		return false
	}

	hidden := 0
	for i := range b.C {
		c := &b.C[i]
		if c.HasFlag() != c.IsMine {
			return false
		}
		if !c.Revealed {
			hidden++
		}
	}

	won := hidden == b.MineTotal
	wc.logger.Debug().
		Int("hidden", hidden).
		Int("mine_total", b.MineTotal).
		Bool("won", won).
		Msg("Win check complete")
	return won
}
