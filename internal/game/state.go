package game

import "github.com/mitchelldurbincs/minesweeper/internal/game/core"

// Outcome is the terminal status of a board
type Outcome int

const (
	OutcomeInProgress Outcome = iota
	OutcomeWon
	OutcomeLost
)

func (o Outcome) String() string {
	switch o {
	case OutcomeInProgress:
		return "in_progress"
	case OutcomeWon:
		return "won"
	case OutcomeLost:
		return "lost"
	default:
		return "unknown"
	}
}

// GameState is the mutable state the engine owns
type GameState struct {
	Board *core.Board
	// Moves counts applied reveal and flag actions; no-ops are not counted
	Moves int
	// Reveals counts applied reveal actions
	Reveals int
	// FlagToggles counts applied flag actions
	FlagToggles int
	// Rerolls counts how often the first reveal forced a new layout
	Rerolls int
	// Relocated is set when the reroll bound ran out and a single mine was moved
	Relocated bool
}
