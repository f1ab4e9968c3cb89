package solver

import (
	"math/rand"

	"github.com/mitchelldurbincs/minesweeper/internal/game"
	"github.com/mitchelldurbincs/minesweeper/internal/game/core"
)

// Strategy names how a move was chosen
type Strategy string

const (
	StrategyLogic  Strategy = "logic"
	StrategyRandom Strategy = "random"
)

// Move is the solver's suggestion for the next action
type Move struct {
	Action   core.Action
	Strategy Strategy
	// IsGuess is set when the move is not certain
	IsGuess bool
}

// Solver picks moves from the observable board only
type Solver struct {
	rng *rand.Rand
}

// New creates a solver that guesses with rng
func New(rng *rand.Rand) *Solver {
	return &Solver{rng: rng}
}

// NextMove returns the next action to play, or false when nothing is left to do
func (s *Solver) NextMove(snap game.Snapshot) (Move, bool) {
	if snap.Outcome != game.OutcomeInProgress {
		return Move{}, false
	}

	if at, ok := findSafe(snap); ok {
		return Move{Action: core.Action{Kind: core.ActionReveal, At: at}, Strategy: StrategyLogic}, true
	}
	if at, ok := findMine(snap); ok {
		return Move{Action: core.Action{Kind: core.ActionFlag, At: at}, Strategy: StrategyLogic}, true
	}

	at, ok := game.RandomHiddenCell(snap, s.rng)
	if !ok {
		return Move{}, false
	}
	return Move{Action: core.Action{Kind: core.ActionReveal, At: at}, Strategy: StrategyRandom, IsGuess: true}, true
}

// findSafe looks for a numbered cell whose flags already account for every
// neighbouring mine; its remaining hidden neighbours are safe.
func findSafe(snap game.Snapshot) (core.Coordinate, bool) {
	if snap.FlagsPlaced == snap.MineTotal {
		if hidden := snap.HiddenUnflagged(); len(hidden) > 0 {
			return hidden[0], true
		}
	}
	for _, c := range snap.Cells {
		n, ok := c.Count()
		if !ok || n == 0 {
			continue
		}
		flags, hidden := neighbours(snap, c)
		if flags == n && len(hidden) > 0 {
			return hidden[0], true
		}
	}
	return core.Coordinate{}, false
}

// findMine looks for a numbered cell whose unrevealed neighbours must all be
// mines. When the hidden cells left equal the unflagged mines, every one of
// them is a mine.
func findMine(snap game.Snapshot) (core.Coordinate, bool) {
	if hidden := snap.HiddenUnflagged(); len(hidden) > 0 && len(hidden) == snap.MineTotal-snap.FlagsPlaced {
		return hidden[0], true
	}
	for _, c := range snap.Cells {
		n, ok := c.Count()
		if !ok || n == 0 {
			continue
		}
		flags, hidden := neighbours(snap, c)
		if flags+len(hidden) == n && len(hidden) > 0 {
			return hidden[0], true
		}
	}
	return core.Coordinate{}, false
}

// neighbours counts flagged neighbours and lists hidden unflagged ones
func neighbours(snap game.Snapshot, c game.CellView) (int, []core.Coordinate) {
	flags := 0
	var hidden []core.Coordinate
	for _, nb := range core.NewCoordinate(c.X, c.Y).ValidNeighbors(snap.Size) {
		v, _ := snap.At(nb.X, nb.Y)
		switch v.State {
		case game.CellFlagged:
			flags++
		case game.CellHidden:
			hidden = append(hidden, nb)
		}
	}
	return flags, hidden
}
