package game

import "github.com/mitchelldurbincs/minesweeper/internal/game/core"

// ResultKind describes what an action changed
type ResultKind int

const (
	// ResultNone means the action changed nothing
	ResultNone ResultKind = iota
	ResultRevealed
	ResultFlagToggled
	ResultWon
	ResultLost
)

func (k ResultKind) String() string {
	switch k {
	case ResultNone:
		return "none"
	case ResultRevealed:
		return "revealed"
	case ResultFlagToggled:
		return "flag_toggled"
	case ResultWon:
		return "won"
	case ResultLost:
		return "lost"
	default:
		return "unknown"
	}
}

// Result is the delta produced by a single Reveal or ToggleFlag call
type Result struct {
	Kind ResultKind
	// Revealed lists newly uncovered cells in reveal order
	Revealed []core.Coordinate
	// Flagged is the flag state of the target after a toggle
	Flagged bool
	Outcome Outcome
}

// Changed reports whether the action altered the board
func (r Result) Changed() bool { return r.Kind != ResultNone }
