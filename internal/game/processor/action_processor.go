package processor

import (
	"github.com/mitchelldurbincs/minesweeper/internal/game/core"
	"github.com/rs/zerolog"
)

// RevealOutcome describes what a single reveal did to the board
type RevealOutcome struct {
	// Revealed lists newly uncovered cells in the order they were uncovered.
	Revealed []core.Coordinate
	// HitMine is set when the target itself was a mine. Nothing is uncovered in that case.
	HitMine bool
}

// ActionProcessor applies reveal and flag actions to a board
type ActionProcessor struct {
	logger zerolog.Logger
	stack  []core.Coordinate
}

// NewActionProcessor creates a new action processor
func NewActionProcessor(logger zerolog.Logger) *ActionProcessor {
	return &ActionProcessor{
		logger: logger.With().Str("component", "ActionProcessor").Logger(),
	}
}

// Reveal uncovers the target and, when it has no neighbouring mines, chains
// through the connected zero region using an explicit stack. Hidden and
// flagged checks at the target are the caller's job; cells uncovered by the
// cascade lose any flag they carried.
func (ap *ActionProcessor) Reveal(b *core.Board, at core.Coordinate) RevealOutcome {
	target := b.At(at)
	if target == nil || target.Revealed {
		return RevealOutcome{}
	}
	if target.IsMine {
		ap.logger.Debug().Str("at", at.String()).Msg("Reveal hit a mine")
		return RevealOutcome{HitMine: true}
	}

	var revealed []core.Coordinate
	ap.stack = append(ap.stack[:0], at)

	for len(ap.stack) > 0 {
		cur := ap.stack[len(ap.stack)-1]
		ap.stack = ap.stack[:len(ap.stack)-1]

		cell := &b.C[cur.ToIndex(b.N)]
		if cell.Revealed || cell.IsMine {
			continue
		}

		cell.Adjacent = b.AdjacentMines(cur)
		cell.Revealed = true
		revealed = append(revealed, cur)

		if cell.Adjacent != 0 {
			continue
		}
		for _, nb := range cur.ValidNeighbors(b.N) {
			if !b.C[nb.ToIndex(b.N)].Revealed {
				ap.stack = append(ap.stack, nb)
			}
		}
	}

	ap.logger.Debug().
		Str("at", at.String()).
		Int("revealed", len(revealed)).
		Msg("Reveal applied")

	return RevealOutcome{Revealed: revealed}
}

// ToggleFlag flips the flag on a hidden cell. Returns false, changing
// nothing, when the cell is off the board or already uncovered.
func (ap *ActionProcessor) ToggleFlag(b *core.Board, at core.Coordinate) bool {
	cell := b.At(at)
	if cell == nil || cell.Revealed {
		return false
	}
	cell.Flagged = !cell.Flagged
	ap.logger.Debug().
		Str("at", at.String()).
		Bool("flagged", cell.Flagged).
		Msg("Flag toggled")
	return true
}
