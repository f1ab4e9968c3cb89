package rules

import "github.com/mitchelldurbincs/minesweeper/internal/game/core"

// LegalMoveCalculator computes which cells accept which actions
type LegalMoveCalculator struct{}

// NewLegalMoveCalculator creates a new legal move calculator
func NewLegalMoveCalculator() *LegalMoveCalculator {
	return &LegalMoveCalculator{}
}

// GetLegalActionMask returns a flattened boolean mask of length N*N*2.
// Index = (y*N + x)*2 + action, with action 0 = reveal and 1 = flag.
// Reveal is legal on hidden unflagged cells, flag on any hidden cell.
func (lmc *LegalMoveCalculator) GetLegalActionMask(b *core.Board) []bool {
	mask := make([]bool, len(b.C)*2)
	for i := range b.C {
		c := &b.C[i]
		if c.Revealed {
			continue
		}
		mask[i*2+int(core.ActionReveal)] = !c.Flagged
		mask[i*2+int(core.ActionFlag)] = true
	}
	return mask
}

// RevealCandidates lists hidden unflagged cells in row-major order
func (lmc *LegalMoveCalculator) RevealCandidates(b *core.Board) []core.Coordinate {
	var out []core.Coordinate
	for i := range b.C {
		if !b.C[i].Revealed && !b.C[i].Flagged {
			out = append(out, core.FromIndex(i, b.N))
		}
	}
	return out
}
