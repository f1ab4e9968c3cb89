package game

import (
	"github.com/mitchelldurbincs/minesweeper/internal/game/core"
	"github.com/mitchelldurbincs/minesweeper/internal/game/states"
)

// CellState is what an observer is allowed to know about a cell
type CellState int

const (
	CellHidden CellState = iota
	CellFlagged
	CellRevealed
	// CellMine is only reported once the game is lost
	CellMine
)

func (s CellState) String() string {
	switch s {
	case CellHidden:
		return "hidden"
	case CellFlagged:
		return "flagged"
	case CellRevealed:
		return "revealed"
	case CellMine:
		return "mine"
	default:
		return "unknown"
	}
}

// CellView is the observable state of a single cell.
// Adjacent is only meaningful when State is CellRevealed.
type CellView struct {
	X, Y     int
	State    CellState
	Adjacent int
}

// Count mirrors core.Cell.Count for observers
func (v CellView) Count() (int, bool) {
	if v.State != CellRevealed {
		return 0, false
	}
	return v.Adjacent, true
}

// Snapshot is a read-only copy of the board as a player sees it
type Snapshot struct {
	GameID      string
	Size        int
	MineTotal   int
	FlagsPlaced int
	Moves       int
	Phase       states.GamePhase
	Outcome     Outcome
	// Detonated is the mine that ended the game, nil unless lost
	Detonated *core.Coordinate
	// Cells is row-major, index y*Size + x
	Cells []CellView
}

// At returns the view of (x, y). The second result is false when off the board.
func (s Snapshot) At(x, y int) (CellView, bool) {
	if x < 0 || y < 0 || x >= s.Size || y >= s.Size {
		return CellView{}, false
	}
	return s.Cells[y*s.Size+x], true
}

// HiddenUnflagged lists cells still worth revealing in row-major order
func (s Snapshot) HiddenUnflagged() []core.Coordinate {
	var out []core.Coordinate
	for _, c := range s.Cells {
		if c.State == CellHidden {
			out = append(out, core.NewCoordinate(c.X, c.Y))
		}
	}
	return out
}

func viewOf(b *core.Board, idx int, lost bool) CellView {
	x, y := b.XY(idx)
	c := &b.C[idx]
	v := CellView{X: x, Y: y}
	switch {
	case c.Revealed:
		v.State = CellRevealed
		v.Adjacent = c.Adjacent
	case lost && c.IsMine:
		v.State = CellMine
	case c.Flagged:
		v.State = CellFlagged
	default:
		v.State = CellHidden
	}
	return v
}
