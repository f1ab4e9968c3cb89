package core

import "fmt"

// Cell represents a single square of the minefield.
// Adjacent is only meaningful once Revealed is set.
type Cell struct {
	IsMine   bool
	Revealed bool
	Flagged  bool
	Adjacent int
}

// Count returns the neighbouring mine count and whether the cell has been revealed
func (c *Cell) Count() (int, bool) {
	if !c.Revealed {
		return 0, false
	}
	return c.Adjacent, true
}

// IsHidden reports whether the cell is still covered
func (c *Cell) IsHidden() bool { return !c.Revealed }

// HasFlag reports whether the cell carries a flag that still counts.
// Flags left on cells that a cascade uncovered are ignored.
func (c *Cell) HasFlag() bool { return c.Flagged && !c.Revealed }

// Board is an N×N minefield stored row-major.
type Board struct {
	N         int
	MineTotal int
	C         []Cell // length = N*N
}

// Accepted board dimensions
const (
	MinBoardSize = 2
	MaxBoardSize = 100
)

// NewBoard allocates an empty n×n board that will hold mineTotal mines.
// Mines are placed separately by a placer.
func NewBoard(n, mineTotal int) (*Board, error) {
	if n < MinBoardSize || n > MaxBoardSize {
		return nil, fmt.Errorf("%w: %d is outside %d..%d", ErrInvalidBoardSize, n, MinBoardSize, MaxBoardSize)
	}
	if mineTotal < 0 {
		return nil, ErrInvalidMineTotal
	}
	if mineTotal >= n*n {
		return nil, ErrTooManyMines
	}
	return &Board{N: n, MineTotal: mineTotal, C: make([]Cell, n*n)}, nil
}

func (b *Board) Idx(x, y int) int      { return y*b.N + x }
func (b *Board) XY(idx int) (int, int) { return idx % b.N, idx / b.N }

// InBounds checks if coordinates are within board boundaries
func (b *Board) InBounds(x, y int) bool {
	return x >= 0 && x < b.N && y >= 0 && y < b.N
}

// GetCell safely returns a cell pointer if coordinates are valid, nil otherwise
func (b *Board) GetCell(x, y int) *Cell {
	if !b.InBounds(x, y) {
		return nil
	}
	return &b.C[b.Idx(x, y)]
}

// At returns the cell at c, or nil when c is off the board
func (b *Board) At(c Coordinate) *Cell {
	return b.GetCell(c.X, c.Y)
}

// AdjacentMines counts mines among the in-bounds Moore neighbours of c
func (b *Board) AdjacentMines(c Coordinate) int {
	count := 0
	for _, nb := range c.ValidNeighbors(b.N) {
		if b.C[nb.ToIndex(b.N)].IsMine {
			count++
		}
	}
	return count
}

// ClearMines removes every mine, leaving reveal and flag state alone
func (b *Board) ClearMines() {
	for i := range b.C {
		b.C[i].IsMine = false
	}
}

// MineCount returns how many cells currently hold a mine
func (b *Board) MineCount() int {
	n := 0
	for i := range b.C {
		if b.C[i].IsMine {
			n++
		}
	}
	return n
}

// HiddenCount returns how many cells are still covered
func (b *Board) HiddenCount() int {
	n := 0
	for i := range b.C {
		if !b.C[i].Revealed {
			n++
		}
	}
	return n
}

// FlagCount returns how many hidden cells carry a flag
func (b *Board) FlagCount() int {
	n := 0
	for i := range b.C {
		if b.C[i].HasFlag() {
			n++
		}
	}
	return n
}

// Mines returns the coordinates of every mine in row-major order
func (b *Board) Mines() []Coordinate {
	out := make([]Coordinate, 0, b.MineTotal)
	for i := range b.C {
		if b.C[i].IsMine {
			out = append(out, FromIndex(i, b.N))
		}
	}
	return out
}
