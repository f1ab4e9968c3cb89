package mapgen

import (
	"fmt"
	"math/rand"

	"github.com/mitchelldurbincs/minesweeper/internal/game/core"
)

// Placer lays mines onto a board. Implementations must leave exactly
// b.MineTotal mines on the board when they return nil.
type Placer interface {
	Place(b *core.Board) error
}

// Generator places mines uniformly at random with a caller-supplied RNG
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates a new mine generator
func NewGenerator(rng *rand.Rand) *Generator {
	return &Generator{rng: rng}
}

// Place discards any existing layout and drops b.MineTotal mines on distinct
// cells, retrying whenever a pick lands on a cell that already holds one.
func (g *Generator) Place(b *core.Board) error {
	if b.MineTotal < 0 {
		return core.ErrInvalidMineTotal
	}
	if b.MineTotal >= b.N*b.N {
		return fmt.Errorf("placing %d mines on %dx%d board: %w", b.MineTotal, b.N, b.N, core.ErrTooManyMines)
	}

	b.ClearMines()
	placed := 0
	for placed < b.MineTotal {
		x, y := g.rng.Intn(b.N), g.rng.Intn(b.N)
		c := &b.C[b.Idx(x, y)]
		if c.IsMine {
			continue
		}
		c.IsMine = true
		placed++
	}
	return nil
}

// FixedPlacer replays predetermined layouts in order. Once the list is
// exhausted the last layout is repeated.
type FixedPlacer struct {
	layouts [][]core.Coordinate
	next    int
}

// NewFixedPlacer creates a placer that hands out the given layouts in sequence
func NewFixedPlacer(layouts ...[]core.Coordinate) *FixedPlacer {
	return &FixedPlacer{layouts: layouts}
}

// Place writes the next layout onto b
func (f *FixedPlacer) Place(b *core.Board) error {
	if len(f.layouts) == 0 {
		return fmt.Errorf("fixed placer has no layouts")
	}
	idx := f.next
	if idx >= len(f.layouts) {
		idx = len(f.layouts) - 1
	} else {
		f.next++
	}
	return PlaceAt(b, f.layouts[idx])
}

// Calls returns how many layouts have been handed out so far, capped at the number configured
func (f *FixedPlacer) Calls() int { return f.next }

// PlaceAt clears b and puts mines exactly on mines. The layout must have
// b.MineTotal distinct in-bounds coordinates.
func PlaceAt(b *core.Board, mines []core.Coordinate) error {
	if len(mines) != b.MineTotal {
		return fmt.Errorf("layout has %d mines, board expects %d", len(mines), b.MineTotal)
	}

	b.ClearMines()
	for _, m := range mines {
		c := b.At(m)
		if c == nil {
			return fmt.Errorf("mine at %s: %w", m, core.ErrInvalidCoordinates)
		}
		if c.IsMine {
			return fmt.Errorf("duplicate mine at %s", m)
		}
		c.IsMine = true
	}
	return nil
}
