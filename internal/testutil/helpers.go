package testutil

import (
	"math/rand"
	"testing"

	"github.com/mitchelldurbincs/minesweeper/internal/game/core"
	"github.com/rs/zerolog"
)

// NewTestRNG creates a deterministic random number generator for tests
func NewTestRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// NopLogger returns a no-op logger for tests
func NopLogger() zerolog.Logger {
	return zerolog.Nop()
}

// AssertPanic asserts that the given function panics
func AssertPanic(t *testing.T, f func(), msgAndArgs ...interface{}) {
	t.Helper()
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("Expected panic but none occurred: %v", msgAndArgs)
		}
	}()
	f()
}

// BoardWithMines builds an n×n board holding exactly the given mines
func BoardWithMines(t *testing.T, n int, mines ...core.Coordinate) *core.Board {
	t.Helper()
	b, err := core.NewBoard(n, len(mines))
	if err != nil {
		t.Fatalf("NewBoard(%d, %d): %v", n, len(mines), err)
	}
	for _, m := range mines {
		c := b.At(m)
		if c == nil || c.IsMine {
			t.Fatalf("bad mine coordinate %s", m)
		}
		c.IsMine = true
	}
	return b
}

// ZeroRegion returns the cells a cascade from start must uncover: the
// 8-connected region of zero-count cells containing start plus its numbered
// border. It walks the board with its own queue so tests do not depend on the
// engine's flood fill.
func ZeroRegion(b *core.Board, start core.Coordinate) map[core.Coordinate]bool {
	out := map[core.Coordinate]bool{start: true}
	if b.AdjacentMines(start) != 0 {
		return out
	}
	queue := []core.Coordinate{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, nb := range cur.ValidNeighbors(b.N) {
			if out[nb] {
				continue
			}
			out[nb] = true
			if b.AdjacentMines(nb) == 0 {
				queue = append(queue, nb)
			}
		}
	}
	return out
}

// EasyFixture returns the 9×9, 8-mine layout used by scenario tests. (0,0)
// is a mine and (5,5) sits in a zero region.
func EasyFixture() []core.Coordinate {
	return []core.Coordinate{
		{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 8, Y: 0}, {X: 1, Y: 2},
		{X: 8, Y: 3}, {X: 0, Y: 7}, {X: 3, Y: 8}, {X: 8, Y: 8},
	}
}

// EasyReroll is a second 9×9 layout that keeps (0,0) clear
func EasyReroll() []core.Coordinate {
	return []core.Coordinate{
		{X: 4, Y: 0}, {X: 7, Y: 1}, {X: 2, Y: 3}, {X: 6, Y: 4},
		{X: 0, Y: 5}, {X: 8, Y: 6}, {X: 4, Y: 7}, {X: 1, Y: 8},
	}
}
