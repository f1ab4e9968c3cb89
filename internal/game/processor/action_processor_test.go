package processor

import (
	"testing"

	"github.com/mitchelldurbincs/minesweeper/internal/game/core"
	"github.com/mitchelldurbincs/minesweeper/internal/game/mapgen"
	"github.com/mitchelldurbincs/minesweeper/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProcessor() *ActionProcessor {
	return NewActionProcessor(testutil.NopLogger())
}

func revealedSet(b *core.Board) map[core.Coordinate]bool {
	out := make(map[core.Coordinate]bool)
	for i, c := range b.C {
		if c.Revealed {
			out[core.FromIndex(i, b.N)] = true
		}
	}
	return out
}

func TestReveal_NumberedCellDoesNotCascade(t *testing.T) {
	b := testutil.BoardWithMines(t, 9, testutil.EasyFixture()...)
	out := newProcessor().Reveal(b, core.Coordinate{X: 1, Y: 1})

	require.False(t, out.HitMine)
	assert.Equal(t, []core.Coordinate{{X: 1, Y: 1}}, out.Revealed)

	n, ok := b.At(core.Coordinate{X: 1, Y: 1}).Count()
	require.True(t, ok)
	assert.Equal(t, 3, n, "(1,1) touches (0,0), (2,0) and (1,2)")
	assert.Equal(t, 80, b.HiddenCount())
}

func TestReveal_ZeroRegionCascade(t *testing.T) {
	b := testutil.BoardWithMines(t, 9, testutil.EasyFixture()...)
	start := core.Coordinate{X: 5, Y: 5}
	require.Equal(t, 0, b.AdjacentMines(start))

	out := newProcessor().Reveal(b, start)
	require.False(t, out.HitMine)

	expected := testutil.ZeroRegion(b, start)
	assert.Equal(t, expected, revealedSet(b), "cascade should uncover the zero region and its border only")
	assert.Len(t, out.Revealed, len(expected), "each cell is reported once")

	for c := range expected {
		cell := b.At(c)
		assert.False(t, cell.IsMine, "cascade must never uncover a mine at %s", c)
		assert.Equal(t, b.AdjacentMines(c), cell.Adjacent, "count at %s", c)
	}
}

func TestReveal_ZeroRegionOnRandomBoards(t *testing.T) {
	rng := testutil.NewTestRNG(7)
	for i := 0; i < 25; i++ {
		b, err := core.NewBoard(16, 25)
		require.NoError(t, err)
		require.NoError(t, mapgen.NewGenerator(rng).Place(b))

		var start core.Coordinate
		found := false
		for idx := range b.C {
			c := core.FromIndex(idx, b.N)
			if !b.C[idx].IsMine && b.AdjacentMines(c) == 0 {
				start, found = c, true
				break
			}
		}
		if !found {
			continue
		}

		newProcessor().Reveal(b, start)
		assert.Equal(t, testutil.ZeroRegion(b, start), revealedSet(b), "board %d", i)
	}
}

func TestReveal_LargeBoardSingleCascade(t *testing.T) {
	b, err := core.NewBoard(25, 0)
	require.NoError(t, err)

	out := newProcessor().Reveal(b, core.Coordinate{X: 12, Y: 12})
	assert.Len(t, out.Revealed, 625, "a mine-free board clears in a single cascade")
	assert.Equal(t, 0, b.HiddenCount())
}

func TestReveal_Mine(t *testing.T) {
	b := testutil.BoardWithMines(t, 9, testutil.EasyFixture()...)
	out := newProcessor().Reveal(b, core.Coordinate{X: 0, Y: 0})

	assert.True(t, out.HitMine)
	assert.Empty(t, out.Revealed)
	assert.False(t, b.At(core.Coordinate{X: 0, Y: 0}).Revealed, "a mine is never marked revealed")
}

func TestReveal_AlreadyRevealedIsNoop(t *testing.T) {
	b := testutil.BoardWithMines(t, 9, testutil.EasyFixture()...)
	p := newProcessor()
	p.Reveal(b, core.Coordinate{X: 5, Y: 5})
	before := revealedSet(b)

	out := p.Reveal(b, core.Coordinate{X: 5, Y: 5})
	assert.Empty(t, out.Revealed)
	assert.Equal(t, before, revealedSet(b))
}

func TestReveal_CascadeIgnoresFlags(t *testing.T) {
	b := testutil.BoardWithMines(t, 9, testutil.EasyFixture()...)
	flagged := core.Coordinate{X: 5, Y: 4}
	b.At(flagged).Flagged = true

	newProcessor().Reveal(b, core.Coordinate{X: 5, Y: 5})
	cell := b.At(flagged)
	assert.True(t, cell.Revealed, "cascade passes through flagged cells")
	assert.True(t, cell.Flagged, "flag is left in place")
	assert.False(t, cell.HasFlag(), "flag on a revealed cell no longer counts")
	assert.Equal(t, 0, b.FlagCount())
}

func TestReveal_Monotonic(t *testing.T) {
	b := testutil.BoardWithMines(t, 9, testutil.EasyFixture()...)
	p := newProcessor()

	prev := revealedSet(b)
	for idx := range b.C {
		c := core.FromIndex(idx, b.N)
		p.Reveal(b, c)
		cur := revealedSet(b)
		for k := range prev {
			assert.True(t, cur[k], "%s was revealed and must stay revealed", k)
		}
		prev = cur
	}
	assert.Equal(t, b.MineTotal, b.HiddenCount(), "every safe cell ends up revealed")
}

func TestToggleFlag(t *testing.T) {
	b := testutil.BoardWithMines(t, 9, testutil.EasyFixture()...)
	p := newProcessor()
	at := core.Coordinate{X: 1, Y: 1}

	assert.True(t, p.ToggleFlag(b, at))
	assert.True(t, b.At(at).Flagged)
	assert.True(t, p.ToggleFlag(b, at))
	assert.False(t, b.At(at).Flagged, "toggling twice restores the cell")

	p.Reveal(b, at)
	assert.False(t, p.ToggleFlag(b, at), "revealed cells cannot be flagged")
	assert.False(t, b.At(at).Flagged)

	assert.False(t, p.ToggleFlag(b, core.Coordinate{X: 9, Y: 0}))
}
