package rules

import (
	"testing"

	"github.com/mitchelldurbincs/minesweeper/internal/game/core"
	"github.com/mitchelldurbincs/minesweeper/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func clearBoard(b *core.Board) {
	for i := range b.C {
		if !b.C[i].IsMine {
			b.C[i].Revealed = true
			b.C[i].Adjacent = b.AdjacentMines(core.FromIndex(i, b.N))
		}
	}
}

func flagMines(b *core.Board) {
	for i := range b.C {
		if b.C[i].IsMine {
			b.C[i].Flagged = true
		}
	}
}

func TestIsWon(t *testing.T) {
	wc := NewWinConditionChecker(testutil.NopLogger())

	t.Run("ClearedAndFlagged", func(t *testing.T) {
		b := testutil.BoardWithMines(t, 9, testutil.EasyFixture()...)
		clearBoard(b)
		flagMines(b)
		assert.True(t, wc.IsWon(b, true))
	})

	t.Run("FirstMoveNotTaken", func(t *testing.T) {
		b := testutil.BoardWithMines(t, 9, testutil.EasyFixture()...)
		clearBoard(b)
		flagMines(b)
		assert.False(t, wc.IsWon(b, false))
	})

	t.Run("MissingFlag", func(t *testing.T) {
		b := testutil.BoardWithMines(t, 9, testutil.EasyFixture()...)
		clearBoard(b)
		flagMines(b)
		b.At(core.Coordinate{X: 0, Y: 0}).Flagged = false
		assert.False(t, wc.IsWon(b, true))
	})

	t.Run("ExtraFlagOnHiddenSafeCell", func(t *testing.T) {
		b := testutil.BoardWithMines(t, 9, testutil.EasyFixture()...)
		clearBoard(b)
		flagMines(b)
		extra := b.At(core.Coordinate{X: 4, Y: 4})
		extra.Revealed = false
		extra.Flagged = true
		assert.False(t, wc.IsWon(b, true))
	})

	t.Run("StaleFlagOnRevealedCellIgnored", func(t *testing.T) {
		b := testutil.BoardWithMines(t, 9, testutil.EasyFixture()...)
		clearBoard(b)
		flagMines(b)
		b.At(core.Coordinate{X: 4, Y: 4}).Flagged = true
		assert.True(t, wc.IsWon(b, true))
	})

	t.Run("SafeCellStillHidden", func(t *testing.T) {
		b := testutil.BoardWithMines(t, 9, testutil.EasyFixture()...)
		clearBoard(b)
		flagMines(b)
		b.At(core.Coordinate{X: 4, Y: 4}).Revealed = false
		assert.False(t, wc.IsWon(b, true))
	})
}

func TestGetLegalActionMask(t *testing.T) {
	b := testutil.BoardWithMines(t, 3, core.Coordinate{X: 0, Y: 0})
	b.At(core.Coordinate{X: 1, Y: 0}).Flagged = true
	b.At(core.Coordinate{X: 2, Y: 0}).Revealed = true

	mask := NewLegalMoveCalculator().GetLegalActionMask(b)
	assert.Len(t, mask, 18)

	assert.True(t, mask[0], "hidden cell can be revealed")
	assert.True(t, mask[1], "hidden cell can be flagged")
	assert.False(t, mask[2], "flagged cell cannot be revealed")
	assert.True(t, mask[3], "flagged cell can be unflagged")
	assert.False(t, mask[4], "revealed cell takes no reveal")
	assert.False(t, mask[5], "revealed cell takes no flag")
}

func TestRevealCandidates(t *testing.T) {
	b := testutil.BoardWithMines(t, 2, core.Coordinate{X: 0, Y: 0})
	b.At(core.Coordinate{X: 1, Y: 0}).Flagged = true
	b.At(core.Coordinate{X: 0, Y: 1}).Revealed = true

	got := NewLegalMoveCalculator().RevealCandidates(b)
	assert.Equal(t, []core.Coordinate{{X: 0, Y: 0}, {X: 1, Y: 1}}, got)
}
