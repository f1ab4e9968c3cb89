package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBoard(t *testing.T) {
	tests := []struct {
		name      string
		size      int
		mineTotal int
	}{
		{"easy board", 9, 8},
		{"medium board", 16, 25},
		{"hard board", 25, 62},
		{"minimum board", 2, 1},
		{"no mines", 4, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board, err := NewBoard(tt.size, tt.mineTotal)
			require.NoError(t, err)

			assert.Equal(t, tt.size, board.N)
			assert.Equal(t, tt.mineTotal, board.MineTotal)
			assert.Len(t, board.C, tt.size*tt.size)

			for i, cell := range board.C {
				assert.False(t, cell.IsMine, "cell %d should start without a mine", i)
				assert.False(t, cell.Revealed, "cell %d should start hidden", i)
				assert.False(t, cell.Flagged, "cell %d should start unflagged", i)
			}
		})
	}
}

func TestNewBoard_Rejects(t *testing.T) {
	tests := []struct {
		name      string
		size      int
		mineTotal int
		want      error
	}{
		{"zero size", 0, 0, ErrInvalidBoardSize},
		{"single cell", 1, 0, ErrInvalidBoardSize},
		{"over the cap", MaxBoardSize + 1, 0, ErrInvalidBoardSize},
		{"int32 size", 1<<31 - 1, 0, ErrInvalidBoardSize},
		{"negative mines", 9, -1, ErrInvalidMineTotal},
		{"every cell a mine", 9, 81, ErrTooManyMines},
		{"more mines than cells", 3, 20, ErrTooManyMines},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board, err := NewBoard(tt.size, tt.mineTotal)
			assert.Nil(t, board)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestNewBoard_MaxSize(t *testing.T) {
	board, err := NewBoard(MaxBoardSize, 0)
	require.NoError(t, err)
	assert.Len(t, board.C, MaxBoardSize*MaxBoardSize)
}

func TestBoard_Idx(t *testing.T) {
	board, err := NewBoard(5, 0)
	require.NoError(t, err)

	tests := []struct {
		x, y     int
		expected int
	}{
		{0, 0, 0},
		{4, 0, 4},
		{0, 1, 5},
		{2, 2, 12},
		{4, 4, 24},
	}

	for _, tt := range tests {
		idx := board.Idx(tt.x, tt.y)
		assert.Equal(t, tt.expected, idx, "Idx(%d,%d) should be %d", tt.x, tt.y, tt.expected)
		x, y := board.XY(idx)
		assert.Equal(t, tt.x, x)
		assert.Equal(t, tt.y, y)
	}
}

func TestBoard_GetCell(t *testing.T) {
	board, err := NewBoard(3, 0)
	require.NoError(t, err)

	assert.NotNil(t, board.GetCell(0, 0))
	assert.NotNil(t, board.GetCell(2, 2))
	assert.Nil(t, board.GetCell(-1, 0))
	assert.Nil(t, board.GetCell(0, 3))
	assert.Nil(t, board.At(Coordinate{X: 3, Y: 1}))

	board.GetCell(1, 2).Flagged = true
	assert.True(t, board.C[board.Idx(1, 2)].Flagged, "GetCell should return a pointer into the grid")
}

func TestBoard_AdjacentMines(t *testing.T) {
	board, err := NewBoard(4, 3)
	require.NoError(t, err)
	for _, c := range []Coordinate{{0, 0}, {1, 0}, {3, 3}} {
		board.At(c).IsMine = true
	}

	tests := []struct {
		at       Coordinate
		expected int
	}{
		{Coordinate{0, 1}, 2},
		{Coordinate{1, 1}, 2},
		{Coordinate{2, 1}, 1},
		{Coordinate{2, 2}, 1},
		{Coordinate{0, 3}, 0},
		{Coordinate{0, 0}, 1}, // a mine does not count itself
	}

	for _, tt := range tests {
		t.Run(tt.at.String(), func(t *testing.T) {
			assert.Equal(t, tt.expected, board.AdjacentMines(tt.at))
		})
	}
}

func TestBoard_Counters(t *testing.T) {
	board, err := NewBoard(3, 2)
	require.NoError(t, err)
	board.At(Coordinate{0, 0}).IsMine = true
	board.At(Coordinate{2, 2}).IsMine = true

	assert.Equal(t, 2, board.MineCount())
	assert.Equal(t, 9, board.HiddenCount())
	assert.Equal(t, []Coordinate{{0, 0}, {2, 2}}, board.Mines())

	board.At(Coordinate{1, 1}).Revealed = true
	board.At(Coordinate{0, 0}).Flagged = true
	board.At(Coordinate{1, 0}).Flagged = true
	board.At(Coordinate{1, 0}).Revealed = true // flag on an uncovered cell no longer counts

	assert.Equal(t, 7, board.HiddenCount())
	assert.Equal(t, 1, board.FlagCount())

	board.ClearMines()
	assert.Equal(t, 0, board.MineCount())
	assert.True(t, board.At(Coordinate{1, 1}).Revealed, "ClearMines should leave reveal state alone")
}

func TestCell_Count(t *testing.T) {
	c := Cell{Adjacent: 3}
	_, ok := c.Count()
	assert.False(t, ok, "hidden cell has no count")
	assert.True(t, c.IsHidden())

	c.Revealed = true
	n, ok := c.Count()
	assert.True(t, ok)
	assert.Equal(t, 3, n)
}
