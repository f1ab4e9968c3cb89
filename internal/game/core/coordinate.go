package core

import "fmt"

// Coordinate represents a position on the game board
type Coordinate struct {
	X, Y int
}

// NewCoordinate creates a new coordinate with the given x and y values
func NewCoordinate(x, y int) Coordinate {
	return Coordinate{X: x, Y: y}
}

// FromIndex creates a coordinate from a board array index using row-major ordering
func FromIndex(idx, width int) Coordinate {
	return Coordinate{
		X: idx % width,
		Y: idx / width,
	}
}

// IsValid checks if the coordinate is within an n×n board
func (c Coordinate) IsValid(n int) bool {
	return c.X >= 0 && c.X < n && c.Y >= 0 && c.Y < n
}

// ToIndex converts the coordinate to a board array index using row-major ordering
func (c Coordinate) ToIndex(width int) int {
	return c.Y*width + c.X
}

// IsNeighborOf reports whether other is one of the eight cells surrounding c
func (c Coordinate) IsNeighborOf(other Coordinate) bool {
	dx := abs(c.X - other.X)
	dy := abs(c.Y - other.Y)
	return dx <= 1 && dy <= 1 && (dx != 0 || dy != 0)
}

// neighborOffsets lists the Moore neighbourhood in reading order.
var neighborOffsets = [8]Coordinate{
	{X: -1, Y: -1}, {X: 0, Y: -1}, {X: 1, Y: -1},
	{X: -1, Y: 0}, {X: 1, Y: 0},
	{X: -1, Y: 1}, {X: 0, Y: 1}, {X: 1, Y: 1},
}

// Neighbors returns the eight surrounding coordinates, including ones off the board
func (c Coordinate) Neighbors() []Coordinate {
	out := make([]Coordinate, 0, len(neighborOffsets))
	for _, off := range neighborOffsets {
		out = append(out, c.Add(off))
	}
	return out
}

// ValidNeighbors returns only the neighbors that lie on an n×n board
func (c Coordinate) ValidNeighbors(n int) []Coordinate {
	valid := make([]Coordinate, 0, len(neighborOffsets))
	for _, off := range neighborOffsets {
		nb := c.Add(off)
		if nb.IsValid(n) {
			valid = append(valid, nb)
		}
	}
	return valid
}

// Add returns a new coordinate that is the sum of this coordinate and another
func (c Coordinate) Add(other Coordinate) Coordinate {
	return Coordinate{
		X: c.X + other.X,
		Y: c.Y + other.Y,
	}
}

// Equal checks if two coordinates are equal
func (c Coordinate) Equal(other Coordinate) bool {
	return c.X == other.X && c.Y == other.Y
}

// String returns a string representation of the coordinate
func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
