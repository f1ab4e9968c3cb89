package core

import "strings"

// Difficulty selects one of the preset board sizes
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
)

// Size returns the board edge length for the preset
func (d Difficulty) Size() int {
	switch d {
	case Easy:
		return 9
	case Medium:
		return 16
	case Hard:
		return 25
	default:
		return 0
	}
}

// MineTotal returns the preset mine count, N²/10
func (d Difficulty) MineTotal() int {
	return DefaultMineTotal(d.Size())
}

// CellSize returns the on-screen cell edge in pixels the presentation layer uses
func (d Difficulty) CellSize() int {
	return 40 + d.Size()/5
}

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	default:
		return "unknown"
	}
}

// ParseDifficulty converts a preset name to a Difficulty
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return Easy, nil
	case "medium":
		return Medium, nil
	case "hard":
		return Hard, nil
	default:
		return 0, ErrUnknownDifficulty
	}
}

// DifficultyForSize maps a board size back to its preset, if any
func DifficultyForSize(n int) (Difficulty, bool) {
	for _, d := range []Difficulty{Easy, Medium, Hard} {
		if d.Size() == n {
			return d, true
		}
	}
	return 0, false
}

// DefaultMineTotal returns n²/10 using integer division
func DefaultMineTotal(n int) int {
	return n * n / 10
}
