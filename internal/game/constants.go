package game

import (
	"github.com/mitchelldurbincs/minesweeper/internal/config"
)

// DefaultMaxRerolls bounds first-move re-placement when GameConfig leaves it unset
func DefaultMaxRerolls() int {
	return config.Get().Game.MaxRerolls
}

// RevealMinesInDump controls whether Board() prints mines on a running game
func RevealMinesInDump() bool {
	return config.Get().Development.RevealMinesInDump
}
