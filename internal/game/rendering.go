package game

import (
	"strconv"
	"strings"
)

// This file contains the text dump of the board used by logs and the demo player.

// ANSI color codes for the numbered cells
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
	ColorPurple = "\033[35m"
	ColorCyan   = "\033[36m"
	ColorWhite  = "\033[37m"
	ColorGray   = "\033[90m"
)

const (
	HiddenSymbol    = "■"
	FlagSymbol      = "⚑"
	MineSymbol      = "*"
	DetonatedSymbol = "X"
	EmptySymbol     = "·"
)

var countColors = []string{ColorGray, ColorBlue, ColorGreen, ColorRed, ColorPurple, ColorYellow, ColorCyan, ColorWhite, ColorGray}

// Board returns a plain text representation of the board
func (e *Engine) Board() string {
	return e.render(false)
}

// ColorBoard returns the board with ANSI colors for terminals
func (e *Engine) ColorBoard() string {
	return e.render(true)
}

func (e *Engine) render(color bool) string {
	b := e.gs.Board
	lost := e.Outcome() == OutcomeLost
	showMines := lost || e.revealMines || RevealMinesInDump()
	detonated, hasDetonated := e.Detonated()

	var sb strings.Builder
	sb.Grow((b.N*3+4)*(b.N+3) + 64)

	// Header row
	sb.WriteString("   ")
	for x := 0; x < b.N; x++ {
		sb.WriteString(padLeft(strconv.Itoa(x), 3))
	}
	sb.WriteString("\n")

	for y := 0; y < b.N; y++ {
		sb.WriteString(padLeft(strconv.Itoa(y), 3))
		for x := 0; x < b.N; x++ {
			c := &b.C[b.Idx(x, y)]
			symbol, tint := HiddenSymbol, ColorGray
			switch {
			case c.Revealed && c.Adjacent == 0:
				symbol = EmptySymbol
			case c.Revealed:
				symbol, tint = strconv.Itoa(c.Adjacent), countColors[c.Adjacent]
			case hasDetonated && detonated.X == x && detonated.Y == y:
				symbol, tint = DetonatedSymbol, ColorRed
			case showMines && c.IsMine:
				symbol, tint = MineSymbol, ColorRed
			case c.Flagged:
				symbol, tint = FlagSymbol, ColorYellow
			}

			sb.WriteString("  ")
			if color {
				sb.WriteString(tint)
				sb.WriteString(symbol)
				sb.WriteString(ColorReset)
			} else {
				sb.WriteString(symbol)
			}
		}
		sb.WriteString("\n")
	}

	// Legend
	sb.WriteString("\n")
	sb.WriteString(HiddenSymbol + "=hidden " + FlagSymbol + "=flag " + EmptySymbol + "=empty 1-8=adjacent mines")
	if showMines {
		sb.WriteString(" " + MineSymbol + "=mine")
	}
	if hasDetonated {
		sb.WriteString(" " + DetonatedSymbol + "=detonated")
	}
	sb.WriteString("\n")
	sb.WriteString("flags ")
	sb.WriteString(strconv.Itoa(b.FlagCount()))
	sb.WriteString("/")
	sb.WriteString(strconv.Itoa(b.MineTotal))
	sb.WriteString(" outcome ")
	sb.WriteString(e.Outcome().String())
	sb.WriteString("\n")

	return sb.String()
}

func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}
