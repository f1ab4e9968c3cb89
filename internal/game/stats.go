package game

import "time"

// This file contains the statistics the engine reports about a game in progress.

// Stats summarises a game for logs and transports
type Stats struct {
	Moves         int
	Reveals       int
	FlagToggles   int
	Rerolls       int
	Relocated     bool
	CellsRevealed int
	HiddenCells   int
	FlagsPlaced   int
	// MinesLeft is MineTotal minus placed flags and may go negative
	MinesLeft int
	Elapsed   time.Duration
	Age       time.Duration
	Outcome   Outcome
}

// Stats computes the current statistics from the board
func (e *Engine) Stats() Stats {
	b := e.gs.Board
	hidden := b.HiddenCount()
	flags := b.FlagCount()
	return Stats{
		Moves:         e.gs.Moves,
		Reveals:       e.gs.Reveals,
		FlagToggles:   e.gs.FlagToggles,
		Rerolls:       e.gs.Rerolls,
		Relocated:     e.gs.Relocated,
		CellsRevealed: len(b.C) - hidden,
		HiddenCells:   hidden,
		FlagsPlaced:   flags,
		MinesLeft:     b.MineTotal - flags,
		Elapsed:       e.stateMachine.GetContext().GetElapsedTime(),
		Age:           time.Since(e.createdAt),
		Outcome:       e.Outcome(),
	}
}

// CreatedAt returns when the engine was built
func (e *Engine) CreatedAt() time.Time {
	return e.createdAt
}
