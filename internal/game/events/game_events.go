package events

import (
	"time"

	"github.com/mitchelldurbincs/minesweeper/internal/game/core"
)

// Event type constants
const (
	TypeGameStarted     = "game.started"
	TypeGameWon         = "game.won"
	TypeGameLost        = "game.lost"
	TypeCellsRevealed   = "cells.revealed"
	TypeFlagToggled     = "flag.toggled"
	TypeMinesRerolled   = "mines.rerolled"
	TypeActionRejected  = "action.rejected"
	TypeStateTransition = "state.transition"
)

// GameStartedEvent is published when a new board has been built
type GameStartedEvent struct {
	BaseEvent
	Metadata   EventMetadata
	Size       int
	MineTotal  int
	Difficulty string
}

// NewGameStartedEvent creates a new GameStartedEvent
func NewGameStartedEvent(gameID string, size, mineTotal int, difficulty string) *GameStartedEvent {
	return &GameStartedEvent{
		BaseEvent:  newBase(TypeGameStarted, gameID),
		Size:       size,
		MineTotal:  mineTotal,
		Difficulty: difficulty,
	}
}

// CellsRevealedEvent is published after a reveal uncovers one or more cells
type CellsRevealedEvent struct {
	BaseEvent
	Metadata EventMetadata
	Origin   core.Coordinate
	Cells    []core.Coordinate
	Cascade  bool
}

// NewCellsRevealedEvent creates a new CellsRevealedEvent
func NewCellsRevealedEvent(gameID string, move int, origin core.Coordinate, cells []core.Coordinate) *CellsRevealedEvent {
	return &CellsRevealedEvent{
		BaseEvent: newBase(TypeCellsRevealed, gameID),
		Metadata:  EventMetadata{Move: move},
		Origin:    origin,
		Cells:     cells,
		Cascade:   len(cells) > 1,
	}
}

// FlagToggledEvent is published when a flag is placed or removed
type FlagToggledEvent struct {
	BaseEvent
	Metadata    EventMetadata
	At          core.Coordinate
	Flagged     bool
	FlagsPlaced int
}

// NewFlagToggledEvent creates a new FlagToggledEvent
func NewFlagToggledEvent(gameID string, move int, at core.Coordinate, flagged bool, flagsPlaced int) *FlagToggledEvent {
	return &FlagToggledEvent{
		BaseEvent:   newBase(TypeFlagToggled, gameID),
		Metadata:    EventMetadata{Move: move},
		At:          at,
		Flagged:     flagged,
		FlagsPlaced: flagsPlaced,
	}
}

// MinesRerolledEvent is published each time the first reveal forces a new layout
type MinesRerolledEvent struct {
	BaseEvent
	Metadata  EventMetadata
	Trigger   core.Coordinate
	Attempt   int
	Relocated bool
}

// NewMinesRerolledEvent creates a new MinesRerolledEvent. relocated marks the
// fallback that moves only the offending mine.
func NewMinesRerolledEvent(gameID string, trigger core.Coordinate, attempt int, relocated bool) *MinesRerolledEvent {
	return &MinesRerolledEvent{
		BaseEvent: newBase(TypeMinesRerolled, gameID),
		Trigger:   trigger,
		Attempt:   attempt,
		Relocated: relocated,
	}
}

// ActionRejectedEvent is published when an action cannot be applied
type ActionRejectedEvent struct {
	BaseEvent
	Metadata EventMetadata
	Action   core.Action
	Reason   string
}

// NewActionRejectedEvent creates a new ActionRejectedEvent
func NewActionRejectedEvent(gameID string, action core.Action, reason string) *ActionRejectedEvent {
	return &ActionRejectedEvent{
		BaseEvent: newBase(TypeActionRejected, gameID),
		Action:    action,
		Reason:    reason,
	}
}

// GameWonEvent is published when the board is cleared
type GameWonEvent struct {
	BaseEvent
	Metadata EventMetadata
	Moves    int
	Duration time.Duration
}

// NewGameWonEvent creates a new GameWonEvent
func NewGameWonEvent(gameID string, moves int, duration time.Duration) *GameWonEvent {
	return &GameWonEvent{
		BaseEvent: newBase(TypeGameWon, gameID),
		Metadata:  EventMetadata{Move: moves},
		Moves:     moves,
		Duration:  duration,
	}
}

// GameLostEvent is published when a reveal sets off a mine
type GameLostEvent struct {
	BaseEvent
	Metadata  EventMetadata
	Detonated core.Coordinate
	Moves     int
	Duration  time.Duration
}

// NewGameLostEvent creates a new GameLostEvent
func NewGameLostEvent(gameID string, detonated core.Coordinate, moves int, duration time.Duration) *GameLostEvent {
	return &GameLostEvent{
		BaseEvent: newBase(TypeGameLost, gameID),
		Metadata:  EventMetadata{Move: moves},
		Detonated: detonated,
		Moves:     moves,
		Duration:  duration,
	}
}

// StateTransitionEvent is published on every lifecycle phase change
type StateTransitionEvent struct {
	BaseEvent
	Metadata  EventMetadata
	FromPhase string
	ToPhase   string
	Reason    string
}

// NewStateTransitionEvent creates a new StateTransitionEvent
func NewStateTransitionEvent(gameID, fromPhase, toPhase, reason string) *StateTransitionEvent {
	return &StateTransitionEvent{
		BaseEvent: newBase(TypeStateTransition, gameID),
		FromPhase: fromPhase,
		ToPhase:   toPhase,
		Reason:    reason,
	}
}
