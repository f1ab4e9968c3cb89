package states

import (
	"fmt"
	"time"
)

// InitializingState represents board construction
type InitializingState struct{}

func NewInitializingState() State {
	return &InitializingState{}
}

func (s *InitializingState) Phase() GamePhase {
	return PhaseInitializing
}

func (s *InitializingState) Enter(ctx *GameContext) error {
	ctx.Logger.Debug().Msg("Entering Initializing state")
	return nil
}

func (s *InitializingState) Exit(ctx *GameContext) error {
	ctx.Logger.Debug().Msg("Exiting Initializing state")
	return nil
}

func (s *InitializingState) Validate(ctx *GameContext) error {
	return nil
}

// AwaitingFirstMoveState waits for the first reveal. Flags may be placed
// here; the mine layout can still change.
type AwaitingFirstMoveState struct{}

func NewAwaitingFirstMoveState() State {
	return &AwaitingFirstMoveState{}
}

func (s *AwaitingFirstMoveState) Phase() GamePhase {
	return PhaseAwaitingFirstMove
}

func (s *AwaitingFirstMoveState) Enter(ctx *GameContext) error {
	ctx.Logger.Info().Msg("Board ready, waiting for first reveal")
	return nil
}

func (s *AwaitingFirstMoveState) Exit(ctx *GameContext) error {
	ctx.Logger.Debug().Int("moves", ctx.Moves).Msg("First reveal received")
	return nil
}

func (s *AwaitingFirstMoveState) Validate(ctx *GameContext) error {
	return nil
}

// RunningState represents active gameplay
type RunningState struct{}

func NewRunningState() State {
	return &RunningState{}
}

func (s *RunningState) Phase() GamePhase {
	return PhaseRunning
}

func (s *RunningState) Enter(ctx *GameContext) error {
	ctx.StartTime = time.Now()
	ctx.Logger.Info().
		Time("start_time", ctx.StartTime).
		Msg("Game started")
	return nil
}

func (s *RunningState) Exit(ctx *GameContext) error {
	ctx.EndTime = time.Now()
	ctx.Logger.Info().
		Dur("elapsed", ctx.GetElapsedTime()).
		Int("moves", ctx.Moves).
		Msg("Exiting running state")
	return nil
}

func (s *RunningState) Validate(ctx *GameContext) error {
	return nil
}

// WonState represents a cleared board
type WonState struct{}

func NewWonState() State {
	return &WonState{}
}

func (s *WonState) Phase() GamePhase {
	return PhaseWon
}

func (s *WonState) Enter(ctx *GameContext) error {
	ctx.Logger.Info().
		Dur("game_duration", ctx.GetElapsedTime()).
		Int("moves", ctx.Moves).
		Msg("Game won")
	return nil
}

func (s *WonState) Exit(ctx *GameContext) error {
	return fmt.Errorf("won is a terminal phase")
}

func (s *WonState) Validate(ctx *GameContext) error {
	if ctx.Detonated != nil {
		return fmt.Errorf("cannot win a game with a detonated mine at %s", ctx.Detonated)
	}
	return nil
}

// LostState represents a detonated board
type LostState struct{}

func NewLostState() State {
	return &LostState{}
}

func (s *LostState) Phase() GamePhase {
	return PhaseLost
}

func (s *LostState) Enter(ctx *GameContext) error {
	ctx.Logger.Info().
		Str("detonated", ctx.Detonated.String()).
		Dur("game_duration", ctx.GetElapsedTime()).
		Int("moves", ctx.Moves).
		Msg("Game lost")
	return nil
}

func (s *LostState) Exit(ctx *GameContext) error {
	return fmt.Errorf("lost is a terminal phase")
}

func (s *LostState) Validate(ctx *GameContext) error {
	if ctx.Detonated == nil {
		return fmt.Errorf("lost state requires the detonated coordinate in context")
	}
	return nil
}
