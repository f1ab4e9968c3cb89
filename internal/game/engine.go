package game

import (
	"fmt"
	"time"

	"github.com/mitchelldurbincs/minesweeper/internal/game/core"
	"github.com/mitchelldurbincs/minesweeper/internal/game/events"
	"github.com/mitchelldurbincs/minesweeper/internal/game/mapgen"
	"github.com/mitchelldurbincs/minesweeper/internal/game/processor"
	"github.com/mitchelldurbincs/minesweeper/internal/game/rules"
	"github.com/mitchelldurbincs/minesweeper/internal/game/states"
	"github.com/rs/zerolog"
)

// Engine owns one board and applies reveal and flag actions to it.
// It is not safe for concurrent use; callers serialise access per board.
type Engine struct {
	gs              *GameState
	placer          mapgen.Placer
	maxRerolls      int
	logger          zerolog.Logger
	actionProcessor *processor.ActionProcessor
	winCondition    *rules.WinConditionChecker
	legalMoves      *rules.LegalMoveCalculator
	eventBus        *events.EventBus
	gameID          string
	difficulty      string
	stateMachine    *states.StateMachine
	recorder        MoveRecorder
	revealMines     bool
	createdAt       time.Time
}

// Reveal uncovers (x, y). The first reveal of a game never hits a mine.
// Revealing a revealed or flagged cell is a no-op. Off-board coordinates and
// finished games return ResultNone with an error wrapping
// core.ErrInvalidCoordinates or core.ErrGameOver; nothing changes in either case.
func (e *Engine) Reveal(x, y int) (Result, error) {
	at := core.NewCoordinate(x, y)
	if err := e.checkAction(core.ActionReveal, at); err != nil {
		return e.none(), err
	}

	b := e.gs.Board
	cell := b.At(at)
	if cell.Revealed || cell.Flagged {
		e.logger.Debug().Str("at", at.String()).Msg("Reveal ignored on revealed or flagged cell")
		return e.none(), nil
	}

	if e.stateMachine.CurrentPhase() == states.PhaseAwaitingFirstMove {
		if err := e.settleFirstMove(at); err != nil {
			return e.none(), core.WrapActionError(core.ActionReveal, at, err)
		}
		e.stateMachine.GetContext().Moves = e.gs.Moves
		if err := e.stateMachine.TransitionTo(states.PhaseRunning, "First reveal"); err != nil {
			return e.none(), err
		}
	}

	out := e.actionProcessor.Reveal(b, at)
	e.gs.Moves++
	e.gs.Reveals++
	gctx := e.stateMachine.GetContext()
	gctx.Moves = e.gs.Moves

	var result Result
	switch {
	case out.HitMine:
		detonated := at
		gctx.Detonated = &detonated
		if err := e.stateMachine.TransitionTo(states.PhaseLost, "Mine revealed"); err != nil {
			return e.none(), err
		}
		e.eventBus.Publish(events.NewGameLostEvent(e.gameID, at, e.gs.Moves, gctx.GetElapsedTime()))
		result = Result{Kind: ResultLost, Outcome: OutcomeLost}

	default:
		e.eventBus.Publish(events.NewCellsRevealedEvent(e.gameID, e.gs.Moves, at, out.Revealed))
		result = Result{Kind: ResultRevealed, Revealed: out.Revealed}
		won, err := e.evaluateWin("Board cleared")
		if err != nil {
			return result, err
		}
		if won {
			result.Kind = ResultWon
		}
		result.Outcome = e.Outcome()
	}

	e.record(core.Action{Kind: core.ActionReveal, At: at}, result)
	return result, nil
}

// ToggleFlag flips the flag on a hidden cell at (x, y). Toggling a revealed
// cell is a no-op. Errors follow the same rules as Reveal.
func (e *Engine) ToggleFlag(x, y int) (Result, error) {
	at := core.NewCoordinate(x, y)
	if err := e.checkAction(core.ActionFlag, at); err != nil {
		return e.none(), err
	}

	b := e.gs.Board
	if !e.actionProcessor.ToggleFlag(b, at) {
		return e.none(), nil
	}

	e.gs.Moves++
	e.gs.FlagToggles++
	e.stateMachine.GetContext().Moves = e.gs.Moves

	flagged := b.At(at).Flagged
	e.eventBus.Publish(events.NewFlagToggledEvent(e.gameID, e.gs.Moves, at, flagged, b.FlagCount()))

	result := Result{Kind: ResultFlagToggled, Flagged: flagged}
	won, err := e.evaluateWin("All mines flagged")
	if err != nil {
		return result, err
	}
	if won {
		result.Kind = ResultWon
	}
	result.Outcome = e.Outcome()

	e.record(core.Action{Kind: core.ActionFlag, At: at}, result)
	return result, nil
}

// checkAction rejects actions on finished boards and off-board targets
func (e *Engine) checkAction(kind core.ActionKind, at core.Coordinate) error {
	action := core.Action{Kind: kind, At: at}

	var err error
	if !e.stateMachine.CurrentPhase().CanReceiveActions() {
		err = core.ErrGameOver
	} else {
		err = action.Validate(e.gs.Board)
	}
	if err == nil {
		return nil
	}

	e.logger.Debug().
		Str("action_type", kind.String()).
		Str("at", at.String()).
		Err(err).
		Msg("Action rejected")
	e.eventBus.Publish(events.NewActionRejectedEvent(e.gameID, action, err.Error()))
	return core.WrapActionError(kind, at, err)
}

// settleFirstMove re-places the mines until the target is safe. When the
// reroll bound runs out the offending mine is moved to the first safe cell
// in row-major order so the first reveal always terminates safely.
func (e *Engine) settleFirstMove(at core.Coordinate) error {
	b := e.gs.Board
	for attempt := 1; b.At(at).IsMine; attempt++ {
		if attempt > e.maxRerolls {
			dest := e.relocateMine(at)
			e.gs.Relocated = true
			e.logger.Warn().
				Str("at", at.String()).
				Str("moved_to", dest.String()).
				Int("max_rerolls", e.maxRerolls).
				Msg("Reroll bound exhausted, relocated the mine under the first reveal")
			e.eventBus.Publish(events.NewMinesRerolledEvent(e.gameID, at, attempt, true))
			break
		}

		if err := e.placer.Place(b); err != nil {
			return fmt.Errorf("re-placing mines: %w", err)
		}
		e.gs.Rerolls++
		e.logger.Debug().
			Str("at", at.String()).
			Int("attempt", attempt).
			Msg("First reveal hit a mine, mines re-placed")
		e.eventBus.Publish(events.NewMinesRerolledEvent(e.gameID, at, attempt, false))
	}
	return nil
}

// relocateMine moves the mine at from to the first non-mine cell other than from
func (e *Engine) relocateMine(from core.Coordinate) core.Coordinate {
	b := e.gs.Board
	fromIdx := from.ToIndex(b.N)
	for i := range b.C {
		if i == fromIdx || b.C[i].IsMine {
			continue
		}
		b.C[i].IsMine = true
		b.C[fromIdx].IsMine = false
		return core.FromIndex(i, b.N)
	}
	// Unreachable while MineTotal < N²
	return from
}

// evaluateWin recomputes the win condition and moves to PhaseWon when it holds
func (e *Engine) evaluateWin(reason string) (bool, error) {
	phase := e.stateMachine.CurrentPhase()
	if !e.winCondition.IsWon(e.gs.Board, phase.FirstMoveTaken()) {
		return false, nil
	}
	if err := e.stateMachine.TransitionTo(states.PhaseWon, reason); err != nil {
		return false, err
	}
	e.eventBus.Publish(events.NewGameWonEvent(e.gameID, e.gs.Moves, e.stateMachine.GetContext().GetElapsedTime()))
	return true, nil
}

func (e *Engine) record(action core.Action, result Result) {
	if e.recorder == nil {
		return
	}
	e.recorder.OnMove(action, result)
	if result.Outcome != OutcomeInProgress {
		e.recorder.OnGameEnd(e.Snapshot())
	}
}

func (e *Engine) none() Result {
	return Result{Kind: ResultNone, Outcome: e.Outcome()}
}

// Outcome reports whether the game is still running, won or lost
func (e *Engine) Outcome() Outcome {
	switch e.stateMachine.CurrentPhase() {
	case states.PhaseWon:
		return OutcomeWon
	case states.PhaseLost:
		return OutcomeLost
	default:
		return OutcomeInProgress
	}
}

// IsGameOver returns true once the board is won or lost
func (e *Engine) IsGameOver() bool {
	return e.stateMachine.CurrentPhase().IsTerminal()
}

// Phase returns the lifecycle phase of the board
func (e *Engine) Phase() states.GamePhase {
	return e.stateMachine.CurrentPhase()
}

// GameID returns the unique ID of this game
func (e *Engine) GameID() string {
	return e.gameID
}

// Size returns the board edge length
func (e *Engine) Size() int {
	return e.gs.Board.N
}

// MineTotal returns the number of mines on the board
func (e *Engine) MineTotal() int {
	return e.gs.Board.MineTotal
}

// Difficulty returns the preset name, or "custom" for non-preset boards
func (e *Engine) Difficulty() string {
	return e.difficulty
}

// FlagsPlaced returns how many hidden cells carry a flag
func (e *Engine) FlagsPlaced() int {
	return e.gs.Board.FlagCount()
}

// Detonated returns the mine that ended the game, if any
func (e *Engine) Detonated() (core.Coordinate, bool) {
	d := e.stateMachine.GetContext().Detonated
	if d == nil {
		return core.Coordinate{}, false
	}
	return *d, true
}

// Cell returns the observable state of (x, y)
func (e *Engine) Cell(x, y int) (CellView, error) {
	b := e.gs.Board
	if !b.InBounds(x, y) {
		return CellView{}, core.ErrInvalidCoordinates
	}
	return viewOf(b, b.Idx(x, y), e.Outcome() == OutcomeLost), nil
}

// Snapshot copies the observable board state
func (e *Engine) Snapshot() Snapshot {
	b := e.gs.Board
	lost := e.Outcome() == OutcomeLost
	s := Snapshot{
		GameID:      e.gameID,
		Size:        b.N,
		MineTotal:   b.MineTotal,
		FlagsPlaced: b.FlagCount(),
		Moves:       e.gs.Moves,
		Phase:       e.stateMachine.CurrentPhase(),
		Outcome:     e.Outcome(),
		Cells:       make([]CellView, len(b.C)),
	}
	if d, ok := e.Detonated(); ok {
		s.Detonated = &d
	}
	for i := range b.C {
		s.Cells[i] = viewOf(b, i, lost)
	}
	return s
}

// GetLegalActionMask returns the reveal/flag mask for every cell, all false once the game is over
func (e *Engine) GetLegalActionMask() []bool {
	if e.IsGameOver() {
		return make([]bool, len(e.gs.Board.C)*2)
	}
	return e.legalMoves.GetLegalActionMask(e.gs.Board)
}

// EventBus returns the bus this engine publishes to
func (e *Engine) EventBus() *events.EventBus {
	return e.eventBus
}

// StateHistory returns the recorded phase transitions
func (e *Engine) StateHistory() []states.Transition {
	return e.stateMachine.GetHistory()
}
