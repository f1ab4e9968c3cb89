package game

import (
	"github.com/mitchelldurbincs/minesweeper/internal/game/core"
)

// MoveRecorder observes every action the engine applies. No-ops and
// rejected actions are not reported.
type MoveRecorder interface {
	// OnMove is called after each applied action
	OnMove(action core.Action, result Result)

	// OnGameEnd is called once the board is won or lost
	OnGameEnd(final Snapshot)
}

// MoveLog is a MoveRecorder that keeps the full move list in memory
type MoveLog struct {
	Moves []RecordedMove
	Final *Snapshot
}

// RecordedMove pairs an applied action with its result
type RecordedMove struct {
	Action core.Action
	Result Result
}

// OnMove implements MoveRecorder
func (l *MoveLog) OnMove(action core.Action, result Result) {
	l.Moves = append(l.Moves, RecordedMove{Action: action, Result: result})
}

// OnGameEnd implements MoveRecorder
func (l *MoveLog) OnGameEnd(final Snapshot) {
	l.Final = &final
}
