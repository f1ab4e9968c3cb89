package states

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/mitchelldurbincs/minesweeper/internal/game/events"
)

// historyLimit bounds the kept transitions. A board has at most four.
const historyLimit = 100

// ErrInvalidTransition is returned when the phase graph forbids a move
var ErrInvalidTransition = errors.New("invalid phase transition")

// State is one phase of a board's lifecycle
type State interface {
	Phase() GamePhase
	// Enter runs after the machine switches to the phase. An error rolls
	// the switch back.
	Enter(ctx *GameContext) error
	// Exit runs before leaving the phase. Its error is logged, not returned.
	Exit(ctx *GameContext) error
	// Validate guards entry into the phase
	Validate(ctx *GameContext) error
}

// Transition is one recorded phase change
type Transition struct {
	From      GamePhase
	To        GamePhase
	Timestamp time.Time
	Reason    string
}

// StateMachine drives a board through Initializing, AwaitingFirstMove,
// Running and one of Won or Lost
type StateMachine struct {
	mu        sync.RWMutex
	phase     GamePhase
	states    map[GamePhase]State
	context   *GameContext
	history   []Transition
	publisher events.Publisher
}

// NewStateMachine creates a machine in PhaseInitializing. publisher may be nil.
func NewStateMachine(ctx *GameContext, publisher events.Publisher) *StateMachine {
	sm := &StateMachine{
		phase:     PhaseInitializing,
		states:    make(map[GamePhase]State, 5),
		context:   ctx,
		publisher: publisher,
	}
	for _, s := range []State{
		NewInitializingState(),
		NewAwaitingFirstMoveState(),
		NewRunningState(),
		NewWonState(),
		NewLostState(),
	} {
		sm.states[s.Phase()] = s
	}
	return sm
}

// RegisterState replaces the implementation for state.Phase()
func (sm *StateMachine) RegisterState(state State) {
	sm.mu.Lock()
	sm.states[state.Phase()] = state
	sm.mu.Unlock()
}

func (sm *StateMachine) CurrentPhase() GamePhase {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.phase
}

// CanTransitionTo reports whether target is reachable in one step
func (sm *StateMachine) CanTransitionTo(target GamePhase) bool {
	return sm.CurrentPhase().CanTransitionTo(target)
}

// TransitionTo moves the machine to target. On success a
// StateTransitionEvent is published after the lock is released, so
// receivers may read the machine.
func (sm *StateMachine) TransitionTo(target GamePhase, reason string) error {
	sm.mu.Lock()
	tr, err := sm.step(target, reason)
	sm.mu.Unlock()
	if err != nil {
		return err
	}

	if sm.publisher != nil {
		sm.publisher.Publish(events.NewStateTransitionEvent(
			sm.context.GameID, tr.From.String(), tr.To.String(), reason))
	}
	sm.context.Logger.Info().
		Str("from_phase", tr.From.String()).
		Str("to_phase", tr.To.String()).
		Str("reason", reason).
		Msg("State transition completed")
	return nil
}

// step performs the transition with sm.mu held
func (sm *StateMachine) step(target GamePhase, reason string) (Transition, error) {
	from := sm.phase
	if !from.CanTransitionTo(target) {
		return Transition{}, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, from, target)
	}

	next, ok := sm.states[target]
	if !ok {
		return Transition{}, fmt.Errorf("no state implementation for phase %s", target)
	}
	if err := next.Validate(sm.context); err != nil {
		return Transition{}, fmt.Errorf("%s validation failed: %w", target, err)
	}

	if cur, ok := sm.states[from]; ok {
		if err := cur.Exit(sm.context); err != nil {
			sm.context.Logger.Error().
				Err(err).
				Str("from_phase", from.String()).
				Str("to_phase", target.String()).
				Msg("Error exiting state")
		}
	}

	sm.phase = target
	if err := next.Enter(sm.context); err != nil {
		sm.phase = from
		return Transition{}, fmt.Errorf("failed to enter state %s: %w", target, err)
	}

	tr := Transition{From: from, To: target, Timestamp: time.Now(), Reason: reason}
	sm.history = append(sm.history, tr)
	if over := len(sm.history) - historyLimit; over > 0 {
		sm.history = sm.history[over:]
	}
	return tr, nil
}

// GetHistory returns a copy of the recorded transitions, oldest first
func (sm *StateMachine) GetHistory() []Transition {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return append([]Transition(nil), sm.history...)
}

// GetContext returns the shared game context. The engine mutates it
// between transitions.
func (sm *StateMachine) GetContext() *GameContext {
	return sm.context
}
