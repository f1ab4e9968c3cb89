package states

import "fmt"

// GamePhase represents the current phase of a game
type GamePhase int

const (
	// PhaseInitializing - Board allocation and first mine placement
	PhaseInitializing GamePhase = iota

	// PhaseAwaitingFirstMove - Mines placed, no cell revealed yet
	PhaseAwaitingFirstMove

	// PhaseRunning - Active gameplay
	PhaseRunning

	// PhaseWon - Every safe cell revealed and every mine flagged
	PhaseWon

	// PhaseLost - A mine was revealed
	PhaseLost
)

// String returns the string representation of a GamePhase
func (p GamePhase) String() string {
	switch p {
	case PhaseInitializing:
		return "Initializing"
	case PhaseAwaitingFirstMove:
		return "AwaitingFirstMove"
	case PhaseRunning:
		return "Running"
	case PhaseWon:
		return "Won"
	case PhaseLost:
		return "Lost"
	default:
		return fmt.Sprintf("Unknown(%d)", p)
	}
}

// IsTerminal returns true if the phase represents a terminal state
func (p GamePhase) IsTerminal() bool {
	return p == PhaseWon || p == PhaseLost
}

// CanReceiveActions returns true if reveal and flag actions are accepted in this phase
func (p GamePhase) CanReceiveActions() bool {
	return p == PhaseAwaitingFirstMove || p == PhaseRunning
}

// FirstMoveTaken reports whether a reveal has already been applied
func (p GamePhase) FirstMoveTaken() bool {
	return p == PhaseRunning || p.IsTerminal()
}

// AllowedTransitions returns the valid phases this phase can transition to
func (p GamePhase) AllowedTransitions() []GamePhase {
	switch p {
	case PhaseInitializing:
		return []GamePhase{PhaseAwaitingFirstMove}
	case PhaseAwaitingFirstMove:
		return []GamePhase{PhaseRunning}
	case PhaseRunning:
		return []GamePhase{PhaseWon, PhaseLost}
	default:
		return []GamePhase{}
	}
}

// CanTransitionTo checks if a transition from this phase to the target phase is allowed
func (p GamePhase) CanTransitionTo(target GamePhase) bool {
	for _, phase := range p.AllowedTransitions() {
		if phase == target {
			return true
		}
	}
	return false
}

// ParsePhase converts a string to a GamePhase
func ParsePhase(s string) (GamePhase, error) {
	switch s {
	case "Initializing":
		return PhaseInitializing, nil
	case "AwaitingFirstMove":
		return PhaseAwaitingFirstMove, nil
	case "Running":
		return PhaseRunning, nil
	case "Won":
		return PhaseWon, nil
	case "Lost":
		return PhaseLost, nil
	default:
		return PhaseInitializing, fmt.Errorf("unknown phase %q", s)
	}
}
