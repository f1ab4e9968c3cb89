package core

// ActionKind represents the type of player action
type ActionKind int

const (
	ActionReveal ActionKind = iota
	ActionFlag
)

func (k ActionKind) String() string {
	switch k {
	case ActionReveal:
		return "reveal"
	case ActionFlag:
		return "flag"
	default:
		return "unknown"
	}
}

// Action is a single player input on one cell
type Action struct {
	Kind ActionKind
	At   Coordinate
}

// Validate checks the action targets a cell on b
func (a Action) Validate(b *Board) error {
	if !b.InBounds(a.At.X, a.At.Y) {
		return ErrInvalidCoordinates
	}
	return nil
}
