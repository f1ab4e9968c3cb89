package core

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCoordinates = errors.New("invalid coordinates")
	ErrGameOver           = errors.New("game is over")
	ErrInvalidBoardSize   = errors.New("invalid board size")
	ErrInvalidMineTotal   = errors.New("mine total must be non-negative")
	ErrTooManyMines       = errors.New("mine total must be smaller than the number of cells")
	ErrUnknownDifficulty  = errors.New("unknown difficulty")
)

// ActionError ties a failed action to the cell it targeted
type ActionError struct {
	Kind ActionKind
	At   Coordinate
	Err  error
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("%s at %s: %v", e.Kind, e.At, e.Err)
}

func (e *ActionError) Unwrap() error { return e.Err }

// WrapActionError wraps err with the action that produced it. A nil err stays nil.
func WrapActionError(kind ActionKind, at Coordinate, err error) error {
	if err == nil {
		return nil
	}
	return &ActionError{Kind: kind, At: at, Err: err}
}
