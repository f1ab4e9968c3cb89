package game

import (
	"fmt"
	"math/rand"

	"github.com/mitchelldurbincs/minesweeper/internal/game/core"
	"github.com/rs/zerolog/log"
)

// RandomHiddenCell picks a uniformly random hidden unflagged cell.
// This is a helper intended for demos, testing, or simple baseline agents.
func RandomHiddenCell(s Snapshot, rng *rand.Rand) (core.Coordinate, bool) {
	candidates := s.HiddenUnflagged()
	if len(candidates) == 0 {
		return core.Coordinate{}, false
	}
	chosen := candidates[rng.Intn(len(candidates))]
	log.Debug().
		Str("game_id", s.GameID).
		Int("candidates", len(candidates)).
		Str("at", chosen.String()).
		Msg("Generated random reveal")
	return chosen, true
}

// Apply dispatches an action to the matching engine method
func (e *Engine) Apply(action core.Action) (Result, error) {
	switch action.Kind {
	case core.ActionReveal:
		return e.Reveal(action.At.X, action.At.Y)
	case core.ActionFlag:
		return e.ToggleFlag(action.At.X, action.At.Y)
	default:
		return e.none(), fmt.Errorf("unknown action kind %d", int(action.Kind))
	}
}
