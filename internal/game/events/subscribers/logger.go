package subscribers

import (
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/minesweeper/internal/game/core"
	"github.com/mitchelldurbincs/minesweeper/internal/game/events"
)

// LoggerSubscriber writes each game event as one structured log line
type LoggerSubscriber struct {
	id     string
	logger zerolog.Logger
	level  zerolog.Level
	// only is nil when every event type is logged
	only    map[string]struct{}
	devMode bool
}

// NewLoggerSubscriber creates a subscriber that logs at level. Levels outside
// debug..error fall back to info.
func NewLoggerSubscriber(id string, logger zerolog.Logger, level zerolog.Level) *LoggerSubscriber {
	if level < zerolog.DebugLevel || level > zerolog.ErrorLevel {
		level = zerolog.InfoLevel
	}
	return &LoggerSubscriber{
		id:     id,
		logger: logger.With().Str("subscriber", "event_logger").Logger(),
		level:  level,
	}
}

func (ls *LoggerSubscriber) ID() string { return ls.id }

// SetEventFilter restricts logging to eventTypes. An empty list logs everything.
func (ls *LoggerSubscriber) SetEventFilter(eventTypes []string) {
	if len(eventTypes) == 0 {
		ls.only = nil
		return
	}
	ls.only = make(map[string]struct{}, len(eventTypes))
	for _, t := range eventTypes {
		ls.only[t] = struct{}{}
	}
}

// SetDevMode attaches the full JSON encoding of each event
func (ls *LoggerSubscriber) SetDevMode(enabled bool) {
	ls.devMode = enabled
}

func (ls *LoggerSubscriber) InterestedIn(eventType string) bool {
	if ls.only == nil {
		return true
	}
	_, ok := ls.only[eventType]
	return ok
}

// HandleEvent logs event with its type-specific fields
func (ls *LoggerSubscriber) HandleEvent(event events.Event) {
	line := ls.logger.WithLevel(ls.level).
		Str("event_type", event.Type()).
		Str("game_id", event.GameID()).
		Time("timestamp", event.Timestamp())

	addFields(line, event)

	if ls.devMode {
		if raw, err := json.Marshal(event); err == nil {
			line.RawJSON("event_data", raw)
		}
	}
	line.Msg("Game event")
}

func addCoord(line *zerolog.Event, prefix string, c core.Coordinate) {
	line.Int(prefix+"x", c.X).Int(prefix+"y", c.Y)
}

func addFields(line *zerolog.Event, event events.Event) {
	switch e := event.(type) {
	case *events.GameStartedEvent:
		line.Int("size", e.Size).Int("mine_total", e.MineTotal).Str("difficulty", e.Difficulty)
	case *events.CellsRevealedEvent:
		line.Int("move", e.Metadata.Move)
		addCoord(line, "origin_", e.Origin)
		line.Int("cells_revealed", len(e.Cells)).Bool("cascade", e.Cascade)
	case *events.FlagToggledEvent:
		line.Int("move", e.Metadata.Move)
		addCoord(line, "", e.At)
		line.Bool("flagged", e.Flagged).Int("flags_placed", e.FlagsPlaced)
	case *events.MinesRerolledEvent:
		addCoord(line, "trigger_", e.Trigger)
		line.Int("attempt", e.Attempt).Bool("relocated", e.Relocated)
	case *events.ActionRejectedEvent:
		line.Str("action_type", e.Action.Kind.String()).Str("at", e.Action.At.String()).Str("reason", e.Reason)
	case *events.GameWonEvent:
		line.Int("moves", e.Moves).Dur("duration", e.Duration)
	case *events.GameLostEvent:
		addCoord(line, "detonated_", e.Detonated)
		line.Int("moves", e.Moves).Dur("duration", e.Duration)
	case *events.StateTransitionEvent:
		line.Str("from_phase", e.FromPhase).Str("to_phase", e.ToPhase).Str("reason", e.Reason)
	}
}
