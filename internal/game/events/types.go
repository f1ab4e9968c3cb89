package events

import (
	"time"
)

// Event is anything published on a game's bus. Type is one of the Type*
// constants and is what receivers filter on.
type Event interface {
	Type() string
	Timestamp() time.Time
	GameID() string
}

// BaseEvent carries the fields every event shares. Concrete events embed it.
type BaseEvent struct {
	EventType string    `json:"type"`
	Time      time.Time `json:"timestamp"`
	Game      string    `json:"game_id"`
}

func (e BaseEvent) Type() string         { return e.EventType }
func (e BaseEvent) Timestamp() time.Time { return e.Time }
func (e BaseEvent) GameID() string       { return e.Game }

func newBase(eventType, gameID string) BaseEvent {
	return BaseEvent{EventType: eventType, Time: time.Now(), Game: gameID}
}

// EventMetadata ties an event to the action that caused it
type EventMetadata struct {
	// Move is the 1-based action count, zero for events raised during setup
	Move int `json:"move,omitempty"`
}

// EventHandler receives events registered through SubscribeFunc
type EventHandler func(Event)

// Subscriber is a named receiver that picks its own event types
type Subscriber interface {
	ID() string
	HandleEvent(Event)
	InterestedIn(eventType string) bool
}

// Publisher is the side of the bus the engine and state machine see
type Publisher interface {
	Publish(Event)
}
