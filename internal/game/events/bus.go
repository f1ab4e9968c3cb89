package events

import (
	"strconv"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// subscription is one registered receiver: either a Subscriber or a function
// bound to a single event type.
type subscription struct {
	id        string
	eventType string // empty for Subscriber entries
	sub       Subscriber
	fn        EventHandler
}

func (s subscription) wants(eventType string) bool {
	if s.sub != nil {
		return s.sub.InterestedIn(eventType)
	}
	return s.eventType == eventType
}

func (s subscription) deliver(event Event) {
	if s.sub != nil {
		s.sub.HandleEvent(event)
		return
	}
	s.fn(event)
}

var _ Publisher = (*EventBus)(nil)

// EventBus delivers events synchronously in subscription order. Handlers run
// on the publishing goroutine after the bus lock is released, so a handler may
// subscribe or unsubscribe without deadlocking.
type EventBus struct {
	mu     sync.RWMutex
	subs   []subscription
	nextFn int
	logger zerolog.Logger
}

// NewEventBus creates an event bus that logs through the global logger
func NewEventBus() *EventBus {
	return NewEventBusWithLogger(log.Logger)
}

// NewEventBusWithLogger creates an event bus that logs through logger
func NewEventBusWithLogger(logger zerolog.Logger) *EventBus {
	return &EventBus{
		logger: logger.With().Str("component", "event_bus").Logger(),
	}
}

// Subscribe registers subscriber. A subscriber with an existing ID replaces
// the earlier one in place.
func (eb *EventBus) Subscribe(subscriber Subscriber) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	entry := subscription{id: subscriber.ID(), sub: subscriber}
	if i := eb.indexLocked(entry.id); i >= 0 {
		eb.subs[i] = entry
	} else {
		eb.subs = append(eb.subs, entry)
	}
	eb.logger.Debug().Str("subscriber_id", entry.id).Msg("Subscriber added")
}

// SubscribeFunc registers handler for one event type and returns an ID that
// Unsubscribe accepts
func (eb *EventBus) SubscribeFunc(eventType string, handler EventHandler) string {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	eb.nextFn++
	id := eventType + "_func_" + strconv.Itoa(eb.nextFn)
	eb.subs = append(eb.subs, subscription{id: id, eventType: eventType, fn: handler})
	eb.logger.Debug().
		Str("event_type", eventType).
		Str("handler_id", id).
		Msg("Function handler added")
	return id
}

// Unsubscribe removes a subscriber or function handler by ID
func (eb *EventBus) Unsubscribe(id string) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	if i := eb.indexLocked(id); i >= 0 {
		eb.subs = append(eb.subs[:i:i], eb.subs[i+1:]...)
		eb.logger.Debug().Str("subscriber_id", id).Msg("Subscriber removed")
	}
}

func (eb *EventBus) indexLocked(id string) int {
	for i, s := range eb.subs {
		if s.id == id {
			return i
		}
	}
	return -1
}

// Publish delivers event to every interested receiver. A panicking
// receiver is logged and skipped.
func (eb *EventBus) Publish(event Event) {
	eventType := event.Type()

	eb.mu.RLock()
	targets := make([]subscription, 0, len(eb.subs))
	for _, s := range eb.subs {
		if s.wants(eventType) {
			targets = append(targets, s)
		}
	}
	eb.mu.RUnlock()

	eb.logger.Debug().
		Str("event_type", eventType).
		Str("game_id", event.GameID()).
		Int("receivers", len(targets)).
		Msg("Publishing event")

	for _, s := range targets {
		eb.safeDeliver(s, event)
	}
}

func (eb *EventBus) safeDeliver(s subscription, event Event) {
	defer func() {
		if r := recover(); r != nil {
			eb.logger.Error().
				Str("subscriber_id", s.id).
				Str("event_type", event.Type()).
				Interface("panic", r).
				Msg("Receiver panicked while handling event")
		}
	}()
	s.deliver(event)
}

// GetSubscriberCount returns the number of Subscriber receivers
func (eb *EventBus) GetSubscriberCount() int {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	n := 0
	for _, s := range eb.subs {
		if s.sub != nil {
			n++
		}
	}
	return n
}

// GetFuncHandlerCount returns the number of function handlers for eventType
func (eb *EventBus) GetFuncHandlerCount(eventType string) int {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	n := 0
	for _, s := range eb.subs {
		if s.sub == nil && s.eventType == eventType {
			n++
		}
	}
	return n
}
