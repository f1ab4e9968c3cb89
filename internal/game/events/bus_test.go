package events

import (
	"testing"
	"time"

	"github.com/mitchelldurbincs/minesweeper/internal/game/core"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventBus(t *testing.T) {
	bus := NewEventBus()

	received := false
	var receivedEvent Event

	bus.SubscribeFunc(TypeGameStarted, func(e Event) {
		received = true
		receivedEvent = e
	})

	bus.Publish(NewGameStartedEvent("test-game", 9, 10, "easy"))

	assert.True(t, received, "Event handler should have been called")
	require.NotNil(t, receivedEvent, "Event should have been received")
	assert.Equal(t, TypeGameStarted, receivedEvent.Type())
	assert.Equal(t, "test-game", receivedEvent.GameID())

	started, ok := receivedEvent.(*GameStartedEvent)
	require.True(t, ok)
	assert.Equal(t, 9, started.Size)
	assert.Equal(t, 10, started.MineTotal)
}

func TestEventBusMultipleSubscribers(t *testing.T) {
	bus := NewEventBus()

	handler1Called := false
	handler2Called := false

	id1 := bus.SubscribeFunc(TypeFlagToggled, func(e Event) {
		handler1Called = true
	})
	id2 := bus.SubscribeFunc(TypeFlagToggled, func(e Event) {
		handler2Called = true
	})
	assert.NotEqual(t, id1, id2)
	assert.Equal(t, 2, bus.GetFuncHandlerCount(TypeFlagToggled))

	bus.Publish(NewFlagToggledEvent("test-game", 1, core.NewCoordinate(2, 3), true, 1))

	assert.True(t, handler1Called, "Handler 1 should have been called")
	assert.True(t, handler2Called, "Handler 2 should have been called")
}

// TestSubscriber is a test implementation of Subscriber
type TestSubscriber struct {
	id              string
	interestedTypes map[string]bool
	receivedEvents  []Event
}

func (ts *TestSubscriber) ID() string {
	return ts.id
}

func (ts *TestSubscriber) HandleEvent(e Event) {
	ts.receivedEvents = append(ts.receivedEvents, e)
}

func (ts *TestSubscriber) InterestedIn(eventType string) bool {
	if ts.interestedTypes == nil {
		return true
	}
	return ts.interestedTypes[eventType]
}

func TestEventBusSubscriber(t *testing.T) {
	bus := NewEventBus()

	subscriber := &TestSubscriber{
		id: "test-subscriber",
		interestedTypes: map[string]bool{
			TypeGameStarted: true,
			TypeGameLost:    true,
		},
	}

	bus.Subscribe(subscriber)
	assert.Equal(t, 1, bus.GetSubscriberCount())

	bus.Publish(NewGameStartedEvent("test-game", 9, 10, "easy"))
	bus.Publish(NewCellsRevealedEvent("test-game", 1, core.NewCoordinate(0, 0), []core.Coordinate{{X: 0, Y: 0}}))
	bus.Publish(NewGameLostEvent("test-game", core.NewCoordinate(4, 4), 2, time.Minute))

	require.Len(t, subscriber.receivedEvents, 2)
	assert.Equal(t, TypeGameStarted, subscriber.receivedEvents[0].Type())
	assert.Equal(t, TypeGameLost, subscriber.receivedEvents[1].Type())

	bus.Unsubscribe(subscriber.ID())
	assert.Equal(t, 0, bus.GetSubscriberCount())
	bus.Publish(NewGameStartedEvent("test-game", 9, 10, "easy"))

	assert.Len(t, subscriber.receivedEvents, 2)
}

type panickySubscriber struct{}

func (panickySubscriber) ID() string               { return "panicky" }
func (panickySubscriber) HandleEvent(Event)        { panic("boom") }
func (panickySubscriber) InterestedIn(string) bool { return true }

func TestEventBusRecoversFromPanics(t *testing.T) {
	bus := NewEventBusWithLogger(zerolog.Nop())
	bus.Subscribe(panickySubscriber{})

	called := false
	bus.SubscribeFunc(TypeGameWon, func(Event) { panic("handler boom") })
	bus.SubscribeFunc(TypeGameWon, func(Event) { called = true })

	assert.NotPanics(t, func() {
		bus.Publish(NewGameWonEvent("test-game", 12, time.Second))
	})
	assert.True(t, called, "later handlers still run after an earlier one panics")
}

func TestEventConstructors(t *testing.T) {
	origin := core.NewCoordinate(5, 5)

	single := NewCellsRevealedEvent("g", 3, origin, []core.Coordinate{origin})
	assert.False(t, single.Cascade)
	assert.Equal(t, 3, single.Metadata.Move)

	many := NewCellsRevealedEvent("g", 3, origin, []core.Coordinate{origin, {X: 5, Y: 6}})
	assert.True(t, many.Cascade)

	rerolled := NewMinesRerolledEvent("g", core.NewCoordinate(0, 0), 4, true)
	assert.Equal(t, TypeMinesRerolled, rerolled.Type())
	assert.Equal(t, 4, rerolled.Attempt)
	assert.True(t, rerolled.Relocated)

	rejected := NewActionRejectedEvent("g", core.Action{Kind: core.ActionFlag, At: core.NewCoordinate(-1, 0)}, "invalid")
	assert.Equal(t, TypeActionRejected, rejected.Type())
	assert.Equal(t, core.ActionFlag, rejected.Action.Kind)

	transition := NewStateTransitionEvent("g", "Running", "Won", "board cleared")
	assert.Equal(t, "Running", transition.FromPhase)
	assert.Equal(t, "Won", transition.ToPhase)
	assert.False(t, transition.Timestamp().IsZero())
}

func TestEventBusDeliversInSubscriptionOrder(t *testing.T) {
	bus := NewEventBusWithLogger(zerolog.Nop())

	var order []string
	bus.SubscribeFunc(TypeGameStarted, func(Event) { order = append(order, "first") })
	bus.Subscribe(&recorder{id: "second", onEvent: func(Event) { order = append(order, "second") }})
	bus.SubscribeFunc(TypeGameStarted, func(Event) { order = append(order, "third") })

	bus.Publish(NewGameStartedEvent("g", 9, 8, "easy"))
	assert.Equal(t, []string{"first", "second", "third"}, order)
}

func TestEventBusUnsubscribeFunc(t *testing.T) {
	bus := NewEventBusWithLogger(zerolog.Nop())

	calls := 0
	id := bus.SubscribeFunc(TypeGameWon, func(Event) { calls++ })
	bus.Publish(NewGameWonEvent("g", 3, time.Second))

	bus.Unsubscribe(id)
	bus.Unsubscribe("missing")
	bus.Publish(NewGameWonEvent("g", 3, time.Second))

	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, bus.GetFuncHandlerCount(TypeGameWon))
}

func TestEventBusResubscribeReplaces(t *testing.T) {
	bus := NewEventBusWithLogger(zerolog.Nop())

	var got []string
	bus.Subscribe(&recorder{id: "dup", onEvent: func(Event) { got = append(got, "old") }})
	bus.Subscribe(&recorder{id: "dup", onEvent: func(Event) { got = append(got, "new") }})
	assert.Equal(t, 1, bus.GetSubscriberCount())

	bus.Publish(NewGameWonEvent("g", 1, time.Second))
	assert.Equal(t, []string{"new"}, got)
}

func TestEventBusHandlerMaySubscribe(t *testing.T) {
	bus := NewEventBusWithLogger(zerolog.Nop())

	bus.SubscribeFunc(TypeGameStarted, func(Event) {
		bus.SubscribeFunc(TypeGameWon, func(Event) {})
	})

	done := make(chan struct{})
	go func() {
		bus.Publish(NewGameStartedEvent("g", 9, 8, "easy"))
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish deadlocked when a handler subscribed")
	}
	assert.Equal(t, 1, bus.GetFuncHandlerCount(TypeGameWon))
}

type recorder struct {
	id      string
	onEvent func(Event)
}

func (r *recorder) ID() string               { return r.id }
func (r *recorder) HandleEvent(e Event)      { r.onEvent(e) }
func (r *recorder) InterestedIn(string) bool { return true }
