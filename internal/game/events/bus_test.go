package events

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventBus(t *testing.T) {
	bus := NewEventBusWithLogger(zerolog.Nop())

	received := false
	var receivedEvent Event

	id := bus.SubscribeFunc(TypeAttackStarted, func(e Event) {
		received = true
		receivedEvent = e
	})
	assert.Equal(t, "attack.started_func_1", id)

	bus.Publish(NewAttackStartedEvent("attack-1", 1, "red", "blue", 5, 123))

	assert.True(t, received, "Event handler should have been called")
	require.NotNil(t, receivedEvent)
	assert.Equal(t, TypeAttackStarted, receivedEvent.Type())
	assert.Equal(t, "attack-1", receivedEvent.AttackID())
	assert.False(t, receivedEvent.Timestamp().IsZero())
}

func TestEventBusMultipleHandlers(t *testing.T) {
	bus := NewEventBusWithLogger(zerolog.Nop())

	var calls []int
	bus.SubscribeFunc(TypeTileConquered, func(e Event) { calls = append(calls, 1) })
	bus.SubscribeFunc(TypeTileConquered, func(e Event) { calls = append(calls, 2) })
	assert.Equal(t, 2, bus.GetFuncHandlerCount(TypeTileConquered))

	bus.Publish(NewTileConqueredEvent("attack-1", 2, 0, 12.5, "blue", "red", 4))

	assert.Equal(t, []int{1, 2}, calls)
}

func TestEventBusSubscriber(t *testing.T) {
	bus := NewEventBusWithLogger(zerolog.Nop())

	rec := NewRecorder("test-subscriber", TypeAttackStarted, TypeAttackFinished)
	bus.Subscribe(rec)
	assert.Equal(t, 1, bus.GetSubscriberCount())

	bus.Publish(NewAttackStartedEvent("a", 1, "red", "", 3, 1))
	bus.Publish(NewTileConqueredEvent("a", 2, 0, 10, "", "red", 2))
	bus.Publish(NewAttackFinishedEvent("a", 1, 2, 0, time.Millisecond))

	got := rec.Events()
	require.Len(t, got, 2)
	assert.Equal(t, TypeAttackStarted, got[0].Type())
	assert.Equal(t, TypeAttackFinished, got[1].Type())

	bus.Unsubscribe(rec.ID())
	bus.Unsubscribe("never-subscribed")
	assert.Equal(t, 0, bus.GetSubscriberCount())
	bus.Publish(NewAttackStartedEvent("a", 1, "red", "", 3, 1))
	assert.Len(t, rec.Events(), 2)
}

func TestEventBusSubscriberOrder(t *testing.T) {
	bus := NewEventBusWithLogger(zerolog.Nop())

	var order []string
	for _, id := range []string{"c", "a", "b"} {
		id := id
		bus.SubscribeFunc(TypeAttackStarted, func(Event) {})
		bus.Subscribe(&funcSubscriber{id: id, fn: func(Event) { order = append(order, id) }})
	}

	bus.Publish(NewAttackStartedEvent("a", 1, "red", "", 1, 1))
	assert.Equal(t, []string{"c", "a", "b"}, order)
}

func TestEventBusRecoversFromPanics(t *testing.T) {
	bus := NewEventBusWithLogger(zerolog.Nop())

	bus.Subscribe(&funcSubscriber{id: "boom", fn: func(Event) { panic("subscriber failure") }})
	bus.SubscribeFunc(TypeAttackFinished, func(Event) { panic("handler failure") })
	rec := NewRecorder("after")
	bus.Subscribe(rec)

	assert.NotPanics(t, func() {
		bus.Publish(NewAttackFinishedEvent("a", 0, 0, 0, 0))
	})
	assert.Len(t, rec.Events(), 1, "later subscribers still receive the event")
}

func TestRecorderAllTypes(t *testing.T) {
	rec := NewRecorder("all")
	assert.True(t, rec.InterestedIn(TypeAttackStarted))
	assert.True(t, rec.InterestedIn("anything.else"))
}

type funcSubscriber struct {
	id string
	fn func(Event)
}

func (f *funcSubscriber) ID() string                { return f.id }
func (f *funcSubscriber) HandleEvent(e Event)       { f.fn(e) }
func (f *funcSubscriber) InterestedIn(string) bool  { return true }
