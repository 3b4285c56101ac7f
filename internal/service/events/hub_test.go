package events_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/interview-prep/backend/internal/service/events"
)

func TestHubDeliversOnlyToSessionSubscribers(t *testing.T) {
	hub := events.NewHub(4)
	a := hub.Subscribe("s1")
	b := hub.Subscribe("s2")
	defer a.Close()
	defer b.Close()

	hub.Publish(events.Event{Type: events.QuestionPinned, SessionID: "s1"})

	select {
	case ev := <-a.Events():
		assert.Equal(t, events.QuestionPinned, ev.Type)
		assert.NotZero(t, ev.Timestamp)
	default:
		t.Fatal("expected event for s1 subscriber")
	}

	select {
	case ev := <-b.Events():
		t.Fatalf("unexpected event for s2 subscriber: %+v", ev)
	default:
	}
}

func TestHubDropsWhenBufferFull(t *testing.T) {
	hub := events.NewHub(1)
	sub := hub.Subscribe("s1")
	defer sub.Close()

	hub.Publish(events.Event{Type: events.QuestionNoted, SessionID: "s1"})
	hub.Publish(events.Event{Type: events.QuestionPinned, SessionID: "s1"})

	ev := <-sub.Events()
	assert.Equal(t, events.QuestionNoted, ev.Type)
	assert.Len(t, sub.Events(), 0)
}

func TestSubscriptionCloseUnregisters(t *testing.T) {
	hub := events.NewHub(1)
	sub := hub.Subscribe("s1")
	require.Equal(t, 1, hub.Subscribers("s1"))

	sub.Close()
	sub.Close()

	assert.Equal(t, 0, hub.Subscribers("s1"))
	_, open := <-sub.Events()
	assert.False(t, open)

	// Publishing after close must not panic on the closed channel.
	hub.Publish(events.Event{Type: events.SessionDeleted, SessionID: "s1"})
}
