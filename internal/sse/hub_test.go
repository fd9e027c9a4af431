package sse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroadcastReachesOnlyTargetUser(t *testing.T) {
	hub := NewHub(nil)

	aliceCh, unsubAlice := hub.Subscribe(1)
	defer unsubAlice()
	bobCh, unsubBob := hub.Subscribe(2)
	defer unsubBob()

	hub.Broadcast(1, Event{Type: "invitation", Data: "hi"})

	select {
	case ev := <-aliceCh:
		assert.Equal(t, "invitation", ev.Type)
	default:
		t.Fatal("expected alice to receive the event")
	}
	select {
	case ev := <-bobCh:
		t.Fatalf("bob should not receive alice's event, got %v", ev)
	default:
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	hub := NewHub(nil)

	ch, unsub := hub.Subscribe(7)
	unsub()

	// Channel is closed on unsubscribe.
	_, open := <-ch
	assert.False(t, open)

	// Broadcasting after unsubscribe must not panic.
	hub.Broadcast(7, Event{Type: "notification"})
}

func TestMultipleSubscribersFanOut(t *testing.T) {
	hub := NewHub(nil)

	ch1, unsub1 := hub.Subscribe(3)
	defer unsub1()
	ch2, unsub2 := hub.Subscribe(3)
	defer unsub2()

	hub.Broadcast(3, Event{Type: "announcement"})

	require.Len(t, ch1, 1)
	require.Len(t, ch2, 1)
}

func TestBroadcastAssignsMonotonicIDs(t *testing.T) {
	hub := NewHub(nil)

	aliceCh, unsubAlice := hub.Subscribe(1)
	defer unsubAlice()
	bobCh, unsubBob := hub.Subscribe(2)
	defer unsubBob()

	hub.Broadcast(1, Event{Type: "notification"})
	hub.Broadcast(1, Event{Type: "invitation"})
	hub.Broadcast(2, Event{Type: "notification"})

	first, second := <-aliceCh, <-aliceCh
	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)

	// Each user has an independent sequence.
	assert.Equal(t, int64(1), (<-bobCh).ID)
}

func TestReplayWithoutRedisIsEmpty(t *testing.T) {
	hub := NewHub(nil)

	events, err := hub.ReplayAfter(1, 0)
	require.NoError(t, err)
	assert.Empty(t, events)
}
