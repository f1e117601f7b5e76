package events

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/blockpuzzle/game/engine"
)

func startHub(t *testing.T) (*Hub, context.CancelFunc) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub()
	go hub.Run(ctx)
	t.Cleanup(cancel)
	return hub, cancel
}

func receive(t *testing.T, sub *Subscriber) Message {
	t.Helper()
	select {
	case msg, ok := <-sub.C():
		require.True(t, ok, "channel closed")
		return msg
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for message")
	}
	return Message{}
}

func assertClosed(t *testing.T, sub *Subscriber) {
	t.Helper()
	deadline := time.After(time.Second)
	for {
		select {
		case _, ok := <-sub.C():
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("channel not closed")
		}
	}
}

func scoreEvent(score int) engine.Event {
	return engine.Event{Type: engine.EventScoreChanged, Score: score}
}

func TestHub_DeliversToSessionSubscribers(t *testing.T) {
	hub, _ := startHub(t)

	a := hub.Subscribe("a")
	b := hub.Subscribe("b")

	hub.Publish("a", scoreEvent(1), scoreEvent(2))

	first := receive(t, a)
	assert.Equal(t, "a", first.SessionID)
	assert.Equal(t, 1, first.Event.Score)
	assert.Equal(t, 2, receive(t, a).Event.Score)

	hub.Publish("b", scoreEvent(3))
	assert.Equal(t, 3, receive(t, b).Event.Score)
	assert.Empty(t, a.C(), "a must not see b's events")
}

func TestHub_AllSessions(t *testing.T) {
	hub, _ := startHub(t)

	all := hub.Subscribe(AllSessions)
	hub.Publish("x", scoreEvent(1))
	hub.Publish("y", scoreEvent(2))

	assert.Equal(t, "x", receive(t, all).SessionID)
	assert.Equal(t, "y", receive(t, all).SessionID)
}

func TestHub_Unsubscribe(t *testing.T) {
	hub, _ := startHub(t)

	sub := hub.Subscribe("a")
	hub.Unsubscribe(sub)
	assertClosed(t, sub)

	// publishing to a session with no subscribers is fine
	hub.Publish("a", scoreEvent(1))
	hub.Unsubscribe(sub)
}

func TestHub_DropsSlowSubscriber(t *testing.T) {
	hub, _ := startHub(t)

	slow := hub.Subscribe("a")
	for i := 0; i <= subscriberBuffer; i++ {
		hub.Publish("a", scoreEvent(i))
	}

	count := 0
	for range slow.C() {
		count++
	}
	assert.Equal(t, subscriberBuffer, count)
}

func TestHub_StopClosesEverything(t *testing.T) {
	hub, cancel := startHub(t)

	sub := hub.Subscribe("a")
	cancel()
	assertClosed(t, sub)

	select {
	case <-hub.Done():
	case <-time.After(time.Second):
		t.Fatal("hub did not stop")
	}

	// calls after stop return immediately
	hub.Publish("a", scoreEvent(1))
	late := hub.Subscribe("a")
	assertClosed(t, late)
	hub.Unsubscribe(late)
}

func TestHub_PublishNothing(t *testing.T) {
	hub := NewHub()
	// no Run loop: an empty publish must not block
	hub.Publish("a")
}
