package events

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/wricardo/blockpuzzle/game/engine"
)

// AllSessions subscribes to events from every session.
const AllSessions = "*"

const (
	// Buffered messages per subscriber before it is considered too slow.
	subscriberBuffer = 256

	// Pending publishes queued for the hub loop.
	broadcastBuffer = 64
)

var logger = log.WithPrefix("events")

// SetLogger replaces the package logger.
func SetLogger(l *log.Logger) {
	logger = l
}

// Message is one engine event tagged with its session.
type Message struct {
	SessionID string       `json:"session_id"`
	Event     engine.Event `json:"event"`
}

type batch struct {
	sessionID string
	events    []engine.Event
}

// Subscriber receives the messages of one session (or all of them).
type Subscriber struct {
	sessionID string
	send      chan Message
}

// C returns the receive channel. It is closed on Unsubscribe, when the
// subscriber falls behind, or when the hub stops.
func (s *Subscriber) C() <-chan Message {
	return s.send
}

// SessionID returns the session the subscriber listens to.
func (s *Subscriber) SessionID() string {
	return s.sessionID
}

// Hub maintains the set of active subscribers and broadcasts messages
type Hub struct {
	// Registered subscribers by session ID
	sessions map[string]map[*Subscriber]bool

	broadcast  chan batch
	register   chan *Subscriber
	unregister chan *Subscriber

	// closed when Run returns
	done chan struct{}
}

// NewHub creates a new event hub
func NewHub() *Hub {
	return &Hub{
		sessions:   make(map[string]map[*Subscriber]bool),
		broadcast:  make(chan batch, broadcastBuffer),
		register:   make(chan *Subscriber),
		unregister: make(chan *Subscriber),
		done:       make(chan struct{}),
	}
}

// Run starts the hub's event loop and blocks until ctx is done. All
// subscriber channels are closed on return.
func (h *Hub) Run(ctx context.Context) {
	defer h.shutdown()

	for {
		select {
		case <-ctx.Done():
			return

		case sub := <-h.register:
			h.registerSubscriber(sub)

		case sub := <-h.unregister:
			h.unregisterSubscriber(sub)

		case b := <-h.broadcast:
			h.broadcastBatch(b)
		}
	}
}

// Subscribe registers a subscriber for sessionID. If the hub has stopped
// the returned subscriber's channel is already closed.
func (h *Hub) Subscribe(sessionID string) *Subscriber {
	sub := &Subscriber{
		sessionID: sessionID,
		send:      make(chan Message, subscriberBuffer),
	}

	select {
	case h.register <- sub:
	case <-h.done:
		close(sub.send)
	}
	return sub
}

// Unsubscribe removes a subscriber and closes its channel.
func (h *Hub) Unsubscribe(sub *Subscriber) {
	select {
	case h.unregister <- sub:
	case <-h.done:
	}
}

// Publish queues events for delivery to the session's subscribers. Events
// published after the hub stopped are dropped.
func (h *Hub) Publish(sessionID string, events ...engine.Event) {
	if len(events) == 0 {
		return
	}
	select {
	case h.broadcast <- batch{sessionID: sessionID, events: events}:
	case <-h.done:
	}
}

// Done is closed once the hub has stopped.
func (h *Hub) Done() <-chan struct{} {
	return h.done
}

func (h *Hub) registerSubscriber(sub *Subscriber) {
	if h.sessions[sub.sessionID] == nil {
		h.sessions[sub.sessionID] = make(map[*Subscriber]bool)
	}
	h.sessions[sub.sessionID][sub] = true

	logger.Debug("subscriber registered", "session", sub.sessionID, "total", len(h.sessions[sub.sessionID]))
}

func (h *Hub) unregisterSubscriber(sub *Subscriber) {
	if subs, ok := h.sessions[sub.sessionID]; ok {
		if _, ok := subs[sub]; ok {
			delete(subs, sub)
			close(sub.send)

			// Clean up empty sessions
			if len(subs) == 0 {
				delete(h.sessions, sub.sessionID)
			}

			logger.Debug("subscriber unregistered", "session", sub.sessionID, "remaining", len(subs))
		}
	}
}

func (h *Hub) broadcastBatch(b batch) {
	for _, ev := range b.events {
		msg := Message{SessionID: b.sessionID, Event: ev}
		h.deliver(h.sessions[b.sessionID], msg)
		if b.sessionID != AllSessions {
			h.deliver(h.sessions[AllSessions], msg)
		}
	}
}

func (h *Hub) deliver(subs map[*Subscriber]bool, msg Message) {
	for sub := range subs {
		select {
		case sub.send <- msg:
		default:
			// Subscriber's buffer is full, drop it
			logger.Warn("dropping slow subscriber", "session", sub.sessionID)
			h.unregisterSubscriber(sub)
		}
	}
}

func (h *Hub) shutdown() {
	close(h.done)
	for _, subs := range h.sessions {
		for sub := range subs {
			close(sub.send)
		}
	}
	h.sessions = make(map[string]map[*Subscriber]bool)
}
