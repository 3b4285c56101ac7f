package events

import (
	"log"
	"sync"
	"time"
)

// Event types published for a session.
const (
	QuestionsAdded = "questions.added"
	QuestionPinned = "question.pinned"
	QuestionNoted  = "question.noted"
	SessionDeleted = "session.deleted"
)

// Event describes a change to a session or one of its questions.
type Event struct {
	Type      string `json:"type"`
	SessionID string `json:"sessionId"`
	Data      any    `json:"data,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// Publisher accepts session change events.
type Publisher interface {
	Publish(event Event)
}

// Discard drops every event.
var Discard Publisher = discard{}

type discard struct{}

func (discard) Publish(Event) {}

// Hub fans events out to the subscribers of each session.
type Hub struct {
	mu     sync.RWMutex
	subs   map[string]map[*Subscription]struct{}
	buffer int
}

// NewHub creates a hub whose subscriptions buffer up to buffer events.
func NewHub(buffer int) *Hub {
	if buffer <= 0 {
		buffer = 16
	}
	return &Hub{
		subs:   make(map[string]map[*Subscription]struct{}),
		buffer: buffer,
	}
}

// Subscription receives the events of one session until closed.
type Subscription struct {
	hub       *Hub
	sessionID string
	ch        chan Event
	once      sync.Once
}

// Subscribe registers a new subscriber for sessionID.
func (h *Hub) Subscribe(sessionID string) *Subscription {
	sub := &Subscription{
		hub:       h,
		sessionID: sessionID,
		ch:        make(chan Event, h.buffer),
	}

	h.mu.Lock()
	set, ok := h.subs[sessionID]
	if !ok {
		set = make(map[*Subscription]struct{})
		h.subs[sessionID] = set
	}
	set[sub] = struct{}{}
	h.mu.Unlock()

	return sub
}

// Publish delivers event to every subscriber of its session. A subscriber whose buffer is full
// misses the event.
func (h *Hub) Publish(event Event) {
	if event.Timestamp == 0 {
		event.Timestamp = time.Now().UnixMilli()
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for sub := range h.subs[event.SessionID] {
		select {
		case sub.ch <- event:
		default:
			log.Printf("[events] dropping %s for slow subscriber session=%s", event.Type, event.SessionID)
		}
	}
}

// Subscribers reports how many subscribers a session has.
func (h *Hub) Subscribers(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[sessionID])
}

// Events returns the delivery channel. It is closed by Close.
func (s *Subscription) Events() <-chan Event {
	return s.ch
}

// Close unregisters the subscription. Safe to call more than once.
func (s *Subscription) Close() {
	s.once.Do(func() {
		h := s.hub
		h.mu.Lock()
		if set, ok := h.subs[s.sessionID]; ok {
			delete(set, s)
			if len(set) == 0 {
				delete(h.subs, s.sessionID)
			}
		}
		close(s.ch)
		h.mu.Unlock()
	})
}
