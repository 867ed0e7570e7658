package stream

import (
	"log"
	"sync"
)

// Event is one delta delivered to the subscribers of a topic.
type Event struct {
	Topic string
	Type  string
	Data  interface{}
}

// Topic names for the two live-view families.
func MatchTopic(matchID string) string { return "match:" + matchID }
func UserTopic(uid string) string      { return "user:" + uid }

// Hub is an in-process topic registry backing every live view: a caller
// subscribes, takes its own initial snapshot, then receives deltas until it
// cancels. Publishers never block; a subscriber that stops draining its buffer
// is dropped.
type Hub struct {
	mu     sync.Mutex
	topics map[string]map[int64]*Subscription
	nextID int64
}

func NewHub() *Hub {
	return &Hub{topics: make(map[string]map[int64]*Subscription)}
}

// Subscription is a single registered listener. Cancel is synchronous: once it
// returns, no further events are delivered and the channel is closed.
type Subscription struct {
	hub   *Hub
	topic string
	id    int64
	ch    chan Event
}

// C is the receive channel. It is closed by Cancel (or by the hub when the
// subscriber falls too far behind).
func (s *Subscription) C() <-chan Event { return s.ch }

func (s *Subscription) Cancel() {
	s.hub.mu.Lock()
	defer s.hub.mu.Unlock()
	s.hub.removeLocked(s)
}

// Subscribe registers a listener on topic with the given delivery buffer.
func (h *Hub) Subscribe(topic string, buffer int) *Subscription {
	if buffer <= 0 {
		buffer = 16
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	sub := &Subscription{
		hub:   h,
		topic: topic,
		id:    h.nextID,
		ch:    make(chan Event, buffer),
	}

	subs, ok := h.topics[topic]
	if !ok {
		subs = make(map[int64]*Subscription)
		h.topics[topic] = subs
	}
	subs[sub.id] = sub
	return sub
}

// Publish fans the event out to every subscriber of the topic. Delivery is
// best-effort: a subscriber with a full buffer is dropped rather than allowed
// to block the publishing session.
func (h *Hub) Publish(topic, eventType string, data interface{}) {
	event := Event{Topic: topic, Type: eventType, Data: data}

	h.mu.Lock()
	defer h.mu.Unlock()

	for _, sub := range h.topics[topic] {
		select {
		case sub.ch <- event:
		default:
			log.Printf("⚠️ Dropping slow subscriber on topic %s", topic)
			h.removeLocked(sub)
		}
	}
}

// removeLocked unregisters and closes; callers hold h.mu, so no publish can
// race the close.
func (h *Hub) removeLocked(sub *Subscription) {
	subs, ok := h.topics[sub.topic]
	if !ok {
		return
	}
	if _, ok := subs[sub.id]; !ok {
		return
	}
	delete(subs, sub.id)
	if len(subs) == 0 {
		delete(h.topics, sub.topic)
	}
	close(sub.ch)
}
