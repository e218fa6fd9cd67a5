package events

import (
	"encoding/json"
	"sync"

	"github.com/sirupsen/logrus"
)

// Payload is a typed event body that knows which SSE event it belongs to.
type Payload interface {
	EventName() string
}

// Hub fans battery events out to SSE subscribers. The most recent
// battery.state event is kept and replayed on Subscribe, so a tray that
// reconnects shows the current charge right away instead of waiting out a
// poll interval.
type Hub struct {
	mu        sync.Mutex
	subs      map[chan Event]struct{}
	lastState *Event
}

func NewHub() *Hub { return &Hub{subs: make(map[chan Event]struct{})} }

func (h *Hub) Subscribe() chan Event {
	ch := make(chan Event, 16)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	if h.lastState != nil {
		ch <- *h.lastState
	}
	h.mu.Unlock()
	return ch
}

func (h *Hub) Unsubscribe(ch chan Event) {
	h.mu.Lock()
	if _, ok := h.subs[ch]; ok {
		delete(h.subs, ch)
		close(ch)
	}
	h.mu.Unlock()
}

// Publish encodes p and delivers it to every subscriber. Slow subscribers
// lose events rather than stalling the poll loop.
func (h *Hub) Publish(p Payload) {
	b, err := json.Marshal(p)
	if err != nil {
		logrus.Errorf("failed to encode %s event: %v", p.EventName(), err)
		return
	}
	ev := Event{Name: p.EventName(), Data: b}

	h.mu.Lock()
	if ev.Name == BatteryState {
		h.lastState = &ev
	}
	for ch := range h.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	h.mu.Unlock()
}
