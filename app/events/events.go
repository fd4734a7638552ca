// Package events publishes catalog change notifications to WebSocket
// and Server-Sent-Events subscribers.
package events

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/prakashraj/godown/app/models"
	"github.com/prakashraj/godown/pkg/metrics"
	"github.com/prakashraj/godown/pkg/ws"
)

// Event kinds.
const (
	KindCreated = "product.created"
	KindUpdated = "product.updated"
	KindDeleted = "product.deleted"
)

// Event is the wire shape broadcast to stream subscribers.
type Event struct {
	Kind    string          `json:"kind"`
	At      time.Time       `json:"at"`
	ID      string          `json:"id,omitempty"`
	Product *models.Product `json:"product,omitempty"`
}

// Publisher fans events out to a ws.Hub and to any channel subscribers
// (the SSE endpoint). A nil Publisher is valid and drops everything, so
// wiring stays optional in tests.
type Publisher struct {
	hub *ws.Hub

	mu   sync.Mutex
	subs map[chan Event]struct{}
}

func NewPublisher(hub *ws.Hub) *Publisher {
	return &Publisher{hub: hub, subs: make(map[chan Event]struct{})}
}

// Subscribe returns a buffered event channel and a cancel func. Events
// are dropped, not queued, when the subscriber falls behind.
func (p *Publisher) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, 16)

	p.mu.Lock()
	p.subs[ch] = struct{}{}
	p.mu.Unlock()

	cancel := func() {
		p.mu.Lock()
		delete(p.subs, ch)
		p.mu.Unlock()
	}
	return ch, cancel
}

// Publish serialises the event and hands it to every sink without
// blocking; slow sinks lose events rather than stalling a write path.
func (p *Publisher) Publish(e Event) {
	if p == nil {
		return
	}

	e.At = time.Now().UTC()
	metrics.EventsPublished.WithLabelValues(e.Kind).Inc()

	if p.hub != nil {
		if data, err := json.Marshal(e); err == nil {
			select {
			case p.hub.Broadcast <- data:
			default:
			}
		}
	}

	p.mu.Lock()
	for ch := range p.subs {
		select {
		case ch <- e:
		default:
		}
	}
	p.mu.Unlock()
}

// Created builds a creation event for one product.
func Created(p models.Product) Event {
	return Event{Kind: KindCreated, ID: p.ID.Hex(), Product: &p}
}

// Updated builds an update event for one product.
func Updated(p models.Product) Event {
	return Event{Kind: KindUpdated, ID: p.ID.Hex(), Product: &p}
}

// Deleted builds a deletion event carrying only the identity.
func Deleted(id string) Event {
	return Event{Kind: KindDeleted, ID: id}
}
