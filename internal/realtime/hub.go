package realtime

import (
	"sync"

	"github.com/google/uuid"
)

// Hub fans order updates out to in-process subscribers. Publishing never
// blocks; each subscription buffers independently.
type Hub struct {
	mu   sync.Mutex
	subs map[uuid.UUID]map[*subscription]struct{}
}

// NewHub builds an empty hub.
func NewHub() *Hub {
	return &Hub{subs: map[uuid.UUID]map[*subscription]struct{}{}}
}

// Subscribe registers a new subscription for the given order.
func (h *Hub) Subscribe(orderID uuid.UUID) Subscription {
	h.mu.Lock()
	defer h.mu.Unlock()

	sub := newSubscription(nil)
	sub.onClose = func() { h.remove(orderID, sub) }

	set, ok := h.subs[orderID]
	if !ok {
		set = map[*subscription]struct{}{}
		h.subs[orderID] = set
	}
	set[sub] = struct{}{}
	return sub
}

// Publish delivers the update to every subscriber of its order, preserving
// emission order per subscriber.
func (h *Hub) Publish(update Update) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for sub := range h.subs[update.OrderID] {
		sub.enqueue(update)
	}
}

// SubscriberCount reports how many subscriptions an order currently has.
func (h *Hub) SubscriberCount(orderID uuid.UUID) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[orderID])
}

func (h *Hub) remove(orderID uuid.UUID, sub *subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.subs[orderID]
	if !ok {
		return
	}
	delete(set, sub)
	if len(set) == 0 {
		delete(h.subs, orderID)
	}
}
