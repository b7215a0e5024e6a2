package realtime

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/antojo-app/backend/pkg/enums"
)

// Update is a partial order change delivered to subscribers. Nil fields were
// not touched by the event; consumers fold updates into their snapshot with
// Merge.
type Update struct {
	OrderID        uuid.UUID          `json:"orderId"`
	EventID        string             `json:"eventId"`
	Status         *enums.OrderStatus `json:"status,omitempty"`
	PreviousStatus *enums.OrderStatus `json:"previousStatus,omitempty"`
	OccurredAt     time.Time          `json:"occurredAt"`
}

// Subscription is a lazy, unbounded sequence of updates for one order.
// Updates arrive in emission order. Once closed it cannot be restarted;
// callers subscribe again instead.
type Subscription interface {
	Events() <-chan Update
	Close()
}

type subscription struct {
	mu      sync.Mutex
	pending []Update

	signal    chan struct{}
	out       chan Update
	startOnce sync.Once
	closeOnce sync.Once
	done      chan struct{}
	onClose   func()
}

func newSubscription(onClose func()) *subscription {
	return &subscription{
		signal:  make(chan struct{}, 1),
		out:     make(chan Update),
		done:    make(chan struct{}),
		onClose: onClose,
	}
}

// enqueue buffers the update without ever blocking the publisher.
func (s *subscription) enqueue(update Update) {
	s.mu.Lock()
	s.pending = append(s.pending, update)
	s.mu.Unlock()

	select {
	case s.signal <- struct{}{}:
	default:
	}
}

// Events starts the delivery pump on first use and returns the update stream.
// The channel is closed when the subscription is closed.
func (s *subscription) Events() <-chan Update {
	s.startOnce.Do(func() {
		go s.pump()
	})
	return s.out
}

func (s *subscription) pump() {
	defer close(s.out)
	for {
		s.mu.Lock()
		batch := s.pending
		s.pending = nil
		s.mu.Unlock()

		for _, update := range batch {
			select {
			case s.out <- update:
			case <-s.done:
				return
			}
		}

		select {
		case <-s.signal:
		case <-s.done:
			return
		}
	}
}

// Close detaches the subscription from its hub and ends the stream.
func (s *subscription) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
		if s.onClose != nil {
			s.onClose()
		}
	})
}
