package realtime

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/antojo-app/backend/pkg/enums"
)

func statusPtr(status enums.OrderStatus) *enums.OrderStatus {
	return &status
}

func collect(t *testing.T, sub Subscription, n int) []Update {
	t.Helper()
	updates := make([]Update, 0, n)
	timeout := time.After(2 * time.Second)
	for len(updates) < n {
		select {
		case update, ok := <-sub.Events():
			if !ok {
				t.Fatalf("stream closed after %d of %d updates", len(updates), n)
			}
			updates = append(updates, update)
		case <-timeout:
			t.Fatalf("timed out after %d of %d updates", len(updates), n)
		}
	}
	return updates
}

func TestHubDeliversInEmissionOrder(t *testing.T) {
	hub := NewHub()
	orderID := uuid.New()
	sub := hub.Subscribe(orderID)
	defer sub.Close()

	statuses := []enums.OrderStatus{
		enums.OrderStatusConfirmed,
		enums.OrderStatusPreparing,
		enums.OrderStatusInTransit,
		enums.OrderStatusDelivered,
	}
	for _, status := range statuses {
		hub.Publish(Update{OrderID: orderID, Status: statusPtr(status)})
	}

	updates := collect(t, sub, len(statuses))
	for i, update := range updates {
		if *update.Status != statuses[i] {
			t.Fatalf("update %d: expected %s, got %s", i, statuses[i], *update.Status)
		}
	}
}

func TestHubFansOutToAllSubscribers(t *testing.T) {
	hub := NewHub()
	orderID := uuid.New()
	first := hub.Subscribe(orderID)
	second := hub.Subscribe(orderID)
	defer first.Close()
	defer second.Close()

	hub.Publish(Update{OrderID: orderID, Status: statusPtr(enums.OrderStatusConfirmed)})

	for _, sub := range []Subscription{first, second} {
		updates := collect(t, sub, 1)
		if *updates[0].Status != enums.OrderStatusConfirmed {
			t.Fatalf("expected confirmed, got %s", *updates[0].Status)
		}
	}
}

func TestHubScopesUpdatesToOrder(t *testing.T) {
	hub := NewHub()
	watched := uuid.New()
	other := uuid.New()
	sub := hub.Subscribe(watched)
	defer sub.Close()

	hub.Publish(Update{OrderID: other, Status: statusPtr(enums.OrderStatusDelivered)})
	hub.Publish(Update{OrderID: watched, Status: statusPtr(enums.OrderStatusConfirmed)})

	updates := collect(t, sub, 1)
	if updates[0].OrderID != watched {
		t.Fatalf("expected update for %s, got %s", watched, updates[0].OrderID)
	}
}

func TestPublishNeverBlocksWithoutReader(t *testing.T) {
	hub := NewHub()
	orderID := uuid.New()
	sub := hub.Subscribe(orderID)
	defer sub.Close()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 1000; i++ {
			hub.Publish(Update{OrderID: orderID, Status: statusPtr(enums.OrderStatusPreparing)})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked with an idle subscriber")
	}

	collect(t, sub, 1000)
}

func TestCloseEndsStreamAndDetaches(t *testing.T) {
	hub := NewHub()
	orderID := uuid.New()
	sub := hub.Subscribe(orderID)
	if count := hub.SubscriberCount(orderID); count != 1 {
		t.Fatalf("expected 1 subscriber, got %d", count)
	}

	events := sub.Events()
	sub.Close()
	sub.Close()

	select {
	case _, ok := <-events:
		if ok {
			t.Fatal("expected closed stream")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("stream did not close")
	}

	if count := hub.SubscriberCount(orderID); count != 0 {
		t.Fatalf("expected 0 subscribers, got %d", count)
	}
}
