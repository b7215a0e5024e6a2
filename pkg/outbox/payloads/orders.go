package payloads

import (
	"time"

	"github.com/google/uuid"

	"github.com/antojo-app/backend/pkg/enums"
)

// OrderCreatedEvent signals a freshly checked-out order.
type OrderCreatedEvent struct {
	OrderID      uuid.UUID         `json:"order_id"`
	UserID       uuid.UUID         `json:"user_id"`
	RestaurantID uuid.UUID         `json:"restaurant_id"`
	Status       enums.OrderStatus `json:"status"`
	Total        string            `json:"total"`
}

// OrderStatusChangedEvent is emitted on every status transition.
type OrderStatusChangedEvent struct {
	OrderID        uuid.UUID         `json:"order_id"`
	UserID         uuid.UUID         `json:"user_id"`
	Status         enums.OrderStatus `json:"status"`
	PreviousStatus enums.OrderStatus `json:"previous_status"`
	ChangedAt      time.Time         `json:"changed_at"`
}
