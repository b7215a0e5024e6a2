package enums

import "fmt"

// OrderStatus tracks the delivery lifecycle of a customer order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusInTransit OrderStatus = "in_transit"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

var validOrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusPreparing,
	OrderStatusInTransit,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// OrderStatusDisplay carries the label and badge colour both the storefront
// and the admin panel render for a status. The two views share this mapping.
type OrderStatusDisplay struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

var orderStatusDisplays = map[OrderStatus]OrderStatusDisplay{
	OrderStatusPending:   {Label: "Pendiente", Color: "yellow"},
	OrderStatusConfirmed: {Label: "Confirmado", Color: "blue"},
	OrderStatusPreparing: {Label: "Preparando", Color: "orange"},
	OrderStatusInTransit: {Label: "En camino", Color: "purple"},
	OrderStatusDelivered: {Label: "Entregado", Color: "green"},
	OrderStatusCancelled: {Label: "Cancelado", Color: "red"},
}

// String implements fmt.Stringer.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known OrderStatus.
func (s OrderStatus) IsValid() bool {
	for _, candidate := range validOrderStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// Display returns the label/colour pair for the status.
func (s OrderStatus) Display() OrderStatusDisplay {
	return orderStatusDisplays[s]
}

// IsTerminal reports whether no further transitions are allowed.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// OrderStatuses returns every valid status in lifecycle order.
func OrderStatuses() []OrderStatus {
	out := make([]OrderStatus, len(validOrderStatuses))
	copy(out, validOrderStatuses)
	return out
}

// ParseOrderStatus converts raw input into an OrderStatus.
func ParseOrderStatus(value string) (OrderStatus, error) {
	for _, candidate := range validOrderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order status %q", value)
}
