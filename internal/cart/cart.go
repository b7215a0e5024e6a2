package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductSnapshot is the slice of a product captured into the cart at add time.
// Later catalog edits do not rewrite existing lines.
type ProductSnapshot struct {
	ID       uuid.UUID       `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Category string          `json:"category,omitempty"`
	ImageURL *string         `json:"imageUrl,omitempty"`
}

// RestaurantSnapshot pins the restaurant a cart belongs to.
type RestaurantSnapshot struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	DeliveryFee  decimal.Decimal `json:"deliveryFee"`
	MinimumOrder decimal.Decimal `json:"minimumOrder"`
}

// Item is a single cart line: a product snapshot plus its quantity.
type Item struct {
	Product  ProductSnapshot `json:"product"`
	Quantity int             `json:"quantity"`
}

// Cart is the serialized snapshot persisted per user. All monetary fields are
// derived from the items and never stored independently of them.
type Cart struct {
	Restaurant  *RestaurantSnapshot `json:"restaurant"`
	Items       []Item              `json:"items"`
	Subtotal    decimal.Decimal     `json:"subtotal"`
	DeliveryFee decimal.Decimal     `json:"deliveryFee"`
	Total       decimal.Decimal     `json:"total"`
}

// EmptyCart returns the zero-state cart.
func EmptyCart() *Cart {
	return &Cart{
		Restaurant:  nil,
		Items:       []Item{},
		Subtotal:    decimal.Zero,
		DeliveryFee: decimal.Zero,
		Total:       decimal.Zero,
	}
}

// ItemCount sums the quantities across all lines.
func (c *Cart) ItemCount() int {
	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// IsEmpty reports whether the cart holds no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}
