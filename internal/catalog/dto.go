package catalog

import (
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// RestaurantInput carries the writable restaurant fields.
type RestaurantInput struct {
	Name            string
	Description     *string
	Address         string
	Phone           *string
	ImageURL        *string
	Categories      pq.StringArray
	DeliveryFee     decimal.Decimal
	MinimumOrder    decimal.Decimal
	DeliveryTimeMin int
	IsActive        bool
}

// ProductInput carries the writable product fields.
type ProductInput struct {
	Name        string
	Description *string
	Price       decimal.Decimal
	Category    string
	ImageURL    *string
	IsAvailable bool
}
