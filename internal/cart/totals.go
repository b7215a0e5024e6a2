package cart

import "github.com/shopspring/decimal"

// Totals is the derived monetary summary of a set of cart lines.
type Totals struct {
	Subtotal    decimal.Decimal
	DeliveryFee decimal.Decimal
	Total       decimal.Decimal
}

// ComputeTotals derives subtotal and total from the lines and delivery fee.
// It is pure: the cart engine calls it after every mutation and checkout calls
// it again on the stored snapshot, so both sides always agree exactly.
func ComputeTotals(items []Item, deliveryFee decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, item := range items {
		line := item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		subtotal = subtotal.Add(line)
	}
	return Totals{
		Subtotal:    subtotal,
		DeliveryFee: deliveryFee,
		Total:       subtotal.Add(deliveryFee),
	}
}
