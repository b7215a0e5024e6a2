package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestComputeTotalsEmpty(t *testing.T) {
	totals := ComputeTotals(nil, decimal.Zero)
	require.True(t, totals.Subtotal.IsZero())
	require.True(t, totals.Total.IsZero())
}

func TestComputeTotalsSumsLines(t *testing.T) {
	items := []Item{
		{Product: snapshotProduct("A", "12.50"), Quantity: 2},
		{Product: snapshotProduct("B", "3.20"), Quantity: 3},
	}
	totals := ComputeTotals(items, price("7.00"))
	require.True(t, totals.Subtotal.Equal(price("34.60")))
	require.True(t, totals.DeliveryFee.Equal(price("7.00")))
	require.True(t, totals.Total.Equal(price("41.60")))
}

func TestComputeTotalsIsDeterministic(t *testing.T) {
	items := []Item{
		{Product: snapshotProduct("A", "0.10"), Quantity: 3},
		{Product: snapshotProduct("B", "0.20"), Quantity: 1},
	}
	first := ComputeTotals(items, price("0.01"))
	second := ComputeTotals(items, price("0.01"))
	require.True(t, first.Subtotal.Equal(second.Subtotal))
	require.True(t, first.Total.Equal(second.Total))
	require.True(t, first.Subtotal.Equal(price("0.50")))
	require.True(t, first.Total.Equal(price("0.51")))
}
