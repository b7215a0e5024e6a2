package cart

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/antojo-app/backend/pkg/logger"
)

type memoryStorage struct {
	values map[string]string
	fail   error
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{values: map[string]string{}}
}

func (m *memoryStorage) Get(_ context.Context, key string) (string, bool, error) {
	if m.fail != nil {
		return "", false, m.fail
	}
	value, ok := m.values[key]
	return value, ok, nil
}

func (m *memoryStorage) Set(_ context.Context, key, value string) error {
	if m.fail != nil {
		return m.fail
	}
	m.values[key] = value
	return nil
}

func (m *memoryStorage) Remove(_ context.Context, key string) error {
	if m.fail != nil {
		return m.fail
	}
	delete(m.values, key)
	return nil
}

func newTestEngine(t *testing.T) (*Engine, *memoryStorage) {
	t.Helper()
	storage := newMemoryStorage()
	logg := logger.New(logger.Options{ServiceName: "test"})
	engine, err := NewEngine(storage, logg)
	require.NoError(t, err)
	return engine, storage
}

func price(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func snapshotProduct(name, unitPrice string) ProductSnapshot {
	return ProductSnapshot{
		ID:    uuid.New(),
		Name:  name,
		Price: price(unitPrice),
	}
}

func snapshotRestaurant(name, deliveryFee string) RestaurantSnapshot {
	return RestaurantSnapshot{
		ID:          uuid.New(),
		Name:        name,
		DeliveryFee: price(deliveryFee),
	}
}

func requireInvariants(t *testing.T, cart *Cart) {
	t.Helper()
	totals := ComputeTotals(cart.Items, cart.DeliveryFee)
	require.True(t, cart.Subtotal.Equal(totals.Subtotal), "subtotal must be derived from items")
	require.True(t, cart.Total.Equal(totals.Total), "total must equal subtotal plus fee")
	if len(cart.Items) == 0 {
		require.Nil(t, cart.Restaurant)
		require.True(t, cart.DeliveryFee.IsZero())
		require.True(t, cart.Total.IsZero())
	}
	for _, item := range cart.Items {
		require.GreaterOrEqual(t, item.Quantity, 1)
	}
}

func TestGetReturnsEmptyCartWhenMissing(t *testing.T) {
	engine, _ := newTestEngine(t)

	cart, err := engine.Get(context.Background(), uuid.New())
	require.NoError(t, err)
	require.True(t, cart.IsEmpty())
	requireInvariants(t, cart)
}

func TestGetDiscardsUnparsableSnapshot(t *testing.T) {
	engine, storage := newTestEngine(t)
	userID := uuid.New()
	storage.values[userID.String()] = "{not json"

	cart, err := engine.Get(context.Background(), userID)
	require.NoError(t, err)
	require.True(t, cart.IsEmpty())
}

func TestAddItemAppendsAndDerivesTotals(t *testing.T) {
	engine, _ := newTestEngine(t)
	userID := uuid.New()
	restaurant := snapshotRestaurant("Pollos Hermanos", "5.00")
	burger := snapshotProduct("Burger", "15.50")
	fries := snapshotProduct("Fries", "6.00")

	cart, err := engine.AddItem(context.Background(), userID, burger, restaurant, 2)
	require.NoError(t, err)
	cart, err = engine.AddItem(context.Background(), userID, fries, restaurant, 1)
	require.NoError(t, err)

	require.Len(t, cart.Items, 2)
	require.Equal(t, 3, cart.ItemCount())
	require.True(t, cart.Subtotal.Equal(price("37.00")))
	require.True(t, cart.Total.Equal(price("42.00")))
	requireInvariants(t, cart)
}

func TestAddItemOverwritesExistingQuantity(t *testing.T) {
	engine, _ := newTestEngine(t)
	userID := uuid.New()
	restaurant := snapshotRestaurant("Pollos Hermanos", "5.00")
	burger := snapshotProduct("Burger", "10.00")

	_, err := engine.AddItem(context.Background(), userID, burger, restaurant, 2)
	require.NoError(t, err)
	cart, err := engine.AddItem(context.Background(), userID, burger, restaurant, 3)
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	require.Equal(t, 3, cart.Items[0].Quantity, "quantity is replaced, not summed")
	require.True(t, cart.Subtotal.Equal(price("30.00")))
	requireInvariants(t, cart)
}

func TestAddItemZeroQuantityRemovesLine(t *testing.T) {
	engine, _ := newTestEngine(t)
	userID := uuid.New()
	restaurant := snapshotRestaurant("Pollos Hermanos", "5.00")
	burger := snapshotProduct("Burger", "10.00")

	_, err := engine.AddItem(context.Background(), userID, burger, restaurant, 2)
	require.NoError(t, err)
	cart, err := engine.AddItem(context.Background(), userID, burger, restaurant, 0)
	require.NoError(t, err)

	require.True(t, cart.IsEmpty())
	requireInvariants(t, cart)
}

func TestAddItemNegativeQuantityRejected(t *testing.T) {
	engine, _ := newTestEngine(t)
	_, err := engine.AddItem(context.Background(), uuid.New(), snapshotProduct("Burger", "10.00"), snapshotRestaurant("R", "1.00"), -1)
	require.Error(t, err)
}

func TestAddItemDifferentRestaurantReplacesCart(t *testing.T) {
	engine, _ := newTestEngine(t)
	userID := uuid.New()
	first := snapshotRestaurant("Pollos Hermanos", "5.00")
	second := snapshotRestaurant("La Lucha", "8.00")
	burger := snapshotProduct("Burger", "10.00")
	ceviche := snapshotProduct("Ceviche", "25.00")

	_, err := engine.AddItem(context.Background(), userID, burger, first, 3)
	require.NoError(t, err)
	cart, err := engine.AddItem(context.Background(), userID, ceviche, second, 1)
	require.NoError(t, err)

	require.NotNil(t, cart.Restaurant)
	require.Equal(t, second.ID, cart.Restaurant.ID)
	require.Len(t, cart.Items, 1)
	require.Equal(t, ceviche.ID, cart.Items[0].Product.ID)
	require.True(t, cart.DeliveryFee.Equal(price("8.00")))
	require.True(t, cart.Total.Equal(price("33.00")))
	requireInvariants(t, cart)
}

func TestUpdateQuantitySetsAndRemoves(t *testing.T) {
	engine, _ := newTestEngine(t)
	userID := uuid.New()
	restaurant := snapshotRestaurant("Pollos Hermanos", "5.00")
	burger := snapshotProduct("Burger", "10.00")
	fries := snapshotProduct("Fries", "4.00")

	_, err := engine.AddItem(context.Background(), userID, burger, restaurant, 1)
	require.NoError(t, err)
	_, err = engine.AddItem(context.Background(), userID, fries, restaurant, 2)
	require.NoError(t, err)

	cart, err := engine.UpdateQuantity(context.Background(), userID, burger.ID, 4)
	require.NoError(t, err)
	require.Equal(t, 4, cart.Items[0].Quantity)
	requireInvariants(t, cart)

	cart, err = engine.UpdateQuantity(context.Background(), userID, fries.ID, 0)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	require.Equal(t, burger.ID, cart.Items[0].Product.ID)
	requireInvariants(t, cart)

	cart, err = engine.UpdateQuantity(context.Background(), userID, burger.ID, -3)
	require.NoError(t, err)
	require.True(t, cart.IsEmpty())
	requireInvariants(t, cart)
}

func TestUpdateQuantityAbsentProductIsNoop(t *testing.T) {
	engine, _ := newTestEngine(t)
	userID := uuid.New()
	restaurant := snapshotRestaurant("Pollos Hermanos", "5.00")
	burger := snapshotProduct("Burger", "10.00")

	before, err := engine.AddItem(context.Background(), userID, burger, restaurant, 2)
	require.NoError(t, err)

	after, err := engine.UpdateQuantity(context.Background(), userID, uuid.New(), 5)
	require.NoError(t, err)
	require.Equal(t, before.ItemCount(), after.ItemCount())
	require.True(t, before.Total.Equal(after.Total))
}

func TestRemoveItemMatchesUpdateQuantityZero(t *testing.T) {
	removed := runScenario(t, func(engine *Engine, userID uuid.UUID, productID uuid.UUID) *Cart {
		cart, err := engine.RemoveItem(context.Background(), userID, productID)
		require.NoError(t, err)
		return cart
	})
	zeroed := runScenario(t, func(engine *Engine, userID uuid.UUID, productID uuid.UUID) *Cart {
		cart, err := engine.UpdateQuantity(context.Background(), userID, productID, 0)
		require.NoError(t, err)
		return cart
	})

	require.Equal(t, len(removed.Items), len(zeroed.Items))
	require.True(t, removed.Subtotal.Equal(zeroed.Subtotal))
	require.True(t, removed.Total.Equal(zeroed.Total))
	require.Equal(t, removed.Restaurant == nil, zeroed.Restaurant == nil)
}

func runScenario(t *testing.T, mutate func(*Engine, uuid.UUID, uuid.UUID) *Cart) *Cart {
	t.Helper()
	engine, _ := newTestEngine(t)
	userID := uuid.New()
	restaurant := snapshotRestaurant("Pollos Hermanos", "5.00")
	burger := ProductSnapshot{ID: uuid.MustParse("9d3cf9f1-58f2-4aa9-a472-9a9c6cd99999"), Name: "Burger", Price: price("10.00")}
	fries := snapshotProduct("Fries", "4.00")

	_, err := engine.AddItem(context.Background(), userID, burger, restaurant, 2)
	require.NoError(t, err)
	_, err = engine.AddItem(context.Background(), userID, fries, restaurant, 1)
	require.NoError(t, err)

	return mutate(engine, userID, burger.ID)
}

func TestClearRemovesSnapshot(t *testing.T) {
	engine, storage := newTestEngine(t)
	userID := uuid.New()
	restaurant := snapshotRestaurant("Pollos Hermanos", "5.00")

	_, err := engine.AddItem(context.Background(), userID, snapshotProduct("Burger", "10.00"), restaurant, 2)
	require.NoError(t, err)
	require.Contains(t, storage.values, userID.String())

	cart, err := engine.Clear(context.Background(), userID)
	require.NoError(t, err)
	require.True(t, cart.IsEmpty())
	require.NotContains(t, storage.values, userID.String())
	requireInvariants(t, cart)
}

func TestSnapshotRoundTrip(t *testing.T) {
	engine, _ := newTestEngine(t)
	userID := uuid.New()
	restaurant := snapshotRestaurant("Pollos Hermanos", "5.00")
	burger := snapshotProduct("Burger", "15.50")

	written, err := engine.AddItem(context.Background(), userID, burger, restaurant, 2)
	require.NoError(t, err)

	loaded, err := engine.Get(context.Background(), userID)
	require.NoError(t, err)
	require.Equal(t, written.ItemCount(), loaded.ItemCount())
	require.Equal(t, written.Restaurant.ID, loaded.Restaurant.ID)
	require.True(t, written.Subtotal.Equal(loaded.Subtotal))
	require.True(t, written.DeliveryFee.Equal(loaded.DeliveryFee))
	require.True(t, written.Total.Equal(loaded.Total))
	requireInvariants(t, loaded)
}

// Worked example: two products, mixed mutations, exact totals at every step.
func TestWorkedScenarioTotals(t *testing.T) {
	engine, _ := newTestEngine(t)
	userID := uuid.New()
	restaurant := snapshotRestaurant("Pollos Hermanos", "6.50")
	pollo := snapshotProduct("Pollo a la brasa", "48.90")
	inca := snapshotProduct("Inca Kola 1.5L", "9.50")

	cart, err := engine.AddItem(context.Background(), userID, pollo, restaurant, 1)
	require.NoError(t, err)
	require.True(t, cart.Total.Equal(price("55.40")))

	cart, err = engine.AddItem(context.Background(), userID, inca, restaurant, 2)
	require.NoError(t, err)
	require.True(t, cart.Subtotal.Equal(price("67.90")))
	require.True(t, cart.Total.Equal(price("74.40")))

	cart, err = engine.UpdateQuantity(context.Background(), userID, inca.ID, 1)
	require.NoError(t, err)
	require.True(t, cart.Subtotal.Equal(price("58.40")))
	require.True(t, cart.Total.Equal(price("64.90")))

	cart, err = engine.RemoveItem(context.Background(), userID, pollo.ID)
	require.NoError(t, err)
	require.True(t, cart.Subtotal.Equal(price("9.50")))
	require.True(t, cart.Total.Equal(price("16.00")))

	cart, err = engine.RemoveItem(context.Background(), userID, inca.ID)
	require.NoError(t, err)
	require.True(t, cart.IsEmpty())
	requireInvariants(t, cart)
}
