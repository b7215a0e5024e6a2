package cart

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	pkgerrors "github.com/antojo-app/backend/pkg/errors"
	"github.com/antojo-app/backend/pkg/logger"
)

// Engine applies cart mutations against snapshots held in Storage. Every
// mutation loads the current snapshot, applies the change, rederives totals,
// and persists the result. Concurrent writers are last-writer-wins.
type Engine struct {
	storage Storage
	logg    *logger.Logger
}

// NewEngine builds the cart engine.
func NewEngine(storage Storage, logg *logger.Logger) (*Engine, error) {
	if storage == nil {
		return nil, fmt.Errorf("cart storage required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Engine{storage: storage, logg: logg}, nil
}

// Get loads the user's cart. A missing snapshot yields an empty cart; an
// unparsable one is discarded with a log line, never surfaced to the caller.
func (e *Engine) Get(ctx context.Context, userID uuid.UUID) (*Cart, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}

	raw, found, err := e.storage.Get(ctx, userID.String())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading cart")
	}
	if !found {
		return EmptyCart(), nil
	}

	var cart Cart
	if err := json.Unmarshal([]byte(raw), &cart); err != nil {
		logCtx := e.logg.WithFields(ctx, map[string]any{"user_id": userID.String()})
		e.logg.Warn(logCtx, "discarding unparsable cart snapshot")
		return EmptyCart(), nil
	}
	if cart.Items == nil {
		cart.Items = []Item{}
	}
	return &cart, nil
}

// AddItem puts a product line into the cart. A product from a different
// restaurant than the current cart replaces the whole cart. An existing line's
// quantity is overwritten, not added to; quantity zero removes the line.
func (e *Engine) AddItem(ctx context.Context, userID uuid.UUID, product ProductSnapshot, restaurant RestaurantSnapshot, quantity int) (*Cart, error) {
	if quantity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity cannot be negative")
	}
	if product.ID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if restaurant.ID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "restaurant id is required")
	}

	current, err := e.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if current.Restaurant != nil && current.Restaurant.ID != restaurant.ID {
		if quantity == 0 {
			return current, nil
		}
		replaced := &Cart{
			Restaurant: &restaurant,
			Items:      []Item{{Product: product, Quantity: quantity}},
		}
		return e.persist(ctx, userID, replaced, restaurant.DeliveryFee)
	}

	items := make([]Item, 0, len(current.Items)+1)
	updated := false
	for _, item := range current.Items {
		if item.Product.ID == product.ID {
			updated = true
			if quantity == 0 {
				continue
			}
			item.Quantity = quantity
		}
		items = append(items, item)
	}
	if !updated && quantity > 0 {
		items = append(items, Item{Product: product, Quantity: quantity})
	}

	next := &Cart{Restaurant: &restaurant, Items: items}
	return e.persist(ctx, userID, next, restaurant.DeliveryFee)
}

// UpdateQuantity sets the quantity of an existing line. Zero or negative
// removes the line; an absent product id is a silent no-op.
func (e *Engine) UpdateQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) (*Cart, error) {
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}

	current, err := e.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(current.Items))
	for _, item := range current.Items {
		if item.Product.ID == productID {
			item.Quantity = quantity
		}
		if item.Quantity > 0 {
			items = append(items, item)
		}
	}

	next := &Cart{Restaurant: current.Restaurant, Items: items}
	return e.persist(ctx, userID, next, current.DeliveryFee)
}

// RemoveItem deletes a line. Equivalent to UpdateQuantity with zero.
func (e *Engine) RemoveItem(ctx context.Context, userID, productID uuid.UUID) (*Cart, error) {
	return e.UpdateQuantity(ctx, userID, productID, 0)
}

// Clear resets the cart and removes the persisted snapshot.
func (e *Engine) Clear(ctx context.Context, userID uuid.UUID) (*Cart, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if err := e.storage.Remove(ctx, userID.String()); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clearing cart")
	}
	return EmptyCart(), nil
}

// persist rederives totals, applies the empty-cart reset, and stores the snapshot.
func (e *Engine) persist(ctx context.Context, userID uuid.UUID, next *Cart, deliveryFee decimal.Decimal) (*Cart, error) {
	if len(next.Items) == 0 {
		next.Restaurant = nil
		deliveryFee = decimal.Zero
		next.Items = []Item{}
	}

	totals := ComputeTotals(next.Items, deliveryFee)
	next.Subtotal = totals.Subtotal
	next.DeliveryFee = totals.DeliveryFee
	next.Total = totals.Total

	raw, err := json.Marshal(next)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "serializing cart")
	}
	if err := e.storage.Set(ctx, userID.String(), string(raw)); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "saving cart")
	}
	return next, nil
}
