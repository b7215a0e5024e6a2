package controllers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/antojo-app/backend/api/middleware"
	"github.com/antojo-app/backend/api/responses"
	"github.com/antojo-app/backend/api/validators"
	cartengine "github.com/antojo-app/backend/internal/cart"
	"github.com/antojo-app/backend/pkg/db/models"
	pkgerrors "github.com/antojo-app/backend/pkg/errors"
	"github.com/antojo-app/backend/pkg/logger"
)

type cartEngine interface {
	Get(ctx context.Context, userID uuid.UUID) (*cartengine.Cart, error)
	AddItem(ctx context.Context, userID uuid.UUID, product cartengine.ProductSnapshot, restaurant cartengine.RestaurantSnapshot, quantity int) (*cartengine.Cart, error)
	UpdateQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) (*cartengine.Cart, error)
	RemoveItem(ctx context.Context, userID, productID uuid.UUID) (*cartengine.Cart, error)
	Clear(ctx context.Context, userID uuid.UUID) (*cartengine.Cart, error)
}

type cartCatalog interface {
	GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
	GetRestaurant(ctx context.Context, id uuid.UUID) (*models.Restaurant, error)
}

// CartFetch returns the caller's current cart snapshot.
func CartFetch(engine cartEngine, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.UserUUIDFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
			return
		}

		snapshot, err := engine.Get(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, snapshot)
	}
}

type addCartItemRequest struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
	Quantity  int       `json:"quantity" validate:"min=0"`
}

// CartAddItem resolves the product and restaurant snapshots from the catalog
// and applies the line to the caller's cart.
func CartAddItem(engine cartEngine, catalogSvc cartCatalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.UserUUIDFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
			return
		}

		var payload addCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := catalogSvc.GetProduct(r.Context(), payload.ProductID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if !product.IsAvailable {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeConflict, "product is not available"))
			return
		}

		restaurant, err := catalogSvc.GetRestaurant(r.Context(), product.RestaurantID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if !restaurant.IsActive {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeConflict, "restaurant is not accepting orders"))
			return
		}

		snapshot, err := engine.AddItem(r.Context(), userID,
			cartengine.ProductSnapshot{
				ID:       product.ID,
				Name:     product.Name,
				Price:    product.Price,
				Category: product.Category,
				ImageURL: product.ImageURL,
			},
			cartengine.RestaurantSnapshot{
				ID:           restaurant.ID,
				Name:         restaurant.Name,
				DeliveryFee:  restaurant.DeliveryFee,
				MinimumOrder: restaurant.MinimumOrder,
			},
			payload.Quantity,
		)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, snapshot)
	}
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"min=0"`
}

// CartUpdateItem sets the quantity of one cart line.
func CartUpdateItem(engine cartEngine, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.UserUUIDFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
			return
		}

		productID, err := uuid.Parse(chi.URLParam(r, "productId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}

		var payload updateCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		snapshot, err := engine.UpdateQuantity(r.Context(), userID, productID, payload.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, snapshot)
	}
}

// CartRemoveItem removes one line from the caller's cart.
func CartRemoveItem(engine cartEngine, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.UserUUIDFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
			return
		}

		productID, err := uuid.Parse(chi.URLParam(r, "productId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}

		snapshot, err := engine.RemoveItem(r.Context(), userID, productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, snapshot)
	}
}

// CartClear drops the caller's whole cart.
func CartClear(engine cartEngine, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.UserUUIDFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
			return
		}

		snapshot, err := engine.Clear(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, snapshot)
	}
}
