package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/antojo-app/backend/api/middleware"
	cartengine "github.com/antojo-app/backend/internal/cart"
	"github.com/antojo-app/backend/pkg/db/models"
	pkgerrors "github.com/antojo-app/backend/pkg/errors"
)

type stubCartEngine struct {
	cart        *cartengine.Cart
	lastProduct cartengine.ProductSnapshot
	lastQty     int
	cleared     bool
}

func (s *stubCartEngine) Get(context.Context, uuid.UUID) (*cartengine.Cart, error) {
	return s.cart, nil
}

func (s *stubCartEngine) AddItem(_ context.Context, _ uuid.UUID, product cartengine.ProductSnapshot, restaurant cartengine.RestaurantSnapshot, quantity int) (*cartengine.Cart, error) {
	s.lastProduct = product
	s.lastQty = quantity
	return s.cart, nil
}

func (s *stubCartEngine) UpdateQuantity(_ context.Context, _, _ uuid.UUID, quantity int) (*cartengine.Cart, error) {
	s.lastQty = quantity
	return s.cart, nil
}

func (s *stubCartEngine) RemoveItem(context.Context, uuid.UUID, uuid.UUID) (*cartengine.Cart, error) {
	return s.cart, nil
}

func (s *stubCartEngine) Clear(context.Context, uuid.UUID) (*cartengine.Cart, error) {
	s.cleared = true
	return cartengine.EmptyCart(), nil
}

type stubCartCatalog struct {
	product    *models.Product
	restaurant *models.Restaurant
}

func (s *stubCartCatalog) GetProduct(context.Context, uuid.UUID) (*models.Product, error) {
	if s.product == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return s.product, nil
}

func (s *stubCartCatalog) GetRestaurant(context.Context, uuid.UUID) (*models.Restaurant, error) {
	if s.restaurant == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "restaurant not found")
	}
	return s.restaurant, nil
}

func authedContext(r *http.Request, userID uuid.UUID) *http.Request {
	ctx := middleware.WithUserID(r.Context(), userID.String())
	ctx = middleware.WithRole(ctx, "customer")
	return r.WithContext(ctx)
}

func availableCatalog() *stubCartCatalog {
	restaurantID := uuid.New()
	return &stubCartCatalog{
		product: &models.Product{
			ID:           uuid.New(),
			RestaurantID: restaurantID,
			Name:         "Pollo a la Brasa",
			Price:        decimal.RequireFromString("48.90"),
			Category:     "pollos",
			IsAvailable:  true,
		},
		restaurant: &models.Restaurant{
			ID:          restaurantID,
			Name:        "El Dorado",
			DeliveryFee: decimal.RequireFromString("6.50"),
			IsActive:    true,
		},
	}
}

func TestCartFetchReturnsSnapshot(t *testing.T) {
	engine := &stubCartEngine{cart: cartengine.EmptyCart()}
	handler := CartFetch(engine, nil)

	req := authedContext(httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil), uuid.New())
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var envelope struct {
		Data cartengine.Cart `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(envelope.Data.Items) != 0 {
		t.Fatalf("expected empty cart, got %+v", envelope.Data)
	}
}

func TestCartFetchRequiresAuthContext(t *testing.T) {
	handler := CartFetch(&stubCartEngine{cart: cartengine.EmptyCart()}, nil)

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestCartAddItemResolvesSnapshotsFromCatalog(t *testing.T) {
	engine := &stubCartEngine{cart: cartengine.EmptyCart()}
	catalogStub := availableCatalog()
	handler := CartAddItem(engine, catalogStub, nil)

	body := `{"productId":"` + catalogStub.product.ID.String() + `","quantity":2}`
	req := authedContext(httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(body)), uuid.New())
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if engine.lastProduct.ID != catalogStub.product.ID {
		t.Fatalf("expected snapshot for %s, got %s", catalogStub.product.ID, engine.lastProduct.ID)
	}
	if !engine.lastProduct.Price.Equal(decimal.RequireFromString("48.90")) {
		t.Fatalf("snapshot must carry the catalog price, got %s", engine.lastProduct.Price)
	}
	if engine.lastQty != 2 {
		t.Fatalf("expected quantity 2, got %d", engine.lastQty)
	}
}

func TestCartAddItemRejectsUnavailableProduct(t *testing.T) {
	catalogStub := availableCatalog()
	catalogStub.product.IsAvailable = false
	handler := CartAddItem(&stubCartEngine{cart: cartengine.EmptyCart()}, catalogStub, nil)

	body := `{"productId":"` + catalogStub.product.ID.String() + `","quantity":1}`
	req := authedContext(httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(body)), uuid.New())
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestCartUpdateItemParsesPathParam(t *testing.T) {
	engine := &stubCartEngine{cart: cartengine.EmptyCart()}

	router := chi.NewRouter()
	router.Patch("/api/v1/cart/items/{productId}", CartUpdateItem(engine, nil))

	req := authedContext(httptest.NewRequest(http.MethodPatch,
		"/api/v1/cart/items/"+uuid.NewString(), strings.NewReader(`{"quantity":3}`)), uuid.New())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if engine.lastQty != 3 {
		t.Fatalf("expected quantity 3, got %d", engine.lastQty)
	}
}

func TestCartClearEmptiesCart(t *testing.T) {
	engine := &stubCartEngine{cart: cartengine.EmptyCart()}
	handler := CartClear(engine, nil)

	req := authedContext(httptest.NewRequest(http.MethodDelete, "/api/v1/cart", nil), uuid.New())
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !engine.cleared {
		t.Fatal("expected Clear to be called")
	}
}
