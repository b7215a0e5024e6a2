package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/antojo-app/backend/pkg/db/models"
	pkgerrors "github.com/antojo-app/backend/pkg/errors"
)

type stubRepo struct {
	restaurants    map[uuid.UUID]*models.Restaurant
	products       map[uuid.UUID]*models.Product
	orderItemRefs  map[uuid.UUID]int64
	deletedROWs    []uuid.UUID
	deletedPRODs   []uuid.UUID
	lastCategories string
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		restaurants:   map[uuid.UUID]*models.Restaurant{},
		products:      map[uuid.UUID]*models.Product{},
		orderItemRefs: map[uuid.UUID]int64{},
	}
}

func (s *stubRepo) ListActiveRestaurants(_ context.Context, category string) ([]models.Restaurant, error) {
	s.lastCategories = category
	rows := []models.Restaurant{}
	for _, row := range s.restaurants {
		if row.IsActive {
			rows = append(rows, *row)
		}
	}
	return rows, nil
}

func (s *stubRepo) ListAllRestaurants(context.Context) ([]models.Restaurant, error) {
	rows := []models.Restaurant{}
	for _, row := range s.restaurants {
		rows = append(rows, *row)
	}
	return rows, nil
}

func (s *stubRepo) FindRestaurantByID(_ context.Context, id uuid.UUID) (*models.Restaurant, error) {
	row, ok := s.restaurants[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return row, nil
}

func (s *stubRepo) FindRestaurantWithProducts(ctx context.Context, id uuid.UUID) (*models.Restaurant, error) {
	return s.FindRestaurantByID(ctx, id)
}

func (s *stubRepo) CreateRestaurant(_ context.Context, row *models.Restaurant) (*models.Restaurant, error) {
	row.ID = uuid.New()
	s.restaurants[row.ID] = row
	return row, nil
}

func (s *stubRepo) UpdateRestaurant(_ context.Context, row *models.Restaurant) (*models.Restaurant, error) {
	s.restaurants[row.ID] = row
	return row, nil
}

func (s *stubRepo) DeleteRestaurant(_ context.Context, id uuid.UUID) error {
	delete(s.restaurants, id)
	s.deletedROWs = append(s.deletedROWs, id)
	return nil
}

func (s *stubRepo) CountProductsForRestaurant(_ context.Context, restaurantID uuid.UUID) (int64, error) {
	var count int64
	for _, product := range s.products {
		if product.RestaurantID == restaurantID {
			count++
		}
	}
	return count, nil
}

func (s *stubRepo) ListProductsByRestaurant(_ context.Context, restaurantID uuid.UUID) ([]models.Product, error) {
	rows := []models.Product{}
	for _, product := range s.products {
		if product.RestaurantID == restaurantID {
			rows = append(rows, *product)
		}
	}
	return rows, nil
}

func (s *stubRepo) FindProductByID(_ context.Context, id uuid.UUID) (*models.Product, error) {
	row, ok := s.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return row, nil
}

func (s *stubRepo) CreateProduct(_ context.Context, row *models.Product) (*models.Product, error) {
	row.ID = uuid.New()
	s.products[row.ID] = row
	return row, nil
}

func (s *stubRepo) UpdateProduct(_ context.Context, row *models.Product) (*models.Product, error) {
	s.products[row.ID] = row
	return row, nil
}

func (s *stubRepo) DeleteProduct(_ context.Context, id uuid.UUID) error {
	delete(s.products, id)
	s.deletedPRODs = append(s.deletedPRODs, id)
	return nil
}

func (s *stubRepo) CountOrderItemsForProduct(_ context.Context, productID uuid.UUID) (int64, error) {
	return s.orderItemRefs[productID], nil
}

func seedRestaurant(repo *stubRepo, active bool) *models.Restaurant {
	row := &models.Restaurant{
		ID:       uuid.New(),
		Name:     "Pollos Hermanos",
		Address:  "Av. Principal 123",
		IsActive: active,
	}
	repo.restaurants[row.ID] = row
	return row
}

func seedProduct(repo *stubRepo, restaurantID uuid.UUID) *models.Product {
	row := &models.Product{
		ID:           uuid.New(),
		RestaurantID: restaurantID,
		Name:         "Pollo a la brasa",
		Price:        decimal.RequireFromString("48.90"),
		IsAvailable:  true,
	}
	repo.products[row.ID] = row
	return row
}

func assertCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error")
	}
	coded := pkgerrors.As(err)
	if coded == nil {
		t.Fatalf("expected coded error, got %v", err)
	}
	if coded.Code() != code {
		t.Fatalf("expected %s, got %s", code, coded.Code())
	}
}

func TestListRestaurantsFiltersInactive(t *testing.T) {
	repo := newStubRepo()
	seedRestaurant(repo, true)
	seedRestaurant(repo, false)
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	rows, err := svc.ListRestaurants(context.Background(), "pollerias")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 active restaurant, got %d", len(rows))
	}
	if repo.lastCategories != "pollerias" {
		t.Fatalf("category filter not forwarded, got %q", repo.lastCategories)
	}
}

func TestGetRestaurantNotFound(t *testing.T) {
	svc, _ := NewService(newStubRepo())
	_, err := svc.GetRestaurant(context.Background(), uuid.New())
	assertCode(t, err, pkgerrors.CodeNotFound)
}

func TestDeleteRestaurantGuardedByProducts(t *testing.T) {
	repo := newStubRepo()
	restaurant := seedRestaurant(repo, true)
	seedProduct(repo, restaurant.ID)
	svc, _ := NewService(repo)

	err := svc.DeleteRestaurant(context.Background(), restaurant.ID)
	assertCode(t, err, pkgerrors.CodeConflict)
	if len(repo.deletedROWs) != 0 {
		t.Fatal("restaurant must not be deleted while it owns products")
	}
}

func TestDeleteRestaurantSucceedsWhenEmpty(t *testing.T) {
	repo := newStubRepo()
	restaurant := seedRestaurant(repo, true)
	svc, _ := NewService(repo)

	if err := svc.DeleteRestaurant(context.Background(), restaurant.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(repo.deletedROWs) != 1 {
		t.Fatal("expected restaurant deletion")
	}
}

func TestDeleteProductGuardedByOrderItems(t *testing.T) {
	repo := newStubRepo()
	restaurant := seedRestaurant(repo, true)
	product := seedProduct(repo, restaurant.ID)
	repo.orderItemRefs[product.ID] = 3
	svc, _ := NewService(repo)

	err := svc.DeleteProduct(context.Background(), product.ID)
	assertCode(t, err, pkgerrors.CodeConflict)
	if len(repo.deletedPRODs) != 0 {
		t.Fatal("product must not be deleted while referenced by order items")
	}
}

func TestDeleteProductSucceedsWhenUnreferenced(t *testing.T) {
	repo := newStubRepo()
	restaurant := seedRestaurant(repo, true)
	product := seedProduct(repo, restaurant.ID)
	svc, _ := NewService(repo)

	if err := svc.DeleteProduct(context.Background(), product.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(repo.deletedPRODs) != 1 {
		t.Fatal("expected product deletion")
	}
}

func TestCreateProductValidation(t *testing.T) {
	repo := newStubRepo()
	restaurant := seedRestaurant(repo, true)
	svc, _ := NewService(repo)

	_, err := svc.CreateProduct(context.Background(), restaurant.ID, ProductInput{Name: ""})
	assertCode(t, err, pkgerrors.CodeValidation)

	_, err = svc.CreateProduct(context.Background(), restaurant.ID, ProductInput{
		Name:  "Ceviche",
		Price: decimal.RequireFromString("-1"),
	})
	assertCode(t, err, pkgerrors.CodeValidation)

	_, err = svc.CreateProduct(context.Background(), uuid.New(), ProductInput{
		Name:  "Ceviche",
		Price: decimal.RequireFromString("25.00"),
	})
	assertCode(t, err, pkgerrors.CodeNotFound)
}

func TestUpdateRestaurantAppliesFields(t *testing.T) {
	repo := newStubRepo()
	restaurant := seedRestaurant(repo, true)
	svc, _ := NewService(repo)

	updated, err := svc.UpdateRestaurant(context.Background(), restaurant.ID, RestaurantInput{
		Name:        "La Lucha",
		Address:     "Jr. Union 456",
		DeliveryFee: decimal.RequireFromString("7.50"),
		IsActive:    false,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "La Lucha" || updated.IsActive {
		t.Fatalf("fields not applied: %+v", updated)
	}
}
