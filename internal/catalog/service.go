package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/antojo-app/backend/pkg/db/models"
	pkgerrors "github.com/antojo-app/backend/pkg/errors"
)

type restaurantStore interface {
	ListActiveRestaurants(ctx context.Context, category string) ([]models.Restaurant, error)
	ListAllRestaurants(ctx context.Context) ([]models.Restaurant, error)
	FindRestaurantByID(ctx context.Context, id uuid.UUID) (*models.Restaurant, error)
	FindRestaurantWithProducts(ctx context.Context, id uuid.UUID) (*models.Restaurant, error)
	CreateRestaurant(ctx context.Context, row *models.Restaurant) (*models.Restaurant, error)
	UpdateRestaurant(ctx context.Context, row *models.Restaurant) (*models.Restaurant, error)
	DeleteRestaurant(ctx context.Context, id uuid.UUID) error
	CountProductsForRestaurant(ctx context.Context, restaurantID uuid.UUID) (int64, error)
	ListProductsByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]models.Product, error)
	FindProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	CreateProduct(ctx context.Context, row *models.Product) (*models.Product, error)
	UpdateProduct(ctx context.Context, row *models.Product) (*models.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	CountOrderItemsForProduct(ctx context.Context, productID uuid.UUID) (int64, error)
}

// Service exposes the storefront catalog reads and the admin CRUD surface.
type Service interface {
	ListRestaurants(ctx context.Context, category string) ([]models.Restaurant, error)
	GetRestaurant(ctx context.Context, id uuid.UUID) (*models.Restaurant, error)

	ListAllRestaurants(ctx context.Context) ([]models.Restaurant, error)
	CreateRestaurant(ctx context.Context, input RestaurantInput) (*models.Restaurant, error)
	UpdateRestaurant(ctx context.Context, id uuid.UUID, input RestaurantInput) (*models.Restaurant, error)
	DeleteRestaurant(ctx context.Context, id uuid.UUID) error

	ListProducts(ctx context.Context, restaurantID uuid.UUID) ([]models.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
	CreateProduct(ctx context.Context, restaurantID uuid.UUID, input ProductInput) (*models.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, input ProductInput) (*models.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo restaurantStore
}

// NewService builds the catalog service.
func NewService(repo restaurantStore) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListRestaurants(ctx context.Context, category string) ([]models.Restaurant, error) {
	return s.repo.ListActiveRestaurants(ctx, category)
}

func (s *service) GetRestaurant(ctx context.Context, id uuid.UUID) (*models.Restaurant, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "restaurant id is required")
	}
	row, err := s.repo.FindRestaurantWithProducts(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "restaurant not found")
	}
	return row, nil
}

func (s *service) ListAllRestaurants(ctx context.Context) ([]models.Restaurant, error) {
	return s.repo.ListAllRestaurants(ctx)
}

func (s *service) CreateRestaurant(ctx context.Context, input RestaurantInput) (*models.Restaurant, error) {
	if err := validateRestaurantInput(input); err != nil {
		return nil, err
	}
	row := &models.Restaurant{
		Name:            input.Name,
		Description:     input.Description,
		Address:         input.Address,
		Phone:           input.Phone,
		ImageURL:        input.ImageURL,
		Categories:      input.Categories,
		DeliveryFee:     input.DeliveryFee,
		MinimumOrder:    input.MinimumOrder,
		DeliveryTimeMin: input.DeliveryTimeMin,
		IsActive:        input.IsActive,
	}
	return s.repo.CreateRestaurant(ctx, row)
}

func (s *service) UpdateRestaurant(ctx context.Context, id uuid.UUID, input RestaurantInput) (*models.Restaurant, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "restaurant id is required")
	}
	if err := validateRestaurantInput(input); err != nil {
		return nil, err
	}
	row, err := s.repo.FindRestaurantByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "restaurant not found")
	}
	row.Name = input.Name
	row.Description = input.Description
	row.Address = input.Address
	row.Phone = input.Phone
	row.ImageURL = input.ImageURL
	row.Categories = input.Categories
	row.DeliveryFee = input.DeliveryFee
	row.MinimumOrder = input.MinimumOrder
	row.DeliveryTimeMin = input.DeliveryTimeMin
	row.IsActive = input.IsActive
	return s.repo.UpdateRestaurant(ctx, row)
}

func (s *service) DeleteRestaurant(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "restaurant id is required")
	}
	if _, err := s.repo.FindRestaurantByID(ctx, id); err != nil {
		return notFoundOr(err, "restaurant not found")
	}
	count, err := s.repo.CountProductsForRestaurant(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return pkgerrors.New(pkgerrors.CodeConflict,
			fmt.Sprintf("restaurant still owns %d products; remove them first", count))
	}
	return s.repo.DeleteRestaurant(ctx, id)
}

func (s *service) ListProducts(ctx context.Context, restaurantID uuid.UUID) ([]models.Product, error) {
	if restaurantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "restaurant id is required")
	}
	return s.repo.ListProductsByRestaurant(ctx, restaurantID)
}

func (s *service) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	row, err := s.repo.FindProductByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "product not found")
	}
	return row, nil
}

func (s *service) CreateProduct(ctx context.Context, restaurantID uuid.UUID, input ProductInput) (*models.Product, error) {
	if restaurantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "restaurant id is required")
	}
	if err := validateProductInput(input); err != nil {
		return nil, err
	}
	if _, err := s.repo.FindRestaurantByID(ctx, restaurantID); err != nil {
		return nil, notFoundOr(err, "restaurant not found")
	}
	row := &models.Product{
		RestaurantID: restaurantID,
		Name:         input.Name,
		Description:  input.Description,
		Price:        input.Price,
		Category:     input.Category,
		ImageURL:     input.ImageURL,
		IsAvailable:  input.IsAvailable,
	}
	return s.repo.CreateProduct(ctx, row)
}

func (s *service) UpdateProduct(ctx context.Context, id uuid.UUID, input ProductInput) (*models.Product, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if err := validateProductInput(input); err != nil {
		return nil, err
	}
	row, err := s.repo.FindProductByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "product not found")
	}
	row.Name = input.Name
	row.Description = input.Description
	row.Price = input.Price
	row.Category = input.Category
	row.ImageURL = input.ImageURL
	row.IsAvailable = input.IsAvailable
	return s.repo.UpdateProduct(ctx, row)
}

func (s *service) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if _, err := s.repo.FindProductByID(ctx, id); err != nil {
		return notFoundOr(err, "product not found")
	}
	count, err := s.repo.CountOrderItemsForProduct(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return pkgerrors.New(pkgerrors.CodeConflict,
			fmt.Sprintf("product is referenced by %d order items and cannot be deleted", count))
	}
	return s.repo.DeleteProduct(ctx, id)
}

func validateRestaurantInput(input RestaurantInput) error {
	if input.Name == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "restaurant name is required")
	}
	if input.Address == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "restaurant address is required")
	}
	if input.DeliveryFee.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "delivery fee cannot be negative")
	}
	if input.MinimumOrder.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "minimum order cannot be negative")
	}
	return nil
}

func validateProductInput(input ProductInput) error {
	if input.Name == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "product name is required")
	}
	if input.Price.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "product price cannot be negative")
	}
	return nil
}

func notFoundOr(err error, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, message)
	}
	return err
}
