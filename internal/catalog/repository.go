package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/antojo-app/backend/pkg/db/models"
)

// Repository wires restaurant and product persistence helpers.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// ListActiveRestaurants returns active restaurants, optionally filtered by category.
func (r *Repository) ListActiveRestaurants(ctx context.Context, category string) ([]models.Restaurant, error) {
	query := r.db.WithContext(ctx).Where("is_active = ?", true)
	if category != "" {
		query = query.Where("? = ANY(categories)", category)
	}
	var rows []models.Restaurant
	if err := query.Order("rating DESC").Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListAllRestaurants returns every restaurant including inactive ones.
func (r *Repository) ListAllRestaurants(ctx context.Context) ([]models.Restaurant, error) {
	var rows []models.Restaurant
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindRestaurantByID loads a restaurant without associations.
func (r *Repository) FindRestaurantByID(ctx context.Context, id uuid.UUID) (*models.Restaurant, error) {
	var row models.Restaurant
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// FindRestaurantWithProducts loads a restaurant with its available products.
func (r *Repository) FindRestaurantWithProducts(ctx context.Context, id uuid.UUID) (*models.Restaurant, error) {
	var row models.Restaurant
	err := r.db.WithContext(ctx).
		Preload("Products", "is_available = ?", true).
		First(&row, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// CreateRestaurant inserts a new restaurant row.
func (r *Repository) CreateRestaurant(ctx context.Context, row *models.Restaurant) (*models.Restaurant, error) {
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

// UpdateRestaurant saves an existing restaurant row.
func (r *Repository) UpdateRestaurant(ctx context.Context, row *models.Restaurant) (*models.Restaurant, error) {
	if err := r.db.WithContext(ctx).Save(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

// DeleteRestaurant removes a restaurant by ID.
func (r *Repository) DeleteRestaurant(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Restaurant{}).Error
}

// CountProductsForRestaurant counts products still owned by the restaurant.
func (r *Repository) CountProductsForRestaurant(ctx context.Context, restaurantID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("restaurant_id = ?", restaurantID).
		Count(&count).Error
	return count, err
}

// ListProductsByRestaurant returns every product for the restaurant.
func (r *Repository) ListProductsByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]models.Product, error) {
	var rows []models.Product
	err := r.db.WithContext(ctx).
		Where("restaurant_id = ?", restaurantID).
		Order("category ASC").Order("name ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// FindProductByID loads a product without associations.
func (r *Repository) FindProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var row models.Product
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// CreateProduct inserts a new product row.
func (r *Repository) CreateProduct(ctx context.Context, row *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

// UpdateProduct saves an existing product row.
func (r *Repository) UpdateProduct(ctx context.Context, row *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Save(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

// DeleteProduct removes a product by ID.
func (r *Repository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Product{}).Error
}

// CountOrderItemsForProduct counts order lines still referencing the product.
func (r *Repository) CountOrderItemsForProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.OrderItem{}).
		Where("product_id = ?", productID).
		Count(&count).Error
	return count, err
}
